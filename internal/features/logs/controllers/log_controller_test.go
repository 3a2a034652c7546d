package logs_controllers

import (
	"fmt"
	"net/http"
	"testing"

	"clienttrack/internal/features/access"
	clients_controllers "clienttrack/internal/features/clients/controllers"
	clients_testing "clienttrack/internal/features/clients/testing"
	logs_dto "clienttrack/internal/features/logs/dto"
	users_enums "clienttrack/internal/features/users/enums"
	users_testing "clienttrack/internal/features/users/testing"
	test_utils "clienttrack/internal/util/testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func Test_CreateLog_WhenClientAccessible_LogCreated(t *testing.T) {
	router := clients_testing.CreateTestRouter(
		GetLogController(),
		clients_controllers.GetClientController(),
	)
	creator := users_testing.CreateTestUser(users_enums.UserRoleClientAdmin)

	client := clients_testing.CreateTestClient(
		fmt.Sprintf("Logged %s", uuid.New().String()[:8]),
		creator,
		router,
	)

	request := logs_dto.CreateLogRequestDTO{
		ClientID:    client.ID,
		Title:       fmt.Sprintf("Kickoff call %s", uuid.New().String()[:8]),
		Description: "Initial project scoping call",
		Body:        "Discussed milestones and deliverables.",
	}

	var response logs_dto.LogResponseDTO
	test_utils.MakePostRequestAndUnmarshal(
		t,
		router,
		"/api/v1/logs",
		"Bearer "+creator.Token,
		request,
		http.StatusCreated,
		&response,
	)

	assert.Equal(t, client.ID, response.ClientID)
	assert.NotEmpty(t, response.Slug)
}

func Test_CreateLog_WhenClientNotAccessible_ReturnsValidationErrorAndPersistsNothing(t *testing.T) {
	router := clients_testing.CreateTestRouter(
		GetLogController(),
		clients_controllers.GetClientController(),
	)
	creator := users_testing.CreateTestUser(users_enums.UserRoleClientAdmin)
	outsider := users_testing.CreateTestUser(users_enums.UserRoleClientAdmin)

	client := clients_testing.CreateTestClient(
		fmt.Sprintf("Foreign %s", uuid.New().String()[:8]),
		creator,
		router,
	)

	request := logs_dto.CreateLogRequestDTO{
		ClientID: client.ID,
		Title:    "Escalation attempt",
		Body:     "Should never be written.",
	}

	resp := test_utils.MakePostRequest(
		t,
		router,
		"/api/v1/logs",
		"Bearer "+outsider.Token,
		request,
		http.StatusUnprocessableEntity,
	)
	assert.Contains(t, string(resp.Body), "No client selected.")

	// No row may have been written: the member of the client sees nothing.
	var listing logs_dto.ListLogsResponseDTO
	test_utils.MakeGetRequestAndUnmarshal(
		t,
		router,
		"/api/v1/logs?title=true&search=Escalation+attempt",
		"Bearer "+creator.Token,
		http.StatusOK,
		&listing,
	)
	assert.Equal(t, int64(0), listing.Total)
}

func Test_CreateLog_WithoutClient_ReturnsValidationError(t *testing.T) {
	router := clients_testing.CreateTestRouter(GetLogController())
	creator := users_testing.CreateTestUser(users_enums.UserRoleClientAdmin)

	request := logs_dto.CreateLogRequestDTO{
		Title: "Orphan log",
		Body:  "No client reference at all.",
	}

	resp := test_utils.MakePostRequest(
		t,
		router,
		"/api/v1/logs",
		"Bearer "+creator.Token,
		request,
		http.StatusUnprocessableEntity,
	)
	assert.Contains(t, string(resp.Body), "No client selected.")
}

func Test_GetLog_WhenNotMemberOfClient_ReturnsNotFound(t *testing.T) {
	router := clients_testing.CreateTestRouter(
		GetLogController(),
		clients_controllers.GetClientController(),
	)
	creator := users_testing.CreateTestUser(users_enums.UserRoleClientAdmin)
	outsider := users_testing.CreateTestUser(users_enums.UserRoleClientAdmin)

	client := clients_testing.CreateTestClient(
		fmt.Sprintf("Private %s", uuid.New().String()[:8]),
		creator,
		router,
	)

	request := logs_dto.CreateLogRequestDTO{
		ClientID: client.ID,
		Title:    fmt.Sprintf("Private note %s", uuid.New().String()[:8]),
	}

	var created logs_dto.LogResponseDTO
	test_utils.MakePostRequestAndUnmarshal(
		t,
		router,
		"/api/v1/logs",
		"Bearer "+creator.Token,
		request,
		http.StatusCreated,
		&created,
	)

	test_utils.MakeGetRequest(
		t,
		router,
		"/api/v1/logs/"+created.Slug,
		"Bearer "+outsider.Token,
		http.StatusNotFound,
	)
}

func Test_GetLog_WhenClientUserMember_ReturnsLog(t *testing.T) {
	router := clients_testing.CreateTestRouter(
		GetLogController(),
		clients_controllers.GetClientController(),
	)
	creator := users_testing.CreateTestUser(users_enums.UserRoleClientAdmin)
	member := users_testing.CreateTestUser(users_enums.UserRoleClientUser)

	client := clients_testing.CreateTestClient(
		fmt.Sprintf("Shared %s", uuid.New().String()[:8]),
		creator,
		router,
	)

	err := access.GetAccessService().GrantMembership(member.UserID, client.ID)
	assert.NoError(t, err)

	request := logs_dto.CreateLogRequestDTO{
		ClientID: client.ID,
		Title:    fmt.Sprintf("Shared note %s", uuid.New().String()[:8]),
	}

	var created logs_dto.LogResponseDTO
	test_utils.MakePostRequestAndUnmarshal(
		t,
		router,
		"/api/v1/logs",
		"Bearer "+creator.Token,
		request,
		http.StatusCreated,
		&created,
	)

	var fetched logs_dto.LogResponseDTO
	test_utils.MakeGetRequestAndUnmarshal(
		t,
		router,
		"/api/v1/logs/"+created.Slug,
		"Bearer "+member.Token,
		http.StatusOK,
		&fetched,
	)
	assert.Equal(t, created.ID, fetched.ID)
}

func Test_DeleteLog_WhenClientUserRole_ReturnsNotFound(t *testing.T) {
	router := clients_testing.CreateTestRouter(
		GetLogController(),
		clients_controllers.GetClientController(),
	)
	creator := users_testing.CreateTestUser(users_enums.UserRoleClientAdmin)
	member := users_testing.CreateTestUser(users_enums.UserRoleClientUser)

	client := clients_testing.CreateTestClient(
		fmt.Sprintf("Guarded %s", uuid.New().String()[:8]),
		creator,
		router,
	)

	err := access.GetAccessService().GrantMembership(member.UserID, client.ID)
	assert.NoError(t, err)

	request := logs_dto.CreateLogRequestDTO{
		ClientID: client.ID,
		Title:    fmt.Sprintf("Guarded note %s", uuid.New().String()[:8]),
	}

	var created logs_dto.LogResponseDTO
	test_utils.MakePostRequestAndUnmarshal(
		t,
		router,
		"/api/v1/logs",
		"Bearer "+creator.Token,
		request,
		http.StatusCreated,
		&created,
	)

	// Membership grants visibility, but the role gate still denies deletion.
	test_utils.MakeDeleteRequest(
		t,
		router,
		"/api/v1/logs/"+created.Slug,
		"Bearer "+member.Token,
		http.StatusNotFound,
	)
}

func Test_ListLogs_WithTitleFilter_ReturnsMatchingOnly(t *testing.T) {
	router := clients_testing.CreateTestRouter(
		GetLogController(),
		clients_controllers.GetClientController(),
	)
	creator := users_testing.CreateTestUser(users_enums.UserRoleClientAdmin)

	client := clients_testing.CreateTestClient(
		fmt.Sprintf("Filtered %s", uuid.New().String()[:8]),
		creator,
		router,
	)

	marker := uuid.New().String()[:8]

	for _, title := range []string{"Invoice " + marker, "Invoice followup " + marker, "Meeting " + marker} {
		request := logs_dto.CreateLogRequestDTO{
			ClientID: client.ID,
			Title:    title,
		}

		var created logs_dto.LogResponseDTO
		test_utils.MakePostRequestAndUnmarshal(
			t,
			router,
			"/api/v1/logs",
			"Bearer "+creator.Token,
			request,
			http.StatusCreated,
			&created,
		)
	}

	var response logs_dto.ListLogsResponseDTO
	test_utils.MakeGetRequestAndUnmarshal(
		t,
		router,
		"/api/v1/logs?title=true&search=Invoice",
		"Bearer "+creator.Token,
		http.StatusOK,
		&response,
	)

	assert.Equal(t, int64(2), response.Total)
	for _, listed := range response.Logs {
		assert.Contains(t, listed.Title, "Invoice")
	}
}
