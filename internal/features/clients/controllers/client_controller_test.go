package clients_controllers

import (
	"fmt"
	"net/http"
	"testing"

	"clienttrack/internal/features/access"
	clients_dto "clienttrack/internal/features/clients/dto"
	clients_testing "clienttrack/internal/features/clients/testing"
	users_enums "clienttrack/internal/features/users/enums"
	users_testing "clienttrack/internal/features/users/testing"
	test_utils "clienttrack/internal/util/testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func Test_CreateClient_WhenClientAdmin_ClientCreatedAndCreatorHasAccess(t *testing.T) {
	router := clients_testing.CreateTestRouter(GetClientController())
	creator := users_testing.CreateTestUser(users_enums.UserRoleClientAdmin)

	company := fmt.Sprintf("Acme %s", uuid.New().String()[:8])

	request := clients_dto.CreateClientRequestDTO{
		Company:   company,
		FirstName: "John",
		LastName:  "Smith",
		Email:     fmt.Sprintf("acme-%s@test.com", uuid.New().String()[:8]),
	}

	var response clients_dto.ClientResponseDTO
	test_utils.MakePostRequestAndUnmarshal(
		t,
		router,
		"/api/v1/clients",
		"Bearer "+creator.Token,
		request,
		http.StatusCreated,
		&response,
	)

	assert.Equal(t, company, response.Company)
	assert.NotEmpty(t, response.Slug)
	assert.NotEqual(t, uuid.Nil, response.ID)

	// The creator's membership must make the new client visible.
	var fetched clients_dto.ClientResponseDTO
	test_utils.MakeGetRequestAndUnmarshal(
		t,
		router,
		"/api/v1/clients/"+response.Slug,
		"Bearer "+creator.Token,
		http.StatusOK,
		&fetched,
	)
	assert.Equal(t, response.ID, fetched.ID)
}

func Test_CreateClient_WhenClientUserRole_ReturnsNotFound(t *testing.T) {
	router := clients_testing.CreateTestRouter(GetClientController())
	user := users_testing.CreateTestUser(users_enums.UserRoleClientUser)

	request := clients_dto.CreateClientRequestDTO{
		Company:   fmt.Sprintf("Denied %s", uuid.New().String()[:8]),
		FirstName: "John",
		LastName:  "Smith",
		Email:     fmt.Sprintf("denied-%s@test.com", uuid.New().String()[:8]),
	}

	test_utils.MakePostRequest(
		t,
		router,
		"/api/v1/clients",
		"Bearer "+user.Token,
		request,
		http.StatusNotFound,
	)
}

func Test_CreateClient_WhenDuplicateCompany_ReturnsValidationError(t *testing.T) {
	router := clients_testing.CreateTestRouter(GetClientController())
	creator := users_testing.CreateTestUser(users_enums.UserRoleClientAdmin)

	company := fmt.Sprintf("Duplicated %s", uuid.New().String()[:8])
	clients_testing.CreateTestClient(company, creator, router)

	request := clients_dto.CreateClientRequestDTO{
		Company:   company,
		FirstName: "John",
		LastName:  "Smith",
		Email:     fmt.Sprintf("dup-%s@test.com", uuid.New().String()[:8]),
	}

	resp := test_utils.MakePostRequest(
		t,
		router,
		"/api/v1/clients",
		"Bearer "+creator.Token,
		request,
		http.StatusUnprocessableEntity,
	)
	assert.Contains(t, string(resp.Body), "A client with this company name already exists.")
}

func Test_GetClient_WhenNotMember_ReturnsNotFound(t *testing.T) {
	router := clients_testing.CreateTestRouter(GetClientController())
	creator := users_testing.CreateTestUser(users_enums.UserRoleClientAdmin)
	outsider := users_testing.CreateTestUser(users_enums.UserRoleClientAdmin)

	client := clients_testing.CreateTestClient(
		fmt.Sprintf("Hidden %s", uuid.New().String()[:8]),
		creator,
		router,
	)

	test_utils.MakeGetRequest(
		t,
		router,
		"/api/v1/clients/"+client.Slug,
		"Bearer "+outsider.Token,
		http.StatusNotFound,
	)
}

func Test_GetClient_WhenAdminWithoutMembership_ReturnsClient(t *testing.T) {
	router := clients_testing.CreateTestRouter(GetClientController())
	creator := users_testing.CreateTestUser(users_enums.UserRoleClientAdmin)
	admin := users_testing.CreateTestUser(users_enums.UserRoleAdmin)

	client := clients_testing.CreateTestClient(
		fmt.Sprintf("Visible %s", uuid.New().String()[:8]),
		creator,
		router,
	)

	var response clients_dto.ClientResponseDTO
	test_utils.MakeGetRequestAndUnmarshal(
		t,
		router,
		"/api/v1/clients/"+client.Slug,
		"Bearer "+admin.Token,
		http.StatusOK,
		&response,
	)
	assert.Equal(t, client.ID, response.ID)
}

func Test_GetClient_WhenSlugMissingTwiceAsAdmin_ReturnsNotFoundBothTimes(t *testing.T) {
	router := clients_testing.CreateTestRouter(GetClientController())
	admin := users_testing.CreateTestUser(users_enums.UserRoleAdmin)

	missingSlug := "missing-" + uuid.New().String()[:8]

	// The first miss stores a negative cache entry; the second read is
	// served from cache and must not surface a fabricated client.
	for range 2 {
		test_utils.MakeGetRequest(
			t,
			router,
			"/api/v1/clients/"+missingSlug,
			"Bearer "+admin.Token,
			http.StatusNotFound,
		)
	}
}

func Test_ListClients_WhenDuplicateMemberships_ClientListedOnce(t *testing.T) {
	router := clients_testing.CreateTestRouter(GetClientController())
	creator := users_testing.CreateTestUser(users_enums.UserRoleClientAdmin)

	company := fmt.Sprintf("Doubled %s", uuid.New().String()[:8])
	client := clients_testing.CreateTestClient(company, creator, router)

	// A second identical membership pair must not duplicate the listing row.
	err := access.GetAccessService().GrantMembership(creator.UserID, client.ID)
	assert.NoError(t, err)

	var response clients_dto.ListClientsResponseDTO
	test_utils.MakeGetRequestAndUnmarshal(
		t,
		router,
		"/api/v1/clients?company=true&search=Doubled",
		"Bearer "+creator.Token,
		http.StatusOK,
		&response,
	)

	occurrences := 0
	for _, listed := range response.Clients {
		if listed.ID == client.ID {
			occurrences++
		}
	}
	assert.Equal(t, 1, occurrences)
}

func Test_ListClients_WithRepresentativeFullName_FiltersFirstAndLastName(t *testing.T) {
	router := clients_testing.CreateTestRouter(GetClientController())
	creator := users_testing.CreateTestUser(users_enums.UserRoleClientAdmin)

	marker := uuid.New().String()[:8]

	createClientWithRepresentative(t, router, creator.Token, "Rep A "+marker, "Walter", "Hartwell")
	createClientWithRepresentative(t, router, creator.Token, "Rep B "+marker, "Walter", "Finch")
	createClientWithRepresentative(t, router, creator.Token, "Rep C "+marker, "Greta", "Hartwell")

	var response clients_dto.ListClientsResponseDTO
	test_utils.MakeGetRequestAndUnmarshal(
		t,
		router,
		"/api/v1/clients?representative=true&search=Walter+Hartwell",
		"Bearer "+creator.Token,
		http.StatusOK,
		&response,
	)

	assert.Len(t, response.Clients, 1)
	assert.Equal(t, "Walter", response.Clients[0].FirstName)
	assert.Equal(t, "Hartwell", response.Clients[0].LastName)
}

func Test_ListClients_WithRepresentativeSingleToken_FiltersFirstNameOnly(t *testing.T) {
	router := clients_testing.CreateTestRouter(GetClientController())
	creator := users_testing.CreateTestUser(users_enums.UserRoleClientAdmin)

	marker := uuid.New().String()[:8]

	createClientWithRepresentative(t, router, creator.Token, "Solo A "+marker, "Ignatius", "Hartwell")
	createClientWithRepresentative(t, router, creator.Token, "Solo B "+marker, "Ignatius", "Finch")
	createClientWithRepresentative(t, router, creator.Token, "Solo C "+marker, "Greta", "Ignatius")

	var response clients_dto.ListClientsResponseDTO
	test_utils.MakeGetRequestAndUnmarshal(
		t,
		router,
		"/api/v1/clients?representative=true&search=Ignatius",
		"Bearer "+creator.Token,
		http.StatusOK,
		&response,
	)

	// Single token matches first names only, never last names.
	assert.Len(t, response.Clients, 2)
	for _, listed := range response.Clients {
		assert.Equal(t, "Ignatius", listed.FirstName)
	}
}

func Test_UpdateClient_WhenNotMember_ReturnsNotFound(t *testing.T) {
	router := clients_testing.CreateTestRouter(GetClientController())
	creator := users_testing.CreateTestUser(users_enums.UserRoleClientAdmin)
	outsider := users_testing.CreateTestUser(users_enums.UserRoleClientAdmin)

	client := clients_testing.CreateTestClient(
		fmt.Sprintf("Locked %s", uuid.New().String()[:8]),
		creator,
		router,
	)

	request := clients_dto.UpdateClientRequestDTO{
		Company:   client.Company,
		FirstName: "Changed",
		LastName:  "Name",
		Email:     "changed@test.com",
	}

	test_utils.MakePutRequest(
		t,
		router,
		"/api/v1/clients/"+client.Slug,
		"Bearer "+outsider.Token,
		request,
		http.StatusNotFound,
	)
}

func Test_DeleteClient_WhenClientUserRole_ReturnsNotFound(t *testing.T) {
	router := clients_testing.CreateTestRouter(GetClientController())
	creator := users_testing.CreateTestUser(users_enums.UserRoleClientAdmin)
	member := users_testing.CreateTestUser(users_enums.UserRoleClientUser)

	client := clients_testing.CreateTestClient(
		fmt.Sprintf("Undeletable %s", uuid.New().String()[:8]),
		creator,
		router,
	)

	err := access.GetAccessService().GrantMembership(member.UserID, client.ID)
	assert.NoError(t, err)

	// Membership grants visibility, but the role gate still denies deletion.
	test_utils.MakeDeleteRequest(
		t,
		router,
		"/api/v1/clients/"+client.Slug,
		"Bearer "+member.Token,
		http.StatusNotFound,
	)
}

func Test_DeleteClient_WhenMemberClientAdmin_ClientDeleted(t *testing.T) {
	router := clients_testing.CreateTestRouter(GetClientController())
	creator := users_testing.CreateTestUser(users_enums.UserRoleClientAdmin)

	client := clients_testing.CreateTestClient(
		fmt.Sprintf("Removable %s", uuid.New().String()[:8]),
		creator,
		router,
	)

	test_utils.MakeDeleteRequest(
		t,
		router,
		"/api/v1/clients/"+client.Slug,
		"Bearer "+creator.Token,
		http.StatusOK,
	)

	test_utils.MakeGetRequest(
		t,
		router,
		"/api/v1/clients/"+client.Slug,
		"Bearer "+creator.Token,
		http.StatusNotFound,
	)
}

func createClientWithRepresentative(
	t *testing.T,
	router *gin.Engine,
	token, company, firstName, lastName string,
) {
	t.Helper()

	request := clients_dto.CreateClientRequestDTO{
		Company:   company,
		FirstName: firstName,
		LastName:  lastName,
		Email:     fmt.Sprintf("rep-%s@test.com", uuid.New().String()[:8]),
	}

	w := clients_testing.MakeAPIRequest(router, "POST", "/api/v1/clients", "Bearer "+token, request)
	if w.Code != http.StatusCreated {
		t.Fatalf("failed to create client %s: %s", company, w.Body.String())
	}
}
