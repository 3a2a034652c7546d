package audit_logs

import (
	"net/http"
	"testing"

	users_enums "clienttrack/internal/features/users/enums"
	users_middleware "clienttrack/internal/features/users/middleware"
	users_services "clienttrack/internal/features/users/services"
	users_testing "clienttrack/internal/features/users/testing"
	test_utils "clienttrack/internal/util/testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func createAuditTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	v1 := router.Group("/api/v1")
	protected := v1.Group("")
	protected.Use(users_middleware.AuthMiddleware(users_services.GetUserService()))
	GetAuditLogController().RegisterRoutes(protected)

	SetupDependencies()

	return router
}

func Test_GetGlobalAuditLogs_WhenClientAdmin_ReturnsForbidden(t *testing.T) {
	router := createAuditTestRouter()
	actor := users_testing.CreateTestUser(users_enums.UserRoleClientAdmin)

	resp := test_utils.MakeGetRequest(
		t,
		router,
		"/api/v1/audit-logs/global",
		"Bearer "+actor.Token,
		http.StatusForbidden,
	)
	assert.Contains(t, string(resp.Body), "Insufficient permissions")
}

func Test_GetGlobalAuditLogs_WhenAdmin_ReturnsLogs(t *testing.T) {
	router := createAuditTestRouter()
	admin := users_testing.CreateTestUser(users_enums.UserRoleAdmin)

	var response GetAuditLogsResponse
	test_utils.MakeGetRequestAndUnmarshal(
		t,
		router,
		"/api/v1/audit-logs/global",
		"Bearer "+admin.Token,
		http.StatusOK,
		&response,
	)

	assert.GreaterOrEqual(t, response.Total, int64(0))
}
