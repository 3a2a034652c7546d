package users_controllers

import (
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	audit_logs "clienttrack/internal/features/audit_logs"
	users_dto "clienttrack/internal/features/users/dto"
	users_enums "clienttrack/internal/features/users/enums"
	users_middleware "clienttrack/internal/features/users/middleware"
	users_models "clienttrack/internal/features/users/models"
	users_repositories "clienttrack/internal/features/users/repositories"
	users_services "clienttrack/internal/features/users/services"
	test_utils "clienttrack/internal/util/testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/time/rate"
)

func createSignInTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	v1 := router.Group("/api/v1")
	GetUserController().RegisterRoutes(v1)

	protected := v1.Group("")
	protected.Use(users_middleware.AuthMiddleware(users_services.GetUserService()))
	GetUserController().RegisterProtectedRoutes(protected)

	GetUserController().SetSignInLimiter(rate.NewLimiter(rate.Limit(100), 100))

	audit_logs.SetupDependencies()

	return router
}

// createUserWithPassword inserts a user whose password the test knows,
// unlike CreateTestUser's placeholder hash.
func createUserWithPassword(t *testing.T, password string) *users_models.User {
	t.Helper()

	userID := uuid.New()
	shortID := userID.String()[:8]

	hashBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	require.NoError(t, err)
	hashedPassword := string(hashBytes)

	user := &users_models.User{
		ID:                   userID,
		Username:             "signin-user-" + shortID,
		FirstName:            "Signin",
		LastName:             "User " + shortID,
		Email:                fmt.Sprintf("signin-%s@test.com", shortID),
		HashedPassword:       &hashedPassword,
		PasswordCreationTime: time.Now().UTC(),
		Role:                 users_enums.UserRoleClientUser,
		CreatedAt:            time.Now().UTC(),
		UpdatedAt:            time.Now().UTC(),
	}

	userRepository := &users_repositories.UserRepository{}
	require.NoError(t, userRepository.CreateUser(user))

	return user
}

func Test_SignIn_WithValidCredentials_ReturnsTokenAndTracksLastLogin(t *testing.T) {
	router := createSignInTestRouter()
	user := createUserWithPassword(t, "password123")

	request := users_dto.SignInRequestDTO{
		Email:    user.Email,
		Password: "password123",
	}

	var response users_dto.SignInResponseDTO
	test_utils.MakePostRequestAndUnmarshal(
		t,
		router,
		"/api/v1/users/signin",
		"",
		request,
		http.StatusOK,
		&response,
	)

	assert.Equal(t, user.ID, response.UserID)
	assert.NotEmpty(t, response.Token)

	userRepository := &users_repositories.UserRepository{}
	signedIn, err := userRepository.GetUserByEmail(user.Email)
	require.NoError(t, err)
	require.NotNil(t, signedIn)
	assert.NotNil(t, signedIn.LastLogin)
}

func Test_SignIn_WithUppercaseEmail_ReturnsToken(t *testing.T) {
	router := createSignInTestRouter()
	user := createUserWithPassword(t, "password123")

	request := users_dto.SignInRequestDTO{
		Email:    "  " + strings.ToUpper(user.Email) + "  ",
		Password: "password123",
	}

	var response users_dto.SignInResponseDTO
	test_utils.MakePostRequestAndUnmarshal(
		t,
		router,
		"/api/v1/users/signin",
		"",
		request,
		http.StatusOK,
		&response,
	)

	assert.Equal(t, user.ID, response.UserID)
}

func Test_SignIn_WithWrongPassword_ReturnsError(t *testing.T) {
	router := createSignInTestRouter()
	user := createUserWithPassword(t, "password123")

	request := users_dto.SignInRequestDTO{
		Email:    user.Email,
		Password: "wrongpassword",
	}

	resp := test_utils.MakePostRequest(
		t,
		router,
		"/api/v1/users/signin",
		"",
		request,
		http.StatusBadRequest,
	)
	assert.Contains(t, string(resp.Body), "password is incorrect")
}

func Test_SignIn_WithUnknownEmail_ReturnsError(t *testing.T) {
	router := createSignInTestRouter()

	request := users_dto.SignInRequestDTO{
		Email:    fmt.Sprintf("nobody-%s@test.com", uuid.New().String()[:8]),
		Password: "password123",
	}

	resp := test_utils.MakePostRequest(
		t,
		router,
		"/api/v1/users/signin",
		"",
		request,
		http.StatusBadRequest,
	)
	assert.Contains(t, string(resp.Body), "user with this email does not exist")
}

func Test_SignIn_WhenAccountHasNoPassword_ReturnsError(t *testing.T) {
	router := createSignInTestRouter()

	userID := uuid.New()
	shortID := userID.String()[:8]
	user := &users_models.User{
		ID:                   userID,
		Username:             "nopass-user-" + shortID,
		FirstName:            "Nopass",
		LastName:             "User " + shortID,
		Email:                fmt.Sprintf("nopass-%s@test.com", shortID),
		HashedPassword:       nil,
		PasswordCreationTime: time.Now().UTC(),
		Role:                 users_enums.UserRoleClientUser,
		CreatedAt:            time.Now().UTC(),
		UpdatedAt:            time.Now().UTC(),
	}
	userRepository := &users_repositories.UserRepository{}
	require.NoError(t, userRepository.CreateUser(user))

	request := users_dto.SignInRequestDTO{
		Email:    user.Email,
		Password: "password123",
	}

	resp := test_utils.MakePostRequest(
		t,
		router,
		"/api/v1/users/signin",
		"",
		request,
		http.StatusBadRequest,
	)
	assert.Contains(t, string(resp.Body), "user account has no password set")
}

func Test_SignIn_WhenRateLimitExhausted_ReturnsTooManyRequests(t *testing.T) {
	router := createSignInTestRouter()

	GetUserController().SetSignInLimiter(rate.NewLimiter(rate.Limit(0), 1))
	defer GetUserController().SetSignInLimiter(rate.NewLimiter(rate.Limit(100), 100))

	request := users_dto.SignInRequestDTO{
		Email:    fmt.Sprintf("limited-%s@test.com", uuid.New().String()[:8]),
		Password: "password123",
	}

	// Burst of one: the first attempt consumes it, the second is throttled.
	test_utils.MakePostRequest(
		t,
		router,
		"/api/v1/users/signin",
		"",
		request,
		http.StatusBadRequest,
	)
	resp := test_utils.MakePostRequest(
		t,
		router,
		"/api/v1/users/signin",
		"",
		request,
		http.StatusTooManyRequests,
	)
	assert.Contains(t, string(resp.Body), "Rate limit exceeded")
}
