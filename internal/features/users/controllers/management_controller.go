package users_controllers

import (
	"errors"
	"net/http"

	"clienttrack/internal/features/access"
	users_dto "clienttrack/internal/features/users/dto"
	users_middleware "clienttrack/internal/features/users/middleware"
	users_services "clienttrack/internal/features/users/services"
	"clienttrack/internal/util/validation"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ManagementController struct {
	managementService *users_services.UserManagementService
}

func (c *ManagementController) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/users", c.ListUsers)
	router.GET("/users/:id", c.GetUserProfile)
	router.POST("/users", c.CreateUser)
	router.PUT("/users/:id/clients", c.UpdateUserClients)
	router.DELETE("/users/:id", c.DeleteUser)
}

// ListUsers
// @Summary List users
// @Description List users visible to the caller, optionally refined by a search term
// @Tags user-management
// @Produce json
// @Security BearerAuth
// @Param search query string false "Search term"
// @Param username query bool false "Match the term against usernames"
// @Param name query bool false "Match the term against first/last names"
// @Param email query bool false "Match the term against emails"
// @Param limit query int false "Number of items per page" default(50)
// @Param offset query int false "Page offset" default(0)
// @Success 200 {object} users_dto.ListUsersResponseDTO
// @Failure 401 {object} map[string]string "Unauthorized"
// @Router /users [get]
func (c *ManagementController) ListUsers(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	request := &users_dto.SearchUsersRequestDTO{}
	if err := ctx.ShouldBindQuery(request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	response, err := c.managementService.ListUsers(user, request)
	if err != nil {
		writeManagementError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// GetUserProfile
// @Summary Get user profile
// @Description Get a user profile; users outside the caller's visibility resolve as not found
// @Tags user-management
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} users_dto.UserResponseDTO
// @Failure 400 {object} map[string]string "Bad request"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Not found"
// @Router /users/{id} [get]
func (c *ManagementController) GetUserProfile(ctx *gin.Context) {
	currentUser, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	userID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	profile, err := c.managementService.GetUserProfile(userID, currentUser)
	if err != nil {
		writeManagementError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, profile)
}

// CreateUser
// @Summary Create a user
// @Description Create a user and grant them access to the selected clients
// @Tags user-management
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body users_dto.CreateUserRequestDTO true "User data"
// @Success 201 {object} users_dto.UserResponseDTO
// @Failure 400 {object} map[string]string "Bad request"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 422 {object} map[string][]string "Validation errors"
// @Router /users [post]
func (c *ManagementController) CreateUser(ctx *gin.Context) {
	currentUser, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var request users_dto.CreateUserRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	response, err := c.managementService.CreateUser(&request, currentUser)
	if err != nil {
		writeManagementError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, response)
}

// UpdateUserClients
// @Summary Update user client access
// @Description Grant the target user access to the selected clients
// @Tags user-management
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Param request body users_dto.UpdateUserClientsRequestDTO true "Client IDs"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string "Bad request"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Not found"
// @Failure 422 {object} map[string][]string "Validation errors"
// @Router /users/{id}/clients [put]
func (c *ManagementController) UpdateUserClients(ctx *gin.Context) {
	currentUser, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	userID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	var request users_dto.UpdateUserClientsRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	if err := c.managementService.UpdateUserClients(userID, &request, currentUser); err != nil {
		writeManagementError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "User client access updated successfully"})
}

// DeleteUser
// @Summary Delete a user
// @Description Delete a user account (administrators only)
// @Tags user-management
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string "Bad request"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Not found"
// @Router /users/{id} [delete]
func (c *ManagementController) DeleteUser(ctx *gin.Context) {
	currentUser, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	userID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	if err := c.managementService.DeleteUser(userID, currentUser); err != nil {
		writeManagementError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}

// writeManagementError maps service errors onto HTTP statuses. Access
// denials always surface as 404 so denied callers cannot probe for
// existence.
func writeManagementError(ctx *gin.Context, err error) {
	var validationErrors *validation.Errors
	if errors.As(err, &validationErrors) {
		ctx.JSON(http.StatusUnprocessableEntity, gin.H{"errors": validationErrors.Messages})
		return
	}

	if errors.Is(err, access.ErrNoAccess) {
		ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}
