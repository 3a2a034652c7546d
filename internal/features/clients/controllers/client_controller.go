package clients_controllers

import (
	"errors"
	"net/http"

	"clienttrack/internal/features/access"
	audit_logs "clienttrack/internal/features/audit_logs"
	clients_dto "clienttrack/internal/features/clients/dto"
	clients_services "clienttrack/internal/features/clients/services"
	users_middleware "clienttrack/internal/features/users/middleware"
	"clienttrack/internal/util/validation"

	"github.com/gin-gonic/gin"
)

type ClientController struct {
	clientService *clients_services.ClientService
}

func (c *ClientController) RegisterRoutes(router *gin.RouterGroup) {
	clientRoutes := router.Group("/clients")

	clientRoutes.POST("", c.CreateClient)
	clientRoutes.GET("", c.ListClients)
	clientRoutes.GET("/:slug", c.GetClient)
	clientRoutes.PUT("/:slug", c.UpdateClient)
	clientRoutes.DELETE("/:slug", c.DeleteClient)
	clientRoutes.GET("/:slug/audit-logs", c.GetClientAuditLogs)
}

// ListClients
// @Summary List clients
// @Description List clients the caller may access, optionally refined by a search term
// @Tags clients
// @Produce json
// @Security BearerAuth
// @Param search query string false "Search term"
// @Param company query bool false "Match the term against company names"
// @Param representative query bool false "Match the term against representative first/last names"
// @Param email query bool false "Match the term against emails"
// @Param limit query int false "Number of items per page" default(50)
// @Param offset query int false "Page offset" default(0)
// @Success 200 {object} clients_dto.ListClientsResponseDTO
// @Failure 401 {object} map[string]string
// @Router /clients [get]
func (c *ClientController) ListClients(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	request := &clients_dto.SearchClientsRequestDTO{}
	if err := ctx.ShouldBindQuery(request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	response, err := c.clientService.ListClients(user, request)
	if err != nil {
		writeClientError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// GetClient
// @Summary Get a client
// @Description Get a client by slug; clients outside the caller's access resolve as not found
// @Tags clients
// @Produce json
// @Security BearerAuth
// @Param slug path string true "Client slug"
// @Success 200 {object} clients_dto.ClientResponseDTO
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /clients/{slug} [get]
func (c *ClientController) GetClient(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	response, err := c.clientService.GetClientBySlug(ctx.Param("slug"), user)
	if err != nil {
		writeClientError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// CreateClient
// @Summary Create a client
// @Description Create a client; the creator and every selected user are granted access
// @Tags clients
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body clients_dto.CreateClientRequestDTO true "Client data"
// @Success 201 {object} clients_dto.ClientResponseDTO
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 422 {object} map[string][]string "Validation errors"
// @Router /clients [post]
func (c *ClientController) CreateClient(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var request clients_dto.CreateClientRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	response, err := c.clientService.CreateClient(&request, user)
	if err != nil {
		writeClientError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, response)
}

// UpdateClient
// @Summary Update a client
// @Description Update a client's contact and address details
// @Tags clients
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param slug path string true "Client slug"
// @Param request body clients_dto.UpdateClientRequestDTO true "Client data"
// @Success 200 {object} clients_dto.ClientResponseDTO
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string][]string "Validation errors"
// @Router /clients/{slug} [put]
func (c *ClientController) UpdateClient(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var request clients_dto.UpdateClientRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	response, err := c.clientService.UpdateClient(ctx.Param("slug"), &request, user)
	if err != nil {
		writeClientError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// DeleteClient
// @Summary Delete a client
// @Description Delete a client within the caller's access
// @Tags clients
// @Produce json
// @Security BearerAuth
// @Param slug path string true "Client slug"
// @Success 200 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /clients/{slug} [delete]
func (c *ClientController) DeleteClient(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	if err := c.clientService.DeleteClient(ctx.Param("slug"), user); err != nil {
		writeClientError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Client deleted successfully"})
}

// GetClientAuditLogs
// @Summary Get client audit logs
// @Description Retrieve audit logs for a client within the caller's access
// @Tags clients
// @Produce json
// @Security BearerAuth
// @Param slug path string true "Client slug"
// @Param limit query int false "Limit number of results" default(100)
// @Param offset query int false "Offset for pagination" default(0)
// @Success 200 {object} audit_logs.GetAuditLogsResponse
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /clients/{slug}/audit-logs [get]
func (c *ClientController) GetClientAuditLogs(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	request := &audit_logs.GetAuditLogsRequest{}
	if err := ctx.ShouldBindQuery(request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	response, err := c.clientService.GetClientAuditLogs(ctx.Param("slug"), user, request)
	if err != nil {
		writeClientError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// writeClientError maps service errors onto HTTP statuses. Access denials
// always surface as 404 so denied callers cannot probe for existence.
func writeClientError(ctx *gin.Context, err error) {
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
