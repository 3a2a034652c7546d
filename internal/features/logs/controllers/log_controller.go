package logs_controllers

import (
	"errors"
	"net/http"

	"clienttrack/internal/features/access"
	logs_dto "clienttrack/internal/features/logs/dto"
	logs_services "clienttrack/internal/features/logs/services"
	users_middleware "clienttrack/internal/features/users/middleware"
	"clienttrack/internal/util/validation"

	"github.com/gin-gonic/gin"
)

type LogController struct {
	logService *logs_services.LogService
}

func (c *LogController) RegisterRoutes(router *gin.RouterGroup) {
	logRoutes := router.Group("/logs")

	logRoutes.POST("", c.CreateLog)
	logRoutes.GET("", c.ListLogs)
	logRoutes.GET("/:slug", c.GetLog)
	logRoutes.PUT("/:slug", c.UpdateLog)
	logRoutes.DELETE("/:slug", c.DeleteLog)
}

// ListLogs
// @Summary List logs
// @Description List logs for clients the caller may access, optionally refined by a search term
// @Tags logs
// @Produce json
// @Security BearerAuth
// @Param search query string false "Search term"
// @Param title query bool false "Match the term against titles"
// @Param description query bool false "Match the term against descriptions"
// @Param body query bool false "Match the term against bodies"
// @Param limit query int false "Number of items per page" default(50)
// @Param offset query int false "Page offset" default(0)
// @Success 200 {object} logs_dto.ListLogsResponseDTO
// @Failure 401 {object} map[string]string
// @Router /logs [get]
func (c *LogController) ListLogs(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	request := &logs_dto.SearchLogsRequestDTO{}
	if err := ctx.ShouldBindQuery(request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	response, err := c.logService.ListLogs(user, request)
	if err != nil {
		writeLogError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// GetLog
// @Summary Get a log
// @Description Get a log by slug; logs outside the caller's access resolve as not found
// @Tags logs
// @Produce json
// @Security BearerAuth
// @Param slug path string true "Log slug"
// @Success 200 {object} logs_dto.LogResponseDTO
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /logs/{slug} [get]
func (c *LogController) GetLog(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	response, err := c.logService.GetLogBySlug(ctx.Param("slug"), user)
	if err != nil {
		writeLogError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// CreateLog
// @Summary Create a log
// @Description Create a log for a client within the caller's access
// @Tags logs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body logs_dto.CreateLogRequestDTO true "Log data"
// @Success 201 {object} logs_dto.LogResponseDTO
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 422 {object} map[string][]string "Validation errors"
// @Router /logs [post]
func (c *LogController) CreateLog(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var request logs_dto.CreateLogRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	response, err := c.logService.CreateLog(&request, user)
	if err != nil {
		writeLogError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, response)
}

// UpdateLog
// @Summary Update a log
// @Description Update a log within the caller's access
// @Tags logs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param slug path string true "Log slug"
// @Param request body logs_dto.UpdateLogRequestDTO true "Log data"
// @Success 200 {object} logs_dto.LogResponseDTO
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string][]string "Validation errors"
// @Router /logs/{slug} [put]
func (c *LogController) UpdateLog(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var request logs_dto.UpdateLogRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	response, err := c.logService.UpdateLog(ctx.Param("slug"), &request, user)
	if err != nil {
		writeLogError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// DeleteLog
// @Summary Delete a log
// @Description Delete a log within the caller's access
// @Tags logs
// @Produce json
// @Security BearerAuth
// @Param slug path string true "Log slug"
// @Success 200 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /logs/{slug} [delete]
func (c *LogController) DeleteLog(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	if err := c.logService.DeleteLog(ctx.Param("slug"), user); err != nil {
		writeLogError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Log deleted successfully"})
}

// writeLogError maps service errors onto HTTP statuses. Access denials
// always surface as 404 so denied callers cannot probe for existence.
func writeLogError(ctx *gin.Context, err error) {
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
