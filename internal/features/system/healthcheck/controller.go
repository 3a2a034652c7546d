package system_healthcheck

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type HealthcheckController struct {
	healthcheckService *HealthcheckService
}

func (c *HealthcheckController) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/health", c.GetHealth)
}

// GetHealth
// @Summary Healthcheck
// @Description Report service availability and host disk/memory usage
// @Tags system
// @Produce json
// @Success 200 {object} HealthStatus
// @Failure 503 {object} map[string]string
// @Router /health [get]
func (c *HealthcheckController) GetHealth(ctx *gin.Context) {
	status, err := c.healthcheckService.GetHealthStatus()
	if err != nil {
		ctx.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, status)
}
