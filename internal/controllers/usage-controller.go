package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/menulink/menulink-api/internal/services"
)

// UsageController exposes the daily image-generation quota
type UsageController struct {
	usageService services.UsageService
}

// NewUsageController creates a new instance of UsageController
func NewUsageController(usageService services.UsageService) *UsageController {
	return &UsageController{usageService: usageService}
}

// GetImageGenerationUsage godoc
// @Summary Get today's image-generation usage
// @Description Report the current count, ceiling, remaining budget and UTC reset time without consuming anything
// @Tags usage
// @Accept json
// @Produce json
// @Success 200 {object} services.UsageStatus
// @Failure 500 {object} map[string]string
// @Security BearerAuth
// @Router /api/v1/usage/image-generation [get]
func (c *UsageController) GetImageGenerationUsage(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	status, err := c.usageService.Status(userID)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read usage"})
		return
	}
	ctx.JSON(http.StatusOK, status)
}

// ConsumeImageGeneration godoc
// @Summary Consume one image generation
// @Description Atomically claim one unit of today's quota. Returns 429 with the current status when the ceiling is reached.
// @Tags usage
// @Accept json
// @Produce json
// @Success 200 {object} services.UsageStatus
// @Failure 429 {object} services.UsageStatus
// @Failure 500 {object} map[string]string
// @Security BearerAuth
// @Router /api/v1/usage/image-generation [post]
func (c *UsageController) ConsumeImageGeneration(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	status, err := c.usageService.Consume(userID)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to consume usage"})
		return
	}
	if !status.WithinLimit {
		ctx.JSON(http.StatusTooManyRequests, status)
		return
	}
	ctx.JSON(http.StatusOK, status)
}
