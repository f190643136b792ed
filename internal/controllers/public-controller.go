package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/menulink/menulink-api/internal/services"
	log "github.com/sirupsen/logrus"
)

// PublicController serves the unauthenticated visitor surface: menu fetches
// and QR scan tracking. Not-found responses deliberately do not distinguish
// missing, soft-deleted and unpublished menus.
type PublicController struct {
	menuService services.MenuService
	scanService services.ScanService
}

// NewPublicController creates a new instance of PublicController
func NewPublicController(menuService services.MenuService, scanService services.ScanService) *PublicController {
	return &PublicController{menuService: menuService, scanService: scanService}
}

// GetPublicMenu godoc
// @Summary Get a published menu
// @Description Get a published menu with its sections and items, sorted for display
// @Tags public
// @Accept json
// @Produce json
// @Param id path string true "Menu ID"
// @Success 200 {object} models.Menu
// @Failure 404 {object} map[string]string
// @Router /api/v1/public/menus/{id} [get]
func (pc *PublicController) GetPublicMenu(ctx *gin.Context) {
	menu, err := pc.menuService.ResolvePublicMenu(ctx.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrMenuNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Menu not found"})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve menu"})
		return
	}
	ctx.JSON(http.StatusOK, menu)
}

// GetPublicMenuBySlug godoc
// @Summary Get a published menu by slug
// @Description Get a published menu by its URL slug
// @Tags public
// @Accept json
// @Produce json
// @Param slug path string true "Menu slug"
// @Success 200 {object} models.Menu
// @Failure 404 {object} map[string]string
// @Router /api/v1/public/menus/slug/{slug} [get]
func (pc *PublicController) GetPublicMenuBySlug(ctx *gin.Context) {
	menu, err := pc.menuService.ResolvePublicMenuBySlug(ctx.Param("slug"))
	if err != nil {
		if errors.Is(err, services.ErrMenuNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Menu not found"})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve menu"})
		return
	}
	ctx.JSON(http.StatusOK, menu)
}

// TrackQRScan godoc
// @Summary Record a QR scan
// @Description Attribute a scan to the menu's active QR code. Callers must treat failure as non-fatal to page render.
// @Tags public
// @Accept json
// @Produce json
// @Param menuId path string true "Menu ID"
// @Param scan body object{session_token=string} false "Optional client session token"
// @Success 201 {object} map[string]bool
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/v1/public/track-qr-scan/{menuId} [post]
func (pc *PublicController) TrackQRScan(ctx *gin.Context) {
	var body struct {
		SessionToken string `json:"session_token"`
	}
	// Body is optional; a bare POST still counts as a scan
	_ = ctx.ShouldBindJSON(&body)

	meta := services.ScanMetadata{
		UserAgent:    ctx.Request.UserAgent(),
		IP:           ctx.ClientIP(),
		Referrer:     ctx.Request.Referer(),
		SessionToken: body.SessionToken,
	}

	_, err := pc.scanService.TrackScan(ctx.Param("menuId"), meta)
	if err != nil {
		if errors.Is(err, services.ErrNoActiveQRCode) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "No active QR code for menu"})
			return
		}
		log.WithError(err).Error("Failed to record QR scan")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record scan"})
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"success": true})
}
