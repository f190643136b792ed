package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/menulink/menulink-api/internal/models"
	"github.com/menulink/menulink-api/internal/qr"
	"github.com/menulink/menulink-api/internal/services"
	"github.com/menulink/menulink-api/internal/urlutil"
)

// MenuController handles HTTP requests for the owner menu surface
type MenuController interface {
	// GetMenus retrieves the owner's active menus
	GetMenus(c *gin.Context)
	// GetDeletedMenus retrieves the owner's soft-deleted menus
	GetDeletedMenus(c *gin.Context)
	// GetMenu retrieves one menu with sections and items
	GetMenu(c *gin.Context)
	// CreateMenu creates a new menu
	CreateMenu(c *gin.Context)
	// UpdateMenu updates a menu's descriptive fields
	UpdateMenu(c *gin.Context)
	// DeleteMenu soft-deletes a menu
	DeleteMenu(c *gin.Context)
	// PublishMenu toggles a menu's public visibility
	PublishMenu(c *gin.Context)
	// RestoreMenu is reserved for paid plans and always refuses
	RestoreMenu(c *gin.Context)
	// RotateQRCode issues a fresh active QR code for a menu
	RotateQRCode(c *gin.Context)
	// ListQRCodes lists a menu's QR codes, newest first
	ListQRCodes(c *gin.Context)
	// GetQRCodePNG renders the active public link as a PNG
	GetQRCodePNG(c *gin.Context)
}

type menuController struct {
	menuService services.MenuService
	qrService   services.QRService
	generator   qr.Generator
	siteURL     string
}

// NewMenuController creates a new instance of MenuController
func NewMenuController(menuService services.MenuService, qrService services.QRService, generator qr.Generator, siteURL string) *menuController {
	return &menuController{
		menuService: menuService,
		qrService:   qrService,
		generator:   generator,
		siteURL:     siteURL,
	}
}

// currentUserID returns the authenticated user ID set by the auth middleware
func currentUserID(ctx *gin.Context) (uint, bool) {
	userID, exists := ctx.Get("userID")
	if !exists {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return 0, false
	}

	switch v := userID.(type) {
	case uint:
		return v, true
	case int:
		return uint(v), true
	default:
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Unexpected user ID type"})
		return 0, false
	}
}

// GetMenus godoc
// @Summary List menus
// @Description List the authenticated owner's active menus
// @Tags menus
// @Accept json
// @Produce json
// @Success 200 {array} models.Menu
// @Failure 500 {object} map[string]string
// @Security BearerAuth
// @Router /api/v1/menus [get]
func (c *menuController) GetMenus(ctx *gin.Context) {
	ownerID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	menus, err := c.menuService.ListMenus(ownerID)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve menus"})
		return
	}
	ctx.JSON(http.StatusOK, menus)
}

// GetDeletedMenus godoc
// @Summary List deleted menus
// @Description List the authenticated owner's soft-deleted menus
// @Tags menus
// @Accept json
// @Produce json
// @Success 200 {array} models.Menu
// @Failure 500 {object} map[string]string
// @Security BearerAuth
// @Router /api/v1/menus/deleted [get]
func (c *menuController) GetDeletedMenus(ctx *gin.Context) {
	ownerID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	menus, err := c.menuService.ListDeletedMenus(ownerID)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve menus"})
		return
	}
	ctx.JSON(http.StatusOK, menus)
}

// GetMenu godoc
// @Summary Get a menu
// @Description Get one of the owner's menus with its sections and items
// @Tags menus
// @Accept json
// @Produce json
// @Param id path string true "Menu ID"
// @Success 200 {object} models.Menu
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /api/v1/menus/{id} [get]
func (c *menuController) GetMenu(ctx *gin.Context) {
	ownerID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	menu, err := c.menuService.GetMenu(ownerID, ctx.Param("id"))
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

// CreateMenu godoc
// @Summary Create a menu
// @Description Create a new menu for the authenticated owner
// @Tags menus
// @Accept json
// @Produce json
// @Param menu body object{name=string,restaurant_name=string,description=string} true "Menu details"
// @Success 201 {object} models.Menu
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Security BearerAuth
// @Router /api/v1/menus [post]
func (c *menuController) CreateMenu(ctx *gin.Context) {
	ownerID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	// Only descriptive fields are accepted; ID, slug and publication state
	// are assigned server-side
	var req struct {
		Name           string `json:"name"`
		RestaurantName string `json:"restaurant_name"`
		Description    string `json:"description"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if req.Name == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Menu name is required"})
		return
	}

	menu := models.Menu{
		OwnerID:        ownerID,
		Name:           req.Name,
		RestaurantName: req.RestaurantName,
		Description:    req.Description,
	}

	if err := c.menuService.CreateMenu(&menu); err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create menu"})
		return
	}
	ctx.JSON(http.StatusCreated, menu)
}

// UpdateMenu godoc
// @Summary Update a menu
// @Description Update a menu's name, restaurant name or description
// @Tags menus
// @Accept json
// @Produce json
// @Param id path string true "Menu ID"
// @Param menu body services.MenuUpdate true "Fields to update"
// @Success 200 {object} models.Menu
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /api/v1/menus/{id} [put]
func (c *menuController) UpdateMenu(ctx *gin.Context) {
	ownerID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var upd services.MenuUpdate
	if err := ctx.ShouldBindJSON(&upd); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	menu, err := c.menuService.UpdateMenu(ownerID, ctx.Param("id"), upd)
	if err != nil {
		if errors.Is(err, services.ErrMenuNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Menu not found"})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update menu"})
		return
	}
	ctx.JSON(http.StatusOK, menu)
}

// DeleteMenu godoc
// @Summary Delete a menu
// @Description Soft-delete a menu; it disappears from the public surface immediately
// @Tags menus
// @Accept json
// @Produce json
// @Param id path string true "Menu ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Security BearerAuth
// @Router /api/v1/menus/{id} [delete]
func (c *menuController) DeleteMenu(ctx *gin.Context) {
	ownerID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	if err := c.menuService.SoftDeleteMenu(ownerID, ctx.Param("id")); err != nil {
		if errors.Is(err, services.ErrMenuNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Menu not found"})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete menu"})
		return
	}
	ctx.JSON(http.StatusNoContent, nil)
}

// PublishMenu godoc
// @Summary Publish or unpublish a menu
// @Description Toggle whether the menu is reachable on the public surface
// @Tags menus
// @Accept json
// @Produce json
// @Param id path string true "Menu ID"
// @Param publish body object{is_published=bool} true "Publish flag"
// @Success 200 {object} models.Menu
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /api/v1/menus/{id}/publish [patch]
func (c *menuController) PublishMenu(ctx *gin.Context) {
	ownerID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var body struct {
		IsPublished *bool `json:"is_published" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "is_published is required"})
		return
	}

	menu, err := c.menuService.SetPublished(ownerID, ctx.Param("id"), *body.IsPublished)
	if err != nil {
		if errors.Is(err, services.ErrMenuNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Menu not found"})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update menu"})
		return
	}
	ctx.JSON(http.StatusOK, menu)
}

// RestoreMenu godoc
// @Summary Restore a deleted menu
// @Description Restoring menus requires a paid plan; the endpoint currently refuses every caller
// @Tags menus
// @Accept json
// @Produce json
// @Param id path string true "Menu ID"
// @Failure 403 {object} map[string]string
// @Router /api/v1/menus/{id}/restore [patch]
func (c *menuController) RestoreMenu(ctx *gin.Context) {
	ctx.JSON(http.StatusForbidden, gin.H{"error": "Menu restore requires a paid plan"})
}

// RotateQRCode godoc
// @Summary Rotate a menu's QR code
// @Description Create a fresh active QR code and deactivate the previous ones
// @Tags qrcodes
// @Accept json
// @Produce json
// @Param id path string true "Menu ID"
// @Param qrcode body object{label=string} false "Optional label"
// @Success 201 {object} models.QRCode
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Security BearerAuth
// @Router /api/v1/menus/{id}/qrcodes [post]
func (c *menuController) RotateQRCode(ctx *gin.Context) {
	ownerID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var body struct {
		Label string `json:"label"`
	}
	_ = ctx.ShouldBindJSON(&body)

	code, err := c.qrService.RotateQRCode(ownerID, ctx.Param("id"), body.Label)
	if err != nil {
		if errors.Is(err, services.ErrMenuNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Menu not found"})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to rotate QR code"})
		return
	}
	ctx.JSON(http.StatusCreated, code)
}

// ListQRCodes godoc
// @Summary List a menu's QR codes
// @Description List every QR code ever issued for a menu, newest first
// @Tags qrcodes
// @Accept json
// @Produce json
// @Param id path string true "Menu ID"
// @Success 200 {array} models.QRCode
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /api/v1/menus/{id}/qrcodes [get]
func (c *menuController) ListQRCodes(ctx *gin.Context) {
	ownerID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	codes, err := c.qrService.ListQRCodes(ownerID, ctx.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrMenuNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Menu not found"})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list QR codes"})
		return
	}
	ctx.JSON(http.StatusOK, codes)
}

// GetQRCodePNG godoc
// @Summary Download a menu's QR code image
// @Description Render the menu's public link as a PNG suitable for print
// @Tags qrcodes
// @Produce png
// @Param id path string true "Menu ID"
// @Param size query int false "Image size in pixels"
// @Success 200 {file} binary
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Security BearerAuth
// @Router /api/v1/menus/{id}/qrcode.png [get]
func (c *menuController) GetQRCodePNG(ctx *gin.Context) {
	ownerID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	menu, err := c.menuService.GetMenu(ownerID, ctx.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrMenuNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Menu not found"})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve menu"})
		return
	}

	generator := c.generator
	if sizeParam := ctx.Query("size"); sizeParam != "" {
		if size, err := strconv.Atoi(sizeParam); err == nil && size > 0 && size <= 2048 {
			generator = qr.DefaultGenerator{Size: size}
		}
	}

	baseURL := urlutil.ResolveBaseURL(c.siteURL, ctx.Request)
	png, err := generator.Render(urlutil.PublicMenuURL(baseURL, menu.Slug))
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to render QR code"})
		return
	}
	ctx.Data(http.StatusOK, "image/png", png)
}
