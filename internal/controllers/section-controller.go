package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/menulink/menulink-api/internal/models"
	"github.com/menulink/menulink-api/internal/services"
)

// SectionController handles HTTP requests for sections and items within a menu
type SectionController struct {
	sectionService services.SectionService
}

// NewSectionController creates a new instance of SectionController
func NewSectionController(sectionService services.SectionService) *SectionController {
	return &SectionController{sectionService: sectionService}
}

func isNotFound(err error) bool {
	return errors.Is(err, services.ErrMenuNotFound) ||
		errors.Is(err, services.ErrSectionNotFound) ||
		errors.Is(err, services.ErrItemNotFound)
}

func pathUint(ctx *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param(name), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name})
		return 0, false
	}
	return uint(id), true
}

// CreateSection godoc
// @Summary Create a section
// @Description Add a section to one of the owner's menus
// @Tags sections
// @Accept json
// @Produce json
// @Param id path string true "Menu ID"
// @Param section body models.MenuSection true "Section object"
// @Success 201 {object} models.MenuSection
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /api/v1/menus/{id}/sections [post]
func (c *SectionController) CreateSection(ctx *gin.Context) {
	ownerID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var section models.MenuSection
	if err := ctx.ShouldBindJSON(&section); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if section.Name == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Section name is required"})
		return
	}

	if err := c.sectionService.CreateSection(ownerID, ctx.Param("id"), &section); err != nil {
		if errors.Is(err, services.ErrMenuNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Menu not found"})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create section"})
		return
	}
	ctx.JSON(http.StatusCreated, section)
}

// UpdateSection godoc
// @Summary Update a section
// @Description Update a section's name and sort order
// @Tags sections
// @Accept json
// @Produce json
// @Param id path string true "Menu ID"
// @Param sectionId path int true "Section ID"
// @Param section body models.MenuSection true "Section object"
// @Success 200 {object} models.MenuSection
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /api/v1/menus/{id}/sections/{sectionId} [put]
func (c *SectionController) UpdateSection(ctx *gin.Context) {
	ownerID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	sectionID, ok := pathUint(ctx, "sectionId")
	if !ok {
		return
	}

	var section models.MenuSection
	if err := ctx.ShouldBindJSON(&section); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	updated, err := c.sectionService.UpdateSection(ownerID, ctx.Param("id"), sectionID, section)
	if err != nil {
		if isNotFound(err) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update section"})
		return
	}
	ctx.JSON(http.StatusOK, updated)
}

// DeleteSection godoc
// @Summary Delete a section
// @Description Delete a section and its items
// @Tags sections
// @Accept json
// @Produce json
// @Param id path string true "Menu ID"
// @Param sectionId path int true "Section ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /api/v1/menus/{id}/sections/{sectionId} [delete]
func (c *SectionController) DeleteSection(ctx *gin.Context) {
	ownerID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	sectionID, ok := pathUint(ctx, "sectionId")
	if !ok {
		return
	}

	if err := c.sectionService.DeleteSection(ownerID, ctx.Param("id"), sectionID); err != nil {
		if isNotFound(err) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete section"})
		return
	}
	ctx.JSON(http.StatusNoContent, nil)
}

// CreateItem godoc
// @Summary Create an item
// @Description Add an item to a section of one of the owner's menus
// @Tags items
// @Accept json
// @Produce json
// @Param id path string true "Menu ID"
// @Param sectionId path int true "Section ID"
// @Param item body models.MenuItem true "Item object"
// @Success 201 {object} models.MenuItem
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /api/v1/menus/{id}/sections/{sectionId}/items [post]
func (c *SectionController) CreateItem(ctx *gin.Context) {
	ownerID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	sectionID, ok := pathUint(ctx, "sectionId")
	if !ok {
		return
	}

	var item models.MenuItem
	if err := ctx.ShouldBindJSON(&item); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if item.Name == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Item name is required"})
		return
	}
	if item.PriceCents < 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Price must not be negative"})
		return
	}

	if err := c.sectionService.CreateItem(ownerID, ctx.Param("id"), sectionID, &item); err != nil {
		if isNotFound(err) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create item"})
		return
	}
	ctx.JSON(http.StatusCreated, item)
}

// UpdateItem godoc
// @Summary Update an item
// @Description Update an item's fields
// @Tags items
// @Accept json
// @Produce json
// @Param id path string true "Menu ID"
// @Param itemId path int true "Item ID"
// @Param item body models.MenuItem true "Item object"
// @Success 200 {object} models.MenuItem
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /api/v1/menus/{id}/items/{itemId} [put]
func (c *SectionController) UpdateItem(ctx *gin.Context) {
	ownerID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	itemID, ok := pathUint(ctx, "itemId")
	if !ok {
		return
	}

	var item models.MenuItem
	if err := ctx.ShouldBindJSON(&item); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if item.PriceCents < 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Price must not be negative"})
		return
	}

	updated, err := c.sectionService.UpdateItem(ownerID, ctx.Param("id"), itemID, item)
	if err != nil {
		if isNotFound(err) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update item"})
		return
	}
	ctx.JSON(http.StatusOK, updated)
}

// DeleteItem godoc
// @Summary Delete an item
// @Description Delete an item from a menu
// @Tags items
// @Accept json
// @Produce json
// @Param id path string true "Menu ID"
// @Param itemId path int true "Item ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /api/v1/menus/{id}/items/{itemId} [delete]
func (c *SectionController) DeleteItem(ctx *gin.Context) {
	ownerID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	itemID, ok := pathUint(ctx, "itemId")
	if !ok {
		return
	}

	if err := c.sectionService.DeleteItem(ownerID, ctx.Param("id"), itemID); err != nil {
		if isNotFound(err) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete item"})
		return
	}
	ctx.JSON(http.StatusNoContent, nil)
}
