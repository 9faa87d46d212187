package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"go-restaurant-pos/internal/models"
	"go-restaurant-pos/internal/service"
	"go-restaurant-pos/internal/store"

	"github.com/gin-gonic/gin"
)

type MenuHandler struct {
	service *service.MenuService
}

func NewMenuHandler(service *service.MenuService) *MenuHandler {
	return &MenuHandler{service: service}
}

// --- GET: /api/menu ---
func (h *MenuHandler) GetMenu(c *gin.Context) {
	items, err := h.service.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch menu"})
		return
	}
	c.JSON(http.StatusOK, items)
}

// --- GET: /api/menu/:id ---
func (h *MenuHandler) GetMenuItem(c *gin.Context) {
	id, ok := menuItemID(c)
	if !ok {
		return
	}

	item, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		writeMenuError(c, err, "Failed to fetch menu item")
		return
	}
	c.JSON(http.StatusOK, item)
}

// --- POST: /api/menu ---
func (h *MenuHandler) AddMenuItem(c *gin.Context) {
	var item models.MenuItem

	// 1. Parse JSON input
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	// 2. Save; ids are assigned by the store
	item.ID = 0
	created, err := h.service.Create(c.Request.Context(), item)
	if err != nil {
		writeMenuError(c, err, "Failed to create menu item")
		return
	}

	c.JSON(http.StatusCreated, created)
}

// --- PUT: /api/menu/:id ---
// The body replaces the whole item, so a missing price is rejected rather than zeroed.
func (h *MenuHandler) UpdateMenuItem(c *gin.Context) {
	// 1. Get ID from URL (e.g., /menu/5)
	id, ok := menuItemID(c)
	if !ok {
		return
	}

	// 2. Parse JSON input
	var item models.MenuItem
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	// 3. Save updates
	updated, err := h.service.Update(c.Request.Context(), id, item)
	if err != nil {
		writeMenuError(c, err, "Failed to update menu item")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Menu item updated successfully", "item": updated})
}

// --- DELETE: /api/menu/:id ---
// Past orders keep their own copy of the name and price, so deleting a dish never touches the ledger.
func (h *MenuHandler) DeleteMenuItem(c *gin.Context) {
	id, ok := menuItemID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		writeMenuError(c, err, "Failed to delete menu item")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Menu item deleted successfully"})
}

func menuItemID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid menu item ID"})
		return 0, false
	}
	return uint(id), true
}

func writeMenuError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Menu item not found"})
	case errors.Is(err, models.ErrInvalidMenuItem):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}
