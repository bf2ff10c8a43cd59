package controllers

import (
	"net/http"

	"github.com/franciscosanchezn/gin-mexitoes-api/internal/middleware"
	"github.com/franciscosanchezn/gin-mexitoes-api/internal/models"
	"github.com/franciscosanchezn/gin-mexitoes-api/internal/services"
	"github.com/gin-gonic/gin"
)

type CartController struct {
	service services.CartService
}

func NewCartController(service services.CartService) *CartController {
	return &CartController{service: service}
}

type upsertCartRequest struct {
	MenuItemID uint `json:"menu_item_id" binding:"required"`
	Quantity   int  `json:"quantity" binding:"required"`
}

// GetCart godoc
// @Summary Get the cart
// @Tags cart
// @Produce json
// @Success 200 {array} models.CartRow
// @Failure 401 {object} models.APIError
// @Security BearerAuth
// @Router /api/cart [get]
func (cc *CartController) GetCart(c *gin.Context) {
	rows, err := cc.service.Get(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

// UpsertItem godoc
// @Summary Set the quantity of a cart item
// @Description Adds the item or overwrites its quantity
// @Tags cart
// @Accept json
// @Produce json
// @Param request body upsertCartRequest true "Menu item and quantity (at least 1)"
// @Success 200 {array} models.CartRow
// @Failure 400 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Security BearerAuth
// @Router /api/cart [post]
func (cc *CartController) UpsertItem(c *gin.Context) {
	var req upsertCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	rows, err := cc.service.Upsert(c.Request.Context(), middleware.UserID(c), req.MenuItemID, req.Quantity)
	if err != nil {
		respondNotFoundAs(c, err, models.ErrItemNotFound, "Item not found")
		return
	}
	c.JSON(http.StatusOK, rows)
}

// RemoveItem godoc
// @Summary Remove an item from the cart
// @Tags cart
// @Produce json
// @Param menu_item_id path int true "Menu item ID"
// @Success 200 {object} map[string]bool
// @Security BearerAuth
// @Router /api/cart/{menu_item_id} [delete]
func (cc *CartController) RemoveItem(c *gin.Context) {
	id, ok := uintParam(c, "menu_item_id")
	if !ok {
		return
	}

	if err := cc.service.Remove(c.Request.Context(), middleware.UserID(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ClearCart godoc
// @Summary Empty the cart
// @Tags cart
// @Produce json
// @Success 200 {object} map[string]bool
// @Security BearerAuth
// @Router /api/cart [delete]
func (cc *CartController) ClearCart(c *gin.Context) {
	if err := cc.service.Clear(c.Request.Context(), middleware.UserID(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
