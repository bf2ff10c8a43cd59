package controllers

import (
	"net/http"
	"strconv"

	"github.com/franciscosanchezn/gin-mexitoes-api/internal/models"
	"github.com/franciscosanchezn/gin-mexitoes-api/internal/services"
	"github.com/gin-gonic/gin"
)

// MenuController serves the public catalog
type MenuController struct {
	service services.MenuService
}

func NewMenuController(service services.MenuService) *MenuController {
	return &MenuController{service: service}
}

// ListMenu godoc
// @Summary List menu items
// @Description List menu items, best rated first, optionally filtered
// @Tags menu
// @Produce json
// @Param category query string false "Exact category"
// @Param search query string false "Case-insensitive match on name or description"
// @Success 200 {array} models.MenuItem
// @Failure 500 {object} models.APIError
// @Router /api/menu [get]
func (mc *MenuController) ListMenu(c *gin.Context) {
	filter := models.MenuFilter{
		Category: c.Query("category"),
		Search:   c.Query("search"),
	}

	items, err := mc.service.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// ListCategories godoc
// @Summary List categories
// @Tags menu
// @Produce json
// @Success 200 {array} string
// @Router /api/menu/categories [get]
func (mc *MenuController) ListCategories(c *gin.Context) {
	categories, err := mc.service.ListCategories(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

// GetMenuItem godoc
// @Summary Get a menu item
// @Tags menu
// @Produce json
// @Param id path int true "Menu item ID"
// @Success 200 {object} models.MenuItem
// @Failure 400 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Router /api/menu/{id} [get]
func (mc *MenuController) GetMenuItem(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	item, err := mc.service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondNotFoundAs(c, err, models.ErrItemNotFound, "Item not found")
		return
	}
	c.JSON(http.StatusOK, item)
}

// uintParam parses a numeric path parameter, answering 400 when it is not one
func uintParam(c *gin.Context, name string) (uint, bool) {
	value, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrBadRequest, "Invalid "+name+" format"))
		return 0, false
	}
	return uint(value), true
}
