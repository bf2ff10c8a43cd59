package controllers

import (
	"net/http"

	"github.com/franciscosanchezn/gin-mexitoes-api/internal/middleware"
	"github.com/franciscosanchezn/gin-mexitoes-api/internal/models"
	"github.com/franciscosanchezn/gin-mexitoes-api/internal/services"
	"github.com/gin-gonic/gin"
)

type OrderController struct {
	service services.OrderService
}

func NewOrderController(service services.OrderService) *OrderController {
	return &OrderController{service: service}
}

type setStatusRequest struct {
	Status models.OrderStatus `json:"status" binding:"required"`
}

// PlaceOrder godoc
// @Summary Place an order
// @Description Converts the cart into an order with 8% tax and empties the cart
// @Tags orders
// @Produce json
// @Success 201 {object} models.Order
// @Failure 400 {object} models.APIError "Cart is empty"
// @Failure 401 {object} models.APIError
// @Security BearerAuth
// @Router /api/orders [post]
func (oc *OrderController) PlaceOrder(c *gin.Context) {
	order, err := oc.service.Place(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

// ListOrders godoc
// @Summary Order history
// @Tags orders
// @Produce json
// @Success 200 {array} models.Order
// @Security BearerAuth
// @Router /api/orders [get]
func (oc *OrderController) ListOrders(c *gin.Context) {
	orders, err := oc.service.History(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

// GetOrder godoc
// @Summary Get one of your orders
// @Tags orders
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} models.Order
// @Failure 404 {object} models.APIError
// @Security BearerAuth
// @Router /api/orders/{id} [get]
func (oc *OrderController) GetOrder(c *gin.Context) {
	order, err := oc.service.Get(c.Request.Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		respondNotFoundAs(c, err, models.ErrOrderNotFound, "Order not found")
		return
	}
	c.JSON(http.StatusOK, order)
}

// ListAllOrders godoc
// @Summary List every order
// @Description Admin view with customer details and lines
// @Tags admin
// @Produce json
// @Success 200 {array} models.Order
// @Failure 401 {object} models.APIError
// @Failure 403 {object} models.APIError
// @Security AdminAuth
// @Router /api/orders/admin/all [get]
func (oc *OrderController) ListAllOrders(c *gin.Context) {
	orders, err := oc.service.ListAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

// SetOrderStatus godoc
// @Summary Override an order status
// @Description Sets any known status, skipping the delivery timeline
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "Order ID"
// @Param request body setStatusRequest true "New status"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Security AdminAuth
// @Router /api/orders/admin/{id}/status [put]
func (oc *OrderController) SetOrderStatus(c *gin.Context) {
	var req setStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	order, err := oc.service.SetStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		respondNotFoundAs(c, err, models.ErrOrderNotFound, "Order not found")
		return
	}

	log.WithField("client_id", c.GetString(middleware.ContextClientID)).
		WithField("order_id", order.ID).
		Info("Admin changed order status")

	c.JSON(http.StatusOK, gin.H{"success": true, "status": order.Status})
}
