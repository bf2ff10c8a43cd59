package controllers

import (
	"github.com/gin-gonic/gin"
)

// Router holds every controller plus the two auth middlewares
type Router struct {
	Auth         *AuthController
	Menu         *MenuController
	Cart         *CartController
	Orders       *OrderController
	Profile      *ProfileController
	Clients      *ClientController
	Health       *HealthController
	TokenHandler gin.HandlerFunc
	SessionAuth  gin.HandlerFunc
	AdminAuth    gin.HandlerFunc
}

// RegisterRoutes mounts the API under /api plus the root health check
func (r *Router) RegisterRoutes(router *gin.Engine) {
	router.GET("/health", r.Health.HealthCheck)

	api := router.Group("/api")
	{
		api.GET("/health", r.Health.HealthCheck)
		api.POST("/oauth/token", r.TokenHandler)

		authApi := api.Group("/auth")
		{
			authApi.POST("/send-otp", r.Auth.SendOTP)
			authApi.POST("/verify-otp", r.Auth.VerifyOTP)
		}

		menuApi := api.Group("/menu")
		{
			menuApi.GET("", r.Menu.ListMenu)
			menuApi.GET("/categories", r.Menu.ListCategories)
			menuApi.GET("/:id", r.Menu.GetMenuItem)
		}

		cartApi := api.Group("/cart", r.SessionAuth)
		{
			cartApi.GET("", r.Cart.GetCart)
			cartApi.POST("", r.Cart.UpsertItem)
			cartApi.DELETE("", r.Cart.ClearCart)
			cartApi.DELETE("/:menu_item_id", r.Cart.RemoveItem)
		}

		ordersApi := api.Group("/orders")
		{
			// Admin routes take the admin token instead of a session
			adminOrders := ordersApi.Group("/admin", r.AdminAuth)
			{
				adminOrders.GET("/all", r.Orders.ListAllOrders)
				adminOrders.PUT("/:id/status", r.Orders.SetOrderStatus)
			}

			ordersApi.POST("", r.SessionAuth, r.Orders.PlaceOrder)
			ordersApi.GET("", r.SessionAuth, r.Orders.ListOrders)
			ordersApi.GET("/:id", r.SessionAuth, r.Orders.GetOrder)
		}

		profileApi := api.Group("/profile", r.SessionAuth)
		{
			profileApi.GET("", r.Profile.GetProfile)
			profileApi.PUT("", r.Profile.UpdateProfile)
		}

		adminApi := api.Group("/admin", r.AdminAuth)
		{
			adminApi.GET("/clients", r.Clients.ListClients)
			adminApi.POST("/clients", r.Clients.CreateClient)
			adminApi.DELETE("/clients/:id", r.Clients.DeleteClient)
		}
	}
}
