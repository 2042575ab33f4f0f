package routes

import (
	"github.com/gin-gonic/gin"

	"rentit/internal/handlers/admin"
	handlers "rentit/internal/handlers/shared"
)

func SetupOrderRoutes(r *gin.RouterGroup, orderHandler *handlers.OrderHandler, adminHandler *admin.OrderHandler, auth gin.HandlerFunc, adminOnly []gin.HandlerFunc) {
	orders := r.Group("/order")
	{
		// Stripe calls this one directly
		orders.POST("/webhook", orderHandler.StripeWebhook)

		orders.POST("/place", auth, orderHandler.PlaceOrder)
		orders.POST("/stripe", auth, orderHandler.PlaceStripeOrder)
		orders.POST("/verify", auth, orderHandler.VerifyPayment)
		orders.GET("/userorders", auth, orderHandler.GetUserOrders)
		orders.POST("/userorders", auth, orderHandler.GetUserOrders)
	}

	back := orders.Group("")
	back.Use(adminOnly...)
	{
		back.POST("/list", adminHandler.ListOrders)
		back.POST("/status", adminHandler.UpdateStatus)
	}
}
