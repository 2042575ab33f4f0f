package routes

import (
	"github.com/gin-gonic/gin"

	handlers "rentit/internal/handlers/shared"
)

func SetupCartRoutes(r *gin.RouterGroup, cartHandler *handlers.CartHandler, auth gin.HandlerFunc) {
	cart := r.Group("/cart")
	cart.Use(auth)
	{
		cart.POST("/add", cartHandler.AddToCart)
		cart.POST("/update", cartHandler.UpdateCart)
		cart.GET("", cartHandler.GetCart)
		cart.GET("/", cartHandler.GetCart)
		cart.POST("/get", cartHandler.GetCart)
	}
}
