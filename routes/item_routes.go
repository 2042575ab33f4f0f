package routes

import (
	"github.com/gin-gonic/gin"

	handlers "rentit/internal/handlers/shared"
)

func SetupItemRoutes(r *gin.RouterGroup, itemHandler *handlers.ItemHandler, auth gin.HandlerFunc) {
	items := r.Group("/items")
	{
		// Public browsing
		items.GET("", itemHandler.ListItems)
		items.GET("/", itemHandler.ListItems)
		items.GET("/:id", itemHandler.GetItem)

		// Owner operations
		items.POST("", auth, itemHandler.CreateItem)
		items.POST("/", auth, itemHandler.CreateItem)
		items.POST("/upload", auth, itemHandler.CreateItemWithImages)
		items.POST("/upload-only", auth, itemHandler.UploadImages)
		items.GET("/owner/mine", auth, itemHandler.GetMyItems)
		items.PUT("/:id", auth, itemHandler.UpdateItem)
		items.DELETE("/:id", auth, itemHandler.DeleteItem)
	}
}
