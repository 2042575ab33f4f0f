package routes

import (
	"github.com/gin-gonic/gin"

	handlers "rentit/internal/handlers/shared"
)

func SetupRentalRequestRoutes(r *gin.RouterGroup, requestHandler *handlers.RentalRequestHandler, auth gin.HandlerFunc) {
	requests := r.Group("/requests")
	{
		requests.GET("", requestHandler.ListRequests)
		requests.GET("/", requestHandler.ListRequests)
		requests.GET("/:id", requestHandler.GetRequest)

		requests.POST("", auth, requestHandler.CreateRequest)
		requests.POST("/", auth, requestHandler.CreateRequest)
		requests.GET("/user/my", auth, requestHandler.GetMyRequests)
		requests.PATCH("/:id/close", auth, requestHandler.CloseRequest)
		requests.DELETE("/:id", auth, requestHandler.DeleteRequest)
	}
}
