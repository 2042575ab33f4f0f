package routes

import (
	"github.com/gin-gonic/gin"

	handlers "rentit/internal/handlers/shared"
)

func SetupUserRoutes(r *gin.RouterGroup, userHandler *handlers.UserHandler, auth gin.HandlerFunc) {
	users := r.Group("/user")
	{
		users.POST("/register", userHandler.Register)
		users.POST("/login", userHandler.Login)
		users.POST("/admin", userHandler.AdminLogin)
		users.POST("/refresh", userHandler.RefreshToken)

		users.GET("/profile", auth, userHandler.GetProfile)
		users.PUT("/profile", auth, userHandler.UpdateProfile)
		users.POST("/profile/image", auth, userHandler.UploadProfileImage)

		users.GET("/:id", userHandler.GetPublicProfile)
	}
}
