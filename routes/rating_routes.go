package routes

import (
	"github.com/gin-gonic/gin"

	handlers "rentit/internal/handlers/shared"
)

func SetupRatingRoutes(r *gin.RouterGroup, ratingHandler *handlers.RatingHandler, auth gin.HandlerFunc) {
	ratings := r.Group("/ratings")
	{
		ratings.POST("/create", auth, ratingHandler.CreateRating)
		ratings.GET("/user/:userId", ratingHandler.GetUserRatings)
		ratings.GET("/check", ratingHandler.CheckRating)
		ratings.GET("/summary/:userId", ratingHandler.GetRatingSummary)
		ratings.GET("/bench/:userId", ratingHandler.GetGivenRatings)
	}
}
