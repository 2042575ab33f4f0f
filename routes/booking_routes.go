package routes

import (
	"github.com/gin-gonic/gin"

	handlers "rentit/internal/handlers/shared"
)

func SetupBookingRoutes(r *gin.RouterGroup, bookingHandler *handlers.BookingHandler, auth gin.HandlerFunc) {
	bookings := r.Group("/bookings")
	bookings.Use(auth)
	{
		bookings.POST("", bookingHandler.CreateBooking)
		bookings.POST("/", bookingHandler.CreateBooking)
		bookings.GET("/mine", bookingHandler.GetMyBookings)
		bookings.GET("/incoming", bookingHandler.GetIncomingBookings)
		bookings.GET("/:id", bookingHandler.GetBooking)

		// Owner responses
		bookings.PATCH("/:id/accept", bookingHandler.AcceptBooking)
		bookings.PATCH("/:id/decline", bookingHandler.DeclineBooking)

		// Requester
		bookings.PATCH("/:id/cancel", bookingHandler.CancelBooking)
	}
}
