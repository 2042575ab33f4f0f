package handlers

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"rentit/internal/models"
	"rentit/internal/services"
	"rentit/internal/utils"
	"rentit/internal/validators"
)

type BookingHandler struct {
	bookingService services.BookingService
}

func NewBookingHandler(bookingService services.BookingService) *BookingHandler {
	return &BookingHandler{
		bookingService: bookingService,
	}
}

func (h *BookingHandler) CreateBooking(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var request validators.CreateBookingRequest
	if !bindJSON(c, &request) {
		return
	}

	booking, err := h.bookingService.CreateBooking(c.Request.Context(), userID, &request)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.CreatedResponse(c, "Booking request sent", booking)
}

func (h *BookingHandler) GetMyBookings(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	bookings, err := h.bookingService.GetMyBookings(c.Request.Context(), userID)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, "Bookings retrieved successfully", bookings)
}

func (h *BookingHandler) GetIncomingBookings(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	status := models.BookingStatus(c.Query("status"))
	bookings, err := h.bookingService.GetIncomingBookings(c.Request.Context(), userID, status)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, "Bookings retrieved successfully", bookings)
}

func (h *BookingHandler) GetBooking(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id", "Invalid booking ID")
	if !ok {
		return
	}

	booking, err := h.bookingService.GetBooking(c.Request.Context(), userID, id)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, "Booking retrieved successfully", booking)
}

type bookingAction func(ctx context.Context, userID, id primitive.ObjectID) (*models.Booking, error)

// respond runs one of the status transitions on the booking named in the path.
func (h *BookingHandler) respond(action bookingAction, message string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUser(c)
		if !ok {
			return
		}
		id, ok := paramID(c, "id", "Invalid booking ID")
		if !ok {
			return
		}

		booking, err := action(c.Request.Context(), userID, id)
		if err != nil {
			utils.HandleError(c, err)
			return
		}

		utils.SuccessResponse(c, message, booking)
	}
}

func (h *BookingHandler) AcceptBooking(c *gin.Context) {
	h.respond(h.bookingService.AcceptBooking, "Booking accepted")(c)
}

func (h *BookingHandler) DeclineBooking(c *gin.Context) {
	h.respond(h.bookingService.DeclineBooking, "Booking declined")(c)
}

func (h *BookingHandler) CancelBooking(c *gin.Context) {
	h.respond(h.bookingService.CancelBooking, "Booking cancelled")(c)
}
