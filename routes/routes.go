package routes

import (
	"github.com/gin-gonic/gin"

	"rentit/internal/handlers/admin"
	handlers "rentit/internal/handlers/shared"
	"rentit/internal/middleware"
	"rentit/pkg/websocket"
)

// Handlers groups everything the API routes dispatch to.
type Handlers struct {
	User          *handlers.UserHandler
	Item          *handlers.ItemHandler
	RentalRequest *handlers.RentalRequestHandler
	Booking       *handlers.BookingHandler
	Rating        *handlers.RatingHandler
	Cart          *handlers.CartHandler
	Order         *handlers.OrderHandler
	AdminOrder    *admin.OrderHandler
	WebSocket     *websocket.Handler
}

// SetupAPIRoutes mounts every feature under r, normally the /api group.
func SetupAPIRoutes(r *gin.RouterGroup, h *Handlers, jwtSecret string) {
	auth := middleware.AuthRequired(jwtSecret)
	adminOnly := []gin.HandlerFunc{auth, middleware.AdminRequired()}

	SetupUserRoutes(r, h.User, auth)
	SetupItemRoutes(r, h.Item, auth)
	SetupRentalRequestRoutes(r, h.RentalRequest, auth)
	SetupBookingRoutes(r, h.Booking, auth)
	SetupRatingRoutes(r, h.Rating, auth)
	SetupCartRoutes(r, h.Cart, auth)
	SetupOrderRoutes(r, h.Order, h.AdminOrder, auth, adminOnly)

	if h.WebSocket != nil {
		r.GET("/ws", auth, h.WebSocket.HandleWebSocket)
	}
}
