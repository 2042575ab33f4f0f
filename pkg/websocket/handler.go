package websocket

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"rentit/internal/middleware"
	"rentit/internal/utils"
)

type Handler struct {
	hub      *Hub
	upgrader websocket.Upgrader
}

// NewHandler upgrades authenticated requests. allowedOrigins follows the
// CORS list; "*" accepts any origin.
func NewHandler(hub *Hub, allowedOrigins []string) *Handler {
	origins := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		origins[o] = true
	}

	return &Handler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || origins["*"] || origins[origin]
			},
		},
	}
}

func (h *Handler) HandleWebSocket(c *gin.Context) {
	// admin tokens carry no user and have no notifications to receive
	userID, ok := middleware.GetUserID(c)
	if !ok || userID.IsZero() {
		utils.UnauthorizedResponse(c)
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.hub.logger.WithError(err).Warn("WebSocket upgrade failed")
		return
	}

	client := NewClient(h.hub, conn, userID)
	h.hub.register <- client

	go client.writePump()
	go client.readPump()
}
