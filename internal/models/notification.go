package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type NotificationType string

const (
	NotificationBookingReceived    NotificationType = "booking_received"
	NotificationBookingAccepted    NotificationType = "booking_accepted"
	NotificationBookingDeclined    NotificationType = "booking_declined"
	NotificationBookingCancelled   NotificationType = "booking_cancelled"
	NotificationRatingReceived     NotificationType = "rating_received"
	NotificationOrderStatusChanged NotificationType = "order_status_changed"
)

// Notification is pushed to a single user over the websocket hub.
type Notification struct {
	Type      NotificationType       `json:"type"`
	UserID    primitive.ObjectID     `json:"user_id"`
	Data      map[string]interface{} `json:"data,omitempty"`
	CreatedAt time.Time              `json:"created_at"`
}
