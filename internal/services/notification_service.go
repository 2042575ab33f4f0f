package services

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"rentit/internal/models"
	"rentit/pkg/email"
	"rentit/pkg/logger"
	"rentit/pkg/websocket"
)

type NotificationService interface {
	Notify(ctx context.Context, userID primitive.ObjectID, notificationType models.NotificationType, data map[string]interface{})
	EmailBookingReceived(ctx context.Context, to string, data email.BookingEmail)
	EmailBookingAccepted(ctx context.Context, to string, data email.BookingEmail)
	// Wait blocks until queued emails have been handed to the mailer.
	Wait()
}

// emailTimeout bounds one background send.
const emailTimeout = 30 * time.Second

// Publisher fans a message out to every instance.
type Publisher interface {
	Publish(ctx context.Context, channel string, message interface{}) error
}

// Mailer sends the booking emails.
type Mailer interface {
	SendBookingReceived(ctx context.Context, to string, data email.BookingEmail) error
	SendBookingAccepted(ctx context.Context, to string, data email.BookingEmail) error
}

// UserNotifier delivers to sockets on this instance.
type UserNotifier interface {
	SendToUser(message websocket.Message)
}

type notificationService struct {
	hub       UserNotifier
	publisher Publisher
	mailer    Mailer
	logger    *logger.Logger
	sending   sync.WaitGroup
}

// NewNotificationService publishes through redis when publisher is set and
// otherwise delivers straight to the local hub. Any argument may be nil.
func NewNotificationService(hub UserNotifier, publisher Publisher, mailer Mailer, logger *logger.Logger) NotificationService {
	return &notificationService{
		hub:       hub,
		publisher: publisher,
		mailer:    mailer,
		logger:    logger,
	}
}

func (s *notificationService) Notify(ctx context.Context, userID primitive.ObjectID, notificationType models.NotificationType, data map[string]interface{}) {
	message := websocket.Message{
		Type:   string(notificationType),
		UserID: userID,
		Data:   data,
	}

	if s.publisher != nil {
		err := s.publisher.Publish(ctx, websocket.NotificationChannel, message)
		if err == nil {
			return
		}
		s.logger.WithError(err).WithUserID(userID).Warn("Failed to publish notification, delivering locally")
	}

	if s.hub != nil {
		s.hub.SendToUser(message)
	}
}

// Emails go out in the background so a slow SMTP server never holds up the
// request. The send outlives the request context but not emailTimeout.
func (s *notificationService) EmailBookingReceived(ctx context.Context, to string, data email.BookingEmail) {
	if s.mailer == nil || to == "" {
		return
	}
	s.sendAsync(ctx, "Booking received email not sent", func(ctx context.Context) error {
		return s.mailer.SendBookingReceived(ctx, to, data)
	})
}

func (s *notificationService) EmailBookingAccepted(ctx context.Context, to string, data email.BookingEmail) {
	if s.mailer == nil || to == "" {
		return
	}
	s.sendAsync(ctx, "Booking accepted email not sent", func(ctx context.Context) error {
		return s.mailer.SendBookingAccepted(ctx, to, data)
	})
}

func (s *notificationService) sendAsync(ctx context.Context, failure string, send func(context.Context) error) {
	s.sending.Add(1)
	go func() {
		defer s.sending.Done()

		sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), emailTimeout)
		defer cancel()

		if err := send(sendCtx); err != nil {
			s.logger.WithError(err).Warn(failure)
		}
	}()
}

func (s *notificationService) Wait() {
	s.sending.Wait()
}
