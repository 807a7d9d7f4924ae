package notification

import (
	"context"
	"log"

	"github.com/linsok/housing-analyzer-sub000/internal/domain"
)

// NotificationRepository is the persistence surface for notifications.
type NotificationRepository interface {
	Create(ctx context.Context, n *domain.Notification) error
	ListByUser(ctx context.Context, userID int64, unreadOnly bool, limit int) ([]domain.Notification, error)
	MarkRead(ctx context.Context, userID, notificationID int64) error
	MarkAllRead(ctx context.Context, userID int64) error
}

// Pusher delivers a notification to a live connection, if any.
type Pusher interface {
	SendToUser(userID int64, message interface{}) bool
}

type Service struct {
	repo NotificationRepository
	hub  Pusher
}

func NewService(repo NotificationRepository, hub Pusher) *Service {
	return &Service{repo: repo, hub: hub}
}

// wsEvent is the envelope pushed over the websocket.
type wsEvent struct {
	Type         string               `json:"type"`
	Notification *domain.Notification `json:"notification"`
}

// Notify persists the notification and pushes it to the user if they
// are connected. Persistence is the source of truth; the push is best
// effort.
func (s *Service) Notify(ctx context.Context, userID int64, t domain.NotificationType, bookingID int64, title, body string) error {
	n := &domain.Notification{
		UserID: userID,
		Type:   t,
		Title:  title,
		Body:   body,
	}
	if bookingID != 0 {
		n.BookingID = &bookingID
	}

	if err := s.repo.Create(ctx, n); err != nil {
		log.Printf("notification_create_failed user=%d type=%s err=%v", userID, t, err)
		return err
	}

	if s.hub != nil {
		s.hub.SendToUser(userID, wsEvent{Type: "notification", Notification: n})
	}
	return nil
}

func (s *Service) List(ctx context.Context, userID int64, unreadOnly bool, limit int) ([]domain.Notification, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return s.repo.ListByUser(ctx, userID, unreadOnly, limit)
}

func (s *Service) MarkRead(ctx context.Context, userID, notificationID int64) error {
	return s.repo.MarkRead(ctx, userID, notificationID)
}

func (s *Service) MarkAllRead(ctx context.Context, userID int64) error {
	return s.repo.MarkAllRead(ctx, userID)
}
