package notification

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linsok/housing-analyzer-sub000/internal/domain"
)

type stubRepo struct {
	created   []domain.Notification
	createErr error
	read      []int64
	allRead   bool
}

func (r *stubRepo) Create(_ context.Context, n *domain.Notification) error {
	if r.createErr != nil {
		return r.createErr
	}
	n.ID = int64(len(r.created) + 1)
	r.created = append(r.created, *n)
	return nil
}

func (r *stubRepo) ListByUser(_ context.Context, userID int64, unreadOnly bool, _ int) ([]domain.Notification, error) {
	var out []domain.Notification
	for _, n := range r.created {
		if n.UserID != userID {
			continue
		}
		if unreadOnly && n.IsRead {
			continue
		}
		out = append(out, n)
	}
	return out, nil
}

func (r *stubRepo) MarkRead(_ context.Context, _, notificationID int64) error {
	r.read = append(r.read, notificationID)
	return nil
}

func (r *stubRepo) MarkAllRead(_ context.Context, _ int64) error {
	r.allRead = true
	return nil
}

type stubPusher struct {
	online   bool
	messages []interface{}
}

func (p *stubPusher) SendToUser(_ int64, message interface{}) bool {
	if !p.online {
		return false
	}
	p.messages = append(p.messages, message)
	return true
}

func TestNotifyPersistsAndPushes(t *testing.T) {
	repo := &stubRepo{}
	pusher := &stubPusher{online: true}
	svc := NewService(repo, pusher)

	err := svc.Notify(context.Background(), 20, domain.NotifyBookingConfirmed, 7, "Booking confirmed", "Your booking #7 is now confirmed")
	require.NoError(t, err)

	require.Len(t, repo.created, 1)
	assert.Equal(t, domain.NotifyBookingConfirmed, repo.created[0].Type)
	require.NotNil(t, repo.created[0].BookingID)
	assert.Equal(t, int64(7), *repo.created[0].BookingID)
	assert.Len(t, pusher.messages, 1)
}

func TestNotifySurvivesOfflineUser(t *testing.T) {
	repo := &stubRepo{}
	svc := NewService(repo, &stubPusher{online: false})

	err := svc.Notify(context.Background(), 20, domain.NotifyBookingCreated, 7, "New booking request", "body")
	require.NoError(t, err)
	assert.Len(t, repo.created, 1, "notification is stored even when the push misses")
}

func TestNotifyPropagatesStoreFailure(t *testing.T) {
	repo := &stubRepo{createErr: errors.New("db down")}
	pusher := &stubPusher{online: true}
	svc := NewService(repo, pusher)

	err := svc.Notify(context.Background(), 20, domain.NotifyBookingCreated, 7, "t", "b")
	assert.Error(t, err)
	assert.Empty(t, pusher.messages, "nothing is pushed when persistence fails")
}

func TestListClampsLimit(t *testing.T) {
	repo := &stubRepo{}
	svc := NewService(repo, nil)

	for i := 0; i < 3; i++ {
		require.NoError(t, svc.Notify(context.Background(), 20, domain.NotifyBookingCreated, 0, "t", "b"))
	}

	list, err := svc.List(context.Background(), 20, false, -5)
	require.NoError(t, err)
	assert.Len(t, list, 3)

	// BookingID stays nil when no booking is involved.
	assert.Nil(t, list[0].BookingID)
}
