package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAllowedActionsMatchTransitionTable(t *testing.T) {
	cases := []struct {
		status BookingStatus
		actor  Actor
		want   []BookingAction
	}{
		{BookingPending, ActorOwner, []BookingAction{ActionConfirm, ActionConfirmReview, ActionReject}},
		{BookingPending, ActorRenter, []BookingAction{ActionCancel}},
		{BookingPendingReview, ActorOwner, []BookingAction{ActionConfirmReview, ActionReject}},
		{BookingPendingReview, ActorRenter, []BookingAction{}},
		{BookingReviewConfirmed, ActorOwner, []BookingAction{ActionConfirm, ActionReject}},
		{BookingConfirmed, ActorOwner, []BookingAction{ActionComplete}},
		{BookingConfirmed, ActorRenter, []BookingAction{ActionCancel}},
		{BookingCompleted, ActorOwner, []BookingAction{}},
		{BookingCancelled, ActorOwner, []BookingAction{}},
		{BookingRejected, ActorRenter, []BookingAction{}},
	}

	for _, tc := range cases {
		got := AllowedActions(tc.status, tc.actor)
		assert.Equal(t, tc.want, got, "status=%s actor=%s", tc.status, tc.actor)
	}
}

func TestTerminalStatesOfferNoActions(t *testing.T) {
	for _, st := range []BookingStatus{BookingCompleted, BookingCancelled, BookingRejected} {
		assert.True(t, IsTerminal(st))
		for _, actor := range []Actor{ActorOwner, ActorRenter} {
			assert.Empty(t, AllowedActions(st, actor), "terminal status %s must offer nothing", st)
		}
	}
}

func TestCanTransitionRejectsWrongActor(t *testing.T) {
	assert.False(t, CanTransition(BookingPending, ActionConfirm, ActorRenter))
	assert.False(t, CanTransition(BookingPending, ActionCancel, ActorOwner))
	assert.False(t, CanTransition(BookingConfirmed, ActionConfirm, ActorOwner))
}

func TestNextStatus(t *testing.T) {
	next, ok := NextStatus(ActionConfirmReview)
	assert.True(t, ok)
	assert.Equal(t, BookingReviewConfirmed, next)

	_, ok = NextStatus(BookingAction("unknown"))
	assert.False(t, ok)
}

func TestMetaForCoversEveryStatus(t *testing.T) {
	all := []BookingStatus{
		BookingPending, BookingPendingReview, BookingReviewConfirmed,
		BookingConfirmed, BookingCompleted, BookingCancelled, BookingRejected,
	}
	for _, st := range all {
		m := MetaFor(st)
		assert.NotEmpty(t, m.Label, "status %s missing label", st)
		assert.NotEmpty(t, m.Severity, "status %s missing severity", st)
	}
}
