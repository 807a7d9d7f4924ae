package domain

// Actor is the party attempting a booking action.
type Actor string

const (
	ActorOwner  Actor = "owner"
	ActorRenter Actor = "renter"
)

// BookingAction is a lifecycle action against a booking.
type BookingAction string

const (
	ActionConfirm       BookingAction = "confirm"
	ActionConfirmReview BookingAction = "confirm_review"
	ActionReject        BookingAction = "reject"
	ActionComplete      BookingAction = "complete"
	ActionCancel        BookingAction = "cancel"
)

// transition is one row of the legal transition table. Every status
// mutation in the service layer goes through this table; the same table
// drives which actions a client is offered, so the two cannot drift.
type transition struct {
	Actor Actor
	From  []BookingStatus
	To    BookingStatus
}

var transitions = map[BookingAction]transition{
	ActionConfirm: {
		Actor: ActorOwner,
		From:  []BookingStatus{BookingPending, BookingReviewConfirmed},
		To:    BookingConfirmed,
	},
	ActionConfirmReview: {
		Actor: ActorOwner,
		From:  []BookingStatus{BookingPending, BookingPendingReview},
		To:    BookingReviewConfirmed,
	},
	ActionReject: {
		Actor: ActorOwner,
		From:  []BookingStatus{BookingPending, BookingPendingReview, BookingReviewConfirmed},
		To:    BookingRejected,
	},
	ActionComplete: {
		Actor: ActorOwner,
		From:  []BookingStatus{BookingConfirmed},
		To:    BookingCompleted,
	},
	ActionCancel: {
		Actor: ActorRenter,
		From:  []BookingStatus{BookingPending, BookingConfirmed},
		To:    BookingCancelled,
	},
}

// actionOrder keeps AllowedActions output deterministic.
var actionOrder = []BookingAction{
	ActionConfirm, ActionConfirmReview, ActionReject, ActionComplete, ActionCancel,
}

// CanTransition reports whether actor may apply action to a booking in
// the given status.
func CanTransition(status BookingStatus, action BookingAction, actor Actor) bool {
	t, ok := transitions[action]
	if !ok || t.Actor != actor {
		return false
	}
	for _, from := range t.From {
		if from == status {
			return true
		}
	}
	return false
}

// NextStatus returns the status an action leads to.
func NextStatus(action BookingAction) (BookingStatus, bool) {
	t, ok := transitions[action]
	if !ok {
		return "", false
	}
	return t.To, true
}

// AllowedActions returns the actions legal for actor at the given
// status, in stable order.
func AllowedActions(status BookingStatus, actor Actor) []BookingAction {
	out := make([]BookingAction, 0, 2)
	for _, a := range actionOrder {
		if CanTransition(status, a, actor) {
			out = append(out, a)
		}
	}
	return out
}

// IsTerminal reports whether no further transitions exist from status.
func IsTerminal(status BookingStatus) bool {
	switch status {
	case BookingCompleted, BookingCancelled, BookingRejected:
		return true
	}
	return false
}

// StatusMeta is the shared badge metadata for a booking status. Every
// view consumes this single table instead of keeping its own map.
type StatusMeta struct {
	Label    string `json:"label"`
	Severity string `json:"severity"`
}

var statusMeta = map[BookingStatus]StatusMeta{
	BookingPending:         {Label: "Pending", Severity: "warning"},
	BookingPendingReview:   {Label: "Pending Review", Severity: "warning"},
	BookingReviewConfirmed: {Label: "Review Confirmed", Severity: "info"},
	BookingConfirmed:       {Label: "Confirmed", Severity: "success"},
	BookingCompleted:       {Label: "Completed", Severity: "success"},
	BookingCancelled:       {Label: "Cancelled", Severity: "danger"},
	BookingRejected:        {Label: "Rejected", Severity: "danger"},
}

// MetaFor returns badge metadata for status. Unknown statuses get a
// neutral fallback rather than a zero value.
func MetaFor(status BookingStatus) StatusMeta {
	if m, ok := statusMeta[status]; ok {
		return m
	}
	return StatusMeta{Label: string(status), Severity: "info"}
}
