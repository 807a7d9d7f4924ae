package booking

import (
	"strings"
	"time"

	"github.com/linsok/housing-analyzer-sub000/internal/domain"
)

// ListFilter narrows a fetched booking list. All matching happens in
// memory in a single pass; lists at this scale need no index.
type ListFilter struct {
	// Search matches case-insensitively against renter name, email,
	// phone and property title.
	Search string
	// Status is an exact status match; empty or "all" disables it.
	Status string
	// Date ("2006-01-02") matches bookings on the same calendar day as
	// their visit time (visits) or start date (rentals).
	Date string
}

func FilterBookings(list []domain.Booking, f ListFilter) []domain.Booking {
	search := strings.ToLower(strings.TrimSpace(f.Search))
	status := strings.TrimSpace(f.Status)

	var day time.Time
	filterByDay := false
	if f.Date != "" {
		if parsed, err := time.Parse("2006-01-02", f.Date); err == nil {
			day = parsed
			filterByDay = true
		}
	}

	out := make([]domain.Booking, 0, len(list))
	for _, b := range list {
		if search != "" && !matchesSearch(&b, search) {
			continue
		}
		if status != "" && status != "all" && string(b.Status) != status {
			continue
		}
		if filterByDay && !matchesDay(&b, day) {
			continue
		}
		out = append(out, b)
	}
	return out
}

func matchesSearch(b *domain.Booking, search string) bool {
	if b.Renter != nil {
		if strings.Contains(strings.ToLower(b.Renter.FullName), search) ||
			strings.Contains(strings.ToLower(b.Renter.Email), search) ||
			strings.Contains(b.Renter.Phone, search) {
			return true
		}
	}
	if b.Property != nil && strings.Contains(strings.ToLower(b.Property.Title), search) {
		return true
	}
	return false
}

func matchesDay(b *domain.Booking, day time.Time) bool {
	var when *time.Time
	switch {
	case b.VisitTime != nil:
		when = b.VisitTime
	case b.StartDate != nil:
		when = b.StartDate
	default:
		return false
	}

	y1, m1, d1 := when.Date()
	y2, m2, d2 := day.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
