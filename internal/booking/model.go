package booking

import (
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/Kuros85Ya/shareit-go/internal/pkg/apperror"
)

var (
	ErrNotFound         = apperror.New(http.StatusNotFound, "booking not found")
	ErrItemNotFound     = apperror.New(http.StatusNotFound, "item not found")
	ErrInvalidTimeRange = apperror.New(http.StatusBadRequest, "invalid booking time range")
	ErrItemUnavailable  = apperror.New(http.StatusBadRequest, "item is not available for booking")
	ErrOwnBooking       = apperror.New(http.StatusForbidden, "cannot book own item")
	ErrPermissionDenied = apperror.New(http.StatusForbidden, "permission denied")
	ErrStatusFinal      = apperror.New(http.StatusBadRequest, "booking status cannot be changed")
	ErrUnknownState     = apperror.New(http.StatusBadRequest, "unsupported state")
)

// Status is the lifecycle state of a booking. WAITING is the only non-terminal
// status: owners move it to APPROVED or REJECTED, bookers to CANCELED.
type Status string

const (
	StatusWaiting  Status = "WAITING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
	StatusCanceled Status = "CANCELED"
)

// countsForSchedule reports whether a booking in this status still occupies
// the item's timeline. Rejected and canceled bookings do not show up as past
// or future rentals, and never feed the last/next booking of an item view.
func (s Status) countsForSchedule() bool {
	return s == StatusWaiting || s == StatusApproved
}

// State is the listing filter requested by the caller.
type State string

const (
	StateAll      State = "ALL"
	StateCurrent  State = "CURRENT"
	StatePast     State = "PAST"
	StateFuture   State = "FUTURE"
	StateWaiting  State = "WAITING"
	StateRejected State = "REJECTED"
)

// ParseState converts the query parameter into a State, case-insensitively.
// An empty value defaults to ALL.
func ParseState(raw string) (State, error) {
	if raw == "" {
		return StateAll, nil
	}
	switch st := State(strings.ToUpper(raw)); st {
	case StateAll, StateCurrent, StatePast, StateFuture, StateWaiting, StateRejected:
		return st, nil
	default:
		return "", ErrUnknownState
	}
}

// Matches is the single state predicate applied to both the per-booker and
// per-owner listings.
func (st State) Matches(b *Booking, now time.Time) bool {
	switch st {
	case StateAll:
		return true
	case StateCurrent:
		return !b.Start.After(now) && b.End.After(now)
	case StatePast:
		return b.End.Before(now) && b.Status.countsForSchedule()
	case StateFuture:
		return b.Start.After(now) && b.Status.countsForSchedule()
	case StateWaiting:
		return b.Status == StatusWaiting
	case StateRejected:
		return b.Status == StatusRejected
	default:
		return false
	}
}

// Booking is a time-ranged rental request against an item. Item and booker
// names are denormalized from their stores for presentation.
type Booking struct {
	ID          int64
	ItemID      int64
	ItemName    string
	ItemOwnerID int64
	BookerID    int64
	BookerName  string
	Start       time.Time
	End         time.Time
	Status      Status
	Created     time.Time
}

// Less is the one ordering policy for booking lists: later start first,
// identical starts broken by the smaller id.
func Less(a, b *Booking) bool {
	if a.Start.Equal(b.Start) {
		return a.ID < b.ID
	}
	return a.Start.After(b.Start)
}

// Sort orders bookings in place under Less.
func Sort(bookings []*Booking) {
	sort.Slice(bookings, func(i, j int) bool { return Less(bookings[i], bookings[j]) })
}
