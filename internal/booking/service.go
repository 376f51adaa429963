package booking

import (
	"context"
	"time"

	"github.com/Kuros85Ya/shareit-go/internal/pkg/request"
	"github.com/Kuros85Ya/shareit-go/internal/user"
)

// ItemSummary is the slice of item state the booking rules need.
type ItemSummary struct {
	ID        int64
	Name      string
	OwnerID   int64
	Available bool
}

// Catalog resolves items for the booking engine. Implemented by the item
// module through an adapter; failures surface the item module's errors.
type Catalog interface {
	ItemSummary(ctx context.Context, itemID int64) (*ItemSummary, error)
}

type CreateRequest struct {
	BookerID int64
	ItemID   int64
	Start    time.Time
	End      time.Time
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Booking, error)
	SetApproval(ctx context.Context, actorID, bookingID int64, approved bool) (*Booking, error)
	Cancel(ctx context.Context, actorID, bookingID int64) (*Booking, error)
	GetByID(ctx context.Context, actorID, bookingID int64) (*Booking, error)
	ListByBooker(ctx context.Context, userID int64, state State, page request.PageParams) ([]*Booking, error)
	ListByOwnerItems(ctx context.Context, userID int64, state State, page request.PageParams) ([]*Booking, error)
}

type service struct {
	repo        Repository
	userService user.Service
	catalog     Catalog
}

func NewService(repo Repository, userService user.Service, catalog Catalog) Service {
	return &service{
		repo:        repo,
		userService: userService,
		catalog:     catalog,
	}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Booking, error) {
	booker, err := s.userService.GetByID(ctx, req.BookerID)
	if err != nil {
		return nil, err
	}
	item, err := s.catalog.ItemSummary(ctx, req.ItemID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if err := validateTimeRange(req.Start, req.End, now); err != nil {
		return nil, err
	}
	if !item.Available {
		return nil, ErrItemUnavailable
	}
	if booker.ID == item.OwnerID {
		return nil, ErrOwnBooking
	}

	b := &Booking{
		ItemID:      item.ID,
		ItemName:    item.Name,
		ItemOwnerID: item.OwnerID,
		BookerID:    booker.ID,
		BookerName:  booker.Name,
		Start:       req.Start,
		End:         req.End,
		Status:      StatusWaiting,
		Created:     now,
	}
	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *service) SetApproval(ctx context.Context, actorID, bookingID int64, approved bool) (*Booking, error) {
	next := StatusRejected
	if approved {
		next = StatusApproved
	}
	return s.transition(ctx, bookingID, next, func(b *Booking) error {
		if b.ItemOwnerID != actorID {
			return ErrPermissionDenied
		}
		return nil
	})
}

func (s *service) Cancel(ctx context.Context, actorID, bookingID int64) (*Booking, error) {
	return s.transition(ctx, bookingID, StatusCanceled, func(b *Booking) error {
		if b.BookerID != actorID {
			return ErrPermissionDenied
		}
		return nil
	})
}

// transition moves a WAITING booking into a terminal status. The conditional
// write keeps two racing transitions from both succeeding: whoever loses the
// race observes the same error as a plain repeat call.
func (s *service) transition(ctx context.Context, bookingID int64, next Status, authorize func(*Booking) error) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if err := authorize(b); err != nil {
		return nil, err
	}
	if b.Status != StatusWaiting {
		return nil, ErrStatusFinal
	}

	applied, err := s.repo.UpdateStatusIfWaiting(ctx, bookingID, next)
	if err != nil {
		return nil, err
	}
	if !applied {
		return nil, ErrStatusFinal
	}

	b.Status = next
	return b, nil
}

func (s *service) GetByID(ctx context.Context, actorID, bookingID int64) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.BookerID != actorID && b.ItemOwnerID != actorID {
		return nil, ErrPermissionDenied
	}
	return b, nil
}

func (s *service) ListByBooker(ctx context.Context, userID int64, state State, page request.PageParams) ([]*Booking, error) {
	if err := page.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.userService.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	now := time.Now()
	var (
		bookings []*Booking
		err      error
	)

	switch state {
	case StateAll:
		bookings, err = s.repo.ListByBooker(ctx, userID, page)
	case StateCurrent:
		bookings, err = s.repo.ListByBookerActiveAt(ctx, userID, now, page)
	case StatePast:
		bookings, err = s.repo.ListByBookerEndingBefore(ctx, userID, now)
	case StateFuture:
		bookings, err = s.repo.ListByBookerStartingAfter(ctx, userID, now)
	case StateWaiting:
		bookings, err = s.repo.ListByBookerAndStatus(ctx, userID, StatusWaiting)
	case StateRejected:
		bookings, err = s.repo.ListByBookerAndStatus(ctx, userID, StatusRejected)
	default:
		return nil, ErrUnknownState
	}
	if err != nil {
		return nil, err
	}

	return finishListing(bookings, state, now), nil
}

func (s *service) ListByOwnerItems(ctx context.Context, userID int64, state State, page request.PageParams) ([]*Booking, error) {
	if err := page.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.userService.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	switch state {
	case StateAll, StateCurrent, StatePast, StateFuture, StateWaiting, StateRejected:
	default:
		return nil, ErrUnknownState
	}

	bookings, err := s.repo.ListByOwner(ctx, userID, page)
	if err != nil {
		return nil, err
	}

	return finishListing(bookings, state, time.Now()), nil
}

// finishListing applies the shared state predicate and the booking ordering.
// The per-booker repository queries already narrow by time or status, so for
// that path the predicate only trims statuses the query could not express.
func finishListing(bookings []*Booking, state State, now time.Time) []*Booking {
	filtered := make([]*Booking, 0, len(bookings))
	for _, b := range bookings {
		if state.Matches(b, now) {
			filtered = append(filtered, b)
		}
	}
	Sort(filtered)
	return filtered
}

func validateTimeRange(start, end time.Time, now time.Time) error {
	if start.IsZero() || end.IsZero() ||
		!start.After(now) ||
		end.Before(now) ||
		end.Before(start) || end.Equal(start) {
		return ErrInvalidTimeRange
	}
	return nil
}
