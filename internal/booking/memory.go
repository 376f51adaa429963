package booking

import (
	"context"
	"sync"
	"time"

	"github.com/Kuros85Ya/shareit-go/internal/pkg/request"
)

// memoryRepository is a map-backed Repository kept for tests. It relies on
// the denormalized ItemOwnerID the service fills in at create time instead of
// joining against the item store.
type memoryRepository struct {
	mu       sync.Mutex
	bookings map[int64]*Booking
	nextID   int64
}

// NewMemoryRepository creates an in-memory Repository backing the service tests.
func NewMemoryRepository() Repository {
	return &memoryRepository{bookings: make(map[int64]*Booking)}
}

func (r *memoryRepository) Create(_ context.Context, b *Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	b.ID = r.nextID
	clone := *b
	r.bookings[b.ID] = &clone
	return nil
}

func (r *memoryRepository) GetByID(_ context.Context, id int64) (*Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.bookings[id]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *b
	return &clone, nil
}

// list collects, clones and orders every booking matching the predicate.
func (r *memoryRepository) list(match func(*Booking) bool) []*Booking {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*Booking
	for _, b := range r.bookings {
		if match(b) {
			clone := *b
			out = append(out, &clone)
		}
	}
	Sort(out)
	return out
}

func page(bookings []*Booking, p request.PageParams) []*Booking {
	start, end := p.Window(len(bookings))
	return bookings[start:end]
}

func (r *memoryRepository) ListByBooker(_ context.Context, bookerID int64, p request.PageParams) ([]*Booking, error) {
	return page(r.list(func(b *Booking) bool { return b.BookerID == bookerID }), p), nil
}

func (r *memoryRepository) ListByBookerAndStatus(_ context.Context, bookerID int64, status Status) ([]*Booking, error) {
	return r.list(func(b *Booking) bool { return b.BookerID == bookerID && b.Status == status }), nil
}

func (r *memoryRepository) ListByBookerEndingBefore(_ context.Context, bookerID int64, t time.Time) ([]*Booking, error) {
	return r.list(func(b *Booking) bool { return b.BookerID == bookerID && b.End.Before(t) }), nil
}

func (r *memoryRepository) ListByBookerStartingAfter(_ context.Context, bookerID int64, t time.Time) ([]*Booking, error) {
	return r.list(func(b *Booking) bool { return b.BookerID == bookerID && b.Start.After(t) }), nil
}

func (r *memoryRepository) ListByBookerActiveAt(_ context.Context, bookerID int64, t time.Time, p request.PageParams) ([]*Booking, error) {
	return page(r.list(func(b *Booking) bool {
		return b.BookerID == bookerID && !b.Start.After(t) && b.End.After(t)
	}), p), nil
}

func (r *memoryRepository) ListByOwner(_ context.Context, ownerID int64, p request.PageParams) ([]*Booking, error) {
	return page(r.list(func(b *Booking) bool { return b.ItemOwnerID == ownerID }), p), nil
}

func (r *memoryRepository) ListByItem(_ context.Context, itemID int64) ([]*Booking, error) {
	return r.list(func(b *Booking) bool { return b.ItemID == itemID }), nil
}

func (r *memoryRepository) HasApprovedUsage(_ context.Context, bookerID, itemID int64, before time.Time) (bool, error) {
	matches := r.list(func(b *Booking) bool {
		return b.BookerID == bookerID && b.ItemID == itemID &&
			b.Status == StatusApproved && b.Start.Before(before)
	})
	return len(matches) > 0, nil
}

func (r *memoryRepository) UpdateStatusIfWaiting(_ context.Context, id int64, status Status) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.bookings[id]
	if !ok || b.Status != StatusWaiting {
		return false, nil
	}
	b.Status = status
	return true, nil
}
