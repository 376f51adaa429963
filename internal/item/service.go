package item

import (
	"context"
	"strings"
	"time"

	"github.com/Kuros85Ya/shareit-go/internal/booking"
	"github.com/Kuros85Ya/shareit-go/internal/itemrequest"
	"github.com/Kuros85Ya/shareit-go/internal/pkg/request"
	"github.com/Kuros85Ya/shareit-go/internal/user"
)

type CreateRequest struct {
	OwnerID     int64
	Name        string
	Description string
	Available   bool
	RequestID   *int64
}

// UpdateRequest carries a partial update. Nil fields keep their stored value.
type UpdateRequest struct {
	Name        *string
	Description *string
	Available   *bool
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Item, error)
	Update(ctx context.Context, ownerID, itemID int64, req UpdateRequest) (*Item, error)
	GetByID(ctx context.Context, itemID int64) (*Item, error)
	GetView(ctx context.Context, itemID, viewerID int64) (*ItemView, error)
	ListOwnerViews(ctx context.Context, ownerID int64, page request.PageParams) ([]*ItemView, error)
	Search(ctx context.Context, text string, page request.PageParams) ([]*Item, error)
	CreateComment(ctx context.Context, authorID, itemID int64, text string) (*Comment, error)
}

type service struct {
	repo           Repository
	comments       CommentRepository
	bookings       booking.Repository
	userService    user.Service
	requestService itemrequest.Service
}

func NewService(
	repo Repository,
	comments CommentRepository,
	bookings booking.Repository,
	userService user.Service,
	requestService itemrequest.Service,
) Service {
	return &service{
		repo:           repo,
		comments:       comments,
		bookings:       bookings,
		userService:    userService,
		requestService: requestService,
	}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Item, error) {
	owner, err := s.userService.GetByID(ctx, req.OwnerID)
	if err != nil {
		return nil, err
	}
	if req.RequestID != nil {
		if _, err := s.requestService.GetByID(ctx, *req.RequestID); err != nil {
			return nil, err
		}
	}

	it := &Item{
		Name:        req.Name,
		Description: req.Description,
		Available:   req.Available,
		OwnerID:     owner.ID,
		RequestID:   req.RequestID,
	}
	if err := s.repo.Create(ctx, it); err != nil {
		return nil, err
	}
	return it, nil
}

func (s *service) Update(ctx context.Context, ownerID, itemID int64, req UpdateRequest) (*Item, error) {
	it, err := s.repo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if it.OwnerID != ownerID {
		return nil, ErrPermissionDenied
	}

	if req.Name != nil {
		it.Name = *req.Name
	}
	if req.Description != nil {
		it.Description = *req.Description
	}
	if req.Available != nil {
		it.Available = *req.Available
	}

	if err := s.repo.Update(ctx, it); err != nil {
		return nil, err
	}
	return it, nil
}

func (s *service) GetByID(ctx context.Context, itemID int64) (*Item, error) {
	return s.repo.GetByID(ctx, itemID)
}

func (s *service) GetView(ctx context.Context, itemID, viewerID int64) (*ItemView, error) {
	it, err := s.repo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	return s.enrich(ctx, it, viewerID)
}

func (s *service) ListOwnerViews(ctx context.Context, ownerID int64, page request.PageParams) ([]*ItemView, error) {
	if err := page.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.userService.GetByID(ctx, ownerID); err != nil {
		return nil, err
	}

	items, err := s.repo.ListByOwner(ctx, ownerID, page)
	if err != nil {
		return nil, err
	}

	views := make([]*ItemView, 0, len(items))
	for _, it := range items {
		v, err := s.enrich(ctx, it, ownerID)
		if err != nil {
			return nil, err
		}
		views = append(views, v)
	}
	return views, nil
}

func (s *service) Search(ctx context.Context, text string, page request.PageParams) ([]*Item, error) {
	if err := page.Validate(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return []*Item{}, nil
	}
	return s.repo.Search(ctx, text, page)
}

func (s *service) CreateComment(ctx context.Context, authorID, itemID int64, text string) (*Comment, error) {
	author, err := s.userService.GetByID(ctx, authorID)
	if err != nil {
		return nil, err
	}
	it, err := s.repo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return nil, ErrBlankComment
	}

	// Proof of use: only someone whose approved rental has already started
	// may review the item.
	used, err := s.bookings.HasApprovedUsage(ctx, author.ID, it.ID, time.Now())
	if err != nil {
		return nil, err
	}
	if !used {
		return nil, ErrNeverUsed
	}

	c := &Comment{
		Text:       text,
		ItemID:     it.ID,
		AuthorID:   author.ID,
		AuthorName: author.Name,
		Created:    time.Now(),
	}
	if err := s.comments.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// enrich decorates the item with its nearest bookings and comments. The
// neighbour bookings are only disclosed to the item's owner.
func (s *service) enrich(ctx context.Context, it *Item, viewerID int64) (*ItemView, error) {
	comments, err := s.comments.ListByItem(ctx, it.ID)
	if err != nil {
		return nil, err
	}

	view := &ItemView{
		Item:     it,
		Comments: commentViews(comments),
	}
	if it.OwnerID != viewerID {
		return view, nil
	}

	bookings, err := s.bookings.ListByItem(ctx, it.ID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	view.LastBooking = bookingRef(pickExtreme(bookings, func(b *booking.Booking) bool {
		return !b.Start.After(now)
	}, booking.Less))
	view.NextBooking = bookingRef(pickExtreme(bookings, func(b *booking.Booking) bool {
		return b.Start.After(now)
	}, func(a, b *booking.Booking) bool { return booking.Less(b, a) }))

	return view, nil
}

// pickExtreme returns the scheduled booking matching the window that wins
// every pairwise comparison under the given ordering, or nil. With the
// booking ordering this selects the latest-starting past booking; with the
// reversed ordering, the earliest-starting future one.
func pickExtreme(bookings []*booking.Booking, inWindow func(*booking.Booking) bool, before func(a, b *booking.Booking) bool) *booking.Booking {
	var best *booking.Booking
	for _, b := range bookings {
		if b.Status != booking.StatusWaiting && b.Status != booking.StatusApproved {
			continue
		}
		if !inWindow(b) {
			continue
		}
		if best == nil || before(b, best) {
			best = b
		}
	}
	return best
}

func bookingRef(b *booking.Booking) *BookingRef {
	if b == nil {
		return nil
	}
	return &BookingRef{
		ID:       b.ID,
		BookerID: b.BookerID,
		Start:    b.Start,
		End:      b.End,
	}
}

func commentViews(comments []*Comment) []CommentView {
	views := make([]CommentView, 0, len(comments))
	for _, c := range comments {
		views = append(views, CommentView{
			ID:         c.ID,
			Text:       c.Text,
			AuthorName: c.AuthorName,
			Created:    c.Created,
		})
	}
	return views
}
