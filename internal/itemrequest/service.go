package itemrequest

import (
	"context"
	"time"

	"github.com/Kuros85Ya/shareit-go/internal/pkg/request"
	"github.com/Kuros85Ya/shareit-go/internal/user"
)

type Service interface {
	Create(ctx context.Context, requestorID int64, description string) (*Request, error)
	GetByID(ctx context.Context, id int64) (*Request, error)
	GetView(ctx context.Context, requestID, viewerID int64) (*View, error)
	ListOwn(ctx context.Context, userID int64) ([]*View, error)
	ListOthers(ctx context.Context, userID int64, page request.PageParams) ([]*View, error)
}

type service struct {
	repo        Repository
	userService user.Service
}

func NewService(repo Repository, userService user.Service) Service {
	return &service{
		repo:        repo,
		userService: userService,
	}
}

func (s *service) Create(ctx context.Context, requestorID int64, description string) (*Request, error) {
	requestor, err := s.userService.GetByID(ctx, requestorID)
	if err != nil {
		return nil, err
	}

	req := &Request{
		Description: description,
		RequestorID: requestor.ID,
		Created:     time.Now(),
	}
	if err := s.repo.Create(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}

func (s *service) GetByID(ctx context.Context, id int64) (*Request, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) GetView(ctx context.Context, requestID, viewerID int64) (*View, error) {
	if _, err := s.userService.GetByID(ctx, viewerID); err != nil {
		return nil, err
	}
	req, err := s.repo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	return s.decorate(ctx, req)
}

func (s *service) ListOwn(ctx context.Context, userID int64) ([]*View, error) {
	if _, err := s.userService.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	requests, err := s.repo.ListByRequestor(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.decorateAll(ctx, requests)
}

func (s *service) ListOthers(ctx context.Context, userID int64, page request.PageParams) ([]*View, error) {
	if err := page.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.userService.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	requests, err := s.repo.ListOthers(ctx, userID, page)
	if err != nil {
		return nil, err
	}
	return s.decorateAll(ctx, requests)
}

func (s *service) decorate(ctx context.Context, req *Request) (*View, error) {
	items, err := s.repo.ListItems(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = make([]RequestedItem, 0)
	}
	return &View{
		ID:          req.ID,
		Description: req.Description,
		Created:     req.Created,
		Items:       items,
	}, nil
}

func (s *service) decorateAll(ctx context.Context, requests []*Request) ([]*View, error) {
	views := make([]*View, 0, len(requests))
	for _, req := range requests {
		v, err := s.decorate(ctx, req)
		if err != nil {
			return nil, err
		}
		views = append(views, v)
	}
	return views, nil
}
