package itemrequest

import (
	"context"
	"sort"
	"sync"

	"github.com/Kuros85Ya/shareit-go/internal/pkg/request"
)

// MemoryRepository is a map-backed Repository kept for tests. The production
// implementation resolves requested items with a join against the items
// table; here tests link items explicitly through SeedItem.
type MemoryRepository struct {
	mu       sync.Mutex
	requests map[int64]*Request
	items    map[int64][]RequestedItem
	nextID   int64
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		requests: make(map[int64]*Request),
		items:    make(map[int64][]RequestedItem),
	}
}

// SeedItem registers a catalog item as created against the given request.
func (r *MemoryRepository) SeedItem(requestID int64, it RequestedItem) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[requestID] = append(r.items[requestID], it)
}

func (r *MemoryRepository) Create(_ context.Context, req *Request) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	req.ID = r.nextID
	clone := *req
	r.requests[req.ID] = &clone
	return nil
}

func (r *MemoryRepository) GetByID(_ context.Context, id int64) (*Request, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	req, ok := r.requests[id]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *req
	return &clone, nil
}

// list collects, clones and orders matching requests newest first.
func (r *MemoryRepository) list(match func(*Request) bool) []*Request {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*Request
	for _, req := range r.requests {
		if match(req) {
			clone := *req
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Created.Equal(out[j].Created) {
			return out[i].ID > out[j].ID
		}
		return out[i].Created.After(out[j].Created)
	})
	return out
}

func (r *MemoryRepository) ListByRequestor(_ context.Context, requestorID int64) ([]*Request, error) {
	return r.list(func(req *Request) bool { return req.RequestorID == requestorID }), nil
}

func (r *MemoryRepository) ListOthers(_ context.Context, userID int64, p request.PageParams) ([]*Request, error) {
	others := r.list(func(req *Request) bool { return req.RequestorID != userID })
	start, end := p.Window(len(others))
	return others[start:end], nil
}

func (r *MemoryRepository) ListItems(_ context.Context, requestID int64) ([]RequestedItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	items := make([]RequestedItem, len(r.items[requestID]))
	copy(items, r.items[requestID])
	return items, nil
}
