package item

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/Kuros85Ya/shareit-go/internal/pkg/request"
)

// memoryRepository is a map-backed Repository kept for tests.
type memoryRepository struct {
	mu     sync.Mutex
	items  map[int64]*Item
	nextID int64
}

// NewMemoryRepository creates an in-memory Repository backing the service tests.
func NewMemoryRepository() Repository {
	return &memoryRepository{items: make(map[int64]*Item)}
}

func (r *memoryRepository) Create(_ context.Context, it *Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	it.ID = r.nextID
	clone := *it
	r.items[it.ID] = &clone
	return nil
}

func (r *memoryRepository) GetByID(_ context.Context, id int64) (*Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	it, ok := r.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *it
	return &clone, nil
}

func (r *memoryRepository) Update(_ context.Context, it *Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[it.ID]; !ok {
		return ErrNotFound
	}
	clone := *it
	r.items[it.ID] = &clone
	return nil
}

func (r *memoryRepository) list(match func(*Item) bool) []*Item {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*Item
	for _, it := range r.items {
		if match(it) {
			clone := *it
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func page(items []*Item, p request.PageParams) []*Item {
	start, end := p.Window(len(items))
	return items[start:end]
}

func (r *memoryRepository) ListByOwner(_ context.Context, ownerID int64, p request.PageParams) ([]*Item, error) {
	return page(r.list(func(it *Item) bool { return it.OwnerID == ownerID }), p), nil
}

func (r *memoryRepository) Search(_ context.Context, text string, p request.PageParams) ([]*Item, error) {
	needle := strings.ToLower(text)
	return page(r.list(func(it *Item) bool {
		return it.Available &&
			(strings.Contains(strings.ToLower(it.Name), needle) ||
				strings.Contains(strings.ToLower(it.Description), needle))
	}), p), nil
}

// memoryCommentRepository is a slice-backed CommentRepository kept for tests.
type memoryCommentRepository struct {
	mu       sync.Mutex
	comments []*Comment
	nextID   int64
}

func NewMemoryCommentRepository() CommentRepository {
	return &memoryCommentRepository{}
}

func (r *memoryCommentRepository) Create(_ context.Context, c *Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	c.ID = r.nextID
	clone := *c
	r.comments = append(r.comments, &clone)
	return nil
}

func (r *memoryCommentRepository) ListByItem(_ context.Context, itemID int64) ([]*Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*Comment
	for _, c := range r.comments {
		if c.ItemID == itemID {
			clone := *c
			out = append(out, &clone)
		}
	}
	return out, nil
}
