package itemrequest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kuros85Ya/shareit-go/internal/pkg/request"
	"github.com/Kuros85Ya/shareit-go/internal/user"
)

type fixture struct {
	service   Service
	repo      *MemoryRepository
	requestor *user.User
	other     *user.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	users := user.NewService(user.NewMemoryRepository())
	requestor, err := users.Create(ctx, user.CreateRequest{Name: "requestor", Email: "requestor@example.com"})
	require.NoError(t, err)
	other, err := users.Create(ctx, user.CreateRequest{Name: "other", Email: "other@example.com"})
	require.NoError(t, err)

	repo := NewMemoryRepository()
	return &fixture{
		service:   NewService(repo, users),
		repo:      repo,
		requestor: requestor,
		other:     other,
	}
}

func TestCreate(t *testing.T) {
	f := newFixture(t)

	req, err := f.service.Create(context.Background(), f.requestor.ID, "need a drill")
	require.NoError(t, err)
	assert.NotZero(t, req.ID)
	assert.Equal(t, f.requestor.ID, req.RequestorID)
	assert.False(t, req.Created.IsZero())
}

func TestCreateUnknownRequestor(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.Create(context.Background(), 99, "need a drill")
	assert.ErrorIs(t, err, user.ErrNotFound)
}

func TestGetView(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	req, err := f.service.Create(ctx, f.requestor.ID, "need a drill")
	require.NoError(t, err)
	f.repo.SeedItem(req.ID, RequestedItem{ID: 7, Name: "drill", OwnerID: f.other.ID})

	view, err := f.service.GetView(ctx, req.ID, f.other.ID)
	require.NoError(t, err)
	assert.Equal(t, req.ID, view.ID)
	require.Len(t, view.Items, 1)
	assert.Equal(t, int64(7), view.Items[0].ID)

	_, err = f.service.GetView(ctx, 99, f.other.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = f.service.GetView(ctx, req.ID, 99)
	assert.ErrorIs(t, err, user.ErrNotFound)
}

func TestListOwn(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	older := &Request{Description: "older", RequestorID: f.requestor.ID, Created: time.Now().Add(-time.Hour)}
	require.NoError(t, f.repo.Create(ctx, older))
	newer := &Request{Description: "newer", RequestorID: f.requestor.ID, Created: time.Now()}
	require.NoError(t, f.repo.Create(ctx, newer))
	_, err := f.service.Create(ctx, f.other.ID, "someone else's")
	require.NoError(t, err)

	views, err := f.service.ListOwn(ctx, f.requestor.ID)
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, newer.ID, views[0].ID)
	assert.Equal(t, older.ID, views[1].ID)
	assert.NotNil(t, views[0].Items)

	_, err = f.service.ListOwn(ctx, 99)
	assert.ErrorIs(t, err, user.ErrNotFound)
}

func TestListOthers(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.service.Create(ctx, f.requestor.ID, "mine")
	require.NoError(t, err)
	theirs, err := f.service.Create(ctx, f.other.ID, "theirs")
	require.NoError(t, err)

	views, err := f.service.ListOthers(ctx, f.requestor.ID, request.PageParams{From: 0, Size: 10})
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, theirs.ID, views[0].ID)

	// The requestor's own entries are the only ones hidden.
	views, err = f.service.ListOthers(ctx, f.other.ID, request.PageParams{From: 0, Size: 10})
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "mine", views[0].Description)

	_, err = f.service.ListOthers(ctx, f.requestor.ID, request.PageParams{From: 0, Size: -1})
	assert.ErrorIs(t, err, request.ErrInvalidPage)
}

func TestListOthersPagination(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		req := &Request{
			Description: "request",
			RequestorID: f.other.ID,
			Created:     time.Now().Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, f.repo.Create(ctx, req))
	}

	views, err := f.service.ListOthers(ctx, f.requestor.ID, request.PageParams{From: 2, Size: 2})
	require.NoError(t, err)
	assert.Len(t, views, 2)

	views, err = f.service.ListOthers(ctx, f.requestor.ID, request.PageParams{From: 4, Size: 2})
	require.NoError(t, err)
	assert.Len(t, views, 1)
}
