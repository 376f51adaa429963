package booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kuros85Ya/shareit-go/internal/pkg/request"
	"github.com/Kuros85Ya/shareit-go/internal/user"
)

type staticCatalog struct {
	items map[int64]*ItemSummary
}

func (c staticCatalog) ItemSummary(_ context.Context, itemID int64) (*ItemSummary, error) {
	it, ok := c.items[itemID]
	if !ok {
		return nil, ErrItemNotFound
	}
	return it, nil
}

type fixture struct {
	service Service
	repo    Repository
	owner   *user.User
	booker  *user.User
	other   *user.User
	catalog staticCatalog
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	users := user.NewService(user.NewMemoryRepository())
	owner, err := users.Create(ctx, user.CreateRequest{Name: "owner", Email: "owner@example.com"})
	require.NoError(t, err)
	booker, err := users.Create(ctx, user.CreateRequest{Name: "booker", Email: "booker@example.com"})
	require.NoError(t, err)
	other, err := users.Create(ctx, user.CreateRequest{Name: "other", Email: "other@example.com"})
	require.NoError(t, err)

	catalog := staticCatalog{items: map[int64]*ItemSummary{
		1: {ID: 1, Name: "drill", OwnerID: owner.ID, Available: true},
		2: {ID: 2, Name: "broken ladder", OwnerID: owner.ID, Available: false},
	}}

	repo := NewMemoryRepository()
	return &fixture{
		service: NewService(repo, users, catalog),
		repo:    repo,
		owner:   owner,
		booker:  booker,
		other:   other,
		catalog: catalog,
	}
}

func (f *fixture) createWaiting(t *testing.T, start, end time.Time) *Booking {
	t.Helper()
	b, err := f.service.Create(context.Background(), CreateRequest{
		BookerID: f.booker.ID,
		ItemID:   1,
		Start:    start,
		End:      end,
	})
	require.NoError(t, err)
	require.Equal(t, StatusWaiting, b.Status)
	return b
}

// seed inserts a booking directly into the repository, bypassing the
// creation rules, so listings can be exercised with past time ranges.
func (f *fixture) seed(t *testing.T, start, end time.Time, status Status) *Booking {
	t.Helper()
	b := &Booking{
		ItemID:      1,
		ItemName:    "drill",
		ItemOwnerID: f.owner.ID,
		BookerID:    f.booker.ID,
		BookerName:  f.booker.Name,
		Start:       start,
		End:         end,
		Status:      status,
		Created:     time.Now(),
	}
	require.NoError(t, f.repo.Create(context.Background(), b))
	return b
}

func TestCreateValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	now := time.Now()

	cases := []struct {
		name       string
		start, end time.Time
	}{
		{"end before start", now.Add(2 * time.Hour), now.Add(time.Hour)},
		{"end equals start", now.Add(time.Hour), now.Add(time.Hour)},
		{"start in the past", now.Add(-time.Hour), now.Add(time.Hour)},
		{"whole range in the past", now.Add(-2 * time.Hour), now.Add(-time.Hour)},
		{"zero start", time.Time{}, now.Add(time.Hour)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.service.Create(ctx, CreateRequest{
				BookerID: f.booker.ID,
				ItemID:   1,
				Start:    tc.start,
				End:      tc.end,
			})
			assert.ErrorIs(t, err, ErrInvalidTimeRange)
		})
	}
}

func TestCreateUnavailableItem(t *testing.T) {
	f := newFixture(t)
	now := time.Now()

	_, err := f.service.Create(context.Background(), CreateRequest{
		BookerID: f.booker.ID,
		ItemID:   2,
		Start:    now.Add(time.Hour),
		End:      now.Add(2 * time.Hour),
	})
	assert.ErrorIs(t, err, ErrItemUnavailable)
}

func TestCreateOwnItem(t *testing.T) {
	f := newFixture(t)
	now := time.Now()

	_, err := f.service.Create(context.Background(), CreateRequest{
		BookerID: f.owner.ID,
		ItemID:   1,
		Start:    now.Add(time.Hour),
		End:      now.Add(2 * time.Hour),
	})
	assert.ErrorIs(t, err, ErrOwnBooking)
}

func TestCreateMissingReferences(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	now := time.Now()

	_, err := f.service.Create(ctx, CreateRequest{BookerID: f.booker.ID, ItemID: 99, Start: now.Add(time.Hour), End: now.Add(2 * time.Hour)})
	assert.ErrorIs(t, err, ErrItemNotFound)

	_, err = f.service.Create(ctx, CreateRequest{BookerID: 99, ItemID: 1, Start: now.Add(time.Hour), End: now.Add(2 * time.Hour)})
	assert.ErrorIs(t, err, user.ErrNotFound)
}

func TestSetApprovalLifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	now := time.Now()

	b := f.createWaiting(t, now.Add(time.Hour), now.Add(10*24*time.Hour))

	// Only the item owner decides.
	_, err := f.service.SetApproval(ctx, f.booker.ID, b.ID, true)
	assert.ErrorIs(t, err, ErrPermissionDenied)

	approved, err := f.service.SetApproval(ctx, f.owner.ID, b.ID, true)
	require.NoError(t, err)
	assert.Equal(t, StatusApproved, approved.Status)

	// Terminal statuses never change again.
	_, err = f.service.SetApproval(ctx, f.owner.ID, b.ID, false)
	assert.ErrorIs(t, err, ErrStatusFinal)

	stored, err := f.repo.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusApproved, stored.Status)
}

func TestSetApprovalReject(t *testing.T) {
	f := newFixture(t)
	now := time.Now()

	b := f.createWaiting(t, now.Add(time.Hour), now.Add(2*time.Hour))

	rejected, err := f.service.SetApproval(context.Background(), f.owner.ID, b.ID, false)
	require.NoError(t, err)
	assert.Equal(t, StatusRejected, rejected.Status)
}

func TestSetApprovalNotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.SetApproval(context.Background(), f.owner.ID, 42, true)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCancel(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	now := time.Now()

	b := f.createWaiting(t, now.Add(time.Hour), now.Add(2*time.Hour))

	// Only the booker may cancel.
	_, err := f.service.Cancel(ctx, f.owner.ID, b.ID)
	assert.ErrorIs(t, err, ErrPermissionDenied)

	canceled, err := f.service.Cancel(ctx, f.booker.ID, b.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusCanceled, canceled.Status)

	// CANCELED is terminal too.
	_, err = f.service.SetApproval(ctx, f.owner.ID, b.ID, true)
	assert.ErrorIs(t, err, ErrStatusFinal)
}

func TestCancelApprovedBooking(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	now := time.Now()

	b := f.createWaiting(t, now.Add(time.Hour), now.Add(2*time.Hour))
	_, err := f.service.SetApproval(ctx, f.owner.ID, b.ID, true)
	require.NoError(t, err)

	_, err = f.service.Cancel(ctx, f.booker.ID, b.ID)
	assert.ErrorIs(t, err, ErrStatusFinal)
}

func TestGetByIDAuthorization(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	now := time.Now()

	b := f.createWaiting(t, now.Add(time.Hour), now.Add(2*time.Hour))

	got, err := f.service.GetByID(ctx, f.booker.ID, b.ID)
	require.NoError(t, err)
	assert.Equal(t, b.ID, got.ID)

	_, err = f.service.GetByID(ctx, f.owner.ID, b.ID)
	assert.NoError(t, err)

	_, err = f.service.GetByID(ctx, f.other.ID, b.ID)
	assert.ErrorIs(t, err, ErrPermissionDenied)
}

func TestParseState(t *testing.T) {
	st, err := ParseState("")
	require.NoError(t, err)
	assert.Equal(t, StateAll, st)

	st, err = ParseState("current")
	require.NoError(t, err)
	assert.Equal(t, StateCurrent, st)

	_, err = ParseState("SOMETIMES")
	assert.ErrorIs(t, err, ErrUnknownState)
}

func TestListByBookerStates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	now := time.Now()
	page := request.PageParams{From: 0, Size: 20}

	past := f.seed(t, now.Add(-3*time.Hour), now.Add(-2*time.Hour), StatusApproved)
	pastRejected := f.seed(t, now.Add(-3*time.Hour), now.Add(-time.Hour), StatusRejected)
	current := f.seed(t, now.Add(-time.Hour), now.Add(time.Hour), StatusApproved)
	future := f.seed(t, now.Add(2*time.Hour), now.Add(3*time.Hour), StatusWaiting)
	futureCanceled := f.seed(t, now.Add(2*time.Hour), now.Add(4*time.Hour), StatusCanceled)

	all, err := f.service.ListByBooker(ctx, f.booker.ID, StateAll, page)
	require.NoError(t, err)
	assert.Len(t, all, 5)

	got, err := f.service.ListByBooker(ctx, f.booker.ID, StatePast, page)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, past.ID, got[0].ID)

	got, err = f.service.ListByBooker(ctx, f.booker.ID, StateCurrent, page)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, current.ID, got[0].ID)

	got, err = f.service.ListByBooker(ctx, f.booker.ID, StateFuture, page)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, future.ID, got[0].ID)

	got, err = f.service.ListByBooker(ctx, f.booker.ID, StateWaiting, page)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, future.ID, got[0].ID)

	got, err = f.service.ListByBooker(ctx, f.booker.ID, StateRejected, page)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, pastRejected.ID, got[0].ID)

	// Rejected and canceled bookings never count as past or future rentals.
	for _, b := range all {
		if b.ID == futureCanceled.ID {
			assert.Equal(t, StatusCanceled, b.Status)
		}
	}
}

func TestListOrdering(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	now := time.Now()
	page := request.PageParams{From: 0, Size: 20}

	sharedStart := now.Add(5 * time.Hour)
	first := f.seed(t, sharedStart, now.Add(6*time.Hour), StatusWaiting)
	second := f.seed(t, sharedStart, now.Add(7*time.Hour), StatusWaiting)
	later := f.seed(t, now.Add(9*time.Hour), now.Add(10*time.Hour), StatusWaiting)

	got, err := f.service.ListByBooker(ctx, f.booker.ID, StateAll, page)
	require.NoError(t, err)
	require.Len(t, got, 3)

	// Later start first; identical starts broken by the smaller id.
	assert.Equal(t, later.ID, got[0].ID)
	assert.Equal(t, first.ID, got[1].ID)
	assert.Equal(t, second.ID, got[2].ID)
}

func TestListByOwnerItems(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	now := time.Now()
	page := request.PageParams{From: 0, Size: 20}

	f.seed(t, now.Add(-2*time.Hour), now.Add(-time.Hour), StatusApproved)
	f.seed(t, now.Add(time.Hour), now.Add(2*time.Hour), StatusWaiting)

	got, err := f.service.ListByOwnerItems(ctx, f.owner.ID, StateAll, page)
	require.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = f.service.ListByOwnerItems(ctx, f.owner.ID, StateFuture, page)
	require.NoError(t, err)
	assert.Len(t, got, 1)

	// The booker owns no items, so the owner listing is empty for them.
	got, err = f.service.ListByOwnerItems(ctx, f.booker.ID, StateAll, page)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestListPaginationValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.service.ListByBooker(ctx, f.booker.ID, StateAll, request.PageParams{From: -1, Size: 10})
	assert.ErrorIs(t, err, request.ErrInvalidPage)

	_, err = f.service.ListByOwnerItems(ctx, f.owner.ID, StateAll, request.PageParams{From: 0, Size: 0})
	assert.ErrorIs(t, err, request.ErrInvalidPage)
}

func TestListUnknownUser(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.ListByBooker(context.Background(), 99, StateAll, request.PageParams{From: 0, Size: 10})
	assert.ErrorIs(t, err, user.ErrNotFound)
}

func TestApproveThenRejectScenario(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	now := time.Now()

	b := f.createWaiting(t, now.Add(time.Hour), now.Add(10*24*time.Hour))

	approved, err := f.service.SetApproval(ctx, f.owner.ID, b.ID, true)
	require.NoError(t, err)
	require.Equal(t, StatusApproved, approved.Status)

	_, err = f.service.SetApproval(ctx, f.owner.ID, b.ID, false)
	assert.ErrorIs(t, err, ErrStatusFinal)
}
