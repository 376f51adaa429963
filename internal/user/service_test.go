package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService() Service {
	return NewService(NewMemoryRepository())
}

func TestCreate(t *testing.T) {
	svc := newService()

	u, err := svc.Create(context.Background(), CreateRequest{Name: "  Alice ", Email: " Alice@Example.COM "})
	require.NoError(t, err)
	assert.NotZero(t, u.ID)
	assert.Equal(t, "Alice", u.Name)
	assert.Equal(t, "alice@example.com", u.Email)
}

func TestCreateDuplicateEmail(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateRequest{Name: "Alice", Email: "alice@example.com"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, CreateRequest{Name: "Impostor", Email: "ALICE@example.com"})
	assert.ErrorIs(t, err, ErrEmailAlreadyUsed)
}

func TestGetByID(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateRequest{Name: "Alice", Email: "alice@example.com"})
	require.NoError(t, err)

	got, err := svc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Email, got.Email)

	_, err = svc.GetByID(ctx, 99)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetAll(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateRequest{Name: "Alice", Email: "alice@example.com"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, CreateRequest{Name: "Bob", Email: "bob@example.com"})
	require.NoError(t, err)

	users, err := svc.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 2)
}

func TestUpdatePartial(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	u, err := svc.Create(ctx, CreateRequest{Name: "Alice", Email: "alice@example.com"})
	require.NoError(t, err)

	name := "Alicia"
	updated, err := svc.Update(ctx, u.ID, UpdateRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Alicia", updated.Name)
	assert.Equal(t, "alice@example.com", updated.Email)

	email := "Alicia@Example.com"
	updated, err = svc.Update(ctx, u.ID, UpdateRequest{Email: &email})
	require.NoError(t, err)
	assert.Equal(t, "Alicia", updated.Name)
	assert.Equal(t, "alicia@example.com", updated.Email)
}

func TestUpdateEmailConflict(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateRequest{Name: "Alice", Email: "alice@example.com"})
	require.NoError(t, err)
	bob, err := svc.Create(ctx, CreateRequest{Name: "Bob", Email: "bob@example.com"})
	require.NoError(t, err)

	email := "alice@example.com"
	_, err = svc.Update(ctx, bob.ID, UpdateRequest{Email: &email})
	assert.ErrorIs(t, err, ErrEmailAlreadyUsed)

	// Re-submitting the current email is not a conflict.
	own := "bob@example.com"
	updated, err := svc.Update(ctx, bob.ID, UpdateRequest{Email: &own})
	require.NoError(t, err)
	assert.Equal(t, "bob@example.com", updated.Email)
}

func TestUpdateUnknownUser(t *testing.T) {
	svc := newService()

	name := "ghost"
	_, err := svc.Update(context.Background(), 99, UpdateRequest{Name: &name})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDelete(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	u, err := svc.Create(ctx, CreateRequest{Name: "Alice", Email: "alice@example.com"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, u.ID))

	_, err = svc.GetByID(ctx, u.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, svc.Delete(ctx, u.ID), ErrNotFound)
}
