package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Kuros85Ya/shareit-go/internal/pkg/request"
)

// Repository is the booking query surface. The narrowed per-state queries
// exist so listings fetch only the relevant slice of a booker's history; the
// service still applies the shared state predicate on top.
type Repository interface {
	Create(ctx context.Context, b *Booking) error
	GetByID(ctx context.Context, id int64) (*Booking, error)

	ListByBooker(ctx context.Context, bookerID int64, page request.PageParams) ([]*Booking, error)
	ListByBookerAndStatus(ctx context.Context, bookerID int64, status Status) ([]*Booking, error)
	ListByBookerEndingBefore(ctx context.Context, bookerID int64, t time.Time) ([]*Booking, error)
	ListByBookerStartingAfter(ctx context.Context, bookerID int64, t time.Time) ([]*Booking, error)
	ListByBookerActiveAt(ctx context.Context, bookerID int64, t time.Time, page request.PageParams) ([]*Booking, error)

	// ListByOwner aggregates bookings over every item the user owns.
	ListByOwner(ctx context.Context, ownerID int64, page request.PageParams) ([]*Booking, error)
	ListByItem(ctx context.Context, itemID int64) ([]*Booking, error)

	// HasApprovedUsage reports whether the booker has an APPROVED booking on
	// the item that started before the given time.
	HasApprovedUsage(ctx context.Context, bookerID, itemID int64, before time.Time) (bool, error)

	// UpdateStatusIfWaiting transitions the booking out of WAITING atomically.
	// It returns false when the booking was already in a terminal status.
	UpdateStatusIfWaiting(ctx context.Context, id int64, status Status) (bool, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) selectBookings() squirrel.SelectBuilder {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	return psql.Select(
		"b.id", "b.item_id", "i.name", "i.owner_id", "b.booker_id", "u.name",
		"b.start_time", "b.end_time", "b.status", "b.created_at",
	).
		From("public.bookings b").
		Join("public.items i ON b.item_id = i.id").
		Join("public.users u ON b.booker_id = u.id").
		OrderBy("b.start_time DESC", "b.id ASC")
}

func scanBooking(row pgx.Row) (*Booking, error) {
	var b Booking
	if err := row.Scan(
		&b.ID, &b.ItemID, &b.ItemName, &b.ItemOwnerID, &b.BookerID, &b.BookerName,
		&b.Start, &b.End, &b.Status, &b.Created,
	); err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *pgxRepository) queryBookings(ctx context.Context, qb squirrel.SelectBuilder) ([]*Booking, error) {
	query, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build bookings query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list bookings failed: %w", err)
	}
	defer rows.Close()

	var bookings []*Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("scan booking failed: %w", err)
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

func (r *pgxRepository) Create(ctx context.Context, b *Booking) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.bookings").
		Columns("item_id", "booker_id", "start_time", "end_time", "status", "created_at").
		Values(b.ItemID, b.BookerID, b.Start, b.End, b.Status, b.Created).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create booking query failed: %w", err)
	}

	return r.pool.QueryRow(ctx, query, args...).Scan(&b.ID)
}

func (r *pgxRepository) GetByID(ctx context.Context, id int64) (*Booking, error) {
	query, args, err := r.selectBookings().Where(squirrel.Eq{"b.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get booking query failed: %w", err)
	}

	b, err := scanBooking(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get booking failed: %w", err)
	}
	return b, nil
}

func (r *pgxRepository) ListByBooker(ctx context.Context, bookerID int64, page request.PageParams) ([]*Booking, error) {
	return r.queryBookings(ctx, r.selectBookings().
		Where(squirrel.Eq{"b.booker_id": bookerID}).
		Offset(page.Offset()).
		Limit(page.Limit()))
}

func (r *pgxRepository) ListByBookerAndStatus(ctx context.Context, bookerID int64, status Status) ([]*Booking, error) {
	return r.queryBookings(ctx, r.selectBookings().
		Where(squirrel.Eq{"b.booker_id": bookerID, "b.status": status}))
}

func (r *pgxRepository) ListByBookerEndingBefore(ctx context.Context, bookerID int64, t time.Time) ([]*Booking, error) {
	return r.queryBookings(ctx, r.selectBookings().
		Where(squirrel.Eq{"b.booker_id": bookerID}).
		Where(squirrel.Lt{"b.end_time": t}))
}

func (r *pgxRepository) ListByBookerStartingAfter(ctx context.Context, bookerID int64, t time.Time) ([]*Booking, error) {
	return r.queryBookings(ctx, r.selectBookings().
		Where(squirrel.Eq{"b.booker_id": bookerID}).
		Where(squirrel.Gt{"b.start_time": t}))
}

func (r *pgxRepository) ListByBookerActiveAt(ctx context.Context, bookerID int64, t time.Time, page request.PageParams) ([]*Booking, error) {
	return r.queryBookings(ctx, r.selectBookings().
		Where(squirrel.Eq{"b.booker_id": bookerID}).
		Where(squirrel.LtOrEq{"b.start_time": t}).
		Where(squirrel.Gt{"b.end_time": t}).
		Offset(page.Offset()).
		Limit(page.Limit()))
}

func (r *pgxRepository) ListByOwner(ctx context.Context, ownerID int64, page request.PageParams) ([]*Booking, error) {
	return r.queryBookings(ctx, r.selectBookings().
		Where(squirrel.Eq{"i.owner_id": ownerID}).
		Offset(page.Offset()).
		Limit(page.Limit()))
}

func (r *pgxRepository) ListByItem(ctx context.Context, itemID int64) ([]*Booking, error) {
	return r.queryBookings(ctx, r.selectBookings().
		Where(squirrel.Eq{"b.item_id": itemID}))
}

func (r *pgxRepository) HasApprovedUsage(ctx context.Context, bookerID, itemID int64, before time.Time) (bool, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	sub, args, err := psql.Select("1").
		From("public.bookings").
		Where(squirrel.Eq{"booker_id": bookerID, "item_id": itemID, "status": StatusApproved}).
		Where(squirrel.Lt{"start_time": before}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build usage query failed: %w", err)
	}

	var exists bool
	if err := r.pool.QueryRow(ctx, "SELECT EXISTS ("+sub+")", args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("check usage failed: %w", err)
	}
	return exists, nil
}

func (r *pgxRepository) UpdateStatusIfWaiting(ctx context.Context, id int64, status Status) (bool, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.bookings").
		Set("status", status).
		Where(squirrel.Eq{"id": id, "status": StatusWaiting}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build status update query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("update booking status failed: %w", err)
	}
	return ct.RowsAffected() > 0, nil
}
