package itemrequest

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Kuros85Ya/shareit-go/internal/pkg/request"
)

// Repository defines methods for accessing item requests and the catalog
// items that reference them.
type Repository interface {
	Create(ctx context.Context, req *Request) error
	GetByID(ctx context.Context, id int64) (*Request, error)
	ListByRequestor(ctx context.Context, requestorID int64) ([]*Request, error)

	// ListOthers returns requests made by anyone except the given user,
	// newest first.
	ListOthers(ctx context.Context, userID int64, page request.PageParams) ([]*Request, error)

	// ListItems resolves the catalog items created against the request.
	ListItems(ctx context.Context, requestID int64) ([]RequestedItem, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) selectRequests() squirrel.SelectBuilder {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	return psql.Select("id", "description", "requestor_id", "created_at").
		From("public.item_requests").
		OrderBy("created_at DESC", "id DESC")
}

func (r *pgxRepository) queryRequests(ctx context.Context, qb squirrel.SelectBuilder) ([]*Request, error) {
	query, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build requests query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list requests failed: %w", err)
	}
	defer rows.Close()

	var requests []*Request
	for rows.Next() {
		var req Request
		if err := rows.Scan(&req.ID, &req.Description, &req.RequestorID, &req.Created); err != nil {
			return nil, fmt.Errorf("scan request failed: %w", err)
		}
		requests = append(requests, &req)
	}
	return requests, rows.Err()
}

func (r *pgxRepository) Create(ctx context.Context, req *Request) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.item_requests").
		Columns("description", "requestor_id", "created_at").
		Values(req.Description, req.RequestorID, req.Created).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create request query failed: %w", err)
	}

	return r.pool.QueryRow(ctx, query, args...).Scan(&req.ID)
}

func (r *pgxRepository) GetByID(ctx context.Context, id int64) (*Request, error) {
	query, args, err := r.selectRequests().Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get request query failed: %w", err)
	}

	var req Request
	if err := r.pool.QueryRow(ctx, query, args...).
		Scan(&req.ID, &req.Description, &req.RequestorID, &req.Created); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get request failed: %w", err)
	}
	return &req, nil
}

func (r *pgxRepository) ListByRequestor(ctx context.Context, requestorID int64) ([]*Request, error) {
	return r.queryRequests(ctx, r.selectRequests().
		Where(squirrel.Eq{"requestor_id": requestorID}))
}

func (r *pgxRepository) ListOthers(ctx context.Context, userID int64, page request.PageParams) ([]*Request, error) {
	return r.queryRequests(ctx, r.selectRequests().
		Where(squirrel.NotEq{"requestor_id": userID}).
		Offset(page.Offset()).
		Limit(page.Limit()))
}

func (r *pgxRepository) ListItems(ctx context.Context, requestID int64) ([]RequestedItem, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select("id", "name", "owner_id").
		From("public.items").
		Where(squirrel.Eq{"request_id": requestID}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build requested items query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list requested items failed: %w", err)
	}
	defer rows.Close()

	items := make([]RequestedItem, 0)
	for rows.Next() {
		var it RequestedItem
		if err := rows.Scan(&it.ID, &it.Name, &it.OwnerID); err != nil {
			return nil, fmt.Errorf("scan requested item failed: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}
