package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dverbeek/paddle/internal/domain/items"
	pkgdb "github.com/dverbeek/paddle/pkg/database"
)

// PostgresItemRepository implements items.Repository and bids.ItemRepository
// using pgx
type PostgresItemRepository struct {
	pool *pgxpool.Pool // Keep pool for non-transactional reads
}

// NewPostgresItemRepository creates a new PostgreSQL item repository
func NewPostgresItemRepository(pool *pgxpool.Pool) *PostgresItemRepository {
	return &PostgresItemRepository{pool: pool}
}

// CreateItem inserts an item and fills in its generated ID
func (r *PostgresItemRepository) CreateItem(ctx context.Context, item *items.Item) error {
	query := `
		INSERT INTO items (name, floor_price, time_window_hours, time_window_minutes, state, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	err := r.pool.QueryRow(ctx, query,
		item.Name,
		item.FloorPrice,
		item.TimeWindowHours,
		item.TimeWindowMinutes,
		item.State,
		item.CreatedAt,
		item.UpdatedAt,
	).Scan(&item.ID)
	if err != nil {
		return fmt.Errorf("failed to insert item: %w", err)
	}
	return nil
}

// GetItemByID retrieves an item by its ID (non-transactional read)
func (r *PostgresItemRepository) GetItemByID(ctx context.Context, itemID int64) (*items.Item, error) {
	return r.getItemByID(ctx, r.pool, itemID, false)
}

// GetItemByIDForUpdate retrieves an item by its ID and locks its row.
// This is the per-item critical section for concurrent bid revisions.
func (r *PostgresItemRepository) GetItemByIDForUpdate(ctx context.Context, tx pgx.Tx, itemID int64) (*items.Item, error) {
	return r.getItemByID(ctx, tx, itemID, true)
}

// getItemByID is the internal implementation that works with any DBTX
func (r *PostgresItemRepository) getItemByID(ctx context.Context, db pkgdb.DBTX, itemID int64, forUpdate bool) (*items.Item, error) {
	query := `
		SELECT id, name, floor_price, time_window_hours, time_window_minutes, state, created_at, updated_at
		FROM items
		WHERE id = $1
	`
	if forUpdate {
		query += " FOR UPDATE"
	}

	var item items.Item
	err := db.QueryRow(ctx, query, itemID).Scan(
		&item.ID,
		&item.Name,
		&item.FloorPrice,
		&item.TimeWindowHours,
		&item.TimeWindowMinutes,
		&item.State,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get item: %w", err)
	}
	return &item, nil
}

// UpdateItemDetails writes the editable fields back to the row
func (r *PostgresItemRepository) UpdateItemDetails(ctx context.Context, item *items.Item) (int64, error) {
	query := `
		UPDATE items
		SET name = $1, floor_price = $2, time_window_hours = $3, time_window_minutes = $4, updated_at = $5
		WHERE id = $6
	`
	result, err := r.pool.Exec(ctx, query,
		item.Name,
		item.FloorPrice,
		item.TimeWindowHours,
		item.TimeWindowMinutes,
		item.UpdatedAt,
		item.ID,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to update item: %w", err)
	}
	return result.RowsAffected(), nil
}

// UpdateItemState moves an item to a new lifecycle state
func (r *PostgresItemRepository) UpdateItemState(ctx context.Context, itemID int64, state items.ItemState) (int64, error) {
	query := `
		UPDATE items
		SET state = $1, updated_at = NOW()
		WHERE id = $2
	`
	result, err := r.pool.Exec(ctx, query, state, itemID)
	if err != nil {
		return 0, fmt.Errorf("failed to update item state: %w", err)
	}
	return result.RowsAffected(), nil
}

// DeleteItem removes an item; bids referencing it are removed by cascade
func (r *PostgresItemRepository) DeleteItem(ctx context.Context, itemID int64) (int64, error) {
	result, err := r.pool.Exec(ctx, `DELETE FROM items WHERE id = $1`, itemID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete item: %w", err)
	}
	return result.RowsAffected(), nil
}

// ListItems retrieves all items
func (r *PostgresItemRepository) ListItems(ctx context.Context) ([]*items.Item, error) {
	query := `
		SELECT id, name, floor_price, time_window_hours, time_window_minutes, state, created_at, updated_at
		FROM items
		ORDER BY created_at DESC
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query items: %w", err)
	}
	defer rows.Close()

	return scanItems(rows)
}

// ListItemsByState retrieves items in one lifecycle state
func (r *PostgresItemRepository) ListItemsByState(ctx context.Context, state items.ItemState) ([]*items.Item, error) {
	query := `
		SELECT id, name, floor_price, time_window_hours, time_window_minutes, state, created_at, updated_at
		FROM items
		WHERE state = $1
		ORDER BY created_at DESC
	`
	rows, err := r.pool.Query(ctx, query, state)
	if err != nil {
		return nil, fmt.Errorf("failed to query items by state: %w", err)
	}
	defer rows.Close()

	return scanItems(rows)
}

func scanItems(rows pgx.Rows) ([]*items.Item, error) {
	var result []*items.Item
	for rows.Next() {
		var item items.Item
		if err := rows.Scan(
			&item.ID,
			&item.Name,
			&item.FloorPrice,
			&item.TimeWindowHours,
			&item.TimeWindowMinutes,
			&item.State,
			&item.CreatedAt,
			&item.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		result = append(result, &item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating items: %w", err)
	}

	return result, nil
}
