package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dverbeek/paddle/internal/domain/bids"
)

// PostgresBidRepository implements bids.BidRepository using pgx
type PostgresBidRepository struct {
	pool *pgxpool.Pool // Keep pool for read-only operations
}

// NewPostgresBidRepository creates a new PostgreSQL bid repository
func NewPostgresBidRepository(pool *pgxpool.Pool) *PostgresBidRepository {
	return &PostgresBidRepository{pool: pool}
}

// InsertBid inserts a new bid and fills in its generated ID
func (r *PostgresBidRepository) InsertBid(ctx context.Context, bid *bids.Bid) error {
	query := `
		INSERT INTO bids (item_id, bidder_id, amount, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	err := r.pool.QueryRow(ctx, query,
		bid.ItemID,
		bid.BidderID,
		bid.Amount,
		bid.CreatedAt,
		bid.UpdatedAt,
	).Scan(&bid.ID)
	if err != nil {
		return err
	}
	return nil
}

// GetBidByIDForUpdate retrieves a bid and locks its row for the duration of
// the transaction. Returns (nil, nil) when the bid does not exist.
func (r *PostgresBidRepository) GetBidByIDForUpdate(ctx context.Context, tx pgx.Tx, bidID int64) (*bids.Bid, error) {
	query := `
		SELECT id, item_id, bidder_id, amount, created_at, updated_at
		FROM bids
		WHERE id = $1
		FOR UPDATE
	`
	var bid bids.Bid
	err := tx.QueryRow(ctx, query, bidID).Scan(
		&bid.ID,
		&bid.ItemID,
		&bid.BidderID,
		&bid.Amount,
		&bid.CreatedAt,
		&bid.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get bid: %w", err)
	}
	return &bid, nil
}

// MaxAmountForItem returns the highest bid amount for an item, or (nil, nil)
// when the item has no bids. Must run inside the transaction holding the
// item row lock to be meaningful for acceptance decisions.
func (r *PostgresBidRepository) MaxAmountForItem(ctx context.Context, tx pgx.Tx, itemID int64) (*int64, error) {
	query := `SELECT MAX(amount) FROM bids WHERE item_id = $1`

	var maxAmount *int64
	if err := tx.QueryRow(ctx, query, itemID).Scan(&maxAmount); err != nil {
		return nil, fmt.Errorf("failed to get max bid amount: %w", err)
	}
	return maxAmount, nil
}

// UpdateBidAmount persists a revised amount onto an existing bid row
func (r *PostgresBidRepository) UpdateBidAmount(ctx context.Context, tx pgx.Tx, bidID, amount int64) (int64, error) {
	query := `
		UPDATE bids
		SET amount = $1, updated_at = NOW()
		WHERE id = $2
	`
	result, err := tx.Exec(ctx, query, amount, bidID)
	if err != nil {
		return 0, fmt.Errorf("failed to update bid amount: %w", err)
	}
	return result.RowsAffected(), nil
}

// ListBids retrieves all bids
func (r *PostgresBidRepository) ListBids(ctx context.Context) ([]*bids.Bid, error) {
	query := `
		SELECT id, item_id, bidder_id, amount, created_at, updated_at
		FROM bids
		ORDER BY created_at DESC
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query bids: %w", err)
	}
	defer rows.Close()

	var result []*bids.Bid
	for rows.Next() {
		var bid bids.Bid
		if err := rows.Scan(
			&bid.ID,
			&bid.ItemID,
			&bid.BidderID,
			&bid.Amount,
			&bid.CreatedAt,
			&bid.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan bid: %w", err)
		}
		result = append(result, &bid)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating bids: %w", err)
	}

	return result, nil
}
