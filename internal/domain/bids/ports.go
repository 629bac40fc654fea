package bids

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/dverbeek/paddle/internal/domain/items"
	"github.com/dverbeek/paddle/pkg/events"
)

// BidRepository defines the interface for bid persistence
type BidRepository interface {
	// InsertBid inserts a new bid and fills in its generated ID
	InsertBid(ctx context.Context, bid *Bid) error

	// GetBidByIDForUpdate retrieves a bid and locks its row.
	// Must be called within a transaction. Returns (nil, nil) when absent.
	GetBidByIDForUpdate(ctx context.Context, tx pgx.Tx, bidID int64) (*Bid, error)

	// MaxAmountForItem returns the highest bid amount across all bids of an
	// item, or (nil, nil) when the item has no bids
	MaxAmountForItem(ctx context.Context, tx pgx.Tx, itemID int64) (*int64, error)

	// UpdateBidAmount persists a revised amount onto an existing bid row
	// within a transaction, returning the affected row count
	UpdateBidAmount(ctx context.Context, tx pgx.Tx, bidID, amount int64) (int64, error)

	// ListBids retrieves all bids
	ListBids(ctx context.Context) ([]*Bid, error)
}

// ItemRepository defines the item reads the engine needs
type ItemRepository interface {
	// GetItemByID retrieves an item without locking. Returns (nil, nil) when absent.
	GetItemByID(ctx context.Context, itemID int64) (*items.Item, error)

	// GetItemByIDForUpdate retrieves an item and locks its row. The item row
	// lock is what serializes concurrent revisions on the same item.
	// Must be called within a transaction.
	GetItemByIDForUpdate(ctx context.Context, tx pgx.Tx, itemID int64) (*items.Item, error)
}

// OutboxRepository is the slice of the outbox the engine writes to
type OutboxRepository interface {
	SaveEvent(ctx context.Context, tx pgx.Tx, event *events.OutboxEvent) error
}
