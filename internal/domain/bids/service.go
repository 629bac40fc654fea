package bids

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dverbeek/paddle/pkg/database"
	"github.com/dverbeek/paddle/pkg/events"
)

// Validation errors
var (
	ErrInvalidBidAmount = fmt.Errorf("bid amount must be positive")
	ErrBidNotFound      = fmt.Errorf("bid not found")
	ErrItemNotFound     = fmt.Errorf("item not found")
	ErrBidderNotFound   = fmt.Errorf("bidder not found")
	ErrItemNotBiddable  = fmt.Errorf("item is not published for bidding")
	ErrBidBelowFloor    = fmt.Errorf("bid amount must exceed the item floor price")
	ErrBidNotAboveMax   = fmt.Errorf("bid amount must exceed the current highest bid")
)

// evaluateRevision decides whether a proposed amount becomes the new leading
// bid. Both comparisons are strict: proposing the currently accepted amount
// again is rejected, so ties cannot appear to win. A nil currentMax means the
// item has no bids and the floor check alone applies.
func evaluateRevision(proposed, floorPrice int64, currentMax *int64) error {
	if proposed <= floorPrice {
		return ErrBidBelowFloor
	}
	if currentMax != nil && proposed <= *currentMax {
		return ErrBidNotAboveMax
	}
	return nil
}

// PlaceBidCommand carries the inputs of a new bid
type PlaceBidCommand struct {
	ItemID   int64
	BidderID int64
	Amount   int64
}

// Engine implements bid acceptance. Placement inserts unconditionally;
// revision is the policy-checked path and runs inside a transaction that
// holds the item row lock while it reads the current maximum and writes the
// new amount, so two concurrent revisions on one item cannot both win.
type Engine struct {
	txManager   database.TransactionManager
	bidRepo     BidRepository
	itemRepo    ItemRepository
	outboxRepo  OutboxRepository
	maxAttempts int
	baseBackoff time.Duration
}

// NewEngine creates a new bid acceptance engine. maxAttempts bounds the
// retries of a revision on transient store failures (lock timeout, deadlock,
// dropped connection); business rejections are never retried.
func NewEngine(
	txManager database.TransactionManager,
	bidRepo BidRepository,
	itemRepo ItemRepository,
	outboxRepo OutboxRepository,
	maxAttempts int,
	baseBackoff time.Duration,
) *Engine {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &Engine{
		txManager:   txManager,
		bidRepo:     bidRepo,
		itemRepo:    itemRepo,
		outboxRepo:  outboxRepo,
		maxAttempts: maxAttempts,
		baseBackoff: baseBackoff,
	}
}

// PlaceBid inserts a new bid. There is no floor or current-max comparison
// here: only revisions are policy-checked. The item must exist and be
// published, the bidder must exist, the amount must be positive.
func (e *Engine) PlaceBid(ctx context.Context, cmd PlaceBidCommand) (*Bid, error) {
	if cmd.Amount <= 0 {
		return nil, ErrInvalidBidAmount
	}

	item, err := e.itemRepo.GetItemByID(ctx, cmd.ItemID)
	if err != nil {
		return nil, fmt.Errorf("failed to get item: %w", err)
	}
	if item == nil {
		return nil, ErrItemNotFound
	}
	if !item.IsPublished() {
		return nil, ErrItemNotBiddable
	}

	now := time.Now()
	bid := &Bid{
		ItemID:    cmd.ItemID,
		BidderID:  cmd.BidderID,
		Amount:    cmd.Amount,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := e.bidRepo.InsertBid(ctx, bid); err != nil {
		if database.IsForeignKeyViolation(err) {
			// The item existed a moment ago, so a dangling reference here is
			// almost always the bidder.
			if strings.Contains(database.ConstraintName(err), "bidder") {
				return nil, ErrBidderNotFound
			}
			return nil, ErrItemNotFound
		}
		return nil, fmt.Errorf("failed to insert bid: %w", err)
	}

	return bid, nil
}

// ReviseBid attempts to make amount the item's new leading bid, persisting it
// onto the existing bid row. Transient store failures retry the whole call
// with backoff; by then the failed transaction has rolled back, so no partial
// state is observable.
func (e *Engine) ReviseBid(ctx context.Context, bidID, amount int64) (*Bid, error) {
	if amount <= 0 {
		return nil, ErrInvalidBidAmount
	}

	backoff := e.baseBackoff
	for attempt := 1; ; attempt++ {
		bid, err := e.reviseOnce(ctx, bidID, amount)
		if err == nil {
			return bid, nil
		}
		if attempt >= e.maxAttempts || !database.IsTransient(err) {
			return nil, err
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
		backoff *= 2
	}
}

func (e *Engine) reviseOnce(ctx context.Context, bidID, amount int64) (*Bid, error) {
	tx, err := e.txManager.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx) // Rollback if commit is not called
	}()

	bid, err := e.bidRepo.GetBidByIDForUpdate(ctx, tx, bidID)
	if err != nil {
		return nil, fmt.Errorf("failed to get bid: %w", err)
	}
	if bid == nil {
		return nil, ErrBidNotFound
	}

	// Lock the item row. Every revision for this item takes this lock, which
	// serializes the max-read and the amount-write below. Revisions on other
	// items proceed in parallel.
	item, err := e.itemRepo.GetItemByIDForUpdate(ctx, tx, bid.ItemID)
	if err != nil {
		return nil, fmt.Errorf("failed to get item: %w", err)
	}
	if item == nil {
		// Orphaned bid: the cascade should make this impossible
		return nil, ErrItemNotFound
	}

	currentMax, err := e.bidRepo.MaxAmountForItem(ctx, tx, bid.ItemID)
	if err != nil {
		return nil, fmt.Errorf("failed to get current highest bid: %w", err)
	}

	if valErr := evaluateRevision(amount, item.FloorPrice, currentMax); valErr != nil {
		return nil, valErr
	}

	affected, err := e.bidRepo.UpdateBidAmount(ctx, tx, bidID, amount)
	if err != nil {
		return nil, fmt.Errorf("failed to update bid amount: %w", err)
	}
	if affected == 0 {
		return nil, ErrBidNotFound
	}

	accepted := BidAccepted{
		BidID:      bid.ID,
		ItemID:     bid.ItemID,
		BidderID:   bid.BidderID,
		Amount:     amount,
		AcceptedAt: time.Now(),
	}
	payload, err := json.Marshal(accepted)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal event: %w", err)
	}

	outboxEvent := &events.OutboxEvent{
		ID:        uuid.New(),
		EventType: EventTypeBidAccepted,
		Payload:   payload,
		Status:    events.OutboxStatusPending,
		CreatedAt: accepted.AcceptedAt,
	}
	if err := e.outboxRepo.SaveEvent(ctx, tx, outboxEvent); err != nil {
		return nil, fmt.Errorf("failed to save outbox event: %w", err)
	}

	// If this succeeds, the revision and its event are saved together
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	bid.Amount = amount
	bid.UpdatedAt = accepted.AcceptedAt
	return bid, nil
}

// ListBids retrieves all bids
func (e *Engine) ListBids(ctx context.Context) ([]*Bid, error) {
	list, err := e.bidRepo.ListBids(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list bids: %w", err)
	}
	return list, nil
}
