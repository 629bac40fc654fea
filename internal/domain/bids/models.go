package bids

import "time"

// Bid represents a bid placed on an item. The amount may be revised upward
// in place; the row identity never changes.
type Bid struct {
	ID        int64     `db:"id" json:"id"`
	ItemID    int64     `db:"item_id" json:"itemId"`
	BidderID  int64     `db:"bidder_id" json:"bidderId"`
	Amount    int64     `db:"amount" json:"bidAmount"` // minor units
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// EventTypeBidAccepted is the outbox event type for an accepted revision.
const EventTypeBidAccepted = "bid.accepted"

// BidAccepted is the JSON payload of a bid.accepted outbox event.
type BidAccepted struct {
	BidID      int64     `json:"bidId"`
	ItemID     int64     `json:"itemId"`
	BidderID   int64     `json:"bidderId"`
	Amount     int64     `json:"amount"`
	AcceptedAt time.Time `json:"acceptedAt"`
}
