package deposits

import "time"

// Deposit is an append-only ledger entry: created once, never mutated.
type Deposit struct {
	ID        int64     `db:"id" json:"id"`
	UserID    int64     `db:"user_id" json:"userId"`
	Amount    int64     `db:"amount" json:"amount"` // minor units
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}
