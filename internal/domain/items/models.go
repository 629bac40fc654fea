package items

import "time"

// ItemState is the lifecycle state of an item. The only transition exposed
// is draft -> published; there is no way back.
type ItemState string

const (
	ItemStateDraft     ItemState = "draft"
	ItemStatePublished ItemState = "published"
)

// Item is a listing that can receive bids once published.
type Item struct {
	ID                int64     `db:"id" json:"id"`
	Name              string    `db:"name" json:"itemName"`
	FloorPrice        int64     `db:"floor_price" json:"itemPrice"` // minor units
	TimeWindowHours   int       `db:"time_window_hours" json:"timeWindowHours"`
	TimeWindowMinutes int       `db:"time_window_minutes" json:"timeWindowMinutes"`
	State             ItemState `db:"state" json:"state"`
	CreatedAt         time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt         time.Time `db:"updated_at" json:"updatedAt"`
}

// IsPublished reports whether the item is open for bidding.
func (i *Item) IsPublished() bool {
	return i.State == ItemStatePublished
}
