package items

import "context"

// Repository defines the interface for item persistence.
// Lookups return (nil, nil) when the item does not exist.
type Repository interface {
	CreateItem(ctx context.Context, item *Item) error
	GetItemByID(ctx context.Context, itemID int64) (*Item, error)
	UpdateItemDetails(ctx context.Context, item *Item) (int64, error)
	UpdateItemState(ctx context.Context, itemID int64, state ItemState) (int64, error)
	DeleteItem(ctx context.Context, itemID int64) (int64, error)
	ListItems(ctx context.Context) ([]*Item, error)
	ListItemsByState(ctx context.Context, state ItemState) ([]*Item, error)
}
