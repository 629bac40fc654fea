package items

import (
	"context"
	"fmt"
	"time"
)

// Service errors
var (
	ErrItemNotFound      = fmt.Errorf("item not found")
	ErrItemImmutable     = fmt.Errorf("item details can only be changed while in draft")
	ErrInvalidName       = fmt.Errorf("item name must not be empty")
	ErrInvalidFloorPrice = fmt.Errorf("floor price must be greater than 0")
	ErrInvalidTimeWindow = fmt.Errorf("time window must be non-negative and not zero")
	ErrInvalidState      = fmt.Errorf("state must be draft or published")
)

// CreateItemCommand represents the command to create a new item
type CreateItemCommand struct {
	Name              string
	FloorPrice        int64
	TimeWindowHours   int
	TimeWindowMinutes int
	State             ItemState
}

// UpdateItemDetailsCommand represents the command to update a draft item
type UpdateItemDetailsCommand struct {
	ItemID            int64
	Name              string
	FloorPrice        int64
	TimeWindowHours   int
	TimeWindowMinutes int
}

// validateItemDetails checks the shared field constraints for create and update
func validateItemDetails(name string, floorPrice int64, hours, minutes int) error {
	if name == "" {
		return ErrInvalidName
	}
	if floorPrice <= 0 {
		return ErrInvalidFloorPrice
	}
	if hours < 0 || minutes < 0 || (hours == 0 && minutes == 0) {
		return ErrInvalidTimeWindow
	}
	return nil
}

// Service implements the item lifecycle business logic
type Service struct {
	repo Repository
}

// NewService creates a new item service
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// CreateItem creates a new item, in draft unless the command says otherwise
func (s *Service) CreateItem(ctx context.Context, cmd CreateItemCommand) (*Item, error) {
	if err := validateItemDetails(cmd.Name, cmd.FloorPrice, cmd.TimeWindowHours, cmd.TimeWindowMinutes); err != nil {
		return nil, err
	}

	state := cmd.State
	if state == "" {
		state = ItemStateDraft
	}
	if state != ItemStateDraft && state != ItemStatePublished {
		return nil, ErrInvalidState
	}

	now := time.Now()
	item := &Item{
		Name:              cmd.Name,
		FloorPrice:        cmd.FloorPrice,
		TimeWindowHours:   cmd.TimeWindowHours,
		TimeWindowMinutes: cmd.TimeWindowMinutes,
		State:             state,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := s.repo.CreateItem(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to create item: %w", err)
	}

	return item, nil
}

// GetItem retrieves an item by ID
func (s *Service) GetItem(ctx context.Context, itemID int64) (*Item, error) {
	item, err := s.repo.GetItemByID(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("failed to get item: %w", err)
	}
	if item == nil {
		return nil, ErrItemNotFound
	}
	return item, nil
}

// ListItems retrieves all items
func (s *Service) ListItems(ctx context.Context) ([]*Item, error) {
	list, err := s.repo.ListItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	return list, nil
}

// ListItemsByState retrieves items in a single lifecycle state
func (s *Service) ListItemsByState(ctx context.Context, state ItemState) ([]*Item, error) {
	if state != ItemStateDraft && state != ItemStatePublished {
		return nil, ErrInvalidState
	}
	list, err := s.repo.ListItemsByState(ctx, state)
	if err != nil {
		return nil, fmt.Errorf("failed to list items by state: %w", err)
	}
	return list, nil
}

// UpdateItemDetails updates the editable fields of a draft item.
// Published items are immutable detail-wise.
func (s *Service) UpdateItemDetails(ctx context.Context, cmd UpdateItemDetailsCommand) (*Item, error) {
	if err := validateItemDetails(cmd.Name, cmd.FloorPrice, cmd.TimeWindowHours, cmd.TimeWindowMinutes); err != nil {
		return nil, err
	}

	item, err := s.GetItem(ctx, cmd.ItemID)
	if err != nil {
		return nil, err
	}
	if item.IsPublished() {
		return nil, ErrItemImmutable
	}

	item.Name = cmd.Name
	item.FloorPrice = cmd.FloorPrice
	item.TimeWindowHours = cmd.TimeWindowHours
	item.TimeWindowMinutes = cmd.TimeWindowMinutes
	item.UpdatedAt = time.Now()

	affected, err := s.repo.UpdateItemDetails(ctx, item)
	if err != nil {
		return nil, fmt.Errorf("failed to update item: %w", err)
	}
	if affected == 0 {
		return nil, ErrItemNotFound
	}

	return item, nil
}

// UpdateItemPrice updates only the floor price of a draft item
func (s *Service) UpdateItemPrice(ctx context.Context, itemID, floorPrice int64) (*Item, error) {
	if floorPrice <= 0 {
		return nil, ErrInvalidFloorPrice
	}

	item, err := s.GetItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item.IsPublished() {
		return nil, ErrItemImmutable
	}

	item.FloorPrice = floorPrice
	item.UpdatedAt = time.Now()

	affected, err := s.repo.UpdateItemDetails(ctx, item)
	if err != nil {
		return nil, fmt.Errorf("failed to update item price: %w", err)
	}
	if affected == 0 {
		return nil, ErrItemNotFound
	}

	return item, nil
}

// PublishItem moves an item from draft to published, making it biddable.
// Publishing an already published item is a no-op success.
func (s *Service) PublishItem(ctx context.Context, itemID int64) (*Item, error) {
	item, err := s.GetItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item.IsPublished() {
		return item, nil
	}

	affected, err := s.repo.UpdateItemState(ctx, itemID, ItemStatePublished)
	if err != nil {
		return nil, fmt.Errorf("failed to publish item: %w", err)
	}
	if affected == 0 {
		return nil, ErrItemNotFound
	}

	item.State = ItemStatePublished
	return item, nil
}

// DeleteItem removes an item; its bids go with it via cascade
func (s *Service) DeleteItem(ctx context.Context, itemID int64) error {
	affected, err := s.repo.DeleteItem(ctx, itemID)
	if err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}
	if affected == 0 {
		return ErrItemNotFound
	}
	return nil
}
