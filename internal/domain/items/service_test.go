package items

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockRepository is a mock implementation of Repository for testing
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) CreateItem(ctx context.Context, item *Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockRepository) GetItemByID(ctx context.Context, itemID int64) (*Item, error) {
	args := m.Called(ctx, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Item), args.Error(1)
}

func (m *MockRepository) UpdateItemDetails(ctx context.Context, item *Item) (int64, error) {
	args := m.Called(ctx, item)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRepository) UpdateItemState(ctx context.Context, itemID int64, state ItemState) (int64, error) {
	args := m.Called(ctx, itemID, state)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRepository) DeleteItem(ctx context.Context, itemID int64) (int64, error) {
	args := m.Called(ctx, itemID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRepository) ListItems(ctx context.Context) ([]*Item, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Item), args.Error(1)
}

func (m *MockRepository) ListItemsByState(ctx context.Context, state ItemState) ([]*Item, error) {
	args := m.Called(ctx, state)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Item), args.Error(1)
}

func TestService_CreateItem(t *testing.T) {
	tests := []struct {
		name        string
		cmd         CreateItemCommand
		setupMock   func(*MockRepository)
		wantErr     error
		checkResult func(*testing.T, *Item)
	}{
		{
			name: "successfully creates draft item by default",
			cmd: CreateItemCommand{
				Name:            "Vintage Clock",
				FloorPrice:      1000,
				TimeWindowHours: 24,
			},
			setupMock: func(repo *MockRepository) {
				repo.On("CreateItem", mock.Anything, mock.AnythingOfType("*items.Item")).Return(nil)
			},
			wantErr: nil,
			checkResult: func(t *testing.T, item *Item) {
				assert.Equal(t, "Vintage Clock", item.Name)
				assert.Equal(t, int64(1000), item.FloorPrice)
				assert.Equal(t, ItemStateDraft, item.State)
			},
		},
		{
			name: "successfully creates published item when requested",
			cmd: CreateItemCommand{
				Name:              "Rare Stamp",
				FloorPrice:        500,
				TimeWindowMinutes: 30,
				State:             ItemStatePublished,
			},
			setupMock: func(repo *MockRepository) {
				repo.On("CreateItem", mock.Anything, mock.AnythingOfType("*items.Item")).Return(nil)
			},
			wantErr: nil,
			checkResult: func(t *testing.T, item *Item) {
				assert.Equal(t, ItemStatePublished, item.State)
			},
		},
		{
			name: "fails with empty name",
			cmd: CreateItemCommand{
				Name:            "",
				FloorPrice:      1000,
				TimeWindowHours: 24,
			},
			setupMock: func(repo *MockRepository) {
				// No repo calls expected
			},
			wantErr: ErrInvalidName,
		},
		{
			name: "fails with zero floor price",
			cmd: CreateItemCommand{
				Name:            "Vintage Clock",
				FloorPrice:      0,
				TimeWindowHours: 24,
			},
			setupMock: func(repo *MockRepository) {
				// No repo calls expected
			},
			wantErr: ErrInvalidFloorPrice,
		},
		{
			name: "fails with negative floor price",
			cmd: CreateItemCommand{
				Name:            "Vintage Clock",
				FloorPrice:      -100,
				TimeWindowHours: 24,
			},
			setupMock: func(repo *MockRepository) {
				// No repo calls expected
			},
			wantErr: ErrInvalidFloorPrice,
		},
		{
			name: "fails with zero time window",
			cmd: CreateItemCommand{
				Name:       "Vintage Clock",
				FloorPrice: 1000,
			},
			setupMock: func(repo *MockRepository) {
				// No repo calls expected
			},
			wantErr: ErrInvalidTimeWindow,
		},
		{
			name: "fails with negative time window",
			cmd: CreateItemCommand{
				Name:            "Vintage Clock",
				FloorPrice:      1000,
				TimeWindowHours: -1,
			},
			setupMock: func(repo *MockRepository) {
				// No repo calls expected
			},
			wantErr: ErrInvalidTimeWindow,
		},
		{
			name: "fails with unknown state",
			cmd: CreateItemCommand{
				Name:            "Vintage Clock",
				FloorPrice:      1000,
				TimeWindowHours: 24,
				State:           ItemState("archived"),
			},
			setupMock: func(repo *MockRepository) {
				// No repo calls expected
			},
			wantErr: ErrInvalidState,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockRepository)
			tt.setupMock(repo)

			service := NewService(repo)
			item, err := service.CreateItem(context.Background(), tt.cmd)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, item)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, item)
				if tt.checkResult != nil {
					tt.checkResult(t, item)
				}
			}

			repo.AssertExpectations(t)
		})
	}
}

func TestService_UpdateItemDetails(t *testing.T) {
	tests := []struct {
		name      string
		cmd       UpdateItemDetailsCommand
		setupMock func(*MockRepository)
		wantErr   error
	}{
		{
			name: "successfully updates draft item",
			cmd: UpdateItemDetailsCommand{
				ItemID:          1,
				Name:            "Updated Clock",
				FloorPrice:      2000,
				TimeWindowHours: 48,
			},
			setupMock: func(repo *MockRepository) {
				repo.On("GetItemByID", mock.Anything, int64(1)).Return(&Item{
					ID:    1,
					Name:  "Vintage Clock",
					State: ItemStateDraft,
				}, nil)
				repo.On("UpdateItemDetails", mock.Anything, mock.AnythingOfType("*items.Item")).Return(int64(1), nil)
			},
			wantErr: nil,
		},
		{
			name: "fails when item not found",
			cmd: UpdateItemDetailsCommand{
				ItemID:          99,
				Name:            "Updated Clock",
				FloorPrice:      2000,
				TimeWindowHours: 48,
			},
			setupMock: func(repo *MockRepository) {
				repo.On("GetItemByID", mock.Anything, int64(99)).Return(nil, nil)
			},
			wantErr: ErrItemNotFound,
		},
		{
			name: "fails when item is published",
			cmd: UpdateItemDetailsCommand{
				ItemID:          1,
				Name:            "Updated Clock",
				FloorPrice:      2000,
				TimeWindowHours: 48,
			},
			setupMock: func(repo *MockRepository) {
				repo.On("GetItemByID", mock.Anything, int64(1)).Return(&Item{
					ID:    1,
					Name:  "Vintage Clock",
					State: ItemStatePublished,
				}, nil)
			},
			wantErr: ErrItemImmutable,
		},
		{
			name: "fails validation before hitting the store",
			cmd: UpdateItemDetailsCommand{
				ItemID:          1,
				Name:            "",
				FloorPrice:      2000,
				TimeWindowHours: 48,
			},
			setupMock: func(repo *MockRepository) {
				// No repo calls expected
			},
			wantErr: ErrInvalidName,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockRepository)
			tt.setupMock(repo)

			service := NewService(repo)
			item, err := service.UpdateItemDetails(context.Background(), tt.cmd)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, item)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, item)
				assert.Equal(t, tt.cmd.Name, item.Name)
				assert.Equal(t, tt.cmd.FloorPrice, item.FloorPrice)
			}

			repo.AssertExpectations(t)
		})
	}
}

func TestService_UpdateItemPrice(t *testing.T) {
	tests := []struct {
		name       string
		itemID     int64
		floorPrice int64
		setupMock  func(*MockRepository)
		wantErr    error
	}{
		{
			name:       "successfully updates price of draft item",
			itemID:     1,
			floorPrice: 3000,
			setupMock: func(repo *MockRepository) {
				repo.On("GetItemByID", mock.Anything, int64(1)).Return(&Item{
					ID:         1,
					Name:       "Vintage Clock",
					FloorPrice: 1000,
					State:      ItemStateDraft,
				}, nil)
				repo.On("UpdateItemDetails", mock.Anything, mock.AnythingOfType("*items.Item")).Return(int64(1), nil)
			},
			wantErr: nil,
		},
		{
			name:       "fails with non-positive price",
			itemID:     1,
			floorPrice: 0,
			setupMock: func(repo *MockRepository) {
				// No repo calls expected
			},
			wantErr: ErrInvalidFloorPrice,
		},
		{
			name:       "fails when item is published",
			itemID:     1,
			floorPrice: 3000,
			setupMock: func(repo *MockRepository) {
				repo.On("GetItemByID", mock.Anything, int64(1)).Return(&Item{
					ID:         1,
					FloorPrice: 1000,
					State:      ItemStatePublished,
				}, nil)
			},
			wantErr: ErrItemImmutable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockRepository)
			tt.setupMock(repo)

			service := NewService(repo)
			item, err := service.UpdateItemPrice(context.Background(), tt.itemID, tt.floorPrice)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, item)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, item)
				assert.Equal(t, tt.floorPrice, item.FloorPrice)
			}

			repo.AssertExpectations(t)
		})
	}
}

func TestService_PublishItem(t *testing.T) {
	tests := []struct {
		name      string
		itemID    int64
		setupMock func(*MockRepository)
		wantErr   error
	}{
		{
			name:   "successfully publishes draft item",
			itemID: 1,
			setupMock: func(repo *MockRepository) {
				repo.On("GetItemByID", mock.Anything, int64(1)).Return(&Item{
					ID:    1,
					State: ItemStateDraft,
				}, nil)
				repo.On("UpdateItemState", mock.Anything, int64(1), ItemStatePublished).Return(int64(1), nil)
			},
			wantErr: nil,
		},
		{
			name:   "publishing an already published item is a no-op",
			itemID: 1,
			setupMock: func(repo *MockRepository) {
				repo.On("GetItemByID", mock.Anything, int64(1)).Return(&Item{
					ID:    1,
					State: ItemStatePublished,
				}, nil)
				// No UpdateItemState call expected
			},
			wantErr: nil,
		},
		{
			name:   "fails when item not found",
			itemID: 99,
			setupMock: func(repo *MockRepository) {
				repo.On("GetItemByID", mock.Anything, int64(99)).Return(nil, nil)
			},
			wantErr: ErrItemNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockRepository)
			tt.setupMock(repo)

			service := NewService(repo)
			item, err := service.PublishItem(context.Background(), tt.itemID)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, item)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, item)
				assert.Equal(t, ItemStatePublished, item.State)
			}

			repo.AssertExpectations(t)
		})
	}
}

func TestService_DeleteItem(t *testing.T) {
	t.Run("successfully deletes item", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("DeleteItem", mock.Anything, int64(1)).Return(int64(1), nil)

		service := NewService(repo)
		err := service.DeleteItem(context.Background(), 1)

		assert.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("fails when item not found", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("DeleteItem", mock.Anything, int64(99)).Return(int64(0), nil)

		service := NewService(repo)
		err := service.DeleteItem(context.Background(), 99)

		assert.ErrorIs(t, err, ErrItemNotFound)
		repo.AssertExpectations(t)
	})

	t.Run("propagates store errors", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("DeleteItem", mock.Anything, int64(1)).Return(int64(0), errors.New("connection reset"))

		service := NewService(repo)
		err := service.DeleteItem(context.Background(), 1)

		assert.Error(t, err)
		assert.NotErrorIs(t, err, ErrItemNotFound)
		repo.AssertExpectations(t)
	})
}

func TestService_ListItemsByState(t *testing.T) {
	t.Run("rejects unknown state", func(t *testing.T) {
		repo := new(MockRepository)

		service := NewService(repo)
		list, err := service.ListItemsByState(context.Background(), ItemState("archived"))

		assert.ErrorIs(t, err, ErrInvalidState)
		assert.Nil(t, list)
		repo.AssertExpectations(t)
	})

	t.Run("returns items in the requested state", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("ListItemsByState", mock.Anything, ItemStatePublished).Return([]*Item{
			{ID: 1, State: ItemStatePublished},
			{ID: 2, State: ItemStatePublished},
		}, nil)

		service := NewService(repo)
		list, err := service.ListItemsByState(context.Background(), ItemStatePublished)

		assert.NoError(t, err)
		assert.Len(t, list, 2)
		repo.AssertExpectations(t)
	})
}
