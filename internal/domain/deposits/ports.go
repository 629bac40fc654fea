package deposits

import (
	"context"

	"github.com/dverbeek/paddle/internal/domain/users"
)

// Repository defines the interface for deposit persistence
type Repository interface {
	InsertDeposit(ctx context.Context, deposit *Deposit) error
	ListDeposits(ctx context.Context) ([]*Deposit, error)
}

// UserReader is the user lookup the deposit service needs
type UserReader interface {
	GetUserByID(ctx context.Context, id int64) (*users.User, error)
}
