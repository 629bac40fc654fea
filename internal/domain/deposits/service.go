package deposits

import (
	"context"
	"fmt"
	"time"

	"github.com/dverbeek/paddle/internal/domain/users"
	"github.com/dverbeek/paddle/pkg/database"
)

var ErrInvalidAmount = fmt.Errorf("deposit amount must be positive")

type Service struct {
	repo     Repository
	userRepo UserReader
}

func NewService(repo Repository, userRepo UserReader) *Service {
	return &Service{repo: repo, userRepo: userRepo}
}

// CreateDeposit appends a ledger entry for an existing account
func (s *Service) CreateDeposit(ctx context.Context, userID, amount int64) (*Deposit, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, users.ErrUserNotFound
	}

	deposit := &Deposit{
		UserID:    userID,
		Amount:    amount,
		CreatedAt: time.Now(),
	}

	if err := s.repo.InsertDeposit(ctx, deposit); err != nil {
		// The account can be deleted between the lookup and the insert
		if database.IsForeignKeyViolation(err) {
			return nil, users.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to insert deposit: %w", err)
	}

	return deposit, nil
}

// ListDeposits retrieves all ledger entries
func (s *Service) ListDeposits(ctx context.Context) ([]*Deposit, error) {
	list, err := s.repo.ListDeposits(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list deposits: %w", err)
	}
	return list, nil
}
