package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dverbeek/paddle/internal/domain/deposits"
)

// PostgresDepositRepository implements deposits.Repository
type PostgresDepositRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresDepositRepository(pool *pgxpool.Pool) *PostgresDepositRepository {
	return &PostgresDepositRepository{pool: pool}
}

// InsertDeposit appends a ledger entry and fills in its generated ID
func (r *PostgresDepositRepository) InsertDeposit(ctx context.Context, deposit *deposits.Deposit) error {
	query := `
		INSERT INTO deposits (user_id, amount, created_at)
		VALUES ($1, $2, $3)
		RETURNING id
	`
	err := r.pool.QueryRow(ctx, query,
		deposit.UserID,
		deposit.Amount,
		deposit.CreatedAt,
	).Scan(&deposit.ID)
	if err != nil {
		return err
	}
	return nil
}

// ListDeposits retrieves all ledger entries
func (r *PostgresDepositRepository) ListDeposits(ctx context.Context) ([]*deposits.Deposit, error) {
	query := `
		SELECT id, user_id, amount, created_at
		FROM deposits
		ORDER BY created_at DESC
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query deposits: %w", err)
	}
	defer rows.Close()

	var result []*deposits.Deposit
	for rows.Next() {
		var d deposits.Deposit
		if err := rows.Scan(&d.ID, &d.UserID, &d.Amount, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan deposit: %w", err)
		}
		result = append(result, &d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating deposits: %w", err)
	}

	return result, nil
}
