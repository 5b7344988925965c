package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"referral-platform/internal/model"
)

type WithdrawalRepository struct {
	pool *pgxpool.Pool
}

func NewWithdrawalRepository(pool *pgxpool.Pool) *WithdrawalRepository {
	return &WithdrawalRepository{pool: pool}
}

// Create debits the wallet and records the withdrawal in one transaction.
// The balance check happens inside the UPDATE so two concurrent requests
// cannot both drain the same funds.
func (r *WithdrawalRepository) Create(ctx context.Context, w model.Withdrawal) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin withdrawal tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	tag, err := tx.Exec(ctx,
		`UPDATE users SET wallet_balance = wallet_balance - $2, updated_at = $3
		 WHERE id = $1 AND wallet_balance >= $2`,
		w.UserID, w.Amount, w.RequestedAt)
	if err != nil {
		return fmt.Errorf("debit wallet: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrInsufficientBalance
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO withdrawals (id, user_id, amount, method, status, requested_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		w.ID, w.UserID, w.Amount, w.Method, w.Status, w.RequestedAt)
	if err != nil {
		return fmt.Errorf("insert withdrawal: %w", err)
	}

	return tx.Commit(ctx)
}

func (r *WithdrawalRepository) ListByUser(ctx context.Context, userID string, status string) ([]model.Withdrawal, error) {
	query := `SELECT id, user_id, amount, method, status, requested_at
	          FROM withdrawals WHERE user_id = $1`
	args := []any{userID}
	if s := strings.TrimSpace(status); s != "" {
		query += ` AND status = $2`
		args = append(args, s)
	}
	query += ` ORDER BY requested_at DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list withdrawals: %w", err)
	}
	defer rows.Close()

	out := make([]model.Withdrawal, 0)
	for rows.Next() {
		var w model.Withdrawal
		if err := rows.Scan(&w.ID, &w.UserID, &w.Amount, &w.Method, &w.Status, &w.RequestedAt); err != nil {
			return nil, fmt.Errorf("scan withdrawal: %w", err)
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

// Totals reports completed and pending withdrawal sums for the dashboard.
func (r *WithdrawalRepository) Totals(ctx context.Context, userID string) (completed float64, pending float64, err error) {
	err = r.pool.QueryRow(ctx,
		`SELECT COALESCE(SUM(amount) FILTER (WHERE status = 'completed'), 0),
		        COALESCE(SUM(amount) FILTER (WHERE status = 'pending'), 0)
		 FROM withdrawals WHERE user_id = $1`, userID).Scan(&completed, &pending)
	if err != nil {
		return 0, 0, fmt.Errorf("withdrawal totals: %w", err)
	}
	return completed, pending, nil
}
