package service

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"referral-platform/internal/model"
)

type fakeWithdrawalStore struct {
	mu      sync.Mutex
	balance float64
	items   []model.Withdrawal
}

func (f *fakeWithdrawalStore) Create(_ context.Context, w model.Withdrawal) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.balance < w.Amount {
		return model.ErrInsufficientBalance
	}
	f.balance -= w.Amount
	f.items = append(f.items, w)
	return nil
}

func (f *fakeWithdrawalStore) ListByUser(_ context.Context, userID string, status string) ([]model.Withdrawal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]model.Withdrawal, 0)
	for _, w := range f.items {
		if w.UserID != userID {
			continue
		}
		if status != "" && w.Status != status {
			continue
		}
		out = append(out, w)
	}
	return out, nil
}

func TestWithdrawalCreate(t *testing.T) {
	t.Parallel()

	t.Run("debits the wallet and records the request", func(t *testing.T) {
		store := &fakeWithdrawalStore{balance: 100}
		svc := NewWithdrawalService(store)

		w, err := svc.Create(context.Background(), "user-1", model.CreateWithdrawalRequest{Amount: 40, Method: "bank"})
		require.NoError(t, err)
		require.Equal(t, WithdrawalStatusPending, w.Status)
		require.NotEmpty(t, w.ID)
		require.Equal(t, 60.0, store.balance)
	})

	t.Run("rejects an amount beyond the balance and leaves it unchanged", func(t *testing.T) {
		store := &fakeWithdrawalStore{balance: 100}
		svc := NewWithdrawalService(store)

		_, err := svc.Create(context.Background(), "user-1", model.CreateWithdrawalRequest{Amount: 150, Method: "bank"})
		require.ErrorIs(t, err, model.ErrInsufficientBalance)
		require.Equal(t, 100.0, store.balance)
	})

	t.Run("rejects non-positive amounts", func(t *testing.T) {
		store := &fakeWithdrawalStore{balance: 100}
		svc := NewWithdrawalService(store)

		_, err := svc.Create(context.Background(), "user-1", model.CreateWithdrawalRequest{Amount: 0, Method: "bank"})
		requireAPIError(t, err, 400, "Withdrawal amount must be positive")

		_, err = svc.Create(context.Background(), "user-1", model.CreateWithdrawalRequest{Amount: -5, Method: "bank"})
		requireAPIError(t, err, 400, "Withdrawal amount must be positive")
	})

	t.Run("requires a method", func(t *testing.T) {
		store := &fakeWithdrawalStore{balance: 100}
		svc := NewWithdrawalService(store)

		_, err := svc.Create(context.Background(), "user-1", model.CreateWithdrawalRequest{Amount: 10})
		requireAPIError(t, err, 400, "Withdrawal method is required")
	})
}

func TestWithdrawalListFiltersByStatus(t *testing.T) {
	t.Parallel()

	store := &fakeWithdrawalStore{balance: 1000}
	svc := NewWithdrawalService(store)

	_, err := svc.Create(context.Background(), "user-1", model.CreateWithdrawalRequest{Amount: 10, Method: "bank"})
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), "user-2", model.CreateWithdrawalRequest{Amount: 20, Method: "bank"})
	require.NoError(t, err)

	mine, err := svc.List(context.Background(), "user-1", "")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	require.Equal(t, "user-1", mine[0].UserID)

	pending, err := svc.List(context.Background(), "user-1", WithdrawalStatusPending)
	require.NoError(t, err)
	require.Len(t, pending, 1)

	completed, err := svc.List(context.Background(), "user-1", "completed")
	require.NoError(t, err)
	require.Empty(t, completed)
}
