package service

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"referral-platform/internal/model"
	"referral-platform/pkg/apierror"
)

const WithdrawalStatusPending = "pending"

type WithdrawalStore interface {
	Create(ctx context.Context, w model.Withdrawal) error
	ListByUser(ctx context.Context, userID string, status string) ([]model.Withdrawal, error)
}

type WithdrawalService struct {
	withdrawals WithdrawalStore
}

func NewWithdrawalService(withdrawals WithdrawalStore) *WithdrawalService {
	return &WithdrawalService{withdrawals: withdrawals}
}

func (s *WithdrawalService) Create(ctx context.Context, userID string, req model.CreateWithdrawalRequest) (model.Withdrawal, error) {
	method := strings.TrimSpace(req.Method)
	if method == "" {
		return model.Withdrawal{}, apierror.New("VALIDATION", "Withdrawal method is required", http.StatusBadRequest)
	}
	if req.Amount <= 0 {
		return model.Withdrawal{}, apierror.New("VALIDATION", "Withdrawal amount must be positive", http.StatusBadRequest)
	}

	w := model.Withdrawal{
		ID:          uuid.NewString(),
		UserID:      userID,
		Amount:      req.Amount,
		Method:      method,
		Status:      WithdrawalStatusPending,
		RequestedAt: time.Now().UTC(),
	}

	if err := s.withdrawals.Create(ctx, w); err != nil {
		return model.Withdrawal{}, err
	}
	return w, nil
}

func (s *WithdrawalService) List(ctx context.Context, userID string, status string) ([]model.Withdrawal, error) {
	return s.withdrawals.ListByUser(ctx, userID, status)
}
