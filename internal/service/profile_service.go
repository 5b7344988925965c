package service

import (
	"context"
	"net/http"
	"strings"

	"referral-platform/internal/model"
	"referral-platform/pkg/apierror"
)

type ProfileStore interface {
	FindByID(ctx context.Context, id string) (model.User, error)
	UpdateProfile(ctx context.Context, id string, name string, phone string) (model.User, error)
	List(ctx context.Context) ([]model.UserProfile, error)
}

type WithdrawalTotals interface {
	Totals(ctx context.Context, userID string) (completed float64, pending float64, err error)
}

type ProfileService struct {
	users       ProfileStore
	withdrawals WithdrawalTotals
}

func NewProfileService(users ProfileStore, withdrawals WithdrawalTotals) *ProfileService {
	return &ProfileService{users: users, withdrawals: withdrawals}
}

func (s *ProfileService) Get(ctx context.Context, userID string) (model.UserProfile, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return model.UserProfile{}, err
	}
	return user.Profile(), nil
}

func (s *ProfileService) Update(ctx context.Context, userID string, req model.UpdateProfileRequest) (model.UserProfile, error) {
	name := strings.TrimSpace(req.Name)
	phone := strings.TrimSpace(req.Phone)
	if name == "" || phone == "" {
		return model.UserProfile{}, apierror.New("VALIDATION", "Name and phone are required", http.StatusBadRequest)
	}

	user, err := s.users.UpdateProfile(ctx, userID, name, phone)
	if err != nil {
		return model.UserProfile{}, err
	}
	return user.Profile(), nil
}

func (s *ProfileService) Dashboard(ctx context.Context, userID string) (model.DashboardResponse, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return model.DashboardResponse{}, err
	}

	completed, pending, err := s.withdrawals.Totals(ctx, userID)
	if err != nil {
		return model.DashboardResponse{}, err
	}

	return model.DashboardResponse{
		WalletBalance:    user.WalletBalance,
		TotalWithdrawn:   completed,
		PendingWithdrawn: pending,
	}, nil
}

func (s *ProfileService) ListUsers(ctx context.Context) ([]model.UserProfile, error) {
	return s.users.List(ctx)
}
