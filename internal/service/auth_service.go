package service

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"referral-platform/internal/model"
	"referral-platform/pkg/apierror"
)

// UserStore is the credential store the auth flows depend on. Uniqueness of
// username and email is the store's responsibility; Create reports a lost
// registration race as ErrDuplicateEmail/ErrDuplicateUsername.
type UserStore interface {
	FindByID(ctx context.Context, id string) (model.User, error)
	FindByIdentifier(ctx context.Context, input string) (model.User, error)
	FindConflict(ctx context.Context, email string, username string) (model.User, error)
	Create(ctx context.Context, u model.User) error
}

type AuthService struct {
	users  UserStore
	hasher *PasswordHasher
	tokens *TokenService
}

func NewAuthService(users UserStore, hasher *PasswordHasher, tokens *TokenService) *AuthService {
	return &AuthService{users: users, hasher: hasher, tokens: tokens}
}

type AuthResult struct {
	Token string
	User  model.UserProfile
}

func (s *AuthService) Register(ctx context.Context, req model.RegisterRequest) (AuthResult, error) {
	name := strings.TrimSpace(req.Name)
	username := strings.TrimSpace(req.Username)
	email := strings.TrimSpace(req.Email)
	phone := strings.TrimSpace(req.Phone)

	if name == "" || username == "" || email == "" || phone == "" || req.Password == "" {
		return AuthResult{}, apierror.New("VALIDATION", "All fields are required", http.StatusBadRequest)
	}

	// Email is checked before username so a request colliding on both
	// reports the email conflict.
	existing, err := s.users.FindConflict(ctx, email, username)
	if err == nil {
		if existing.Email == email {
			return AuthResult{}, apierror.New("DUPLICATE_EMAIL", "User with this email already exists", http.StatusBadRequest)
		}
		return AuthResult{}, apierror.New("DUPLICATE_USERNAME", "Username is already taken", http.StatusBadRequest)
	}
	if !errors.Is(err, model.ErrUserNotFound) {
		return AuthResult{}, err
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return AuthResult{}, err
	}

	now := time.Now().UTC()
	user := model.User{
		ID:           uuid.NewString(),
		Name:         name,
		Username:     username,
		Email:        email,
		Phone:        phone,
		PasswordHash: hash,
		Role:         model.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.users.Create(ctx, user); err != nil {
		switch {
		case errors.Is(err, model.ErrDuplicateEmail):
			return AuthResult{}, apierror.New("DUPLICATE_EMAIL", "User with this email already exists", http.StatusBadRequest)
		case errors.Is(err, model.ErrDuplicateUsername):
			return AuthResult{}, apierror.New("DUPLICATE_USERNAME", "Username is already taken", http.StatusBadRequest)
		}
		return AuthResult{}, err
	}

	token, err := s.tokens.Issue(user.ID, s.tokens.ExtendedTTL())
	if err != nil {
		return AuthResult{}, err
	}

	return AuthResult{Token: token, User: user.Profile()}, nil
}

// Login resolves the identifier against username or email. Unknown user and
// wrong password produce the same error so responses cannot be used to
// enumerate accounts.
func (s *AuthService) Login(ctx context.Context, req model.LoginRequest) (AuthResult, error) {
	input := strings.TrimSpace(req.UserInput)
	if input == "" || req.Password == "" {
		return AuthResult{}, apierror.New("VALIDATION", "Username/Email and password are required", http.StatusBadRequest)
	}

	user, err := s.users.FindByIdentifier(ctx, input)
	if errors.Is(err, model.ErrUserNotFound) {
		return AuthResult{}, invalidCredentials()
	}
	if err != nil {
		return AuthResult{}, err
	}

	if !s.hasher.Verify(req.Password, user.PasswordHash) {
		return AuthResult{}, invalidCredentials()
	}

	token, err := s.tokens.Issue(user.ID, s.tokens.SessionTTL(req.RememberMe))
	if err != nil {
		return AuthResult{}, err
	}

	return AuthResult{Token: token, User: user.Profile()}, nil
}

// VerifyUser resolves a validated token's subject. A user deleted after
// token issuance makes the token invalid.
func (s *AuthService) VerifyUser(ctx context.Context, userID string) (model.UserProfile, error) {
	user, err := s.users.FindByID(ctx, userID)
	if errors.Is(err, model.ErrUserNotFound) {
		return model.UserProfile{}, model.ErrTokenInvalid
	}
	if err != nil {
		return model.UserProfile{}, err
	}
	return user.Profile(), nil
}

// AdminSeed describes the account ensured at startup.
type AdminSeed struct {
	Username string
	Password string
	Email    string
	Phone    string
}

// SeedAdmin is an idempotent startup routine: it does nothing when the
// admin account already exists and warns when no password is configured.
func (s *AuthService) SeedAdmin(ctx context.Context, seed AdminSeed) error {
	if seed.Password == "" {
		slog.Warn("ADMIN_PASSWORD not set; skipping admin seed")
		return nil
	}

	_, err := s.users.FindByIdentifier(ctx, seed.Username)
	if err == nil {
		slog.Info("admin user already exists", "username", seed.Username)
		return nil
	}
	if !errors.Is(err, model.ErrUserNotFound) {
		return err
	}

	hash, err := s.hasher.Hash(seed.Password)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	admin := model.User{
		ID:           uuid.NewString(),
		Name:         "Super Admin",
		Username:     seed.Username,
		Email:        seed.Email,
		Phone:        seed.Phone,
		PasswordHash: hash,
		Role:         model.RoleAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.users.Create(ctx, admin); err != nil {
		// Another instance won the seed race; the account exists either way.
		if errors.Is(err, model.ErrDuplicateUsername) || errors.Is(err, model.ErrDuplicateEmail) {
			return nil
		}
		return err
	}

	slog.Info("admin user created", "username", seed.Username)
	return nil
}

func invalidCredentials() error {
	return apierror.New("INVALID_CREDENTIALS", "Invalid credentials", http.StatusBadRequest)
}
