package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"referral-platform/internal/model"
)

const uniqueViolation = "23505"

const userColumns = `id, name, username, email, phone, password_hash, wallet_balance, role, created_at, updated_at`

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (model.User, error) {
	return r.scanOne(r.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id), "find user by id")
}

// FindByIdentifier matches the login input against either username or email,
// case-sensitive as stored.
func (r *UserRepository) FindByIdentifier(ctx context.Context, input string) (model.User, error) {
	return r.scanOne(r.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE username = $1 OR email = $1`,
		strings.TrimSpace(input)), "find user by identifier")
}

// FindConflict returns any existing user holding the given email or username.
// Used by registration to report which field collided.
func (r *UserRepository) FindConflict(ctx context.Context, email string, username string) (model.User, error) {
	return r.scanOne(r.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1 OR username = $2`,
		email, username), "find conflicting user")
}

func (r *UserRepository) Create(ctx context.Context, u model.User) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO users (id, name, username, email, phone, password_hash, wallet_balance, role, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		u.ID, u.Name, u.Username, u.Email, u.Phone, u.PasswordHash, u.WalletBalance, u.Role, u.CreatedAt, u.UpdatedAt)
	if err != nil {
		// Two concurrent registrations can both pass the pre-check; the
		// unique index settles the race and the loser still gets the
		// field-specific error.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			if strings.Contains(pgErr.ConstraintName, "email") {
				return model.ErrDuplicateEmail
			}
			return model.ErrDuplicateUsername
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (r *UserRepository) UpdateProfile(ctx context.Context, id string, name string, phone string) (model.User, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE users SET name = $2, phone = $3, updated_at = $4 WHERE id = $1`,
		id, name, phone, time.Now().UTC())
	if err != nil {
		return model.User{}, fmt.Errorf("update profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.User{}, model.ErrUserNotFound
	}
	return r.FindByID(ctx, id)
}

func (r *UserRepository) List(ctx context.Context) ([]model.UserProfile, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, username, email, phone, wallet_balance, role FROM users ORDER BY username`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	users := make([]model.UserProfile, 0)
	for rows.Next() {
		var u model.UserProfile
		if err := rows.Scan(&u.ID, &u.Name, &u.Username, &u.Email, &u.Phone, &u.WalletBalance, &u.Role); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *UserRepository) scanOne(row pgx.Row, op string) (model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Name, &u.Username, &u.Email, &u.Phone,
		&u.PasswordHash, &u.WalletBalance, &u.Role, &u.CreatedAt, &u.UpdatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return model.User{}, model.ErrUserNotFound
	}
	if err != nil {
		return model.User{}, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}
