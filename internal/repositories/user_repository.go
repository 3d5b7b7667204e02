package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"workboard/internal/models"
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateRefresh(ctx context.Context, id int64, token string, expiresAt time.Time) error
	GetByRefresh(ctx context.Context, token string) (*models.User, error)
}

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	const q = `
                INSERT INTO users (email, password_hash)
                VALUES ($1, $2)
                RETURNING id
        `
	if err := r.db.QueryRowContext(ctx, q, user.Email, user.PasswordHash).Scan(&user.ID); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("email already registered")
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	const q = `SELECT id, email, password_hash FROM users WHERE id=$1`
	var u models.User
	if err := r.db.QueryRowContext(ctx, q, id).Scan(&u.ID, &u.Email, &u.PasswordHash); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	const q = `SELECT id, email, password_hash FROM users WHERE LOWER(email)=LOWER($1)`
	var u models.User
	if err := r.db.QueryRowContext(ctx, q, email).Scan(&u.ID, &u.Email, &u.PasswordHash); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return &u, nil
}

func (r *userRepository) UpdateRefresh(ctx context.Context, id int64, token string, expiresAt time.Time) error {
	const q = `
                UPDATE users
                SET refresh_token=$1, refresh_expires_at=$2, refresh_revoked=false
                WHERE id=$3
        `
	if _, err := r.db.ExecContext(ctx, q, token, expiresAt, id); err != nil {
		return fmt.Errorf("update refresh token: %w", err)
	}
	return nil
}

func (r *userRepository) GetByRefresh(ctx context.Context, token string) (*models.User, error) {
	const q = `
                SELECT id, email, password_hash, refresh_token, refresh_expires_at, refresh_revoked
                FROM users
                WHERE refresh_token=$1
        `
	var u models.User
	if err := r.db.QueryRowContext(ctx, q, token).Scan(
		&u.ID, &u.Email, &u.PasswordHash,
		&u.RefreshToken, &u.RefreshExpiresAt, &u.RefreshRevoked,
	); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by refresh token: %w", err)
	}
	return &u, nil
}
