package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"workboard/internal/models"
)

type ClientRepository struct {
	db *sql.DB
}

func NewClientRepository(db *sql.DB) *ClientRepository {
	return &ClientRepository{db: db}
}

func (r *ClientRepository) Create(ctx context.Context, client *models.Client) error {
	const q = `
                INSERT INTO clients (user_id, name, created_at)
                VALUES ($1, $2, $3)
                RETURNING id
        `
	if err := r.db.QueryRowContext(ctx, q, client.UserID, client.Name, client.CreatedAt).Scan(&client.ID); err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateName
		}
		return fmt.Errorf("create client: %w", err)
	}
	return nil
}

func (r *ClientRepository) GetByID(ctx context.Context, id int64) (*models.Client, error) {
	const q = `
                SELECT id, user_id, name, created_at
                FROM clients
                WHERE id=$1
        `
	var c models.Client
	if err := r.db.QueryRowContext(ctx, q, id).Scan(&c.ID, &c.UserID, &c.Name, &c.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get client: %w", err)
	}
	return &c, nil
}

// GetByName looks up one client of a user by exact name, case-insensitively.
// Returns nil when no such client exists.
func (r *ClientRepository) GetByName(ctx context.Context, userID int64, name string) (*models.Client, error) {
	const q = `
                SELECT id, user_id, name, created_at
                FROM clients
                WHERE user_id=$1 AND LOWER(name)=LOWER($2)
        `
	var c models.Client
	if err := r.db.QueryRowContext(ctx, q, userID, name).Scan(&c.ID, &c.UserID, &c.Name, &c.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get client by name: %w", err)
	}
	return &c, nil
}

func (r *ClientRepository) ListByUser(ctx context.Context, userID int64) ([]*models.Client, error) {
	const q = `
                SELECT id, user_id, name, created_at
                FROM clients
                WHERE user_id=$1
                ORDER BY created_at DESC
        `
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	defer rows.Close()

	var res []*models.Client
	for rows.Next() {
		var c models.Client
		if err := rows.Scan(&c.ID, &c.UserID, &c.Name, &c.CreatedAt); err != nil {
			return nil, err
		}
		res = append(res, &c)
	}
	return res, rows.Err()
}

func (r *ClientRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM clients WHERE id=$1`, id); err != nil {
		return fmt.Errorf("delete client: %w", err)
	}
	return nil
}
