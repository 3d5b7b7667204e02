package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"workboard/internal/models"
)

type TaskRepository interface {
	Store(ctx context.Context, task *models.Task) error
	FindByID(ctx context.Context, id int64) (*models.Task, error)
	FindAll(ctx context.Context, filter models.TaskFilter) ([]models.Task, error)
	Update(ctx context.Context, task *models.Task) error
	Delete(ctx context.Context, id int64) error

	UpdateStatus(ctx context.Context, id int64, to models.TaskStatus) error
	UpdatePaid(ctx context.Context, id int64, paid bool) error
	// DeleteByClient removes every task of a client and returns the image
	// URLs of the removed rows so the caller can clean up storage.
	DeleteByClient(ctx context.Context, clientID int64) ([]string, error)
}

type taskRepository struct {
	db *sql.DB
}

func NewTaskRepository(db *sql.DB) TaskRepository {
	return &taskRepository{db: db}
}

func (r *taskRepository) Store(ctx context.Context, task *models.Task) error {
	query := `
		INSERT INTO tasks (
			user_id, client_id, description, status, paid,
			due_date, image_url, created_at, updated_at
		)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		RETURNING id, created_at, updated_at`
	return r.db.QueryRowContext(ctx, query,
		task.UserID, task.ClientID, task.Description, task.Status, task.Paid,
		task.DueDate, task.ImageURL, task.CreatedAt, task.UpdatedAt,
	).Scan(&task.ID, &task.CreatedAt, &task.UpdatedAt)
}

func (r *taskRepository) FindByID(ctx context.Context, id int64) (*models.Task, error) {
	query := `SELECT id, user_id, client_id, description, status, paid,
       due_date, image_url, created_at, updated_at
       FROM tasks WHERE id = $1`
	task := &models.Task{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&task.ID, &task.UserID, &task.ClientID, &task.Description,
		&task.Status, &task.Paid, &task.DueDate, &task.ImageURL,
		&task.CreatedAt, &task.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return task, nil
}

func (r *taskRepository) FindAll(ctx context.Context, filter models.TaskFilter) ([]models.Task, error) {
	baseQuery := `SELECT id, user_id, client_id, description, status, paid,
       due_date, image_url, created_at, updated_at FROM tasks`

	conditions := []string{}
	args := []interface{}{}
	argID := 1

	if filter.UserID != nil {
		conditions = append(conditions, fmt.Sprintf("user_id = $%d", argID))
		args = append(args, *filter.UserID)
		argID++
	}
	if filter.ClientID != nil {
		conditions = append(conditions, fmt.Sprintf("client_id = $%d", argID))
		args = append(args, *filter.ClientID)
		argID++
	}
	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argID))
		args = append(args, *filter.Status)
		argID++
	}

	if len(conditions) > 0 {
		baseQuery += " WHERE " + strings.Join(conditions, " AND ")
	}
	baseQuery += " ORDER BY created_at DESC"

	rows, err := r.db.QueryContext(ctx, baseQuery, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		var t models.Task
		if err := rows.Scan(
			&t.ID, &t.UserID, &t.ClientID, &t.Description,
			&t.Status, &t.Paid, &t.DueDate, &t.ImageURL,
			&t.CreatedAt, &t.UpdatedAt,
		); err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (r *taskRepository) Update(ctx context.Context, task *models.Task) error {
	query := `
		UPDATE tasks SET
			client_id=$1, description=$2, status=$3, paid=$4,
			due_date=$5, image_url=$6, updated_at=$7
		WHERE id=$8`
	_, err := r.db.ExecContext(ctx, query,
		task.ClientID, task.Description, task.Status, task.Paid,
		task.DueDate, task.ImageURL, task.UpdatedAt, task.ID,
	)
	return err
}

func (r *taskRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	return err
}

func (r *taskRepository) UpdateStatus(ctx context.Context, id int64, to models.TaskStatus) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE tasks SET status=$1, updated_at=NOW() WHERE id=$2`, to, id)
	return err
}

func (r *taskRepository) UpdatePaid(ctx context.Context, id int64, paid bool) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE tasks SET paid=$1, updated_at=NOW() WHERE id=$2`, paid, id)
	return err
}

func (r *taskRepository) DeleteByClient(ctx context.Context, clientID int64) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`DELETE FROM tasks WHERE client_id=$1 RETURNING image_url`, clientID)
	if err != nil {
		return nil, fmt.Errorf("delete tasks by client: %w", err)
	}
	defer rows.Close()

	var urls []string
	for rows.Next() {
		var u sql.NullString
		if err := rows.Scan(&u); err != nil {
			return nil, err
		}
		if u.Valid && u.String != "" {
			urls = append(urls, u.String)
		}
	}
	return urls, rows.Err()
}
