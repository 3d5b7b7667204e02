// internal/services/tasks.go
package services

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"workboard/internal/models"
	"workboard/internal/repositories"
	"workboard/internal/storage"
)

// TaskService defines the interface for task-related business logic.
type TaskService interface {
	Create(ctx context.Context, task *models.Task, entryStatus models.TaskStatus) (*models.Task, error)
	GetByID(ctx context.Context, id int64) (*models.Task, error)
	GetAll(ctx context.Context, filter models.TaskFilter) ([]models.Task, error)
	Update(ctx context.Context, id int64, updateData *models.Task) (*models.Task, error)
	Delete(ctx context.Context, id int64) error

	UpdateStatus(ctx context.Context, id int64, to models.TaskStatus) (*models.Task, error)
	SetPaid(ctx context.Context, id int64, paid bool) (*models.Task, error)
}

type taskService struct {
	repo  repositories.TaskRepository
	store storage.ObjectStore
}

// NewTaskService creates a new instance of TaskService.
func NewTaskService(repo repositories.TaskRepository, store storage.ObjectStore) TaskService {
	return &taskService{repo: repo, store: store}
}

// Create inserts a task in the requested entry status. Tasks enter the board
// as pending unless explicitly added as completed; paid always starts false.
func (s *taskService) Create(ctx context.Context, task *models.Task, entryStatus models.TaskStatus) (*models.Task, error) {
	if strings.TrimSpace(task.Description) == "" {
		return nil, errors.New("description is required")
	}
	if entryStatus == "" {
		entryStatus = models.StatusPending
	}
	if entryStatus != models.StatusPending && entryStatus != models.StatusCompleted {
		return nil, errors.New("tasks can only be added as pending or completed")
	}
	task.Status = entryStatus
	task.Paid = false

	now := time.Now()
	task.CreatedAt = now
	task.UpdatedAt = now

	if err := s.repo.Store(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *taskService) GetByID(ctx context.Context, id int64) (*models.Task, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *taskService) GetAll(ctx context.Context, filter models.TaskFilter) ([]models.Task, error) {
	return s.repo.FindAll(ctx, filter)
}

// Update writes the merged row. The handler builds updateData from the
// current row plus the patch, so fields absent from the patch (id, status,
// paid included) come through unchanged.
func (s *taskService) Update(ctx context.Context, id int64, updateData *models.Task) (*models.Task, error) {
	existingTask, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existingTask == nil {
		return nil, nil
	}

	existingTask.ClientID = updateData.ClientID
	existingTask.Description = updateData.Description
	existingTask.Status = updateData.Status
	existingTask.Paid = updateData.Paid
	existingTask.DueDate = updateData.DueDate
	existingTask.ImageURL = updateData.ImageURL

	existingTask.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, existingTask); err != nil {
		return nil, err
	}
	return existingTask, nil
}

// Delete removes the row after attempting to remove an attached image from
// storage. Storage failures are logged and tolerated; the row delete is the
// one that matters.
func (s *taskService) Delete(ctx context.Context, id int64) error {
	task, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if task == nil {
		return nil
	}

	if task.ImageURL != nil && *task.ImageURL != "" {
		_, key, perr := storage.ParseObjectURL(*task.ImageURL)
		if perr != nil {
			log.Printf("[task][delete][warn] unparseable image url %q: %v", *task.ImageURL, perr)
		} else if derr := s.store.Delete(ctx, key); derr != nil {
			log.Printf("[task][delete][warn] remove image %q: %v", key, derr)
		}
	}

	return s.repo.Delete(ctx, id)
}

func (s *taskService) UpdateStatus(ctx context.Context, id int64, to models.TaskStatus) (*models.Task, error) {
	// (transition checks are the handler's job; the service just writes)
	if err := s.repo.UpdateStatus(ctx, id, to); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, id)
}

func (s *taskService) SetPaid(ctx context.Context, id int64, paid bool) (*models.Task, error) {
	if err := s.repo.UpdatePaid(ctx, id, paid); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, id)
}
