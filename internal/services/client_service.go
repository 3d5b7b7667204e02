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

type ClientService struct {
	Repo  *repositories.ClientRepository
	Tasks repositories.TaskRepository
	Store storage.ObjectStore
}

func NewClientService(repo *repositories.ClientRepository, tasks repositories.TaskRepository, store storage.ObjectStore) *ClientService {
	return &ClientService{Repo: repo, Tasks: tasks, Store: store}
}

// Create rejects empty and duplicate names before touching the store. The
// duplicate pre-check is advisory; the unique index behind the repository
// catches the two-writers race and reports the same ErrDuplicateName.
func (s *ClientService) Create(ctx context.Context, userID int64, name string) (*models.Client, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("name is required")
	}

	existing, err := s.Repo.GetByName(ctx, userID, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, repositories.ErrDuplicateName
	}

	client := &models.Client{
		UserID:    userID,
		Name:      name,
		CreatedAt: time.Now(),
	}
	if err := s.Repo.Create(ctx, client); err != nil {
		return nil, err
	}
	return client, nil
}

func (s *ClientService) GetByID(ctx context.Context, id int64) (*models.Client, error) {
	return s.Repo.GetByID(ctx, id)
}

func (s *ClientService) List(ctx context.Context, userID int64) ([]*models.Client, error) {
	return s.Repo.ListByUser(ctx, userID)
}

// Counts recomputes the per-column aggregate from the client's current task
// set. Always a full re-fetch, never maintained incrementally.
func (s *ClientService) Counts(ctx context.Context, clientID int64) (models.TaskCounts, error) {
	tasks, err := s.Tasks.FindAll(ctx, models.TaskFilter{ClientID: &clientID})
	if err != nil {
		return models.TaskCounts{}, err
	}
	return ComputeCounts(tasks), nil
}

// Delete cascades: dependent task rows go first, their stored images are
// removed best-effort, then the client row itself. A failed image delete is
// logged and does not stop the cascade.
func (s *ClientService) Delete(ctx context.Context, id int64) error {
	imageURLs, err := s.Tasks.DeleteByClient(ctx, id)
	if err != nil {
		return err
	}
	for _, u := range imageURLs {
		_, key, perr := storage.ParseObjectURL(u)
		if perr != nil {
			log.Printf("[client][delete][warn] unparseable image url %q: %v", u, perr)
			continue
		}
		if derr := s.Store.Delete(ctx, key); derr != nil {
			log.Printf("[client][delete][warn] remove image %q: %v", key, derr)
		}
	}
	return s.Repo.Delete(ctx, id)
}
