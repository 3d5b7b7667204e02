package services

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"workboard/internal/models"
)

type fakeTaskRepo struct {
	byID    map[int64]*models.Task
	stored  *models.Task
	updated *models.Task
	deleted []int64

	clientDeleteURLs []string
	clientDeleted    []int64
}

func newFakeTaskRepo(tasks ...*models.Task) *fakeTaskRepo {
	r := &fakeTaskRepo{byID: map[int64]*models.Task{}}
	for _, t := range tasks {
		r.byID[t.ID] = t
	}
	return r
}

func (r *fakeTaskRepo) Store(ctx context.Context, task *models.Task) error {
	task.ID = 101
	r.stored = task
	r.byID[task.ID] = task
	return nil
}

func (r *fakeTaskRepo) FindByID(ctx context.Context, id int64) (*models.Task, error) {
	t, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

func (r *fakeTaskRepo) FindAll(ctx context.Context, filter models.TaskFilter) ([]models.Task, error) {
	var out []models.Task
	for _, t := range r.byID {
		out = append(out, *t)
	}
	return out, nil
}

func (r *fakeTaskRepo) Update(ctx context.Context, task *models.Task) error {
	r.updated = task
	cp := *task
	r.byID[task.ID] = &cp
	return nil
}

func (r *fakeTaskRepo) Delete(ctx context.Context, id int64) error {
	r.deleted = append(r.deleted, id)
	delete(r.byID, id)
	return nil
}

func (r *fakeTaskRepo) UpdateStatus(ctx context.Context, id int64, to models.TaskStatus) error {
	r.byID[id].Status = to
	return nil
}

func (r *fakeTaskRepo) UpdatePaid(ctx context.Context, id int64, paid bool) error {
	r.byID[id].Paid = paid
	return nil
}

func (r *fakeTaskRepo) DeleteByClient(ctx context.Context, clientID int64) ([]string, error) {
	r.clientDeleted = append(r.clientDeleted, clientID)
	return r.clientDeleteURLs, nil
}

type fakeStore struct {
	deletedKeys []string
	deleteErr   error
}

func (f *fakeStore) Put(ctx context.Context, key string, r io.Reader, contentType string) (string, error) {
	return "http://localhost/files/task-images/" + key, nil
}

func (f *fakeStore) Delete(ctx context.Context, key string) error {
	f.deletedKeys = append(f.deletedKeys, key)
	return f.deleteErr
}

func TestTaskServiceCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults to pending with paid false", func(t *testing.T) {
		repo := newFakeTaskRepo()
		svc := NewTaskService(repo, &fakeStore{})

		created, err := svc.Create(ctx, &models.Task{UserID: 1, Description: "Draft contract"}, "")
		require.NoError(t, err)
		assert.Equal(t, models.StatusPending, created.Status)
		assert.False(t, created.Paid)
		assert.False(t, created.CreatedAt.IsZero())
	})

	t.Run("explicit completed entry keeps paid false", func(t *testing.T) {
		repo := newFakeTaskRepo()
		svc := NewTaskService(repo, &fakeStore{})

		created, err := svc.Create(ctx, &models.Task{UserID: 1, Description: "Old job", Paid: true}, models.StatusCompleted)
		require.NoError(t, err)
		assert.Equal(t, models.StatusCompleted, created.Status)
		assert.False(t, created.Paid, "paid must start false regardless of input")
	})

	t.Run("ongoing is not a valid entry status", func(t *testing.T) {
		svc := NewTaskService(newFakeTaskRepo(), &fakeStore{})
		_, err := svc.Create(ctx, &models.Task{UserID: 1, Description: "x"}, models.StatusOngoing)
		assert.Error(t, err)
	})

	t.Run("empty description rejected before any store call", func(t *testing.T) {
		repo := newFakeTaskRepo()
		svc := NewTaskService(repo, &fakeStore{})
		_, err := svc.Create(ctx, &models.Task{UserID: 1, Description: "   "}, "")
		assert.Error(t, err)
		assert.Nil(t, repo.stored)
	})
}

func TestTaskServiceUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("merged row preserves id, status and paid", func(t *testing.T) {
		existing := &models.Task{ID: 7, UserID: 1, Description: "old", Status: models.StatusCompleted, Paid: true}
		repo := newFakeTaskRepo(existing)
		svc := NewTaskService(repo, &fakeStore{})

		patch := *existing
		patch.Description = "new text"

		updated, err := svc.Update(ctx, 7, &patch)
		require.NoError(t, err)
		assert.Equal(t, int64(7), updated.ID)
		assert.Equal(t, "new text", updated.Description)
		assert.Equal(t, models.StatusCompleted, updated.Status)
		assert.True(t, updated.Paid)
	})

	t.Run("unknown id yields nil without error", func(t *testing.T) {
		svc := NewTaskService(newFakeTaskRepo(), &fakeStore{})
		updated, err := svc.Update(ctx, 999, &models.Task{Description: "x"})
		require.NoError(t, err)
		assert.Nil(t, updated)
	})
}

func TestTaskServiceDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("attached image removed from storage before the row", func(t *testing.T) {
		url := "http://localhost/files/task-images/uploads/123-abc.png"
		repo := newFakeTaskRepo(&models.Task{ID: 3, UserID: 1, Description: "x", Status: models.StatusPending, ImageURL: &url})
		store := &fakeStore{}
		svc := NewTaskService(repo, store)

		require.NoError(t, svc.Delete(ctx, 3))
		assert.Equal(t, []string{"uploads/123-abc.png"}, store.deletedKeys)
		assert.Equal(t, []int64{3}, repo.deleted)
	})

	t.Run("storage failure is tolerated, row delete proceeds", func(t *testing.T) {
		url := "http://localhost/files/task-images/uploads/123-abc.png"
		repo := newFakeTaskRepo(&models.Task{ID: 4, UserID: 1, Description: "x", Status: models.StatusPending, ImageURL: &url})
		store := &fakeStore{deleteErr: errors.New("bucket down")}
		svc := NewTaskService(repo, store)

		require.NoError(t, svc.Delete(ctx, 4))
		assert.Equal(t, []int64{4}, repo.deleted)
	})

	t.Run("unparseable image url is tolerated", func(t *testing.T) {
		url := "http://somewhere.else/not-an-object"
		repo := newFakeTaskRepo(&models.Task{ID: 5, UserID: 1, Description: "x", Status: models.StatusPending, ImageURL: &url})
		store := &fakeStore{}
		svc := NewTaskService(repo, store)

		require.NoError(t, svc.Delete(ctx, 5))
		assert.Empty(t, store.deletedKeys)
		assert.Equal(t, []int64{5}, repo.deleted)
	})

	t.Run("no image means no storage call", func(t *testing.T) {
		repo := newFakeTaskRepo(&models.Task{ID: 6, UserID: 1, Description: "x", Status: models.StatusPending})
		store := &fakeStore{}
		svc := NewTaskService(repo, store)

		require.NoError(t, svc.Delete(ctx, 6))
		assert.Empty(t, store.deletedKeys)
	})
}

func TestTaskServicePaidToggle(t *testing.T) {
	ctx := context.Background()

	repo := newFakeTaskRepo(&models.Task{ID: 9, UserID: 1, Description: "x", Status: models.StatusCompleted})
	svc := NewTaskService(repo, &fakeStore{})

	// toggling twice lands back on the original value
	first, err := svc.SetPaid(ctx, 9, true)
	require.NoError(t, err)
	assert.True(t, first.Paid)

	second, err := svc.SetPaid(ctx, 9, !first.Paid)
	require.NoError(t, err)
	assert.False(t, second.Paid)
}
