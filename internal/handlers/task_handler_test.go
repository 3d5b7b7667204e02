package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"workboard/internal/models"
)

type fakeTaskService struct {
	byID map[int64]*models.Task

	created       *models.Task
	createdStatus models.TaskStatus
	updated       *models.Task
	deleted       []int64
}

func newFakeTaskService(tasks ...*models.Task) *fakeTaskService {
	s := &fakeTaskService{byID: map[int64]*models.Task{}}
	for _, t := range tasks {
		s.byID[t.ID] = t
	}
	return s
}

func (s *fakeTaskService) Create(ctx context.Context, task *models.Task, entryStatus models.TaskStatus) (*models.Task, error) {
	if entryStatus == "" {
		entryStatus = models.StatusPending
	}
	if entryStatus != models.StatusPending && entryStatus != models.StatusCompleted {
		return nil, errors.New("tasks can only be added as pending or completed")
	}
	task.ID = 101
	task.Status = entryStatus
	task.Paid = false
	s.created = task
	s.createdStatus = entryStatus
	s.byID[task.ID] = task
	return task, nil
}

func (s *fakeTaskService) GetByID(ctx context.Context, id int64) (*models.Task, error) {
	t, ok := s.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

func (s *fakeTaskService) GetAll(ctx context.Context, filter models.TaskFilter) ([]models.Task, error) {
	var out []models.Task
	for _, t := range s.byID {
		if filter.UserID != nil && t.UserID != *filter.UserID {
			continue
		}
		out = append(out, *t)
	}
	return out, nil
}

func (s *fakeTaskService) Update(ctx context.Context, id int64, updateData *models.Task) (*models.Task, error) {
	s.updated = updateData
	cp := *updateData
	s.byID[id] = &cp
	return updateData, nil
}

func (s *fakeTaskService) Delete(ctx context.Context, id int64) error {
	s.deleted = append(s.deleted, id)
	delete(s.byID, id)
	return nil
}

func (s *fakeTaskService) UpdateStatus(ctx context.Context, id int64, to models.TaskStatus) (*models.Task, error) {
	s.byID[id].Status = to
	cp := *s.byID[id]
	return &cp, nil
}

func (s *fakeTaskService) SetPaid(ctx context.Context, id int64, paid bool) (*models.Task, error) {
	s.byID[id].Paid = paid
	cp := *s.byID[id]
	return &cp, nil
}

func newTaskRouter(svc *fakeTaskService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	// stands in for the JWT middleware
	r.Use(func(c *gin.Context) { c.Set("user_id", int64(1)) })

	h := NewTaskHandler(svc, nil)
	r.POST("/tasks", h.Create)
	r.GET("/tasks", h.GetAll)
	r.GET("/tasks/:id", h.GetByID)
	r.PUT("/tasks/:id", h.Update)
	r.DELETE("/tasks/:id", h.Delete)
	r.POST("/tasks/:id/status", h.ChangeStatus)
	r.POST("/tasks/:id/paid", h.TogglePaid)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestTaskHandlerCreate(t *testing.T) {
	t.Run("missing description rejected", func(t *testing.T) {
		r := newTaskRouter(newFakeTaskService())
		w := doJSON(t, r, http.MethodPost, "/tasks", gin.H{"due_date": time.Now().Format(time.RFC3339)})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("created as completed still starts unpaid", func(t *testing.T) {
		svc := newFakeTaskService()
		r := newTaskRouter(svc)
		w := doJSON(t, r, http.MethodPost, "/tasks", gin.H{"description": "Old job", "status": "completed"})
		require.Equal(t, http.StatusCreated, w.Code)

		var got models.Task
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Equal(t, models.StatusCompleted, got.Status)
		assert.False(t, got.Paid)
	})

	t.Run("bad due date rejected", func(t *testing.T) {
		r := newTaskRouter(newFakeTaskService())
		w := doJSON(t, r, http.MethodPost, "/tasks", gin.H{"description": "x", "due_date": "tomorrow"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestTaskHandlerChangeStatus(t *testing.T) {
	t.Run("forward move accepted", func(t *testing.T) {
		svc := newFakeTaskService(&models.Task{ID: 1, UserID: 1, Description: "x", Status: models.StatusPending})
		r := newTaskRouter(svc)

		w := doJSON(t, r, http.MethodPost, "/tasks/1/status", gin.H{"to": "ongoing"})
		require.Equal(t, http.StatusOK, w.Code)

		var got models.Task
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Equal(t, models.StatusOngoing, got.Status)
	})

	t.Run("pending straight to completed accepted", func(t *testing.T) {
		svc := newFakeTaskService(&models.Task{ID: 1, UserID: 1, Description: "x", Status: models.StatusPending})
		r := newTaskRouter(svc)
		w := doJSON(t, r, http.MethodPost, "/tasks/1/status", gin.H{"to": "completed"})
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("backward move rejected with conflict", func(t *testing.T) {
		svc := newFakeTaskService(&models.Task{ID: 1, UserID: 1, Description: "x", Status: models.StatusCompleted})
		r := newTaskRouter(svc)
		w := doJSON(t, r, http.MethodPost, "/tasks/1/status", gin.H{"to": "pending"})
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("unknown status rejected with conflict", func(t *testing.T) {
		svc := newFakeTaskService(&models.Task{ID: 1, UserID: 1, Description: "x", Status: models.StatusPending})
		r := newTaskRouter(svc)
		w := doJSON(t, r, http.MethodPost, "/tasks/1/status", gin.H{"to": "archived"})
		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestTaskHandlerTogglePaid(t *testing.T) {
	svc := newFakeTaskService(&models.Task{ID: 2, UserID: 1, Description: "x", Status: models.StatusCompleted})
	r := newTaskRouter(svc)

	w := doJSON(t, r, http.MethodPost, "/tasks/2/paid", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var got models.Task
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.True(t, got.Paid)

	// second toggle flips it back
	w = doJSON(t, r, http.MethodPost, "/tasks/2/paid", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.False(t, got.Paid)
}

func TestTaskHandlerUpdate(t *testing.T) {
	t.Run("patch without status or paid leaves both untouched", func(t *testing.T) {
		svc := newFakeTaskService(&models.Task{ID: 3, UserID: 1, Description: "old", Status: models.StatusCompleted, Paid: true})
		r := newTaskRouter(svc)

		w := doJSON(t, r, http.MethodPut, "/tasks/3", gin.H{"description": "new text"})
		require.Equal(t, http.StatusOK, w.Code)

		require.NotNil(t, svc.updated)
		assert.Equal(t, int64(3), svc.updated.ID)
		assert.Equal(t, "new text", svc.updated.Description)
		assert.Equal(t, models.StatusCompleted, svc.updated.Status)
		assert.True(t, svc.updated.Paid)
	})

	t.Run("edit path accepts any known status", func(t *testing.T) {
		svc := newFakeTaskService(&models.Task{ID: 3, UserID: 1, Description: "x", Status: models.StatusCompleted})
		r := newTaskRouter(svc)

		w := doJSON(t, r, http.MethodPut, "/tasks/3", gin.H{"status": "pending"})
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, models.StatusPending, svc.updated.Status)
	})

	t.Run("unknown status rejected on edit", func(t *testing.T) {
		svc := newFakeTaskService(&models.Task{ID: 3, UserID: 1, Description: "x", Status: models.StatusPending})
		r := newTaskRouter(svc)
		w := doJSON(t, r, http.MethodPut, "/tasks/3", gin.H{"status": "archived"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("empty due date clears it", func(t *testing.T) {
		due := time.Now()
		svc := newFakeTaskService(&models.Task{ID: 3, UserID: 1, Description: "x", Status: models.StatusPending, DueDate: &due})
		r := newTaskRouter(svc)

		w := doJSON(t, r, http.MethodPut, "/tasks/3", gin.H{"due_date": ""})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Nil(t, svc.updated.DueDate)
	})
}

func TestTaskHandlerOwnership(t *testing.T) {
	// tasks of other users look like they do not exist
	svc := newFakeTaskService(&models.Task{ID: 4, UserID: 2, Description: "foreign", Status: models.StatusPending})
	r := newTaskRouter(svc)

	assert.Equal(t, http.StatusNotFound, doJSON(t, r, http.MethodGet, "/tasks/4", nil).Code)
	assert.Equal(t, http.StatusNotFound, doJSON(t, r, http.MethodDelete, "/tasks/4", nil).Code)
	assert.Equal(t, http.StatusNotFound, doJSON(t, r, http.MethodPost, "/tasks/4/paid", nil).Code)
	assert.Empty(t, svc.deleted)
}
