package handlers

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"workboard/internal/models"
	"workboard/internal/repositories"
	"workboard/internal/services"
)

type TaskHandler struct {
	service services.TaskService
	clients *repositories.ClientRepository
}

func NewTaskHandler(service services.TaskService, clients *repositories.ClientRepository) *TaskHandler {
	return &TaskHandler{service: service, clients: clients}
}

// @Summary      Create a task
// @Description  Tasks enter the board as pending unless status is "completed"; paid always starts false
// @Tags         Tasks
// @Accept       json
// @Produce      json
// @Success      201  {object}  models.Task
// @Failure      400  {object}  map[string]string
// @Router       /tasks [post]
func (h *TaskHandler) Create(c *gin.Context) {
	var req struct {
		ClientID    *int64            `json:"client_id"`
		Description string            `json:"description" binding:"required"`
		DueDate     string            `json:"due_date"`  // RFC3339
		ImageURL    *string           `json:"image_url"` // from a prior /uploads call
		Status      models.TaskStatus `json:"status"`    // ""|pending|completed
	}

	userID := getUserID(c)
	log.Printf("[task][create] call by userID=%d", userID)

	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("[task][create][bind][err] %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.ClientID != nil {
		client, err := h.clients.GetByID(c.Request.Context(), *req.ClientID)
		if err != nil {
			log.Printf("[task][create][err] get client id=%d: %v", *req.ClientID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to check client"})
			return
		}
		if client == nil || client.UserID != userID {
			log.Printf("[task][create][deny] userID=%d foreign client=%d", userID, *req.ClientID)
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown client"})
			return
		}
	}

	var due *time.Time
	if req.DueDate != "" {
		t, err := time.Parse(time.RFC3339, req.DueDate)
		if err != nil {
			log.Printf("[task][create][err] invalid due_date=%q: %v", req.DueDate, err)
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid due_date (RFC3339)"})
			return
		}
		due = &t
	}

	task := &models.Task{
		UserID:      userID,
		ClientID:    req.ClientID,
		Description: req.Description,
		DueDate:     due,
		ImageURL:    req.ImageURL,
	}

	createdTask, err := h.service.Create(c.Request.Context(), task, req.Status)
	if err != nil {
		log.Printf("[task][create][err] %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	log.Printf("[task][create][ok] id=%d status=%q", createdTask.ID, createdTask.Status)
	c.JSON(http.StatusCreated, createdTask)
}

// @Summary      Get one task
// @Tags         Tasks
// @Produce      json
// @Param        id   path      int  true  "Task ID"
// @Success      200  {object}  models.Task
// @Failure      404  {object}  map[string]string
// @Router       /tasks/{id} [get]
func (h *TaskHandler) GetByID(c *gin.Context) {
	userID := getUserID(c)

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	task, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		log.Printf("[task][getByID][err] id=%d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get task"})
		return
	}
	if task == nil || task.UserID != userID {
		c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
		return
	}
	c.JSON(http.StatusOK, task)
}

// @Summary      List tasks
// @Tags         Tasks
// @Produce      json
// @Param        client_id  query  int     false  "Scope to one client"
// @Param        status     query  string  false  "pending|ongoing|completed"
// @Success      200  {array}  models.Task
// @Router       /tasks [get]
func (h *TaskHandler) GetAll(c *gin.Context) {
	userID := getUserID(c)
	log.Printf("[task][list] call by userID=%d q=%v", userID, c.Request.URL.RawQuery)

	// always scoped to the caller
	filter := models.TaskFilter{UserID: &userID}
	if v, ok := c.GetQuery("client_id"); ok {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			filter.ClientID = &id
		} else {
			log.Printf("[task][list][warn] bad client_id=%q: %v", v, err)
		}
	}
	if v, ok := c.GetQuery("status"); ok {
		st := models.TaskStatus(v)
		filter.Status = &st
	}

	tasks, err := h.service.GetAll(c.Request.Context(), filter)
	if err != nil {
		log.Printf("[task][list][err] %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve tasks"})
		return
	}
	log.Printf("[task][list][ok] count=%d", len(tasks))
	c.JSON(http.StatusOK, tasks)
}

// @Summary      Edit a task
// @Description  Partial update; fields absent from the payload (paid included) stay untouched
// @Tags         Tasks
// @Accept       json
// @Produce      json
// @Param        id   path      int  true  "Task ID"
// @Success      200  {object}  models.Task
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /tasks/{id} [put]
func (h *TaskHandler) Update(c *gin.Context) {
	userID := getUserID(c)
	log.Printf("[task][update] call by userID=%d id_param=%s", userID, c.Param("id"))

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	current, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		log.Printf("[task][update][err] get current id=%d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get task"})
		return
	}
	if current == nil || current.UserID != userID {
		c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
		return
	}

	var req struct {
		ClientID    *int64             `json:"client_id"`
		Description *string            `json:"description"`
		DueDate     *string            `json:"due_date"`  // RFC3339; "" clears
		ImageURL    *string            `json:"image_url"` // "" clears
		Status      *models.TaskStatus `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("[task][update][bind][err] %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	update := *current

	if req.ClientID != nil {
		client, err := h.clients.GetByID(c.Request.Context(), *req.ClientID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to check client"})
			return
		}
		if client == nil || client.UserID != userID {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown client"})
			return
		}
		update.ClientID = req.ClientID
	}
	if req.Description != nil {
		if *req.Description == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "description is required"})
			return
		}
		update.Description = *req.Description
	}
	if req.DueDate != nil {
		if *req.DueDate == "" {
			update.DueDate = nil
		} else {
			t, err := time.Parse(time.RFC3339, *req.DueDate)
			if err != nil {
				log.Printf("[task][update][err] invalid due_date=%q: %v", *req.DueDate, err)
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid due_date"})
				return
			}
			update.DueDate = &t
		}
	}
	if req.ImageURL != nil {
		if *req.ImageURL == "" {
			update.ImageURL = nil
		} else {
			update.ImageURL = req.ImageURL
		}
	}
	if req.Status != nil {
		// the edit path accepts any known status, not just forward moves
		if !req.Status.IsValid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown status"})
			return
		}
		update.Status = *req.Status
	}

	updatedTask, err := h.service.Update(c.Request.Context(), id, &update)
	if err != nil {
		log.Printf("[task][update][err] save id=%d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	log.Printf("[task][update][ok] id=%d", id)
	c.JSON(http.StatusOK, updatedTask)
}

// @Summary      Delete a task
// @Description  An attached image is removed from storage first, best-effort
// @Tags         Tasks
// @Param        id  path  int  true  "Task ID"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /tasks/{id} [delete]
func (h *TaskHandler) Delete(c *gin.Context) {
	userID := getUserID(c)
	log.Printf("[task][delete] call by userID=%d id_param=%s", userID, c.Param("id"))

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	current, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		log.Printf("[task][delete][err] get current id=%d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get task"})
		return
	}
	if current == nil || current.UserID != userID {
		c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		log.Printf("[task][delete][err] id=%d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	log.Printf("[task][delete][ok] id=%d", id)
	c.Status(http.StatusNoContent)
}

// @Summary      Move a task between columns
// @Description  Forward moves only: pending→ongoing, pending→completed, ongoing→completed
// @Tags         Tasks
// @Accept       json
// @Produce      json
// @Param        id    path      int                        true  "Task ID"
// @Param        move  body      object{to=string}          true  "Target status"
// @Success      200   {object}  models.Task
// @Failure      409   {object}  map[string]string
// @Router       /tasks/{id}/status [post]
func (h *TaskHandler) ChangeStatus(c *gin.Context) {
	userID := getUserID(c)
	log.Printf("[task][status] call by userID=%d id_param=%s", userID, c.Param("id"))

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	current, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		log.Printf("[task][status][err] get current id=%d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get task"})
		return
	}
	if current == nil || current.UserID != userID {
		c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
		return
	}

	var body struct {
		To models.TaskStatus `json:"to" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		log.Printf("[task][status][bind][err] %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !body.To.IsValid() || !isTransitionAllowed(current.Status, body.To) {
		log.Printf("[task][status][deny] illegal transition from=%q to=%q", current.Status, body.To)
		c.JSON(http.StatusConflict, gin.H{"error": "illegal status transition"})
		return
	}

	updated, err := h.service.UpdateStatus(c.Request.Context(), id, body.To)
	if err != nil {
		log.Printf("[task][status][err] save id=%d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	log.Printf("[task][status][ok] id=%d new=%q", id, body.To)
	c.JSON(http.StatusOK, updated)
}

// @Summary      Toggle the paid flag
// @Description  Negates the current value read from the stored row
// @Tags         Tasks
// @Produce      json
// @Param        id   path      int  true  "Task ID"
// @Success      200  {object}  models.Task
// @Failure      404  {object}  map[string]string
// @Router       /tasks/{id}/paid [post]
func (h *TaskHandler) TogglePaid(c *gin.Context) {
	userID := getUserID(c)
	log.Printf("[task][paid] call by userID=%d id_param=%s", userID, c.Param("id"))

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	current, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		log.Printf("[task][paid][err] get current id=%d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get task"})
		return
	}
	if current == nil || current.UserID != userID {
		c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
		return
	}

	updated, err := h.service.SetPaid(c.Request.Context(), id, !current.Paid)
	if err != nil {
		log.Printf("[task][paid][err] save id=%d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	log.Printf("[task][paid][ok] id=%d paid=%v", id, updated.Paid)
	c.JSON(http.StatusOK, updated)
}

// ---- helpers ----

func isTransitionAllowed(from, to models.TaskStatus) bool {
	if from == to {
		return true
	}
	switch from {
	case models.StatusPending:
		return to == models.StatusOngoing || to == models.StatusCompleted
	case models.StatusOngoing:
		return to == models.StatusCompleted
	case models.StatusCompleted:
		return false
	}
	return false
}
