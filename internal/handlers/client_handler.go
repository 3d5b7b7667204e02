package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"workboard/internal/repositories"
	"workboard/internal/services"
)

type ClientHandler struct {
	service *services.ClientService
}

func NewClientHandler(service *services.ClientService) *ClientHandler {
	return &ClientHandler{service: service}
}

// @Summary      Create a client
// @Tags         Clients
// @Accept       json
// @Produce      json
// @Param        client  body      object{name=string}  true  "Client name"
// @Success      201     {object}  models.Client
// @Failure      400     {object}  map[string]string
// @Failure      409     {object}  map[string]string
// @Router       /clients [post]
func (h *ClientHandler) Create(c *gin.Context) {
	userID := getUserID(c)

	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("[client][create][bind][err] %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	client, err := h.service.Create(c.Request.Context(), userID, req.Name)
	if err != nil {
		if errors.Is(err, repositories.ErrDuplicateName) {
			log.Printf("[client][create][conflict] userID=%d name=%q", userID, req.Name)
			c.JSON(http.StatusConflict, gin.H{"error": "A client with this name already exists"})
			return
		}
		log.Printf("[client][create][err] userID=%d: %v", userID, err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	log.Printf("[client][create][ok] id=%d userID=%d name=%q", client.ID, userID, client.Name)
	c.JSON(http.StatusCreated, client)
}

// @Summary      List clients
// @Tags         Clients
// @Produce      json
// @Success      200  {array}  models.Client
// @Router       /clients [get]
func (h *ClientHandler) List(c *gin.Context) {
	userID := getUserID(c)

	clients, err := h.service.List(c.Request.Context(), userID)
	if err != nil {
		log.Printf("[client][list][err] userID=%d: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list clients"})
		return
	}
	c.JSON(http.StatusOK, clients)
}

// @Summary      Get one client
// @Tags         Clients
// @Produce      json
// @Param        id   path      int  true  "Client ID"
// @Success      200  {object}  models.Client
// @Failure      404  {object}  map[string]string
// @Router       /clients/{id} [get]
func (h *ClientHandler) GetByID(c *gin.Context) {
	userID := getUserID(c)

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	client, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		log.Printf("[client][get][err] id=%d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get client"})
		return
	}
	if client == nil || client.UserID != userID {
		c.JSON(http.StatusNotFound, gin.H{"error": "client not found"})
		return
	}
	c.JSON(http.StatusOK, client)
}

// @Summary      Per-column task counts for a client
// @Description  Recomputed from the client's current task set on every call
// @Tags         Clients
// @Produce      json
// @Param        id   path      int  true  "Client ID"
// @Success      200  {object}  models.TaskCounts
// @Failure      404  {object}  map[string]string
// @Router       /clients/{id}/counts [get]
func (h *ClientHandler) GetCounts(c *gin.Context) {
	userID := getUserID(c)

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	client, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		log.Printf("[client][counts][err] get id=%d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get client"})
		return
	}
	if client == nil || client.UserID != userID {
		c.JSON(http.StatusNotFound, gin.H{"error": "client not found"})
		return
	}

	counts, err := h.service.Counts(c.Request.Context(), id)
	if err != nil {
		log.Printf("[client][counts][err] id=%d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to count tasks"})
		return
	}
	c.JSON(http.StatusOK, counts)
}

// @Summary      Delete a client
// @Description  Cascades: removes the client's tasks and their stored images
// @Tags         Clients
// @Param        id  path  int  true  "Client ID"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /clients/{id} [delete]
func (h *ClientHandler) Delete(c *gin.Context) {
	userID := getUserID(c)

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	client, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		log.Printf("[client][delete][err] get id=%d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get client"})
		return
	}
	if client == nil || client.UserID != userID {
		c.JSON(http.StatusNotFound, gin.H{"error": "client not found"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		log.Printf("[client][delete][err] id=%d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete client"})
		return
	}
	log.Printf("[client][delete][ok] id=%d userID=%d", id, userID)
	c.Status(http.StatusNoContent)
}
