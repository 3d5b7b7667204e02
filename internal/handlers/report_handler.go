package handlers

import (
	"log"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"

	"workboard/internal/services"
)

type ReportHandler struct {
	service *services.ReportService
}

func NewReportHandler(service *services.ReportService) *ReportHandler {
	return &ReportHandler{service: service}
}

// @Summary      Unpaid work summary
// @Description  Every client of the caller with its current per-column counts
// @Tags         Reports
// @Produce      json
// @Success      200  {array}  services.ClientUnpaid
// @Router       /reports/unpaid [get]
func (h *ReportHandler) GetUnpaidSummary(c *gin.Context) {
	userID := getUserID(c)

	rows, err := h.service.UnpaidSummary(c.Request.Context(), userID)
	if err != nil {
		log.Printf("[report][unpaid][err] userID=%d: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build summary"})
		return
	}
	c.JSON(http.StatusOK, rows)
}

// @Summary      Download a client statement PDF
// @Tags         Reports
// @Produce      application/pdf
// @Param        id  path  int  true  "Client ID"
// @Success      200
// @Failure      404  {object}  map[string]string
// @Router       /reports/clients/{id}/statement [get]
func (h *ReportHandler) DownloadStatement(c *gin.Context) {
	userID := getUserID(c)

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	path, err := h.service.Statement(c.Request.Context(), userID, id)
	if err != nil {
		if err.Error() == "client not found" {
			c.JSON(http.StatusNotFound, gin.H{"error": "client not found"})
			return
		}
		log.Printf("[report][statement][err] clientID=%d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate statement"})
		return
	}
	log.Printf("[report][statement][ok] clientID=%d file=%q", id, path)
	c.FileAttachment(path, filepath.Base(path))
}

// @Summary      Email the unpaid summary
// @Tags         Reports
// @Accept       json
// @Param        request  body  object{to=string}  true  "Recipient address"
// @Success      202  {object}  map[string]string
// @Router       /reports/unpaid/email [post]
func (h *ReportHandler) EmailUnpaidSummary(c *gin.Context) {
	userID := getUserID(c)

	var req struct {
		To string `json:"to" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.service.EmailUnpaidSummary(c.Request.Context(), userID, req.To); err != nil {
		log.Printf("[report][email][err] userID=%d to=%q: %v", userID, req.To, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to send summary"})
		return
	}
	log.Printf("[report][email][ok] userID=%d to=%q", userID, req.To)
	c.JSON(http.StatusAccepted, gin.H{"message": "summary sent"})
}
