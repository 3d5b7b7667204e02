package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"workboard/internal/storage"
)

type UploadHandler struct {
	store storage.ObjectStore
}

func NewUploadHandler(store storage.ObjectStore) *UploadHandler {
	return &UploadHandler{store: store}
}

// @Summary      Upload a task image
// @Description  Stores the file and returns its public URL; callers pass the URL in a subsequent task create/update
// @Tags         Uploads
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "Image file"
// @Success      201   {object}  map[string]string
// @Failure      400   {object}  map[string]string
// @Router       /uploads [post]
func (h *UploadHandler) Upload(c *gin.Context) {
	userID := getUserID(c)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		log.Printf("[upload][err] no file: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		log.Printf("[upload][err] open %q: %v", fileHeader.Filename, err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot read uploaded file"})
		return
	}
	defer f.Close()

	key := storage.NewObjectKey(fileHeader.Filename)
	url, err := h.store.Put(c.Request.Context(), key, f, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		log.Printf("[upload][err] store %q: %v", key, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store file"})
		return
	}

	log.Printf("[upload][ok] userID=%d key=%q size=%d", userID, key, fileHeader.Size)
	c.JSON(http.StatusCreated, gin.H{"url": url})
}
