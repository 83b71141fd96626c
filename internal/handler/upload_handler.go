package handler

import (
	"net/http"

	"pedalboard/internal/storage"

	"github.com/gin-gonic/gin"
)

type UploadHandler struct {
	store storage.Store
}

func NewUploadHandler(store storage.Store) *UploadHandler {
	return &UploadHandler{store: store}
}

// Upload stores a single file and returns its public reference. The
// server never inspects the bytes beyond the extension check in the
// store.
func (h *UploadHandler) Upload(c *gin.Context) {
	if _, ok := authenticatedUserID(c); !ok {
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file provided"})
		return
	}

	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read file"})
		return
	}
	defer src.Close()

	ref, err := h.store.Save(c.Request.Context(), file.Filename, src)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to store file"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"src": ref})
}
