package handler

import (
	"net/http"
	"strconv"

	"pedalboard/internal/auth"
	"pedalboard/internal/model"
	"pedalboard/internal/repository"
	"pedalboard/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type PedalHandler struct {
	repo      repository.PedalRepositoryInterface
	store     storage.Store
	verifiers auth.VerifierSet
}

func NewPedalHandler(repo repository.PedalRepositoryInterface, store storage.Store, verifiers auth.VerifierSet) *PedalHandler {
	return &PedalHandler{repo: repo, store: store, verifiers: verifiers}
}

type PedalResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"nome"`
	Description string  `json:"descricao,omitempty"`
	Category    string  `json:"categoria,omitempty"`
	Image       string  `json:"imagem"`
	WidthCm     float64 `json:"widthCm"`
	HeightCm    float64 `json:"heightCm"`
	Verified    bool    `json:"verified"`
	OwnerID     string  `json:"usuarioId"`
	CreatedAt   string  `json:"createdAt"`
}

func pedalResponse(p *model.Pedal) PedalResponse {
	width := p.WidthCm
	if width == 0 {
		width = model.DefaultPedalWidthCm
	}
	height := p.HeightCm
	if height == 0 {
		height = model.DefaultPedalHeightCm
	}
	return PedalResponse{
		ID:          p.ID.String(),
		Name:        p.Name,
		Description: p.Description,
		Category:    p.Category,
		Image:       p.Image,
		WidthCm:     width,
		HeightCm:    height,
		Verified:    p.Verified,
		OwnerID:     p.OwnerID.String(),
		CreatedAt:   p.CreatedAt.Format(http.TimeFormat),
	}
}

// Create registers a new pedal template. The image arrives either as
// an uploaded "imagem" file or as a reference string in the form.
func (h *PedalHandler) Create(c *gin.Context) {
	ownerID, ok := authenticatedUserID(c)
	if !ok {
		return
	}

	name := c.PostForm("nome")
	image, err := h.formImage(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store image"})
		return
	}
	if name == "" || image == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name and image are required"})
		return
	}

	pedal := &model.Pedal{
		ID:          uuid.New(),
		Name:        name,
		Description: c.PostForm("descricao"),
		Category:    c.PostForm("categoria"),
		Image:       image,
		WidthCm:     formFloat(c, "widthCm", model.DefaultPedalWidthCm),
		HeightCm:    formFloat(c, "heightCm", model.DefaultPedalHeightCm),
		OwnerID:     ownerID,
	}

	if err := h.repo.Create(c.Request.Context(), pedal); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create pedal"})
		return
	}

	c.JSON(http.StatusCreated, pedalResponse(pedal))
}

// GetOwned lists the authenticated user's pedal library.
func (h *PedalHandler) GetOwned(c *gin.Context) {
	ownerID, ok := authenticatedUserID(c)
	if !ok {
		return
	}

	pedals, err := h.repo.GetOwned(c.Request.Context(), ownerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve pedals"})
		return
	}

	response := make([]PedalResponse, len(pedals))
	for i := range pedals {
		response[i] = pedalResponse(&pedals[i])
	}
	c.JSON(http.StatusOK, response)
}

// Search lists pedals across all users, optionally filtered by name.
func (h *PedalHandler) Search(c *gin.Context) {
	if _, ok := authenticatedUserID(c); !ok {
		return
	}

	pedals, err := h.repo.Search(c.Request.Context(), c.Query("search"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve pedals"})
		return
	}

	response := make([]PedalResponse, len(pedals))
	for i := range pedals {
		response[i] = pedalResponse(&pedals[i])
	}
	c.JSON(http.StatusOK, response)
}

// Delete removes a pedal the user owns.
func (h *PedalHandler) Delete(c *gin.Context) {
	ownerID, ok := authenticatedUserID(c)
	if !ok {
		return
	}

	pedal, ok := h.loadPedal(c)
	if !ok {
		return
	}
	if pedal.OwnerID != ownerID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You don't have permission to delete this pedal"})
		return
	}

	if err := h.repo.Delete(c.Request.Context(), pedal.ID); err != nil {
		if err == repository.ErrAssetNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Pedal not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete pedal"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Pedal deleted"})
}

// Copy duplicates somebody's pedal into the user's own library.
func (h *PedalHandler) Copy(c *gin.Context) {
	ownerID, ok := authenticatedUserID(c)
	if !ok {
		return
	}

	pedal, ok := h.loadPedal(c)
	if !ok {
		return
	}

	copied := pedal.CopyFor(ownerID)
	if err := h.repo.Create(c.Request.Context(), copied); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to copy pedal"})
		return
	}

	c.JSON(http.StatusCreated, pedalResponse(copied))
}

type VerifiedRequest struct {
	Verified *bool `json:"verified" binding:"required"`
}

// SetVerified flips the verified flag. Only allow-listed verifiers
// may call this, regardless of ownership.
func (h *PedalHandler) SetVerified(c *gin.Context) {
	userID, ok := authenticatedUserID(c)
	if !ok {
		return
	}
	if !h.verifiers.Allows(userID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only verifiers can change the verified flag"})
		return
	}

	pedal, ok := h.loadPedal(c)
	if !ok {
		return
	}

	var req VerifiedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if err := h.repo.SetVerified(c.Request.Context(), pedal.ID, *req.Verified); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update verified flag"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"verified": *req.Verified})
}

func (h *PedalHandler) loadPedal(c *gin.Context) (*model.Pedal, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid pedal ID format"})
		return nil, false
	}

	pedal, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve pedal"})
		return nil, false
	}
	if pedal == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Pedal not found"})
		return nil, false
	}
	return pedal, true
}

// formImage stores the uploaded "imagem" file when present, falling
// back to an image reference sent as a plain form value.
func (h *PedalHandler) formImage(c *gin.Context) (string, error) {
	file, err := c.FormFile("imagem")
	if err != nil {
		return c.PostForm("imagem"), nil
	}
	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()
	return h.store.Save(c.Request.Context(), file.Filename, src)
}

func formFloat(c *gin.Context, field string, def float64) float64 {
	raw := c.PostForm(field)
	if raw == "" {
		return def
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || f <= 0 {
		return def
	}
	return f
}
