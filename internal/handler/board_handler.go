package handler

import (
	"net/http"

	"pedalboard/internal/auth"
	"pedalboard/internal/model"
	"pedalboard/internal/repository"
	"pedalboard/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BoardHandler struct {
	repo      repository.BoardRepositoryInterface
	store     storage.Store
	verifiers auth.VerifierSet
}

func NewBoardHandler(repo repository.BoardRepositoryInterface, store storage.Store, verifiers auth.VerifierSet) *BoardHandler {
	return &BoardHandler{repo: repo, store: store, verifiers: verifiers}
}

type BoardResponse struct {
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

func boardResponse(b *model.Board) BoardResponse {
	width := b.WidthCm
	if width == 0 {
		width = model.DefaultBoardWidthCm
	}
	height := b.HeightCm
	if height == 0 {
		height = model.DefaultBoardHeightCm
	}
	return BoardResponse{
		ID:          b.ID.String(),
		Name:        b.Name,
		Description: b.Description,
		Category:    b.Category,
		Image:       b.Image,
		WidthCm:     width,
		HeightCm:    height,
		Verified:    b.Verified,
		OwnerID:     b.OwnerID.String(),
		CreatedAt:   b.CreatedAt.Format(http.TimeFormat),
	}
}

// Create registers a new board template for the authenticated user.
func (h *BoardHandler) Create(c *gin.Context) {
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

	board := &model.Board{
		ID:          uuid.New(),
		Name:        name,
		Description: c.PostForm("descricao"),
		Category:    c.PostForm("categoria"),
		Image:       image,
		WidthCm:     formFloat(c, "widthCm", model.DefaultBoardWidthCm),
		HeightCm:    formFloat(c, "heightCm", model.DefaultBoardHeightCm),
		OwnerID:     ownerID,
	}

	if err := h.repo.Create(c.Request.Context(), board); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create board"})
		return
	}

	c.JSON(http.StatusCreated, boardResponse(board))
}

// GetOwned lists the authenticated user's board library.
func (h *BoardHandler) GetOwned(c *gin.Context) {
	ownerID, ok := authenticatedUserID(c)
	if !ok {
		return
	}

	boards, err := h.repo.GetOwned(c.Request.Context(), ownerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve boards"})
		return
	}

	response := make([]BoardResponse, len(boards))
	for i := range boards {
		response[i] = boardResponse(&boards[i])
	}
	c.JSON(http.StatusOK, response)
}

// Delete removes a board the user owns.
func (h *BoardHandler) Delete(c *gin.Context) {
	ownerID, ok := authenticatedUserID(c)
	if !ok {
		return
	}

	board, ok := h.loadBoard(c)
	if !ok {
		return
	}
	if board.OwnerID != ownerID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You don't have permission to delete this board"})
		return
	}

	if err := h.repo.Delete(c.Request.Context(), board.ID); err != nil {
		if err == repository.ErrAssetNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Board not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete board"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Board deleted"})
}

// Copy duplicates somebody's board into the user's own library.
func (h *BoardHandler) Copy(c *gin.Context) {
	ownerID, ok := authenticatedUserID(c)
	if !ok {
		return
	}

	board, ok := h.loadBoard(c)
	if !ok {
		return
	}

	copied := board.CopyFor(ownerID)
	if err := h.repo.Create(c.Request.Context(), copied); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to copy board"})
		return
	}

	c.JSON(http.StatusCreated, boardResponse(copied))
}

// SetVerified flips the verified flag, verifiers only.
func (h *BoardHandler) SetVerified(c *gin.Context) {
	userID, ok := authenticatedUserID(c)
	if !ok {
		return
	}
	if !h.verifiers.Allows(userID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only verifiers can change the verified flag"})
		return
	}

	board, ok := h.loadBoard(c)
	if !ok {
		return
	}

	var req VerifiedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if err := h.repo.SetVerified(c.Request.Context(), board.ID, *req.Verified); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update verified flag"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"verified": *req.Verified})
}

func (h *BoardHandler) loadBoard(c *gin.Context) (*model.Board, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid board ID format"})
		return nil, false
	}

	board, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve board"})
		return nil, false
	}
	if board == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Board not found"})
		return nil, false
	}
	return board, true
}

func (h *BoardHandler) formImage(c *gin.Context) (string, error) {
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
