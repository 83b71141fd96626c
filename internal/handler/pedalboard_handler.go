package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"pedalboard/internal/auth"
	"pedalboard/internal/cache"
	"pedalboard/internal/layout"
	"pedalboard/internal/model"
	"pedalboard/internal/repository"
	"pedalboard/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type PedalboardHandler struct {
	repo      repository.PedalboardRepositoryInterface
	pedalRepo repository.PedalRepositoryInterface
	boardRepo repository.BoardRepositoryInterface
	store     storage.Store
	verifiers auth.VerifierSet
	suggCache *cache.Cache
}

func NewPedalboardHandler(
	repo repository.PedalboardRepositoryInterface,
	pedalRepo repository.PedalRepositoryInterface,
	boardRepo repository.BoardRepositoryInterface,
	store storage.Store,
	verifiers auth.VerifierSet,
	suggCache *cache.Cache,
) *PedalboardHandler {
	return &PedalboardHandler{
		repo:      repo,
		pedalRepo: pedalRepo,
		boardRepo: boardRepo,
		store:     store,
		verifiers: verifiers,
		suggCache: suggCache,
	}
}

// UpdatePedalboardRequest carries a full layout update. The
// placement lists replace the stored ones entirely: anything not
// resubmitted is dropped.
type UpdatePedalboardRequest struct {
	Name        string                  `json:"nome"`
	Artist      string                  `json:"artista"`
	Description string                  `json:"descricao"`
	Categories  model.StringOrList      `json:"categorias"`
	Estilos     model.StringOrList      `json:"estilo"`
	Annotations json.RawMessage         `json:"anotacoes"`
	Pedals      []PedalPlacementPayload `json:"pedais"`
	Boards      []BoardPlacementPayload `json:"boards"`
}

type PlacementResponse struct {
	ID       string  `json:"id"`
	AssetID  string  `json:"pedalId,omitempty"`
	BoardID  string  `json:"boardId,omitempty"`
	Src      string  `json:"src"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Rotation float64 `json:"rotation"`
	ZIndex   int     `json:"zIndex"`
	WidthCm  float64 `json:"widthCm"`
	HeightCm float64 `json:"heightCm"`
	Spec     string  `json:"spec,omitempty"`
}

type PedalboardResponse struct {
	ID          string              `json:"id"`
	Name        string              `json:"nome"`
	Artist      string              `json:"artista,omitempty"`
	Description string              `json:"descricao,omitempty"`
	Categories  []string            `json:"categorias"`
	Estilos     []string            `json:"estilo"`
	Image       string              `json:"imagem"`
	Thumbnail   string              `json:"capa,omitempty"`
	Background  string              `json:"fundo,omitempty"`
	Annotations json.RawMessage     `json:"anotacoes,omitempty"`
	Verified    bool                `json:"verified"`
	Likes       int                 `json:"likes"`
	LikedBy     []string            `json:"likedBy"`
	OwnerID     string              `json:"usuarioId"`
	Pedals      []PlacementResponse `json:"pedais"`
	Boards      []PlacementResponse `json:"boards"`
}

// pedalboardResponse renders a pedalboard, resolving each
// placement's image and size against its source asset when that
// still exists: asset image first, then the frozen src, then the
// placeholder.
func (h *PedalboardHandler) pedalboardResponse(ctx context.Context, pb *model.Pedalboard) PedalboardResponse {
	pedalAssets := h.resolvePedals(ctx, pb.Pedals)
	boardAssets := h.resolveBoards(ctx, pb.Boards)

	resp := PedalboardResponse{
		ID:          pb.ID.String(),
		Name:        pb.Name,
		Artist:      pb.Artist,
		Description: pb.Description,
		Categories:  emptyIfNil(pb.Categories),
		Estilos:     emptyIfNil(pb.Estilos),
		Image:       pb.Image,
		Thumbnail:   pb.Thumbnail,
		Background:  pb.Background,
		Annotations: json.RawMessage(pb.Annotations),
		Verified:    pb.Verified,
		Likes:       len(pb.LikedBy),
		LikedBy:     emptyIfNil(pb.LikedBy),
		OwnerID:     pb.OwnerID.String(),
		Pedals:      make([]PlacementResponse, 0, len(pb.Pedals)),
		Boards:      make([]PlacementResponse, 0, len(pb.Boards)),
	}

	for _, pl := range pb.Pedals {
		item := PlacementResponse{
			ID:       pl.ID.String(),
			Src:      pl.Src,
			X:        pl.X,
			Y:        pl.Y,
			Rotation: pl.Rotation,
			ZIndex:   orInt(pl.ZIndex, model.DefaultZIndex),
			WidthCm:  orFloat(pl.WidthCm, model.DefaultPedalWidthCm),
			HeightCm: orFloat(pl.HeightCm, model.DefaultPedalHeightCm),
			Spec:     pl.Spec,
		}
		if pl.PedalID != nil {
			item.AssetID = pl.PedalID.String()
			if asset, ok := pedalAssets[*pl.PedalID]; ok && asset.Image != "" {
				item.Src = asset.Image
			}
		}
		if item.Src == "" {
			item.Src = model.PlaceholderImage
		}
		resp.Pedals = append(resp.Pedals, item)
	}

	for _, pl := range pb.Boards {
		item := PlacementResponse{
			ID:       pl.ID.String(),
			Src:      pl.Src,
			X:        pl.X,
			Y:        pl.Y,
			Rotation: pl.Rotation,
			ZIndex:   orInt(pl.ZIndex, model.DefaultZIndex),
			WidthCm:  orFloat(pl.WidthCm, model.DefaultBoardWidthCm),
			HeightCm: orFloat(pl.HeightCm, model.DefaultBoardHeightCm),
		}
		if pl.BoardID != nil {
			item.BoardID = pl.BoardID.String()
			if asset, ok := boardAssets[*pl.BoardID]; ok && asset.Image != "" {
				item.Src = asset.Image
			}
		}
		if item.Src == "" {
			item.Src = model.PlaceholderImage
		}
		resp.Boards = append(resp.Boards, item)
	}

	return resp
}

func (h *PedalboardHandler) resolvePedals(ctx context.Context, placements []model.PedalPlacement) map[uuid.UUID]model.Pedal {
	var ids []uuid.UUID
	for _, pl := range placements {
		if pl.PedalID != nil {
			ids = append(ids, *pl.PedalID)
		}
	}
	assets := make(map[uuid.UUID]model.Pedal, len(ids))
	pedals, err := h.pedalRepo.GetByIDs(ctx, ids)
	if err != nil {
		// Rendering degrades to the frozen src images.
		return assets
	}
	for _, p := range pedals {
		assets[p.ID] = p
	}
	return assets
}

func (h *PedalboardHandler) resolveBoards(ctx context.Context, placements []model.BoardPlacement) map[uuid.UUID]model.Board {
	var ids []uuid.UUID
	for _, pl := range placements {
		if pl.BoardID != nil {
			ids = append(ids, *pl.BoardID)
		}
	}
	assets := make(map[uuid.UUID]model.Board, len(ids))
	boards, err := h.boardRepo.GetByIDs(ctx, ids)
	if err != nil {
		return assets
	}
	for _, b := range boards {
		assets[b.ID] = b
	}
	return assets
}

// Create builds a new pedalboard from a multipart form. The primary
// image and name are mandatory; placement lists arrive as JSON
// strings the way the web client's FormData sends them.
func (h *PedalboardHandler) Create(c *gin.Context) {
	ownerID, ok := authenticatedUserID(c)
	if !ok {
		return
	}

	name := c.PostForm("nome")
	image, err := h.formImage(c, "imagem")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store image"})
		return
	}
	if name == "" || image == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name and image are required"})
		return
	}

	var pedalPayloads []PedalPlacementPayload
	if raw := c.PostForm("pedais"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &pedalPayloads); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid pedais payload"})
			return
		}
	}
	var boardPayloads []BoardPlacementPayload
	if raw := c.PostForm("boards"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &boardPayloads); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid boards payload"})
			return
		}
	}

	thumbnail, err := h.formImage(c, "capa")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store image"})
		return
	}
	background, err := h.formImage(c, "fundo")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store image"})
		return
	}

	artist := c.PostForm("artista")

	pb := &model.Pedalboard{
		ID:          uuid.New(),
		Name:        name,
		Artist:      artist,
		Description: c.PostForm("descricao"),
		Categories:  datatypes.NewJSONSlice(splitList(c.PostForm("categoria"))),
		Estilos:     datatypes.NewJSONSlice(model.NormalizeEstilos(splitList(c.PostForm("estilo")))),
		Image:       image,
		Thumbnail:   thumbnail,
		Background:  background,
		OwnerID:     ownerID,
	}
	if raw := c.PostForm("anotacoes"); raw != "" && json.Valid([]byte(raw)) {
		pb.Annotations = datatypes.JSON(raw)
	}

	// Creation runs through the same cascade as updates, against an
	// empty existing list.
	pb.Pedals = layoutToPedalPlacements(pb.ID, layout.Reconcile(nil, pedalEdits(pedalPayloads), layout.PedalDefaults))
	pb.Boards = layoutToBoardPlacements(pb.ID, layout.Reconcile(nil, boardEdits(boardPayloads), layout.BoardDefaults))

	if err := h.repo.Create(c.Request.Context(), pb); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create pedalboard"})
		return
	}

	c.JSON(http.StatusCreated, h.pedalboardResponse(c.Request.Context(), pb))
}

// GetOwned lists the authenticated user's pedalboards.
func (h *PedalboardHandler) GetOwned(c *gin.Context) {
	ownerID, ok := authenticatedUserID(c)
	if !ok {
		return
	}

	boards, err := h.repo.GetOwned(c.Request.Context(), ownerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve pedalboards"})
		return
	}
	c.JSON(http.StatusOK, h.listResponse(c.Request.Context(), boards))
}

// GetAll lists every user's pedalboards.
func (h *PedalboardHandler) GetAll(c *gin.Context) {
	if _, ok := authenticatedUserID(c); !ok {
		return
	}

	boards, err := h.repo.GetAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve pedalboards"})
		return
	}
	c.JSON(http.StatusOK, h.listResponse(c.Request.Context(), boards))
}

// Search finds pedalboards by name, case-insensitive.
func (h *PedalboardHandler) Search(c *gin.Context) {
	if _, ok := authenticatedUserID(c); !ok {
		return
	}

	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Search term is required"})
		return
	}

	boards, err := h.repo.Search(c.Request.Context(), q)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to search pedalboards"})
		return
	}
	c.JSON(http.StatusOK, h.listResponse(c.Request.Context(), boards))
}

// GetByID returns a single pedalboard with resolved placements.
func (h *PedalboardHandler) GetByID(c *gin.Context) {
	if _, ok := authenticatedUserID(c); !ok {
		return
	}

	pb, ok := h.loadPedalboard(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.pedalboardResponse(c.Request.Context(), pb))
}

// Update applies a full layout update: metadata fields are replaced
// when supplied and both placement lists are reconciled against the
// stored ones.
func (h *PedalboardHandler) Update(c *gin.Context) {
	ownerID, ok := authenticatedUserID(c)
	if !ok {
		return
	}

	pb, ok := h.loadPedalboard(c)
	if !ok {
		return
	}
	if pb.OwnerID != ownerID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You don't have permission to update this pedalboard"})
		return
	}

	var req UpdatePedalboardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if req.Name != "" {
		pb.Name = req.Name
	}
	if req.Artist != "" {
		pb.Artist = req.Artist
	}
	if req.Description != "" {
		pb.Description = req.Description
	}
	if req.Categories != nil {
		pb.Categories = datatypes.NewJSONSlice[string](req.Categories)
	}
	if req.Estilos != nil {
		pb.Estilos = datatypes.NewJSONSlice(model.NormalizeEstilos(req.Estilos))
	}
	if len(req.Annotations) > 0 {
		pb.Annotations = datatypes.JSON(req.Annotations)
	}

	if req.Pedals != nil {
		merged := layout.Reconcile(pedalPlacementsToLayout(pb.Pedals), pedalEdits(req.Pedals), layout.PedalDefaults)
		pb.Pedals = layoutToPedalPlacements(pb.ID, merged)
	}
	if req.Boards != nil {
		merged := layout.Reconcile(boardPlacementsToLayout(pb.Boards), boardEdits(req.Boards), layout.BoardDefaults)
		pb.Boards = layoutToBoardPlacements(pb.ID, merged)
	}

	if err := h.repo.ReplacePlacements(c.Request.Context(), pb); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update pedalboard"})
		return
	}

	c.JSON(http.StatusOK, h.pedalboardResponse(c.Request.Context(), pb))
}

// Delete removes a pedalboard the user owns.
func (h *PedalboardHandler) Delete(c *gin.Context) {
	ownerID, ok := authenticatedUserID(c)
	if !ok {
		return
	}

	pb, ok := h.loadPedalboard(c)
	if !ok {
		return
	}
	if pb.OwnerID != ownerID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You don't have permission to delete this pedalboard"})
		return
	}

	if err := h.repo.Delete(c.Request.Context(), pb.ID); err != nil {
		if err == repository.ErrPedalboardNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Pedalboard not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete pedalboard"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Pedalboard deleted"})
}

// Clone copies a pedalboard into the user's library. Placements
// whose source asset is gone are filtered out of the copy.
func (h *PedalboardHandler) Clone(c *gin.Context) {
	ownerID, ok := authenticatedUserID(c)
	if !ok {
		return
	}

	pb, ok := h.loadPedalboard(c)
	if !ok {
		return
	}

	clone := pb.CloneFor(ownerID)
	if err := h.repo.Create(c.Request.Context(), clone); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clone pedalboard"})
		return
	}

	c.JSON(http.StatusCreated, h.pedalboardResponse(c.Request.Context(), clone))
}

// ToggleLike adds or removes the user's like. Last write wins on the
// stored set.
func (h *PedalboardHandler) ToggleLike(c *gin.Context) {
	userID, ok := authenticatedUserID(c)
	if !ok {
		return
	}

	pb, ok := h.loadPedalboard(c)
	if !ok {
		return
	}

	liked := pb.ToggleLike(userID)
	if err := h.repo.UpdateLikes(c.Request.Context(), pb.ID, pb.LikedBy); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update likes"})
		return
	}

	// The user's liked history changed; their cached suggestions are
	// stale.
	if h.suggCache != nil {
		h.suggCache.Invalidate(c.Request.Context(), suggestionCacheKey(userID))
	}

	c.JSON(http.StatusOK, gin.H{"liked": liked, "likes": len(pb.LikedBy)})
}

// SetVerified flips the verified flag, verifiers only.
func (h *PedalboardHandler) SetVerified(c *gin.Context) {
	userID, ok := authenticatedUserID(c)
	if !ok {
		return
	}
	if !h.verifiers.Allows(userID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only verifiers can change the verified flag"})
		return
	}

	pb, ok := h.loadPedalboard(c)
	if !ok {
		return
	}

	var req VerifiedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if err := h.repo.SetVerified(c.Request.Context(), pb.ID, *req.Verified); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update verified flag"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"verified": *req.Verified})
}

func (h *PedalboardHandler) loadPedalboard(c *gin.Context) (*model.Pedalboard, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid pedalboard ID format"})
		return nil, false
	}

	pb, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve pedalboard"})
		return nil, false
	}
	if pb == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Pedalboard not found"})
		return nil, false
	}
	return pb, true
}

func (h *PedalboardHandler) listResponse(ctx context.Context, boards []model.Pedalboard) []PedalboardResponse {
	out := make([]PedalboardResponse, len(boards))
	for i := range boards {
		out[i] = h.pedalboardResponse(ctx, &boards[i])
	}
	return out
}

func (h *PedalboardHandler) formImage(c *gin.Context, field string) (string, error) {
	file, err := c.FormFile(field)
	if err != nil {
		return c.PostForm(field), nil
	}
	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()
	return h.store.Save(c.Request.Context(), file.Filename, src)
}

// splitList turns a comma-separated form value into a list.
func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func orFloat(v, def float64) float64 {
	if v == 0 {
		return def
	}
	return v
}

func orInt(v, def int) int {
	if v == 0 {
		return def
	}
	return v
}
