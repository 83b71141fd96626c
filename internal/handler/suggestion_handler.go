package handler

import (
	"context"
	"net/http"
	"time"

	"pedalboard/internal/cache"
	"pedalboard/internal/repository"
	"pedalboard/internal/suggest"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SuggestionHandler serves ranked pedalboard recommendations. The
// ranking itself is pure; this handler only materializes the liked
// history and the candidate pool and caches the result.
type SuggestionHandler struct {
	repo      repository.PedalboardRepositoryInterface
	pedalRepo repository.PedalRepositoryInterface
	boardRepo repository.BoardRepositoryInterface
	cache     *cache.Cache
	limit     int
	ttl       time.Duration
	log       *zap.Logger
}

func NewSuggestionHandler(
	repo repository.PedalboardRepositoryInterface,
	pedalRepo repository.PedalRepositoryInterface,
	boardRepo repository.BoardRepositoryInterface,
	suggCache *cache.Cache,
	limit int,
	ttl time.Duration,
	log *zap.Logger,
) *SuggestionHandler {
	if limit <= 0 {
		limit = suggest.DefaultLimit
	}
	return &SuggestionHandler{
		repo:      repo,
		pedalRepo: pedalRepo,
		boardRepo: boardRepo,
		cache:     suggCache,
		limit:     limit,
		ttl:       ttl,
		log:       log,
	}
}

func suggestionCacheKey(userID uuid.UUID) string {
	return "sugestoes:" + userID.String()
}

// Suggest returns up to the configured limit of pedalboards the user
// has not liked, ranked by shared pedals, verification and title
// overlap with the liked history. No liked history means an empty
// list.
func (h *SuggestionHandler) Suggest(c *gin.Context) {
	userID, ok := authenticatedUserID(c)
	if !ok {
		return
	}

	load := func(ctx context.Context) ([]PedalboardResponse, error) {
		return h.compute(ctx, userID)
	}

	var (
		result []PedalboardResponse
		err    error
	)
	if h.cache != nil {
		result, err = cache.GetOrLoadJSON(h.cache, c.Request.Context(), suggestionCacheKey(userID), h.ttl, load)
	} else {
		result, err = load(c.Request.Context())
	}
	if err != nil {
		h.log.Error("suggestion computation failed", zap.String("user_id", userID.String()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute suggestions"})
		return
	}
	if result == nil {
		result = []PedalboardResponse{}
	}

	c.JSON(http.StatusOK, result)
}

func (h *SuggestionHandler) compute(ctx context.Context, userID uuid.UUID) ([]PedalboardResponse, error) {
	liked, err := h.repo.GetLikedBy(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(liked) == 0 {
		return []PedalboardResponse{}, nil
	}

	likedIDs := make([]uuid.UUID, len(liked))
	for i := range liked {
		likedIDs[i] = liked[i].ID
	}

	candidates, err := h.repo.GetAllExcept(ctx, likedIDs)
	if err != nil {
		return nil, err
	}

	ranked := suggest.Suggest(userID, liked, candidates, h.limit)

	// Borrow the pedalboard renderer for asset resolution.
	renderer := &PedalboardHandler{pedalRepo: h.pedalRepo, boardRepo: h.boardRepo}
	out := make([]PedalboardResponse, len(ranked))
	for i := range ranked {
		out[i] = renderer.pedalboardResponse(ctx, &ranked[i])
	}
	return out, nil
}
