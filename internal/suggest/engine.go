// Package suggest ranks pedalboards a user has not liked yet against
// the user's liked history. Scoring is a pure computation over data
// already materialized by the repository layer.
package suggest

import (
	"sort"
	"strings"

	"pedalboard/internal/model"

	"github.com/google/uuid"
)

// DefaultLimit caps the number of suggestions returned when the
// caller passes limit <= 0.
const DefaultLimit = 20

// Score weights.
const (
	sharedPedalScore = 5
	verifiedScore    = 3
	titleWordScore   = 1
)

// signals is what the liked history contributes to scoring.
type signals struct {
	// likedAssetIDs is the union of pedal asset references across
	// every liked pedalboard. Placements whose asset was deleted
	// contribute nothing.
	likedAssetIDs map[uuid.UUID]bool
	// likedVerified is true when at least one liked pedalboard is
	// verified.
	likedVerified bool
	// titleWords is the multiset of lower-cased name tokens across
	// the liked pedalboards.
	titleWords map[string]int
	// likedIDs excludes already-liked boards from the candidate set.
	likedIDs map[uuid.UUID]bool
}

// Suggest returns up to limit candidates ranked by descending
// relevance to the user's liked history. An empty history yields an
// empty result: there is no basis for relevance. Candidates the user
// already liked are excluded, candidates scoring zero are dropped,
// and ties keep their relative input order.
func Suggest(userID uuid.UUID, liked, candidates []model.Pedalboard, limit int) []model.Pedalboard {
	if len(liked) == 0 {
		return nil
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	sig := deriveSignals(liked)

	type scored struct {
		board model.Pedalboard
		score int
	}
	ranked := make([]scored, 0, len(candidates))
	for _, cand := range candidates {
		if sig.likedIDs[cand.ID] || cand.HasLike(userID) {
			continue
		}
		if s := scoreCandidate(cand, sig); s > 0 {
			ranked = append(ranked, scored{board: cand, score: s})
		}
	}

	// Stable: equal scores retain candidate input order.
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	out := make([]model.Pedalboard, len(ranked))
	for i, r := range ranked {
		out[i] = r.board
	}
	return out
}

func deriveSignals(liked []model.Pedalboard) signals {
	sig := signals{
		likedAssetIDs: make(map[uuid.UUID]bool),
		titleWords:    make(map[string]int),
		likedIDs:      make(map[uuid.UUID]bool, len(liked)),
	}
	for _, pb := range liked {
		sig.likedIDs[pb.ID] = true
		if pb.Verified {
			sig.likedVerified = true
		}
		for _, pl := range pb.Pedals {
			if pl.PedalID != nil {
				sig.likedAssetIDs[*pl.PedalID] = true
			}
		}
		for _, word := range tokenize(pb.Name) {
			sig.titleWords[word]++
		}
	}
	return sig
}

func scoreCandidate(cand model.Pedalboard, sig signals) int {
	score := 0
	// Every matching placement counts, not just distinct assets.
	for _, pl := range cand.Pedals {
		if pl.PedalID != nil && sig.likedAssetIDs[*pl.PedalID] {
			score += sharedPedalScore
		}
	}
	if sig.likedVerified && cand.Verified {
		score += verifiedScore
	}
	// Counted per occurrence in the candidate's own name.
	for _, word := range tokenize(cand.Name) {
		if sig.titleWords[word] > 0 {
			score += titleWordScore
		}
	}
	return score
}

func tokenize(name string) []string {
	return strings.Fields(strings.ToLower(name))
}
