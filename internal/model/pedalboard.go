package model

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// DefaultZIndex is the stacking order assigned to placements that do
// not specify one.
const DefaultZIndex = 10

// PlaceholderImage is served when neither the placement nor its
// source asset carries an image reference.
const PlaceholderImage = "/uploads/imagem-placeholder.png"

// EstiloFallback is stored when a pedalboard is created without any
// recognized genre tag.
const EstiloFallback = "outro"

// validEstilos is the enumerated genre-tag set.
var validEstilos = map[string]bool{
	"rock":    true,
	"blues":   true,
	"jazz":    true,
	"metal":   true,
	"pop":     true,
	"country": true,
	"reggae":  true,
	"outro":   true,
}

// PedalPlacement is one pedal instance positioned inside a
// pedalboard scene. PedalID is nullable: deleting the source pedal
// leaves the placement in place with its frozen Src image.
type PedalPlacement struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	PedalboardID uuid.UUID  `gorm:"type:uuid;not null;index"`
	PedalID      *uuid.UUID `gorm:"type:uuid"`
	X            float64
	Y            float64
	Rotation     float64
	ZIndex       int `gorm:"default:10"`
	WidthCm      float64
	HeightCm     float64
	Src          string
	Spec         string
	Position     int `gorm:"not null"`
}

// BoardPlacement mirrors PedalPlacement for board sprites. Boards
// carry no free-text spec.
type BoardPlacement struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	PedalboardID uuid.UUID  `gorm:"type:uuid;not null;index"`
	BoardID      *uuid.UUID `gorm:"type:uuid"`
	X            float64
	Y            float64
	Rotation     float64
	ZIndex       int `gorm:"default:10"`
	WidthCm      float64
	HeightCm     float64
	Src          string
	Position     int `gorm:"not null"`
}

// Pedalboard is a composed scene: positioned placements over a
// background, plus metadata, annotations, likes and a crowd-sourced
// verified flag.
type Pedalboard struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Name        string    `gorm:"not null"`
	Artist      string
	Description string
	Categories  datatypes.JSONSlice[string]
	Estilos     datatypes.JSONSlice[string]
	Image       string `gorm:"not null"`
	Thumbnail   string
	Background  string
	// Annotations are free-form client records, stored and returned
	// verbatim.
	Annotations datatypes.JSON
	Verified    bool                        `gorm:"default:false"`
	LikedBy     datatypes.JSONSlice[string] `gorm:"type:jsonb"`
	OwnerID     uuid.UUID                   `gorm:"type:uuid;not null;index"`
	CreatedAt   time.Time                   `gorm:"autoCreateTime"`
	UpdatedAt   time.Time                   `gorm:"autoUpdateTime"`

	Pedals []PedalPlacement `gorm:"foreignKey:PedalboardID"`
	Boards []BoardPlacement `gorm:"foreignKey:PedalboardID"`
	Owner  User             `gorm:"foreignKey:OwnerID"`
}

// NormalizeEstilos lowercases and trims incoming genre tags, drops
// unrecognized ones and duplicates, and falls back to EstiloFallback
// when nothing survives. The result is always a non-empty sequence.
func NormalizeEstilos(raw []string) []string {
	var out []string
	seen := map[string]bool{}
	for _, e := range raw {
		e = strings.ToLower(strings.TrimSpace(e))
		if validEstilos[e] && !seen[e] {
			seen[e] = true
			out = append(out, e)
		}
	}
	if len(out) == 0 {
		return []string{EstiloFallback}
	}
	return out
}

// StringOrList tolerates legacy payloads that send a bare scalar
// where a list is expected ("estilo": "rock" vs ["rock"]). It always
// decodes into a sequence.
type StringOrList []string

func (s *StringOrList) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*s = list
		return nil
	}
	var single string
	if err := json.Unmarshal(data, &single); err != nil {
		return err
	}
	if single == "" {
		*s = nil
		return nil
	}
	*s = []string{single}
	return nil
}

// HasLike reports whether userID is in the liked-by set.
func (p *Pedalboard) HasLike(userID uuid.UUID) bool {
	id := userID.String()
	for _, liked := range p.LikedBy {
		if liked == id {
			return true
		}
	}
	return false
}

// ToggleLike adds userID to the liked-by set or removes it when
// already present. It reports whether the board is liked afterwards.
// The set holds each user at most once.
func (p *Pedalboard) ToggleLike(userID uuid.UUID) bool {
	id := userID.String()
	for i, liked := range p.LikedBy {
		if liked == id {
			p.LikedBy = append(p.LikedBy[:i], p.LikedBy[i+1:]...)
			return false
		}
	}
	p.LikedBy = append(p.LikedBy, id)
	return true
}

// CloneFor builds a copy of the pedalboard owned by ownerID.
// Placements whose source asset has been deleted are filtered out,
// every placement gets a fresh id, and likes are not carried over.
func (p *Pedalboard) CloneFor(ownerID uuid.UUID) *Pedalboard {
	clone := &Pedalboard{
		ID:          uuid.New(),
		Name:        p.Name,
		Artist:      p.Artist,
		Description: p.Description,
		Categories:  append(datatypes.JSONSlice[string]{}, p.Categories...),
		Estilos:     append(datatypes.JSONSlice[string]{}, p.Estilos...),
		Image:       p.Image,
		Thumbnail:   p.Thumbnail,
		Background:  p.Background,
		Annotations: p.Annotations,
		OwnerID:     ownerID,
	}
	for _, pl := range p.Pedals {
		if pl.PedalID == nil {
			continue
		}
		copied := pl
		copied.ID = uuid.New()
		copied.PedalboardID = clone.ID
		copied.Position = len(clone.Pedals)
		clone.Pedals = append(clone.Pedals, copied)
	}
	for _, pl := range p.Boards {
		if pl.BoardID == nil {
			continue
		}
		copied := pl
		copied.ID = uuid.New()
		copied.PedalboardID = clone.ID
		copied.Position = len(clone.Boards)
		clone.Boards = append(clone.Boards, copied)
	}
	return clone
}
