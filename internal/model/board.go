package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	DefaultBoardWidthCm  = 30
	DefaultBoardHeightCm = 30
)

// Board is a reusable board template (the plank pedals are mounted
// on), owned by one user and referenced by pedalboard placements.
type Board struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Name        string    `gorm:"not null"`
	Description string
	Category    string
	Image       string    `gorm:"not null"`
	WidthCm     float64   `gorm:"default:30"`
	HeightCm    float64   `gorm:"default:30"`
	Verified    bool      `gorm:"default:false"`
	OwnerID     uuid.UUID `gorm:"type:uuid;not null;index"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`

	Owner User `gorm:"foreignKey:OwnerID"`
}

func (b *Board) CopyFor(ownerID uuid.UUID) *Board {
	width := b.WidthCm
	if width == 0 {
		width = DefaultBoardWidthCm
	}
	height := b.HeightCm
	if height == 0 {
		height = DefaultBoardHeightCm
	}
	return &Board{
		ID:          uuid.New(),
		Name:        b.Name,
		Description: b.Description,
		Category:    b.Category,
		Image:       b.Image,
		WidthCm:     width,
		HeightCm:    height,
		OwnerID:     ownerID,
	}
}
