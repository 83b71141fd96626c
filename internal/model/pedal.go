package model

import (
	"time"

	"github.com/google/uuid"
)

// Default physical dimensions in centimeters, used whenever a pedal
// or one of its placements carries no explicit size.
const (
	DefaultPedalWidthCm  = 8
	DefaultPedalHeightCm = 8
)

// Pedal is a reusable, user-owned image template. Pedals are never
// embedded in a pedalboard; placements reference them by id.
type Pedal struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Name        string    `gorm:"not null"`
	Description string
	Category    string
	Image       string    `gorm:"not null"`
	WidthCm     float64   `gorm:"default:8"`
	HeightCm    float64   `gorm:"default:8"`
	Verified    bool      `gorm:"default:false"`
	OwnerID     uuid.UUID `gorm:"type:uuid;not null;index"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`

	Owner User `gorm:"foreignKey:OwnerID"`
}

// CopyFor returns a new pedal owned by ownerID with the same template
// data, falling back to default dimensions when the source has none.
func (p *Pedal) CopyFor(ownerID uuid.UUID) *Pedal {
	width := p.WidthCm
	if width == 0 {
		width = DefaultPedalWidthCm
	}
	height := p.HeightCm
	if height == 0 {
		height = DefaultPedalHeightCm
	}
	return &Pedal{
		ID:          uuid.New(),
		Name:        p.Name,
		Description: p.Description,
		Category:    p.Category,
		Image:       p.Image,
		WidthCm:     width,
		HeightCm:    height,
		OwnerID:     ownerID,
	}
}
