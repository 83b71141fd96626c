package model

import (
	"time"

	"github.com/google/uuid"
)

const DefaultAvatar = "/uploads/avatar-placeholder.png"

type User struct {
	ID             uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Email          string    `gorm:"uniqueIndex;not null"`
	HashedPassword string    `gorm:"not null"`
	Name           string    `gorm:"not null"`
	Phone          string
	BirthDate      *time.Time
	Avatar         string    `gorm:"default:'/uploads/avatar-placeholder.png'"`
	CreatedAt      time.Time `gorm:"autoCreateTime"`
}
