package models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID             uuid.UUID `gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	Username       string    `gorm:"uniqueIndex;not null"`
	HashedPassword string    `gorm:"not null"`
	IsActive       bool      `gorm:"default:true"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (User) TableName() string {
	return "users"
}
