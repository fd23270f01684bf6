package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleViewOnly Role = "VIEW_ONLY"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleViewOnly
}

type User struct {
	ID             string `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	Name           string `gorm:"size:100;not null"`
	Username       string `gorm:"size:100;not null;uniqueIndex"`
	Email          string `gorm:"size:100;not null;uniqueIndex"`
	HashedPassword string `gorm:"size:255;not null"`
	Role           Role   `gorm:"type:varchar(20);default:'VIEW_ONLY';not null"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return
}
