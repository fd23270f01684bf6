package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrphanedObject is a storage key whose delete failed after the owning row was removed.
type OrphanedObject struct {
	ID        string `gorm:"size:36;not null;uniqueIndex;primary_key"`
	Key       string `gorm:"size:512;not null;index"`
	Reason    string `gorm:"type:text"`
	Attempts  int    `gorm:"not null;default:1"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (o *OrphanedObject) BeforeCreate(tx *gorm.DB) (err error) {
	if o.ID == "" {
		o.ID = uuid.New().String()
	}
	return
}
