package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Category struct {
	ID          string    `gorm:"size:36;not null;uniqueIndex;primary_key"`
	Name        string    `gorm:"size:100;not null;index"`
	Slug        string    `gorm:"size:120;not null;uniqueIndex"`
	Description *string   `gorm:"type:text"`
	Image       *string   `gorm:"size:255"`
	Featured    bool      `gorm:"default:false;index"`
	Products    []Product `gorm:"foreignKey:CategoryID"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (c *Category) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return
}
