package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Product struct {
	ID          string              `gorm:"size:36;not null;uniqueIndex;primary_key"`
	Name        string              `gorm:"size:255;not null"`
	Slug        string              `gorm:"size:255;not null;uniqueIndex"`
	Description string              `gorm:"type:text"`
	Price       decimal.NullDecimal `gorm:"type:decimal(16,2)"`
	Images      []string            `gorm:"type:text;serializer:json"`
	InStock     *bool
	Brand       *string   `gorm:"size:255"`
	CategoryID  *string   `gorm:"size:36;index"`
	Category    *Category `gorm:"foreignKey:CategoryID"`
	CreatedAt   time.Time `gorm:"index"`
	UpdatedAt   time.Time
}

func (p *Product) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return
}
