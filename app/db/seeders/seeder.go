package seeders

import (
	"fmt"
	"log"

	"github.com/gsk-limited/storefront/app/db/fakers"
	"github.com/gsk-limited/storefront/app/models"
	"gorm.io/gorm"
)

var categoryNames = []struct {
	Name     string
	Featured bool
}{
	{"Pumps", true},
	{"Valves", true},
	{"Pipes & Fittings", false},
	{"Motors", false},
	{"Instrumentation", true},
}

const (
	productsPerCategory = 6
	uncategorized       = 3
	partnerCount        = 4
)

// DBSeed fills an empty catalog with demo data. Categories are matched by
// slug so running it twice does not duplicate them.
func DBSeed(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		for _, c := range categoryNames {
			category := fakers.CategoryFaker(c.Name, c.Featured)
			if err := tx.Where("slug = ?", category.Slug).FirstOrCreate(category).Error; err != nil {
				return fmt.Errorf("failed to seed category %s: %w", c.Name, err)
			}
			for i := 0; i < productsPerCategory; i++ {
				if err := tx.Create(fakers.ProductFaker(category)).Error; err != nil {
					return fmt.Errorf("failed to seed product: %w", err)
				}
			}
		}

		for i := 0; i < uncategorized; i++ {
			if err := tx.Create(fakers.ProductFaker(nil)).Error; err != nil {
				return fmt.Errorf("failed to seed product: %w", err)
			}
		}

		var partners int64
		if err := tx.Model(&models.Partner{}).Count(&partners).Error; err != nil {
			return err
		}
		for i := int(partners); i < partnerCount; i++ {
			if err := tx.Create(fakers.PartnerFaker()).Error; err != nil {
				return fmt.Errorf("failed to seed partner: %w", err)
			}
		}

		log.Printf("✅ Seeded %d categories, %d products", len(categoryNames), len(categoryNames)*productsPerCategory+uncategorized)
		return nil
	})
}
