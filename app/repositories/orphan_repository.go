package repositories

import (
	"context"
	"time"

	"github.com/gsk-limited/storefront/app/models"
	"gorm.io/gorm"
)

// OrphanRepositoryImpl tracks storage keys left behind by failed deletes.
type OrphanRepositoryImpl interface {
	Record(ctx context.Context, key, reason string) error
	// List returns up to limit orphans with an id greater than afterID, in id order.
	List(ctx context.Context, afterID string, limit int) ([]models.OrphanedObject, error)
	Resolve(ctx context.Context, id string) error
	Bump(ctx context.Context, id, reason string) error
}

type orphanRepository struct {
	db *gorm.DB
}

func NewOrphanRepository(db *gorm.DB) OrphanRepositoryImpl {
	return &orphanRepository{db}
}

func (r *orphanRepository) Record(ctx context.Context, key, reason string) error {
	return r.db.WithContext(ctx).Create(&models.OrphanedObject{Key: key, Reason: reason, Attempts: 1}).Error
}

func (r *orphanRepository) List(ctx context.Context, afterID string, limit int) ([]models.OrphanedObject, error) {
	var orphans []models.OrphanedObject
	tx := r.db.WithContext(ctx)
	if afterID != "" {
		tx = tx.Where("id > ?", afterID)
	}
	err := tx.Order("id ASC").Limit(limit).Find(&orphans).Error
	return orphans, err
}

func (r *orphanRepository) Resolve(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&models.OrphanedObject{}, "id = ?", id).Error
}

func (r *orphanRepository) Bump(ctx context.Context, id, reason string) error {
	return r.db.WithContext(ctx).Model(&models.OrphanedObject{}).Where("id = ?", id).Updates(map[string]interface{}{
		"attempts":   gorm.Expr("attempts + 1"),
		"reason":     reason,
		"updated_at": time.Now(),
	}).Error
}
