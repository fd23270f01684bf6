package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gsk-limited/storefront/app/catalog"
	"github.com/gsk-limited/storefront/app/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProductRepositoryImpl interface {
	CountProducts(ctx context.Context, filter catalog.ProductFilter) (int64, error)
	FindProducts(ctx context.Context, query catalog.ProductQuery) ([]models.Product, error)
	GetByID(ctx context.Context, id string) (*models.Product, error)
	ExistsByName(ctx context.Context, name, excludeID string) (bool, error)
	CountAll(ctx context.Context) (int64, error)
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id string) error
}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepositoryImpl {
	return &productRepository{db}
}

// applyProductFilter is the only place the listing filter meets SQL.
func applyProductFilter(tx *gorm.DB, f catalog.ProductFilter) *gorm.DB {
	switch f.Kind() {
	case catalog.MatchCategories:
		return tx.Where("category_id IN ?", f.CategoryIDs)
	case catalog.MatchCategoriesOrID:
		return tx.Where("id = ? OR category_id IN ?", f.IncludeID, f.CategoryIDs)
	default:
		return tx
	}
}

func (p *productRepository) pageQuery(tx *gorm.DB, q catalog.ProductQuery) *gorm.DB {
	tx = tx.Model(&models.Product{})
	if q.IncludeCategory {
		tx = tx.Preload("Category")
	}
	return applyProductFilter(tx, q.Filter).
		Order("created_at DESC").
		Offset(q.Skip).
		Limit(q.Take)
}

func (p *productRepository) CountProducts(ctx context.Context, filter catalog.ProductFilter) (int64, error) {
	var total int64
	if err := applyProductFilter(p.db.WithContext(ctx).Model(&models.Product{}), filter).Count(&total).Error; err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return total, nil
}

// FindProducts returns one page of matches. When the filter carries an
// include id whose product fell outside the page, that product is appended.
func (p *productRepository) FindProducts(ctx context.Context, q catalog.ProductQuery) ([]models.Product, error) {
	var products []models.Product
	if err := p.pageQuery(p.db.WithContext(ctx), q).Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to find products: %w", err)
	}

	return pinIncluded(products, q.Filter.IncludeID, func(id string) (*models.Product, error) {
		tx := p.db.WithContext(ctx)
		if q.IncludeCategory {
			tx = tx.Preload("Category")
		}
		var pinned models.Product
		err := tx.First(&pinned, "id = ?", id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		return &pinned, nil
	})
}

// pinIncluded appends the product named by includeID when it is not already
// on the page. load returns nil, nil for an unknown id.
func pinIncluded(products []models.Product, includeID string, load func(id string) (*models.Product, error)) ([]models.Product, error) {
	if includeID == "" {
		return products, nil
	}
	for _, product := range products {
		if product.ID == includeID {
			return products, nil
		}
	}

	pinned, err := load(includeID)
	if err != nil {
		return nil, fmt.Errorf("failed to find expanded product %s: %w", includeID, err)
	}
	if pinned == nil {
		return products, nil
	}
	return append(products, *pinned), nil
}

func (p *productRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	err := p.db.WithContext(ctx).
		Preload("Category").
		First(&product, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

func (p *productRepository) ExistsByName(ctx context.Context, name, excludeID string) (bool, error) {
	var count int64
	tx := p.db.WithContext(ctx).Model(&models.Product{}).Where("LOWER(name) = ?", strings.ToLower(strings.TrimSpace(name)))
	if excludeID != "" {
		tx = tx.Where("id <> ?", excludeID)
	}
	if err := tx.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (p *productRepository) CountAll(ctx context.Context) (int64, error) {
	var total int64
	err := p.db.WithContext(ctx).Model(&models.Product{}).Count(&total).Error
	return total, err
}

func (p *productRepository) Create(ctx context.Context, product *models.Product) error {
	return p.db.WithContext(ctx).Omit(clause.Associations).Create(product).Error
}

func (p *productRepository) Update(ctx context.Context, product *models.Product) error {
	return p.db.WithContext(ctx).Omit(clause.Associations).Save(product).Error
}

func (p *productRepository) Delete(ctx context.Context, id string) error {
	result := p.db.WithContext(ctx).Delete(&models.Product{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
