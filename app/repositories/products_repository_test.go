package repositories

import (
	"errors"
	"testing"

	"github.com/gsk-limited/storefront/app/catalog"
	"github.com/gsk-limited/storefront/app/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// dryRunDB never touches a server: statements are only built.
func dryRunDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(mysql.New(mysql.Config{
		DSN:                       "gsk:secret@tcp(127.0.0.1:3306)/gsk?parseTime=True",
		SkipInitializeWithVersion: true,
	}), &gorm.Config{DryRun: true, DisableAutomaticPing: true})
	require.NoError(t, err)
	return db
}

func filterSQL(db *gorm.DB, f catalog.ProductFilter) string {
	return db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		var products []models.Product
		return applyProductFilter(tx.Model(&models.Product{}), f).Find(&products)
	})
}

func TestApplyProductFilterMatchAll(t *testing.T) {
	db := dryRunDB(t)

	assert.NotContains(t, filterSQL(db, catalog.NewProductFilter("", "")), "WHERE")
	assert.NotContains(t, filterSQL(db, catalog.NewProductFilter(" , ", "")), "WHERE")
	assert.NotContains(t, filterSQL(db, catalog.NewProductFilter("", "X")), "WHERE")
}

func TestApplyProductFilterCategories(t *testing.T) {
	sql := filterSQL(dryRunDB(t), catalog.NewProductFilter("1,2,", ""))

	assert.Contains(t, sql, "category_id IN ('1','2')")
	assert.NotContains(t, sql, "id = ")
}

func TestApplyProductFilterCategoriesOrExpanded(t *testing.T) {
	sql := filterSQL(dryRunDB(t), catalog.NewProductFilter("1", "X"))

	assert.Contains(t, sql, "id = 'X' OR category_id IN ('1')")
}

func TestPageQueryWindow(t *testing.T) {
	db := dryRunDB(t)
	repo := &productRepository{db: db}

	sql := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		var products []models.Product
		return repo.pageQuery(tx, catalog.ProductQuery{
			Filter: catalog.NewProductFilter("1", ""),
			Skip:   20,
			Take:   10,
		}).Find(&products)
	})

	assert.Contains(t, sql, "ORDER BY created_at DESC")
	assert.Contains(t, sql, "LIMIT 10 OFFSET 20")
}

func TestCountUsesSameFilter(t *testing.T) {
	db := dryRunDB(t)

	sql := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		var total int64
		return applyProductFilter(tx.Model(&models.Product{}), catalog.NewProductFilter("7", "")).Count(&total)
	})

	assert.Contains(t, sql, "count(*)")
	assert.Contains(t, sql, "category_id IN ('7')")
}

func TestPinIncludedAppendsProductOutsidePage(t *testing.T) {
	page := []models.Product{{ID: "a"}, {ID: "b"}}
	var loaded []string

	got, err := pinIncluded(page, "x", func(id string) (*models.Product, error) {
		loaded = append(loaded, id)
		return &models.Product{ID: id}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"x"}, loaded)
	require.Len(t, got, 3)
	assert.Equal(t, "x", got[2].ID)
}

func TestPinIncludedSkipsLookupWhenOnPage(t *testing.T) {
	page := []models.Product{{ID: "a"}, {ID: "x"}}

	got, err := pinIncluded(page, "x", func(string) (*models.Product, error) {
		t.Fatal("lookup not expected")
		return nil, nil
	})
	require.NoError(t, err)
	assert.Equal(t, page, got)

	got, err = pinIncluded(page, "", func(string) (*models.Product, error) {
		t.Fatal("lookup not expected")
		return nil, nil
	})
	require.NoError(t, err)
	assert.Equal(t, page, got)
}

func TestPinIncludedUnknownID(t *testing.T) {
	page := []models.Product{{ID: "a"}}

	got, err := pinIncluded(page, "missing", func(string) (*models.Product, error) {
		return nil, nil
	})
	require.NoError(t, err)
	assert.Equal(t, page, got)
}

func TestPinIncludedLookupFailure(t *testing.T) {
	_, err := pinIncluded(nil, "x", func(string) (*models.Product, error) {
		return nil, errors.New("connection refused")
	})
	assert.ErrorContains(t, err, "failed to find expanded product x")
}
