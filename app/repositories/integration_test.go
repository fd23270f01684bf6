//go:build integration

package repositories_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/gsk-limited/storefront/app/catalog"
	"github.com/gsk-limited/storefront/app/models"
	"github.com/gsk-limited/storefront/app/models/migrations"
	"github.com/gsk-limited/storefront/app/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupPostgres(t *testing.T) *gorm.DB {
	t.Helper()
	ctx := context.Background()

	pg, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("gsk"),
		postgres.WithUsername("gsk"),
		postgres.WithPassword("secret"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := pg.Terminate(ctx); err != nil {
			t.Logf("Failed to terminate container: %v", err)
		}
	})

	dsn, err := pg.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{DisableForeignKeyConstraintWhenMigrating: true})
	require.NoError(t, err)
	require.NoError(t, migrations.AutoMigrate(db))
	return db
}

func TestProductListingAgainstPostgres(t *testing.T) {
	db := setupPostgres(t)
	ctx := context.Background()

	categories := repositories.NewCategoryRepository(db)
	products := repositories.NewProductRepository(db)

	pumps := &models.Category{Name: "Pumps", Slug: "pumps"}
	valves := &models.Category{Name: "Valves", Slug: "valves"}
	require.NoError(t, categories.Create(ctx, pumps))
	require.NoError(t, categories.Create(ctx, valves))

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 5; i++ {
		p := &models.Product{
			Name:       fmt.Sprintf("Pump %d", i),
			Slug:       fmt.Sprintf("pump-%d", i),
			CategoryID: &pumps.ID,
			Images:     []string{fmt.Sprintf("products/pump-%d.jpg", i)},
			CreatedAt:  base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, products.Create(ctx, p))
	}
	valve := &models.Product{Name: "Gate valve", Slug: "gate-valve", CategoryID: &valves.ID, CreatedAt: base}
	require.NoError(t, products.Create(ctx, valve))

	filter := catalog.NewProductFilter(pumps.ID, "")
	total, err := products.CountProducts(ctx, filter)
	require.NoError(t, err)
	assert.EqualValues(t, 5, total)

	page, err := products.FindProducts(ctx, catalog.ProductQuery{Filter: filter, Skip: 0, Take: 2, IncludeCategory: true})
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "Pump 4", page[0].Name)
	require.NotNil(t, page[0].Category)
	assert.Equal(t, "Pumps", page[0].Category.Name)
	assert.Equal(t, []string{"products/pump-4.jpg"}, page[0].Images)

	expanded := catalog.NewProductFilter(pumps.ID, valve.ID)
	total, err = products.CountProducts(ctx, expanded)
	require.NoError(t, err)
	assert.EqualValues(t, 6, total)

	page, err = products.FindProducts(ctx, catalog.ProductQuery{Filter: expanded, Skip: 0, Take: 2, IncludeCategory: true})
	require.NoError(t, err)
	require.Len(t, page, 3)
	assert.Equal(t, valve.ID, page[2].ID)

	n, err := categories.CountProducts(ctx, pumps.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 5, n)
}
