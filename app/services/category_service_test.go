package services

import (
	"context"
	"errors"
	"testing"

	"github.com/gsk-limited/storefront/app/mocks"
	"github.com/gsk-limited/storefront/app/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newCategoryService() (*CategoryService, *mocks.CategoryRepository, *mocks.OrphanRepository, *mocks.ImageStore) {
	repo := new(mocks.CategoryRepository)
	orphans := new(mocks.OrphanRepository)
	images := new(mocks.ImageStore)
	return NewCategoryService(repo, orphans, images), repo, orphans, images
}

func TestGetCategoriesFeatured(t *testing.T) {
	svc, repo, _, _ := newCategoryService()
	repo.On("GetAll", mock.Anything, true).Return([]models.Category{{ID: "c1", Name: "Pumps", Featured: true}}, nil)

	views, err := svc.GetCategories(context.Background(), true)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.True(t, views[0].Featured)
}

func TestCreateCategoryDuplicateName(t *testing.T) {
	svc, repo, _, _ := newCategoryService()
	repo.On("ExistsByName", mock.Anything, "Pumps", "").Return(true, nil)

	_, err := svc.CreateCategory(context.Background(), CategoryInput{Name: "Pumps"})
	assert.ErrorIs(t, err, ErrConflict)
	assert.EqualError(t, err, `A category named "Pumps" already exists`)
}

func TestCreateCategory(t *testing.T) {
	svc, repo, _, _ := newCategoryService()
	repo.On("ExistsByName", mock.Anything, "Valves & Fittings", "").Return(false, nil)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(c *models.Category) bool {
		return c.Slug == "valves-and-fittings" && c.Description == nil && c.Featured
	})).Return(nil)

	view, err := svc.CreateCategory(context.Background(), CategoryInput{Name: "Valves & Fittings", Featured: true})
	require.NoError(t, err)
	assert.Equal(t, "Valves & Fittings", view.Name)
}

func TestDeleteCategoryInUse(t *testing.T) {
	svc, repo, _, _ := newCategoryService()
	repo.On("GetByID", mock.Anything, "c1").Return(&models.Category{ID: "c1", Name: "Pumps"}, nil)
	repo.On("CountProducts", mock.Anything, "c1").Return(int64(2), nil)

	err := svc.DeleteCategory(context.Background(), "c1")
	assert.ErrorIs(t, err, ErrConflict)
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestDeleteCategoryRemovesImage(t *testing.T) {
	svc, repo, orphans, images := newCategoryService()
	repo.On("GetByID", mock.Anything, "c1").Return(&models.Category{ID: "c1", Image: strPtr("/uploads/categories/c.png")}, nil)
	repo.On("CountProducts", mock.Anything, "c1").Return(int64(0), nil)
	repo.On("Delete", mock.Anything, "c1").Return(nil)
	images.On("Remove", mock.Anything, "/uploads/categories/c.png").Return(errors.New("gone wrong"))
	orphans.On("Record", mock.Anything, "/uploads/categories/c.png", "gone wrong").Return(nil)

	require.NoError(t, svc.DeleteCategory(context.Background(), "c1"))
	orphans.AssertExpectations(t)
}

func TestGetCategoryNotFound(t *testing.T) {
	svc, repo, _, _ := newCategoryService()
	repo.On("GetByID", mock.Anything, "nope").Return(nil, nil)

	_, err := svc.GetCategory(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}
