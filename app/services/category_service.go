package services

import (
	"context"
	"fmt"
	"log"
	"mime/multipart"
	"strings"

	"github.com/gsk-limited/storefront/app/catalog"
	"github.com/gsk-limited/storefront/app/helpers"
	"github.com/gsk-limited/storefront/app/models"
	"github.com/gsk-limited/storefront/app/repositories"
)

type CategoryInput struct {
	Name        string `validate:"required,min=2,max=100"`
	Description string `validate:"max=2000"`
	Featured    bool
	Image       *multipart.FileHeader `validate:"-"`
	RemoveImage bool
}

type CategoryService struct {
	categoryRepo repositories.CategoryRepositoryImpl
	orphanRepo   repositories.OrphanRepositoryImpl
	images       ImageStore
}

func NewCategoryService(categoryRepo repositories.CategoryRepositoryImpl, orphanRepo repositories.OrphanRepositoryImpl, images ImageStore) *CategoryService {
	return &CategoryService{
		categoryRepo: categoryRepo,
		orphanRepo:   orphanRepo,
		images:       images,
	}
}

func (s *CategoryService) GetCategories(ctx context.Context, featuredOnly bool) ([]catalog.CategoryView, error) {
	categories, err := s.categoryRepo.GetAll(ctx, featuredOnly)
	if err != nil {
		return nil, err
	}
	views := make([]catalog.CategoryView, 0, len(categories))
	for i := range categories {
		views = append(views, *catalog.NewCategoryView(&categories[i]))
	}
	return views, nil
}

func (s *CategoryService) GetCategory(ctx context.Context, id string) (*catalog.CategoryView, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get category %s: %w", id, err)
	}
	if category == nil {
		return nil, notFound("Category not found")
	}
	return catalog.NewCategoryView(category), nil
}

func (s *CategoryService) CreateCategory(ctx context.Context, in CategoryInput) (*catalog.CategoryView, error) {
	if err := s.checkCategoryInput(ctx, in, ""); err != nil {
		return nil, err
	}

	image, err := s.uploadImage(ctx, in.Image)
	if err != nil {
		return nil, err
	}

	category := &models.Category{
		Name:        strings.TrimSpace(in.Name),
		Slug:        helpers.GenerateSlug(in.Name),
		Description: optionalString(in.Description),
		Image:       image,
		Featured:    in.Featured,
	}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		if image != nil {
			discardImages(ctx, s.images, nil, []string{*image})
		}
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	log.Printf("CategoryService: created category %s (%s)", category.ID, category.Name)
	return catalog.NewCategoryView(category), nil
}

func (s *CategoryService) UpdateCategory(ctx context.Context, id string, in CategoryInput) (*catalog.CategoryView, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get category %s: %w", id, err)
	}
	if category == nil {
		return nil, notFound("Category not found")
	}
	if err := s.checkCategoryInput(ctx, in, id); err != nil {
		return nil, err
	}

	image, err := s.uploadImage(ctx, in.Image)
	if err != nil {
		return nil, err
	}

	var dropped []string
	previous := category.Image
	if previous != nil && (image != nil || in.RemoveImage) {
		dropped = append(dropped, *previous)
		category.Image = nil
	}
	if image != nil {
		category.Image = image
	}

	category.Name = strings.TrimSpace(in.Name)
	category.Slug = helpers.GenerateSlug(in.Name)
	category.Description = optionalString(in.Description)
	category.Featured = in.Featured

	if err := s.categoryRepo.Update(ctx, category); err != nil {
		if image != nil {
			discardImages(ctx, s.images, nil, []string{*image})
		}
		return nil, fmt.Errorf("failed to update category %s: %w", id, err)
	}
	discardImages(ctx, s.images, s.orphanRepo, dropped)

	return catalog.NewCategoryView(category), nil
}

// DeleteCategory refuses while products still reference the category.
func (s *CategoryService) DeleteCategory(ctx context.Context, id string) error {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get category %s: %w", id, err)
	}
	if category == nil {
		return notFound("Category not found")
	}

	inUse, err := s.categoryRepo.CountProducts(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to count products for category %s: %w", id, err)
	}
	if inUse > 0 {
		return conflict("Category %q still has %d product(s)", category.Name, inUse)
	}

	if err := s.categoryRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete category %s: %w", id, err)
	}
	if category.Image != nil {
		discardImages(ctx, s.images, s.orphanRepo, []string{*category.Image})
	}
	return nil
}

func (s *CategoryService) CountCategories(ctx context.Context) (int64, error) {
	return s.categoryRepo.CountAll(ctx)
}

func (s *CategoryService) checkCategoryInput(ctx context.Context, in CategoryInput, excludeID string) error {
	if err := validateStruct(in).orNil(); err != nil {
		return err
	}
	exists, err := s.categoryRepo.ExistsByName(ctx, in.Name, excludeID)
	if err != nil {
		return fmt.Errorf("failed to check category name: %w", err)
	}
	if exists {
		return conflict("A category named %q already exists", strings.TrimSpace(in.Name))
	}
	return nil
}

func (s *CategoryService) uploadImage(ctx context.Context, fh *multipart.FileHeader) (*string, error) {
	if fh == nil {
		return nil, nil
	}
	urls, err := uploadFiles(ctx, s.images, "categories", "image", []*multipart.FileHeader{fh})
	if err != nil {
		return nil, err
	}
	return &urls[0], nil
}
