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
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

const FailedToFetchProducts = "Failed to fetch products"

type ProductListResult struct {
	Products    []catalog.ProductView `json:"products"`
	CurrentPage int                   `json:"currentPage"`
	TotalPages  int                   `json:"totalPages"`
	Total       int64                 `json:"total"`
	Success     bool                  `json:"success"`
	Error       string                `json:"error,omitempty"`
}

type ProductInput struct {
	Name        string `validate:"required,min=2,max=255"`
	Description string `validate:"max=10000"`
	Price       string `validate:"max=20"`
	InStock     *bool
	Brand       string `validate:"max=255"`
	CategoryID  string `validate:"max=36"`
	// RemoveImages lists existing image URLs to drop on update.
	RemoveImages []string                `validate:"-"`
	Images       []*multipart.FileHeader `validate:"-"`
}

type ProductService struct {
	productRepo  repositories.ProductRepositoryImpl
	categoryRepo repositories.CategoryRepositoryImpl
	orphanRepo   repositories.OrphanRepositoryImpl
	images       ImageStore
	formatPrice  catalog.PriceFormatter
}

func NewProductService(
	productRepo repositories.ProductRepositoryImpl,
	categoryRepo repositories.CategoryRepositoryImpl,
	orphanRepo repositories.OrphanRepositoryImpl,
	images ImageStore,
	formatPrice catalog.PriceFormatter,
) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		orphanRepo:   orphanRepo,
		images:       images,
		formatPrice:  formatPrice,
	}
}

// GetProducts returns one page of the catalog listing. The count and the
// page fetch run concurrently and both must finish before the result is
// built. A persistence failure yields an unsuccessful result, not an error;
// the error return is reserved for a cancelled or expired ctx.
func (s *ProductService) GetProducts(ctx context.Context, params catalog.ProductListParams) (ProductListResult, error) {
	params = params.Normalize()
	filter := params.Filter()
	skip, take := catalog.Window(params.Page, params.Limit)
	query := catalog.ProductQuery{Filter: filter, Skip: skip, Take: take, IncludeCategory: true}

	var (
		total   int64
		records []models.Product
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := s.productRepo.CountProducts(gctx, filter)
		if err != nil {
			return err
		}
		total = n
		return nil
	})
	g.Go(func() error {
		rows, err := s.productRepo.FindProducts(gctx, query)
		if err != nil {
			return err
		}
		records = rows
		return nil
	})

	if err := g.Wait(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ProductListResult{}, ctxErr
		}
		log.Printf("ProductService.GetProducts: %v", err)
		return ProductListResult{
			Products: []catalog.ProductView{},
			Success:  false,
			Error:    FailedToFetchProducts,
		}, nil
	}

	page := catalog.Paginate(params.Page, params.Limit, total)
	return ProductListResult{
		Products:    catalog.ShapeProducts(records, s.formatPrice),
		CurrentPage: page.CurrentPage,
		TotalPages:  page.TotalPages,
		Total:       page.Total,
		Success:     true,
	}, nil
}

func (s *ProductService) GetProduct(ctx context.Context, id string) (*catalog.ProductView, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get product %s: %w", id, err)
	}
	if product == nil {
		return nil, notFound("Product not found")
	}
	view := catalog.ShapeProduct(product, s.formatPrice)
	return &view, nil
}

func (s *ProductService) CreateProduct(ctx context.Context, in ProductInput) (*catalog.ProductView, error) {
	price, err := s.checkProductInput(ctx, in, "")
	if err != nil {
		return nil, err
	}

	urls, err := uploadFiles(ctx, s.images, "products", "images", in.Images)
	if err != nil {
		return nil, err
	}

	product := &models.Product{
		Name:        strings.TrimSpace(in.Name),
		Slug:        helpers.GenerateSlug(in.Name),
		Description: strings.TrimSpace(in.Description),
		Price:       price,
		Images:      append([]string{}, urls...),
		InStock:     in.InStock,
		Brand:       optionalString(in.Brand),
		CategoryID:  optionalString(in.CategoryID),
	}
	if err := s.productRepo.Create(ctx, product); err != nil {
		discardImages(ctx, s.images, nil, urls)
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	log.Printf("ProductService: created product %s (%s)", product.ID, product.Name)
	return s.GetProduct(ctx, product.ID)
}

func (s *ProductService) UpdateProduct(ctx context.Context, id string, in ProductInput) (*catalog.ProductView, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get product %s: %w", id, err)
	}
	if product == nil {
		return nil, notFound("Product not found")
	}

	price, err := s.checkProductInput(ctx, in, id)
	if err != nil {
		return nil, err
	}

	urls, err := uploadFiles(ctx, s.images, "products", "images", in.Images)
	if err != nil {
		return nil, err
	}

	remove := make(map[string]bool, len(in.RemoveImages))
	for _, url := range in.RemoveImages {
		remove[url] = true
	}
	kept := make([]string, 0, len(product.Images)+len(urls))
	var dropped []string
	for _, url := range product.Images {
		if remove[url] {
			dropped = append(dropped, url)
			continue
		}
		kept = append(kept, url)
	}

	product.Name = strings.TrimSpace(in.Name)
	product.Slug = helpers.GenerateSlug(in.Name)
	product.Description = strings.TrimSpace(in.Description)
	product.Price = price
	product.Images = append(kept, urls...)
	product.InStock = in.InStock
	product.Brand = optionalString(in.Brand)
	product.CategoryID = optionalString(in.CategoryID)
	product.Category = nil

	if err := s.productRepo.Update(ctx, product); err != nil {
		discardImages(ctx, s.images, nil, urls)
		return nil, fmt.Errorf("failed to update product %s: %w", id, err)
	}
	discardImages(ctx, s.images, s.orphanRepo, dropped)

	return s.GetProduct(ctx, id)
}

// DeleteProduct removes the row first and its images afterwards. An image
// that cannot be deleted is recorded as an orphan instead of failing the call.
func (s *ProductService) DeleteProduct(ctx context.Context, id string) error {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get product %s: %w", id, err)
	}
	if product == nil {
		return notFound("Product not found")
	}

	if err := s.productRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete product %s: %w", id, err)
	}
	discardImages(ctx, s.images, s.orphanRepo, product.Images)

	log.Printf("ProductService: deleted product %s", id)
	return nil
}

func (s *ProductService) CountProducts(ctx context.Context) (int64, error) {
	return s.productRepo.CountAll(ctx)
}

// checkProductInput validates the form, then checks name uniqueness and
// that the category exists.
func (s *ProductService) checkProductInput(ctx context.Context, in ProductInput, excludeID string) (decimal.NullDecimal, error) {
	verr := validateStruct(in)

	var price decimal.NullDecimal
	if raw := strings.TrimSpace(in.Price); raw != "" {
		d, err := decimal.NewFromString(raw)
		switch {
		case err != nil:
			verr.Add("price", "Price must be a number.")
		case d.IsNegative():
			verr.Add("price", "Price cannot be negative.")
		default:
			price = decimal.NewNullDecimal(d.Round(2))
		}
	}
	if err := verr.orNil(); err != nil {
		return price, err
	}

	exists, err := s.productRepo.ExistsByName(ctx, in.Name, excludeID)
	if err != nil {
		return price, fmt.Errorf("failed to check product name: %w", err)
	}
	if exists {
		return price, conflict("A product named %q already exists", strings.TrimSpace(in.Name))
	}

	if categoryID := strings.TrimSpace(in.CategoryID); categoryID != "" {
		ok, err := s.categoryRepo.Exists(ctx, categoryID)
		if err != nil {
			return price, fmt.Errorf("failed to check category: %w", err)
		}
		if !ok {
			return price, notFound("Category not found")
		}
	}
	return price, nil
}

func optionalString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
