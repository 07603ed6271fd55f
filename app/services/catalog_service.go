package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gosimple/slug"

	"github.com/stamahmudtonmoy/agriculture-e-commerce-site/app/models"
	"github.com/stamahmudtonmoy/agriculture-e-commerce-site/app/repositories"
	"github.com/stamahmudtonmoy/agriculture-e-commerce-site/pkg/cache"
	"github.com/stamahmudtonmoy/agriculture-e-commerce-site/pkg/event"
	"github.com/stamahmudtonmoy/agriculture-e-commerce-site/pkg/metrics"
	"github.com/stamahmudtonmoy/agriculture-e-commerce-site/pkg/storage"
)

const (
	// PageSize is the fixed catalog page size.
	PageSize = 6

	// relatedLimit caps the related-products result.
	relatedLimit = 3

	// maxPhotoBytes caps uploaded product photos at 1 MB.
	maxPhotoBytes = 1 << 20

	catalogCacheTTL = 5 * time.Minute
)

// PriceRange is an inclusive [Min, Max] price filter.
type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// ProductFilter combines the category-set and price-range predicates.
// An empty axis places no constraint on that axis.
type ProductFilter struct {
	CategoryIDs []uint      `json:"categoryIds"`
	PriceRange  *PriceRange `json:"priceRange"`
}

// ProductInput is the admin create/update payload. Pointer fields are
// optional on update; nil means "leave unchanged".
type ProductInput struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       *float64 `json:"price"`
	Quantity    *int     `json:"quantity"`
	CategoryID  *uint    `json:"category"`
	Shipping    *bool    `json:"shipping"`
	Photo       []byte   `json:"photo"`
	PhotoType   string   `json:"photoType"`
}

// CatalogService answers storefront catalog queries and admin product CRUD.
// Read queries are cached in Redis; every admin write flushes the catalog
// keys and fires a change event.
type CatalogService struct {
	products   *repositories.ProductRepository
	categories *repositories.CategoryRepository
}

func NewCatalogService(products *repositories.ProductRepository, categories *repositories.CategoryRepository) *CatalogService {
	return &CatalogService{products: products, categories: categories}
}

// ─── Reads ───────────────────────────────────────────────────────────────────

// ListProducts returns one page of products, newest-first. Page is
// 1-indexed; pages past the end yield an empty slice, not an error.
func (s *CatalogService) ListProducts(ctx context.Context, page int) ([]models.Product, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	if page < 1 {
		page = 1
	}

	key := fmt.Sprintf("catalog:list:p%d", page)
	var cached []models.Product
	if cache.Get(ctx, key, &cached) {
		return cached, nil
	}

	products, err := s.products.List(ctx, page, PageSize)
	if err != nil {
		return nil, err
	}

	_ = cache.Set(ctx, key, products, catalogCacheTTL)
	return products, nil
}

// CountProducts returns the total product count.
func (s *CatalogService) CountProducts(ctx context.Context) (int64, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var cached int64
	if cache.Get(ctx, "catalog:count", &cached) {
		return cached, nil
	}

	total, err := s.products.Count(ctx)
	if err != nil {
		return 0, err
	}

	_ = cache.Set(ctx, "catalog:count", total, catalogCacheTTL)
	return total, nil
}

// GetProduct resolves a product by slug.
func (s *CatalogService) GetProduct(ctx context.Context, sl string) (models.Product, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	key := "catalog:product:" + sl
	var cached models.Product
	if cache.Get(ctx, key, &cached) {
		return cached, nil
	}

	product, err := s.products.FindBySlug(ctx, sl)
	if err != nil {
		return models.Product{}, notFound(err)
	}

	_ = cache.Set(ctx, key, product, catalogCacheTTL)
	return product, nil
}

// GetProductPhoto returns the photo bytes and content type for a product.
func (s *CatalogService) GetProductPhoto(ctx context.Context, id uint) ([]byte, string, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, "", notFound(err)
	}
	if product.PhotoPath == "" {
		return nil, "", ErrNotFound
	}

	data, err := storage.Get(ctx, product.PhotoPath)
	if err != nil {
		return nil, "", ErrNotFound
	}
	return data, product.PhotoType, nil
}

// SearchProducts matches keyword case-insensitively against product name or
// description. An empty keyword matches all products.
func (s *CatalogService) SearchProducts(ctx context.Context, keyword string) ([]models.Product, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	return s.products.Search(ctx, strings.TrimSpace(keyword))
}

// FilterProducts applies category and price predicates conjunctively.
func (s *CatalogService) FilterProducts(ctx context.Context, f ProductFilter) ([]models.Product, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var minPrice, maxPrice *float64
	if f.PriceRange != nil {
		minPrice, maxPrice = &f.PriceRange.Min, &f.PriceRange.Max
	}
	return s.products.Filter(ctx, f.CategoryIDs, minPrice, maxPrice)
}

// RelatedProducts returns up to 3 products sharing the category, never
// including the product itself.
func (s *CatalogService) RelatedProducts(ctx context.Context, productID, categoryID uint) ([]models.Product, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	return s.products.Related(ctx, productID, categoryID, relatedLimit)
}

// ProductsByCategory resolves a category slug and returns the category with
// its products.
func (s *CatalogService) ProductsByCategory(ctx context.Context, sl string) (models.Category, []models.Product, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	category, err := s.categories.FindBySlug(ctx, sl)
	if err != nil {
		return models.Category{}, nil, notFound(err)
	}

	products, err := s.products.ByCategory(ctx, category.ID)
	if err != nil {
		return models.Category{}, nil, err
	}
	return category, products, nil
}

// ─── Admin writes ────────────────────────────────────────────────────────────

// CreateProduct validates the input, stores the photo if present, and
// persists the product.
func (s *CatalogService) CreateProduct(ctx context.Context, in ProductInput) (models.Product, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	if errs := validateProductInput(in, false); len(errs) > 0 {
		return models.Product{}, NewValidationError(errs)
	}
	if len(in.Photo) > maxPhotoBytes {
		return models.Product{}, ErrPayloadTooLarge
	}

	product := models.Product{
		Name:        in.Name,
		Slug:        slug.Make(in.Name),
		Description: in.Description,
		Price:       *in.Price,
		Quantity:    *in.Quantity,
		CategoryID:  *in.CategoryID,
	}
	if in.Shipping != nil {
		product.Shipping = *in.Shipping
	}

	if err := s.products.Create(ctx, &product); err != nil {
		return models.Product{}, err
	}

	if len(in.Photo) > 0 {
		if err := s.storePhoto(ctx, &product, in.Photo, in.PhotoType); err != nil {
			return models.Product{}, err
		}
	}

	s.invalidate(ctx)
	event.FireAsync(event.ProductCreated, product)
	return product, nil
}

// UpdateProduct applies a partial update. The slug is recomputed when the
// name changes; a replacement photo overwrites the stored object.
func (s *CatalogService) UpdateProduct(ctx context.Context, id uint, in ProductInput) (models.Product, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return models.Product{}, notFound(err)
	}

	if errs := validateProductInput(in, true); len(errs) > 0 {
		return models.Product{}, NewValidationError(errs)
	}
	if len(in.Photo) > maxPhotoBytes {
		return models.Product{}, ErrPayloadTooLarge
	}

	if in.Name != "" && in.Name != product.Name {
		product.Name = in.Name
		product.Slug = slug.Make(in.Name)
	}
	if in.Description != "" {
		product.Description = in.Description
	}
	if in.Price != nil {
		product.Price = *in.Price
	}
	if in.Quantity != nil {
		product.Quantity = *in.Quantity
	}
	if in.CategoryID != nil {
		product.CategoryID = *in.CategoryID
	}
	if in.Shipping != nil {
		product.Shipping = *in.Shipping
	}

	if len(in.Photo) > 0 {
		if err := s.storePhoto(ctx, &product, in.Photo, in.PhotoType); err != nil {
			return models.Product{}, err
		}
	}

	if err := s.products.Update(ctx, &product); err != nil {
		return models.Product{}, err
	}

	s.invalidate(ctx)
	event.FireAsync(event.ProductUpdated, product)
	return product, nil
}

// DeleteProduct hard-deletes a product and its stored photo.
func (s *CatalogService) DeleteProduct(ctx context.Context, id uint) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return notFound(err)
	}

	if err := s.products.Delete(ctx, id); err != nil {
		return err
	}
	if product.PhotoPath != "" {
		_ = storage.Delete(ctx, product.PhotoPath)
	}

	s.invalidate(ctx)
	event.FireAsync(event.ProductDeleted, id)
	return nil
}

// storePhoto writes the photo to the storage disk and records its metadata
// on the product row.
func (s *CatalogService) storePhoto(ctx context.Context, product *models.Product, photo []byte, contentType string) error {
	path := fmt.Sprintf("products/%d", product.ID)
	if err := storage.Put(ctx, path, photo); err != nil {
		return err
	}

	metrics.PhotoBytes.Observe(float64(len(photo)))

	product.PhotoPath = path
	product.PhotoType = contentType
	product.PhotoSize = int64(len(photo))
	return s.products.Update(ctx, product)
}

func (s *CatalogService) invalidate(ctx context.Context) {
	_ = cache.DelPattern(ctx, "catalog:*")
}

// validateProductInput checks the required fields and non-negativity rules.
// On partial (update) input only the supplied fields are checked.
func validateProductInput(in ProductInput, partial bool) map[string]string {
	errs := make(map[string]string)

	if !partial {
		if strings.TrimSpace(in.Name) == "" {
			errs["name"] = "The name field is required."
		}
		if strings.TrimSpace(in.Description) == "" {
			errs["description"] = "The description field is required."
		}
		if in.Price == nil {
			errs["price"] = "The price field is required."
		}
		if in.Quantity == nil {
			errs["quantity"] = "The quantity field is required."
		}
		if in.CategoryID == nil {
			errs["category"] = "The category field is required."
		}
	}

	if in.Price != nil && *in.Price < 0 {
		errs["price"] = "The price must be greater than or equal to 0."
	}
	if in.Quantity != nil && *in.Quantity < 0 {
		errs["quantity"] = "The quantity must be greater than or equal to 0."
	}

	return errs
}
