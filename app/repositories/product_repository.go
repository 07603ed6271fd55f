package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/stamahmudtonmoy/agriculture-e-commerce-site/app/models"
	"github.com/stamahmudtonmoy/agriculture-e-commerce-site/pkg/metrics"
	"github.com/stamahmudtonmoy/agriculture-e-commerce-site/pkg/orm"
)

// ProductRepository handles database operations for Product.
//
// List-shaped queries are ordered newest-first by creation time so paginated
// pages are stable and disjoint.
type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// List returns one page of products, newest-first, 1-indexed.
func (r *ProductRepository) List(ctx context.Context, page, perPage int) ([]models.Product, error) {
	defer metrics.ObserveDBQuery("product.list", time.Now())

	var products []models.Product
	err := r.db.WithContext(ctx).
		Scopes(orm.Paginate(page, perPage)).
		Order("created_at DESC").
		Find(&products).Error
	return products, err
}

// Count returns the total number of products.
func (r *ProductRepository) Count(ctx context.Context) (int64, error) {
	defer metrics.ObserveDBQuery("product.count", time.Now())

	var total int64
	err := r.db.WithContext(ctx).Model(&models.Product{}).Count(&total).Error
	return total, err
}

// FindBySlug looks up a product by its slug.
func (r *ProductRepository) FindBySlug(ctx context.Context, slug string) (models.Product, error) {
	defer metrics.ObserveDBQuery("product.find_by_slug", time.Now())

	var product models.Product
	err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&product).Error
	return product, err
}

// FindByID looks up a product by primary key.
func (r *ProductRepository) FindByID(ctx context.Context, id uint) (models.Product, error) {
	defer metrics.ObserveDBQuery("product.find_by_id", time.Now())

	var product models.Product
	err := r.db.WithContext(ctx).First(&product, id).Error
	return product, err
}

// Search matches keyword case-insensitively against name or description.
// An empty keyword matches everything.
func (r *ProductRepository) Search(ctx context.Context, keyword string) ([]models.Product, error) {
	defer metrics.ObserveDBQuery("product.search", time.Now())

	var products []models.Product
	q := r.db.WithContext(ctx).Order("created_at DESC")
	if keyword != "" {
		pattern := "%" + keyword + "%"
		q = q.Where(
			"LOWER(name) LIKE LOWER(?) OR LOWER(description) LIKE LOWER(?)",
			pattern, pattern,
		)
	}
	err := q.Find(&products).Error
	return products, err
}

// Filter applies the category-set and inclusive price-range predicates
// conjunctively. A nil/empty axis means no constraint on that axis.
func (r *ProductRepository) Filter(ctx context.Context, categoryIDs []uint, minPrice, maxPrice *float64) ([]models.Product, error) {
	defer metrics.ObserveDBQuery("product.filter", time.Now())

	q := r.db.WithContext(ctx).Order("created_at DESC")
	if len(categoryIDs) > 0 {
		q = q.Where("category_id IN ?", categoryIDs)
	}
	if minPrice != nil {
		q = q.Where("price >= ?", *minPrice)
	}
	if maxPrice != nil {
		q = q.Where("price <= ?", *maxPrice)
	}

	var products []models.Product
	err := q.Find(&products).Error
	return products, err
}

// Related returns up to limit products sharing categoryID, excluding
// productID itself.
func (r *ProductRepository) Related(ctx context.Context, productID, categoryID uint, limit int) ([]models.Product, error) {
	defer metrics.ObserveDBQuery("product.related", time.Now())

	var products []models.Product
	err := r.db.WithContext(ctx).
		Where("category_id = ? AND id <> ?", categoryID, productID).
		Order("created_at DESC").
		Limit(limit).
		Find(&products).Error
	return products, err
}

// ByCategory returns all products referencing categoryID, newest-first.
func (r *ProductRepository) ByCategory(ctx context.Context, categoryID uint) ([]models.Product, error) {
	defer metrics.ObserveDBQuery("product.by_category", time.Now())

	var products []models.Product
	err := r.db.WithContext(ctx).
		Where("category_id = ?", categoryID).
		Order("created_at DESC").
		Find(&products).Error
	return products, err
}

// Create persists a new product.
func (r *ProductRepository) Create(ctx context.Context, product *models.Product) error {
	defer metrics.ObserveDBQuery("product.create", time.Now())
	return r.db.WithContext(ctx).Create(product).Error
}

// Update persists changes to an existing product.
func (r *ProductRepository) Update(ctx context.Context, product *models.Product) error {
	defer metrics.ObserveDBQuery("product.update", time.Now())
	return r.db.WithContext(ctx).Save(product).Error
}

// Delete hard-deletes a product.
func (r *ProductRepository) Delete(ctx context.Context, id uint) error {
	defer metrics.ObserveDBQuery("product.delete", time.Now())
	return r.db.WithContext(ctx).Unscoped().Delete(&models.Product{}, id).Error
}
