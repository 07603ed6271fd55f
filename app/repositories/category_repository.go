package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/stamahmudtonmoy/agriculture-e-commerce-site/app/models"
	"github.com/stamahmudtonmoy/agriculture-e-commerce-site/pkg/metrics"
)

// CategoryRepository handles database operations for Category.
type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// All returns every category, unordered.
func (r *CategoryRepository) All(ctx context.Context) ([]models.Category, error) {
	defer metrics.ObserveDBQuery("category.all", time.Now())

	var categories []models.Category
	err := r.db.WithContext(ctx).Find(&categories).Error
	return categories, err
}

// FindBySlug looks up a category by its slug.
func (r *CategoryRepository) FindBySlug(ctx context.Context, slug string) (models.Category, error) {
	defer metrics.ObserveDBQuery("category.find_by_slug", time.Now())

	var category models.Category
	err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&category).Error
	return category, err
}

// FindByID looks up a category by primary key.
func (r *CategoryRepository) FindByID(ctx context.Context, id uint) (models.Category, error) {
	defer metrics.ObserveDBQuery("category.find_by_id", time.Now())

	var category models.Category
	err := r.db.WithContext(ctx).First(&category, id).Error
	return category, err
}

// FindByName looks up a category by exact name.
func (r *CategoryRepository) FindByName(ctx context.Context, name string) (models.Category, error) {
	defer metrics.ObserveDBQuery("category.find_by_name", time.Now())

	var category models.Category
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&category).Error
	return category, err
}

// Create persists a new category.
func (r *CategoryRepository) Create(ctx context.Context, category *models.Category) error {
	defer metrics.ObserveDBQuery("category.create", time.Now())
	return r.db.WithContext(ctx).Create(category).Error
}

// Update persists changes to an existing category.
func (r *CategoryRepository) Update(ctx context.Context, category *models.Category) error {
	defer metrics.ObserveDBQuery("category.update", time.Now())
	return r.db.WithContext(ctx).Save(category).Error
}

// Delete hard-deletes a category. Products referencing it are left alone.
func (r *CategoryRepository) Delete(ctx context.Context, id uint) error {
	defer metrics.ObserveDBQuery("category.delete", time.Now())
	return r.db.WithContext(ctx).Unscoped().Delete(&models.Category{}, id).Error
}
