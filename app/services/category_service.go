package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gosimple/slug"
	"gorm.io/gorm"

	"github.com/stamahmudtonmoy/agriculture-e-commerce-site/app/models"
	"github.com/stamahmudtonmoy/agriculture-e-commerce-site/app/repositories"
	"github.com/stamahmudtonmoy/agriculture-e-commerce-site/pkg/cache"
	"github.com/stamahmudtonmoy/agriculture-e-commerce-site/pkg/event"
)

const (
	categoryCacheKey = "categories:all"
	categoryCacheTTL = 10 * time.Minute
)

// CategoryService maps category identifiers and slugs to canonical records
// and handles admin category management.
type CategoryService struct {
	categories *repositories.CategoryRepository
}

func NewCategoryService(categories *repositories.CategoryRepository) *CategoryService {
	return &CategoryService{categories: categories}
}

// All returns every category, served from cache when warm.
func (s *CategoryService) All(ctx context.Context) ([]models.Category, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var cached []models.Category
	if cache.Get(ctx, categoryCacheKey, &cached) {
		return cached, nil
	}

	categories, err := s.categories.All(ctx)
	if err != nil {
		return nil, err
	}

	_ = cache.Set(ctx, categoryCacheKey, categories, categoryCacheTTL)
	return categories, nil
}

// BySlug resolves a category slug to its canonical record.
func (s *CategoryService) BySlug(ctx context.Context, sl string) (models.Category, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	category, err := s.categories.FindBySlug(ctx, sl)
	return category, notFound(err)
}

// ByID resolves a category id to its canonical record.
func (s *CategoryService) ByID(ctx context.Context, id uint) (models.Category, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	category, err := s.categories.FindByID(ctx, id)
	return category, notFound(err)
}

// Create adds a category. The name must be unique and non-empty; the slug is
// derived from the name.
func (s *CategoryService) Create(ctx context.Context, name string) (models.Category, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	name = strings.TrimSpace(name)
	if name == "" {
		return models.Category{}, NewValidationError(map[string]string{
			"name": "The name field is required.",
		})
	}

	if _, err := s.categories.FindByName(ctx, name); err == nil {
		return models.Category{}, ErrDuplicateCategory
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Category{}, err
	}

	category := models.Category{Name: name, Slug: slug.Make(name)}
	if err := s.categories.Create(ctx, &category); err != nil {
		return models.Category{}, err
	}

	s.invalidate(ctx)
	event.FireAsync(event.CategoryCreated, category)
	return category, nil
}

// Update renames a category, recomputing its slug. The new name must not
// collide with another category.
func (s *CategoryService) Update(ctx context.Context, id uint, name string) (models.Category, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	name = strings.TrimSpace(name)
	if name == "" {
		return models.Category{}, NewValidationError(map[string]string{
			"name": "The name field is required.",
		})
	}

	category, err := s.categories.FindByID(ctx, id)
	if err != nil {
		return models.Category{}, notFound(err)
	}

	if existing, err := s.categories.FindByName(ctx, name); err == nil && existing.ID != id {
		return models.Category{}, ErrDuplicateCategory
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Category{}, err
	}

	category.Name = name
	category.Slug = slug.Make(name)
	if err := s.categories.Update(ctx, &category); err != nil {
		return models.Category{}, err
	}

	s.invalidate(ctx)
	event.FireAsync(event.CategoryUpdated, category)
	return category, nil
}

// Delete removes a category. Products referencing it keep their (now
// dangling) category id; there is no cascade.
func (s *CategoryService) Delete(ctx context.Context, id uint) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	if _, err := s.categories.FindByID(ctx, id); err != nil {
		return notFound(err)
	}

	if err := s.categories.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidate(ctx)
	event.FireAsync(event.CategoryDeleted, id)
	return nil
}

func (s *CategoryService) invalidate(ctx context.Context) {
	_ = cache.Del(ctx, categoryCacheKey)
	_ = cache.DelPattern(ctx, "catalog:*")
}
