package services_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/stamahmudtonmoy/agriculture-e-commerce-site/app/models"
	"github.com/stamahmudtonmoy/agriculture-e-commerce-site/app/repositories"
	"github.com/stamahmudtonmoy/agriculture-e-commerce-site/app/services"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	// A pooled second connection would get its own empty in-memory DB.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.Category{}, &models.Product{}, &models.Order{},
	))
	return db
}

func newCatalog(t *testing.T) (*services.CatalogService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	svc := services.NewCatalogService(
		repositories.NewProductRepository(db),
		repositories.NewCategoryRepository(db),
	)
	return svc, db
}

// seedProduct inserts a product with an explicit creation time so
// newest-first ordering is deterministic.
func seedProduct(t *testing.T, db *gorm.DB, name string, categoryID uint, price float64, createdAt time.Time) models.Product {
	t.Helper()

	p := models.Product{
		Model:       gorm.Model{CreatedAt: createdAt},
		Name:        name,
		Slug:        fmt.Sprintf("%s-%d", name, createdAt.UnixNano()),
		Description: "description of " + name,
		Price:       price,
		Quantity:    10,
		CategoryID:  categoryID,
	}
	require.NoError(t, db.Create(&p).Error)
	return p
}

func seedCategory(t *testing.T, db *gorm.DB, name, slug string) models.Category {
	t.Helper()
	c := models.Category{Name: name, Slug: slug}
	require.NoError(t, db.Create(&c).Error)
	return c
}

func ptrF(f float64) *float64 { return &f }
func ptrI(i int) *int         { return &i }
func ptrU(u uint) *uint       { return &u }

// ─── Pagination ──────────────────────────────────────────────────────────────

func TestListProductsPagination(t *testing.T) {
	svc, db := newCatalog(t)
	ctx := context.Background()
	cat := seedCategory(t, db, "Seeds", "seeds")

	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 14; i++ {
		seedProduct(t, db, fmt.Sprintf("product-%02d", i), cat.ID, 10, base.Add(time.Duration(i)*time.Minute))
	}

	page1, err := svc.ListProducts(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, page1, services.PageSize)

	// Newest first: product-13 leads.
	assert.Equal(t, "product-13", page1[0].Name)

	page2, err := svc.ListProducts(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, page2, services.PageSize)

	page3, err := svc.ListProducts(ctx, 3)
	require.NoError(t, err)
	assert.Len(t, page3, 2)

	// Pages are disjoint and cover everything exactly once.
	seen := map[uint]bool{}
	for _, p := range append(append(page1, page2...), page3...) {
		assert.False(t, seen[p.ID], "product %d appeared twice", p.ID)
		seen[p.ID] = true
	}
	assert.Len(t, seen, 14)

	// Ordering is newest-first across the whole sequence.
	all := append(append(page1, page2...), page3...)
	for i := 1; i < len(all); i++ {
		assert.False(t, all[i].CreatedAt.After(all[i-1].CreatedAt))
	}
}

func TestListProductsPastEndIsEmpty(t *testing.T) {
	svc, db := newCatalog(t)
	cat := seedCategory(t, db, "Seeds", "seeds")
	seedProduct(t, db, "lone", cat.ID, 5, time.Now())

	products, err := svc.ListProducts(context.Background(), 99)
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestCountMatchesPages(t *testing.T) {
	svc, db := newCatalog(t)
	ctx := context.Background()
	cat := seedCategory(t, db, "Seeds", "seeds")

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 9; i++ {
		seedProduct(t, db, fmt.Sprintf("p%d", i), cat.ID, 1, base.Add(time.Duration(i)*time.Second))
	}

	total, err := svc.CountProducts(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 9, total)

	var accumulated int
	for page := 1; ; page++ {
		products, err := svc.ListProducts(ctx, page)
		require.NoError(t, err)
		if len(products) == 0 {
			break
		}
		accumulated += len(products)
	}
	assert.EqualValues(t, total, accumulated)
}

// ─── Search ──────────────────────────────────────────────────────────────────

func TestSearchMatchesNameOrDescription(t *testing.T) {
	svc, db := newCatalog(t)
	ctx := context.Background()
	cat := seedCategory(t, db, "Tools", "tools")

	now := time.Now()
	seedProduct(t, db, "Steel Shovel", cat.ID, 15, now)
	hoe := models.Product{
		Model:       gorm.Model{CreatedAt: now},
		Name:        "Garden Hoe",
		Slug:        "garden-hoe",
		Description: "A sturdy shovel alternative",
		Price:       12,
		Quantity:    3,
		CategoryID:  cat.ID,
	}
	require.NoError(t, db.Create(&hoe).Error)
	seedProduct(t, db, "Watering Can", cat.ID, 8, now)

	results, err := svc.SearchProducts(ctx, "SHOVEL")
	require.NoError(t, err)
	require.Len(t, results, 2)
	names := []string{results[0].Name, results[1].Name}
	assert.Contains(t, names, "Steel Shovel")
	assert.Contains(t, names, "Garden Hoe")
}

func TestSearchEmptyKeywordMatchesAll(t *testing.T) {
	// Pins the documented ambiguity: an empty keyword is match-all.
	svc, db := newCatalog(t)
	cat := seedCategory(t, db, "Tools", "tools")
	seedProduct(t, db, "a", cat.ID, 1, time.Now())
	seedProduct(t, db, "b", cat.ID, 2, time.Now())

	results, err := svc.SearchProducts(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, results, 2)
}

// ─── Filters ─────────────────────────────────────────────────────────────────

func TestFilterByCategoryAndPrice(t *testing.T) {
	svc, db := newCatalog(t)
	ctx := context.Background()
	c1 := seedCategory(t, db, "Seeds", "seeds")
	c2 := seedCategory(t, db, "Dairy", "dairy")
	c3 := seedCategory(t, db, "Tools", "tools")

	now := time.Now()
	inBoth := seedProduct(t, db, "match", c1.ID, 25, now)
	seedProduct(t, db, "too-cheap", c1.ID, 5, now)
	seedProduct(t, db, "wrong-category", c3.ID, 25, now)
	alsoIn := seedProduct(t, db, "edge-price", c2.ID, 50, now)

	results, err := svc.FilterProducts(ctx, services.ProductFilter{
		CategoryIDs: []uint{c1.ID, c2.ID},
		PriceRange:  &services.PriceRange{Min: 10, Max: 50},
	})
	require.NoError(t, err)
	require.Len(t, results, 2)

	ids := []uint{results[0].ID, results[1].ID}
	assert.Contains(t, ids, inBoth.ID)
	assert.Contains(t, ids, alsoIn.ID) // inclusive upper bound
}

func TestFilterEmptyCategoriesIgnoresCategoryAxis(t *testing.T) {
	svc, db := newCatalog(t)
	c1 := seedCategory(t, db, "Seeds", "seeds")
	c2 := seedCategory(t, db, "Dairy", "dairy")

	now := time.Now()
	seedProduct(t, db, "cheap", c1.ID, 5, now)
	seedProduct(t, db, "mid", c2.ID, 30, now)
	seedProduct(t, db, "rich", c1.ID, 300, now)

	results, err := svc.FilterProducts(context.Background(), services.ProductFilter{
		PriceRange: &services.PriceRange{Min: 10, Max: 50},
	})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "mid", results[0].Name)
}

func TestFilterNoConstraintsReturnsEverything(t *testing.T) {
	svc, db := newCatalog(t)
	cat := seedCategory(t, db, "Seeds", "seeds")
	seedProduct(t, db, "a", cat.ID, 1, time.Now())
	seedProduct(t, db, "b", cat.ID, 2, time.Now())

	results, err := svc.FilterProducts(context.Background(), services.ProductFilter{})
	require.NoError(t, err)
	assert.Len(t, results, 2)
}

// ─── Related ─────────────────────────────────────────────────────────────────

func TestRelatedProducts(t *testing.T) {
	svc, db := newCatalog(t)
	ctx := context.Background()
	cat := seedCategory(t, db, "Seeds", "seeds")
	other := seedCategory(t, db, "Tools", "tools")

	now := time.Now()
	self := seedProduct(t, db, "self", cat.ID, 10, now)
	for i := 0; i < 5; i++ {
		seedProduct(t, db, fmt.Sprintf("sibling-%d", i), cat.ID, 10, now.Add(time.Duration(i)*time.Second))
	}
	seedProduct(t, db, "unrelated", other.ID, 10, now)

	related, err := svc.RelatedProducts(ctx, self.ID, cat.ID)
	require.NoError(t, err)
	assert.Len(t, related, 3)
	for _, p := range related {
		assert.NotEqual(t, self.ID, p.ID)
		assert.Equal(t, cat.ID, p.CategoryID)
	}
}

// ─── Single / by category ────────────────────────────────────────────────────

func TestGetProductBySlug(t *testing.T) {
	svc, db := newCatalog(t)
	cat := seedCategory(t, db, "Seeds", "seeds")
	p := seedProduct(t, db, "findme", cat.ID, 9, time.Now())

	got, err := svc.GetProduct(context.Background(), p.Slug)
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)

	_, err = svc.GetProduct(context.Background(), "no-such-slug")
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestProductsByCategory(t *testing.T) {
	svc, db := newCatalog(t)
	cat := seedCategory(t, db, "Dairy", "dairy")
	other := seedCategory(t, db, "Seeds", "seeds")
	seedProduct(t, db, "milk", cat.ID, 3, time.Now())
	seedProduct(t, db, "ghee", cat.ID, 12, time.Now())
	seedProduct(t, db, "paddy", other.ID, 2, time.Now())

	category, products, err := svc.ProductsByCategory(context.Background(), "dairy")
	require.NoError(t, err)
	assert.Equal(t, cat.ID, category.ID)
	assert.Len(t, products, 2)

	_, _, err = svc.ProductsByCategory(context.Background(), "missing")
	assert.ErrorIs(t, err, services.ErrNotFound)
}

// ─── Admin writes ────────────────────────────────────────────────────────────

func TestCreateProductValidation(t *testing.T) {
	svc, _ := newCatalog(t)

	_, err := svc.CreateProduct(context.Background(), services.ProductInput{})
	var ve *services.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "name")
	assert.Contains(t, ve.Fields, "description")
	assert.Contains(t, ve.Fields, "price")
	assert.Contains(t, ve.Fields, "quantity")
	assert.Contains(t, ve.Fields, "category")
}

func TestCreateProductRejectsNegatives(t *testing.T) {
	svc, db := newCatalog(t)
	cat := seedCategory(t, db, "Seeds", "seeds")

	_, err := svc.CreateProduct(context.Background(), services.ProductInput{
		Name:        "bad",
		Description: "bad",
		Price:       ptrF(-1),
		Quantity:    ptrI(-2),
		CategoryID:  ptrU(cat.ID),
	})
	var ve *services.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "price")
	assert.Contains(t, ve.Fields, "quantity")
}

func TestCreateProductRejectsOversizedPhoto(t *testing.T) {
	svc, db := newCatalog(t)
	cat := seedCategory(t, db, "Seeds", "seeds")

	_, err := svc.CreateProduct(context.Background(), services.ProductInput{
		Name:        "big-photo",
		Description: "too big",
		Price:       ptrF(1),
		Quantity:    ptrI(1),
		CategoryID:  ptrU(cat.ID),
		Photo:       make([]byte, 1<<20+1),
		PhotoType:   "image/jpeg",
	})
	assert.ErrorIs(t, err, services.ErrPayloadTooLarge)
}

func TestCreateProductDerivesSlug(t *testing.T) {
	svc, db := newCatalog(t)
	cat := seedCategory(t, db, "Seeds", "seeds")

	product, err := svc.CreateProduct(context.Background(), services.ProductInput{
		Name:        "Hybrid Tomato Seed",
		Description: "High yield",
		Price:       ptrF(3.5),
		Quantity:    ptrI(100),
		CategoryID:  ptrU(cat.ID),
	})
	require.NoError(t, err)
	assert.Equal(t, "hybrid-tomato-seed", product.Slug)
}

func TestUpdateProductRecomputesSlugOnRename(t *testing.T) {
	svc, db := newCatalog(t)
	cat := seedCategory(t, db, "Seeds", "seeds")
	p := seedProduct(t, db, "Old Name", cat.ID, 10, time.Now())

	updated, err := svc.UpdateProduct(context.Background(), p.ID, services.ProductInput{
		Name: "Fresh New Name",
	})
	require.NoError(t, err)
	assert.Equal(t, "fresh-new-name", updated.Slug)
	// Untouched fields survive a partial update.
	assert.Equal(t, p.Price, updated.Price)
	assert.Equal(t, p.Quantity, updated.Quantity)
}

func TestDeleteProduct(t *testing.T) {
	svc, db := newCatalog(t)
	cat := seedCategory(t, db, "Seeds", "seeds")
	p := seedProduct(t, db, "doomed", cat.ID, 10, time.Now())

	require.NoError(t, svc.DeleteProduct(context.Background(), p.ID))
	assert.ErrorIs(t, svc.DeleteProduct(context.Background(), p.ID), services.ErrNotFound)

	_, err := svc.GetProduct(context.Background(), p.Slug)
	assert.ErrorIs(t, err, services.ErrNotFound)
}

// Deleting a category leaves its products with a dangling reference. This
// pins the current behavior: no cascade, no reference guard.
func TestCategoryDeleteLeavesDanglingProductReference(t *testing.T) {
	db := newTestDB(t)
	categorySvc := services.NewCategoryService(repositories.NewCategoryRepository(db))
	catalogSvc := services.NewCatalogService(
		repositories.NewProductRepository(db),
		repositories.NewCategoryRepository(db),
	)

	cat, err := categorySvc.Create(context.Background(), "Ephemeral")
	require.NoError(t, err)
	p := seedProduct(t, db, "survivor", cat.ID, 10, time.Now())

	require.NoError(t, categorySvc.Delete(context.Background(), cat.ID))

	got, err := catalogSvc.GetProduct(context.Background(), p.Slug)
	require.NoError(t, err)
	assert.Equal(t, cat.ID, got.CategoryID)

	_, err = categorySvc.ByID(context.Background(), cat.ID)
	assert.ErrorIs(t, err, services.ErrNotFound)
}
