package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stamahmudtonmoy/agriculture-e-commerce-site/app/repositories"
	"github.com/stamahmudtonmoy/agriculture-e-commerce-site/app/services"
)

func newCategoryService(t *testing.T) *services.CategoryService {
	t.Helper()
	return services.NewCategoryService(repositories.NewCategoryRepository(newTestDB(t)))
}

func TestCreateCategoryDerivesSlug(t *testing.T) {
	svc := newCategoryService(t)

	category, err := svc.Create(context.Background(), "Fresh Produce")
	require.NoError(t, err)
	assert.Equal(t, "Fresh Produce", category.Name)
	assert.Equal(t, "fresh-produce", category.Slug)
}

func TestCreateCategoryRejectsDuplicateName(t *testing.T) {
	svc := newCategoryService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, "Dairy")
	require.NoError(t, err)

	_, err = svc.Create(ctx, "Dairy")
	assert.ErrorIs(t, err, services.ErrDuplicateCategory)
}

func TestCreateCategoryRequiresName(t *testing.T) {
	svc := newCategoryService(t)

	_, err := svc.Create(context.Background(), "   ")
	var ve *services.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "name")
}

func TestUpdateCategoryRecomputesSlug(t *testing.T) {
	svc := newCategoryService(t)
	ctx := context.Background()

	category, err := svc.Create(ctx, "Tools")
	require.NoError(t, err)

	updated, err := svc.Update(ctx, category.ID, "Farm Tools")
	require.NoError(t, err)
	assert.Equal(t, "farm-tools", updated.Slug)
}

func TestUpdateCategoryRejectsCollision(t *testing.T) {
	svc := newCategoryService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, "Seeds")
	require.NoError(t, err)
	second, err := svc.Create(ctx, "Dairy")
	require.NoError(t, err)

	_, err = svc.Update(ctx, second.ID, "Seeds")
	assert.ErrorIs(t, err, services.ErrDuplicateCategory)

	// Renaming to its own current name is not a collision.
	_, err = svc.Update(ctx, second.ID, "Dairy")
	assert.NoError(t, err)
}

func TestResolveBySlugAndID(t *testing.T) {
	svc := newCategoryService(t)
	ctx := context.Background()

	category, err := svc.Create(ctx, "Fertilizers")
	require.NoError(t, err)

	bySlug, err := svc.BySlug(ctx, "fertilizers")
	require.NoError(t, err)
	assert.Equal(t, category.ID, bySlug.ID)

	byID, err := svc.ByID(ctx, category.ID)
	require.NoError(t, err)
	assert.Equal(t, "Fertilizers", byID.Name)

	_, err = svc.BySlug(ctx, "nope")
	assert.ErrorIs(t, err, services.ErrNotFound)
	_, err = svc.ByID(ctx, 9999)
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestDeleteCategory(t *testing.T) {
	svc := newCategoryService(t)
	ctx := context.Background()

	category, err := svc.Create(ctx, "Doomed")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, category.ID))
	assert.ErrorIs(t, svc.Delete(ctx, category.ID), services.ErrNotFound)

	all, err := svc.All(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}
