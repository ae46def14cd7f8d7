package repository

import (
	"context"
	"testing"
	"time"

	"cafe-site/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryRepository_CRUD(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewCategoryRepository(pool, zerolog.Nop())
	ctx := context.Background()
	now := time.Now()

	seedCategories(t, pool, []model.Category{
		{ID: "C2", Name: "Pastries", Slug: "pastries", SortOrder: 1, CreatedAt: now},
		{ID: "C1", Name: "Coffee", Slug: "coffee", SortOrder: 1, CreatedAt: now},
		{ID: "C3", Name: "Seasonal", Slug: "seasonal", SortOrder: 0, CreatedAt: now},
	})

	categories, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, categories, 3)
	assert.Equal(t, []string{"C3", "C1", "C2"}, []string{categories[0].ID, categories[1].ID, categories[2].ID})

	got, err := repo.GetByID(ctx, "C1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "coffee", got.Slug)

	got, err = repo.GetByID(ctx, "missing")
	require.NoError(t, err)
	assert.Nil(t, got)

	renamed := model.Category{ID: "C1", Name: "Hot Drinks", Slug: "hot-drinks", SortOrder: 5}
	ok, err := repo.Update(ctx, &renamed)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.False(t, renamed.CreatedAt.IsZero())

	ok, err = repo.Update(ctx, &model.Category{ID: "missing", Name: "x", Slug: "x"})
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = repo.Delete(ctx, "C3")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.Delete(ctx, "C3")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCategoryRepository_DuplicateSlug(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewCategoryRepository(pool, zerolog.Nop())
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &model.Category{ID: "C1", Name: "Coffee", Slug: "coffee", CreatedAt: time.Now()}))

	err := repo.Create(ctx, &model.Category{ID: "C2", Name: "Coffee", Slug: "coffee", CreatedAt: time.Now()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create category")
}
