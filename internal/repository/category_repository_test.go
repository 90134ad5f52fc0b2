package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryRepository_ListWithProducts(t *testing.T) {
	db := seededDB(t)
	repo := NewGormCategoryRepository(db)
	createProduct(t, db, "X-Tudo", 1)
	createProduct(t, db, "Americano", 1)
	createProduct(t, db, "Suco", 4)

	categories, err := repo.ListWithProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, categories, 4)

	assert.Equal(t, "Lanches", categories[0].Name)
	require.Len(t, categories[0].Products, 2)
	assert.Equal(t, "Americano", categories[0].Products[0].Name, "products sorted by name")
	assert.Equal(t, "X-Tudo", categories[0].Products[1].Name)
	assert.Empty(t, categories[1].Products)
	assert.Len(t, categories[3].Products, 1)
}

func TestCategoryRepository_GetAndUpdateImage(t *testing.T) {
	repo := NewGormCategoryRepository(seededDB(t))
	ctx := context.Background()

	require.NoError(t, repo.UpdateImage(ctx, 2, "abc.png"))

	got, err := repo.GetByID(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "Hot Dog", got.Name)
	assert.Equal(t, "abc.png", got.ImageURL)

	_, err = repo.GetByID(ctx, 42)
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}
