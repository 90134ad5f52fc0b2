package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductRepository_CreateAndGet(t *testing.T) {
	db := seededDB(t)
	repo := NewGormProductRepository(db)
	ctx := context.Background()

	p := createProduct(t, db, "X-Burger", 1)
	require.NotZero(t, p.ID)

	got, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "X-Burger", got.Name)
	assert.True(t, got.Price.Equal(price("10.50")), "price = %s", got.Price)
	assert.True(t, got.Active, "new products are active")
	assert.EqualValues(t, 1, got.CategoryID)
}

func TestProductRepository_GetByID_NotFound(t *testing.T) {
	repo := NewGormProductRepository(seededDB(t))

	_, err := repo.GetByID(context.Background(), 999)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestProductRepository_Update(t *testing.T) {
	db := seededDB(t)
	repo := NewGormProductRepository(db)
	ctx := context.Background()
	p := createProduct(t, db, "X-Burger", 1)

	p.Name = "X-Salada"
	p.Price = price("12")
	p.Description = "com alface"
	p.CategoryID = 2
	require.NoError(t, repo.Update(ctx, p))

	got, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "X-Salada", got.Name)
	assert.True(t, got.Price.Equal(price("12")))
	assert.Equal(t, "com alface", got.Description)
	assert.EqualValues(t, 2, got.CategoryID)
	assert.True(t, got.Active)
}

func TestProductRepository_ToggleActiveTwiceRestoresState(t *testing.T) {
	db := seededDB(t)
	repo := NewGormProductRepository(db)
	ctx := context.Background()
	p := createProduct(t, db, "Coca-Cola", 4)

	toggled, err := repo.ToggleActive(ctx, p.ID)
	require.NoError(t, err)
	assert.False(t, toggled.Active)

	stored, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.False(t, stored.Active)

	toggled, err = repo.ToggleActive(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, toggled.Active)

	_, err = repo.ToggleActive(ctx, 999)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestProductRepository_Count(t *testing.T) {
	db := seededDB(t)
	repo := NewGormProductRepository(db)
	ctx := context.Background()
	createProduct(t, db, "A", 1)
	b := createProduct(t, db, "B", 1)
	_, err := repo.ToggleActive(ctx, b.ID)
	require.NoError(t, err)

	total, active, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.EqualValues(t, 1, active)
}
