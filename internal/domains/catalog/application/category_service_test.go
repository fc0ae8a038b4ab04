package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalogmemory "github.com/Apurer/go-gin-commerce-api/internal/domains/catalog/adapters/memory"
	"github.com/Apurer/go-gin-commerce-api/internal/domains/catalog/application/types"
	"github.com/Apurer/go-gin-commerce-api/internal/shared/domainerr"
)

func TestCategoryService_Lifecycle(t *testing.T) {
	svc := NewCategoryService(catalogmemory.NewCategoryRepository())
	ctx := context.Background()

	saved, err := svc.Save(ctx, types.CategoryDTO{CategoryID: 12, CategoryTitle: "Books", ImageURL: "books.png"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), saved.CategoryID)

	updated, err := svc.Update(ctx, types.CategoryDTO{CategoryID: saved.CategoryID, CategoryTitle: "Novels"})
	require.NoError(t, err)
	assert.Equal(t, "Novels", updated.CategoryTitle)
	assert.Empty(t, updated.ImageURL)

	all, err := svc.FindAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []types.CategoryDTO{updated}, all)

	require.NoError(t, svc.DeleteByID(ctx, saved.CategoryID))
	_, err = svc.FindByID(ctx, saved.CategoryID)
	require.ErrorIs(t, err, domainerr.ErrNotFound)
}

func TestCategoryService_NotFound(t *testing.T) {
	svc := NewCategoryService(catalogmemory.NewCategoryRepository())
	ctx := context.Background()

	_, err := svc.FindByID(ctx, 999999)
	require.ErrorIs(t, err, domainerr.ErrNotFound)
	assert.Contains(t, err.Error(), "999999")

	err = svc.DeleteByID(ctx, 999999)
	require.ErrorIs(t, err, domainerr.ErrNotFound)

	_, err = svc.Update(ctx, types.CategoryDTO{CategoryID: 999999, CategoryTitle: "ghost"})
	require.ErrorIs(t, err, domainerr.ErrNotFound)

	_, err = svc.Update(ctx, types.CategoryDTO{CategoryTitle: "no id"})
	require.ErrorIs(t, err, ErrInvalidInput)
}
