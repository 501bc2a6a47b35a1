package usecase_test

import (
	"context"
	"net/http"
	"testing"

	"shopd/internal/domain/model"
	repo "shopd/internal/repository"
	"shopd/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newCategoryUsecase() (*CategoryRepoMock, *ProductRepoMock, *usecase.CategoryUsecase) {
	categories := new(CategoryRepoMock)
	products := new(ProductRepoMock)
	return categories, products, usecase.NewCategoryUsecase(categories, products)
}

func TestCategoryCreate_DuplicateName(t *testing.T) {
	categories, _, uc := newCategoryUsecase()
	ctx := context.Background()

	categories.On("Create", ctx, mock.Anything).Return(model.Category{}, repo.ErrDuplicate)

	_, err := uc.Create(ctx, "coffee")

	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusConflict, he.Status)
	assertErrContains(t, err, "category name already exists")
}

func TestCategoryCreate_TrimsName(t *testing.T) {
	categories, _, uc := newCategoryUsecase()
	ctx := context.Background()

	categories.On("Create", ctx, mock.MatchedBy(func(c model.Category) bool {
		return c.Name == "coffee"
	})).Return(model.Category{ID: 3, Name: "coffee"}, nil)

	c, err := uc.Create(ctx, "  coffee  ")

	assert.NoError(t, err)
	assert.Equal(t, int64(3), c.ID)
}

func TestCategoryDelete_ConflictWhenReferenced(t *testing.T) {
	categories, products, uc := newCategoryUsecase()
	ctx := context.Background()

	products.On("CountByCategoryID", ctx, int64(3)).Return(int64(2), nil)

	err := uc.Delete(ctx, 3)

	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusConflict, he.Status)
	assertErrContains(t, err, "category is referenced by products")
	categories.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestCategoryDelete_Success(t *testing.T) {
	categories, products, uc := newCategoryUsecase()
	ctx := context.Background()

	products.On("CountByCategoryID", ctx, int64(3)).Return(int64(0), nil)
	categories.On("Delete", ctx, int64(3)).Return(nil)

	err := uc.Delete(ctx, 3)

	assert.NoError(t, err)
	categories.AssertExpectations(t)
}

func TestCategoryGet_NotFound(t *testing.T) {
	categories, _, uc := newCategoryUsecase()
	ctx := context.Background()

	categories.On("FindByID", ctx, int64(99)).Return(model.Category{}, repo.ErrNotFound)

	_, err := uc.Get(ctx, 99)

	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Status)
}
