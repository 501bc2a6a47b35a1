package usecase_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"shopd/internal/domain/model"
	repo "shopd/internal/repository"
	"shopd/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newCartUsecase() (*CartRepoMock, *CartItemRepoMock, *ProductRepoMock, *usecase.CartUsecase) {
	carts := new(CartRepoMock)
	cartItems := new(CartItemRepoMock)
	products := new(ProductRepoMock)
	return carts, cartItems, products, usecase.NewCartUsecase(carts, cartItems, products)
}

func TestGetCart_CreatesWhenMissing(t *testing.T) {
	carts, cartItems, _, uc := newCartUsecase()
	ctx := context.Background()

	carts.On("GetOrCreateByUserID", ctx, int64(1)).Return(model.Cart{ID: 7, UserID: 1}, nil)
	cartItems.On("ListByCartID", ctx, int64(7)).Return([]model.CartItem{}, nil)

	out, err := uc.GetCart(ctx, 1)

	assert.NoError(t, err)
	assert.Equal(t, int64(7), out.Cart.ID)
	assert.True(t, out.Subtotal.IsZero())
	assert.Equal(t, int64(0), out.ItemCount)
}

func TestGetCart_Subtotal(t *testing.T) {
	carts, cartItems, _, uc := newCartUsecase()
	ctx := context.Background()

	p1 := model.Product{ID: 10, Price: model.NewMoney(mustDecimal(t, "12.50")), Stock: 5}
	p2 := model.Product{ID: 20, Price: model.NewMoney(mustDecimal(t, "40.00")), Stock: 2}
	carts.On("GetOrCreateByUserID", ctx, int64(1)).Return(model.Cart{ID: 7, UserID: 1}, nil)
	cartItems.On("ListByCartID", ctx, int64(7)).Return([]model.CartItem{
		{ID: 100, CartID: 7, ProductID: 10, Product: &p1, Quantity: 2},
		{ID: 101, CartID: 7, ProductID: 20, Product: &p2, Quantity: 1},
	}, nil)

	out, err := uc.GetCart(ctx, 1)

	assert.NoError(t, err)
	assert.True(t, out.Subtotal.Equal(mustDecimal(t, "65.00")), "subtotal=%s", out.Subtotal)
	assert.Equal(t, int64(3), out.ItemCount)

	// 小計も小数2桁固定で出す
	b, err := json.Marshal(out)
	assert.NoError(t, err)
	assert.Contains(t, string(b), `"subtotal":"65.00"`)
}

func TestAddToCart_MergesQuantity(t *testing.T) {
	carts, cartItems, products, uc := newCartUsecase()
	ctx := context.Background()

	p := model.Product{ID: 10, Price: model.NewMoney(mustDecimal(t, "12.50")), Stock: 5}
	carts.On("GetOrCreateByUserID", ctx, int64(1)).Return(model.Cart{ID: 7, UserID: 1}, nil)
	products.On("FindByID", ctx, int64(10)).Return(p, nil)
	cartItems.On("ListByCartID", ctx, int64(7)).Return([]model.CartItem{
		{ID: 100, CartID: 7, ProductID: 10, Product: &p, Quantity: 2},
	}, nil)
	cartItems.On("UpsertByCartAndProduct", ctx, int64(7), int64(10), int64(3)).
		Return(model.CartItem{ID: 100, CartID: 7, ProductID: 10, Quantity: 5}, nil)

	item, err := uc.AddToCart(ctx, 1, usecase.AddCartInput{ProductID: 10, Quantity: 3})

	assert.NoError(t, err)
	assert.Equal(t, int64(5), item.Quantity)
	assert.NotNil(t, item.Product)
}

func TestAddToCart_StockLimitCountsExisting(t *testing.T) {
	carts, cartItems, products, uc := newCartUsecase()
	ctx := context.Background()

	// 既に4個入っていて在庫5なら、追加できるのは1個まで
	p := model.Product{ID: 10, Price: model.NewMoney(mustDecimal(t, "12.50")), Stock: 5}
	carts.On("GetOrCreateByUserID", ctx, int64(1)).Return(model.Cart{ID: 7, UserID: 1}, nil)
	products.On("FindByID", ctx, int64(10)).Return(p, nil)
	cartItems.On("ListByCartID", ctx, int64(7)).Return([]model.CartItem{
		{ID: 100, CartID: 7, ProductID: 10, Product: &p, Quantity: 4},
	}, nil)

	_, err := uc.AddToCart(ctx, 1, usecase.AddCartInput{ProductID: 10, Quantity: 2})

	assertErrContains(t, err, "Only 5 items available in stock")
	cartItems.AssertNotCalled(t, "UpsertByCartAndProduct", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAddToCart_ProductNotFound(t *testing.T) {
	carts, _, products, uc := newCartUsecase()
	ctx := context.Background()

	carts.On("GetOrCreateByUserID", ctx, int64(1)).Return(model.Cart{ID: 7, UserID: 1}, nil)
	products.On("FindByID", ctx, int64(99)).Return(model.Product{}, repo.ErrNotFound)

	_, err := uc.AddToCart(ctx, 1, usecase.AddCartInput{ProductID: 99, Quantity: 1})

	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Status)
}

func TestAddToCart_QuantityRange(t *testing.T) {
	_, _, _, uc := newCartUsecase()
	ctx := context.Background()

	_, err := uc.AddToCart(ctx, 1, usecase.AddCartInput{ProductID: 10, Quantity: 0})
	assertErrContains(t, err, "quantity must be between 1 and 100")

	_, err = uc.AddToCart(ctx, 1, usecase.AddCartInput{ProductID: 10, Quantity: 101})
	assertErrContains(t, err, "quantity must be between 1 and 100")
}

func TestUpdateCartItem_ForbiddenForOtherUser(t *testing.T) {
	_, cartItems, _, uc := newCartUsecase()
	ctx := context.Background()

	cartItems.On("FindByID", ctx, int64(100)).Return(model.CartItem{ID: 100, CartID: 7, ProductID: 10, Quantity: 1}, nil)
	cartItems.On("IsOwnedByUser", ctx, int64(100), int64(2)).Return(false, nil)

	_, err := uc.UpdateCartItem(ctx, 2, 100, 3)

	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusForbidden, he.Status)
	cartItems.AssertNotCalled(t, "UpdateQuantity", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateCartItem_NotFound(t *testing.T) {
	_, cartItems, _, uc := newCartUsecase()
	ctx := context.Background()

	// 存在しない明細IDは所有チェックより先に404
	cartItems.On("FindByID", ctx, int64(999)).Return(model.CartItem{}, repo.ErrNotFound)

	_, err := uc.UpdateCartItem(ctx, 1, 999, 3)

	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Status)
	cartItems.AssertNotCalled(t, "IsOwnedByUser", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateCartItem_StockCheck(t *testing.T) {
	_, cartItems, products, uc := newCartUsecase()
	ctx := context.Background()

	cartItems.On("IsOwnedByUser", ctx, int64(100), int64(1)).Return(true, nil)
	cartItems.On("FindByID", ctx, int64(100)).Return(model.CartItem{ID: 100, CartID: 7, ProductID: 10, Quantity: 1}, nil)
	products.On("FindByID", ctx, int64(10)).Return(model.Product{ID: 10, Price: model.NewMoney(mustDecimal(t, "12.50")), Stock: 2}, nil)

	_, err := uc.UpdateCartItem(ctx, 1, 100, 3)

	assertErrContains(t, err, "Only 2 items available in stock")
	cartItems.AssertNotCalled(t, "UpdateQuantity", mock.Anything, mock.Anything, mock.Anything)
}

func TestDeleteCartItem_Forbidden(t *testing.T) {
	_, cartItems, _, uc := newCartUsecase()
	ctx := context.Background()

	cartItems.On("FindByID", ctx, int64(100)).Return(model.CartItem{ID: 100, CartID: 7, ProductID: 10, Quantity: 1}, nil)
	cartItems.On("IsOwnedByUser", ctx, int64(100), int64(2)).Return(false, nil)

	_, err := uc.DeleteCartItem(ctx, 2, 100)

	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusForbidden, he.Status)
	cartItems.AssertNotCalled(t, "DeleteByID", mock.Anything, mock.Anything)
}

func TestDeleteCartItem_NotFound(t *testing.T) {
	_, cartItems, _, uc := newCartUsecase()
	ctx := context.Background()

	cartItems.On("FindByID", ctx, int64(999)).Return(model.CartItem{}, repo.ErrNotFound)

	_, err := uc.DeleteCartItem(ctx, 1, 999)

	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Status)
	cartItems.AssertNotCalled(t, "IsOwnedByUser", mock.Anything, mock.Anything, mock.Anything)
}

func TestClearCart_IdempotentWithoutCart(t *testing.T) {
	carts, _, _, uc := newCartUsecase()
	ctx := context.Background()

	carts.On("FindByUserID", ctx, int64(1)).Return(model.Cart{}, repo.ErrNotFound)

	err := uc.ClearCart(ctx, 1)

	assert.NoError(t, err)
	carts.AssertNotCalled(t, "Clear", mock.Anything, mock.Anything)
}

func TestClearCart_DeletesItems(t *testing.T) {
	carts, _, _, uc := newCartUsecase()
	ctx := context.Background()

	carts.On("FindByUserID", ctx, int64(1)).Return(model.Cart{ID: 7, UserID: 1}, nil)
	carts.On("Clear", ctx, int64(7)).Return(nil)

	err := uc.ClearCart(ctx, 1)

	assert.NoError(t, err)
	carts.AssertExpectations(t)
}
