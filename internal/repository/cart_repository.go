package repository

import (
	"context"

	"shopd/internal/domain/model"
)

type CartRepository interface {
	// ユーザーのカートを取得し、無ければ作成
	GetOrCreateByUserID(ctx context.Context, userID int64) (model.Cart, error)

	FindByUserID(ctx context.Context, userID int64) (model.Cart, error)

	// 指定カートの明細を全削除（カート行自体は残す）
	Clear(ctx context.Context, cartID int64) error
}

type CartItemRepository interface {
	// Productを（Categoryごと）付けて一覧取得
	ListByCartID(ctx context.Context, cartID int64) ([]model.CartItem, error)

	// 同一商品は数量加算
	UpsertByCartAndProduct(ctx context.Context, cartID int64, productID int64, addQty int64) (model.CartItem, error)

	FindByID(ctx context.Context, cartItemID int64) (model.CartItem, error)
	UpdateQuantity(ctx context.Context, cartItemID int64, qty int64) error
	DeleteByID(ctx context.Context, cartItemID int64) error

	// 明細の持ち主チェック（明細→カート→ユーザー）
	IsOwnedByUser(ctx context.Context, cartItemID int64, userID int64) (bool, error)
}
