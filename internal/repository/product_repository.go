package repository

import (
	"context"
	"errors"

	"shopd/internal/domain/model"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound = errors.New("not found")

	// 一意制約違反（email重複、カテゴリ名重複など）
	ErrDuplicate = errors.New("duplicate")
)

// 一覧検索の条件
type ProductListQuery struct {
	Page       int
	Limit      int
	Search     string
	CategoryID *int64
	MinPrice   *decimal.Decimal
	MaxPrice   *decimal.Decimal
	SortBy     string // created_at / price / name
	Order      string // asc / desc
}

// 商品の永続化（保存・取得）だけを約束。
type ProductRepository interface {
	List(ctx context.Context, q ProductListQuery) ([]model.Product, int64, error)
	FindByID(ctx context.Context, id int64) (model.Product, error)

	Create(ctx context.Context, p model.Product) (model.Product, error)
	Update(ctx context.Context, p model.Product) error
	SoftDelete(ctx context.Context, id int64) error

	// カテゴリ削除ガード用
	CountByCategoryID(ctx context.Context, categoryID int64) (int64, error)
}
