package repository

import (
	"context"

	"shopd/internal/domain/model"

	"github.com/shopspring/decimal"
)

// 管理者向け一覧の絞り込み
type OrderListFilter struct {
	Page   int
	Limit  int
	Status string
}

type OrderRepository interface {
	// Items（とProduct）を付けて取得
	FindByID(ctx context.Context, orderID int64) (model.Order, error)

	ListByUserID(ctx context.Context, userID int64, page int, limit int) ([]model.Order, int64, error)
	ListAdmin(ctx context.Context, f OrderListFilter) ([]model.Order, int64, error)

	Create(ctx context.Context, order model.Order) (int64, error)
	UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error
	UpdatePaymentStatus(ctx context.Context, orderID int64, status model.PaymentStatus) error

	// 統計用
	CountByStatus(ctx context.Context) (map[model.OrderStatus]int64, error)
	SumTotalByStatus(ctx context.Context, status model.OrderStatus) (decimal.Decimal, error)
	ListRecent(ctx context.Context, limit int) ([]model.Order, error)
}

type OrderItemRepository interface {
	CreateBulk(ctx context.Context, orderID int64, items []model.OrderItem) error
	ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderItem, error)
}
