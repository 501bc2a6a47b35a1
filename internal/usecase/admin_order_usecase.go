package usecase

import (
	"context"
	"net/http"
	"strings"

	"shopd/internal/domain/model"
	repo "shopd/internal/repository"
)

type AdminOrderUsecase struct {
	tx repo.TransactionManager
}

// DI
func NewAdminOrderUsecase(tx repo.TransactionManager) *AdminOrderUsecase {
	return &AdminOrderUsecase{tx: tx}
}

// 注文一覧（管理者）
func (u *AdminOrderUsecase) List(ctx context.Context, f repo.OrderListFilter) (OrderListOutput, error) {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 || f.Limit > 100 {
		f.Limit = 20
	}
	if f.Status != "" && !validOrderStatus(f.Status) {
		return OrderListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid status")
	}

	var out OrderListOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orders, total, err := r.Orders().ListAdmin(ctx, f)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		totalPages := total / int64(f.Limit)
		if total%int64(f.Limit) != 0 {
			totalPages++
		}

		out = OrderListOutput{
			Orders: orders,
			Pagination: Pagination{
				Page:       f.Page,
				Limit:      f.Limit,
				Total:      total,
				TotalPages: totalPages,
			},
		}
		return nil
	})

	if err != nil {
		return OrderListOutput{}, err
	}
	return out, nil
}

func validOrderStatus(s string) bool {
	switch model.OrderStatus(s) {
	case model.OrderStatusPending, model.OrderStatusProcessing, model.OrderStatusShipped,
		model.OrderStatusDelivered, model.OrderStatusCancelled:
		return true
	}
	return false
}

func validPaymentStatus(s string) bool {
	switch model.PaymentStatus(s) {
	case model.PaymentStatusPending, model.PaymentStatusPaid,
		model.PaymentStatusFailed, model.PaymentStatusRefunded:
		return true
	}
	return false
}

// ステータス更新（管理者）。enumの範囲内なら無条件で遷移させる。
func (u *AdminOrderUsecase) UpdateStatus(ctx context.Context, orderID int64, status string) (model.Order, error) {
	if orderID <= 0 {
		return model.Order{}, NewHTTPError(http.StatusBadRequest, "invalid order id")
	}

	status = strings.TrimSpace(status)
	if !validOrderStatus(status) {
		return model.Order{}, NewHTTPError(http.StatusBadRequest, "invalid status")
	}

	var out model.Order

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		err := r.Orders().UpdateStatus(ctx, orderID, model.OrderStatus(status))
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "order not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		o, err := r.Orders().FindByID(ctx, orderID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out = o
		return nil
	})

	if err != nil {
		return model.Order{}, err
	}
	return out, nil
}

// 支払いステータス更新（管理者）
func (u *AdminOrderUsecase) UpdatePaymentStatus(ctx context.Context, orderID int64, status string) (model.Order, error) {
	if orderID <= 0 {
		return model.Order{}, NewHTTPError(http.StatusBadRequest, "invalid order id")
	}

	status = strings.TrimSpace(status)
	if !validPaymentStatus(status) {
		return model.Order{}, NewHTTPError(http.StatusBadRequest, "invalid payment status")
	}

	var out model.Order

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		err := r.Orders().UpdatePaymentStatus(ctx, orderID, model.PaymentStatus(status))
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "order not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		o, err := r.Orders().FindByID(ctx, orderID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out = o
		return nil
	})

	if err != nil {
		return model.Order{}, err
	}
	return out, nil
}

type OrderStatsOutput struct {
	TotalOrders   int64                       `json:"total_orders"`
	CountByStatus map[model.OrderStatus]int64 `json:"count_by_status"`
	Revenue       model.Money                 `json:"revenue"`
	RecentOrders  []model.Order               `json:"recent_orders"`
}

// Stats は集計の読み取り専用ビュー。
// 売上はDELIVERED注文のtotal合計だけを数える。
func (u *AdminOrderUsecase) Stats(ctx context.Context) (OrderStatsOutput, error) {
	var out OrderStatsOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		counts, err := r.Orders().CountByStatus(ctx)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		var total int64 = 0
		for _, n := range counts {
			total += n
		}

		revenue, err := r.Orders().SumTotalByStatus(ctx, model.OrderStatusDelivered)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		recent, err := r.Orders().ListRecent(ctx, 5)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out = OrderStatsOutput{
			TotalOrders:   total,
			CountByStatus: counts,
			Revenue:       model.NewMoney(revenue),
			RecentOrders:  recent,
		}
		return nil
	})

	if err != nil {
		return OrderStatsOutput{}, err
	}
	return out, nil
}
