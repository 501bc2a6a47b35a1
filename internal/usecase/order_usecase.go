package usecase

import (
	"context"
	"net/http"
	"strings"
	"time"

	"shopd/internal/domain/model"
	"shopd/internal/metrics"
	repo "shopd/internal/repository"

	"github.com/shopspring/decimal"
)

type OrderUsecase struct {
	tx repo.TransactionManager
	m  *metrics.CheckoutMetrics
}

// DI
func NewOrderUsecase(tx repo.TransactionManager, m *metrics.CheckoutMetrics) *OrderUsecase {
	return &OrderUsecase{tx: tx, m: m}
}

type CheckoutInput struct {
	ShippingAddress string
	PaymentMethod   string
}

type OrderListOutput struct {
	Orders     []model.Order `json:"orders"`
	Pagination Pagination    `json:"pagination"`
}

func validPaymentMethod(s string) bool {
	switch model.PaymentMethod(s) {
	case model.PaymentMethodCard, model.PaymentMethodPaypal, model.PaymentMethodCashOnDelivery:
		return true
	}
	return false
}

// Checkout はカートを注文に変換する。
// 事前チェック→注文作成→在庫減算→カート空に、を1トランザクションで行い、
// 途中で失敗したら全部ロールバックする。
func (u *OrderUsecase) Checkout(ctx context.Context, userID int64, in CheckoutInput) (model.Order, error) {
	if userID <= 0 {
		return model.Order{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	addr := strings.TrimSpace(in.ShippingAddress)
	if len(addr) < 10 {
		return model.Order{}, NewHTTPError(http.StatusBadRequest, "shipping address must be at least 10 characters")
	}
	if !validPaymentMethod(in.PaymentMethod) {
		return model.Order{}, NewHTTPError(http.StatusBadRequest, "invalid payment method")
	}

	var out model.Order

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		// カートと明細（現時点の商品ごと）を読む
		cart, err := r.Carts().FindByUserID(ctx, userID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusBadRequest, "cart is empty")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		cartItems, err := r.CartItems().ListByCartID(ctx, cart.ID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if len(cartItems) == 0 {
			return NewHTTPError(http.StatusBadRequest, "cart is empty")
		}

		// 事前チェック：全明細の数量が在庫内か。最初の違反で即終了、何も書き込まない。
		for _, ci := range cartItems {
			if ci.Product == nil {
				return NewHTTPError(http.StatusBadRequest, "product no longer exists")
			}
			if ci.Quantity > ci.Product.Stock {
				u.m.InsufficientStock.Inc()
				return NewHTTPError(http.StatusBadRequest, insufficientStockMessage(ci.Product.Stock))
			}
		}

		// 合計は今読んだ価格のスナップショットで確定する
		total := decimal.Zero
		orderItems := make([]model.OrderItem, 0, len(cartItems))
		now := time.Now()
		for _, ci := range cartItems {
			line := ci.Product.Price.Mul(decimal.NewFromInt(ci.Quantity))
			total = total.Add(line)

			orderItems = append(orderItems, model.OrderItem{
				ProductID: ci.ProductID,
				Quantity:  ci.Quantity,
				Price:     ci.Product.Price,
				CreatedAt: now,
			})
		}

		// 注文本体＋明細を作成
		orderID, err := r.Orders().Create(ctx, model.Order{
			UserID:          userID,
			Total:           model.NewMoney(total),
			ShippingAddress: addr,
			PaymentMethod:   model.PaymentMethod(in.PaymentMethod),
			Status:          model.OrderStatusPending,
			PaymentStatus:   model.PaymentStatusPending,
			CreatedAt:       now,
			UpdatedAt:       now,
		})
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if err := r.OrderItems().CreateBulk(ctx, orderID, orderItems); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		// 在庫減算。条件付き相対更新なので、並行チェックアウトに負けた場合は
		// 0行更新になり、トランザクションごと失敗させる。
		for _, ci := range cartItems {
			ok, err := r.Inventory().DecreaseStockIfEnough(ctx, ci.ProductID, ci.Quantity)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			if !ok {
				u.m.InsufficientStock.Inc()

				p, ferr := r.Products().FindByID(ctx, ci.ProductID)
				if ferr != nil {
					return NewHTTPError(http.StatusBadRequest, "insufficient stock")
				}
				return NewHTTPError(http.StatusBadRequest, insufficientStockMessage(p.Stock))
			}
		}

		// カートを空にする（カート行は残る）
		if err := r.Carts().Clear(ctx, cart.ID); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		// 明細・商品込みで読み直して返す
		created, err := r.Orders().FindByID(ctx, orderID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out = created
		return nil
	})

	if err != nil {
		return model.Order{}, err
	}

	u.m.OrdersPlaced.Inc()
	return out, nil
}

// Cancel は本人の注文のキャンセル。
// PENDING / PROCESSING だけキャンセルでき、明細ぶんの在庫を戻す。
func (u *OrderUsecase) Cancel(ctx context.Context, userID int64, orderID int64) (model.Order, error) {
	if userID <= 0 {
		return model.Order{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if orderID <= 0 {
		return model.Order{}, NewHTTPError(http.StatusBadRequest, "invalid order id")
	}

	var out model.Order

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "order not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		// 持ち主だけ。ADMINでも他人の注文はこの経路では触れない。
		if o.UserID != userID {
			return NewHTTPError(http.StatusForbidden, "forbidden")
		}

		switch o.Status {
		case model.OrderStatusPending, model.OrderStatusProcessing:
			// キャンセル可
		case model.OrderStatusCancelled:
			return NewHTTPError(http.StatusBadRequest, "order is already cancelled")
		default:
			// SHIPPED / DELIVERED
			return NewHTTPError(http.StatusBadRequest, "order cannot be cancelled after shipping")
		}

		// 在庫戻し（チェックアウトの減算の逆、同じく相対更新）
		for _, it := range o.Items {
			if err := r.Inventory().IncreaseStock(ctx, it.ProductID, it.Quantity); err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
		}

		if err := r.Orders().UpdateStatus(ctx, orderID, model.OrderStatusCancelled); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		cancelled, err := r.Orders().FindByID(ctx, orderID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out = cancelled
		return nil
	})

	if err != nil {
		return model.Order{}, err
	}

	u.m.OrdersCancelled.Inc()
	return out, nil
}

func (u *OrderUsecase) ListMyOrders(ctx context.Context, userID int64, page int, limit int) (OrderListOutput, error) {
	if userID <= 0 {
		return OrderListOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	var out OrderListOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orders, total, err := r.Orders().ListByUserID(ctx, userID, page, limit)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		totalPages := total / int64(limit)
		if total%int64(limit) != 0 {
			totalPages++
		}

		out = OrderListOutput{
			Orders: orders,
			Pagination: Pagination{
				Page:       page,
				Limit:      limit,
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

// GetOrder は本人の注文詳細。ADMINは誰の注文でも見られる。
func (u *OrderUsecase) GetOrder(ctx context.Context, userID int64, role model.Role, orderID int64) (model.Order, error) {
	if userID <= 0 {
		return model.Order{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if orderID <= 0 {
		return model.Order{}, NewHTTPError(http.StatusBadRequest, "invalid order id")
	}

	var out model.Order

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "order not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if o.UserID != userID && role != model.RoleAdmin {
			//他人の注文は「存在しない扱い」にする
			return NewHTTPError(http.StatusNotFound, "order not found")
		}

		out = o
		return nil
	})

	if err != nil {
		return model.Order{}, err
	}
	return out, nil
}
