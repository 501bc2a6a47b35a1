package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// チェックアウト関連のカウンタ
type CheckoutMetrics struct {
	OrdersPlaced      prometheus.Counter
	OrdersCancelled   prometheus.Counter
	InsufficientStock prometheus.Counter
}

func NewCheckoutMetrics() *CheckoutMetrics {
	placed := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "shopd",
		Subsystem: "checkout",
		Name:      "orders_placed_total",
		Help:      "Total number of successfully placed orders.",
	})
	cancelled := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "shopd",
		Subsystem: "checkout",
		Name:      "orders_cancelled_total",
		Help:      "Total number of cancelled orders.",
	})
	insufficient := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "shopd",
		Subsystem: "checkout",
		Name:      "insufficient_stock_total",
		Help:      "Total number of checkouts rejected for insufficient stock.",
	})

	prometheus.MustRegister(placed, cancelled, insufficient)
	return &CheckoutMetrics{
		OrdersPlaced:      placed,
		OrdersCancelled:   cancelled,
		InsufficientStock: insufficient,
	}
}

func Handler() http.Handler {
	return promhttp.Handler()
}
