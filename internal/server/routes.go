package server

import (
	"shopd/internal/config"

	"github.com/labstack/echo/v4"
)

// /api/v1配下にルートを登録
func RegisterRoutes(e *echo.Echo, cfg config.Config, h Handlers) {
	v1 := e.Group("/api/v1")

	h.Auth.RegisterRoutes(v1)
	h.Product.RegisterRoutes(v1)
	h.AdminProduct.RegisterRoutes(v1, cfg)
	h.Category.RegisterRoutes(v1, cfg)
	h.Cart.RegisterRoutes(v1, cfg)
	h.Order.RegisterRoutes(v1, cfg)
	h.AdminOrder.RegisterRoutes(v1, cfg)
}
