package handler_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"shopd/internal/handler"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func mustBindDecimal(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal %q: %v", s, err)
	}
	return d
}

// APIクライアントが送るcamelCaseのボディがそのままbindできること
func bindJSON(t *testing.T, body string, out interface{}) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c := e.NewContext(req, httptest.NewRecorder())

	assert.NoError(t, c.Bind(out))
}

func TestAddCartRequest_BindsCamelCase(t *testing.T) {
	var req handler.AddCartRequest
	bindJSON(t, `{"productId":5,"quantity":2}`, &req)

	assert.Equal(t, int64(5), req.ProductID)
	assert.Equal(t, int64(2), req.Quantity)
}

func TestCheckoutRequest_BindsCamelCase(t *testing.T) {
	var req handler.CheckoutRequest
	bindJSON(t, `{"shippingAddress":"1-2-3 Chiyoda, Tokyo","paymentMethod":"CARD"}`, &req)

	assert.Equal(t, "1-2-3 Chiyoda, Tokyo", req.ShippingAddress)
	assert.Equal(t, "CARD", req.PaymentMethod)
}

func TestProductRequest_BindsCamelCase(t *testing.T) {
	var req handler.ProductRequest
	bindJSON(t, `{"name":"coffee beans","price":"12.50","stock":20,"categoryId":3,"images":["a.png"]}`, &req)

	assert.Equal(t, "coffee beans", req.Name)
	assert.True(t, req.Price.Equal(mustBindDecimal(t, "12.50")))
	assert.Equal(t, int64(20), req.Stock)
	if assert.NotNil(t, req.CategoryID) {
		assert.Equal(t, int64(3), *req.CategoryID)
	}
}

func TestUpdatePaymentStatusRequest_BindsCamelCase(t *testing.T) {
	var req handler.UpdatePaymentStatusRequest
	bindJSON(t, `{"paymentStatus":"PAID"}`, &req)

	assert.Equal(t, "PAID", req.PaymentStatus)
}
