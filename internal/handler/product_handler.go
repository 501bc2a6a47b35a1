package handler

import (
	"net/http"
	"strconv"

	"shopd/internal/middleware"
	"shopd/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// 全エラー共通のレスポンス形
type ErrorResponse struct {
	Status     string `json:"status"`
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
}

func newErrorResponse(statusCode int, msg string) ErrorResponse {
	return ErrorResponse{
		Status:     "error",
		StatusCode: statusCode,
		Message:    msg,
	}
}

// usecaseのエラーを1か所でHTTPに変換する
func writeError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}
	if he, ok := usecase.AsHTTPError(err); ok {
		return c.JSON(he.Status, newErrorResponse(he.Status, he.Message))
	}

	//500
	return c.JSON(http.StatusInternalServerError, newErrorResponse(http.StatusInternalServerError, "internal error"))
}

func getUserIDFromContext(c echo.Context) (int64, bool) {
	raw := c.Get(middleware.CtxUserIDKey)
	userID, ok := raw.(int64)
	return userID, ok
}

func getRoleFromContext(c echo.Context) (string, bool) {
	raw := c.Get(middleware.CtxUserRoleKey)
	role, ok := raw.(string)
	return role, ok
}

// /products の公開API
type ProductHandler struct {
	uc *usecase.ProductUsecase
}

// DI
func NewProductHandler(uc *usecase.ProductUsecase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

// 公開商品のルートを登録
func (h *ProductHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/products", h.list)
	g.GET("/products/:id", h.detail)
}

func (h *ProductHandler) list(c echo.Context) error {
	// page（default 1）
	page := 1
	if v := c.QueryParam("page"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, newErrorResponse(http.StatusBadRequest, "invalid page"))
		}
		page = p
	}

	// limit（default 10）
	limit := 10
	if v := c.QueryParam("limit"); v != "" {
		l, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, newErrorResponse(http.StatusBadRequest, "invalid limit"))
		}
		limit = l
	}

	var categoryID *int64
	if v := c.QueryParam("category"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, newErrorResponse(http.StatusBadRequest, "invalid category"))
		}
		categoryID = &id
	}

	var minPrice, maxPrice *decimal.Decimal
	if v := c.QueryParam("minPrice"); v != "" {
		d, err := decimal.NewFromString(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, newErrorResponse(http.StatusBadRequest, "invalid minPrice"))
		}
		minPrice = &d
	}
	if v := c.QueryParam("maxPrice"); v != "" {
		d, err := decimal.NewFromString(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, newErrorResponse(http.StatusBadRequest, "invalid maxPrice"))
		}
		maxPrice = &d
	}

	out, err := h.uc.ListProducts(c.Request().Context(), usecase.ListProductsInput{
		Page:       page,
		Limit:      limit,
		Search:     c.QueryParam("search"),
		CategoryID: categoryID,
		MinPrice:   minPrice,
		MaxPrice:   maxPrice,
		SortBy:     c.QueryParam("sortBy"),
		Order:      c.QueryParam("order"),
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *ProductHandler) detail(c echo.Context) error {
	productID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, newErrorResponse(http.StatusBadRequest, "invalid id"))
	}

	out, err := h.uc.GetProductDetail(c.Request().Context(), productID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}
