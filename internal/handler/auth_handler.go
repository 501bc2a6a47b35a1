package handler

import (
	"net/http"
	"os"
	"time"

	auth "shopd/internal/usecase/auth_usecase"

	"github.com/labstack/echo/v4"
)

type AuthHandler struct {
	registerUC   *auth.RegisterUserUsecase
	loginUC      *auth.LoginUsecase
	refreshUC    *auth.RefreshUsecase
	refreshTTL   time.Duration
	cookieSecure bool
}

// DI
func NewAuthHandler(
	registerUC *auth.RegisterUserUsecase,
	loginUC *auth.LoginUsecase,
	refreshUC *auth.RefreshUsecase,
	refreshTTL time.Duration,
) *AuthHandler {
	return &AuthHandler{
		registerUC:   registerUC,
		loginUC:      loginUC,
		refreshUC:    refreshUC,
		refreshTTL:   refreshTTL,
		cookieSecure: envBool("COOKIE_SECURE", true),
	}
}

func envBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	switch v {
	case "1", "true", "TRUE", "True":
		return true
	case "0", "false", "FALSE", "False":
		return false
	default:
		return def
	}
}

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/users/register", h.register)
	g.POST("/users/login", h.login)
	g.POST("/users/refresh", h.refresh)
}

func (h *AuthHandler) register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, newErrorResponse(http.StatusBadRequest, "invalid body"))
	}

	out, err := h.registerUC.Execute(c.Request().Context(), auth.RegisterUserInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
	})
	if err != nil {
		switch err {
		case auth.ErrInvalidEmailFormat, auth.ErrPasswordTooShort, auth.ErrNameTooShort:
			return c.JSON(http.StatusBadRequest, newErrorResponse(http.StatusBadRequest, err.Error()))
		case auth.ErrEmailAlreadyExists:
			return c.JSON(http.StatusConflict, newErrorResponse(http.StatusConflict, err.Error()))
		default:
			return c.JSON(http.StatusInternalServerError, newErrorResponse(http.StatusInternalServerError, "internal error"))
		}
	}

	return c.JSON(http.StatusCreated, out)
}

func (h *AuthHandler) login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, newErrorResponse(http.StatusBadRequest, "invalid body"))
	}

	// User-Agentはrefresh tokenに紐付ける
	userAgent := c.Request().Header.Get("User-Agent")

	out, side, err := h.loginUC.Execute(c.Request().Context(), auth.LoginInput{
		Email:     req.Email,
		Password:  req.Password,
		UserAgent: userAgent,
	})
	if err != nil {
		switch err {
		case auth.ErrInvalidCredentials:
			return c.JSON(http.StatusUnauthorized, newErrorResponse(http.StatusUnauthorized, "invalid email or password"))
		default:
			return c.JSON(http.StatusInternalServerError, newErrorResponse(http.StatusInternalServerError, "internal error"))
		}
	}

	h.setRefreshCookie(c, side.PlainRefreshToken)

	return c.JSON(http.StatusOK, out)
}

func (h *AuthHandler) refresh(c echo.Context) error {
	cookie, err := c.Cookie("refresh")
	if err != nil || cookie.Value == "" {
		return c.JSON(http.StatusUnauthorized, newErrorResponse(http.StatusUnauthorized, "unauthorized"))
	}

	out, side, err := h.refreshUC.Execute(c.Request().Context(), cookie.Value, c.Request().Header.Get("User-Agent"))
	if err != nil {
		switch err {
		case auth.ErrInvalidRefreshToken:
			return c.JSON(http.StatusUnauthorized, newErrorResponse(http.StatusUnauthorized, "unauthorized"))
		default:
			return c.JSON(http.StatusInternalServerError, newErrorResponse(http.StatusInternalServerError, "internal error"))
		}
	}

	h.setRefreshCookie(c, side.PlainRefreshToken)

	return c.JSON(http.StatusOK, out)
}

// refresh tokenをCookieにセット。
func (h *AuthHandler) setRefreshCookie(c echo.Context, plainRefresh string) {
	c.SetCookie(&http.Cookie{
		Name:     "refresh",
		Value:    plainRefresh,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(h.refreshTTL),
	})
}
