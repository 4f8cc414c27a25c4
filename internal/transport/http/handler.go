package http

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"
	"github.com/mwilczek/shortener/internal/errorz"
	"github.com/mwilczek/shortener/internal/models"
	"github.com/mwilczek/shortener/internal/transport/http/dto"
)

type urlService interface {
	Resolve(ctx context.Context, code string, meta models.RequestMeta) (string, error)
	Shorten(ctx context.Context, longURL string, ownerID int64) (models.URLMapping, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]models.URLMapping, error)
	Stats(ctx context.Context, code string, ownerID int64) (int64, error)
}

type authService interface {
	Register(ctx context.Context, email, password string) (int64, error)
	Login(ctx context.Context, email, password string) (string, error)
	VerifyToken(tokenString string) (int64, error)
}

type Handler struct {
	svc        urlService
	auth       authService
	publicHost string
}

func NewHandler(svc urlService, auth authService, publicHost string) *Handler {
	return &Handler{
		svc:        svc,
		auth:       auth,
		publicHost: publicHost,
	}
}

// Redirect handles GET /:code, the hot path.
func (h *Handler) Redirect(c echo.Context) error {
	ctx := c.Request().Context()

	meta := models.RequestMeta{
		IPAddress: c.RealIP(),
		UserAgent: c.Request().UserAgent(),
	}

	longURL, err := h.svc.Resolve(ctx, c.Param("code"), meta)
	if errors.Is(err, errorz.ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "short code not found")
	} else if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal Server Error")
	}

	return c.Redirect(http.StatusMovedPermanently, longURL)
}

func (h *Handler) Shorten(c echo.Context) error {
	ctx := c.Request().Context()
	ownerID := c.Get(userIDKey).(int64)

	var req dto.ShortenURLRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if _, err := url.ParseRequestURI(req.LongURL); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "bad URL")
	}

	mapping, err := h.svc.Shorten(ctx, req.LongURL, ownerID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal Server Error")
	}

	resp := &dto.ShortenURLResponse{ShortURL: h.publicHost + mapping.ShortCode}
	return c.JSON(http.StatusCreated, resp)
}

func (h *Handler) MyURLs(c echo.Context) error {
	ctx := c.Request().Context()
	ownerID := c.Get(userIDKey).(int64)

	mappings, err := h.svc.ListByOwner(ctx, ownerID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal Server Error")
	}

	items := make([]dto.URLListItem, len(mappings))
	for i, m := range mappings {
		items[i] = dto.URLListItem{
			ShortCode: m.ShortCode,
			LongURL:   m.LongURL,
			CreatedAt: m.CreatedAt,
		}
	}

	return c.JSON(http.StatusOK, items)
}

func (h *Handler) CodeStats(c echo.Context) error {
	ctx := c.Request().Context()
	ownerID := c.Get(userIDKey).(int64)
	code := c.Param("code")

	clicks, err := h.svc.Stats(ctx, code, ownerID)
	if errors.Is(err, errorz.ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "short code not found")
	} else if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal Server Error")
	}

	return c.JSON(http.StatusOK, &dto.StatsResponse{ShortCode: code, Clicks: clicks})
}

func (h *Handler) Register(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if req.Email == "" || req.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "email and password are required")
	}

	id, err := h.auth.Register(ctx, req.Email, req.Password)
	if errors.Is(err, errorz.ErrEmailTaken) {
		return echo.NewHTTPError(http.StatusConflict, "email already in use")
	} else if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal Server Error")
	}

	return c.JSON(http.StatusCreated, &dto.RegisterResponse{ID: id, Email: req.Email})
}

func (h *Handler) Login(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	token, err := h.auth.Login(ctx, req.Email, req.Password)
	if errors.Is(err, errorz.ErrInvalidCredentials) {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid credentials")
	} else if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal Server Error")
	}

	return c.JSON(http.StatusOK, &dto.LoginResponse{Token: token})
}

func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
