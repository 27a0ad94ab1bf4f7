package session

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/akmtwell/telehealth/internal/platform/i18n"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts session creation on api and the session-scoped
// routes on scoped, which must already run RequireSession.
func (h *Handler) RegisterRoutes(api, scoped *echo.Group) {
	api.POST("/sessions", h.Create)

	scoped.GET("/session", h.Get)
	scoped.PUT("/session/language", h.SetLanguage)
	scoped.POST("/session/role", h.ToggleRole)
	scoped.PUT("/session/view", h.Navigate)
}

func (h *Handler) Create(c echo.Context) error {
	sess, err := h.svc.Create(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	c.Response().Header().Set(HeaderSessionID, sess.ID)
	return c.JSON(http.StatusCreated, sess)
}

func (h *Handler) Get(c echo.Context) error {
	sess, err := Current(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sess)
}

type languageRequest struct {
	Language string `json:"language"`
}

func (h *Handler) SetLanguage(c echo.Context) error {
	sess, err := Current(c)
	if err != nil {
		return err
	}
	var req languageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	updated, err := h.svc.SetLanguage(c.Request().Context(), sess.ID, req.Language)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, updated)
}

func (h *Handler) ToggleRole(c echo.Context) error {
	sess, err := Current(c)
	if err != nil {
		return err
	}
	updated, err := h.svc.ToggleRole(c.Request().Context(), sess.ID)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, updated)
}

type viewRequest struct {
	View string `json:"view"`
}

func (h *Handler) Navigate(c echo.Context) error {
	sess, err := Current(c)
	if err != nil {
		return err
	}
	var req viewRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	updated, err := h.svc.Navigate(c.Request().Context(), sess.ID, req.View)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, updated)
}

func mapError(err error) error {
	switch {
	case errors.Is(err, ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, i18n.ErrUnsupportedLanguage):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}
