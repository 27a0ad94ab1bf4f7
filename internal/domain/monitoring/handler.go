package monitoring

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/akmtwell/telehealth/internal/platform/i18n"
	"github.com/akmtwell/telehealth/internal/session"
)

type Handler struct {
	svc     *Service
	catalog *i18n.Catalog
}

func NewHandler(svc *Service, catalog *i18n.Catalog) *Handler {
	return &Handler{svc: svc, catalog: catalog}
}

func (h *Handler) RegisterRoutes(scoped *echo.Group) {
	scoped.GET("/vitals", h.Get)
	scoped.POST("/vitals", h.Log)
}

func (h *Handler) Get(c echo.Context) error {
	sess, err := session.Current(c)
	if err != nil {
		return err
	}
	sum, err := h.svc.Summary(c.Request().Context(), sess.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, sum)
}

type logResponse struct {
	Summary
	Message    string `json:"message"`
	Alert      bool   `json:"alert"`
	AlertTitle string `json:"alert_title,omitempty"`
}

func (h *Handler) Log(c echo.Context) error {
	sess, err := session.Current(c)
	if err != nil {
		return err
	}
	var r Reading
	if err := c.Bind(&r); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	sum, spike, err := h.svc.Log(c.Request().Context(), sess.ID, r)
	if err != nil {
		if errors.Is(err, ErrInvalidReading) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	resp := logResponse{
		Summary: sum,
		Message: h.catalog.T(sess.Language, "vitals_logged"),
		Alert:   spike,
	}
	if spike {
		resp.AlertTitle = h.catalog.T(sess.Language, "bp_spike_title")
	}
	return c.JSON(http.StatusCreated, resp)
}
