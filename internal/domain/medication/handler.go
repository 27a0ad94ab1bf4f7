package medication

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/akmtwell/telehealth/internal/session"
	"github.com/akmtwell/telehealth/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(scoped *echo.Group) {
	scoped.GET("/prescriptions", h.List)
	scoped.GET("/prescriptions/:id", h.Get)
	scoped.PUT("/prescriptions/:id/status", h.UpdateStatus)
}

func (h *Handler) List(c echo.Context) error {
	sess, err := session.Current(c)
	if err != nil {
		return err
	}
	list, err := h.svc.List(c.Request().Context(), sess.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.Page(list, pagination.FromContext(c)))
}

func (h *Handler) Get(c echo.Context) error {
	sess, err := session.Current(c)
	if err != nil {
		return err
	}
	p, err := h.svc.Get(c.Request().Context(), sess.ID, c.Param("id"))
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, p)
}

type statusRequest struct {
	Status Status `json:"status"`
}

func (h *Handler) UpdateStatus(c echo.Context) error {
	sess, err := session.Current(c)
	if err != nil {
		return err
	}
	var req statusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	p, err := h.svc.UpdateStatus(c.Request().Context(), sess.ID, c.Param("id"), req.Status)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, p)
}

func mapError(err error) error {
	switch {
	case errors.Is(err, ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, ErrInvalidStatus), errors.Is(err, ErrNoItems):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrStatusRegression):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}
