package triage

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

// RegisterRoutes mounts the triage routes on a session-scoped group.
func (h *Handler) RegisterRoutes(scoped *echo.Group) {
	scoped.POST("/triage", h.Submit)
	scoped.GET("/triage", h.GetState)
	scoped.DELETE("/triage", h.Reset)
	scoped.POST("/triage/confirm", h.Confirm)
	scoped.GET("/triage/result", h.GetResult)
}

type submitRequest struct {
	Symptoms string `json:"symptoms"`
}

// FailureBody is returned when a submission fails. Notice is the localized
// retry message; Kind is for clients.
type FailureBody struct {
	Notice   string    `json:"notice"`
	Kind     ErrorKind `json:"kind"`
	Snapshot Snapshot  `json:"snapshot"`
}

func (h *Handler) Submit(c echo.Context) error {
	sess, err := session.Current(c)
	if err != nil {
		return err
	}
	var req submitRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	snap, err := h.svc.Submit(c.Request().Context(), sess.ID, req.Symptoms, sess.Language)
	if err != nil {
		return h.submitError(sess.Language, snap, err)
	}
	return c.JSON(http.StatusOK, snap)
}

func (h *Handler) submitError(lang i18n.Language, snap Snapshot, err error) error {
	switch {
	case errors.Is(err, ErrSubmissionInFlight):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, ErrStale):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	}

	kind, ok := KindOf(err)
	if !ok {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if kind == KindInput {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	status := http.StatusBadGateway
	switch {
	case IsTimeout(err):
		status = http.StatusGatewayTimeout
	case kind == KindShape, kind == KindSemantic:
		status = http.StatusUnprocessableEntity
	}
	return echo.NewHTTPError(status, FailureBody{
		Notice:   h.catalog.T(lang, "analysis_failed"),
		Kind:     kind,
		Snapshot: snap,
	})
}

func (h *Handler) GetState(c echo.Context) error {
	sess, err := session.Current(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, h.svc.Snapshot(c.Request().Context(), sess.ID))
}

func (h *Handler) Reset(c echo.Context) error {
	sess, err := session.Current(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, h.svc.Reset(c.Request().Context(), sess.ID))
}

func (h *Handler) Confirm(c echo.Context) error {
	sess, err := session.Current(c)
	if err != nil {
		return err
	}
	res, err := h.svc.Confirm(c.Request().Context(), sess.ID)
	if err != nil {
		if errors.Is(err, ErrNothingToConfirm) {
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, res)
}

func (h *Handler) GetResult(c echo.Context) error {
	sess, err := session.Current(c)
	if err != nil {
		return err
	}
	res, err := h.svc.LatestResult(c.Request().Context(), sess.ID)
	if err != nil {
		if errors.Is(err, ErrNoResult) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, res)
}
