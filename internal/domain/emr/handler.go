package emr

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/akmtwell/telehealth/internal/session"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(scoped *echo.Group) {
	scoped.GET("/emr", h.Get)
}

func (h *Handler) Get(c echo.Context) error {
	sess, err := session.Current(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, h.svc.Record(c.Request().Context(), sess.ID, sess.User))
}
