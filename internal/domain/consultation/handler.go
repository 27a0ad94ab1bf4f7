package consultation

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/akmtwell/telehealth/internal/domain/medication"
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
	scoped.GET("/doctors", h.ListDoctors)
	scoped.POST("/consultations", h.Start)
	scoped.GET("/consultations/current", h.GetCurrent)
	scoped.POST("/consultations/current/messages", h.SendMessage)
	scoped.POST("/consultations/current/end", h.End)
	scoped.POST("/consultations/current/soap", h.SaveSoap)
}

func (h *Handler) ListDoctors(c echo.Context) error {
	sess, err := session.Current(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, h.svc.Doctors(c.Request().Context(), sess.ID))
}

type startRequest struct {
	DoctorID string `json:"doctor_id"`
}

func (h *Handler) Start(c echo.Context) error {
	sess, err := session.Current(c)
	if err != nil {
		return err
	}
	var req startRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.DoctorID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "doctor_id is required")
	}
	cons, err := h.svc.Start(c.Request().Context(), sess.ID, req.DoctorID, sess.Language)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusCreated, cons)
}

func (h *Handler) GetCurrent(c echo.Context) error {
	sess, err := session.Current(c)
	if err != nil {
		return err
	}
	cons, err := h.svc.Current(c.Request().Context(), sess.ID)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, cons)
}

type messageRequest struct {
	Text string `json:"text"`
}

func (h *Handler) SendMessage(c echo.Context) error {
	sess, err := session.Current(c)
	if err != nil {
		return err
	}
	var req messageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	cons, err := h.svc.SendMessage(c.Request().Context(), sess.ID, sess.User.Name, req.Text)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, cons)
}

func (h *Handler) End(c echo.Context) error {
	sess, err := session.Current(c)
	if err != nil {
		return err
	}
	cons, err := h.svc.End(c.Request().Context(), sess.ID, sess.User)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, cons)
}

type soapRequest struct {
	SoapNote
	Items []medication.Item `json:"items"`
}

type soapResponse struct {
	Message      string                   `json:"message"`
	Consultation *Consultation            `json:"consultation"`
	Prescription *medication.Prescription `json:"prescription,omitempty"`
}

func (h *Handler) SaveSoap(c echo.Context) error {
	sess, err := session.Current(c)
	if err != nil {
		return err
	}
	var req soapRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	cons, rx, err := h.svc.SaveSoap(c.Request().Context(), sess.ID, sess.User, req.SoapNote, req.Items)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusCreated, soapResponse{
		Message:      h.catalog.T(sess.Language, "soap_saved"),
		Consultation: cons,
		Prescription: rx,
	})
}

func mapError(err error) error {
	switch {
	case errors.Is(err, ErrDoctorNotFound), errors.Is(err, ErrNoConsultation):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, ErrEmptyMessage):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrDoctorOnly):
		return echo.NewHTTPError(http.StatusForbidden, err.Error())
	case errors.Is(err, ErrDoctorOffline), errors.Is(err, ErrCallInProgress),
		errors.Is(err, ErrNotInCall), errors.Is(err, ErrNoPendingNote):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}
