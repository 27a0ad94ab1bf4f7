package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/akmtwell/telehealth/internal/config"
	"github.com/akmtwell/telehealth/internal/domain/consultation"
	"github.com/akmtwell/telehealth/internal/domain/dashboard"
	"github.com/akmtwell/telehealth/internal/domain/emr"
	"github.com/akmtwell/telehealth/internal/domain/medication"
	"github.com/akmtwell/telehealth/internal/domain/monitoring"
	"github.com/akmtwell/telehealth/internal/platform/i18n"
	"github.com/akmtwell/telehealth/internal/platform/middleware"
	"github.com/akmtwell/telehealth/internal/platform/notification"
	"github.com/akmtwell/telehealth/internal/platform/websocket"
	"github.com/akmtwell/telehealth/internal/session"
	"github.com/akmtwell/telehealth/internal/triage"
)

const shutdownTimeout = 10 * time.Second

// app holds the wired echo server and the services background jobs need.
type app struct {
	echo     *echo.Echo
	sessions *session.Service
	hub      *websocket.Hub
}

func buildApp(cfg *config.Config, logger zerolog.Logger) (*app, error) {
	catalog := i18n.Default()
	hub := websocket.NewHub(logger)

	sessions := session.NewService(session.NewMemoryRepo(), logger)
	sessions.SetDefaultLanguage(cfg.Language())
	sessions.SetTTL(cfg.SessionTTL)

	alerts := notification.NewManager(hubSender{hub: hub}, notification.NewTemplateEngine(), logger)

	triageSvc, err := newTriageService(cfg, logger)
	if err != nil {
		return nil, err
	}
	triageSvc.SetPublisher(hub)
	triageSvc.SetAlerter(&triageAlerter{alerts: alerts, sessions: sessions, doctorID: cfg.OncallDoctorID})

	meds := medication.NewService(medication.NewMemoryRepo(), logger)
	meds.SetPublisher(hub)

	consults := consultation.NewService(consultation.NewMemoryRepo(), triageSvc, meds, catalog, logger)
	records := emr.NewService(triageSvc, logger)

	vitals := monitoring.NewService(monitoring.NewMemoryRepo(), logger)
	vitals.SetThreshold(cfg.BPAlertThreshold)
	vitals.SetPublisher(hub)
	vitals.SetAlerter(&vitalsAlerter{alerts: alerts, sessions: sessions, catalog: catalog, doctorID: cfg.OncallDoctorID})

	overview := dashboard.NewService(triageSvc, meds, alerts, vitals, catalog, logger)

	sessions.OnNavigate(resetTriageOnLeave(triageSvc))
	sessions.OnExpire(forgetSession(hub, triageSvc, meds, consults, vitals, alerts))

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Global middleware
	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(middleware.SecurityHeaders(cfg.IsProduction()))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:  cfg.CORSOrigins,
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders:  []string{echo.HeaderContentType, middleware.RequestIDHeader, session.HeaderSessionID},
		ExposeHeaders: []string{middleware.RequestIDHeader, session.HeaderSessionID},
	}))
	if cfg.RequestTimeout > 0 {
		e.Use(middleware.RequestTimeout(middleware.TimeoutConfig{
			Timeout:      cfg.RequestTimeout,
			Catalog:      catalog,
			SkipPrefixes: []string{"/ws"},
		}))
	}
	e.Use(middleware.BodyLimit(cfg.BodyLimit))

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]any{
			"status":     "ok",
			"version":    version,
			"classifier": triageSvc.Provider(),
			"ws_clients": hub.ClientCount(),
		})
	})

	apiV1 := e.Group("/api/v1")
	apiV1.Use(middleware.RateLimit(middleware.RateLimitConfig{
		RequestsPerSecond: cfg.RateLimitRPS,
		BurstSize:         cfg.RateLimitBurst,
		IdleTTL:           10 * time.Minute,
		SessionExists:     sessionExists(sessions),
	}))
	scoped := apiV1.Group("", session.RequireSession(sessions), middleware.Audit(logger))

	session.NewHandler(sessions).RegisterRoutes(apiV1, scoped)
	triage.NewHandler(triageSvc, catalog).RegisterRoutes(scoped)
	consultation.NewHandler(consults, catalog).RegisterRoutes(scoped)
	medication.NewHandler(meds).RegisterRoutes(scoped)
	emr.NewHandler(records).RegisterRoutes(scoped)
	monitoring.NewHandler(vitals, catalog).RegisterRoutes(scoped)
	dashboard.NewHandler(overview).RegisterRoutes(scoped)
	notification.NewHandler(alerts).RegisterRoutes(scoped)

	websocket.NewHandler(hub, sessionExists(sessions), originChecker(cfg.CORSOrigins)).RegisterRoutes(e)

	return &app{echo: e, sessions: sessions, hub: hub}, nil
}

// runServer serves until ctx is cancelled, then shuts down gracefully.
func runServer(ctx context.Context, cfg *config.Config, logger zerolog.Logger) error {
	a, err := buildApp(cfg, logger)
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Str("env", cfg.Env).Str("classifier", cfg.ClassifierProvider).Msg("starting server")
		if err := a.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		return a.sessions.RunSweeper(gctx, cfg.SweepInterval)
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info().Msg("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := a.echo.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	logger.Info().Msg("server stopped")
	return nil
}
