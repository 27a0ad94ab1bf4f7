package dashboard

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/akmtwell/telehealth/internal/domain/identity"
	"github.com/akmtwell/telehealth/internal/domain/monitoring"
	"github.com/akmtwell/telehealth/internal/platform/i18n"
	"github.com/akmtwell/telehealth/internal/triage"
)

const (
	// HealthScore is the fixed demo score.
	HealthScore = "92/100"
	// StatusStable is the status tile value when no triage is confirmed.
	// Only the tile label is localized.
	StatusStable = "Stable"
)

type ResultSource interface {
	LatestResult(ctx context.Context, sessionID string) (triage.Result, error)
}

type MedicationCounter interface {
	ItemCount(ctx context.Context, sessionID string) (int, error)
}

type AlertCounter interface {
	CountBySession(ctx context.Context, sessionID string) int
}

type VitalsSource interface {
	Summary(ctx context.Context, sessionID string) (monitoring.Summary, error)
}

// Tile is one headline stat.
type Tile struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Value string `json:"value"`
}

// BPPoint is one day on the weekly chart.
type BPPoint struct {
	Day string `json:"day"`
	BP  int    `json:"bp"`
	GL  int    `json:"gl"`
}

type Overview struct {
	Welcome        string    `json:"welcome"`
	Tiles          []Tile    `json:"tiles"`
	Weekly         []BPPoint `json:"weekly"`
	ShowNewConsult bool      `json:"show_new_consult"`
}

type Service struct {
	results ResultSource
	meds    MedicationCounter
	alerts  AlertCounter
	vitals  VitalsSource
	catalog *i18n.Catalog
	logger  zerolog.Logger
}

func NewService(results ResultSource, meds MedicationCounter, alerts AlertCounter, vitals VitalsSource, catalog *i18n.Catalog, logger zerolog.Logger) *Service {
	return &Service{
		results: results,
		meds:    meds,
		alerts:  alerts,
		vitals:  vitals,
		catalog: catalog,
		logger:  logger.With().Str("component", "dashboard").Logger(),
	}
}

// Overview gathers the dashboard tiles for the session in lang.
func (s *Service) Overview(ctx context.Context, sessionID string, user identity.User, lang i18n.Language) (Overview, error) {
	var (
		status  = StatusStable
		meds    int
		alerts  int
		summary monitoring.Summary
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		res, err := s.results.LatestResult(gctx, sessionID)
		switch {
		case err == nil:
			status = string(res.Urgency)
		case !errors.Is(err, triage.ErrNoResult):
			return fmt.Errorf("latest triage: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		n, err := s.meds.ItemCount(gctx, sessionID)
		if err != nil {
			return fmt.Errorf("count medications: %w", err)
		}
		meds = n
		return nil
	})
	g.Go(func() error {
		alerts = s.alerts.CountBySession(gctx, sessionID)
		return nil
	})
	g.Go(func() error {
		sum, err := s.vitals.Summary(gctx, sessionID)
		if err != nil {
			return fmt.Errorf("vitals: %w", err)
		}
		summary = sum
		return nil
	})
	if err := g.Wait(); err != nil {
		return Overview{}, err
	}

	alertValue := s.catalog.T(lang, "alerts_none")
	if alerts > 0 {
		alertValue = strconv.Itoa(alerts)
	}

	weekly := make([]BPPoint, 0, len(summary.Series))
	for _, p := range summary.Series {
		weekly = append(weekly, BPPoint{Day: p.Day, BP: p.BP, GL: p.GL})
	}

	return Overview{
		Welcome: s.catalog.T(lang, "welcome") + " " + user.Name,
		Tiles: []Tile{
			{Key: "health_score", Label: s.catalog.T(lang, "health_score"), Value: HealthScore},
			{Key: "status", Label: s.catalog.T(lang, "status"), Value: status},
			{Key: "meds", Label: s.catalog.T(lang, "meds"), Value: fmt.Sprintf("%d %s", meds, s.catalog.T(lang, "meds_active"))},
			{Key: "alerts", Label: s.catalog.T(lang, "alerts"), Value: alertValue},
		},
		Weekly:         weekly,
		ShowNewConsult: user.Role == identity.RolePatient,
	}, nil
}
