package triage

import (
	"strings"
	"testing"
	"time"
)

func fixedNormalizer() Normalizer {
	return Normalizer{
		Now:   func() time.Time { return time.Date(2024, 10, 24, 8, 30, 0, 0, time.UTC) },
		NewID: func() string { return "tr-fixed" },
	}
}

func TestNormalize_Urgency(t *testing.T) {
	n := fixedNormalizer()
	cases := map[string]Urgency{
		"LOW":      UrgencyLow,
		"MEDIUM":   UrgencyMedium,
		"HIGH":     UrgencyHigh,
		"CRITICAL": UrgencyCritical,
		"SEVERE":   UrgencyLow,
		"":         UrgencyLow,
		"high ":    UrgencyLow,
		"Critical": UrgencyLow,
	}
	for in, want := range cases {
		got := n.Normalize(ClassificationResponse{Urgency: in, RecommendedSpecialist: "GP"}, "s")
		if got.Urgency != want {
			t.Errorf("urgency %q: got %s, want %s", in, got.Urgency, want)
		}
	}
}

func TestNormalize_Specialist(t *testing.T) {
	n := fixedNormalizer()
	for _, in := range []string{"", "   ", "\n\t"} {
		got := n.Normalize(ClassificationResponse{Urgency: "LOW", RecommendedSpecialist: in}, "s")
		if got.RecommendedSpecialist != DefaultSpecialist {
			t.Errorf("specialist %q: got %q", in, got.RecommendedSpecialist)
		}
	}
	got := n.Normalize(ClassificationResponse{Urgency: "LOW", RecommendedSpecialist: "Kardiolog"}, "s")
	if got.RecommendedSpecialist != "Kardiolog" {
		t.Errorf("expected specialist to pass through, got %q", got.RecommendedSpecialist)
	}
}

func TestNormalize_Deterministic(t *testing.T) {
	n := fixedNormalizer()
	resp := ClassificationResponse{Urgency: "MEDIUM", RecommendedSpecialist: "Pulmonologist", Summary: "Bronchitis likely."}
	a := n.Normalize(resp, "batuk tiga hari")
	b := n.Normalize(resp, "batuk tiga hari")
	if a != b {
		t.Errorf("expected identical results, got %+v and %+v", a, b)
	}
	if a.ID != "tr-fixed" || a.Symptoms != "batuk tiga hari" || a.Summary != "Bronchitis likely." {
		t.Errorf("unexpected result: %+v", a)
	}
}

func TestNormalize_DefaultIDs(t *testing.T) {
	a := Normalize(ClassificationResponse{Urgency: "LOW"}, "x")
	b := Normalize(ClassificationResponse{Urgency: "LOW"}, "x")
	if !strings.HasPrefix(a.ID, "tr-") {
		t.Errorf("expected tr- prefix, got %s", a.ID)
	}
	if a.ID == b.ID {
		t.Error("expected fresh IDs")
	}
	if a.Timestamp.IsZero() {
		t.Error("expected a timestamp")
	}
}
