package monitoring

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/rs/zerolog"
)

type recordingAlerter struct {
	points []Point
}

func (a *recordingAlerter) BPSpike(_ context.Context, _ string, p Point, _ int) error {
	a.points = append(a.points, p)
	return nil
}

type recordingPublisher struct {
	events []string
}

func (p *recordingPublisher) Publish(_, event string, _ any) {
	p.events = append(p.events, event)
}

func TestSummarize(t *testing.T) {
	sum := Summarize(Seed(), DefaultBPThreshold)
	if sum.Latest.Day != "Sun" {
		t.Errorf("expected Sun as latest, got %q", sum.Latest.Day)
	}
	if sum.BP.Min != 118 || sum.BP.Max != 132 {
		t.Errorf("unexpected BP trend %+v", sum.BP)
	}
	if math.Abs(sum.GL.Avg-669.0/7) > 1e-9 {
		t.Errorf("unexpected GL avg %v", sum.GL.Avg)
	}
	if empty := Summarize(nil, 130); empty.Latest != (Point{}) || empty.BP != (Trend{}) {
		t.Errorf("expected zero summary, got %+v", empty)
	}
}

func TestService_LogRollsWindow(t *testing.T) {
	svc := NewService(NewMemoryRepo(), zerolog.Nop())
	pub := &recordingPublisher{}
	svc.SetPublisher(pub)
	ctx := context.Background()

	sum, spike, err := svc.Log(ctx, "s1", Reading{BP: 119, GL: 90, W: 71.5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if spike {
		t.Error("119 should not spike")
	}
	if len(sum.Series) != Window || sum.Series[0].Day != "Tue" || sum.Latest.Day != TodayLabel {
		t.Errorf("unexpected series %+v", sum.Series)
	}
	if len(pub.events) != 1 || pub.events[0] != EventLogged {
		t.Errorf("unexpected events %v", pub.events)
	}

	other, _ := svc.Summary(ctx, "s2")
	if other.Series[0].Day != "Mon" {
		t.Error("sessions should not share series")
	}
}

func TestService_LogSpikeAlerts(t *testing.T) {
	svc := NewService(NewMemoryRepo(), zerolog.Nop())
	alerter := &recordingAlerter{}
	svc.SetAlerter(alerter)
	svc.SetThreshold(140)
	ctx := context.Background()

	if _, spike, _ := svc.Log(ctx, "s1", Reading{BP: 135, GL: 95, W: 72}); spike {
		t.Error("135 is below the configured threshold")
	}
	_, spike, err := svc.Log(ctx, "s1", Reading{BP: 140, GL: 95, W: 72})
	if err != nil || !spike {
		t.Fatalf("expected spike, got spike=%v err=%v", spike, err)
	}
	if len(alerter.points) != 1 || alerter.points[0].BP != 140 {
		t.Errorf("unexpected alerts %+v", alerter.points)
	}
}

func TestService_LogRejectsInvalid(t *testing.T) {
	svc := NewService(NewMemoryRepo(), zerolog.Nop())
	for _, r := range []Reading{{BP: 0, GL: 90, W: 70}, {BP: 120, GL: -1, W: 70}, {BP: 120, GL: 90}} {
		if _, _, err := svc.Log(context.Background(), "s1", r); !errors.Is(err, ErrInvalidReading) {
			t.Errorf("%+v: expected ErrInvalidReading, got %v", r, err)
		}
	}
}

func TestService_Forget(t *testing.T) {
	svc := NewService(NewMemoryRepo(), zerolog.Nop())
	ctx := context.Background()
	_, _, _ = svc.Log(ctx, "s1", Reading{BP: 120, GL: 90, W: 70})
	svc.Forget(ctx, "s1")
	sum, _ := svc.Summary(ctx, "s1")
	if sum.Latest.Day != "Sun" {
		t.Errorf("expected reseeded series, got latest %+v", sum.Latest)
	}
}
