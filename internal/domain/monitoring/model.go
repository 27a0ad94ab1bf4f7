package monitoring

import (
	"errors"
	"fmt"
)

// Window is how many points a series keeps.
const Window = 7

// DefaultBPThreshold is the systolic reading that raises an alert.
const DefaultBPThreshold = 130

// TodayLabel labels every newly logged point.
const TodayLabel = "Today"

var ErrInvalidReading = errors.New("invalid vitals reading")

// Point is one day of vitals: systolic blood pressure (mmHg), glucose (mg/dL)
// and weight (kg).
type Point struct {
	Day string  `json:"day"`
	BP  int     `json:"bp"`
	GL  int     `json:"gl"`
	W   float64 `json:"w"`
}

// Reading is a new set of vitals entered by the user.
type Reading struct {
	BP int     `json:"bp"`
	GL int     `json:"gl"`
	W  float64 `json:"w"`
}

func (r Reading) Validate() error {
	switch {
	case r.BP <= 0 || r.BP > 300:
		return fmt.Errorf("%w: bp %d out of range", ErrInvalidReading, r.BP)
	case r.GL <= 0 || r.GL > 1000:
		return fmt.Errorf("%w: gl %d out of range", ErrInvalidReading, r.GL)
	case r.W <= 0 || r.W > 500:
		return fmt.Errorf("%w: w %.1f out of range", ErrInvalidReading, r.W)
	}
	return nil
}

// Seed is the week every session starts with.
func Seed() []Point {
	return []Point{
		{Day: "Mon", BP: 120, GL: 95, W: 72},
		{Day: "Tue", BP: 125, GL: 98, W: 71.8},
		{Day: "Wed", BP: 132, GL: 105, W: 72.2},
		{Day: "Thu", BP: 122, GL: 92, W: 72.1},
		{Day: "Fri", BP: 118, GL: 88, W: 71.9},
		{Day: "Sat", BP: 121, GL: 96, W: 72.0},
		{Day: "Sun", BP: 120, GL: 95, W: 71.8},
	}
}

// Trend summarizes one metric over the window.
type Trend struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
	Avg float64 `json:"avg"`
}

// Summary is what GET /vitals returns.
type Summary struct {
	Series    []Point `json:"series"`
	Latest    Point   `json:"latest"`
	BP        Trend   `json:"bp_trend"`
	GL        Trend   `json:"gl_trend"`
	Threshold int     `json:"bp_threshold"`
}

func trendOf(points []Point, value func(Point) float64) Trend {
	if len(points) == 0 {
		return Trend{}
	}
	t := Trend{Min: value(points[0]), Max: value(points[0])}
	var sum float64
	for _, p := range points {
		v := value(p)
		if v < t.Min {
			t.Min = v
		}
		if v > t.Max {
			t.Max = v
		}
		sum += v
	}
	t.Avg = sum / float64(len(points))
	return t
}

// Summarize computes trends over points.
func Summarize(points []Point, threshold int) Summary {
	s := Summary{
		Series:    points,
		BP:        trendOf(points, func(p Point) float64 { return float64(p.BP) }),
		GL:        trendOf(points, func(p Point) float64 { return float64(p.GL) }),
		Threshold: threshold,
	}
	if len(points) > 0 {
		s.Latest = points[len(points)-1]
	}
	return s
}
