package tracking

import (
	"math"
	"time"

	"github.com/alexanderramin/canteiro/internal/domain"
)

// Clock supplies the current time.
type Clock func() time.Time

// SystemClock reads the wall clock.
func SystemClock() time.Time { return time.Now() }

// PredictProgress returns the percentage of the planned window elapsed at
// now, in whole minutes, rounded and capped at 100.
func PredictProgress(p *domain.Project, now time.Time) int {
	if p.StartDate == nil || p.EstimatedCompletionDate == nil ||
		p.StartDate.IsZero() || p.EstimatedCompletionDate.IsZero() {
		return 0
	}

	if p.Progress == 100 {
		return 100
	}

	start, end := *p.StartDate, *p.EstimatedCompletionDate
	if now.Before(start) {
		return 0
	}
	if !now.Before(end) {
		return 100
	}

	total := minutesBetween(start, end)
	if total <= 0 {
		return 100
	}

	elapsed := minutesBetween(start, now)
	pct := int(math.Round(float64(elapsed) / float64(total) * 100))
	return min(pct, 100)
}

// Predictor evaluates derivations against an injectable clock.
type Predictor struct {
	Clock Clock
}

// NewPredictor returns a Predictor reading clock, or the wall clock when nil.
func NewPredictor(clock Clock) *Predictor {
	if clock == nil {
		clock = SystemClock
	}
	return &Predictor{Clock: clock}
}

func (pr *Predictor) Predict(p *domain.Project) int {
	return PredictProgress(p, pr.Clock())
}

func (pr *Predictor) Classify(p *domain.Project) StatusResult {
	return Classify(p, pr.Clock())
}

// Lag returns how many points actual progress trails the prediction.
// Negative values mean the project is ahead of schedule.
func (pr *Predictor) Lag(p *domain.Project) int {
	return pr.Predict(p) - p.Progress
}

// minutesBetween counts whole minutes from a to b, truncating toward zero.
func minutesBetween(a, b time.Time) int {
	return int(b.Sub(a) / time.Minute)
}
