package tracking

import (
	"math/rand"
	"testing"
	"time"

	"github.com/alexanderramin/canteiro/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestPredictProgress(t *testing.T) {
	start := testNow
	end := testNow.AddDate(0, 0, 10)

	tests := []struct {
		name    string
		project domain.Project
		now     time.Time
		want    int
	}{
		{"missing start", domain.Project{EstimatedCompletionDate: &end}, testNow, 0},
		{"missing estimate", domain.Project{StartDate: &start}, testNow, 0},
		{"missing dates beat complete", domain.Project{Progress: 100}, testNow, 0},
		{"complete", domain.Project{Progress: 100, StartDate: &start, EstimatedCompletionDate: &end}, testNow, 100},
		{"before start", domain.Project{StartDate: &start, EstimatedCompletionDate: &end}, testNow.Add(-time.Hour), 0},
		{"at start", domain.Project{StartDate: &start, EstimatedCompletionDate: &end, Progress: 40}, start, 0},
		{"one day of ten", domain.Project{StartDate: &start, EstimatedCompletionDate: &end}, testNow.AddDate(0, 0, 1), 10},
		{"half way", domain.Project{StartDate: &start, EstimatedCompletionDate: &end}, testNow.AddDate(0, 0, 5), 50},
		{"at end", domain.Project{StartDate: &start, EstimatedCompletionDate: &end}, end, 100},
		{"past end", domain.Project{StartDate: &start, EstimatedCompletionDate: &end}, end.AddDate(0, 1, 0), 100},
		{"zero window", domain.Project{StartDate: &start, EstimatedCompletionDate: ptr(start.Add(30 * time.Second))}, start.Add(10 * time.Second), 100},
		{"rounds", domain.Project{StartDate: &start, EstimatedCompletionDate: ptr(start.Add(3 * time.Minute))}, start.Add(time.Minute), 33},
		{"rounds half up", domain.Project{StartDate: &start, EstimatedCompletionDate: ptr(start.Add(8 * time.Minute))}, start.Add(time.Minute), 13},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PredictProgress(&tt.project, tt.now))
		})
	}
}

// TestPredictProgress_Bounds property-tests that predictions stay in
// [0, 100] and that complete projects with both dates predict 100.
func TestPredictProgress_Bounds(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for trial := 0; trial < 1000; trial++ {
		p := randomProject(rng, "p")
		got := PredictProgress(&p, testNow)
		assert.GreaterOrEqual(t, got, 0)
		assert.LessOrEqual(t, got, 100)

		if p.StartDate != nil && p.EstimatedCompletionDate != nil {
			p.Progress = 100
			assert.Equal(t, 100, PredictProgress(&p, testNow))
		}
	}
}

// TestPredictProgress_NeverDecreases sweeps now across the window, including
// steps that do not land on whole minutes.
func TestPredictProgress_NeverDecreases(t *testing.T) {
	start := testNow
	end := start.AddDate(0, 0, 7).Add(13 * time.Minute)
	p := domain.Project{StartDate: &start, EstimatedCompletionDate: &end, Progress: 40}

	prev := PredictProgress(&p, start)
	assert.Equal(t, 0, prev)
	for now := start; !now.After(end.Add(time.Hour)); now = now.Add(37 * time.Second) {
		got := PredictProgress(&p, now)
		if !assert.GreaterOrEqual(t, got, prev, "at %s", now) {
			return
		}
		prev = got
	}
	assert.Equal(t, 100, prev)
}

func TestFormatElapsed(t *testing.T) {
	tests := []struct {
		name    string
		span    time.Duration
		text    string
		overdue bool
	}{
		{"zero", 0, "00:00", false},
		{"thirty minutes", 30 * time.Minute, "00:30", false},
		{"thirty one minutes", 31 * time.Minute, "00:31", true},
		{"hours", 2*time.Hour + 5*time.Minute + 59*time.Second, "02:05", true},
		{"negative", -time.Hour, "00:00", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatElapsed(testNow, testNow.Add(tt.span))
			assert.Equal(t, tt.text, got.Text)
			assert.Equal(t, tt.overdue, got.IsOverdue)
		})
	}
}
