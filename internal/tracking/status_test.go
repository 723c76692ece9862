package tracking

import (
	"math/rand"
	"testing"
	"time"

	"github.com/alexanderramin/canteiro/internal/domain"
	"github.com/stretchr/testify/assert"
)

var testNow = time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)

func ptr(t time.Time) *time.Time { return &t }

func TestClassify_Rules(t *testing.T) {
	past := ptr(testNow.AddDate(0, 0, -2))
	future := ptr(testNow.AddDate(0, 0, 2))

	tests := []struct {
		name    string
		project domain.Project
		want    StatusResult
	}{
		{"complete beats overdue", domain.Project{Progress: 100, StartDate: past, EstimatedCompletionDate: past}, resultCompleted},
		{"overdue", domain.Project{Progress: 40, StartDate: past, EstimatedCompletionDate: ptr(testNow.Add(-time.Minute))}, resultOverdue},
		{"overdue without start", domain.Project{EstimatedCompletionDate: past}, resultOverdue},
		{"no start", domain.Project{Progress: 30}, resultPlanned},
		{"future start", domain.Project{StartDate: future, EstimatedCompletionDate: ptr(testNow.AddDate(0, 0, 5))}, resultPlanned},
		{"started at zero", domain.Project{StartDate: past, EstimatedCompletionDate: future}, resultNotStarted},
		{"started exactly now", domain.Project{StartDate: ptr(testNow)}, resultNotStarted},
		{"started with progress", domain.Project{Progress: 5, StartDate: past, EstimatedCompletionDate: future}, resultInProgress},
		{"estimated equals now is not overdue", domain.Project{Progress: 5, StartDate: past, EstimatedCompletionDate: ptr(testNow)}, resultInProgress},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(&tt.project, testNow))
		})
	}
}

func TestClassify_Colors(t *testing.T) {
	r := Classify(&domain.Project{Progress: 100}, testNow)
	assert.Equal(t, domain.StatusCompleted, r.Status)
	assert.Equal(t, "#dcfce7", r.Background)
	assert.Equal(t, "#166534", r.Text)

	r = Classify(&domain.Project{}, testNow)
	assert.Equal(t, "#fef9c3", r.Background)
	assert.Equal(t, "#854d0e", r.Text)

	bg, fg := StatusColors(domain.StatusOverdue)
	assert.Equal(t, "#ef4444", bg)
	assert.Equal(t, "#ffffff", fg)
}

// TestClassify_CompleteAlwaysWins property-tests that progress 100 yields
// Concluído for any combination of dates.
func TestClassify_CompleteAlwaysWins(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for trial := 0; trial < 500; trial++ {
		p := randomProject(rng, "p")
		p.Progress = 100
		assert.Equal(t, domain.StatusCompleted, Classify(&p, testNow).Status)
	}
}

// TestClassify_OverdueWhenPastEstimate property-tests the overdue rule for
// every incomplete project.
func TestClassify_OverdueWhenPastEstimate(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for trial := 0; trial < 500; trial++ {
		p := randomProject(rng, "p")
		p.Progress = rng.Intn(100)
		p.EstimatedCompletionDate = ptr(testNow.Add(-time.Duration(rng.Intn(10000)+1) * time.Minute))
		assert.Equal(t, domain.StatusOverdue, Classify(&p, testNow).Status)
	}
}

func TestPredictor_UsesClock(t *testing.T) {
	start := testNow
	end := testNow.AddDate(0, 0, 10)
	p := domain.Project{StartDate: &start, EstimatedCompletionDate: &end}

	pr := NewPredictor(func() time.Time { return testNow.AddDate(0, 0, 1) })
	assert.Equal(t, domain.StatusNotStarted, pr.Classify(&p).Status)
	assert.Equal(t, 10, pr.Predict(&p))
	assert.Equal(t, 10, pr.Lag(&p))

	assert.NotNil(t, NewPredictor(nil).Clock)
}

// randomProject builds a project with random optional dates around testNow.
func randomProject(rng *rand.Rand, id string) domain.Project {
	p := domain.Project{ID: id, Progress: rng.Intn(101)}
	if rng.Intn(4) > 0 {
		p.StartDate = ptr(testNow.Add(time.Duration(rng.Intn(20000)-10000) * time.Minute))
	}
	if rng.Intn(4) > 0 {
		p.EstimatedCompletionDate = ptr(testNow.Add(time.Duration(rng.Intn(20000)-10000) * time.Minute))
	}
	return p
}
