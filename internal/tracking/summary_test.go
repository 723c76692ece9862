package tracking

import (
	"testing"
	"time"

	"github.com/alexanderramin/canteiro/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestSummarize(t *testing.T) {
	past := ptr(testNow.AddDate(0, 0, -3))
	future := ptr(testNow.AddDate(0, 0, 3))
	today := ptr(testNow.Add(-time.Hour))
	projects := []domain.Project{
		{ID: "1", StartDate: future, CreatedAt: today, Critical: true},
		{ID: "2", StartDate: past, EstimatedCompletionDate: future},
		{ID: "3", StartDate: past, EstimatedCompletionDate: future, Progress: 10, Critical: true},
		{ID: "4", Progress: 100, CompletionDate: today, CreatedAt: past},
		{ID: "5", Progress: 60, EstimatedCompletionDate: past},
	}

	sum := Summarize(projects, testNow, time.UTC)
	assert.Equal(t, 5, sum.Total)
	assert.Equal(t, 1, sum.ProjectsCreated)
	assert.Equal(t, 1, sum.ProjectsCompleted)
	assert.Equal(t, 2, sum.Critical)
	assert.Equal(t, 1, sum.Count(domain.StatusPlanned))
	assert.Equal(t, 1, sum.Count(domain.StatusNotStarted))
	assert.Equal(t, 1, sum.Count(domain.StatusInProgress))
	assert.Equal(t, 1, sum.Count(domain.StatusOverdue))
	assert.Equal(t, 1, sum.Count(domain.StatusCompleted))
	assert.Equal(t, time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC), sum.Date)
}

func TestSummarize_Empty(t *testing.T) {
	sum := Summarize(nil, testNow, nil)
	assert.Equal(t, 0, sum.Total)
	assert.Len(t, sum.ByStatus, len(domain.Statuses))
}
