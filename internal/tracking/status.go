package tracking

import (
	"time"

	"github.com/alexanderramin/canteiro/internal/domain"
)

// StatusResult is a derived status label with its badge colors.
type StatusResult struct {
	Status     domain.Status
	Background string
	Text       string
}

var (
	resultCompleted  = StatusResult{domain.StatusCompleted, "#dcfce7", "#166534"}
	resultOverdue    = StatusResult{domain.StatusOverdue, "#ef4444", "#ffffff"}
	resultPlanned    = StatusResult{domain.StatusPlanned, "#fef9c3", "#854d0e"}
	resultNotStarted = StatusResult{domain.StatusNotStarted, "#3b82f6", "#ffffff"}
	resultInProgress = StatusResult{domain.StatusInProgress, "#f97316", "#ffffff"}
)

// StatusColors returns the badge colors of a status label.
func StatusColors(s domain.Status) (background, text string) {
	switch s {
	case domain.StatusCompleted:
		return resultCompleted.Background, resultCompleted.Text
	case domain.StatusOverdue:
		return resultOverdue.Background, resultOverdue.Text
	case domain.StatusNotStarted:
		return resultNotStarted.Background, resultNotStarted.Text
	case domain.StatusInProgress:
		return resultInProgress.Background, resultInProgress.Text
	default:
		return resultPlanned.Background, resultPlanned.Text
	}
}

// Classify derives the status of p at now. Rules are evaluated in order and
// the first match wins:
// 1. Progress 100: Concluído (even when past the estimated date)
// 2. Past the estimated completion date: Atrasado
// 3. No start date, or start still in the future: Planejado
// 4. Started with zero progress: Não Iniciado
// 5. Started with some progress: Em Andamento
func Classify(p *domain.Project, now time.Time) StatusResult {
	if p.Progress == 100 {
		return resultCompleted
	}

	if p.EstimatedCompletionDate != nil && now.After(*p.EstimatedCompletionDate) {
		return resultOverdue
	}

	if p.StartDate == nil {
		return resultPlanned
	}
	start := *p.StartDate

	if now.Before(start) {
		return resultPlanned
	}

	if p.Progress == 0 {
		return resultNotStarted
	}
	if p.Progress > 0 {
		return resultInProgress
	}

	// Negative progress only reaches here through unchecked input.
	return resultPlanned
}
