package app

import (
	"time"

	"github.com/alexanderramin/canteiro/internal/domain"
	"github.com/alexanderramin/canteiro/internal/tracking"
)

type StatusRequest struct {
	Now       *time.Time
	UserEmail string
	Criteria  tracking.Criteria
}

// ProjectStatusView is one project as the status board renders it.
type ProjectStatusView struct {
	ProjectID   string
	DisplayID   string
	Name        string
	OrderNumber string
	Contractor  string
	Critical    bool

	Status     domain.Status
	Background string
	Text       string

	Progress  int
	Predicted int
	// Lag is predicted minus reported progress; positive means behind plan.
	Lag int

	StartDate               *time.Time
	EstimatedCompletionDate *time.Time
	Agenda                  *time.Time

	ClearedCount int
	// SinceClearance is the time since the most recent checkpoint clearance
	// of an open project. Empty when nothing was cleared yet.
	SinceClearance tracking.Elapsed
}

type StatusResponse struct {
	GeneratedAt time.Time
	User        domain.User
	Summary     tracking.Summary
	Projects    []ProjectStatusView
}
