package testutil

import (
	"time"

	"github.com/alexanderramin/canteiro/internal/domain"
	"github.com/google/uuid"
)

// Project options
type ProjectOption func(*domain.Project)

func WithContractor(id, name string) ProjectOption {
	return func(p *domain.Project) {
		p.ContractorID = id
		p.Contractor = name
	}
}

// WithWindow sets the planned start and estimated completion.
func WithWindow(start, end time.Time) ProjectOption {
	return func(p *domain.Project) {
		p.StartDate = &start
		p.EstimatedCompletionDate = &end
	}
}

func WithProgress(n int) ProjectOption {
	return func(p *domain.Project) {
		p.Progress = n
	}
}

func WithCompletion(t time.Time) ProjectOption {
	return func(p *domain.Project) {
		p.Progress = 100
		p.CompletionDate = &t
	}
}

func WithLeaders(names ...string) ProjectOption {
	return func(p *domain.Project) {
		p.Leader = names
	}
}

func WithOrderNumber(n string) ProjectOption {
	return func(p *domain.Project) {
		p.OrderNumber = n
	}
}

func WithCritical() ProjectOption {
	return func(p *domain.Project) {
		p.Critical = true
	}
}

func WithAgenda(date, setAt time.Time) ProjectOption {
	return func(p *domain.Project) {
		p.AgendaHistory = append(p.AgendaHistory, domain.AgendaEntry{Date: date, SetAt: setAt})
	}
}

// NewTestProject builds a project that runs from a week ago to a week from
// now, owned by contractor "c1".
func NewTestProject(name string, opts ...ProjectOption) *domain.Project {
	now := time.Now().UTC().Truncate(time.Second)
	start := now.AddDate(0, 0, -7)
	end := now.AddDate(0, 0, 7)
	p := &domain.Project{
		ID:                      uuid.New().String(),
		Name:                    name,
		Factory:                 "Fábrica 1",
		OrderNumber:             "OM-0001",
		Contractor:              "Empreiteira Alfa",
		ContractorID:            "c1",
		StartDate:               &start,
		EstimatedCompletionDate: &end,
		CreatedAt:               &now,
		Clearances:              domain.Clearances{},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// User options
type UserOption func(*domain.User)

func WithRole(r domain.UserRole) UserOption {
	return func(u *domain.User) {
		u.Role = r
	}
}

func WithContractorIDs(ids ...string) UserOption {
	return func(u *domain.User) {
		u.ContractorIDs = ids
	}
}

// NewTestUser builds a viewer bound to contractor "c1".
func NewTestUser(email string, opts ...UserOption) *domain.User {
	u := &domain.User{
		ID:            uuid.New().String(),
		Name:          email,
		Email:         email,
		Role:          domain.RoleViewer,
		ContractorIDs: []string{"c1"},
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}
