package service

import (
	"context"
	"time"

	"github.com/alexanderramin/canteiro/internal/app"
	"github.com/alexanderramin/canteiro/internal/domain"
	"github.com/alexanderramin/canteiro/internal/importer"
	"github.com/alexanderramin/canteiro/internal/store"
)

// ProjectService owns every project mutation. Each successful write bumps the
// store revision and announces it on the notifier.
type ProjectService interface {
	Create(ctx context.Context, p *domain.Project) error
	Get(ctx context.Context, id string) (*domain.Project, error)
	ListStored(ctx context.Context, scope domain.ReadScope) ([]importer.StoredProject, error)
	SetProgress(ctx context.Context, id string, progress int) error
	AppendActivity(ctx context.Context, id, text, userEmail string) error
	AppendObservation(ctx context.Context, id, text string) error
	SetAgenda(ctx context.Context, id string, date time.Time) error
	SetClearance(ctx context.Context, id string, cp domain.Checkpoint, at time.Time) error
	Complete(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

// DirectoryService manages users, contractors and the contractor roster.
type DirectoryService interface {
	AddUser(ctx context.Context, u *domain.User) error
	GetUser(ctx context.Context, email string) (*domain.User, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
	AddContractor(ctx context.Context, c *domain.Contractor) error
	ListContractors(ctx context.Context) ([]domain.Contractor, error)
	AddRosterEntry(ctx context.Context, e *domain.RosterEntry) error
	ListRoster(ctx context.Context) ([]domain.RosterEntry, error)
}

type QueryService interface {
	app.QueryUseCase
}

type StatusService interface {
	app.StatusUseCase
}

type ExportService interface {
	app.ExportUseCase
}

type ImportService interface {
	app.ImportUseCase
}

// SyncService opens live sessions that follow the store.
type SyncService interface {
	// Start provisions a session for email and keeps it current until ctx
	// is done. The first snapshot is loaded before Start returns.
	Start(ctx context.Context, email string) (*store.Session, error)
}
