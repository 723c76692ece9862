package repository

import (
	"context"
	"errors"

	"github.com/alexanderramin/canteiro/internal/domain"
	"github.com/alexanderramin/canteiro/internal/importer"
)

// ErrNotFound is wrapped by every lookup that matches no row.
var ErrNotFound = errors.New("not found")

// ProjectRepo stores whole project documents. Every write bumps the store
// revision so watchers can tell the collection changed.
type ProjectRepo interface {
	Put(ctx context.Context, p *domain.Project) error
	Get(ctx context.Context, id string) (*domain.Project, error)
	ListStored(ctx context.Context, scope domain.ReadScope) ([]importer.StoredProject, error)
	Delete(ctx context.Context, id string) error
	Revision(ctx context.Context) (int64, error)
}

type UserRepo interface {
	Upsert(ctx context.Context, u *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
}

type ContractorRepo interface {
	Create(ctx context.Context, c *domain.Contractor) error
	GetByID(ctx context.Context, id string) (*domain.Contractor, error)
	List(ctx context.Context) ([]domain.Contractor, error)
}

type RosterRepo interface {
	Create(ctx context.Context, e *domain.RosterEntry) error
	List(ctx context.Context) ([]domain.RosterEntry, error)
}
