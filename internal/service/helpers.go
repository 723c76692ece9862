package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/canteiro/internal/app"
	"github.com/alexanderramin/canteiro/internal/domain"
	"github.com/alexanderramin/canteiro/internal/repository"
	"github.com/alexanderramin/canteiro/internal/store"
	"github.com/alexanderramin/canteiro/internal/tracking"
	"go.uber.org/zap"
)

// resolveUser maps a missing account to app.ErrUnknownUser.
func resolveUser(ctx context.Context, users repository.UserRepo, email string) (*domain.User, error) {
	u, err := users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: %q", app.ErrUnknownUser, email)
		}
		return nil, fmt.Errorf("loading user: %w", err)
	}
	return u, nil
}

// scopedSession loads one snapshot for email into a fresh session, the same
// path a live session takes, and applies criteria.
func scopedSession(
	ctx context.Context,
	users repository.UserRepo,
	projects repository.ProjectRepo,
	email string,
	criteria tracking.Criteria,
	loc *time.Location,
	logger *zap.Logger,
) (*store.Session, *domain.User, error) {
	u, err := resolveUser(ctx, users, email)
	if err != nil {
		return nil, nil, err
	}

	sess := store.NewSession(store.WithLocation(loc), store.WithLogger(logger))
	sess.Dispatch(store.SetCurrentUser{User: u})
	sess.Dispatch(store.SetFilters{Criteria: criteria})

	token := sess.BeginSnapshot()
	stored, err := projects.ListStored(ctx, token.Scope)
	if err != nil {
		return nil, nil, fmt.Errorf("loading projects: %w", err)
	}
	if err := sess.ApplySnapshot(token, stored); err != nil {
		return nil, nil, err
	}
	return sess, u, nil
}

func locOrLocal(loc *time.Location) *time.Location {
	if loc == nil {
		return time.Local
	}
	return loc
}
