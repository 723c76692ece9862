package service

import (
	"context"
	"errors"
	"time"

	"github.com/alexanderramin/canteiro/internal/feed"
	"github.com/alexanderramin/canteiro/internal/logging"
	"github.com/alexanderramin/canteiro/internal/repository"
	"github.com/alexanderramin/canteiro/internal/store"
	"go.uber.org/zap"
)

type syncService struct {
	users    repository.UserRepo
	source   feed.Source
	notifier feed.Notifier
	interval time.Duration
	loc      *time.Location
	logger   *zap.Logger
}

func NewSyncService(
	users repository.UserRepo,
	source feed.Source,
	notifier feed.Notifier,
	interval time.Duration,
	loc *time.Location,
	logger *zap.Logger,
) SyncService {
	if notifier == nil {
		notifier = feed.NopNotifier{}
	}
	return &syncService{
		users:    users,
		source:   source,
		notifier: notifier,
		interval: interval,
		loc:      locOrLocal(loc),
		logger:   logging.OrNop(logger),
	}
}

func (s *syncService) Start(ctx context.Context, email string) (*store.Session, error) {
	u, err := resolveUser(ctx, s.users, email)
	if err != nil {
		return nil, err
	}

	logger := s.logger.With(zap.String("user", u.Email))
	sess := store.NewSession(store.WithLocation(s.loc), store.WithLogger(logger))
	sess.Dispatch(store.SetCurrentUser{User: u})

	w := feed.NewWatcher(s.source, sess,
		feed.WithNotifier(s.notifier),
		feed.WithPollInterval(s.interval),
		feed.WithLogger(logger),
	)
	if err := w.Sync(ctx); err != nil {
		return nil, err
	}

	go func() {
		if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Warn("session watcher stopped", zap.Error(err))
		}
	}()
	return sess, nil
}
