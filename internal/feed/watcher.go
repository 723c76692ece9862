package feed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/canteiro/internal/domain"
	"github.com/alexanderramin/canteiro/internal/importer"
	"github.com/alexanderramin/canteiro/internal/logging"
	"github.com/alexanderramin/canteiro/internal/store"
	"go.uber.org/zap"
)

// DefaultPollInterval is how often the revision is checked when no
// notification arrives.
const DefaultPollInterval = 5 * time.Second

// Source is the read side of the document store.
type Source interface {
	Revision(ctx context.Context) (int64, error)
	ListStored(ctx context.Context, scope domain.ReadScope) ([]importer.StoredProject, error)
}

// Watcher keeps a session's collection in step with the store. It reloads
// whenever the store revision moves, a notifier announces a change, or the
// session starts loading because its read scope changed.
type Watcher struct {
	src      Source
	session  *store.Session
	notifier Notifier
	interval time.Duration
	logger   *zap.Logger

	lastRev int64
}

type WatcherOption func(*Watcher)

func WithNotifier(n Notifier) WatcherOption {
	return func(w *Watcher) { w.notifier = n }
}

func WithPollInterval(d time.Duration) WatcherOption {
	return func(w *Watcher) { w.interval = d }
}

func WithLogger(l *zap.Logger) WatcherOption {
	return func(w *Watcher) { w.logger = l }
}

func NewWatcher(src Source, session *store.Session, opts ...WatcherOption) *Watcher {
	w := &Watcher{
		src:      src,
		session:  session,
		notifier: NopNotifier{},
		interval: DefaultPollInterval,
		lastRev:  -1,
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.interval <= 0 {
		w.interval = DefaultPollInterval
	}
	w.logger = logging.OrNop(w.logger)
	return w
}

// Sync loads one snapshot for the session's current scope. A snapshot
// overtaken by a scope change is retried once under the new scope.
func (w *Watcher) Sync(ctx context.Context) error {
	for attempt := 0; attempt < 2; attempt++ {
		err := w.syncOnce(ctx)
		if !errors.Is(err, store.ErrStaleSnapshot) {
			return err
		}
		w.logger.Debug("snapshot overtaken by scope change, retrying")
	}
	return store.ErrStaleSnapshot
}

func (w *Watcher) syncOnce(ctx context.Context) error {
	token := w.session.BeginSnapshot()

	rev, err := w.src.Revision(ctx)
	if err != nil {
		return fmt.Errorf("reading revision: %w", err)
	}
	stored, err := w.src.ListStored(ctx, token.Scope)
	if err != nil {
		return fmt.Errorf("loading snapshot: %w", err)
	}
	if err := w.session.ApplySnapshot(token, stored); err != nil {
		return err
	}
	w.lastRev = rev
	w.logger.Debug("snapshot synced", zap.Int64("revision", rev), zap.Int("records", len(stored)))
	return nil
}

// Run syncs immediately and then keeps the session current until ctx is
// done. Sync failures are logged and retried on the next trigger.
func (w *Watcher) Run(ctx context.Context) error {
	changes := w.notifier.Changes(ctx)
	sessionChanged, unsubscribe := w.session.Subscribe()
	defer unsubscribe()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.trySync(ctx)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			w.pollRevision(ctx)
		case _, ok := <-changes:
			if !ok {
				changes = nil
				continue
			}
			w.trySync(ctx)
		case <-sessionChanged:
			if w.session.Loading() {
				w.trySync(ctx)
			}
		}
	}
}

func (w *Watcher) pollRevision(ctx context.Context) {
	rev, err := w.src.Revision(ctx)
	if err != nil {
		w.logger.Warn("revision poll failed", zap.Error(err))
		return
	}
	if rev != w.lastRev || w.session.Loading() {
		w.trySync(ctx)
	}
}

func (w *Watcher) trySync(ctx context.Context) {
	if err := w.Sync(ctx); err != nil && ctx.Err() == nil {
		w.logger.Warn("snapshot sync failed", zap.Error(err))
	}
}
