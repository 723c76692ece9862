package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/alexanderramin/canteiro/internal/domain"
	"github.com/alexanderramin/canteiro/internal/repository"
	"github.com/alexanderramin/canteiro/internal/testutil"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)

type testEnv struct {
	db          *sql.DB
	projects    *repository.SQLiteProjectRepo
	users       *repository.SQLiteUserRepo
	contractors *repository.SQLiteContractorRepo
	roster      *repository.SQLiteRosterRepo
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := testutil.NewTestDB(t)
	return &testEnv{
		db:          db,
		projects:    repository.NewSQLiteProjectRepo(db),
		users:       repository.NewSQLiteUserRepo(db),
		contractors: repository.NewSQLiteContractorRepo(db),
		roster:      repository.NewSQLiteRosterRepo(db),
	}
}

func (e *testEnv) addUser(t *testing.T, u *domain.User) {
	t.Helper()
	require.NoError(t, e.users.Upsert(context.Background(), u))
}

func (e *testEnv) addProject(t *testing.T, p *domain.Project) {
	t.Helper()
	require.NoError(t, e.projects.Put(context.Background(), p))
}

// fixedClock returns a clock stuck at t.
func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

type recordingObserver struct {
	events []UseCaseEvent
}

func (o *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	o.events = append(o.events, e)
}

type recordingNotifier struct {
	revisions []int64
	err       error
}

func (n *recordingNotifier) Publish(_ context.Context, rev int64) error {
	n.revisions = append(n.revisions, rev)
	return n.err
}

func (n *recordingNotifier) Changes(ctx context.Context) <-chan struct{} {
	ch := make(chan struct{})
	go func() {
		<-ctx.Done()
		close(ch)
	}()
	return ch
}
