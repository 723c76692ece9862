package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alexanderramin/canteiro/internal/domain"
	"github.com/alexanderramin/canteiro/internal/repository"
	"github.com/alexanderramin/canteiro/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProjectService(t *testing.T, env *testEnv, n *recordingNotifier, obs *recordingObserver) ProjectService {
	t.Helper()
	svc := NewProjectService(env.projects, n, obs)
	svc.(*projectService).clock = fixedClock(testNow)
	return svc
}

func TestProjectService_CreateAssignsIDAndNotifies(t *testing.T) {
	env := newTestEnv(t)
	n := &recordingNotifier{}
	obs := &recordingObserver{}
	svc := newTestProjectService(t, env, n, obs)
	ctx := context.Background()

	p := &domain.Project{Name: "Troca de bomba"}
	require.NoError(t, svc.Create(ctx, p))

	assert.NotEmpty(t, p.ID)
	require.NotNil(t, p.CreatedAt)
	assert.True(t, p.CreatedAt.Equal(testNow))
	require.Len(t, n.revisions, 1)
	assert.Equal(t, int64(1), n.revisions[0])

	require.Len(t, obs.events, 1)
	assert.Equal(t, "create-project", obs.events[0].Name)
	assert.True(t, obs.events[0].Success)
}

func TestProjectService_CreateValidates(t *testing.T) {
	env := newTestEnv(t)
	svc := newTestProjectService(t, env, &recordingNotifier{}, &recordingObserver{})
	ctx := context.Background()

	start := testNow
	before := testNow.Add(-time.Hour)

	tests := []struct {
		name string
		p    domain.Project
		want string
	}{
		{"missing name", domain.Project{}, "name is required"},
		{"end before start", domain.Project{Name: "x", StartDate: &start, EstimatedCompletionDate: &before}, "precedes start"},
		{"progress out of range", domain.Project{Name: "x", Progress: 120}, "outside 0-100"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := tt.p
			err := svc.Create(ctx, &p)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestProjectService_SetProgressAppendsHistory(t *testing.T) {
	env := newTestEnv(t)
	n := &recordingNotifier{}
	svc := newTestProjectService(t, env, n, &recordingObserver{})
	ctx := context.Background()

	p := testutil.NewTestProject("Montagem")
	env.addProject(t, p)

	require.NoError(t, svc.SetProgress(ctx, p.ID, 35))
	require.NoError(t, svc.SetProgress(ctx, p.ID, 100))

	got, err := svc.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 100, got.Progress)
	require.Len(t, got.ProgressHistory, 2)
	assert.Equal(t, 35, got.ProgressHistory[0].Progress)
	require.NotNil(t, got.CompletionDate)
	assert.True(t, got.CompletionDate.Equal(testNow))
	assert.Len(t, n.revisions, 2)

	assert.Error(t, svc.SetProgress(ctx, p.ID, -1))
}

func TestProjectService_AgendaActivityObservation(t *testing.T) {
	env := newTestEnv(t)
	svc := newTestProjectService(t, env, &recordingNotifier{}, &recordingObserver{})
	ctx := context.Background()

	p := testutil.NewTestProject("Isolamento térmico")
	env.addProject(t, p)

	day := time.Date(2025, 3, 20, 0, 0, 0, 0, time.UTC)
	require.NoError(t, svc.SetAgenda(ctx, p.ID, day))
	require.NoError(t, svc.AppendActivity(ctx, p.ID, "  Andaime montado  ", "ana@example.com"))
	require.NoError(t, svc.AppendObservation(ctx, p.ID, "Aguardando PT"))
	assert.Error(t, svc.AppendActivity(ctx, p.ID, "   ", "ana@example.com"))

	got, err := svc.Get(ctx, p.ID)
	require.NoError(t, err)

	latest, ok := got.LatestAgenda()
	require.True(t, ok)
	assert.True(t, latest.Date.Equal(day))
	assert.True(t, latest.SetAt.Equal(testNow))

	require.Len(t, got.ActivitySummary, 1)
	assert.Equal(t, "Andaime montado", got.ActivitySummary[0].Text)
	assert.Equal(t, "ana@example.com", got.ActivitySummary[0].UserEmail)
	require.Len(t, got.ObservationHistory, 1)
	assert.Equal(t, "Aguardando PT", got.ObservationHistory[0].Text)
}

func TestProjectService_SetClearance(t *testing.T) {
	env := newTestEnv(t)
	svc := newTestProjectService(t, env, &recordingNotifier{}, &recordingObserver{})
	ctx := context.Background()

	p := testutil.NewTestProject("Caldeira")
	env.addProject(t, p)

	at := testNow.Add(-2 * time.Hour)
	require.NoError(t, svc.SetClearance(ctx, p.ID, domain.CheckpointPT, at))
	require.NoError(t, svc.SetClearance(ctx, p.ID, domain.CheckpointSupervisor, time.Time{}))

	got, err := svc.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.ClearedCount())
	assert.True(t, got.Clearances[domain.CheckpointPT].Equal(at))
	assert.True(t, got.Clearances[domain.CheckpointSupervisor].Equal(testNow), "zero time clears at now")

	err = svc.SetClearance(ctx, p.ID, domain.Checkpoint("bogus"), at)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown checkpoint")
}

func TestProjectService_Complete(t *testing.T) {
	env := newTestEnv(t)
	svc := newTestProjectService(t, env, &recordingNotifier{}, &recordingObserver{})
	ctx := context.Background()

	p := testutil.NewTestProject("Pintura", testutil.WithProgress(60))
	env.addProject(t, p)

	require.NoError(t, svc.Complete(ctx, p.ID))
	got, err := svc.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 100, got.Progress)
	require.NotNil(t, got.CompletionDate)

	err = svc.Complete(ctx, p.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already complete")
}

func TestProjectService_MutateMissingProject(t *testing.T) {
	env := newTestEnv(t)
	obs := &recordingObserver{}
	svc := newTestProjectService(t, env, &recordingNotifier{}, obs)

	err := svc.SetProgress(context.Background(), "nope", 10)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	require.Len(t, obs.events, 1)
	assert.False(t, obs.events[0].Success)
}

func TestProjectService_DeleteNotifies(t *testing.T) {
	env := newTestEnv(t)
	n := &recordingNotifier{}
	svc := newTestProjectService(t, env, n, &recordingObserver{})
	ctx := context.Background()

	p := testutil.NewTestProject("Demolição")
	env.addProject(t, p)

	require.NoError(t, svc.Delete(ctx, p.ID))
	_, err := svc.Get(ctx, p.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.Len(t, n.revisions, 1)
}

func TestProjectService_NotifyFailureDoesNotFailWrite(t *testing.T) {
	env := newTestEnv(t)
	n := &recordingNotifier{err: errors.New("redis down")}
	obs := &recordingObserver{}
	svc := newTestProjectService(t, env, n, obs)

	require.NoError(t, svc.Create(context.Background(), &domain.Project{Name: "x"}))
	require.Len(t, obs.events, 1)
	assert.Equal(t, "redis down", obs.events[0].Fields["notify_error"])
}
