package service

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/canteiro/internal/app"
	"github.com/alexanderramin/canteiro/internal/domain"
	"github.com/alexanderramin/canteiro/internal/testutil"
	"github.com/alexanderramin/canteiro/internal/tracking"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedScopedProjects(t *testing.T, env *testEnv) {
	t.Helper()
	week := 7 * 24 * time.Hour
	env.addProject(t, testutil.NewTestProject("Alfa concluída",
		testutil.WithContractor("c1", "Alfa"),
		testutil.WithWindow(testNow.Add(-week), testNow.Add(week)),
		testutil.WithCompletion(testNow.Add(-time.Hour))))
	env.addProject(t, testutil.NewTestProject("Alfa atrasada",
		testutil.WithContractor("c1", "Alfa"),
		testutil.WithWindow(testNow.Add(-2*week), testNow.Add(-week)),
		testutil.WithProgress(40)))
	env.addProject(t, testutil.NewTestProject("Beta planejada",
		testutil.WithContractor("c2", "Beta"),
		testutil.WithWindow(testNow.Add(week), testNow.Add(2*week))))
}

func TestQueryService_ScopesByUser(t *testing.T) {
	env := newTestEnv(t)
	seedScopedProjects(t, env)
	env.addUser(t, testutil.NewTestUser("viewer@example.com", testutil.WithContractorIDs("c1")))
	env.addUser(t, testutil.NewTestUser("boss@example.com", testutil.WithRole(domain.RoleManager), testutil.WithContractorIDs()))
	env.addUser(t, testutil.NewTestUser("orphan@example.com", testutil.WithContractorIDs()))

	svc := NewQueryService(env.users, env.projects, time.UTC, nil)
	ctx := context.Background()

	tests := []struct {
		email string
		want  int
	}{
		{"viewer@example.com", 2},
		{"boss@example.com", 3},
		{"orphan@example.com", 0},
	}
	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			resp, err := svc.ListProjects(ctx, app.QueryRequest{Now: &testNow, UserEmail: tt.email})
			require.NoError(t, err)
			assert.Len(t, resp.Projects, tt.want)
			assert.Equal(t, tt.want, resp.Total)
		})
	}
}

func TestQueryService_AppliesCriteria(t *testing.T) {
	env := newTestEnv(t)
	seedScopedProjects(t, env)
	env.addUser(t, testutil.NewTestUser("boss@example.com", testutil.WithRole(domain.RoleAdmin)))

	svc := NewQueryService(env.users, env.projects, time.UTC, nil)
	resp, err := svc.ListProjects(context.Background(), app.QueryRequest{
		Now:       &testNow,
		UserEmail: "boss@example.com",
		Criteria:  tracking.Criteria{Status: domain.StatusInProgress},
	})
	require.NoError(t, err)

	require.Len(t, resp.Projects, 1)
	assert.Equal(t, "Alfa atrasada", resp.Projects[0].Name, "the open-work bucket includes overdue projects")
	assert.Equal(t, 3, resp.Total)
}

func TestQueryService_UnknownUser(t *testing.T) {
	env := newTestEnv(t)
	svc := NewQueryService(env.users, env.projects, time.UTC, nil)

	_, err := svc.ListProjects(context.Background(), app.QueryRequest{UserEmail: "ghost@example.com"})
	assert.ErrorIs(t, err, app.ErrUnknownUser)
}
