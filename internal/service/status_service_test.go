package service

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/canteiro/internal/app"
	"github.com/alexanderramin/canteiro/internal/domain"
	"github.com/alexanderramin/canteiro/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusService_BuildsViewsAndSummary(t *testing.T) {
	env := newTestEnv(t)
	seedScopedProjects(t, env)
	env.addUser(t, testutil.NewTestUser("boss@example.com", testutil.WithRole(domain.RoleAdmin)))

	svc := NewStatusService(env.users, env.projects, time.UTC, nil)
	resp, err := svc.GetStatus(context.Background(), app.StatusRequest{Now: &testNow, UserEmail: "boss@example.com"})
	require.NoError(t, err)

	assert.Equal(t, testNow, resp.GeneratedAt)
	assert.Equal(t, 3, resp.Summary.Total)
	assert.Equal(t, 1, resp.Summary.Count(domain.StatusCompleted))
	assert.Equal(t, 1, resp.Summary.Count(domain.StatusOverdue))
	assert.Equal(t, 1, resp.Summary.Count(domain.StatusPlanned))
	assert.Equal(t, 1, resp.Summary.ProjectsCompleted)

	byName := map[string]app.ProjectStatusView{}
	for _, v := range resp.Projects {
		byName[v.Name] = v
	}

	late := byName["Alfa atrasada"]
	assert.Equal(t, domain.StatusOverdue, late.Status)
	assert.Equal(t, "#ef4444", late.Background)
	assert.Equal(t, "#ffffff", late.Text)
	assert.Equal(t, 100, late.Predicted)
	assert.Equal(t, 60, late.Lag)

	planned := byName["Beta planejada"]
	assert.Equal(t, domain.StatusPlanned, planned.Status)
	assert.Equal(t, 0, planned.Predicted)
	assert.Len(t, planned.DisplayID, 8)
}

func TestStatusService_SinceClearance(t *testing.T) {
	env := newTestEnv(t)
	env.addUser(t, testutil.NewTestUser("boss@example.com", testutil.WithRole(domain.RoleAdmin)))

	p := testutil.NewTestProject("Com PT",
		testutil.WithWindow(testNow.Add(-time.Hour), testNow.Add(time.Hour)),
		testutil.WithProgress(50))
	p.Clearances[domain.CheckpointStart] = testNow.Add(-90 * time.Minute)
	p.Clearances[domain.CheckpointPT] = testNow.Add(-45 * time.Minute)
	env.addProject(t, p)

	svc := NewStatusService(env.users, env.projects, time.UTC, nil)
	resp, err := svc.GetStatus(context.Background(), app.StatusRequest{Now: &testNow, UserEmail: "boss@example.com"})
	require.NoError(t, err)
	require.Len(t, resp.Projects, 1)

	v := resp.Projects[0]
	assert.Equal(t, "00:45", v.SinceClearance.Text)
	assert.True(t, v.SinceClearance.IsOverdue)
	assert.Equal(t, 2, v.ClearedCount)
}
