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

func TestSyncService_StartLoadsAndFollows(t *testing.T) {
	env := newTestEnv(t)
	env.addUser(t, testutil.NewTestUser("viewer@example.com", testutil.WithContractorIDs("c1")))
	env.addProject(t, testutil.NewTestProject("Primeira", testutil.WithContractor("c1", "Alfa")))
	env.addProject(t, testutil.NewTestProject("Outra empresa", testutil.WithContractor("c2", "Beta")))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	svc := NewSyncService(env.users, env.projects, nil, 10*time.Millisecond, time.UTC, nil)
	sess, err := svc.Start(ctx, "viewer@example.com")
	require.NoError(t, err)

	st := sess.State()
	require.Len(t, st.Projects, 1)
	assert.Equal(t, "Primeira", st.Projects[0].Name)
	assert.False(t, st.Loading)

	projects := NewProjectService(env.projects, nil)
	require.NoError(t, projects.Create(ctx, &domain.Project{Name: "Segunda", ContractorID: "c1"}))

	require.Eventually(t, func() bool {
		return len(sess.State().Projects) == 2
	}, 2*time.Second, 10*time.Millisecond)
}

func TestSyncService_UnknownUser(t *testing.T) {
	env := newTestEnv(t)
	svc := NewSyncService(env.users, env.projects, nil, time.Second, time.UTC, nil)

	_, err := svc.Start(context.Background(), "ghost@example.com")
	assert.ErrorIs(t, err, app.ErrUnknownUser)
}
