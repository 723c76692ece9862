package service

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alexanderramin/canteiro/internal/domain"
	"github.com/alexanderramin/canteiro/internal/export"
	"github.com/alexanderramin/canteiro/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

const snapshotJSON = `{
	"contractors": [{"id": "c1", "name": "Alfa Engenharia"}],
	"users": [
		{"id": "u1", "name": "Ana", "email": "ANA@example.com", "role": "gerente"},
		{"id": "u2", "name": "Sem email"}
	],
	"rainbow": [{"nomeFantasia": "Alfa", "funcionario": "Rita"}],
	"projects": [
		{"id": "p1", "name": "Troca de válvula", "contractorId": "c1", "progress": "30",
		 "startDate": {"seconds": 1741000000, "nanoseconds": 0},
		 "estimatedCompletionDate": "2025-03-30T18:00:00Z",
		 "leader": "Carlos"},
		{"id": "p2", "name": "Registro quebrado", "progress": 250, "startDate": "ontem"},
		"not a record"
	]
}`

func writeTemp(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestImportService_ImportsJSONSnapshot(t *testing.T) {
	env := newTestEnv(t)
	n := &recordingNotifier{}
	svc := NewImportService(testutil.NewTestUoW(env.db), n, time.UTC)
	ctx := context.Background()

	res, err := svc.ImportFile(ctx, writeTemp(t, "snap.json", []byte(snapshotJSON)))
	require.NoError(t, err)

	assert.Equal(t, 2, res.Projects)
	assert.Equal(t, 1, res.Contractors)
	assert.Equal(t, 1, res.Users)
	assert.Equal(t, 1, res.Roster)
	assert.NotEmpty(t, res.Warnings)
	assert.Contains(t, res.Warnings[0], "1 entries skipped")

	p1, err := env.projects.Get(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 30, p1.Progress)
	assert.Equal(t, []string{"Carlos"}, p1.Leader)

	p2, err := env.projects.Get(ctx, "p2")
	require.NoError(t, err)
	assert.Equal(t, 100, p2.Progress)
	assert.Nil(t, p2.StartDate)

	u, err := env.users.GetByEmail(ctx, "ana@example.com")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleManager, u.Role)

	require.Len(t, n.revisions, 1)
}

func TestImportService_RollsBackOnFailure(t *testing.T) {
	env := newTestEnv(t)
	boom := errors.New("disk full")
	uow := &testutil.FailOnNthExecUoW{DB: env.db, FailOn: 5, Err: boom}
	n := &recordingNotifier{}
	svc := NewImportService(uow, n, time.UTC)
	ctx := context.Background()

	_, err := svc.ImportFile(ctx, writeTemp(t, "snap.json", []byte(snapshotJSON)))
	require.ErrorIs(t, err, boom)

	_, err = env.users.GetByEmail(ctx, "ana@example.com")
	assert.Error(t, err, "users written before the failure are rolled back")
	list, err := env.contractors.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.Empty(t, n.revisions)
}

func TestImportService_ImportsFilledTemplate(t *testing.T) {
	env := newTestEnv(t)
	svc := NewImportService(testutil.NewTestUoW(env.db), nil, time.UTC)
	ctx := context.Background()

	var buf bytes.Buffer
	require.NoError(t, export.WriteTemplate(&buf))
	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	require.NoError(t, f.SetCellValue(export.SheetTemplateProjects, "B2", "Troca de correia"))
	require.NoError(t, f.SetCellValue(export.SheetTemplateRoster, "A2", "Alfa"))
	require.NoError(t, f.SetCellValue(export.SheetTemplateRoster, "B2", "Rita"))
	var filled bytes.Buffer
	require.NoError(t, f.Write(&filled))
	require.NoError(t, f.Close())

	res, err := svc.ImportFile(ctx, writeTemp(t, "preenchido.xlsx", filled.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, 1, res.Projects)
	assert.Equal(t, 1, res.Roster)

	roster, err := env.roster.List(ctx)
	require.NoError(t, err)
	require.Len(t, roster, 1)
	assert.Equal(t, "Rita", roster[0].Funcionario)
}

func TestImportService_MissingFile(t *testing.T) {
	env := newTestEnv(t)
	svc := NewImportService(testutil.NewTestUoW(env.db), nil, time.UTC)

	_, err := svc.ImportFile(context.Background(), filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading import file")
}
