package export

import (
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/canteiro/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)

func sampleProject() domain.Project {
	start := time.Date(2025, 3, 10, 7, 30, 0, 0, time.UTC)
	est := time.Date(2025, 3, 20, 17, 0, 0, 0, time.UTC)
	return domain.Project{
		ID:                      "proj-1",
		Name:                    "Troca de Válvula",
		Requester:               "Carlos",
		Progress:                45,
		Critical:                true,
		StartDate:               &start,
		EstimatedCompletionDate: &est,
		Factory:                 "Guaíba",
		OrderNumber:             "4500123",
		Contractor:              "ConstructCo",
		Area:                    "Caldeira",
		Leader:                  []string{"Ana", "Bruno"},
		Safety:                  []string{"Paulo"},
		Personnel:               []string{"João", "Maria"},
		TST:                     []string{},
		Clearances: domain.Clearances{
			domain.CheckpointTS: time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC),
			domain.CheckpointPT: time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC),
		},
		AgendaHistory: []domain.AgendaEntry{
			{Date: time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC), SetAt: time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC)},
			{Date: time.Date(2025, 3, 16, 0, 0, 0, 0, time.UTC), SetAt: time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)},
		},
		ActivitySummary: []domain.ActivityEntry{
			{Date: time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC), Text: "Início", UserEmail: "ana@example.com"},
			{Date: time.Date(2025, 3, 12, 8, 0, 0, 0, time.UTC), Text: "Desmontagem"},
		},
		ObservationHistory: []domain.Observation{
			{Date: time.Date(2025, 3, 11, 10, 0, 0, 0, time.UTC), Text: "Falta peça"},
		},
	}
}

func TestBuildRows_Cells(t *testing.T) {
	rows := BuildRows([]domain.Project{sampleProject()}, testNow, time.UTC)
	require.Len(t, rows, 1)
	r := rows[0]
	require.Len(t, r, len(Headers))

	assert.Equal(t, "proj-1", r.Get(ColID))
	assert.Equal(t, "Em Andamento", r.Get(ColStatus))
	assert.Equal(t, "Sim", r.Get(ColCritical))
	assert.Equal(t, "Carlos", r.Get(ColRequester))
	assert.Equal(t, "45%", r.Get(ColProgress))
	assert.Equal(t, "10/03/2025 07:30", r.Get(ColStart))
	assert.Equal(t, "20/03/2025 17:00", r.Get(ColEstimated))
	assert.Equal(t, "", r.Get(ColCompletion))
	assert.Equal(t, "16/03/2025", r.Get(ColAgenda))
	assert.Equal(t, "4500123", r.Get(ColOrder))
	assert.Equal(t, "Ana, Bruno", r.Get(ColLeader))
	assert.Equal(t, "João, Maria", r.Get(ColPersonnel))
	assert.Equal(t, "", r.Get(ColTST))
	assert.Equal(t, "PT: 10/03/2025 08:00\nTS: 10/03/2025 09:00", r.Get(ColClearances))
	assert.Equal(t,
		"12/03/2025 08:00 (Sistema): Desmontagem\n10/03/2025 08:00 (ana@example.com): Início",
		r.Get(ColActivities))
	assert.Equal(t, "11/03/2025 10:00: Falta peça", r.Get(ColObservations))
	assert.Equal(t, "", r.Get("Inexistente"))
}

func TestBuildRows_DoesNotReorderInput(t *testing.T) {
	p := sampleProject()
	BuildRows([]domain.Project{p}, testNow, time.UTC)
	assert.Equal(t, "Início", p.ActivitySummary[0].Text)
}

func TestBuildRows_EmptyProject(t *testing.T) {
	rows := BuildRows([]domain.Project{{ID: "x"}}, testNow, time.UTC)
	r := rows[0]
	assert.Equal(t, "Planejado", r.Get(ColStatus))
	assert.Equal(t, "Não", r.Get(ColCritical))
	assert.Equal(t, "0%", r.Get(ColProgress))
	assert.Equal(t, "", r.Get(ColAgenda))
	assert.Equal(t, "", r.Get(ColClearances))
	assert.Equal(t, "", r.Get(ColActivities))
}

func TestBuildRows_Location(t *testing.T) {
	brt := time.FixedZone("BRT", -3*60*60)
	rows := BuildRows([]domain.Project{sampleProject()}, testNow, brt)
	assert.Equal(t, "10/03/2025 04:30", rows[0].Get(ColStart))
}

func TestColumnWidths(t *testing.T) {
	p := sampleProject()
	p.Name = strings.Repeat("x", 100)
	rows := BuildRows([]domain.Project{p}, testNow, time.UTC)
	widths := ColumnWidths(rows)
	require.Len(t, widths, len(Headers))

	assert.Equal(t, len("proj-1")+5, widths[0])
	assert.Equal(t, 60, widths[1])
	// Header longer than every cell; accented headers count runes.
	assert.Equal(t, len([]rune("Crítico"))+5, widths[3])

	empty := ColumnWidths(nil)
	assert.Equal(t, len("ID")+5, empty[0])
}

func TestRowHeights(t *testing.T) {
	rows := BuildRows([]domain.Project{sampleProject(), {ID: "plain"}}, testNow, time.UTC)
	heights := RowHeights(rows)
	assert.Equal(t, []float64{30, 0}, heights)
}

func TestFormatHelpers(t *testing.T) {
	assert.Equal(t, "", FormatDateTime(nil, time.UTC))
	assert.Equal(t, "", FormatDate(&time.Time{}, time.UTC))
	assert.Equal(t, "-", FormatDateShort(nil, time.UTC))
	assert.Equal(t, "15/03/25", FormatDateShort(&testNow, time.UTC))

	got, ok := ParseDateTime("15/03/2025 12:00", time.UTC)
	require.True(t, ok)
	assert.True(t, got.Equal(testNow))
	_, ok = ParseDateTime("2025-03-15", time.UTC)
	assert.False(t, ok)
}
