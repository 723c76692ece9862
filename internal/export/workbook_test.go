package export

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/alexanderramin/canteiro/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWriteReport_Sheets(t *testing.T) {
	report := BuildReport([]domain.Project{sampleProject(), {ID: "proj-2", Name: "Pintura"}}, testNow, time.UTC)

	var buf bytes.Buffer
	require.NoError(t, WriteReport(&buf, report))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetProjects, SheetSummary}, f.GetSheetList())

	rows, err := f.GetRows(SheetProjects)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, Headers, rows[0])
	assert.Equal(t, "proj-1", rows[1][0])
	assert.Equal(t, "Pintura", rows[2][1])

	width, err := f.GetColWidth(SheetProjects, "B")
	require.NoError(t, err)
	assert.Equal(t, float64(len([]rune("Troca de Válvula"))+5), width)

	height, err := f.GetRowHeight(SheetProjects, 2)
	require.NoError(t, err)
	assert.Equal(t, 30.0, height)

	summary, err := f.GetRows(SheetSummary)
	require.NoError(t, err)
	assert.Equal(t, []string{"Status", "Quantidade"}, summary[0])
	assert.Equal(t, []string{"Planejado", "1"}, summary[1])
}

func TestSaveReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), ReportFileName)
	require.NoError(t, SaveReport(path, BuildReport(nil, testNow, time.UTC)))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(SheetProjects)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestWriteTemplate(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTemplate(&buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetTemplateProjects, SheetTemplateRoster}, f.GetSheetList())
	rows, err := f.GetRows(SheetTemplateProjects)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Len(t, rows[0], 27)
	assert.Equal(t, TemplateProjectHeaders, rows[0])

	roster, err := f.GetRows(SheetTemplateRoster)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"Nome Fantasia", "Funcionário"}}, roster)
}

func TestReadTemplate_RoundTrip(t *testing.T) {
	var blank bytes.Buffer
	require.NoError(t, WriteTemplate(&blank))
	f, err := excelize.OpenReader(&blank)
	require.NoError(t, err)

	row := []any{
		"", "Troca de Válvula", "Sim", "Carlos", "45%",
		"10/03/2025 07:30", "20/03/2025", "", "16/03/2025",
		"Guaíba", "4500123", "ConstructCo", "c1", "Caldeira",
		"Ana, Bruno", "Paulo", "", "", "", "crit-1",
		"", "10/03/2025 08:00", "", "", "", "", "",
	}
	require.NoError(t, f.SetSheetRow(SheetTemplateProjects, "A2", &row))
	require.NoError(t, f.SetSheetRow(SheetTemplateProjects, "A3", &[]any{"", ""}))
	require.NoError(t, f.SetSheetRow(SheetTemplateRoster, "A2", &[]any{"ConstructCo", "João"}))

	var filled bytes.Buffer
	require.NoError(t, f.Write(&filled))
	f.Close()

	snap, err := ReadTemplate(&filled, testNow, time.UTC)
	require.NoError(t, err)
	require.Len(t, snap.Projects, 1)
	require.Len(t, snap.Roster, 1)

	sp := snap.Projects[0]
	assert.Equal(t, "Troca de Válvula", string(sp.Name))
	assert.True(t, bool(sp.Critical))
	assert.Equal(t, 45, int(sp.Progress))
	assert.Equal(t, "4500123", string(sp.OrderNumber))
	assert.Equal(t, []string{"Ana", "Bruno"}, []string(sp.Leader))
	assert.True(t, sp.StartDate.Valid)
	assert.Equal(t, time.Date(2025, 3, 10, 7, 30, 0, 0, time.UTC), sp.StartDate.Time)
	assert.False(t, sp.CompletionDate.Valid)
	require.Len(t, sp.AgendaHistory.Items, 1)
	assert.Equal(t, testNow, sp.AgendaHistory.Items[0].SetAt.Time)
	assert.Contains(t, sp.Clearances, "PT")
	assert.Equal(t, "João", string(snap.Roster[0].Funcionario))
}

func TestCellProgress(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"45%", 45},
		{" 45 ", 45},
		{"12.5", 13},
		{"-0.6", -1},
		{"-2.5", -3},
		{"", 0},
		{"metade", 0},
		{"NaN", 0},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, int(cellProgress(tt.in)))
		})
	}
}

func TestReadTemplate_NotAWorkbook(t *testing.T) {
	_, err := ReadTemplate(bytes.NewBufferString("not a zip"), testNow, time.UTC)
	assert.Error(t, err)
}
