package export

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/alexanderramin/canteiro/internal/domain"
	"github.com/alexanderramin/canteiro/internal/tracking"
)

// Column headers of the project sheet, in order.
const (
	ColID           = "ID"
	ColName         = "Nome"
	ColStatus       = "Status"
	ColCritical     = "Crítico"
	ColRequester    = "Consultor"
	ColProgress     = "Progresso"
	ColStart        = "Data Início"
	ColEstimated    = "Data Estimada"
	ColCompletion   = "Data Conclusão"
	ColAgenda       = "Agenda do Dia"
	ColFactory      = "Fábrica"
	ColOrder        = "Pedido"
	ColContractor   = "Contratada"
	ColArea         = "Área"
	ColLeader       = "Implantador"
	ColSafety       = "Segurança"
	ColPersonnel    = "Efetivo"
	ColTST          = "TST"
	ColClearances   = "Liberações"
	ColActivities   = "Atualizações de Atividade"
	ColObservations = "Histórico de Observações"
)

// Headers lists the project sheet columns.
var Headers = []string{
	ColID, ColName, ColStatus, ColCritical, ColRequester, ColProgress,
	ColStart, ColEstimated, ColCompletion, ColAgenda,
	ColFactory, ColOrder, ColContractor, ColArea, ColLeader,
	ColSafety, ColPersonnel, ColTST,
	ColClearances, ColActivities, ColObservations,
}

// multilineColumns may hold one entry per line.
var multilineColumns = []string{ColClearances, ColActivities, ColObservations}

// systemAuthor labels activity entries recorded without a user.
const systemAuthor = "Sistema"

// Row is one project flattened into cells aligned with Headers.
type Row []string

// Get returns the cell under header, or "" for unknown headers.
func (r Row) Get(header string) string {
	i := slices.Index(Headers, header)
	if i < 0 || i >= len(r) {
		return ""
	}
	return r[i]
}

// BuildRows flattens projects into report rows. Status is derived at now and
// dates are rendered in loc. The projects are not modified.
func BuildRows(projects []domain.Project, now time.Time, loc *time.Location) []Row {
	rows := make([]Row, 0, len(projects))
	for i := range projects {
		rows = append(rows, buildRow(&projects[i], now, loc))
	}
	return rows
}

func buildRow(p *domain.Project, now time.Time, loc *time.Location) Row {
	critical := "Não"
	if p.Critical {
		critical = "Sim"
	}

	agenda := ""
	if latest, ok := p.LatestAgenda(); ok {
		agenda = FormatDate(at(latest.Date), loc)
	}

	cells := map[string]string{
		ColID:           p.ID,
		ColName:         p.Name,
		ColStatus:       string(tracking.Classify(p, now).Status),
		ColCritical:     critical,
		ColRequester:    p.Requester,
		ColProgress:     fmt.Sprintf("%d%%", p.Progress),
		ColStart:        FormatDateTime(p.StartDate, loc),
		ColEstimated:    FormatDateTime(p.EstimatedCompletionDate, loc),
		ColCompletion:   FormatDateTime(p.CompletionDate, loc),
		ColAgenda:       agenda,
		ColFactory:      p.Factory,
		ColOrder:        p.OrderNumber,
		ColContractor:   p.Contractor,
		ColArea:         p.Area,
		ColLeader:       strings.Join(p.Leader, ", "),
		ColSafety:       strings.Join(p.Safety, ", "),
		ColPersonnel:    strings.Join(p.Personnel, ", "),
		ColTST:          strings.Join(p.TST, ", "),
		ColClearances:   clearanceLines(p.Clearances, loc),
		ColActivities:   activityLines(p.ActivitySummary, loc),
		ColObservations: observationLines(p.ObservationHistory, loc),
	}

	row := make(Row, len(Headers))
	for i, h := range Headers {
		row[i] = cells[h]
	}
	return row
}

func clearanceLines(c domain.Clearances, loc *time.Location) string {
	var lines []string
	for _, cp := range domain.Checkpoints {
		t, ok := c[cp]
		if !ok {
			continue
		}
		lines = append(lines, fmt.Sprintf("%s: %s", cp, FormatDateTime(at(t), loc)))
	}
	return strings.Join(lines, "\n")
}

func activityLines(entries []domain.ActivityEntry, loc *time.Location) string {
	sorted := slices.Clone(entries)
	slices.SortStableFunc(sorted, func(a, b domain.ActivityEntry) int {
		return b.Date.Compare(a.Date)
	})
	lines := make([]string, 0, len(sorted))
	for _, a := range sorted {
		author := domain.CoalesceStr(a.UserEmail, systemAuthor)
		lines = append(lines, fmt.Sprintf("%s (%s): %s", FormatDateTime(at(a.Date), loc), author, a.Text))
	}
	return strings.Join(lines, "\n")
}

func observationLines(entries []domain.Observation, loc *time.Location) string {
	sorted := slices.Clone(entries)
	slices.SortStableFunc(sorted, func(a, b domain.Observation) int {
		return b.Date.Compare(a.Date)
	})
	lines := make([]string, 0, len(sorted))
	for _, o := range sorted {
		lines = append(lines, fmt.Sprintf("%s: %s", FormatDateTime(at(o.Date), loc), o.Text))
	}
	return strings.Join(lines, "\n")
}
