package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/canteiro/internal/domain"
	"github.com/alexanderramin/canteiro/internal/export"
	"github.com/alexanderramin/canteiro/internal/tracking"
	"github.com/charmbracelet/lipgloss"
)

const (
	listProgressWidth = 10
	listMaxCol        = 32
)

// FormatProjectList renders projects as a table inside a bordered box.
func FormatProjectList(projects []domain.Project, now time.Time, loc *time.Location) string {
	headers := []string{"ID", "", "NAME", "ORDER", "CONTRACTOR", "STATUS", "PROGRESS", "START", "DUE"}
	rows := make([][]string, 0, len(projects))

	for i := range projects {
		p := &projects[i]
		st := tracking.Classify(p, now)
		rows = append(rows, []string{
			TruncID(p.ID),
			CriticalMark(p.Critical),
			p.Name,
			OrDash(p.OrderNumber),
			OrDash(p.Contractor),
			StatusBadge(st.Status),
			RenderProgress(p.Progress, tracking.PredictProgress(p, now), listProgressWidth),
			export.FormatDateShort(p.StartDate, loc),
			DueStyled(p.EstimatedCompletionDate, now, loc),
		})
	}

	title := fmt.Sprintf("Projects (%d)", len(projects))
	return RenderBox(title, RenderTable(headers, rows, listMaxCol))
}

// FormatProjectInspect renders a single project: metadata on the left,
// clearances and history on the right.
func FormatProjectInspect(p *domain.Project, now time.Time, loc *time.Location) string {
	left := inspectMetadata(p, now, loc)
	right := inspectHistory(p, loc)
	return RenderBox("", lipgloss.JoinHorizontal(lipgloss.Top, left, "    ", right))
}

func inspectMetadata(p *domain.Project, now time.Time, loc *time.Location) string {
	var b strings.Builder
	st := tracking.Classify(p, now)
	predicted := tracking.PredictProgress(p, now)

	title := StyleBold.Render(p.Name)
	if p.Critical {
		title += " " + StyleRed.Render("▲ CRITICAL")
	}
	b.WriteString(title + "\n")
	b.WriteString(StatusBadge(st.Status) + "\n\n")

	field := func(label, value string) {
		b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render(fmt.Sprintf("%-11s", label)), value))
	}
	field("ID", TruncID(p.ID))
	field("ORDER", OrDash(p.OrderNumber))
	field("FACTORY", OrDash(p.Factory))
	field("AREA", OrDash(p.Area))
	field("CONTRACTOR", OrDash(p.Contractor))
	field("LEADER", JoinOrDash(p.Leader))
	field("SAFETY", JoinOrDash(p.Safety))
	field("START", export.FormatDateShort(p.StartDate, loc))
	field("DUE", DueStyled(p.EstimatedCompletionDate, now, loc))
	field("COMPLETED", export.FormatDateShort(p.CompletionDate, loc))
	if latest, ok := p.LatestAgenda(); ok {
		field("AGENDA", export.FormatDateShort(&latest.Date, loc))
	}
	b.WriteString("\n")
	field("PROGRESS", RenderProgress(p.Progress, predicted, 16))
	if p.StartDate != nil && p.EstimatedCompletionDate != nil {
		field("PLANNED", fmt.Sprintf("%d%%", predicted))
	}
	return b.String()
}

func inspectHistory(p *domain.Project, loc *time.Location) string {
	var b strings.Builder

	b.WriteString(Header(fmt.Sprintf("Clearances %d/%d", p.ClearedCount(), len(domain.Checkpoints))) + "\n")
	for _, cp := range domain.Checkpoints {
		at, ok := p.Clearances[cp]
		if !ok {
			b.WriteString(fmt.Sprintf("%s %s\n", Dim("○"), Dim(string(cp))))
			continue
		}
		b.WriteString(fmt.Sprintf("%s %s  %s\n", StyleGreen.Render("●"), string(cp), Dim(export.FormatDateTime(&at, loc))))
	}

	if len(p.ActivitySummary) > 0 {
		b.WriteString("\n" + Header("Activity") + "\n")
		for _, a := range lastN(p.ActivitySummary, 5) {
			who := ""
			if a.UserEmail != "" {
				who = Dim(" (" + a.UserEmail + ")")
			}
			b.WriteString(fmt.Sprintf("%s  %s%s\n", Dim(export.FormatDateTime(&a.Date, loc)), a.Text, who))
		}
	}

	if len(p.ObservationHistory) > 0 {
		b.WriteString("\n" + Header("Observations") + "\n")
		for _, o := range lastN(p.ObservationHistory, 5) {
			b.WriteString(fmt.Sprintf("%s  %s\n", Dim(export.FormatDateTime(&o.Date, loc)), o.Text))
		}
	}
	return b.String()
}

func lastN[T any](s []T, n int) []T {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}
