package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/canteiro/internal/app"
	"github.com/alexanderramin/canteiro/internal/domain"
	"github.com/alexanderramin/canteiro/internal/export"
)

const statusProgressBarWidth = 10

// FormatStatus renders the status board: one row per project and the daily
// summary underneath.
func FormatStatus(resp *app.StatusResponse, loc *time.Location) string {
	var b strings.Builder

	headers := []string{"ID", "", "NAME", "STATUS", "PROGRESS", "LAG", "DUE", "CLEARED", "SINCE"}
	rows := make([][]string, 0, len(resp.Projects))
	for _, v := range resp.Projects {
		since := Dim("-")
		if v.SinceClearance.Text != "" {
			since = v.SinceClearance.Text
			if v.SinceClearance.IsOverdue {
				since = StyleRed.Render(since)
			}
		}
		rows = append(rows, []string{
			TruncID(v.ProjectID),
			CriticalMark(v.Critical),
			v.Name,
			StatusBadge(v.Status),
			RenderProgress(v.Progress, v.Predicted, statusProgressBarWidth),
			formatLag(v.Lag),
			DueStyled(v.EstimatedCompletionDate, resp.GeneratedAt, loc),
			fmt.Sprintf("%d/%d", v.ClearedCount, len(domain.Checkpoints)),
			since,
		})
	}
	b.WriteString(RenderTable(headers, rows, listMaxCol))
	b.WriteString("\n")
	b.WriteString(FormatSummary(resp.Summary.ByStatus, resp.Summary.Total) + "\n")

	s := resp.Summary
	b.WriteString(Dim(fmt.Sprintf("%s · %d critical · %d created today · %d completed today",
		export.FormatDate(&s.Date, loc), s.Critical, s.ProjectsCreated, s.ProjectsCompleted)))

	title := "Status"
	if resp.User.Email != "" {
		title = fmt.Sprintf("Status · %s", resp.User.Email)
	}
	return RenderBox(title, b.String())
}

// FormatSummary renders per-status counts as a line of badges.
func FormatSummary(byStatus map[domain.Status]int, total int) string {
	parts := make([]string, 0, len(domain.Statuses)+1)
	parts = append(parts, Bold(fmt.Sprintf("%d projects", total)))
	for _, st := range domain.Statuses {
		parts = append(parts, fmt.Sprintf("%s %d", StatusBadge(st), byStatus[st]))
	}
	return strings.Join(parts, "  ")
}

// formatLag shows how many points the project trails its plan.
func formatLag(lag int) string {
	switch {
	case lag > 20:
		return StyleRed.Render(fmt.Sprintf("+%d", lag))
	case lag > 0:
		return StyleYellow.Render(fmt.Sprintf("+%d", lag))
	default:
		return StyleGreen.Render(fmt.Sprintf("%d", lag))
	}
}
