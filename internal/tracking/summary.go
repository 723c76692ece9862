package tracking

import (
	"time"

	"github.com/alexanderramin/canteiro/internal/domain"
)

// Summary counts a project collection by derived status for one day.
type Summary struct {
	Date              time.Time
	Total             int
	ProjectsCreated   int
	ProjectsCompleted int
	Critical          int
	ByStatus          map[domain.Status]int
}

// Count returns the number of projects with status s.
func (s Summary) Count(st domain.Status) int {
	return s.ByStatus[st]
}

// Summarize classifies every project at now and tallies the daily counters.
// ProjectsCreated and ProjectsCompleted only count records created or
// completed on the calendar day of now in loc.
func Summarize(projects []domain.Project, now time.Time, loc *time.Location) Summary {
	if loc == nil {
		loc = time.Local
	}
	sum := Summary{
		Date:     startOfDay(now, loc),
		Total:    len(projects),
		ByStatus: make(map[domain.Status]int, len(domain.Statuses)),
	}
	for _, st := range domain.Statuses {
		sum.ByStatus[st] = 0
	}

	for i := range projects {
		p := &projects[i]
		sum.ByStatus[Classify(p, now).Status]++
		if p.Critical {
			sum.Critical++
		}
		if p.CreatedAt != nil && sameDay(*p.CreatedAt, now, loc) {
			sum.ProjectsCreated++
		}
		if p.CompletionDate != nil && sameDay(*p.CompletionDate, now, loc) {
			sum.ProjectsCompleted++
		}
	}
	return sum
}

func startOfDay(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}
