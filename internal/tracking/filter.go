package tracking

import (
	"strings"
	"time"

	"github.com/alexanderramin/canteiro/internal/domain"
)

// Criteria narrows a project collection. Zero-valued fields are unset and
// impose no constraint; set fields are combined conjunctively.
type Criteria struct {
	Query       string
	Contractor  string
	OrderNumber string
	Leader      []string
	Status      domain.Status
	DateFrom    *time.Time
	DateTo      *time.Time
	AgendaDate  *time.Time

	// Location decides calendar days for AgendaDate. Nil means time.Local.
	Location *time.Location
}

// IsZero reports whether no criterion is set.
func (c Criteria) IsZero() bool {
	return c.Query == "" && c.Contractor == "" && c.OrderNumber == "" &&
		len(c.Leader) == 0 && c.Status == "" &&
		c.DateFrom == nil && c.DateTo == nil && c.AgendaDate == nil
}

// Filter returns the projects matching c at now, in canonical order.
// The input slice is not modified.
func Filter(projects []domain.Project, c Criteria, now time.Time) []domain.Project {
	out := make([]domain.Project, 0, len(projects))
	for i := range projects {
		if Matches(&projects[i], c, now) {
			out = append(out, projects[i])
		}
	}
	CanonicalSort(out)
	return out
}

// Matches reports whether a single project satisfies every set criterion.
func Matches(p *domain.Project, c Criteria, now time.Time) bool {
	if c.Query != "" {
		q := strings.ToLower(c.Query)
		if !strings.Contains(strings.ToLower(p.Name), q) &&
			!strings.Contains(strings.ToLower(p.OrderNumber), q) {
			return false
		}
	}

	if c.Contractor != "" && p.Contractor != c.Contractor {
		return false
	}

	if c.OrderNumber != "" && p.OrderNumber != c.OrderNumber {
		return false
	}

	if len(c.Leader) > 0 && !p.HasAnyLeader(c.Leader) {
		return false
	}

	if c.Status != "" && !StatusMatches(c.Status, Classify(p, now).Status) {
		return false
	}

	if c.DateFrom != nil || c.DateTo != nil {
		if p.StartDate == nil {
			return false
		}
		if c.DateFrom != nil && p.StartDate.Before(*c.DateFrom) {
			return false
		}
		if c.DateTo != nil && p.StartDate.After(*c.DateTo) {
			return false
		}
	}

	if c.AgendaDate != nil {
		latest, ok := p.LatestAgenda()
		if !ok {
			return false
		}
		loc := c.Location
		if loc == nil {
			loc = time.Local
		}
		if !sameDay(latest.Date, *c.AgendaDate, loc) {
			return false
		}
	}

	return true
}

// StatusMatches reports whether a derived status falls in the filter bucket
// named by want. "Em Andamento" is the open-work bucket and also admits
// overdue and not-started projects. Labels outside the known set impose no
// constraint.
func StatusMatches(want, got domain.Status) bool {
	switch want {
	case domain.StatusInProgress:
		return got == domain.StatusInProgress ||
			got == domain.StatusOverdue ||
			got == domain.StatusNotStarted
	case domain.StatusPlanned, domain.StatusCompleted,
		domain.StatusOverdue, domain.StatusNotStarted:
		return got == want
	default:
		return true
	}
}

func sameDay(a, b time.Time, loc *time.Location) bool {
	ay, am, ad := a.In(loc).Date()
	by, bm, bd := b.In(loc).Date()
	return ay == by && am == bm && ad == bd
}
