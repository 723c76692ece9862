package domain

import (
	"slices"
	"time"
)

// Project is a single work order tracked through planning, execution and
// completion. Optional dates are nil when unset.
type Project struct {
	ID             string
	Name           string
	Factory        string
	OrderNumber    string
	Contractor     string
	ContractorID   string
	Area           string
	Requester      string
	Activity       string
	Implementation string

	StartDate               *time.Time
	EstimatedCompletionDate *time.Time
	CompletionDate          *time.Time
	CreatedAt               *time.Time

	Progress       int
	Critical       bool
	CriticalityIDs []string

	Leader    []string
	Safety    []string
	Personnel []string
	TST       []string
	TSCMPC    []string
	TSCMPCIDs []string

	Clearances         Clearances
	AgendaHistory      []AgendaEntry
	ActivitySummary    []ActivityEntry
	ObservationHistory []Observation
	ProgressHistory    []ProgressEntry

	PhotoBefore   string
	PhotoAfter    string
	MarkersBefore []Marker
	MarkersAfter  []Marker
}

// Clearances maps a checkpoint to the moment it was cleared. Absent keys
// are uncleared.
type Clearances map[Checkpoint]time.Time

type AgendaEntry struct {
	Date  time.Time
	SetAt time.Time
}

type ActivityEntry struct {
	Date      time.Time
	Text      string
	UserEmail string
}

type Observation struct {
	Date time.Time
	Text string
}

type ProgressEntry struct {
	Date     time.Time
	Progress int
}

// Marker is a numbered annotation on a before/after photo.
type Marker struct {
	X      float64
	Y      float64
	Number int
}

// IsComplete reports whether the project reached 100% progress.
func (p *Project) IsComplete() bool {
	return p.Progress == 100
}

// LatestAgenda returns the agenda entry with the greatest SetAt. Ties keep
// the entry recorded first.
func (p *Project) LatestAgenda() (AgendaEntry, bool) {
	if len(p.AgendaHistory) == 0 {
		return AgendaEntry{}, false
	}
	latest := p.AgendaHistory[0]
	for _, a := range p.AgendaHistory[1:] {
		if a.SetAt.After(latest.SetAt) {
			latest = a
		}
	}
	return latest, true
}

// HasAnyLeader reports whether at least one of names is among the leaders.
func (p *Project) HasAnyLeader(names []string) bool {
	for _, l := range p.Leader {
		if slices.Contains(names, l) {
			return true
		}
	}
	return false
}

// DisplayID truncates ID to 8 characters for tables.
func (p *Project) DisplayID() string {
	if len(p.ID) > 8 {
		return p.ID[:8]
	}
	return p.ID
}

// ClearedCount returns how many checkpoints carry a timestamp.
func (p *Project) ClearedCount() int {
	n := 0
	for _, c := range Checkpoints {
		if _, ok := p.Clearances[c]; ok {
			n++
		}
	}
	return n
}
