package importer

import (
	"strings"

	"github.com/alexanderramin/canteiro/internal/domain"
	"github.com/google/uuid"
)

// Normalize converts a stored record into a domain project. It is total:
// every absent or malformed field falls back to its default (empty strings,
// empty sequences, nil dates, progress 0) and nothing is ever rejected.
func Normalize(s StoredProject) domain.Project {
	p := domain.Project{
		ID:             string(s.ID),
		Name:           string(s.Name),
		Factory:        string(s.Factory),
		OrderNumber:    string(s.OrderNumber),
		Contractor:     string(s.Contractor),
		ContractorID:   string(s.ContractorID),
		Area:           string(s.Area),
		Requester:      string(s.Requester),
		Activity:       string(s.Activity),
		Implementation: string(s.Implementation),

		StartDate:               s.StartDate.Ptr(),
		EstimatedCompletionDate: s.EstimatedCompletionDate.Ptr(),
		CompletionDate:          s.CompletionDate.Ptr(),
		CreatedAt:               s.CreatedAt.Ptr(),

		Progress:       clampProgress(int(s.Progress)),
		Critical:       bool(s.Critical),
		CriticalityIDs: strs(s.CriticalityIDs),

		Leader:    strs(s.Leader),
		Safety:    strs(s.Safety),
		Personnel: strs(s.Personnel),
		TST:       strs(s.TST),
		TSCMPC:    strs(s.TSCMPC),
		TSCMPCIDs: strs(s.TSCMPCIDs),

		Clearances: normalizeClearances(s.Clearances),

		PhotoBefore:   string(s.PhotoBefore),
		PhotoAfter:    string(s.PhotoAfter),
		MarkersBefore: mapItems(s.MarkersBefore.Items, toMarker),
		MarkersAfter:  mapItems(s.MarkersAfter.Items, toMarker),
	}

	p.AgendaHistory = mapItems(s.AgendaHistory.Items, func(a StoredAgenda) domain.AgendaEntry {
		return domain.AgendaEntry{Date: a.Date.Value(), SetAt: a.SetAt.Value()}
	})
	p.ActivitySummary = mapItems(s.ActivitySummary.Items, func(a StoredActivity) domain.ActivityEntry {
		return domain.ActivityEntry{Date: a.Date.Value(), Text: string(a.Text), UserEmail: string(a.UserEmail)}
	})
	p.ObservationHistory = mapItems(s.ObservationHistory.Items, func(o StoredObservation) domain.Observation {
		return domain.Observation{Date: o.Date.Value(), Text: string(o.Text)}
	})
	p.ProgressHistory = mapItems(s.ProgressHistory.Items, func(h StoredProgress) domain.ProgressEntry {
		return domain.ProgressEntry{Date: h.Date.Value(), Progress: clampProgress(int(h.Progress))}
	})

	return p
}

// NormalizeAll normalizes a whole collection. Records without an ID get a
// generated one so they stay addressable.
func NormalizeAll(stored []StoredProject) []domain.Project {
	out := make([]domain.Project, 0, len(stored))
	for _, s := range stored {
		p := Normalize(s)
		if strings.TrimSpace(p.ID) == "" {
			p.ID = uuid.New().String()
		}
		out = append(out, p)
	}
	return out
}

// Denormalize converts a domain project into its stored shape.
// Normalize(Denormalize(p)) reproduces any normalized p.
func Denormalize(p domain.Project) StoredProject {
	s := StoredProject{
		ID:             FlexString(p.ID),
		Name:           FlexString(p.Name),
		Factory:        FlexString(p.Factory),
		OrderNumber:    FlexString(p.OrderNumber),
		Contractor:     FlexString(p.Contractor),
		ContractorID:   FlexString(p.ContractorID),
		Area:           FlexString(p.Area),
		Requester:      FlexString(p.Requester),
		Activity:       FlexString(p.Activity),
		Implementation: FlexString(p.Implementation),

		StartDate:               TimestampOf(p.StartDate),
		EstimatedCompletionDate: TimestampOf(p.EstimatedCompletionDate),
		CompletionDate:          TimestampOf(p.CompletionDate),
		CreatedAt:               TimestampOf(p.CreatedAt),

		Progress:       FlexInt(p.Progress),
		Critical:       FlexBool(p.Critical),
		CriticalityIDs: FlexStrings(strs(p.CriticalityIDs)),

		Leader:    FlexStrings(strs(p.Leader)),
		Safety:    FlexStrings(strs(p.Safety)),
		Personnel: FlexStrings(strs(p.Personnel)),
		TST:       FlexStrings(strs(p.TST)),
		TSCMPC:    FlexStrings(strs(p.TSCMPC)),
		TSCMPCIDs: FlexStrings(strs(p.TSCMPCIDs)),

		Clearances: make(map[string]Timestamp, len(p.Clearances)),

		PhotoBefore: FlexString(p.PhotoBefore),
		PhotoAfter:  FlexString(p.PhotoAfter),
	}
	for c, t := range p.Clearances {
		s.Clearances[string(c)] = TimestampAt(t)
	}

	s.AgendaHistory = ListOf(mapItems(p.AgendaHistory, func(a domain.AgendaEntry) StoredAgenda {
		return StoredAgenda{Date: TimestampAt(a.Date), SetAt: TimestampAt(a.SetAt)}
	}))
	s.ActivitySummary = ListOf(mapItems(p.ActivitySummary, func(a domain.ActivityEntry) StoredActivity {
		return StoredActivity{Date: TimestampAt(a.Date), Text: FlexString(a.Text), UserEmail: FlexString(a.UserEmail)}
	}))
	s.ObservationHistory = ListOf(mapItems(p.ObservationHistory, func(o domain.Observation) StoredObservation {
		return StoredObservation{Date: TimestampAt(o.Date), Text: FlexString(o.Text)}
	}))
	s.ProgressHistory = ListOf(mapItems(p.ProgressHistory, func(h domain.ProgressEntry) StoredProgress {
		return StoredProgress{Date: TimestampAt(h.Date), Progress: FlexInt(h.Progress)}
	}))
	s.MarkersBefore = ListOf(mapItems(p.MarkersBefore, fromMarker))
	s.MarkersAfter = ListOf(mapItems(p.MarkersAfter, fromMarker))

	return s
}

// ToContractor converts a stored contractor, generating an ID when absent.
func ToContractor(s StoredContractor) domain.Contractor {
	return domain.Contractor{ID: idOrNew(s.ID), Name: string(s.Name)}
}

// ToUser converts a stored user. Unknown roles fall back to the viewer role,
// which reads only the user's own contractors.
func ToUser(s StoredUser) domain.User {
	role := domain.UserRole(strings.ToLower(strings.TrimSpace(string(s.Role))))
	if !domain.ValidRoles[role] {
		role = domain.RoleViewer
	}
	return domain.User{
		ID:            idOrNew(s.ID),
		Name:          string(s.Name),
		Email:         strings.ToLower(strings.TrimSpace(string(s.Email))),
		Role:          role,
		ContractorIDs: strs(s.ContractorIDs),
	}
}

// ToRosterEntry converts a stored roster row.
func ToRosterEntry(s StoredRosterEntry) domain.RosterEntry {
	return domain.RosterEntry{
		ID:           idOrNew(s.ID),
		NomeFantasia: string(s.NomeFantasia),
		Funcionario:  string(s.Funcionario),
	}
}

func normalizeClearances(in map[string]Timestamp) domain.Clearances {
	out := make(domain.Clearances, len(in))
	for key, ts := range in {
		c, ok := domain.ParseCheckpoint(key)
		if !ok || !ts.Valid {
			continue
		}
		out[c] = ts.Time
	}
	return out
}

func toMarker(m StoredMarker) domain.Marker {
	return domain.Marker{X: m.X, Y: m.Y, Number: int(m.Number)}
}

func fromMarker(m domain.Marker) StoredMarker {
	return StoredMarker{X: m.X, Y: m.Y, Number: FlexInt(m.Number)}
}

func clampProgress(n int) int {
	return max(0, min(n, 100))
}

func strs[S ~[]string](s S) []string {
	if s == nil {
		return []string{}
	}
	return []string(s)
}

func mapItems[T, U any](in []T, fn func(T) U) []U {
	out := make([]U, 0, len(in))
	for _, v := range in {
		out = append(out, fn(v))
	}
	return out
}

func idOrNew(id FlexString) string {
	if strings.TrimSpace(string(id)) == "" {
		return uuid.New().String()
	}
	return string(id)
}
