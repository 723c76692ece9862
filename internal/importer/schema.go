package importer

import (
	"encoding/json"
	"fmt"
	"maps"
	"os"
	"reflect"
	"slices"
)

// StoredProject is a project document exactly as the store holds it. Every
// field is optional and decoded independently: a malformed field is reset to
// its zero value and reported by Problems, never failing the record.
type StoredProject struct {
	ID             FlexString `json:"id"`
	Name           FlexString `json:"name"`
	Factory        FlexString `json:"factory"`
	OrderNumber    FlexString `json:"orderNumber"`
	Contractor     FlexString `json:"contractor"`
	ContractorID   FlexString `json:"contractorId"`
	Area           FlexString `json:"area"`
	Requester      FlexString `json:"requester"`
	Activity       FlexString `json:"activity"`
	Implementation FlexString `json:"implementation"`

	StartDate               Timestamp `json:"startDate"`
	EstimatedCompletionDate Timestamp `json:"estimatedCompletionDate"`
	CompletionDate          Timestamp `json:"completionDate"`
	CreatedAt               Timestamp `json:"createdAt"`

	Progress       FlexInt     `json:"progress"`
	Critical       FlexBool    `json:"critical"`
	CriticalityIDs FlexStrings `json:"criticalityIds"`

	Leader    FlexStrings `json:"leader"`
	Safety    FlexStrings `json:"safety"`
	Personnel FlexStrings `json:"personnel"`
	TST       FlexStrings `json:"tst"`
	TSCMPC    FlexStrings `json:"tsCmpc"`
	TSCMPCIDs FlexStrings `json:"tsCmpcIds"`

	Clearances         map[string]Timestamp    `json:"clearances"`
	AgendaHistory      List[StoredAgenda]      `json:"agendaHistory"`
	ActivitySummary    List[StoredActivity]    `json:"activitySummary"`
	ObservationHistory List[StoredObservation] `json:"observationHistory"`
	ProgressHistory    List[StoredProgress]    `json:"progressHistory"`

	PhotoBefore   FlexString         `json:"photoBefore"`
	PhotoAfter    FlexString         `json:"photoAfter"`
	MarkersBefore List[StoredMarker] `json:"markersBefore"`
	MarkersAfter  List[StoredMarker] `json:"markersAfter"`

	problems []error
}

type StoredAgenda struct {
	Date  Timestamp `json:"date"`
	SetAt Timestamp `json:"setAt"`
}

type StoredActivity struct {
	Date      Timestamp  `json:"date"`
	Text      FlexString `json:"text"`
	UserEmail FlexString `json:"userEmail"`
}

type StoredObservation struct {
	Date Timestamp  `json:"date"`
	Text FlexString `json:"text"`
}

type StoredProgress struct {
	Date     Timestamp `json:"date"`
	Progress FlexInt   `json:"progress"`
}

type StoredMarker struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Number FlexInt `json:"number"`
}

// Problems lists the fields that could not be decoded.
func (s *StoredProject) Problems() []error {
	return s.problems
}

func (s *StoredProject) fieldTargets() map[string]any {
	return map[string]any{
		"id":                      &s.ID,
		"name":                    &s.Name,
		"factory":                 &s.Factory,
		"orderNumber":             &s.OrderNumber,
		"contractor":              &s.Contractor,
		"contractorId":            &s.ContractorID,
		"area":                    &s.Area,
		"requester":               &s.Requester,
		"activity":                &s.Activity,
		"implementation":          &s.Implementation,
		"startDate":               &s.StartDate,
		"estimatedCompletionDate": &s.EstimatedCompletionDate,
		"completionDate":          &s.CompletionDate,
		"createdAt":               &s.CreatedAt,
		"progress":                &s.Progress,
		"critical":                &s.Critical,
		"criticalityIds":          &s.CriticalityIDs,
		"leader":                  &s.Leader,
		"safety":                  &s.Safety,
		"personnel":               &s.Personnel,
		"tst":                     &s.TST,
		"tsCmpc":                  &s.TSCMPC,
		"tsCmpcIds":               &s.TSCMPCIDs,
		"clearances":              &s.Clearances,
		"agendaHistory":           &s.AgendaHistory,
		"activitySummary":         &s.ActivitySummary,
		"observationHistory":      &s.ObservationHistory,
		"progressHistory":         &s.ProgressHistory,
		"photoBefore":             &s.PhotoBefore,
		"photoAfter":              &s.PhotoAfter,
		"markersBefore":           &s.MarkersBefore,
		"markersAfter":            &s.MarkersAfter,
	}
}

// UnmarshalJSON only fails when data is not a JSON object.
func (s *StoredProject) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("project record is not an object: %w", err)
	}

	*s = StoredProject{}
	targets := s.fieldTargets()
	for _, key := range slices.Sorted(maps.Keys(raw)) {
		target, ok := targets[key]
		if !ok {
			continue
		}
		if err := json.Unmarshal(raw[key], target); err != nil {
			reflect.ValueOf(target).Elem().SetZero()
			s.problems = append(s.problems, fmt.Errorf("field %s: %w", key, err))
		}
	}
	return nil
}

type StoredContractor struct {
	ID   FlexString `json:"id"`
	Name FlexString `json:"name"`
}

type StoredUser struct {
	ID            FlexString  `json:"id"`
	Name          FlexString  `json:"name"`
	Email         FlexString  `json:"email"`
	Role          FlexString  `json:"role"`
	ContractorIDs FlexStrings `json:"contractorIds"`
}

type StoredRosterEntry struct {
	ID           FlexString `json:"id"`
	NomeFantasia FlexString `json:"nomeFantasia"`
	Funcionario  FlexString `json:"funcionario"`
}

// Snapshot is a full export of the store: either a bare array of projects or
// an object holding each collection.
type Snapshot struct {
	Projects    []StoredProject
	Contractors []StoredContractor
	Users       []StoredUser
	Roster      []StoredRosterEntry

	// Skipped counts project entries that were not JSON objects.
	Skipped int
}

// ParseSnapshot decodes a snapshot document. Only a document that is neither
// an array nor an object is an error.
func ParseSnapshot(data []byte) (*Snapshot, error) {
	var doc struct {
		Projects    []json.RawMessage       `json:"projects"`
		Contractors List[StoredContractor]  `json:"contractors"`
		Users       List[StoredUser]        `json:"users"`
		Roster      List[StoredRosterEntry] `json:"rainbow"`
	}

	var projects []json.RawMessage
	if err := json.Unmarshal(data, &projects); err != nil {
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parsing snapshot: %w", err)
		}
		projects = doc.Projects
	}

	snap := &Snapshot{
		Projects:    make([]StoredProject, 0, len(projects)),
		Contractors: doc.Contractors.Items,
		Users:       doc.Users.Items,
		Roster:      doc.Roster.Items,
	}
	for _, raw := range projects {
		var sp StoredProject
		if err := json.Unmarshal(raw, &sp); err != nil {
			snap.Skipped++
			continue
		}
		snap.Projects = append(snap.Projects, sp)
	}
	return snap, nil
}

// LoadSnapshotFile reads and parses a snapshot from disk.
func LoadSnapshotFile(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseSnapshot(data)
}
