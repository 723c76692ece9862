package importer

import (
	"fmt"

	"github.com/alexanderramin/canteiro/internal/domain"
)

// ValidateStored reports shape problems in a stored record. The problems are
// warnings: Normalize still produces a project from the record.
func ValidateStored(s *StoredProject) []error {
	var errs []error

	errs = append(errs, s.Problems()...)

	if s.ID == "" {
		errs = append(errs, fmt.Errorf("id is missing"))
	}
	if s.Name == "" {
		errs = append(errs, fmt.Errorf("name is missing"))
	}
	if s.Progress < 0 || s.Progress > 100 {
		errs = append(errs, fmt.Errorf("progress %d outside 0-100", s.Progress))
	}

	dates := []struct {
		name string
		ts   Timestamp
	}{
		{"startDate", s.StartDate},
		{"estimatedCompletionDate", s.EstimatedCompletionDate},
		{"completionDate", s.CompletionDate},
		{"createdAt", s.CreatedAt},
	}
	for _, d := range dates {
		if d.ts.Malformed {
			errs = append(errs, fmt.Errorf("%s is not a recognizable timestamp", d.name))
		}
	}
	if s.StartDate.Valid && s.EstimatedCompletionDate.Valid &&
		s.EstimatedCompletionDate.Time.Before(s.StartDate.Time) {
		errs = append(errs, fmt.Errorf("estimatedCompletionDate is before startDate"))
	}

	for key, ts := range s.Clearances {
		if _, ok := domain.ParseCheckpoint(key); !ok {
			errs = append(errs, fmt.Errorf("clearances: unknown checkpoint %q", key))
			continue
		}
		if ts.Malformed {
			errs = append(errs, fmt.Errorf("clearances[%s] is not a recognizable timestamp", key))
		}
	}

	lists := []struct {
		name    string
		skipped int
	}{
		{"agendaHistory", s.AgendaHistory.Skipped},
		{"activitySummary", s.ActivitySummary.Skipped},
		{"observationHistory", s.ObservationHistory.Skipped},
		{"progressHistory", s.ProgressHistory.Skipped},
		{"markersBefore", s.MarkersBefore.Skipped},
		{"markersAfter", s.MarkersAfter.Skipped},
	}
	for _, l := range lists {
		if l.skipped > 0 {
			errs = append(errs, fmt.Errorf("%s: %d malformed entries dropped", l.name, l.skipped))
		}
	}

	return errs
}
