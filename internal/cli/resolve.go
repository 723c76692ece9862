package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/canteiro/internal/domain"
	"github.com/alexanderramin/canteiro/internal/importer"
	"github.com/alexanderramin/canteiro/internal/tracking"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02 15:04"
)

// resolveProjectID accepts a full ID, an order number or an ID prefix.
func resolveProjectID(ctx context.Context, app *App, input string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", fmt.Errorf("project ID is required")
	}

	stored, err := app.Projects.ListStored(ctx, domain.ReadScope{All: true})
	if err != nil {
		return "", err
	}
	projects := importer.NormalizeAll(stored)

	// 1. Exact ID
	for _, p := range projects {
		if p.ID == input {
			return p.ID, nil
		}
	}

	// 2. Order number (case-insensitive), only when unambiguous
	var byOrder []string
	for _, p := range projects {
		if p.OrderNumber != "" && strings.EqualFold(p.OrderNumber, input) {
			byOrder = append(byOrder, p.ID)
		}
	}
	if len(byOrder) == 1 {
		return byOrder[0], nil
	}

	// 3. ID prefix
	var matches []string
	for _, p := range projects {
		if strings.HasPrefix(p.ID, input) {
			matches = append(matches, p.ID)
		}
	}

	switch {
	case len(matches) == 1:
		return matches[0], nil
	case len(matches) > 1:
		return "", fmt.Errorf("project ID prefix %q is ambiguous (%d matches)", input, len(matches))
	case len(byOrder) > 1:
		return "", fmt.Errorf("order number %q is shared by %d projects; use the project ID", input, len(byOrder))
	default:
		return "", fmt.Errorf("project not found: %q", input)
	}
}

// parseDay reads YYYY-MM-DD in loc. end moves the instant to the last
// nanosecond of the day.
func parseDay(s string, loc *time.Location, end bool) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(dateLayout, s, loc)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: use YYYY-MM-DD", s)
	}
	if end {
		t = t.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}
	return &t, nil
}

// parseMoment reads "YYYY-MM-DD HH:MM" or a bare day in loc.
func parseMoment(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.ParseInLocation(dateTimeLayout, s, loc); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation(dateLayout, s, loc); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid time %q: use YYYY-MM-DD or \"YYYY-MM-DD HH:MM\"", s)
}

// criteriaFlags binds the filter flags shared by list, status and export.
type criteriaFlags struct {
	query      string
	contractor string
	order      string
	leaders    []string
	status     statusFlag
	from       string
	to         string
	agenda     string
}

func (f *criteriaFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.query, "query", "q", "", "Search name or order number")
	cmd.Flags().StringVar(&f.contractor, "contractor", "", "Contractor name")
	cmd.Flags().StringVar(&f.order, "order", "", "Exact order number")
	cmd.Flags().StringSliceVar(&f.leaders, "leader", nil, "Leader name (repeatable)")
	cmd.Flags().Var(&f.status, "status", "Status label ("+strings.Join(statusNames(), ", ")+")")
	cmd.Flags().StringVar(&f.from, "from", "", "Earliest start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.to, "to", "", "Latest start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.agenda, "agenda", "", "Agenda day (YYYY-MM-DD)")
}

func (f *criteriaFlags) criteria(loc *time.Location) (tracking.Criteria, error) {
	c := tracking.Criteria{
		Query:       strings.TrimSpace(f.query),
		Contractor:  strings.TrimSpace(f.contractor),
		OrderNumber: strings.TrimSpace(f.order),
		Leader:      f.leaders,
		Status:      domain.Status(f.status),
		Location:    loc,
	}
	var err error
	if c.DateFrom, err = parseDay(f.from, loc, false); err != nil {
		return tracking.Criteria{}, err
	}
	if c.DateTo, err = parseDay(f.to, loc, true); err != nil {
		return tracking.Criteria{}, err
	}
	if c.AgendaDate, err = parseDay(f.agenda, loc, false); err != nil {
		return tracking.Criteria{}, err
	}
	return c, nil
}

// statusFlag accepts a status label, case-insensitively.
type statusFlag domain.Status

var _ pflag.Value = (*statusFlag)(nil)

func (s *statusFlag) String() string { return string(*s) }
func (s *statusFlag) Type() string   { return "status" }

func (s *statusFlag) Set(v string) error {
	st, ok := domain.ParseStatus(v)
	if ok {
		*s = statusFlag(st)
		return nil
	}
	return fmt.Errorf("unknown status %q (expected one of: %s)", v, strings.Join(statusNames(), ", "))
}

func statusNames() []string {
	names := make([]string, len(domain.Statuses))
	for i, st := range domain.Statuses {
		names[i] = string(st)
	}
	return names
}
