package httpserver

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/alexanderramin/canteiro/internal/domain"
	"github.com/alexanderramin/canteiro/internal/tracking"
)

const dateLayout = "2006-01-02"

// parseCriteria maps query parameters onto filter criteria:
//
//	q, contractor, order, leader (repeatable or comma separated),
//	status, from, to, agenda (YYYY-MM-DD in loc)
//
// Status labels match case-insensitively; unknown labels are rejected.
func parseCriteria(q url.Values, loc *time.Location) (tracking.Criteria, error) {
	c := tracking.Criteria{
		Query:       strings.TrimSpace(q.Get("q")),
		Contractor:  strings.TrimSpace(q.Get("contractor")),
		OrderNumber: strings.TrimSpace(q.Get("order")),
		Location:    loc,
	}

	if raw := strings.TrimSpace(q.Get("status")); raw != "" {
		st, ok := domain.ParseStatus(raw)
		if !ok {
			return tracking.Criteria{}, fmt.Errorf("unknown status %q", raw)
		}
		c.Status = st
	}

	for _, raw := range q["leader"] {
		for _, name := range strings.Split(raw, ",") {
			if name = strings.TrimSpace(name); name != "" {
				c.Leader = append(c.Leader, name)
			}
		}
	}

	var err error
	if c.DateFrom, err = parseDay(q, "from", loc, false); err != nil {
		return tracking.Criteria{}, err
	}
	if c.DateTo, err = parseDay(q, "to", loc, true); err != nil {
		return tracking.Criteria{}, err
	}
	if c.AgendaDate, err = parseDay(q, "agenda", loc, false); err != nil {
		return tracking.Criteria{}, err
	}
	return c, nil
}

// parseDay reads a calendar day. endOfDay moves the instant to the last
// nanosecond of that day so "to" is inclusive.
func parseDay(q url.Values, key string, loc *time.Location, endOfDay bool) (*time.Time, error) {
	raw := strings.TrimSpace(q.Get(key))
	if raw == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(dateLayout, raw, loc)
	if err != nil {
		return nil, fmt.Errorf("invalid %s date %q: expected YYYY-MM-DD", key, raw)
	}
	if endOfDay {
		t = t.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}
	return &t, nil
}
