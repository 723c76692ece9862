package export

import "time"

const (
	layoutDateTime  = "02/01/2006 15:04"
	layoutDate      = "02/01/2006"
	layoutDateShort = "02/01/06"
)

// FormatDateTime renders t as dd/MM/yyyy HH:mm in loc, or "" when unset.
func FormatDateTime(t *time.Time, loc *time.Location) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.In(locOrLocal(loc)).Format(layoutDateTime)
}

// FormatDate renders t as dd/MM/yyyy in loc, or "" when unset.
func FormatDate(t *time.Time, loc *time.Location) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.In(locOrLocal(loc)).Format(layoutDate)
}

// FormatDateShort renders t as dd/MM/yy in loc, or "-" when unset.
func FormatDateShort(t *time.Time, loc *time.Location) string {
	if t == nil || t.IsZero() {
		return "-"
	}
	return t.In(locOrLocal(loc)).Format(layoutDateShort)
}

// ParseDateTime reads the dd/MM/yyyy HH:mm or dd/MM/yyyy forms produced by
// the formatters.
func ParseDateTime(s string, loc *time.Location) (time.Time, bool) {
	for _, layout := range []string{layoutDateTime, layoutDate} {
		if t, err := time.ParseInLocation(layout, s, locOrLocal(loc)); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func locOrLocal(loc *time.Location) *time.Location {
	if loc == nil {
		return time.Local
	}
	return loc
}

func at(t time.Time) *time.Time { return &t }
