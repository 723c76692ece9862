package importer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

var null = []byte("null")

func isNull(b []byte) bool {
	b = bytes.TrimSpace(b)
	return len(b) == 0 || bytes.Equal(b, null)
}

// Timestamp accepts every timestamp shape the document store has produced:
// Firestore objects ({"seconds","nanoseconds"} or the admin SDK's
// {"_seconds","_nanoseconds"}), RFC3339 or date-only strings, and epoch
// milliseconds. Unrecognized values decode as an unset timestamp with
// Malformed set instead of failing.
type Timestamp struct {
	Time      time.Time
	Valid     bool
	Malformed bool
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
	"02/01/2006 15:04",
	"02/01/2006",
}

// TimestampOf wraps t; a nil pointer or zero time yields an unset Timestamp.
func TimestampOf(t *time.Time) Timestamp {
	if t == nil || t.IsZero() {
		return Timestamp{}
	}
	return Timestamp{Time: t.UTC(), Valid: true}
}

// TimestampAt wraps a non-pointer time.
func TimestampAt(t time.Time) Timestamp {
	return TimestampOf(&t)
}

// Ptr returns the time or nil when unset.
func (t Timestamp) Ptr() *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}

// Value returns the time, or the zero time when unset.
func (t Timestamp) Value() time.Time {
	if !t.Valid {
		return time.Time{}
	}
	return t.Time
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	*t = Timestamp{}
	b = bytes.TrimSpace(b)
	if isNull(b) {
		return nil
	}

	parsed, err := parseTimestamp(b)
	if err != nil {
		t.Malformed = true
		return nil
	}
	if !parsed.IsZero() {
		t.Time, t.Valid = parsed.UTC(), true
	}
	return nil
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if !t.Valid {
		return null, nil
	}
	return json.Marshal(struct {
		Seconds     int64 `json:"seconds"`
		Nanoseconds int   `json:"nanoseconds"`
	}{t.Time.Unix(), t.Time.Nanosecond()})
}

func parseTimestamp(b []byte) (time.Time, error) {
	switch b[0] {
	case '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return time.Time{}, err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			return time.Time{}, nil
		}
		for _, layout := range timeLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t, nil
			}
		}
		return time.Time{}, fmt.Errorf("unrecognized time %q", s)

	case '{':
		var obj struct {
			Seconds      *int64 `json:"seconds"`
			Nanoseconds  int64  `json:"nanoseconds"`
			USeconds     *int64 `json:"_seconds"`
			UNanoseconds int64  `json:"_nanoseconds"`
		}
		if err := json.Unmarshal(b, &obj); err != nil {
			return time.Time{}, err
		}
		switch {
		case obj.Seconds != nil:
			return time.Unix(*obj.Seconds, obj.Nanoseconds), nil
		case obj.USeconds != nil:
			return time.Unix(*obj.USeconds, obj.UNanoseconds), nil
		}
		return time.Time{}, fmt.Errorf("timestamp object without seconds")

	default:
		var ms float64
		if err := json.Unmarshal(b, &ms); err != nil {
			return time.Time{}, err
		}
		if math.IsNaN(ms) || math.IsInf(ms, 0) {
			return time.Time{}, fmt.Errorf("invalid epoch %v", ms)
		}
		return time.UnixMilli(int64(ms)), nil
	}
}

// FlexString accepts a string or a number. Numbers keep their decimal text,
// so an order number stored as 4500123 reads as "4500123".
type FlexString string

func (s *FlexString) UnmarshalJSON(b []byte) error {
	*s = ""
	b = bytes.TrimSpace(b)
	if isNull(b) {
		return nil
	}
	switch b[0] {
	case '"':
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*s = FlexString(v)
		return nil
	case 't', 'f':
		*s = FlexString(b)
		return nil
	case '{', '[':
		return fmt.Errorf("expected string, got %s", kindOf(b))
	}
	f, err := strconv.ParseFloat(string(b), 64)
	if err != nil {
		return fmt.Errorf("expected string, got %q", b)
	}
	*s = FlexString(strconv.FormatFloat(f, 'f', -1, 64))
	return nil
}

// FlexStrings accepts an array of strings or a single scalar, which is
// wrapped. Null and empty elements are dropped.
type FlexStrings []string

func (s *FlexStrings) UnmarshalJSON(b []byte) error {
	*s = FlexStrings{}
	b = bytes.TrimSpace(b)
	if isNull(b) {
		return nil
	}
	if b[0] != '[' {
		var one FlexString
		if err := one.UnmarshalJSON(b); err != nil {
			return err
		}
		if one != "" {
			*s = FlexStrings{string(one)}
		}
		return nil
	}

	var raws []json.RawMessage
	if err := json.Unmarshal(b, &raws); err != nil {
		return err
	}
	out := make(FlexStrings, 0, len(raws))
	for _, r := range raws {
		var v FlexString
		if err := v.UnmarshalJSON(r); err != nil || v == "" {
			continue
		}
		out = append(out, string(v))
	}
	*s = out
	return nil
}

// FlexInt accepts a number or a numeric string ("45", "45%"). Fractions are
// rounded.
type FlexInt int

func (n *FlexInt) UnmarshalJSON(b []byte) error {
	*n = 0
	b = bytes.TrimSpace(b)
	if isNull(b) {
		return nil
	}
	text := string(b)
	if b[0] == '"' {
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		text = strings.TrimSuffix(strings.TrimSpace(v), "%")
		if text == "" {
			return nil
		}
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return fmt.Errorf("expected number, got %s", b)
	}
	*n = FlexInt(math.Round(f))
	return nil
}

// FlexBool accepts booleans, 0/1 and the strings "true", "sim", "yes".
type FlexBool bool

func (v *FlexBool) UnmarshalJSON(b []byte) error {
	*v = false
	b = bytes.TrimSpace(b)
	if isNull(b) {
		return nil
	}
	switch b[0] {
	case 't', 'f':
		var x bool
		if err := json.Unmarshal(b, &x); err != nil {
			return err
		}
		*v = FlexBool(x)
	case '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		switch strings.ToLower(strings.TrimSpace(s)) {
		case "true", "sim", "yes", "1":
			*v = true
		}
	default:
		var f float64
		if err := json.Unmarshal(b, &f); err != nil {
			return fmt.Errorf("expected boolean, got %s", kindOf(b))
		}
		*v = f != 0
	}
	return nil
}

// List decodes an array element by element. Elements that fail to decode
// are counted in Skipped instead of failing the whole list.
type List[T any] struct {
	Items   []T
	Skipped int
}

// ListOf wraps items.
func ListOf[T any](items []T) List[T] {
	return List[T]{Items: items}
}

func (l *List[T]) UnmarshalJSON(b []byte) error {
	*l = List[T]{}
	if isNull(b) {
		return nil
	}
	var raws []json.RawMessage
	if err := json.Unmarshal(b, &raws); err != nil {
		return err
	}
	l.Items = make([]T, 0, len(raws))
	for _, r := range raws {
		var item T
		if err := json.Unmarshal(r, &item); err != nil {
			l.Skipped++
			continue
		}
		l.Items = append(l.Items, item)
	}
	return nil
}

func (l List[T]) MarshalJSON() ([]byte, error) {
	if l.Items == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(l.Items)
}

func kindOf(b []byte) string {
	switch b[0] {
	case '{':
		return "object"
	case '[':
		return "array"
	case '"':
		return "string"
	case 't', 'f':
		return "boolean"
	}
	return "number"
}
