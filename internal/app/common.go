package app

import (
	"errors"
	"time"
)

// ErrUnknownUser is returned when a request names a user the directory does
// not hold. Callers map it to "no access" rather than to an internal error.
var ErrUnknownUser = errors.New("unknown user")

// Clock returns now, or the request override when set.
func Clock(override *time.Time) time.Time {
	if override != nil {
		return *override
	}
	return time.Now().UTC()
}
