package utils

import "time"

// Now is the service clock. Millisecond precision is what every store backend
// keeps, so a timestamp read back equals the one written.
func Now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}
