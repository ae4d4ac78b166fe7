// Package localtime implements the "time" capability: the current wall
// clock for a configured region.
package localtime

import (
	"fmt"
	"time"
)

// Now returns the current time in the given IANA timezone formatted for the
// reasoning engine to read.
func Now(timezone string) (string, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return "", fmt.Errorf("load location %s: %w", timezone, err)
	}
	return Format(timezone, time.Now().In(loc)), nil
}

// Format renders one timestamp the way the capability reports it.
func Format(timezone string, t time.Time) string {
	return fmt.Sprintf("Local time in %s now: %s", timezone, t.Format("2006-01-02 15:04:05"))
}
