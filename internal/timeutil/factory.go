package timeutil

import (
	"fmt"
	"sync"
	"time"
)

// DefaultZone is used until SetZone is called (Bangladesh Standard Time, UTC+6)
const DefaultZone = "Asia/Dhaka"

var (
	zoneMu sync.RWMutex
	zone   = loadZone(DefaultZone)
)

func loadZone(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		// Fallback: fixed zone if tzdata is not available
		return time.FixedZone("BST", 6*60*60)
	}
	return loc
}

// SetZone switches the factory time zone
func SetZone(name string) error {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return fmt.Errorf("unknown time zone %q: %w", name, err)
	}
	zoneMu.Lock()
	zone = loc
	zoneMu.Unlock()
	return nil
}

// Zone returns the factory time zone
func Zone() *time.Location {
	zoneMu.RLock()
	defer zoneMu.RUnlock()
	return zone
}

// Now returns the current time in the factory zone
func Now() time.Time {
	return time.Now().In(Zone())
}

// Today returns the current work date as YYYY-MM-DD
func Today() string {
	return Now().Format(DateLayout)
}

// ParseDate validates a YYYY-MM-DD work date and normalizes it
func ParseDate(value string) (string, error) {
	t, err := time.ParseInLocation(DateLayout, value, Zone())
	if err != nil {
		return "", fmt.Errorf("invalid date %q, expected YYYY-MM-DD", value)
	}
	return t.Format(DateLayout), nil
}

// FormatDisplayDate renders a work date for report headers
func FormatDisplayDate(date string) string {
	t, err := time.ParseInLocation(DateLayout, date, Zone())
	if err != nil {
		return date
	}
	return t.Format("02-Jan-2006 (Monday)")
}

// Common layouts
const (
	DateLayout     = "2006-01-02"
	DateTimeLayout = "2006-01-02 15:04:05"
	DisplayLayout  = "02 Jan 2006, 03:04 PM"
)
