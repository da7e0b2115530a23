package shared

import "time"

const dateLayout = "2006-01-02"

// ParseTimeBound accepts an RFC3339 timestamp or a bare YYYY-MM-DD date. A
// bare date resolves to the start of that UTC day, or to its last instant
// when endOfDay is set, so a date-only range includes both end days.
func ParseTimeBound(value string, endOfDay bool) (time.Time, error) {
	if parsed, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return parsed, nil
	}
	day, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, err
	}
	if endOfDay {
		return day.Add(24*time.Hour - time.Nanosecond), nil
	}
	return day, nil
}
