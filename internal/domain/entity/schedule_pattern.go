package entity

import (
	"strings"
	"time"
)

// SchedulePattern is a named recurring weekly on-duty rule for a doctor.
// The set of patterns is closed; anything the parser does not recognize maps
// to PatternUnknown, which is never on duty.
type SchedulePattern string

const (
	PatternMWF     SchedulePattern = "MWF" // Monday, Wednesday, Friday
	PatternTTH     SchedulePattern = "TTH" // Tuesday, Thursday
	PatternUnknown SchedulePattern = ""
)

// ParseSchedulePattern maps a raw pattern string to the closed enum.
// Matching is case-insensitive; unrecognized values fail closed to unknown.
func ParseSchedulePattern(raw string) SchedulePattern {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "MWF":
		return PatternMWF
	case "TTH":
		return PatternTTH
	default:
		return PatternUnknown
	}
}

// IsValid reports whether the pattern is one of the known recurring rules.
func (p SchedulePattern) IsValid() bool {
	return p == PatternMWF || p == PatternTTH
}

// IsOnDuty reports whether the pattern places a doctor on duty for the given
// weekday. Unknown patterns are never on duty.
func (p SchedulePattern) IsOnDuty(day time.Weekday) bool {
	switch p {
	case PatternMWF:
		return day == time.Monday || day == time.Wednesday || day == time.Friday
	case PatternTTH:
		return day == time.Tuesday || day == time.Thursday
	default:
		return false
	}
}
