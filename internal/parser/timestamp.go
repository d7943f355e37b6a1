package parser

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var meridiemRe = regexp.MustCompile(`(?i)\s*(AM|PM)\s*$`)

// ParseTimestamp normalizes a transcript date token ("D/M/Y") and time
// token ("H:MM[:SS][ am/pm]") into epoch milliseconds, interpreted as
// local wall-clock time at minute resolution.
//
// Day/month disambiguation: if the first field is >12 it is the day; if
// only the second field is >12 the order is month-first; when both fields
// are <=12 the date is genuinely ambiguous and day-first is assumed. The
// export format does not resolve this ambiguity, so neither can we.
//
// Malformed input never fails hard: the fallback is now() with ok=false,
// so a single bad line skews one timestamp instead of aborting the parse.
// Callers should count ok=false results and surface them as warnings.
func ParseTimestamp(date, clock string, now func() time.Time) (millis int64, ok bool) {
	year, month, day, ok := parseDate(date)
	if !ok {
		return now().UnixMilli(), false
	}

	hour, minute, ok := parseClock(clock)
	if !ok {
		return now().UnixMilli(), false
	}

	t := time.Date(year, time.Month(month), day, hour, minute, 0, 0, time.Local)
	return t.UnixMilli(), true
}

// parseDate splits a 3-field slash date into calendar fields.
// 2-digit years map to 2000+N.
func parseDate(s string) (year, month, day int, ok bool) {
	parts := strings.Split(s, "/")
	if len(parts) != 3 {
		return 0, 0, 0, false
	}

	first, err1 := strconv.Atoi(parts[0])
	second, err2 := strconv.Atoi(parts[1])
	year, err3 := strconv.Atoi(parts[2])
	if err1 != nil || err2 != nil || err3 != nil {
		return 0, 0, 0, false
	}

	if len(parts[2]) == 2 {
		year += 2000
	}

	switch {
	case first > 12:
		day, month = first, second
	case second > 12:
		month, day = first, second
	default:
		// Ambiguous: assume day-first.
		day, month = first, second
	}

	return year, month, day, true
}

// parseClock parses "H:MM[:SS][ am/pm]" into a 24-hour clock. Seconds are
// accepted but dropped; output resolution is the minute.
func parseClock(s string) (hour, minute int, ok bool) {
	bare := meridiemRe.ReplaceAllString(s, "")

	parts := strings.Split(bare, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, 0, false
	}

	hour, err1 := strconv.Atoi(strings.TrimSpace(parts[0]))
	minute, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil {
		return 0, 0, false
	}
	if len(parts) == 3 {
		if _, err := strconv.Atoi(parts[2]); err != nil {
			return 0, 0, false
		}
	}

	upper := strings.ToUpper(s)
	switch {
	case strings.Contains(upper, "PM") && hour < 12:
		hour += 12
	case strings.Contains(upper, "AM") && hour == 12:
		hour = 0
	}

	return hour, minute, true
}
