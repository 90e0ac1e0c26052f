package ingest

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	clockPattern = regexp.MustCompile(`(?i)(\d{1,2}):?(\d{2})?\s*(am|pm)`)

	// weekdays in Monday-first order; index+1 is the time.Weekday value
	// except for sunday, which wraps to 7 ≡ time.Sunday.
	weekdays = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}
)

// DetectTime looks for a time reference in free text and resolves it
// against now. Checks run in a fixed order and the first hit wins:
// "today", "tomorrow", "this week" (+3 days), "next week" (+7 days), a
// weekday name (its next occurrence, 1-7 days ahead), then a clock time
// such as "3pm" or "5:30 am" on the current day.
func DetectTime(text string, now time.Time) (time.Time, bool) {
	if text == "" {
		return time.Time{}, false
	}
	lower := strings.ToLower(text)

	switch {
	case strings.Contains(lower, "today"):
		return now, true
	case strings.Contains(lower, "tomorrow"):
		return now.AddDate(0, 0, 1), true
	case strings.Contains(lower, "this week"):
		return now.AddDate(0, 0, 3), true
	case strings.Contains(lower, "next week"):
		return now.AddDate(0, 0, 7), true
	}

	for i, day := range weekdays {
		if !strings.Contains(lower, day) {
			continue
		}
		ahead := (i + 1 - int(now.Weekday()) + 7) % 7
		if ahead == 0 {
			ahead = 7
		}
		return now.AddDate(0, 0, ahead), true
	}

	m := clockPattern.FindStringSubmatch(text)
	if m == nil {
		return time.Time{}, false
	}
	hours, _ := strconv.Atoi(m[1])
	minutes := 0
	if m[2] != "" {
		minutes, _ = strconv.Atoi(m[2])
	}
	switch strings.ToLower(m[3]) {
	case "pm":
		if hours < 12 {
			hours += 12
		}
	case "am":
		if hours == 12 {
			hours = 0
		}
	}
	y, mo, d := now.Date()
	return time.Date(y, mo, d, hours, minutes, 0, 0, now.Location()), true
}
