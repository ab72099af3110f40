package engine

import (
	"regexp"
	"strings"
	"time"
)

// Natural-language date parsing for date segments and event actions.
// Handles relative references (today, tomorrow, weekdays, next week),
// explicit dates in common formats, and clock times. Unparseable text
// falls back to the reference time, so a date segment always yields a
// usable event date.

var weekdayNames = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

var (
	monthDayRe = regexp.MustCompile(`(january|february|march|april|may|june|july|august|september|october|november|december)\s+(\d{1,2})(?:st|nd|rd|th)?(?:,?\s+(\d{4}))?`)
	bareDayRe  = regexp.MustCompile(`\bthe\s+(\d{1,2})(?:st|nd|rd|th)\b`)
	numericRe  = regexp.MustCompile(`\b(\d{1,2})/(\d{1,2})(?:/(\d{4}))?\b`)
	isoRe      = regexp.MustCompile(`\b(\d{4})-(\d{2})-(\d{2})\b`)
	clockRe    = regexp.MustCompile(`\b(\d{1,2})(?::(\d{2}))?\s*(am|pm)\b`)
)

var monthsByName = map[string]time.Month{
	"january": time.January, "february": time.February, "march": time.March,
	"april": time.April, "may": time.May, "june": time.June,
	"july": time.July, "august": time.August, "september": time.September,
	"october": time.October, "november": time.November, "december": time.December,
}

// ParseNaturalDate resolves a natural-language date reference against the
// given reference time. The first recognized pattern wins; clock times are
// layered on top of whatever day was resolved.
func ParseNaturalDate(text string, now time.Time) time.Time {
	lower := strings.ToLower(text)
	day, matched := resolveDay(lower, now)

	if m := clockRe.FindStringSubmatch(lower); m != nil {
		hour := atoi(m[1])
		minute := 0
		if m[2] != "" {
			minute = atoi(m[2])
		}
		if m[3] == "pm" && hour < 12 {
			hour += 12
		}
		if m[3] == "am" && hour == 12 {
			hour = 0
		}
		return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, now.Location())
	}
	if strings.Contains(lower, "noon") {
		return time.Date(day.Year(), day.Month(), day.Day(), 12, 0, 0, 0, now.Location())
	}
	if strings.Contains(lower, "midnight") {
		return time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, now.Location())
	}

	if !matched {
		return now
	}
	return day
}

func resolveDay(lower string, now time.Time) (time.Time, bool) {
	if m := isoRe.FindStringSubmatch(lower); m != nil {
		return time.Date(atoi(m[1]), time.Month(atoi(m[2])), atoi(m[3]), 9, 0, 0, 0, now.Location()), true
	}
	if m := monthDayRe.FindStringSubmatch(lower); m != nil {
		month := monthsByName[m[1]]
		dayNum := atoi(m[2])
		year := now.Year()
		if m[3] != "" {
			year = atoi(m[3])
		} else if candidate := time.Date(year, month, dayNum, 9, 0, 0, 0, now.Location()); candidate.Before(startOfDay(now)) {
			year++
		}
		return time.Date(year, month, dayNum, 9, 0, 0, 0, now.Location()), true
	}
	if m := numericRe.FindStringSubmatch(lower); m != nil {
		month := atoi(m[1])
		dayNum := atoi(m[2])
		if month >= 1 && month <= 12 && dayNum >= 1 && dayNum <= 31 {
			year := now.Year()
			if m[3] != "" {
				year = atoi(m[3])
			}
			return time.Date(year, time.Month(month), dayNum, 9, 0, 0, 0, now.Location()), true
		}
	}

	if strings.Contains(lower, "tomorrow") {
		return now.AddDate(0, 0, 1), true
	}
	if strings.Contains(lower, "today") || strings.Contains(lower, "tonight") {
		return now, true
	}
	if strings.Contains(lower, "next week") {
		return now.AddDate(0, 0, 7), true
	}

	for name, weekday := range weekdayNames {
		if !strings.Contains(lower, name) {
			continue
		}
		ahead := (int(weekday) - int(now.Weekday()) + 7) % 7
		if ahead == 0 {
			ahead = 7
		}
		if strings.Contains(lower, "next "+name) && ahead < 7 {
			ahead += 7
		}
		return now.AddDate(0, 0, ahead), true
	}

	if m := bareDayRe.FindStringSubmatch(lower); m != nil {
		dayNum := atoi(m[1])
		if dayNum >= 1 && dayNum <= 31 {
			candidate := time.Date(now.Year(), now.Month(), dayNum, 9, 0, 0, 0, now.Location())
			if candidate.Before(startOfDay(now)) {
				candidate = candidate.AddDate(0, 1, 0)
			}
			return candidate, true
		}
	}

	return now, false
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func atoi(s string) int {
	n := 0
	for _, r := range s {
		n = n*10 + int(r-'0')
	}
	return n
}
