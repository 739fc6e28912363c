package temporal

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/cobaltlane/hindsight/core"
)

var monthNumbers = map[string]time.Month{
	"january": time.January, "february": time.February, "march": time.March,
	"april": time.April, "may": time.May, "june": time.June,
	"july": time.July, "august": time.August, "september": time.September,
	"october": time.October, "november": time.November, "december": time.December,
}

var (
	monthYearPattern = regexp.MustCompile(`\b(january|february|march|april|may|june|july|august|september|october|november|december)\s+(20\d{2})\b`)
	quarterPattern   = regexp.MustCompile(`\bq([1-4])\s*(?:[-/ ]?\s*)?(20\d{2})\b`)
	fromToPattern    = regexp.MustCompile(`\bfrom\s+(\d{4}-\d{2}-\d{2})\s+to\s+(\d{4}-\d{2}-\d{2})\b`)
)

// ResolveWindow inspects a natural language query for a time reference and,
// if one is found, returns the date window it names. The second return is
// false when the query carries no recognizable time phrase.
//
// Recognized phrases, checked in order: "today" and "yesterday", "this week"
// and "last week" (Monday through Sunday), "this month" and "last month",
// an explicit month name with year ("september 2025"), a quarter reference
// ("Q1 2025", "q3-2025", "Q4/2026"), and an explicit range
// ("from 2025-01-01 to 2025-03-31").
func ResolveWindow(query string) (core.DateWindow, bool) {
	return ResolveWindowAt(query, time.Now())
}

// ResolveWindowAt is ResolveWindow with an explicit reference time for
// relative phrases like "yesterday" and "this week".
func ResolveWindowAt(query string, ref time.Time) (core.DateWindow, bool) {
	qlow := strings.ToLower(query)

	if strings.Contains(qlow, "today") {
		return dayBounds(ref), true
	}
	if strings.Contains(qlow, "yesterday") {
		return dayBounds(ref.AddDate(0, 0, -1)), true
	}

	if strings.Contains(qlow, "this week") {
		return weekBounds(ref), true
	}
	if strings.Contains(qlow, "last week") {
		return weekBounds(ref.AddDate(0, 0, -7)), true
	}

	if strings.Contains(qlow, "this month") {
		return monthBounds(ref.Year(), ref.Month(), ref.Location()), true
	}
	if strings.Contains(qlow, "last month") {
		lastMonth := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, ref.Location()).AddDate(0, 0, -1)
		return monthBounds(lastMonth.Year(), lastMonth.Month(), ref.Location()), true
	}

	if m := monthYearPattern.FindStringSubmatch(qlow); m != nil {
		year, _ := strconv.Atoi(m[2])
		return monthBounds(year, monthNumbers[m[1]], ref.Location()), true
	}

	if m := quarterPattern.FindStringSubmatch(qlow); m != nil {
		quarter, _ := strconv.Atoi(m[1])
		year, _ := strconv.Atoi(m[2])
		return quarterBounds(quarter, year, ref.Location()), true
	}

	if m := fromToPattern.FindStringSubmatch(qlow); m != nil {
		start, err := time.ParseInLocation("2006-01-02", m[1], ref.Location())
		if err != nil {
			return core.DateWindow{}, false
		}
		end, err := time.ParseInLocation("2006-01-02", m[2], ref.Location())
		if err != nil {
			return core.DateWindow{}, false
		}
		end = end.Add(23*time.Hour + 59*time.Minute + 59*time.Second)
		if start.After(end) {
			return core.DateWindow{}, false
		}
		return core.DateWindow{Start: start, End: end}, true
	}

	return core.DateWindow{}, false
}

// dayBounds returns 00:00:00 through 23:59:59 of the day containing t.
func dayBounds(t time.Time) core.DateWindow {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return core.DateWindow{
		Start: start,
		End:   start.Add(23*time.Hour + 59*time.Minute + 59*time.Second),
	}
}

// weekBounds returns Monday 00:00:00 through Sunday 23:59:59 of the week
// containing t.
func weekBounds(t time.Time) core.DateWindow {
	daysSinceMonday := (int(t.Weekday()) + 6) % 7
	monday := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location()).AddDate(0, 0, -daysSinceMonday)
	return core.DateWindow{
		Start: monday,
		End:   monday.AddDate(0, 0, 6).Add(23*time.Hour + 59*time.Minute + 59*time.Second),
	}
}

// monthBounds returns the first through the last second of the given month.
func monthBounds(year int, month time.Month, loc *time.Location) core.DateWindow {
	start := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	return core.DateWindow{
		Start: start,
		End:   start.AddDate(0, 1, 0).Add(-time.Second),
	}
}

// quarterBounds returns the calendar quarter q of the given year.
func quarterBounds(q, year int, loc *time.Location) core.DateWindow {
	start := time.Date(year, time.Month(3*(q-1)+1), 1, 0, 0, 0, 0, loc)
	return core.DateWindow{
		Start: start,
		End:   start.AddDate(0, 3, 0).Add(-time.Second),
	}
}
