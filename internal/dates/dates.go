// Package dates turns the loose month/day text found on course pages into
// calendar dates. Every function takes the operating year explicitly.
package dates

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var months = map[string]time.Month{
	"jan": time.January,
	"feb": time.February,
	"mar": time.March,
	"apr": time.April,
	"may": time.May,
	"jun": time.June,
	"jul": time.July,
	"aug": time.August,
	"sep": time.September,
	"oct": time.October,
	"nov": time.November,
	"dec": time.December,
}

var partialRe = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})\D*$`)

// Normalize resolves a month token ("Feb", "february", "FEB.") and a day token
// ("3", "03", "3rd", "15,") against year. The boolean is false when the tokens
// cannot be resolved; callers drop such records.
func Normalize(year int, monthToken, dayToken string) (time.Time, bool) {
	month, ok := parseMonth(monthToken)
	if !ok {
		return time.Time{}, false
	}

	digits := leadingDigits(strings.TrimSpace(dayToken), 2)
	if digits == "" {
		return time.Time{}, false
	}

	day, _ := strconv.Atoi(digits)
	if day > DaysIn(year, month) {
		// Pages occasionally glue a stray digit onto the day.
		day, _ = strconv.Atoi(digits[:1])
	}
	if day == 0 {
		return time.Time{}, false
	}

	return Date(year, month, day), true
}

// NormalizePartial resolves an "m/d" code such as "1/9", "01/09" or "2/16,".
func NormalizePartial(year int, code string) (time.Time, bool) {
	m := partialRe.FindStringSubmatch(strings.TrimSpace(code))
	if m == nil {
		return time.Time{}, false
	}

	monthNum, _ := strconv.Atoi(m[1])
	day, _ := strconv.Atoi(m[2])
	if monthNum < 1 || monthNum > 12 {
		return time.Time{}, false
	}
	month := time.Month(monthNum)
	if day < 1 || day > DaysIn(year, month) {
		return time.Time{}, false
	}

	return Date(year, month, day), true
}

func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// SortValue orders due dates. The unparsed sentinel is 0 and sorts before any real date.
func SortValue(t time.Time) int {
	if t.IsZero() {
		return 0
	}
	return t.Year()*400 + t.YearDay()
}

// Today returns the current calendar date in loc as a UTC midnight.
func Today(loc *time.Location) time.Time {
	return DateOf(time.Now(), loc)
}

func DateOf(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := t.In(loc).Date()
	return Date(y, m, d)
}

func parseMonth(token string) (time.Month, bool) {
	token = strings.ToLower(strings.TrimSpace(token))
	if len(token) < 3 {
		return 0, false
	}
	m, ok := months[token[:3]]
	return m, ok
}

func leadingDigits(s string, limit int) string {
	end := 0
	for end < len(s) && end < limit && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	return s[:end]
}
