// Package dateutil handles the canonical YYYY-MM-DD date representation.
//
// Dates are always formatted and parsed through local calendar fields, never
// through generic timestamp parsing: an ISO timestamp interpreted as UTC can
// shift the calendar day for users east or west of Greenwich.
package dateutil

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const Layout = "2006-01-02"

var canonicalRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// IsCanonical reports whether s already matches the canonical YYYY-MM-DD form.
func IsCanonical(s string) bool {
	return canonicalRe.MatchString(s)
}

// Canonical formats a time using its local year/month/day fields.
func Canonical(t time.Time) string {
	return fmt.Sprintf("%04d-%02d-%02d", t.Year(), int(t.Month()), t.Day())
}

// Parse splits a canonical string on "-" and builds the date from explicit
// components in the local zone. Canonical(Parse(s)) == s for any valid s.
func Parse(s string) (time.Time, error) {
	parts := strings.Split(s, "-")
	if len(parts) != 3 {
		return time.Time{}, fmt.Errorf("not a canonical date: %q", s)
	}

	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing year of %q: %w", s, err)
	}

	month, err := strconv.Atoi(parts[1])
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing month of %q: %w", s, err)
	}

	day, err := strconv.Atoi(parts[2])
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing day of %q: %w", s, err)
	}

	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, fmt.Errorf("date out of range: %q", s)
	}

	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.Local), nil
}

// Today returns the canonical form of now's calendar day.
func Today(now time.Time) string {
	return Canonical(now)
}

// ShiftDays moves a date by the given number of calendar days.
func ShiftDays(t time.Time, days int) time.Time {
	return t.AddDate(0, 0, days)
}

// Range is an inclusive span of canonical dates.
type Range struct {
	Start string
	End   string
}

// MonthRange returns the first and last calendar day of the given month.
// monthIndex is zero-based; values outside [0,11] roll into adjacent years,
// so MonthRange(2025, -1) is December 2024.
func MonthRange(year, monthIndex int) Range {
	return Range{
		Start: Canonical(time.Date(year, time.Month(monthIndex+1), 1, 0, 0, 0, 0, time.Local)),
		End:   Canonical(time.Date(year, time.Month(monthIndex+2), 0, 0, 0, 0, 0, time.Local)),
	}
}

// CurrentMonthRange returns the range of the month containing ref.
func CurrentMonthRange(ref time.Time) Range {
	return MonthRange(ref.Year(), int(ref.Month())-1)
}

// PreviousMonthRange returns the range of the month immediately before ref's.
func PreviousMonthRange(ref time.Time) Range {
	return MonthRange(ref.Year(), int(ref.Month())-2)
}

// genericLayouts are tried, in order, when canonicalizing a non-canonical
// string date. The list covers ISO timestamps written by earlier versions of
// the backup format plus the dotted form common in Russian bank exports.
var genericLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"02.01.2006",
	"02/01/2006",
	"2006-1-2",
}

// ParseAny tries the generic layouts in order. The parsed value keeps the
// zone it was written in, so Canonical of the result reads the calendar
// fields as written rather than shifting them through UTC.
func ParseAny(s string) (time.Time, error) {
	for _, layout := range genericLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognized date: %q", s)
}

// Canonicalize coerces an arbitrary string date to canonical form.
// Already-canonical input passes through untouched; other strings go through
// generic layout parsing and are reformatted by their local calendar fields;
// anything unparseable degrades to now's date.
func Canonicalize(s string, now time.Time) string {
	s = strings.TrimSpace(s)
	if IsCanonical(s) {
		return s
	}

	if t, err := ParseAny(s); err == nil {
		return Canonical(t)
	}

	return Canonical(now)
}
