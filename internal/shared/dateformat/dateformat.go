// Package dateformat owns the calendar-date text representation shared by
// the salary ledger and its database columns. Dates are stored as text, so
// every chronological decision goes through Parse/Compare here instead of
// ad-hoc string handling.
package dateformat

import (
	"net/http"
	"time"

	"hr-backend/internal/shared/apperror"
)

// Pattern is the fixed day/month/year layout, e.g. "25/12/2024".
const Pattern = "02/01/2006"

var ErrInvalidDateFormat = apperror.New(
	apperror.CodeInvalidDate,
	"Date must match the dd/mm/yyyy format",
	http.StatusBadRequest,
)

// Parse converts date text into a time.Time. Input must be canonical:
// Format(Parse(s)) == s holds for every accepted s, so values like
// "1/2/2024" are rejected even though time.Parse would take them.
func Parse(text string) (time.Time, error) {
	t, err := time.Parse(Pattern, text)
	if err != nil {
		return time.Time{}, ErrInvalidDateFormat.WithErr(err)
	}
	if t.Format(Pattern) != text {
		return time.Time{}, ErrInvalidDateFormat
	}
	return t, nil
}

// Format renders a time.Time in the canonical pattern.
func Format(t time.Time) string {
	return t.Format(Pattern)
}

// Compare orders two date strings chronologically: -1 when a is before b,
// 0 when equal, +1 when after. Either side failing to parse surfaces as
// an invalid-date error, never as a silent ordering.
func Compare(a, b string) (int, error) {
	ta, err := Parse(a)
	if err != nil {
		return 0, err
	}
	tb, err := Parse(b)
	if err != nil {
		return 0, err
	}
	switch {
	case ta.Before(tb):
		return -1, nil
	case ta.After(tb):
		return 1, nil
	default:
		return 0, nil
	}
}

// Today formats the given instant as a canonical date string.
func Today(now time.Time) string {
	return Format(now)
}
