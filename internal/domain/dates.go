package domain

import (
	"strings"
	"time"

	dErrors "agrisurvey/pkg/domain-errors"
)

// dateLayouts lists the formats accepted at the API boundary, most specific
// first. Field data arrives from a mix of exports, so both full timestamps
// and bare dates must coerce.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseDate coerces a date-like string into a time.Time. Empty input yields
// the zero time without error; callers decide whether absence is legal.
func ParseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, dErrors.Newf(dErrors.CodeValidation, "unparseable date %q", raw)
}

// FormatDate renders a bare date for API projections; zero times render as "".
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}
