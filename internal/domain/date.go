package domain

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	isoDateRe    = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	partedDateRe = regexp.MustCompile(`^(\d{1,2})[/.-](\d{1,2})[/.-](\d{4})$`)
)

// fallbackLayouts are tried in order for inputs that match neither the
// canonical form nor a separated day/month/year form.
var fallbackLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006/01/02",
	"20060102",
	"Jan 2, 2006",
	"2 Jan 2006",
}

// ToISODate canonicalizes a date string to YYYY-MM-DD. Separated dates are
// disambiguated by whichever part exceeds 12; when both parts are 12 or
// less the input is read day-first, which is what the legacy data assumed.
// Inputs that cannot be parsed yield the empty string, never an error.
func ToISODate(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}

	if isoDateRe.MatchString(s) {
		return s
	}

	if m := partedDateRe.FindStringSubmatch(s); m != nil {
		a, _ := strconv.Atoi(m[1])
		b, _ := strconv.Atoi(m[2])

		day, month := a, b
		if a <= 12 && b > 12 {
			month, day = a, b
		}

		return fmt.Sprintf("%s-%02d-%02d", m[3], month, day)
	}

	for _, layout := range fallbackLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02")
		}
	}

	return ""
}
