package cleaning

import (
	"regexp"
	"strconv"
	"strings"

	"capitas-dashboard/pkg/utils"
)

// Coercer applies the type-coercion rules shared by every institution
// strategy. Malformed values yield a dropped row, never a pipeline failure.
type Coercer struct {
	MinYear int
	MaxYear int
}

// Year parses a raw year cell. Footnote marks and whitespace are stripped;
// a trailing ".0" from spreadsheet float cells is tolerated. Returns false
// for unparsable values and years outside the configured range.
func (c Coercer) Year(s string) (int, bool) {
	s = strings.TrimSpace(utils.StripFootnoteMarks(s))
	s = strings.TrimSuffix(s, ".0")
	if s == "" {
		return 0, false
	}
	year, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	if year < c.MinYear || year > c.MaxYear {
		return 0, false
	}
	return year, true
}

var (
	usGrouped = regexp.MustCompile(`^\d{1,3}(,\d{3})+(\.\d+)?$`)
	euGrouped = regexp.MustCompile(`^\d{1,3}(\.\d{3})+(,\d+)?$`)
)

// ParseAmount parses a raw amount cell, normalizing currency prefixes and
// thousands/decimal separators. Both "1,500.00" and "1.500,00" parse to
// 1500. Empty cells, placeholders and negative values return false.
func ParseAmount(s string) (float64, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.TrimPrefix(s, "rd$")
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "\u00a0", "")

	switch s {
	case "", "-", "n/d", "nd", "n/a", "na":
		return 0, false
	}

	switch {
	case usGrouped.MatchString(s):
		s = strings.ReplaceAll(s, ",", "")
	case euGrouped.MatchString(s):
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	case strings.Contains(s, ",") && !strings.Contains(s, "."):
		if strings.Count(s, ",") == 1 {
			s = strings.Replace(s, ",", ".", 1)
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	}

	amount, err := strconv.ParseFloat(s, 64)
	if err != nil || amount < 0 {
		return 0, false
	}
	return amount, true
}

// canonicalMonths maps raw Spanish month names to the canonical set.
var canonicalMonths = map[string]string{
	"enero": "enero", "febrero": "febrero", "marzo": "marzo",
	"abril": "abril", "mayo": "mayo", "junio": "junio",
	"julio": "julio", "agosto": "agosto", "septiembre": "septiembre",
	"setiembre": "septiembre", "octubre": "octubre",
	"noviembre": "noviembre", "diciembre": "diciembre",
}

// monthOrder gives each canonical month its calendar position.
var monthOrder = map[string]int{
	"enero": 1, "febrero": 2, "marzo": 3, "abril": 4, "mayo": 5,
	"junio": 6, "julio": 7, "agosto": 8, "septiembre": 9,
	"octubre": 10, "noviembre": 11, "diciembre": 12,
}

// NormalizeMonth maps a raw month cell to the canonical lowercase Spanish
// name, or empty when the value is not a recognizable month.
func NormalizeMonth(s string) string {
	return canonicalMonths[utils.NormalizeHeader(s)]
}

// MonthOrder returns the 1-based calendar position of a canonical month,
// or 0 for empty/unrecognized months.
func MonthOrder(month string) int {
	return monthOrder[month]
}
