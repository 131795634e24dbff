package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// NormalizeHeader lowercases a raw column header, trims it, and collapses
// internal whitespace runs so headers like "total  (hombres )" compare
// equal to "total (hombres)".
func NormalizeHeader(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.Join(strings.Fields(s), " ")
}

// StripFootnoteMarks removes the asterisks some exports attach to
// provisional figures ("2023*").
func StripFootnoteMarks(s string) string {
	return strings.ReplaceAll(s, "*", "")
}

// ParseYearList parses a comma-separated year list such as "2020,2021".
// An empty input yields an empty list, which callers treat as "all years".
func ParseYearList(s string) ([]int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	var years []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		year, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("invalid year %q: %w", part, err)
		}
		years = append(years, year)
	}
	return years, nil
}
