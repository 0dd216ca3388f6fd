package crawler

import (
	"regexp"
	"strconv"
	"strings"
)

// Leading text is non-greedy so the first "(YYYY)" wins. \d is ASCII-only
// in RE2, so years written in non-ASCII digits are not recognized.
var titleYearRe = regexp.MustCompile(`^(.*?\S)\s?(\((\d{4})\))`)

// ExtractTitleYear normalizes a page title such as
// "Inception (2010) - Full Transcript" into "Inception (2010)".
// ok is false when the title carries no parenthesized four digit year.
func ExtractTitleYear(pageTitle string) (titleYear string, ok bool) {
	m := titleYearRe.FindStringSubmatch(pageTitle)
	if m == nil {
		return "", false
	}
	return strings.TrimSpace(m[1]) + " " + m[2], true
}

// SplitTitleYear is like ExtractTitleYear but returns the title and year separately
func SplitTitleYear(pageTitle string) (title string, year int, ok bool) {
	m := titleYearRe.FindStringSubmatch(pageTitle)
	if m == nil {
		return "", 0, false
	}
	year, _ = strconv.Atoi(m[3])
	return strings.TrimSpace(m[1]), year, true
}
