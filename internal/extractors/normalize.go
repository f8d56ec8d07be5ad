package extractors

import (
	"regexp"
	"strings"
)

var (
	carriageReturns = regexp.MustCompile(`\r\n?`)
	horizontalRuns  = regexp.MustCompile(`[ \t\f\v]+`)
	newlineRuns     = regexp.MustCompile(`\n{3,}`)
)

// CleanText normalises extracted text: carriage-return variants become
// newlines, runs of horizontal whitespace collapse to a single space, three
// or more consecutive newlines collapse to exactly two, and surrounding
// whitespace is trimmed.
func CleanText(s string) string {
	s = carriageReturns.ReplaceAllString(s, "\n")
	s = horizontalRuns.ReplaceAllString(s, " ")
	s = newlineRuns.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}
