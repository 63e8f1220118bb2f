package pubtator

import (
	"regexp"
	"strings"
)

// Regular expressions matching PubTator format embedded text, span
// annotation, and relation annotation lines. A relation line can be
// mistaken for other tab-separated shapes, so classification tests
// text first, then span, then relation.
var (
	textRE = regexp.MustCompile(`^(\d+)\|(.)\|(.*)$`)
	spanRE = regexp.MustCompile(`^(\d+)\t(\d+)\t(\d+)\t([^\t]+)\t(\S+)\t*(\S*)(?:\t(.*))?\s*$`)
	relRE  = regexp.MustCompile(`^(\d+)\t(\S+)\t(\S+)\t(\S+)\s*$`)

	// alnumRE matches any alphanumeric character; a normalization
	// value that is present but matches nowhere indicates a
	// producer bug.
	alnumRE = regexp.MustCompile(`[A-Za-z0-9]`)
)

// chompEOL strips a trailing line terminator before matching.
func chompEOL(line string) string {
	return strings.TrimRight(line, "\n\r")
}

// IsTextLine reports whether the line has the embedded text shape
// <digits>|<char>|<text>.
func IsTextLine(line string) bool {
	return textRE.MatchString(chompEOL(line))
}

// IsSpanLine reports whether the line has the span annotation shape
// <digits> TAB <start> TAB <end> TAB <text> TAB <type> [TAB <norm>].
func IsSpanLine(line string) bool {
	return spanRE.MatchString(chompEOL(line))
}

// IsRelationLine reports whether the line has the relation annotation
// shape <digits> TAB <type> TAB <arg1> TAB <arg2>.
func IsRelationLine(line string) bool {
	return relRE.MatchString(chompEOL(line))
}

// isBlank reports whether the line is empty after trimming. Blank
// lines separate records and are never classified.
func isBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}
