package pubtator

import (
	"strconv"
	"strings"

	"github.com/spyysalo/pubtator/core/errors"
	"github.com/spyysalo/pubtator/core/norm"
)

// Kind discriminates the closed set of annotation variants.
type Kind int

// Annotation kind constants.
const (
	KindSpan Kind = iota
	KindRelation
)

// String returns the kind name as used in diagnostics.
func (k Kind) String() string {
	switch k {
	case KindSpan:
		return "span"
	case KindRelation:
		return "relation"
	default:
		return "unknown"
	}
}

// Annotation is either a SpanAnnotation or a RelationAnnotation.
// Annotations carry a back-reference to their document's ID for
// validation but never own the document.
type Annotation interface {
	// Kind returns the variant discriminant.
	Kind() Kind
	// DocID returns the ID of the document the annotation belongs to.
	DocID() string
}

// SpanAnnotation is a tagged substring of a document identified by
// half-open 0-based character offsets.
type SpanAnnotation struct {
	DocumentID string
	Start      int
	End        int
	Text       string
	Type       string
	RawNorm    string
	// Substrings captures cases such as
	//     2234245	314	341	visual or auditory toxicity	Disease	D014786|D006311	visual toxicity|auditory toxicity
	// TODO: process substrings instead of just preserving them
	Substrings string
}

// Kind implements Annotation.
func (a *SpanAnnotation) Kind() Kind { return KindSpan }

// DocID implements Annotation.
func (a *SpanAnnotation) DocID() string { return a.DocumentID }

// Norms returns the list of identifiers the span normalizes to.
// Identifiers that already carry a namespace separator pass through
// unchanged; others get a type-inferred namespace prefix. Taxonomy
// suffixes are stripped. A blank normalization field yields a single
// empty string: one span with no attached identifier.
func (a *SpanAnnotation) Norms() ([]string, error) {
	if strings.TrimSpace(a.RawNorm) == "" {
		return []string{""}, nil
	}

	var norms []string
	for _, n := range norm.Split(a.RawNorm, a.Type) {
		if norm.HasTaxonomySuffix(n) {
			stripped, err := norm.StripTaxonomySuffix(n)
			if err != nil {
				return nil, &errors.ValidationError{DocID: a.DocumentID, Message: err.Error(), Err: err}
			}
			n = stripped
		}
		if !strings.Contains(n, ":") {
			// no namespace; add a guess
			n = norm.Namespace(a.Type) + ":" + n
		}
		norms = append(norms, n)
	}
	return norms, nil
}

// ParseSpan parses a span annotation line. The lineNo is the 1-based
// input line index used in error messages.
func ParseSpan(line string, lineNo int) (*SpanAnnotation, error) {
	m := spanRE.FindStringSubmatch(chompEOL(line))
	if m == nil {
		return nil, errors.NewParsef(lineNo, "failed to parse as span: %q", line)
	}
	start, err := strconv.Atoi(m[2])
	if err != nil {
		return nil, errors.NewParsef(lineNo, "bad span start %q", m[2])
	}
	end, err := strconv.Atoi(m[3])
	if err != nil {
		return nil, errors.NewParsef(lineNo, "bad span end %q", m[3])
	}
	if start >= end {
		return nil, errors.NewParsef(lineNo, "span start %d not before end %d", start, end)
	}
	return &SpanAnnotation{
		DocumentID: m[1],
		Start:      start,
		End:        end,
		Text:       m[4],
		Type:       m[5],
		RawNorm:    m[6],
		Substrings: m[7],
	}, nil
}

// RelationAnnotation is a binary relation between two annotations in
// the same document. Its arguments are opaque references; structured
// serialization is deliberately unsupported in all output formats.
type RelationAnnotation struct {
	DocumentID string
	Type       string
	Arg1       string
	Arg2       string
}

// Kind implements Annotation.
func (a *RelationAnnotation) Kind() Kind { return KindRelation }

// DocID implements Annotation.
func (a *RelationAnnotation) DocID() string { return a.DocumentID }

// ParseRelation parses a relation annotation line.
func ParseRelation(line string, lineNo int) (*RelationAnnotation, error) {
	m := relRE.FindStringSubmatch(chompEOL(line))
	if m == nil {
		return nil, errors.NewParsef(lineNo, "failed to parse as relation: %q", line)
	}
	return &RelationAnnotation{
		DocumentID: m[1],
		Type:       m[2],
		Arg1:       m[3],
		Arg2:       m[4],
	}, nil
}
