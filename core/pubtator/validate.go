package pubtator

import (
	"fmt"

	"github.com/spyysalo/pubtator/core/errors"
	"github.com/spyysalo/pubtator/internal/logging"
)

// Validate re-derives each span's substring from the document text
// and flags mismatches. Text/offset mismatches are common noise in
// source corpora and only produce a warning; a normalization field
// that is present but contains no alphanumeric character indicates a
// producer bug and returns a ValidationError.
func (d *Document) Validate() error {
	text := d.Text()
	for _, a := range d.Annotations {
		switch ann := a.(type) {
		case *SpanAnnotation:
			if err := ann.Validate(text); err != nil {
				return err
			}
		case *RelationAnnotation:
			// relation arguments are opaque; nothing to check
		}
	}
	return nil
}

// Validate checks the span against the full document text it
// annotates. Offsets are character offsets, so the text is sliced by
// rune, not byte.
func (a *SpanAnnotation) Validate(docText string) error {
	if sub := runeSlice(docText, a.Start, a.End); sub != a.Text {
		logging.TextMismatch(a.Type, a.DocumentID, a.Start, a.End, sub, a.Text)
	}
	if a.RawNorm != "" && !alnumRE.MatchString(a.RawNorm) {
		return errors.NewValidation(a.DocumentID, fmt.Sprintf(
			"norm value error: %s %q (%d-%d): %q",
			a.Type, a.Text, a.Start, a.End, a.RawNorm))
	}
	return nil
}

// runeSlice returns text[start:end] by character offset, clamped to
// the text bounds.
func runeSlice(text string, start, end int) string {
	runes := []rune(text)
	if start < 0 {
		start = 0
	}
	if end > len(runes) {
		end = len(runes)
	}
	if start >= end {
		return ""
	}
	return string(runes[start:end])
}
