package pubtator

import (
	"io"
	"sync/atomic"

	"github.com/spyysalo/pubtator/core/errors"
	"github.com/spyysalo/pubtator/internal/logging"
)

// Stats counts documents and failed records across one or more
// readers. Counters are atomic so independent per-file pipelines can
// share one Stats value.
type Stats struct {
	Documents atomic.Int64
	Errors    atomic.Int64
}

// Option configures a Reader.
type Option func(*Reader)

// WithIDFilter restricts the stream to documents whose ID is in ids.
// Records with other IDs are discarded without being treated as
// errors. A nil or empty set disables filtering.
func WithIDFilter(ids map[string]bool) Option {
	return func(r *Reader) {
		if len(ids) > 0 {
			r.ids = ids
		}
	}
}

// WithoutValidation disables per-document validation.
func WithoutValidation() Option {
	return func(r *Reader) { r.validate = false }
}

// WithStats attaches a shared counter object to the reader.
func WithStats(s *Stats) Option {
	return func(r *Reader) { r.stats = s }
}

// WithSourceName sets the source name used in diagnostics.
func WithSourceName(name string) Option {
	return func(r *Reader) { r.source = name }
}

// Reader produces a lazy sequence of Documents from a PubTator line
// stream, one per Next call. Malformed records are skipped with a
// logged warning and counted; the stream continues at the next
// record. The sequence is finite and not restartable without
// reopening the source.
type Reader struct {
	lines    *LookaheadReader
	ids      map[string]bool
	validate bool
	stats    *Stats
	source   string
}

// NewReader returns a Reader over the given line source.
func NewReader(src io.Reader, opts ...Option) *Reader {
	r := &Reader{
		lines:    NewLookaheadReader(src),
		validate: true,
		stats:    &Stats{},
		source:   "input",
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Stats returns the reader's counter object.
func (r *Reader) Stats() *Stats {
	return r.stats
}

// Next returns the next document in the stream, or io.EOF when the
// input is exhausted. Record-level failures never surface here; only
// resource-level read errors do.
func (r *Reader) Next() (*Document, error) {
	for {
		r.skipBlank()
		if !r.lines.More() {
			if err := r.lines.Err(); err != nil {
				return nil, errors.NewIO("read", r.source, err)
			}
			return nil, io.EOF
		}

		startLine := r.lines.Index() + 1

		if r.ids != nil {
			skipped, err := r.skipUnwanted()
			if err != nil {
				r.fail(startLine, err)
				continue
			}
			if skipped {
				continue
			}
		}

		doc, err := r.readDocument()
		if err != nil {
			r.fail(startLine, err)
			continue
		}
		r.stats.Documents.Add(1)
		return doc, nil
	}
}

// fail reports a malformed record and discards its remaining lines.
func (r *Reader) fail(startLine int, err error) {
	logging.RecordSkipped(r.source, startLine, r.lines.Index(), err)
	r.stats.Errors.Add(1)
	r.recover()
}

// skipBlank consumes blank lines between records.
func (r *Reader) skipBlank() {
	for {
		line, ok := r.lines.Peek()
		if !ok || !isBlank(line) {
			return
		}
		r.lines.Next()
	}
}

// skipUnwanted checks the upcoming record's document ID against the
// ID filter and, when it is not wanted, discards the record without
// building a Document. It reports whether the record was skipped.
func (r *Reader) skipUnwanted() (bool, error) {
	line, ok := r.lines.Peek()
	if !ok {
		return false, nil
	}
	m := textRE.FindStringSubmatch(line)
	if m == nil {
		return false, errors.NewParsef(r.lines.Index()+1, "expected text, got: %s", line)
	}
	if r.ids[m[1]] {
		return false, nil
	}
	for {
		line, ok := r.lines.Next()
		if !ok || isBlank(line) {
			break
		}
	}
	return true, nil
}

// readDocument assembles one Document. The caller has already
// positioned the stream at a non-blank line.
func (r *Reader) readDocument() (*Document, error) {
	var (
		docID    string
		seenText bool
		sections []TextSection
	)

	for r.lines.More() {
		line, _ := r.lines.Next()
		m := textRE.FindStringSubmatch(line)
		if m == nil {
			return nil, errors.NewParsef(r.lines.Index(), "expected text, got: %s", line)
		}
		id, label, text := m[1], m[2], m[3]
		if seenText && id != docID {
			return nil, errors.NewParsef(r.lines.Index(), "doc ID mismatch: %s", line)
		}
		docID = id
		seenText = true
		if !isBlank(text) {
			sections = append(sections, TextSection{Label: label, Text: text})
		}
		if next, ok := r.lines.Peek(); !ok || !IsTextLine(next) {
			break
		}
	}

	var annotations []Annotation
	for r.lines.More() {
		line, _ := r.lines.Next()
		if isBlank(line) {
			break
		}
		switch {
		case IsSpanLine(line):
			span, err := ParseSpan(line, r.lines.Index())
			if err != nil {
				return nil, err
			}
			annotations = append(annotations, span)
		case IsRelationLine(line):
			rel, err := ParseRelation(line, r.lines.Index())
			if err != nil {
				return nil, err
			}
			annotations = append(annotations, rel)
		default:
			return nil, errors.NewParsef(r.lines.Index(), "expected annotation, got: %s", line)
		}
	}

	doc := &Document{ID: docID, TextSections: sections, Annotations: annotations}
	if r.validate {
		if err := doc.Validate(); err != nil {
			return nil, err
		}
	}
	return doc, nil
}

// recover discards lines up to the start of the next record (the
// next line that classifies as a text line) or end of input.
func (r *Reader) recover() {
	for {
		line, ok := r.lines.Peek()
		if !ok || IsTextLine(line) {
			return
		}
		r.lines.Next()
	}
}
