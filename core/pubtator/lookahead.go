package pubtator

import (
	"bufio"
	"io"
	"strings"
)

// LookaheadReader wraps a line source with one-line lookahead. The
// document parser decides whether to consume a line only after
// classifying the peeked line, so the reader must be drivable purely
// through Peek/Next pairs. One forward-only pass; not restartable.
type LookaheadReader struct {
	br    *bufio.Reader
	ahead string
	ok    bool
	index int
	err   error
}

// NewLookaheadReader returns a LookaheadReader over r. Lines are
// returned without their terminator.
func NewLookaheadReader(r io.Reader) *LookaheadReader {
	lr := &LookaheadReader{br: bufio.NewReader(r)}
	lr.advance()
	return lr
}

func (r *LookaheadReader) advance() {
	if r.err != nil {
		r.ok = false
		return
	}
	line, err := r.br.ReadString('\n')
	if err != nil {
		if err != io.EOF {
			r.err = err
		}
		if line == "" {
			r.ok = false
			return
		}
	}
	r.ahead = strings.TrimRight(line, "\n\r")
	r.ok = true
}

// More reports whether another line is available.
func (r *LookaheadReader) More() bool {
	return r.ok
}

// Peek returns the next unread line without consuming it. The second
// return value is false when input is exhausted.
func (r *LookaheadReader) Peek() (string, bool) {
	return r.ahead, r.ok
}

// Next consumes and returns the next line, advancing the lookahead.
func (r *LookaheadReader) Next() (string, bool) {
	if !r.ok {
		return "", false
	}
	line := r.ahead
	r.index++
	r.advance()
	return line, true
}

// Index returns the 1-based count of lines consumed so far. It is
// used verbatim in diagnostic messages.
func (r *LookaheadReader) Index() int {
	return r.index
}

// Err returns the first non-EOF error encountered while reading the
// underlying source.
func (r *LookaheadReader) Err() error {
	return r.err
}
