// Package fileutil opens annotation input files. It detects gzip and
// xz compression by filename suffix and decodes non-UTF-8 input when
// an encoding name is given.
package fileutil

import (
	"bufio"
	"compress/gzip"
	"io"
	"os"
	"strings"

	"github.com/ulikunitz/xz"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"

	"github.com/spyysalo/pubtator/core/errors"
)

// DefaultEncoding is the input encoding used when none is specified.
const DefaultEncoding = "utf-8"

// Open opens path for reading, transparently decompressing .gz and
// .xz files and decoding from the named character encoding. Closing
// the returned reader closes the underlying file.
func Open(path, encoding string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.NewIO("open", path, err)
	}

	var r io.Reader = f
	switch {
	case strings.HasSuffix(path, ".gz"):
		gzr, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, errors.NewIO("gzip reader", path, err)
		}
		r = gzr
	case strings.HasSuffix(path, ".xz"):
		xzr, err := xz.NewReader(f)
		if err != nil {
			f.Close()
			return nil, errors.NewIO("xz reader", path, err)
		}
		r = xzr
	}

	if encoding != "" && !isUTF8(encoding) {
		enc, err := htmlindex.Get(encoding)
		if err != nil {
			f.Close()
			return nil, errors.Wrapf(err, "unknown encoding %q", encoding)
		}
		r = transform.NewReader(r, enc.NewDecoder())
	}

	return &readCloser{Reader: r, c: f}, nil
}

func isUTF8(encoding string) bool {
	switch strings.ToLower(encoding) {
	case "utf-8", "utf8":
		return true
	}
	return false
}

type readCloser struct {
	io.Reader
	c io.Closer
}

func (rc *readCloser) Close() error {
	return rc.c.Close()
}

// ReadIDList reads one document ID per line from path and returns
// them as a membership set. Empty lines are kept out of the set.
func ReadIDList(path string) (map[string]bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.NewIO("open", path, err)
	}
	defer f.Close()

	ids := make(map[string]bool)
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		id := strings.TrimRight(sc.Text(), "\r")
		if id != "" {
			ids[id] = true
		}
	}
	if err := sc.Err(); err != nil {
		return nil, errors.NewIO("read", path, err)
	}
	return ids, nil
}
