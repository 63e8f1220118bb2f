// Package writer abstracts over output destinations for converted
// documents. A Writer hands out one io.WriteCloser per output path;
// the same conversion code drives both the filesystem and SQLite
// backends.
package writer

import (
	"io"
	"os"
	"path/filepath"

	"github.com/spyysalo/pubtator/core/errors"
)

// Writer produces one output stream per logical path.
type Writer interface {
	// Open returns a stream for the given path. The content is not
	// guaranteed to be durable until the stream is closed.
	Open(path string) (io.WriteCloser, error)
	// Close releases any resources held by the writer.
	Close() error
}

// Filesystem writes each path as a regular file under a base
// directory, creating intermediate directories on demand.
type Filesystem struct {
	baseDir   string
	knownDirs map[string]bool
}

// NewFilesystem returns a Filesystem writer rooted at baseDir.
func NewFilesystem(baseDir string) *Filesystem {
	return &Filesystem{
		baseDir:   baseDir,
		knownDirs: make(map[string]bool),
	}
}

// Open implements Writer.
func (w *Filesystem) Open(path string) (io.WriteCloser, error) {
	if w.baseDir != "" && !filepath.IsAbs(path) {
		path = filepath.Join(w.baseDir, path)
	}
	dir := filepath.Dir(path)
	if !w.knownDirs[dir] {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, errors.NewIO("create directory", dir, err)
		}
		w.knownDirs[dir] = true
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, errors.NewIO("create file", path, err)
	}
	return f, nil
}

// Close implements Writer.
func (w *Filesystem) Close() error {
	return nil
}
