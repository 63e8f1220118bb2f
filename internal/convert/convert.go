// Package convert drives whole-corpus conversion: it reads annotation
// files, optionally segments and samples documents, and writes one
// rendered output per document through a writer backend.
package convert

import (
	"errors"
	"io"
	"math/rand"
	"path/filepath"
	"strings"

	coreerrors "github.com/spyysalo/pubtator/core/errors"
	"github.com/spyysalo/pubtator/core/pubtator"
	"github.com/spyysalo/pubtator/internal/fileutil"
	"github.com/spyysalo/pubtator/internal/formats"
	"github.com/spyysalo/pubtator/internal/logging"
	"github.com/spyysalo/pubtator/internal/segment"
	"github.com/spyysalo/pubtator/internal/writer"
)

// DefaultOutput is the output directory or database name used when
// none is given.
const DefaultOutput = "converted"

// Options configures a conversion run.
type Options struct {
	// Format names the registered output serializer.
	Format string
	// Output is the destination directory, or database name when
	// Database is set.
	Output string
	// Database selects the SQLite backend over the filesystem.
	Database bool
	// Encoding names the input character encoding.
	Encoding string
	// IDs restricts conversion to the given document IDs when
	// non-nil.
	IDs map[string]bool
	// Limit caps the number of documents written; zero means no cap.
	Limit int
	// NoText suppresses the .txt file written next to each output.
	NoText bool
	// Random samples documents with the given probability when
	// non-nil; the ratio must lie in [0, 1].
	Random *float64
	// Subdirs groups outputs in subdirectories named by the first
	// four characters of the document ID.
	Subdirs bool
	// Segment adds title and sentence spans before rendering.
	Segment bool
	// NoValidate skips checking annotation offsets and
	// normalization fields against the document.
	NoValidate bool
}

// Converter applies one Options configuration across input files.
// The document cap spans all files of the run.
type Converter struct {
	opts     Options
	renderer formats.Renderer
	out      writer.Writer
	stats    *pubtator.Stats
	total    int
	sample   func() float64
}

// New validates opts and opens the output backend.
func New(opts Options) (*Converter, error) {
	if opts.Output == "" {
		opts.Output = DefaultOutput
	}
	if opts.Random != nil && (*opts.Random < 0 || *opts.Random > 1) {
		return nil, coreerrors.Wrapf(coreerrors.ErrInvalidInput,
			"sampling ratio %v outside [0, 1]", *opts.Random)
	}

	renderer, err := formats.Get(opts.Format)
	if err != nil {
		return nil, err
	}

	var out writer.Writer
	if opts.Database {
		name := opts.Output
		if !strings.HasSuffix(name, ".sqlite") {
			name += ".sqlite"
		}
		out, err = writer.NewSQLite(name)
		if err != nil {
			return nil, err
		}
	} else {
		out = writer.NewFilesystem(opts.Output)
	}

	return &Converter{
		opts:     opts,
		renderer: renderer,
		out:      out,
		stats:    &pubtator.Stats{},
		sample:   rand.Float64,
	}, nil
}

// Close releases the output backend.
func (c *Converter) Close() error {
	return c.out.Close()
}

// Total returns the number of documents written so far.
func (c *Converter) Total() int {
	return c.total
}

// Failed returns the number of malformed records skipped so far.
func (c *Converter) Failed() int {
	return int(c.stats.Errors.Load())
}

// ConvertFile converts the documents of one input file.
func (c *Converter) ConvertFile(path string) error {
	in, err := fileutil.Open(path, c.opts.Encoding)
	if err != nil {
		return err
	}
	defer in.Close()

	ropts := []pubtator.Option{
		pubtator.WithStats(c.stats),
		pubtator.WithSourceName(path),
	}
	if c.opts.IDs != nil {
		ropts = append(ropts, pubtator.WithIDFilter(c.opts.IDs))
	}
	if c.opts.NoValidate {
		ropts = append(ropts, pubtator.WithoutValidation())
	}
	r := pubtator.NewReader(in, ropts...)

	i := 0
	for {
		if c.opts.Limit > 0 && c.total >= c.opts.Limit {
			break
		}
		doc, err := r.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}
		i++
		if i%100 == 0 {
			logging.Progress(path, i)
		}
		if c.opts.Random != nil && c.sample() > *c.opts.Random {
			continue
		}
		if c.opts.Segment {
			if err := segment.Document(doc); err != nil {
				return err
			}
		}
		if err := c.writeDocument(doc); err != nil {
			return err
		}
		c.total++
	}
	logging.RunCompleted(path, i, c.Failed())
	return nil
}

func (c *Converter) writeDocument(doc *pubtator.Document) error {
	if !c.opts.NoText {
		if err := c.writeText(doc); err != nil {
			return err
		}
	}
	rendered, err := c.renderer.Render(doc)
	if err != nil {
		return err
	}
	return c.writeFile(c.outputFilename(doc.ID, c.renderer.Suffix()), rendered)
}

func (c *Converter) writeText(doc *pubtator.Document) error {
	text := doc.Text()
	if !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	return c.writeFile(c.outputFilename(doc.ID, ".txt"), []byte(text))
}

func (c *Converter) writeFile(path string, content []byte) error {
	f, err := c.out.Open(path)
	if err != nil {
		return err
	}
	if _, err := f.Write(content); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// outputFilename builds the per-document output path, grouping by a
// four-character ID prefix when subdirectories are enabled.
func (c *Converter) outputFilename(docID, suffix string) string {
	name := docID + suffix
	if c.opts.Subdirs {
		prefix := docID
		if len(prefix) > 4 {
			prefix = prefix[:4]
		}
		return filepath.Join(prefix, name)
	}
	return name
}
