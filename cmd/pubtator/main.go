// Command pubtator converts PubTator-format biomedical literature
// annotations to standoff and JSON-based formats, and runs supporting
// corpus operations (ID listing, line filtering, cooccurrence
// relation generation, string-to-identifier mapping extraction).
package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/spyysalo/pubtator/core/pubtator"
	"github.com/spyysalo/pubtator/internal/convert"
	"github.com/spyysalo/pubtator/internal/fileutil"
	"github.com/spyysalo/pubtator/internal/formats"
	"github.com/spyysalo/pubtator/internal/logging"
	"github.com/spyysalo/pubtator/internal/webanno"

	// Register the output serializers.
	_ "github.com/spyysalo/pubtator/internal/formats/json"
	_ "github.com/spyysalo/pubtator/internal/formats/oajsonld"
	_ "github.com/spyysalo/pubtator/internal/formats/standoff"
	_ "github.com/spyysalo/pubtator/internal/formats/wajsonld"
)

const version = "1.0.0"

// CLI defines the command-line interface for pubtator.
var CLI struct {
	Verbose bool `short:"v" help:"Verbose output"`

	Convert  ConvertCmd  `cmd:"" help:"Convert annotation files to other formats"`
	List     ListCmd     `cmd:"" help:"List document IDs appearing in annotation files"`
	Filter   FilterCmd   `cmd:"" help:"Filter annotation data to lines starting with given IDs"`
	Cooc     CoocCmd     `cmd:"" help:"Add cooccurrence relations to converted JSON-LD files"`
	Mappings MappingsCmd `cmd:"" help:"Extract string-to-identifier mappings from JSON-LD files"`
	Formats  FormatsCmd  `cmd:"" help:"List available output formats"`
	Version  VersionCmd  `cmd:"" help:"Print version information"`
}

// ConvertCmd converts annotation files to another format.
type ConvertCmd struct {
	Database bool     `short:"D" help:"Output to SQLite database (default filesystem)"`
	Encoding string   `short:"e" default:"utf-8" help:"Input encoding"`
	Format   string   `short:"f" default:"standoff" help:"Output format"`
	IDs      string   `short:"i" placeholder:"FILE" help:"Restrict to documents with IDs in file" type:"existingfile"`
	Limit    int      `short:"l" help:"Maximum number of documents to output"`
	NoText     bool     `short:"n" help:"Do not output text files"`
	Output     string   `short:"o" default:"converted" help:"Output directory or database"`
	Random     *float64 `short:"r" placeholder:"R" help:"Sample random subset of documents (ratio in [0, 1])"`
	Subdirs    bool     `short:"s" help:"Create subdirectories by document ID prefix"`
	Segment    bool     `help:"Add sentence segmentation annotations"`
	NoValidate bool     `help:"Skip annotation validation"`
	Files      []string `arg:"" help:"Input annotation files" type:"existingfile"`
}

func (c *ConvertCmd) Run() error {
	var ids map[string]bool
	if c.IDs != "" {
		var err error
		ids, err = fileutil.ReadIDList(c.IDs)
		if err != nil {
			return err
		}
	}

	conv, err := convert.New(convert.Options{
		Format:   c.Format,
		Output:   c.Output,
		Database: c.Database,
		Encoding: c.Encoding,
		IDs:      ids,
		Limit:    c.Limit,
		NoText:     c.NoText,
		Random:     c.Random,
		Subdirs:    c.Subdirs,
		Segment:    c.Segment,
		NoValidate: c.NoValidate,
	})
	if err != nil {
		return err
	}
	defer conv.Close()

	for _, fn := range c.Files {
		if err := conv.ConvertFile(fn); err != nil {
			return err
		}
	}
	return nil
}

// ListCmd prints the ID of every document in the input.
type ListCmd struct {
	Encoding string   `short:"e" default:"utf-8" help:"Input encoding"`
	Limit    int      `short:"l" help:"Maximum number of IDs to output"`
	Files    []string `arg:"" help:"Input annotation files" type:"existingfile"`
}

func (c *ListCmd) Run() error {
	total := 0
	for _, fn := range c.Files {
		if c.Limit > 0 && total >= c.Limit {
			break
		}
		n, err := c.listFile(fn, os.Stdout, &total)
		if err != nil {
			return err
		}
		logging.RunCompleted(fn, n, 0)
	}
	return nil
}

func (c *ListCmd) listFile(fn string, out io.Writer, total *int) (int, error) {
	in, err := fileutil.Open(fn, c.Encoding)
	if err != nil {
		return 0, err
	}
	defer in.Close()

	r := pubtator.NewReader(in, pubtator.WithSourceName(fn))
	i := 0
	for {
		doc, err := r.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return i, err
		}
		i++
		if i%100 == 0 {
			logging.Progress(fn, i)
		}
		fmt.Fprintln(out, doc.ID)
		*total++
		if c.Limit > 0 && *total >= c.Limit {
			break
		}
	}
	return i, nil
}

// FilterCmd passes through only the lines of documents whose ID is in
// the given list, keeping blank lines as record separators.
type FilterCmd struct {
	IDList string   `arg:"" help:"File listing document IDs to keep" type:"existingfile"`
	Files  []string `arg:"" help:"Input annotation files" type:"existingfile"`
}

func (c *FilterCmd) Run() error {
	ids, err := fileutil.ReadIDList(c.IDList)
	if err != nil {
		return err
	}
	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()
	for _, fn := range c.Files {
		if err := filterFile(fn, ids, out); err != nil {
			return err
		}
	}
	return nil
}

var lineIDRE = regexp.MustCompile(`^(\d+)`)

func filterFile(fn string, ids map[string]bool, out io.Writer) error {
	in, err := fileutil.Open(fn, "")
	if err != nil {
		return err
	}
	defer in.Close()

	br := bufio.NewReader(in)
	inValid := false
	i := 0
	for {
		line, err := br.ReadString('\n')
		if line != "" {
			i++
			m := lineIDRE.FindStringSubmatch(line)
			if m != nil && ids[m[1]] {
				if _, werr := io.WriteString(out, line); werr != nil {
					return werr
				}
				inValid = true
			} else {
				if inValid {
					// empty lines separate documents
					if _, werr := io.WriteString(out, "\n"); werr != nil {
						return werr
					}
				}
				inValid = false
			}
			if i%100000 == 0 {
				logging.Progress(fn, i)
			}
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}
	}
	logging.RunCompleted(fn, i, 0)
	return nil
}

// CoocCmd adds cooccurrence relations to converted JSON-LD files in
// place.
type CoocCmd struct {
	Distance int      `short:"d" default:"100" help:"Maximum character distance between cooccurring spans"`
	Files    []string `arg:"" help:"Converted .jsonld annotation files" type:"existingfile"`
}

func (c *CoocCmd) Run() error {
	for i, fn := range c.Files {
		annotations, err := webanno.ReadFile(fn)
		if err != nil {
			return err
		}
		relations, err := webanno.Cooccurrences(annotations, c.Distance)
		if err != nil {
			return err
		}
		annotations = append(annotations, relations...)
		if err := webanno.WriteFile(fn, annotations); err != nil {
			return err
		}
		if (i+1)%100 == 0 {
			logging.Progress("cooc", i+1)
		}
	}
	logging.RunCompleted("cooc", len(c.Files), 0)
	return nil
}

// MappingsCmd prints surface-string to identifier mapping counts
// accumulated over converted JSON-LD files.
type MappingsCmd struct {
	Files []string `arg:"" help:"Converted .jsonld annotation files" type:"existingfile"`
}

func (c *MappingsCmd) Run() error {
	mappings := make(webanno.Mappings)
	for i, fn := range c.Files {
		annotations, err := webanno.ReadFile(fn)
		if err != nil {
			return err
		}
		mappings.Add(annotations)
		if (i+1)%100 == 0 {
			logging.Progress("mappings", i+1)
		}
	}
	out, err := mappings.MarshalPretty()
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

// FormatsCmd lists the registered output formats.
type FormatsCmd struct{}

func (c *FormatsCmd) Run() error {
	fmt.Println(strings.Join(formats.Names(), "\n"))
	return nil
}

// VersionCmd prints the version.
type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Printf("pubtator version %s\n", version)
	return nil
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("pubtator"),
		kong.Description("PubTator annotation format conversion tools"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)
	if CLI.Verbose {
		logging.InitLogger(logging.LevelInfo, logging.FormatText)
	}
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
