// Package standoff renders documents as brat-style standoff markup:
// one T line per span and one N line per normalized identifier.
package standoff

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spyysalo/pubtator/core/norm"
	"github.com/spyysalo/pubtator/core/pubtator"
	"github.com/spyysalo/pubtator/internal/formats"
	"github.com/spyysalo/pubtator/internal/logging"
)

// Renderer implements the standoff serializer.
type Renderer struct{}

// Register registers this renderer with the formats registry.
func Register() {
	formats.Register(Renderer{})
}

func init() {
	Register()
}

// Name implements formats.Renderer.
func (Renderer) Name() string { return "standoff" }

// Suffix implements formats.Renderer.
func (Renderer) Suffix() string { return ".ann" }

// Render implements formats.Renderer. Identifier minting is
// deterministic given annotation order: the smallest positive integer
// not already minted in this document.
func (Renderer) Render(doc *pubtator.Document) ([]byte, error) {
	minted := make(map[string]bool)
	var lines []string

	for _, a := range doc.Annotations {
		span, ok := a.(*pubtator.SpanAnnotation)
		if !ok {
			// Document-level relation annotations have no markup
			// line representation in this format.
			logging.NotConverting("standoff", a.Kind().String(), a.DocID())
			continue
		}

		tid := nextInSeq("T", minted)
		lines = append(lines, fmt.Sprintf("%s\t%s %d %d\t%s",
			tid, norm.OutputType(span.Type), span.Start, span.End, span.Text))

		norms, err := span.Norms()
		if err != nil {
			return nil, err
		}
		for _, n := range norms {
			if n == "" {
				continue
			}
			nid := nextInSeq("N", minted)
			lines = append(lines, fmt.Sprintf("%s\tReference %s %s\t%s",
				nid, tid, n, span.Text))
		}
	}

	if len(lines) == 0 {
		return nil, nil
	}
	return []byte(strings.Join(lines, "\n") + "\n"), nil
}

// nextInSeq returns prefix+i for the smallest i (1, 2, ...) not in
// taken, marking it taken.
func nextInSeq(prefix string, taken map[string]bool) string {
	for i := 1; ; i++ {
		id := prefix + strconv.Itoa(i)
		if !taken[id] {
			taken[id] = true
			return id
		}
	}
}
