// Package oajsonld renders document annotations as an Open Annotation
// JSON-LD graph ("@id"/"@type" keys, bare-string bodies, pubmed/<id>
// document URLs).
package oajsonld

import (
	"fmt"

	"github.com/spyysalo/pubtator/core/norm"
	"github.com/spyysalo/pubtator/core/pubtator"
	"github.com/spyysalo/pubtator/internal/formats"
	"github.com/spyysalo/pubtator/internal/logging"
)

// Renderer implements the Open Annotation JSON-LD serializer.
type Renderer struct{}

// Register registers this renderer with the formats registry.
func Register() {
	formats.Register(Renderer{})
}

func init() {
	Register()
}

// Name implements formats.Renderer.
func (Renderer) Name() string { return "oa-jsonld" }

// Suffix implements formats.Renderer.
func (Renderer) Suffix() string { return ".jsonld" }

// Render implements formats.Renderer. Annotation indices are
// zero-based and cumulative across the whole document's annotation
// list: a span with several normalized identifiers consumes several
// consecutive indices.
func (Renderer) Render(doc *pubtator.Document) ([]byte, error) {
	docURL := "pubmed/" + doc.ID
	dicts := make([]map[string]any, 0)

	for _, a := range doc.Annotations {
		span, ok := a.(*pubtator.SpanAnnotation)
		if !ok {
			logging.NotConverting("oa-jsonld", a.Kind().String(), a.DocID())
			continue
		}
		norms, err := span.Norms()
		if err != nil {
			return nil, err
		}
		for _, n := range norms {
			d := map[string]any{
				"@id":    fmt.Sprintf("%s/annotations/%d", docURL, len(dicts)),
				"@type":  norm.OutputType(span.Type),
				"target": fmt.Sprintf("%s/text#char=%d,%d", docURL, span.Start, span.End),
				"text":   span.Text,
			}
			if n != "" {
				d["body"] = n
			}
			dicts = append(dicts, d)
		}
	}

	return formats.MarshalPretty(dicts)
}
