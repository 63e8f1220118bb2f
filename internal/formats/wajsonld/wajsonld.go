// Package wajsonld renders document annotations as a Web Annotation
// JSON-LD graph ("id"/"type" keys, identifiers nested under body.id,
// PMID:<id> document URLs).
package wajsonld

import (
	"fmt"

	"github.com/spyysalo/pubtator/core/norm"
	"github.com/spyysalo/pubtator/core/pubtator"
	"github.com/spyysalo/pubtator/internal/formats"
	"github.com/spyysalo/pubtator/internal/logging"
)

// Renderer implements the Web Annotation JSON-LD serializer.
type Renderer struct{}

// Register registers this renderer with the formats registry.
func Register() {
	formats.Register(Renderer{})
}

func init() {
	Register()
}

// Name implements formats.Renderer.
func (Renderer) Name() string { return "wa-jsonld" }

// Suffix implements formats.Renderer.
func (Renderer) Suffix() string { return ".jsonld" }

// Render implements formats.Renderer. Index allocation is the same
// cumulative zero-based scheme as the Open Annotation flavor.
func (Renderer) Render(doc *pubtator.Document) ([]byte, error) {
	docURL := "PMID:" + doc.ID
	dicts := make([]map[string]any, 0)

	for _, a := range doc.Annotations {
		span, ok := a.(*pubtator.SpanAnnotation)
		if !ok {
			logging.NotConverting("wa-jsonld", a.Kind().String(), a.DocID())
			continue
		}
		norms, err := span.Norms()
		if err != nil {
			return nil, err
		}
		for _, n := range norms {
			body := map[string]any{
				"type": norm.OutputType(span.Type),
			}
			if n != "" {
				body["id"] = n
			}
			dicts = append(dicts, map[string]any{
				"id":     fmt.Sprintf("%s/ann/%d", docURL, len(dicts)),
				"type":   "Span",
				"target": fmt.Sprintf("%s/text#char=%d,%d", docURL, span.Start, span.End),
				"body":   body,
				"text":   span.Text,
			})
		}
	}

	return formats.MarshalPretty(dicts)
}
