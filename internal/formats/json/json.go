// Package json renders documents as pretty-printed JSON with the
// document text and one annotation record per normalized identifier.
package json

import (
	"github.com/spyysalo/pubtator/core/norm"
	"github.com/spyysalo/pubtator/core/pubtator"
	"github.com/spyysalo/pubtator/internal/formats"
	"github.com/spyysalo/pubtator/internal/logging"
)

// Renderer implements the JSON serializer.
type Renderer struct{}

// Register registers this renderer with the formats registry.
func Register() {
	formats.Register(Renderer{})
}

func init() {
	Register()
}

// Name implements formats.Renderer.
func (Renderer) Name() string { return "json" }

// Suffix implements formats.Renderer.
func (Renderer) Suffix() string { return ".json" }

// Render implements formats.Renderer.
func (Renderer) Render(doc *pubtator.Document) ([]byte, error) {
	abstract := make([]map[string]any, 0)
	for _, text := range doc.Abstract() {
		abstract = append(abstract, map[string]any{"text": text})
	}

	annotations := make([]map[string]any, 0)
	for _, a := range doc.Annotations {
		span, ok := a.(*pubtator.SpanAnnotation)
		if !ok {
			logging.NotConverting("json", a.Kind().String(), a.DocID())
			continue
		}
		dicts, err := spanDicts(span)
		if err != nil {
			return nil, err
		}
		annotations = append(annotations, dicts...)
	}

	return formats.MarshalPretty(map[string]any{
		"_id":         doc.ID,
		"title":       doc.Title(),
		"abstract":    abstract,
		"annotations": annotations,
	})
}

// spanDicts returns one record per normalized identifier: a span
// with k identifiers yields k records.
func spanDicts(span *pubtator.SpanAnnotation) ([]map[string]any, error) {
	norms, err := span.Norms()
	if err != nil {
		return nil, err
	}
	dicts := make([]map[string]any, 0, len(norms))
	for _, n := range norms {
		d := map[string]any{
			"start": span.Start,
			"end":   span.End,
			"text":  span.Text,
			"type":  norm.OutputType(span.Type),
		}
		if n != "" {
			d["norm"] = n
		}
		dicts = append(dicts, d)
	}
	return dicts, nil
}
