package json

import (
	"testing"

	"github.com/spyysalo/pubtator/core/pubtator"
)

func TestRenderExample(t *testing.T) {
	doc := &pubtator.Document{
		ID: "1",
		TextSections: []pubtator.TextSection{
			{Label: "t", Text: "Aspirin reduces risk"},
			{Label: "a", Text: "Aspirin is a drug."},
		},
		Annotations: []pubtator.Annotation{
			&pubtator.SpanAnnotation{
				DocumentID: "1", Start: 0, End: 7,
				Text: "Aspirin", Type: "Chemical", RawNorm: "MESH:D001241",
			},
		},
	}

	got, err := Renderer{}.Render(doc)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	want := `{
  "_id": "1",
  "abstract": [
    {
      "text": "Aspirin is a drug."
    }
  ],
  "annotations": [
    {
      "end": 7,
      "norm": "MESH:D001241",
      "start": 0,
      "text": "Aspirin",
      "type": "Chemical"
    }
  ],
  "title": "Aspirin reduces risk"
}`
	if string(got) != want {
		t.Errorf("Render =\n%s\nwant\n%s", got, want)
	}
}

func TestRenderOneRecordPerNorm(t *testing.T) {
	doc := &pubtator.Document{
		ID: "2",
		Annotations: []pubtator.Annotation{
			&pubtator.SpanAnnotation{
				DocumentID: "2", Start: 0, End: 10,
				Text: "SOD1 and 2", Type: "Gene", RawNorm: "6647;6648",
			},
		},
	}

	got, err := Renderer{}.Render(doc)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	want := `{
  "_id": "2",
  "abstract": [],
  "annotations": [
    {
      "end": 10,
      "norm": "NCBIGENE:6647",
      "start": 0,
      "text": "SOD1 and 2",
      "type": "Gene"
    },
    {
      "end": 10,
      "norm": "NCBIGENE:6648",
      "start": 0,
      "text": "SOD1 and 2",
      "type": "Gene"
    }
  ],
  "title": ""
}`
	if string(got) != want {
		t.Errorf("Render =\n%s\nwant\n%s", got, want)
	}
}

func TestRenderSpanWithoutNormOmitsKey(t *testing.T) {
	doc := &pubtator.Document{
		ID: "3",
		Annotations: []pubtator.Annotation{
			&pubtator.SpanAnnotation{
				DocumentID: "3", Start: 0, End: 5, Text: "title", Type: "title",
			},
		},
	}

	got, err := Renderer{}.Render(doc)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	want := `{
  "_id": "3",
  "abstract": [],
  "annotations": [
    {
      "end": 5,
      "start": 0,
      "text": "title",
      "type": "title"
    }
  ],
  "title": ""
}`
	if string(got) != want {
		t.Errorf("Render =\n%s\nwant\n%s", got, want)
	}
}

func TestRenderSkipsRelations(t *testing.T) {
	doc := &pubtator.Document{
		ID: "4",
		Annotations: []pubtator.Annotation{
			&pubtator.RelationAnnotation{DocumentID: "4", Type: "CID", Arg1: "a", Arg2: "b"},
		},
	}

	got, err := Renderer{}.Render(doc)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	want := `{
  "_id": "4",
  "abstract": [],
  "annotations": [],
  "title": ""
}`
	if string(got) != want {
		t.Errorf("Render =\n%s\nwant\n%s", got, want)
	}
}
