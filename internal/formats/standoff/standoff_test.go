package standoff

import (
	"bytes"
	"testing"

	"github.com/spyysalo/pubtator/core/pubtator"
)

func exampleDoc() *pubtator.Document {
	return &pubtator.Document{
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
}

func TestRenderExample(t *testing.T) {
	got, err := Renderer{}.Render(exampleDoc())
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	want := "T1\tChemical 0 7\tAspirin\n" +
		"N1\tReference T1 MESH:D001241\tAspirin\n"
	if string(got) != want {
		t.Errorf("Render = %q, want %q", got, want)
	}
}

func TestRenderIdempotent(t *testing.T) {
	doc := exampleDoc()
	first, err := Renderer{}.Render(doc)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	second, err := Renderer{}.Render(doc)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Errorf("repeated renders differ:\n%s\nvs\n%s", first, second)
	}
}

func TestRenderMultipleNorms(t *testing.T) {
	doc := &pubtator.Document{
		ID: "27086975",
		Annotations: []pubtator.Annotation{
			&pubtator.SpanAnnotation{
				DocumentID: "27086975", Start: 1178, End: 1188,
				Text: "SOD1 and 2", Type: "Gene", RawNorm: "6647;6648",
			},
			&pubtator.SpanAnnotation{
				DocumentID: "27086975", Start: 0, End: 4,
				Text: "SOD1", Type: "Gene", RawNorm: "6647",
			},
		},
	}
	got, err := Renderer{}.Render(doc)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	want := "T1\tGene 1178 1188\tSOD1 and 2\n" +
		"N1\tReference T1 NCBIGENE:6647\tSOD1 and 2\n" +
		"N2\tReference T1 NCBIGENE:6648\tSOD1 and 2\n" +
		"T2\tGene 0 4\tSOD1\n" +
		"N3\tReference T2 NCBIGENE:6647\tSOD1\n"
	if string(got) != want {
		t.Errorf("Render = %q, want %q", got, want)
	}
}

func TestRenderSpanWithoutNorm(t *testing.T) {
	doc := &pubtator.Document{
		ID: "1",
		Annotations: []pubtator.Annotation{
			&pubtator.SpanAnnotation{
				DocumentID: "1", Start: 0, End: 8, Text: "sentence", Type: "sentence",
			},
		},
	}
	got, err := Renderer{}.Render(doc)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	want := "T1\tsentence 0 8\tsentence\n"
	if string(got) != want {
		t.Errorf("Render = %q, want %q", got, want)
	}
}

func TestRenderMutationDisplayType(t *testing.T) {
	doc := &pubtator.Document{
		ID: "1",
		Annotations: []pubtator.Annotation{
			&pubtator.SpanAnnotation{
				DocumentID: "1", Start: 3, End: 10,
				Text: "rs12345", Type: "SNP", RawNorm: "rs12345",
			},
		},
	}
	got, err := Renderer{}.Render(doc)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	want := "T1\tMutation 3 10\trs12345\n" +
		"N1\tReference T1 SNP:rs12345\trs12345\n"
	if string(got) != want {
		t.Errorf("Render = %q, want %q", got, want)
	}
}

func TestRenderSkipsRelations(t *testing.T) {
	doc := &pubtator.Document{
		ID: "1",
		Annotations: []pubtator.Annotation{
			&pubtator.RelationAnnotation{DocumentID: "1", Type: "CID", Arg1: "a", Arg2: "b"},
			&pubtator.SpanAnnotation{
				DocumentID: "1", Start: 0, End: 7, Text: "Aspirin", Type: "Chemical",
			},
		},
	}
	got, err := Renderer{}.Render(doc)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	want := "T1\tChemical 0 7\tAspirin\n"
	if string(got) != want {
		t.Errorf("Render = %q, want %q", got, want)
	}
}

func TestRenderEmptyDocument(t *testing.T) {
	got, err := Renderer{}.Render(&pubtator.Document{ID: "1"})
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if got != nil {
		t.Errorf("Render = %q, want no output", got)
	}
}
