package pubtator

import (
	"reflect"
	"testing"
)

func TestDocumentText(t *testing.T) {
	doc := &Document{
		ID: "1",
		TextSections: []TextSection{
			{Label: "t", Text: "Aspirin reduces risk"},
			{Label: "a", Text: "Aspirin is a drug."},
		},
	}

	if got, want := doc.Text(), "Aspirin reduces risk\nAspirin is a drug."; got != want {
		t.Errorf("Text() = %q, want %q", got, want)
	}
	if got, want := doc.Title(), "Aspirin reduces risk"; got != want {
		t.Errorf("Title() = %q, want %q", got, want)
	}
	if got, want := doc.Abstract(), []string{"Aspirin is a drug."}; !reflect.DeepEqual(got, want) {
		t.Errorf("Abstract() = %v, want %v", got, want)
	}
}

func TestDocumentMultipleTitleSections(t *testing.T) {
	doc := &Document{
		ID: "2",
		TextSections: []TextSection{
			{Label: "t", Text: "First"},
			{Label: "t", Text: "Second"},
			{Label: "a", Text: "Abstract one"},
			{Label: "a", Text: "Abstract two"},
		},
	}

	if got, want := doc.Title(), "First Second"; got != want {
		t.Errorf("Title() = %q, want %q", got, want)
	}
	if got, want := doc.Text(), "First\nSecond\nAbstract one\nAbstract two"; got != want {
		t.Errorf("Text() = %q, want %q", got, want)
	}
}

func TestDocumentEmpty(t *testing.T) {
	doc := &Document{ID: "3"}
	if got := doc.Text(); got != "" {
		t.Errorf("Text() = %q, want empty", got)
	}
	if got := doc.Title(); got != "" {
		t.Errorf("Title() = %q, want empty", got)
	}
	if got := doc.Abstract(); got != nil {
		t.Errorf("Abstract() = %v, want nil", got)
	}
}
