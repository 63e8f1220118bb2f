package segment

import (
	"strings"
	"testing"

	"github.com/spyysalo/pubtator/core/pubtator"
)

func TestRealign(t *testing.T) {
	tests := []struct {
		name  string
		sents []string
		text  string
		want  []string
	}{
		{
			name:  "exact",
			sents: []string{"First.", "Second."},
			text:  "First.Second.",
			want:  []string{"First.", "Second."},
		},
		{
			name:  "inter-sentence space goes to previous",
			sents: []string{"First.", "Second."},
			text:  "First.  Second.",
			want:  []string{"First.  ", "Second."},
		},
		{
			name:  "leading space goes to first",
			sents: []string{"First.", "Second."},
			text:  "  First. Second.",
			want:  []string{"  First. ", "Second."},
		},
		{
			name:  "trailing space goes to last",
			sents: []string{"First.", "Second."},
			text:  "First. Second.  ",
			want:  []string{"First. ", "Second.  "},
		},
		{
			name:  "extra space inside sentence dropped",
			sents: []string{"a  b."},
			text:  "a b.",
			want:  []string{"a b."},
		},
		{
			name:  "missing space inside sentence restored",
			sents: []string{"a b."},
			text:  "a  b.",
			want:  []string{"a  b."},
		},
		{
			name:  "single sentence",
			sents: []string{"Only one."},
			text:  "Only one.",
			want:  []string{"Only one."},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := realign(tt.sents, tt.text)
			if err != nil {
				t.Fatalf("realign failed: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("realign = %q, want %q", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("sentence %d = %q, want %q", i, got[i], tt.want[i])
				}
			}
			if strings.Join(got, "") != tt.text {
				t.Errorf("concatenation %q != text %q", strings.Join(got, ""), tt.text)
			}
		})
	}
}

func TestRealignMismatch(t *testing.T) {
	if _, err := realign([]string{"abc."}, "xyz."); err == nil {
		t.Error("realign of mismatched content succeeded, want error")
	}
	if _, err := realign([]string{"abc."}, "abc. extra words"); err == nil {
		t.Error("realign with non-space leftover succeeded, want error")
	}
}

func TestSplitConcatenationInvariant(t *testing.T) {
	texts := []string{
		"Aspirin is a drug. It is widely used.",
		"One sentence only",
		"  Leading space. And trailing space.  ",
		"Treatment with aspirin (e.g. low-dose) reduced risk. Outcomes improved.",
		"Results are shown in Fig. 2 below. Discussion follows.",
	}
	for _, text := range texts {
		split, err := Split(text)
		if err != nil {
			t.Fatalf("Split(%q) failed: %v", text, err)
		}
		if got := strings.Join(split, ""); got != text {
			t.Errorf("Split(%q) concatenation = %q", text, got)
		}
	}
}

func TestSplitTwoSentences(t *testing.T) {
	split, err := Split("Aspirin is a drug. It is widely used.")
	if err != nil {
		t.Fatalf("Split failed: %v", err)
	}
	if len(split) != 2 {
		t.Fatalf("Split = %q, want 2 sentences", split)
	}
	if strings.TrimSpace(split[0]) != "Aspirin is a drug." {
		t.Errorf("first sentence = %q", split[0])
	}
	if strings.TrimSpace(split[1]) != "It is widely used." {
		t.Errorf("second sentence = %q", split[1])
	}
}

func TestDocumentSegmentation(t *testing.T) {
	doc := &pubtator.Document{
		ID: "1",
		TextSections: []pubtator.TextSection{
			{Label: "t", Text: "Aspirin and cancer."},
			{Label: "a", Text: "Aspirin reduces risk. Studies confirm this."},
		},
	}

	if err := Document(doc); err != nil {
		t.Fatalf("Document failed: %v", err)
	}

	var titles, sents []*pubtator.SpanAnnotation
	for _, a := range doc.Annotations {
		span, ok := a.(*pubtator.SpanAnnotation)
		if !ok {
			continue
		}
		switch span.Type {
		case "title":
			titles = append(titles, span)
		case "sentence":
			sents = append(sents, span)
		}
	}

	if len(titles) != 1 {
		t.Fatalf("got %d title spans, want 1", len(titles))
	}
	if titles[0].Start != 0 || titles[0].End != 19 || titles[0].Text != "Aspirin and cancer." {
		t.Errorf("title span = %d-%d %q", titles[0].Start, titles[0].End, titles[0].Text)
	}

	// one sentence from the title, two from the abstract
	if len(sents) != 3 {
		t.Fatalf("got %d sentence spans, want 3: %+v", len(sents), sents)
	}

	text := []rune(doc.Text())
	for _, s := range sents {
		if s.Start < 0 || s.End > len(text) || s.Start >= s.End {
			t.Fatalf("sentence span %d-%d out of range", s.Start, s.End)
		}
		if got := string(text[s.Start:s.End]); got != s.Text {
			t.Errorf("span %d-%d text %q != document slice %q", s.Start, s.End, s.Text, got)
		}
	}

	// abstract sentences start after the title and its separator
	if sents[1].Start != 20 {
		t.Errorf("first abstract sentence starts at %d, want 20", sents[1].Start)
	}
}

func TestDocumentBlankAbstract(t *testing.T) {
	doc := &pubtator.Document{
		ID: "2",
		TextSections: []pubtator.TextSection{
			{Label: "t", Text: "Title only."},
		},
	}
	if err := Document(doc); err != nil {
		t.Fatalf("Document failed: %v", err)
	}

	var kinds []string
	for _, a := range doc.Annotations {
		if span, ok := a.(*pubtator.SpanAnnotation); ok {
			kinds = append(kinds, span.Type)
		}
	}
	want := []string{"title", "sentence"}
	if len(kinds) != len(want) {
		t.Fatalf("annotation types = %v, want %v", kinds, want)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Errorf("annotation %d type = %q, want %q", i, kinds[i], want[i])
		}
	}
}
