package pubtator

import "strings"

// TextSection is one embedded text line of a document: a short
// section label (conventionally "t" for title, "a" for abstract) and
// its text.
type TextSection struct {
	Label string
	Text  string
}

// Document is one PubTator record: an identifier, its ordered text
// sections, and its annotations in order of appearance. A Document
// exclusively owns its annotations.
type Document struct {
	ID           string
	TextSections []TextSection
	Annotations  []Annotation
}

// Text returns the document text: all sections joined by a single
// newline, in order. Span annotation offsets index into this string.
func (d *Document) Text() string {
	texts := make([]string, len(d.TextSections))
	for i, s := range d.TextSections {
		texts[i] = s.Text
	}
	return strings.Join(texts, "\n")
}

// Title returns the sections labeled "t" joined by a single space.
func (d *Document) Title() string {
	var texts []string
	for _, s := range d.TextSections {
		if s.Label == "t" {
			texts = append(texts, s.Text)
		}
	}
	return strings.Join(texts, " ")
}

// Abstract returns the texts of the sections labeled "a".
func (d *Document) Abstract() []string {
	var texts []string
	for _, s := range d.TextSections {
		if s.Label == "a" {
			texts = append(texts, s.Text)
		}
	}
	return texts
}
