// Package segment adds title and sentence span annotations to
// documents. Sentence boundaries come from a punkt-style tokenizer;
// the tokenizer's output is then realigned against the original text
// so that the concatenation of the aligned sentences reproduces the
// input exactly.
package segment

import (
	"regexp"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/neurosnap/sentences"
	"github.com/neurosnap/sentences/english"

	"github.com/spyysalo/pubtator/core/errors"
	"github.com/spyysalo/pubtator/core/pubtator"
)

// Abbreviations rarely followed by a sentence boundary. The second
// set only blocks a split when the next character is a digit.
var (
	noSplitRE = regexp.MustCompile(
		`(?i)\b((?:a\.k\.a\.|approx\.|ca\.|cf\.|e\.g\.|et al\.|f\.c\.|i\.e\.|lit\.|vol\.)\s*)\n`)
	noSplitNumRE = regexp.MustCompile(
		`(?i)\b((?:fig\.|ib\.|no\.)\s*)\n(\d)`)
)

var (
	tokenizerOnce sync.Once
	tokenizer     *sentences.DefaultSentenceTokenizer
	tokenizerErr  error
)

func getTokenizer() (*sentences.DefaultSentenceTokenizer, error) {
	tokenizerOnce.Do(func() {
		tokenizer, tokenizerErr = english.NewSentenceTokenizer(nil)
	})
	return tokenizer, tokenizerErr
}

// Split splits text into sentences such that the concatenation of the
// returned strings equals text exactly. Inter-sentence whitespace is
// attached to the end of the preceding sentence; leading whitespace
// to the start of the first.
func Split(text string) ([]string, error) {
	tok, err := getTokenizer()
	if err != nil {
		return nil, errors.Wrap(err, "load sentence tokenizer")
	}

	var parts []string
	for _, s := range tok.Tokenize(strings.TrimSpace(text)) {
		if t := strings.TrimSpace(s.Text); t != "" {
			parts = append(parts, t)
		}
	}
	if len(parts) == 0 {
		parts = []string{strings.TrimSpace(text)}
	}

	joined := strings.Join(parts, "\n")
	joined = noSplitRE.ReplaceAllString(joined, "$1 ")
	joined = noSplitNumRE.ReplaceAllString(joined, "$1 $2")

	return realign(strings.Split(joined, "\n"), text)
}

// realign redistributes whitespace between sentences so that the
// concatenation of the result equals text. It fails when the
// sentences and the text differ in anything but whitespace.
func realign(sents []string, text string) ([]string, error) {
	t := []rune(text)
	aligned := make([][]rune, 0, len(sents))
	o := 0

	for i, sent := range sents {
		s := []rune(sent)
		aligned = append(aligned, nil)
		if len(s) == 0 {
			continue
		}

		// resolve extra initial space, if any
		for o < len(t) && t[o] != s[0] {
			if !unicode.IsSpace(t[o]) {
				return nil, alignError(string(t[o:]), sent)
			}
			if i == 0 {
				aligned[len(aligned)-1] = append(aligned[len(aligned)-1], t[o])
			} else {
				aligned[len(aligned)-2] = append(aligned[len(aligned)-2], t[o])
			}
			o++
		}

		if o+len(s) <= len(t) && string(t[o:o+len(s)]) == sent {
			aligned[len(aligned)-1] = append(aligned[len(aligned)-1], s...)
			o += len(s)
			continue
		}

		// align rune by rune
		p := 0
		for p < len(s) {
			switch {
			case o < len(t) && t[o] == s[p]:
				aligned[len(aligned)-1] = append(aligned[len(aligned)-1], t[o])
				o++
				p++
			case unicode.IsSpace(s[p]):
				// drop extra space in the sentence
				p++
			case o < len(t) && unicode.IsSpace(t[o]):
				// add space missing from the sentence
				aligned[len(aligned)-1] = append(aligned[len(aligned)-1], t[o])
				o++
			default:
				return nil, alignError(string(t[o:]), string(s[p:]))
			}
		}
	}

	// leftover final space, if any
	for o < len(t) {
		if !unicode.IsSpace(t[o]) {
			return nil, alignError(string(t[o:]), "")
		}
		aligned[len(aligned)-1] = append(aligned[len(aligned)-1], t[o])
		o++
	}

	out := make([]string, len(aligned))
	var total int
	for i, a := range aligned {
		out[i] = string(a)
		total += len(a)
	}
	if total != len(t) {
		return nil, errors.Wrapf(errors.ErrInvalidInput, "sentence alignment lost characters in %q", text)
	}
	return out, nil
}

func alignError(textRest, sentRest string) error {
	return errors.Wrapf(errors.ErrInvalidInput,
		"cannot align sentence %q against text %q", sentRest, textRest)
}

// Document adds a title span and sentence spans to doc. Offsets are
// rune offsets into the document text; the abstract starts one
// position past the title to account for the separating newline.
func Document(doc *pubtator.Document) error {
	title := doc.Title()
	titleLen := utf8.RuneCountInString(title)

	if strings.TrimSpace(title) != "" {
		doc.Annotations = append(doc.Annotations, &pubtator.SpanAnnotation{
			DocumentID: doc.ID,
			Start:      0,
			End:        titleLen,
			Text:       title,
			Type:       "title",
		})
	}

	text := []rune(doc.Text())
	var abstract string
	if titleLen+1 < len(text) {
		abstract = string(text[titleLen+1:])
	}

	if err := addSentences(doc, title, 0); err != nil {
		return err
	}
	return addSentences(doc, abstract, titleLen+1)
}

func addSentences(doc *pubtator.Document, text string, baseOffset int) error {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	split, err := Split(text)
	if err != nil {
		return err
	}
	o := 0
	for _, s := range split {
		trimmed := strings.TrimRightFunc(s, unicode.IsSpace)
		if trimmed != "" {
			doc.Annotations = append(doc.Annotations, &pubtator.SpanAnnotation{
				DocumentID: doc.ID,
				Start:      baseOffset + o,
				End:        baseOffset + o + utf8.RuneCountInString(trimmed),
				Text:       trimmed,
				Type:       "sentence",
			})
		}
		o += utf8.RuneCountInString(s)
	}
	return nil
}
