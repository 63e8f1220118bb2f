// Package webanno models Web Annotation JSON-LD data produced by the
// wa-jsonld serializer, and implements post-processing over it:
// cooccurrence relation generation and surface-string to identifier
// mapping extraction.
package webanno

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/spyysalo/pubtator/core/errors"
	"github.com/spyysalo/pubtator/internal/formats"
	"github.com/spyysalo/pubtator/internal/logging"
)

var charRangeRE = regexp.MustCompile(`^char=(\d+),(\d+)$`)

// Annotation is a Web Annotation of any type.
type Annotation interface {
	// ID returns the annotation identifier.
	ID() string
	// Document returns the target with any fragment stripped.
	Document() string
	// ToDict returns the JSON-LD representation.
	ToDict() map[string]any
	// RemapIDs rewrites identifiers through idMap. Identifiers not
	// present in the map are left unchanged.
	RemapIDs(idMap map[string]string)
}

type common struct {
	id     string
	typ    string
	target string
}

func (c *common) ID() string { return c.id }

func (c *common) Document() string {
	return strings.SplitN(c.target, "#", 2)[0]
}

// IDBase returns the final path segment of the identifier.
func (c *common) IDBase() string {
	parts := strings.Split(c.id, "/")
	return parts[len(parts)-1]
}

// IDPath returns the identifier with the final segment removed.
func (c *common) IDPath() string {
	parts := strings.Split(c.id, "/")
	return strings.Join(parts[:len(parts)-1], "/")
}

func (c *common) RemapIDs(idMap map[string]string) {
	if mapped, ok := idMap[c.id]; ok {
		c.id = mapped
	}
}

// Span is a text-anchored annotation. Body is either a bare string or
// a map with "type" and optional "id" keys, depending on which
// serializer produced it.
type Span struct {
	common
	Body  any
	Text  string
	Other map[string]any
}

// NewSpan constructs a span annotation.
func NewSpan(id, typ, target string, body any, text string) *Span {
	return &Span{
		common: common{id: id, typ: typ, target: target},
		Body:   body,
		Text:   text,
	}
}

// CharRange parses the character offsets from the target fragment.
func (s *Span) CharRange() (start, end int, err error) {
	_, fragment, _ := strings.Cut(s.target, "#")
	m := charRangeRE.FindStringSubmatch(fragment)
	if m == nil {
		return 0, 0, errors.Wrapf(errors.ErrInvalidInput,
			"failed to parse fragment: %s", fragment)
	}
	start, _ = strconv.Atoi(m[1])
	end, _ = strconv.Atoi(m[2])
	return start, end, nil
}

// BodyID returns the identifier from the body, if any.
func (s *Span) BodyID() (string, bool) {
	switch b := s.Body.(type) {
	case string:
		return b, b != ""
	case map[string]any:
		id, ok := b["id"].(string)
		return id, ok && id != ""
	}
	return "", false
}

// ToDict implements Annotation.
func (s *Span) ToDict() map[string]any {
	d := map[string]any{
		"id":     s.id,
		"type":   s.typ,
		"target": s.target,
		"body":   s.Body,
		"text":   s.Text,
	}
	for k, v := range s.Other {
		d[k] = v
	}
	return d
}

func (s *Span) String() string {
	return fmt.Sprintf("%s %s %s (%q) %v", s.id, s.typ, s.target, s.Text, s.Body)
}

// Relation connects two annotations within one document.
type Relation struct {
	common
	From    string
	To      string
	RelType string
}

// NewRelation constructs a relation annotation.
func NewRelation(id, typ, target, from, to, relType string) *Relation {
	return &Relation{
		common:  common{id: id, typ: typ, target: target},
		From:    from,
		To:      to,
		RelType: relType,
	}
}

// ToDict implements Annotation.
func (r *Relation) ToDict() map[string]any {
	return map[string]any{
		"id":     r.id,
		"type":   r.typ,
		"target": r.target,
		"body": map[string]any{
			"from": r.From,
			"to":   r.To,
			"type": r.RelType,
		},
	}
}

// RemapIDs implements Annotation; relation endpoints are remapped
// along with the identifier itself.
func (r *Relation) RemapIDs(idMap map[string]string) {
	r.common.RemapIDs(idMap)
	if mapped, ok := idMap[r.From]; ok {
		r.From = mapped
	}
	if mapped, ok := idMap[r.To]; ok {
		r.To = mapped
	}
}

// FromDict builds an annotation from its JSON-LD representation.
func FromDict(d map[string]any) (Annotation, error) {
	typ, ok := d["type"].(string)
	if !ok {
		return nil, errors.Wrapf(errors.ErrInvalidInput, "annotation without type: %v", d)
	}
	switch typ {
	case "Span":
		return spanFromDict(d)
	case "Relation":
		return relationFromDict(d)
	}
	return nil, errors.NewUnsupported("web annotation", "annotation type "+typ)
}

func spanFromDict(d map[string]any) (*Span, error) {
	id, target, err := requireStrings(d, "id", "target")
	if err != nil {
		return nil, err
	}
	text, _ := d["text"].(string)
	s := NewSpan(id, "Span", target, d["body"], text)
	for k, v := range d {
		switch k {
		case "id", "type", "target", "body", "text":
		default:
			if s.Other == nil {
				s.Other = make(map[string]any)
			}
			s.Other[k] = v
		}
	}
	return s, nil
}

func relationFromDict(d map[string]any) (*Relation, error) {
	id, target, err := requireStrings(d, "id", "target")
	if err != nil {
		return nil, err
	}
	body, ok := d["body"].(map[string]any)
	if !ok {
		return nil, errors.Wrapf(errors.ErrInvalidInput, "relation without body: %v", d)
	}
	from, _ := body["from"].(string)
	to, _ := body["to"].(string)
	relType, _ := body["type"].(string)
	return NewRelation(id, "Relation", target, from, to, relType), nil
}

func requireStrings(d map[string]any, keys ...string) (string, string, error) {
	vals := make([]string, len(keys))
	for i, k := range keys {
		v, ok := d[k].(string)
		if !ok {
			return "", "", errors.Wrapf(errors.ErrInvalidInput, "annotation missing %s: %v", k, d)
		}
		vals[i] = v
	}
	return vals[0], vals[1], nil
}

// ReadFile reads a .jsonld annotation file. Duplicate identifiers
// within one file are an error.
func ReadFile(path string) ([]Annotation, error) {
	if !strings.HasSuffix(path, ".jsonld") {
		return nil, errors.NewUnsupported("web annotation", "non-JSON-LD input "+path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewIO("read", path, err)
	}
	return Parse(data, path)
}

// Parse decodes the contents of one annotation file. The name is
// used in error messages only.
func Parse(data []byte, name string) ([]Annotation, error) {
	var dicts []map[string]any
	if err := json.Unmarshal(data, &dicts); err != nil {
		return nil, errors.Wrapf(err, "parse %s", name)
	}

	annotations := make([]Annotation, 0, len(dicts))
	seen := make(map[string]bool)
	for _, d := range dicts {
		a, err := FromDict(d)
		if err != nil {
			return nil, err
		}
		if seen[a.ID()] {
			return nil, errors.Wrapf(errors.ErrInvalidInput,
				"duplicate id in %s: %s", name, a.ID())
		}
		seen[a.ID()] = true
		annotations = append(annotations, a)
	}
	return annotations, nil
}

// WriteFile renders annotations as pretty JSON and writes them to
// path, replacing any existing content.
func WriteFile(path string, annotations []Annotation) error {
	dicts := make([]map[string]any, len(annotations))
	for i, a := range annotations {
		dicts[i] = a.ToDict()
	}
	out, err := formats.MarshalPretty(dicts)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return errors.NewIO("write", path, err)
	}
	return nil
}

// maxIDBase returns the largest integer final identifier segment
// among the annotations. Non-integer segments are logged and skipped.
func maxIDBase(annotations []Annotation) int {
	max := 0
	for _, a := range annotations {
		c := annotationCommon(a)
		n, err := strconv.Atoi(c.IDBase())
		if err != nil {
			logging.Warn("non-int ID base", "id_base", c.IDBase())
			continue
		}
		if n > max {
			max = n
		}
	}
	return max
}

func annotationCommon(a Annotation) *common {
	switch v := a.(type) {
	case *Span:
		return &v.common
	case *Relation:
		return &v.common
	}
	panic(fmt.Sprintf("webanno: unknown annotation %T", a))
}

// Cooccurrences generates Cooccurrence relations between pairs of
// spans whose character distance does not exceed maxDistance. New
// relation identifiers continue from the largest integer identifier
// already present.
func Cooccurrences(annotations []Annotation, maxDistance int) ([]Annotation, error) {
	var spans []*Span
	for _, a := range annotations {
		if s, ok := a.(*Span); ok {
			spans = append(spans, s)
		}
	}

	var relations []Annotation
	nextID := maxIDBase(annotations) + 1
	for i := 0; i < len(spans); i++ {
		for j := i + 1; j < len(spans); j++ {
			a, b := spans[i], spans[j]
			if a.Document() != b.Document() {
				logging.Warn("annotations for different documents",
					"a", a.Document(), "b", b.Document())
				continue
			}
			aStart, aEnd, err := a.CharRange()
			if err != nil {
				return nil, err
			}
			bStart, bEnd, err := b.CharRange()
			if err != nil {
				return nil, err
			}
			firstEnd, secondStart := aEnd, bStart
			if aStart >= bStart {
				firstEnd, secondStart = bEnd, aStart
			}
			if secondStart-firstEnd > maxDistance {
				continue
			}
			id := fmt.Sprintf("%s/%d", a.IDPath(), nextID)
			nextID++
			relations = append(relations,
				NewRelation(id, "Relation", a.Document(), a.ID(), b.ID(), "Cooccurrence"))
		}
	}
	return relations, nil
}

// Mappings accumulates surface-string to identifier counts over span
// annotations.
type Mappings map[string]map[string]int

// Add counts the identifier of every span with one.
func (m Mappings) Add(annotations []Annotation) {
	for _, a := range annotations {
		s, ok := a.(*Span)
		if !ok {
			continue
		}
		id, ok := s.BodyID()
		if !ok {
			continue
		}
		if m[s.Text] == nil {
			m[s.Text] = make(map[string]int)
		}
		m[s.Text][id]++
	}
}

// MarshalPretty renders the mappings as deterministic pretty JSON.
func (m Mappings) MarshalPretty() ([]byte, error) {
	return formats.MarshalPretty(m)
}
