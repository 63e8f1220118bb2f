// Package formats defines the output serializer interface and
// registry. Each serializer maps the same document model to a
// distinct textual encoding; all registered renderers preserve the
// same underlying facts.
package formats

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/spyysalo/pubtator/core/pubtator"
)

// Renderer turns one document into the contents of one output file.
type Renderer interface {
	// Name returns the format name used for CLI selection.
	Name() string
	// Suffix returns the output filename suffix, including the dot.
	Suffix() string
	// Render serializes the document. The output is deterministic:
	// repeated runs on unchanged input are byte-identical.
	Render(doc *pubtator.Document) ([]byte, error)
}

var (
	registryMu sync.RWMutex
	registry   = make(map[string]Renderer)
)

// Register adds a renderer to the registry. It panics on duplicate
// names; registration happens from package init functions.
func Register(r Renderer) {
	registryMu.Lock()
	defer registryMu.Unlock()
	if _, ok := registry[r.Name()]; ok {
		panic(fmt.Sprintf("formats: duplicate renderer %q", r.Name()))
	}
	registry[r.Name()] = r
}

// Get returns the renderer registered under name.
func Get(name string) (Renderer, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	r, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown format %q (available: %v)", name, names())
	}
	return r, nil
}

// Names returns the registered format names in sorted order.
func Names() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return names()
}

// names requires the registry lock to be held.
func names() []string {
	out := make([]string, 0, len(registry))
	for name := range registry {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// MarshalPretty renders v as deterministic pretty JSON:
// lexicographically sorted keys, two-space indentation, no HTML
// escaping, no trailing newline. Repeated runs on equal input yield
// byte-identical output, which supports diffing and idempotence
// testing.
func MarshalPretty(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
