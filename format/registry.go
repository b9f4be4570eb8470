// Package format routes catalog files to the codec that handles
// them, keyed by format name and file extension.
package format

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"sync"

	"github.com/c360studio/docloc/catalog"
	"github.com/c360studio/docloc/format/po"
)

// Codec reads and writes one catalog file format.
type Codec interface {
	// Name returns the format identifier (e.g. "po").
	Name() string

	// Extensions returns the file extensions this codec handles,
	// with leading dots.
	Extensions() []string

	// Decode parses a catalog from r.
	Decode(r io.Reader) (*catalog.File, error)

	// Encode serializes a catalog to w.
	Encode(w io.Writer, f *catalog.File) error
}

// Registry manages catalog codecs.
type Registry struct {
	mu     sync.RWMutex
	codecs map[string]Codec // keyed by name
	extMap map[string]string
}

// DefaultRegistry is the global codec registry with default codecs.
var DefaultRegistry = NewRegistry()

// NewRegistry creates a registry with the default codecs registered.
func NewRegistry() *Registry {
	r := &Registry{
		codecs: make(map[string]Codec),
		extMap: make(map[string]string),
	}
	r.Register(poCodec{})
	return r
}

// Register adds a codec. The first registration wins on extension
// conflicts.
func (r *Registry) Register(c Codec) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.codecs[c.Name()] = c
	for _, ext := range c.Extensions() {
		if _, exists := r.extMap[ext]; !exists {
			r.extMap[ext] = c.Name()
		}
	}
}

// ByName returns the codec registered under name.
func (r *Registry) ByName(name string) (Codec, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.codecs[name]
	return c, ok
}

// ByPath returns the codec for a file based on its extension.
func (r *Registry) ByPath(path string) (Codec, error) {
	ext := strings.ToLower(filepath.Ext(path))
	r.mu.RLock()
	name, ok := r.extMap[ext]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("no codec for file type: %s", ext)
	}
	c, _ := r.ByName(name)
	return c, nil
}

// Names returns all registered format names.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.codecs))
	for n := range r.codecs {
		names = append(names, n)
	}
	return names
}

// poCodec adapts the po package to the Codec interface. Templates
// (.pot) share the same grammar.
type poCodec struct{}

func (poCodec) Name() string { return "po" }

func (poCodec) Extensions() []string { return []string{".po", ".pot"} }

func (poCodec) Decode(r io.Reader) (*catalog.File, error) { return po.Parse(r) }

func (poCodec) Encode(w io.Writer, f *catalog.File) error { return po.Write(w, f) }
