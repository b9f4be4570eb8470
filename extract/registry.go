// Package extract builds translation templates from documentation
// sources. Language extractors register themselves by file
// extension; the template builder walks source trees, pulls
// translatable strings, and assembles a POT catalog whose entries
// carry provenance references back to the originating symbol or
// file.
package extract

import (
	"context"
	"fmt"
	"sync"

	"github.com/c360studio/docloc/catalog"
)

// Extractor pulls translatable messages out of one source file.
// Returned messages carry references but no translations.
type Extractor interface {
	ExtractFile(ctx context.Context, path string) ([]*catalog.Message, error)
}

// ExtractorFactory creates an Extractor rooted at a source tree.
// The root determines how module names and relative paths in
// references are derived.
type ExtractorFactory func(sourceRoot string) Extractor

// Registry maintains extractors by name and file extension.
// Thread-safe for concurrent access.
type Registry struct {
	mu         sync.RWMutex
	extractors map[string]ExtractorFactory
	extMap     map[string]string
}

// DefaultRegistry is the global extractor registry. Language
// packages register themselves via init().
var DefaultRegistry = NewRegistry()

// NewRegistry creates an empty extractor registry.
func NewRegistry() *Registry {
	return &Registry{
		extractors: make(map[string]ExtractorFactory),
		extMap:     make(map[string]string),
	}
}

// Register adds an extractor factory for the given extensions.
// The first registration wins if there's an extension conflict.
// Extensions should include the leading dot (e.g. ".py").
func (r *Registry) Register(name string, extensions []string, factory ExtractorFactory) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.extractors[name] = factory
	for _, ext := range extensions {
		if _, exists := r.extMap[ext]; !exists {
			r.extMap[ext] = name
		}
	}
}

// ExtractorName returns the extractor name registered for a file
// extension.
func (r *Registry) ExtractorName(ext string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	name, ok := r.extMap[ext]
	return name, ok
}

// Create instantiates an extractor by name rooted at sourceRoot.
func (r *Registry) Create(name, sourceRoot string) (Extractor, error) {
	r.mu.RLock()
	factory, ok := r.extractors[name]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("extractor not registered: %s", name)
	}
	return factory(sourceRoot), nil
}

// CreateForExtension instantiates the extractor handling ext.
func (r *Registry) CreateForExtension(ext, sourceRoot string) (Extractor, error) {
	name, ok := r.ExtractorName(ext)
	if !ok {
		return nil, fmt.Errorf("no extractor registered for extension: %s", ext)
	}
	return r.Create(name, sourceRoot)
}
