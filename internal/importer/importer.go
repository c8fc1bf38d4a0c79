// Package importer turns CSV files into envelope items for bulk
// entry. Parsers are looked up by format name through a registry.
package importer

import (
	"io"
	"strings"

	"github.com/smartcart-dev/smartcart/internal/model"
)

// Parser converts a CSV file into items. Parsed items carry no ID;
// the caller assigns IDs before adding them to the store.
type Parser interface {
	Parse(r io.Reader) ([]model.Item, error)
	Format() string
}

// Registry holds named parsers.
type Registry struct {
	parsers map[string]Parser
}

// NewRegistry creates an empty parser registry.
func NewRegistry() *Registry {
	return &Registry{parsers: make(map[string]Parser)}
}

// Register adds a parser. Panics on duplicate format.
func (r *Registry) Register(p Parser) {
	key := strings.ToLower(p.Format())
	if _, ok := r.parsers[key]; ok {
		panic("duplicate parser format: " + key)
	}
	r.parsers[key] = p
}

// Get returns the parser for format, or nil.
func (r *Registry) Get(format string) Parser {
	return r.parsers[strings.ToLower(format)]
}

// Formats returns the registered format names.
func (r *Registry) Formats() []string {
	names := make([]string, 0, len(r.parsers))
	for name := range r.parsers {
		names = append(names, name)
	}
	return names
}

// DefaultRegistry returns a registry with all built-in parsers.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(&ItemsParser{})
	return r
}
