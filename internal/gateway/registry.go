package gateway

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

// Handler executes one operation with validated arguments and returns the
// payload to embed in a success envelope. The backend interaction, if any,
// happens inside the handler.
type Handler func(ctx context.Context, args map[string]any) (any, error)

// Operation describes one registered operation: its unique name, the input
// contract its arguments are validated against, and its handler.
type Operation struct {
	Name        string
	Description string
	Contract    Contract
	Handler     Handler
}

// Registry is the static operation table. It is populated once at startup
// and read-only afterwards; lookups are exact-match.
type Registry struct {
	operations map[string]*Operation
	names      []string // sorted, for stable listings
}

// NewRegistry builds a registry from the given operations. Names must be
// unique; a duplicate is a programming error caught at startup.
func NewRegistry(operations []*Operation) (*Registry, error) {
	r := &Registry{
		operations: make(map[string]*Operation, len(operations)),
		names:      make([]string, 0, len(operations)),
	}

	for _, op := range operations {
		if op.Name == "" {
			return nil, fmt.Errorf("operation with empty name")
		}
		if _, exists := r.operations[op.Name]; exists {
			return nil, fmt.Errorf("duplicate operation name %q", op.Name)
		}
		r.operations[op.Name] = op
		r.names = append(r.names, op.Name)
	}
	sort.Strings(r.names)

	return r, nil
}

// Lookup returns the operation registered under name.
func (r *Registry) Lookup(name string) (*Operation, bool) {
	op, ok := r.operations[name]
	return op, ok
}

// List returns all registered operations sorted by name. This is the
// discovery surface; callers must not mutate the returned descriptors.
func (r *Registry) List() []*Operation {
	operations := make([]*Operation, 0, len(r.names))
	for _, name := range r.names {
		operations = append(operations, r.operations[name])
	}
	return operations
}

// Suggest finds the most similar registered name for typo detection using
// Levenshtein distance. Returns "" when nothing is close enough.
func (r *Registry) Suggest(name string) string {
	var bestName string
	bestDistance := 3 // Only consider distances <= 2

	nameLower := strings.ToLower(name)

	for _, candidate := range r.names {
		distance := levenshtein.ComputeDistance(nameLower, strings.ToLower(candidate))
		if distance < bestDistance {
			bestDistance = distance
			bestName = candidate
		}
	}

	return bestName
}
