package mocks

import (
	"github.com/pdlabs/pdgame/internal/dependencies/identity"
)

// MockGenerator is a mock implementation of identity.Generator for testing
type MockGenerator struct {
	// IDs is a queue of identifiers to return from NewID
	IDs   []string
	index int
}

// Ensure MockGenerator implements Generator
var _ identity.Generator = (*MockGenerator)(nil)

// NewMockGenerator creates a new MockGenerator
func NewMockGenerator() *MockGenerator {
	return &MockGenerator{}
}

// NewID returns the next queued identifier, or empty string if none remain
func (g *MockGenerator) NewID() string {
	if g.index >= len(g.IDs) {
		return ""
	}
	id := g.IDs[g.index]
	g.index++
	return id
}

// Queue adds identifiers to the result queue
func (g *MockGenerator) Queue(ids ...string) {
	g.IDs = append(g.IDs, ids...)
}
