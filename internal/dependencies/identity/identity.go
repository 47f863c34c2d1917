package identity

import "github.com/google/uuid"

// Generator produces unique identifiers and can be mocked for testing
type Generator interface {
	// NewID returns a random identifier in the standard 8-4-4-4-12
	// hyphenated hex form
	NewID() string
}

// UUIDGenerator implements Generator using random version-4 UUIDs
type UUIDGenerator struct{}

// New creates a new UUIDGenerator
func New() *UUIDGenerator {
	return &UUIDGenerator{}
}

// NewID returns a random v4 UUID string
func (g *UUIDGenerator) NewID() string {
	return uuid.NewString()
}

// Valid reports whether id has the expected 36-character hyphenated hex
// shape. It checks format only, not existence.
func Valid(id string) bool {
	if len(id) != 36 {
		return false
	}
	parsed, err := uuid.Parse(id)
	return err == nil && parsed.Version() == 4
}
