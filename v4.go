package cuuid

import (
	"crypto/rand"
	"io"
)

// Generator produces random (version 4) UUIDs from a configurable
// entropy source. The zero-value Generator is not usable; construct one
// with NewGenerator or NewGeneratorWithReader.
type Generator struct {
	randReader io.Reader
}

// NewGenerator creates a new UUIDv4 generator with crypto/rand as the random source
func NewGenerator() *Generator {
	return &Generator{
		randReader: rand.Reader,
	}
}

// NewGeneratorWithReader creates a new UUIDv4 generator with a custom random source.
// This is primarily useful for testing with deterministic random sources.
func NewGeneratorWithReader(r io.Reader) *Generator {
	return &Generator{
		randReader: r,
	}
}

// New generates a new UUIDv4. Of the 128 bits, 122 come from the entropy
// source; the version nibble and the two variant bits are forced per
// RFC 4122. The generator keeps no state, so New is safe for concurrent
// use as long as the entropy source is (crypto/rand is).
func (g *Generator) New() (UUID, error) {
	var uuid UUID

	if _, err := io.ReadFull(g.randReader, uuid[:]); err != nil {
		return Nil, err
	}

	// Set version to 4 (0100) and variant to RFC 4122 (10xx xxxx)
	uuid[6] = (uuid[6] & 0x0F) | 0x40
	uuid[8] = (uuid[8] & 0x3F) | 0x80

	return uuid, nil
}

// Must is a helper that wraps a call to a function returning (UUID, error)
// and panics if the error is non-nil. It is intended for use in variable
// initializations such as:
//
//	var id = cuuid.Must(cuuid.New())
func Must(uuid UUID, err error) UUID {
	if err != nil {
		panic(err)
	}
	return uuid
}

// defaultGenerator is the package-level generator used by the New* functions
var defaultGenerator = NewGenerator()

// New generates a new UUIDv4 using the default generator.
// This is a convenience function that uses the package-level generator.
func New() (UUID, error) {
	return defaultGenerator.New()
}

// NewV4 is an alias for New() for explicit version specification
func NewV4() (UUID, error) {
	return defaultGenerator.New()
}
