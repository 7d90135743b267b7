package id

import "github.com/google/uuid"

// Generator creates opaque identifiers.
type Generator interface {
	New() string
}

// UUID issues random version 4 UUIDs.
type UUID struct{}

func (UUID) New() string {
	return uuid.NewString()
}

// Static always returns Value. Tests use it for byte-stable output.
type Static struct {
	Value string
}

func (s Static) New() string {
	return s.Value
}
