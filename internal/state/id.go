package state

import "github.com/google/uuid"

// Generator produces opaque unique identifiers. It is injected so tests can
// supply a deterministic sequence instead of random ids.
type Generator interface {
	Next() string
}

// UUIDGenerator is the production Generator.
type UUIDGenerator struct{}

func (UUIDGenerator) Next() string {
	return uuid.NewString()
}
