package service

import "github.com/google/uuid"

// UUIDGenerator defines interface for UUID generation (for testing)
type UUIDGenerator interface {
	NewString() string
}

// DefaultUUIDGenerator is the default UUID generator using google/uuid
type DefaultUUIDGenerator struct{}

func (g *DefaultUUIDGenerator) NewString() string {
	return uuid.NewString()
}
