package dndctl

import (
	"context"
	"sync"
)

// InMemory is the controller used when no external endpoint is configured.
// It grants permission unconditionally and just remembers the applied state,
// which is enough for local development and tests.
type InMemory struct {
	mu     sync.Mutex
	active bool
}

func NewInMemory() *InMemory {
	return &InMemory{}
}

func (c *InMemory) HasPermission(ctx context.Context) (bool, error) {
	return true, nil
}

func (c *InMemory) Apply(ctx context.Context, active bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.active = active
	return nil
}

func (c *InMemory) Current(ctx context.Context) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active, nil
}
