package sse

import (
	"context"
	"fmt"

	"github.com/kbukum/speechkit/component"
	"github.com/kbukum/speechkit/logger"
)

// Component manages a Hub's lifecycle. Stopping it ends every stream.
type Component struct {
	hub  *Hub
	path string
}

var (
	_ component.Component   = (*Component)(nil)
	_ component.Describable = (*Component)(nil)
)

// NewComponent creates a component with a fresh Hub served at path.
func NewComponent(path string, log *logger.Logger) *Component {
	return &Component{hub: NewHub(log), path: path}
}

// Hub returns the hub to publish to and serve from.
func (c *Component) Hub() *Hub { return c.hub }

// Name returns the component name.
func (c *Component) Name() string { return "sse" }

// Start is a no-op; the hub needs no background work.
func (c *Component) Start(_ context.Context) error { return nil }

// Stop closes the hub.
func (c *Component) Stop(_ context.Context) error {
	c.hub.Close()
	return nil
}

// Health reports the subscriber count.
func (c *Component) Health(_ context.Context) component.Health {
	return component.Health{
		Name:    c.Name(),
		Status:  component.StatusHealthy,
		Message: fmt.Sprintf("%d clients connected", c.hub.Count()),
	}
}

// Describe returns the summary entry.
func (c *Component) Describe() component.Description {
	return component.Description{
		Name:    "Job events",
		Type:    "sse",
		Details: fmt.Sprintf("Path: %s", c.path),
	}
}
