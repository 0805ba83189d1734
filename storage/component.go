package storage

import (
	"context"
	"fmt"

	"github.com/kbukum/speechkit/component"
	"github.com/kbukum/speechkit/logger"
)

// Component wraps Storage for lifecycle management. A disabled component
// starts cleanly and leaves Storage nil.
type Component struct {
	storage Storage
	cfg     Config
	log     *logger.Logger
}

var _ component.Component = (*Component)(nil)

// NewComponent creates a storage component for the component registry.
func NewComponent(cfg Config, log *logger.Logger) *Component {
	cfg.ApplyDefaults()
	return &Component{cfg: cfg, log: log.WithComponent("storage")}
}

// Storage returns the backend, or nil if disabled or not started.
func (c *Component) Storage() Storage { return c.storage }

// Config returns the effective configuration.
func (c *Component) Config() Config { return c.cfg }

// Name returns the component name.
func (c *Component) Name() string { return "storage" }

// Start creates the backend and ensures its container exists.
func (c *Component) Start(ctx context.Context) error {
	if !c.cfg.Enabled {
		c.log.Warn("storage disabled, batch submissions will return placeholder jobs")
		return nil
	}

	s, err := New(c.cfg, c.log)
	if err != nil {
		return fmt.Errorf("storage start: %w", err)
	}
	if ce, ok := s.(ContainerEnsurer); ok {
		if err := ce.EnsureContainer(ctx); err != nil {
			return fmt.Errorf("storage start: %w", err)
		}
	}
	c.storage = s
	return nil
}

// Stop releases the backend.
func (c *Component) Stop(_ context.Context) error {
	c.storage = nil
	return nil
}

// Health probes the backend with an existence check.
func (c *Component) Health(ctx context.Context) component.Health {
	if !c.cfg.Enabled {
		return component.Health{Name: c.Name(), Status: component.StatusDegraded, Message: "disabled"}
	}
	if c.storage == nil {
		return component.Health{Name: c.Name(), Status: component.StatusUnhealthy, Message: "storage not initialized"}
	}
	if _, err := c.storage.Exists(ctx, ".health"); err != nil {
		return component.Health{
			Name:    c.Name(),
			Status:  component.StatusUnhealthy,
			Message: fmt.Sprintf("health probe failed: %v", err),
		}
	}
	return component.Health{Name: c.Name(), Status: component.StatusHealthy}
}

// Describe returns the startup summary line.
func (c *Component) Describe() component.Description {
	details := fmt.Sprintf("provider=%s container=%s", c.cfg.Provider, c.cfg.Container)
	if !c.cfg.Enabled {
		details = "disabled"
	}
	return component.Description{Name: "Object Storage", Type: "storage", Details: details}
}
