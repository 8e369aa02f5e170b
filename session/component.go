package session

import (
	"context"
	"fmt"

	"github.com/skillsenselab/shellkit/component"
	"github.com/skillsenselab/shellkit/identity"
)

const componentName = "session"

var (
	_ component.Component   = (*Component)(nil)
	_ component.Describable = (*Component)(nil)
)

// Component adapts the session service to the lifecycle registry. The
// token stream itself starts at service construction and has no
// teardown; the component only reports state.
type Component struct {
	service *Service
}

// NewComponent wraps a session service as a lifecycle component.
func NewComponent(s *Service) *Component {
	return &Component{service: s}
}

func (c *Component) Name() string { return componentName }

func (c *Component) Start(_ context.Context) error {
	c.service.log.Info("Session service ready", map[string]interface{}{
		"provider": c.providerState(),
	})
	return nil
}

func (c *Component) Stop(_ context.Context) error {
	// The stream lives for the process lifetime.
	return nil
}

func (c *Component) Health(_ context.Context) component.Health {
	return component.Health{
		Name:    componentName,
		Status:  component.StatusHealthy,
		Message: fmt.Sprintf("provider=%s subscribers=%d", c.providerState(), c.service.Subscribers()),
	}
}

// Describe returns summary info for the bootstrap display.
func (c *Component) Describe() component.Description {
	return component.Description{
		Name:    "Auth Session",
		Type:    "session",
		Details: fmt.Sprintf("provider: %s", c.providerState()),
	}
}

func (c *Component) providerState() string {
	if _, ok := c.service.binding.(identity.Active); ok {
		return "active"
	}
	return "inactive"
}
