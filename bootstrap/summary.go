package bootstrap

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/skillsenselab/shellkit/component"
	"github.com/skillsenselab/shellkit/di"
	"github.com/skillsenselab/shellkit/logger"
)

// Summary tracks and displays the application bootstrap process. Component
// details, routes, and health are auto-collected from the component registry;
// bridged service names are tracked by the publish phase.
type Summary struct {
	serviceName     string
	version         string
	startupDuration time.Duration
	services        []string
}

// NewSummary creates a new bootstrap summary tracker.
func NewSummary(serviceName, version string) *Summary {
	return &Summary{
		serviceName: serviceName,
		version:     version,
	}
}

// SetStartupDuration records the total startup time.
func (s *Summary) SetStartupDuration(d time.Duration) {
	s.startupDuration = d
}

// TrackServices records the names published to the bridge registry.
func (s *Summary) TrackServices(names []string) {
	s.services = names
}

// DisplaySummary prints the bootstrap summary. Components implementing
// Describable contribute an infrastructure line; components implementing
// RouteProvider contribute their routes; the DI container contributes its
// registrations.
func (s *Summary) DisplaySummary(components *component.Registry, container di.Container, log *logger.Logger) {
	fmt.Printf("\n")
	fmt.Printf("🚀 %s v%s started in %.2fs\n\n",
		s.serviceName, s.version, s.startupDuration.Seconds())

	all := components.All()

	// Infrastructure: self-described components
	var described []component.Description
	var routes []component.Route
	for _, c := range all {
		if d, ok := c.(component.Describable); ok {
			desc := d.Describe()
			if desc.Name == "" {
				desc.Name = c.Name()
			}
			described = append(described, desc)
		}
		if rp, ok := c.(component.RouteProvider); ok {
			routes = append(routes, rp.Routes()...)
		}
	}

	if len(described) > 0 {
		fmt.Printf("📊 Infrastructure\n")
		for i, d := range described {
			details := d.Details
			if d.Port > 0 {
				details = fmt.Sprintf("%s (:%d)", details, d.Port)
			}
			fmt.Printf("   %s %s [%s]: %s\n", treePrefix(i, len(described)), d.Name, d.Type, details)
		}
		fmt.Printf("\n")
	}

	// Bridged services
	if len(s.services) > 0 {
		fmt.Printf("🔗 Bridged services (%d)\n", len(s.services))
		for i, name := range s.services {
			fmt.Printf("   %s %s\n", treePrefix(i, len(s.services)), name)
		}
		fmt.Printf("\n")
	}

	// DI registrations
	if container != nil {
		regs := container.Registrations()
		if len(regs) > 0 {
			fmt.Printf("🧩 Container (%d)\n", len(regs))
			for i, r := range regs {
				state := "registered"
				if r.Initialized {
					state = "initialized"
				}
				fmt.Printf("   %s %s [%s] (%s)\n", treePrefix(i, len(regs)), r.Key, modeString(r.Mode), state)
			}
			fmt.Printf("\n")
		}
	}

	// Routes
	if len(routes) > 0 {
		fmt.Printf("🌐 Routes (%d)\n", len(routes))
		for i, r := range routes {
			fmt.Printf("   %s %-7s %s → %s\n", treePrefix(i, len(routes)), r.Method, r.Path, r.Handler)
		}
		fmt.Printf("\n")
	}

	// Live health check
	healthResults := components.HealthAll(context.Background())
	if len(healthResults) > 0 {
		fmt.Printf("🏥 Health Check\n")
		for i, h := range healthResults {
			msg := ""
			if h.Message != "" {
				msg = fmt.Sprintf(": %s", h.Message)
			}
			fmt.Printf("   %s %s %s: %s%s\n",
				treePrefix(i, len(healthResults)), healthStatusIcon(h.Status),
				h.Name, strings.ToLower(string(h.Status)), msg)
		}
	}

	fmt.Printf("\n")
}

func modeString(m di.RegistrationMode) string {
	switch m {
	case di.Eager:
		return "eager"
	case di.Lazy:
		return "lazy"
	case di.Singleton:
		return "singleton"
	default:
		return "unknown"
	}
}

func treePrefix(i, total int) string {
	if i == total-1 {
		return "└──"
	}
	return "├──"
}

func healthStatusIcon(status component.HealthStatus) string {
	switch status {
	case component.StatusHealthy:
		return "✅"
	case component.StatusDegraded:
		return "⚠️"
	case component.StatusUnhealthy:
		return "❌"
	default:
		return "❓"
	}
}
