package bootstrap

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/kbukum/speechkit/component"
)

// Summary prints what a binary started with: its components, their health
// and the HTTP routes they serve.
type Summary struct {
	serviceName     string
	version         string
	startupDuration time.Duration
	out             io.Writer
}

// NewSummary creates a summary printer writing to stdout.
func NewSummary(serviceName, version string) *Summary {
	return &Summary{serviceName: serviceName, version: version, out: os.Stdout}
}

// SetStartupDuration records the total startup time.
func (s *Summary) SetStartupDuration(d time.Duration) {
	s.startupDuration = d
}

// Display prints the summary with live health from registry.
func (s *Summary) Display(ctx context.Context, registry *component.Registry) {
	w := s.out
	fmt.Fprintf(w, "\n🚀 %s v%s started in %.2fs\n\n", s.serviceName, s.version, s.startupDuration.Seconds())
	if registry == nil {
		return
	}

	health := make(map[string]component.Health)
	for _, h := range registry.HealthAll(ctx) {
		health[h.Name] = h
	}

	comps := registry.All()
	var routes []component.Route
	if len(comps) > 0 {
		fmt.Fprintf(w, "📦 Components\n")
	}
	healthy := 0
	for i, c := range comps {
		h := health[c.Name()]
		if h.Status == component.StatusHealthy {
			healthy++
		}
		name, details := c.Name(), ""
		if d, ok := c.(component.Describable); ok {
			desc := d.Describe()
			if desc.Name != "" {
				name = desc.Name
			}
			details = desc.Details
			if desc.Port > 0 {
				details = fmt.Sprintf("%s (:%d)", details, desc.Port)
			}
		}
		line := fmt.Sprintf("   %s %s %s", treePrefix(i, len(comps)), healthIcon(h.Status), name)
		if details != "" {
			line += ": " + details
		}
		if h.Message != "" {
			line += " [" + h.Message + "]"
		}
		fmt.Fprintln(w, line)

		if rp, ok := c.(component.RouteProvider); ok {
			routes = append(routes, rp.Routes()...)
		}
	}

	if len(routes) > 0 {
		fmt.Fprintf(w, "\n🌐 Routes\n")
		for i, r := range routes {
			fmt.Fprintf(w, "   %s %-6s %s\n", treePrefix(i, len(routes)), r.Method, r.Path)
		}
	}

	if len(comps) > 0 {
		fmt.Fprintf(w, "\n")
		if healthy == len(comps) {
			fmt.Fprintf(w, "✅ All components healthy (%d/%d)\n\n", healthy, len(comps))
		} else {
			fmt.Fprintf(w, "⚠️  Some components need attention (%d/%d healthy)\n\n", healthy, len(comps))
		}
	}
}

func treePrefix(i, total int) string {
	if i == total-1 {
		return "└──"
	}
	return "├──"
}

func healthIcon(s component.HealthStatus) string {
	switch s {
	case component.StatusHealthy:
		return "✅"
	case component.StatusDegraded:
		return "⚠️"
	case component.StatusUnhealthy:
		return "❌"
	default:
		return "⏳"
	}
}
