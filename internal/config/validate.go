package config

import (
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
)

// Validate checks the settings a command needs. Mode is "serve" for the
// HTTP server or "render" for the offline snapshot commands.
func (c *Config) Validate(mode string) error {
	var problems []string

	switch mode {
	case "serve":
		if c.Server.Port <= 0 || c.Server.Port > 65535 {
			problems = append(problems, fmt.Sprintf("server.port must be between 1 and 65535, got %d", c.Server.Port))
		}
	case "render":
	default:
		return eris.Errorf("config: unknown mode %q", mode)
	}

	if c.Dataset.Path == "" {
		problems = append(problems, "dataset.path is required")
	}
	if n := len([]rune(c.Dataset.Delimiter)); n > 1 {
		problems = append(problems, "dataset.delimiter must be a single character")
	}
	switch strings.ToLower(c.Dataset.Format) {
	case "", "csv", "xlsx":
	default:
		problems = append(problems, fmt.Sprintf("dataset.format must be csv or xlsx, got %q", c.Dataset.Format))
	}

	ch := c.Chart
	if ch.Width <= 0 || ch.Height <= 0 {
		problems = append(problems, "chart.width and chart.height must be > 0")
	}
	if ch.Margin.Left < 0 || ch.Margin.Right < 0 || ch.Margin.Top < 0 || ch.Margin.Bottom < 0 {
		problems = append(problems, "chart.margin values must be >= 0")
	}
	if ch.MarkerRadius < 0 {
		problems = append(problems, "chart.marker_radius must be >= 0")
	}
	if ch.TransitionMS < 0 {
		problems = append(problems, "chart.transition_ms must be >= 0")
	}
	if ch.TickCount <= 0 {
		problems = append(problems, "chart.tick_count must be > 0")
	}

	if len(problems) > 0 {
		return eris.Errorf("config: %s", strings.Join(problems, "; "))
	}
	return nil
}
