package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sells-group/state-scatter/internal/scene"
)

func TestLoadDefaults(t *testing.T) {
	// Change to temp dir so no config.yaml is found
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "data/data.csv", cfg.Dataset.Path)
	assert.Equal(t, ",", cfg.Dataset.Delimiter)
	assert.Equal(t, "utf-8", cfg.Dataset.Encoding)
	assert.Equal(t, 30, cfg.Dataset.TimeoutSecs)
	assert.Equal(t, 800.0, cfg.Chart.Width)
	assert.Equal(t, 700.0, cfg.Chart.Height)
	assert.Equal(t, 100.0, cfg.Chart.Margin.Left)
	assert.Equal(t, 20.0, cfg.Chart.Margin.Right)
	assert.Equal(t, 50.0, cfg.Chart.Margin.Top)
	assert.Equal(t, 150.0, cfg.Chart.Margin.Bottom)
	assert.Equal(t, 30.0, cfg.Chart.MarkerRadius)
	assert.Equal(t, 6.0, cfg.Chart.LabelDY)
	assert.Equal(t, 1000, cfg.Chart.TransitionMS)
	assert.Equal(t, 10, cfg.Chart.TickCount)
	assert.Equal(t, scene.DefaultTitle, cfg.Chart.Title)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, []string{"*"}, cfg.Server.CORSOrigins)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)

	assert.Equal(t, scene.DefaultLayout(), cfg.Chart.Layout())
}

func TestLoadFromYAML(t *testing.T) {
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })

	yaml := `
dataset:
  path: https://example.com/states.csv
  delimiter: ";"
log:
  level: debug
  format: console
server:
  port: 9090
chart:
  transition_ms: 250
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://example.com/states.csv", cfg.Dataset.Path)
	assert.Equal(t, ";", cfg.Dataset.Delimiter)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 250*time.Millisecond, cfg.Chart.Layout().Duration)
	// Defaults still apply for unset values
	assert.Equal(t, 800.0, cfg.Chart.Width)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })

	yaml := `
dataset:
  path: local.csv
log:
  level: debug
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	t.Setenv("STATESCATTER_DATASET_PATH", "ftp://example.com/data.csv")
	t.Setenv("STATESCATTER_LOG_LEVEL", "warn")

	cfg, err := Load()
	require.NoError(t, err)

	// Env overrides file
	assert.Equal(t, "ftp://example.com/data.csv", cfg.Dataset.Path)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadEnvOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })

	t.Setenv("STATESCATTER_SERVER_PORT", "3000")
	t.Setenv("STATESCATTER_CHART_MARGIN_LEFT", "60")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, 60.0, cfg.Chart.Margin.Left)
}

func TestLoadBadYAML(t *testing.T) {
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })

	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("chart: [unclosed"), 0644))

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config: read file")
}

func TestLoadOptions(t *testing.T) {
	d := DatasetConfig{Path: "data/data.csv", Format: "CSV", Delimiter: ";", Encoding: "windows-1252", TimeoutSecs: 5, UserAgent: "ua"}

	opts, err := d.LoadOptions("")
	require.NoError(t, err)
	assert.Equal(t, "data/data.csv", opts.Location)
	assert.Equal(t, "csv", opts.Format)
	assert.Equal(t, ';', opts.Delimiter)
	assert.Equal(t, "windows-1252", opts.Encoding)
	assert.Equal(t, 5*time.Second, opts.Timeout)
	assert.Equal(t, "ua", opts.Fetch.UserAgent)

	opts, err = d.LoadOptions("other.xlsx")
	require.NoError(t, err)
	assert.Equal(t, "other.xlsx", opts.Location)

	d.Delimiter = ""
	opts, err = d.LoadOptions("")
	require.NoError(t, err)
	assert.Equal(t, ',', opts.Delimiter)

	d.Delimiter = "::"
	_, err = d.LoadOptions("")
	assert.Error(t, err)
}

func TestInitLoggerConsole(t *testing.T) {
	err := InitLogger(LogConfig{Level: "debug", Format: "console"})
	require.NoError(t, err)
	assert.NotNil(t, zap.L())
}

func TestInitLoggerJSON(t *testing.T) {
	err := InitLogger(LogConfig{Level: "info", Format: "json"})
	require.NoError(t, err)
	assert.NotNil(t, zap.L())
}

func TestInitLoggerInvalidLevel(t *testing.T) {
	err := InitLogger(LogConfig{Level: "invalid", Format: "json"})
	assert.Error(t, err)
}

// validDefaults returns a Config with all defaults populated for validation tests.
func validDefaults() *Config {
	cfg := &Config{}
	cfg.Dataset.Path = "data/data.csv"
	cfg.Dataset.Delimiter = ","
	cfg.Chart.Width = 800
	cfg.Chart.Height = 700
	cfg.Chart.Margin = MarginConfig{Left: 100, Right: 20, Top: 50, Bottom: 150}
	cfg.Chart.MarkerRadius = 30
	cfg.Chart.TransitionMS = 1000
	cfg.Chart.TickCount = 10
	cfg.Server.Port = 8080
	return cfg
}

func TestValidateServe_ValidPort(t *testing.T) {
	cfg := validDefaults()
	cfg.Server.Port = 9090

	assert.NoError(t, cfg.Validate("serve"))
}

func TestValidateServe_InvalidPort(t *testing.T) {
	cfg := validDefaults()
	cfg.Server.Port = 0

	err := cfg.Validate("serve")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "server.port must be between 1 and 65535")

	// Render mode does not need a port.
	assert.NoError(t, cfg.Validate("render"))
}

func TestValidateUnknownMode(t *testing.T) {
	cfg := validDefaults()
	err := cfg.Validate("unknown")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown mode")
}

func TestValidateDataset(t *testing.T) {
	cfg := validDefaults()
	cfg.Dataset.Path = ""
	cfg.Dataset.Format = "json"
	cfg.Dataset.Delimiter = "||"

	err := cfg.Validate("render")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "dataset.path is required")
	assert.Contains(t, err.Error(), "dataset.format must be csv or xlsx")
	assert.Contains(t, err.Error(), "dataset.delimiter must be a single character")
}

func TestValidateChart(t *testing.T) {
	cfg := validDefaults()
	cfg.Chart.Width = 0
	cfg.Chart.Margin.Top = -1
	cfg.Chart.TransitionMS = -5
	cfg.Chart.TickCount = 0
	cfg.Chart.MarkerRadius = -1

	err := cfg.Validate("render")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "chart.width and chart.height must be > 0")
	assert.Contains(t, err.Error(), "chart.margin values must be >= 0")
	assert.Contains(t, err.Error(), "chart.transition_ms must be >= 0")
	assert.Contains(t, err.Error(), "chart.tick_count must be > 0")
	assert.Contains(t, err.Error(), "chart.marker_radius must be >= 0")
}
