package config

import (
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/sells-group/state-scatter/internal/dataset"
	"github.com/sells-group/state-scatter/internal/fetcher"
	"github.com/sells-group/state-scatter/internal/scene"
)

// Config holds the full application configuration.
type Config struct {
	Dataset DatasetConfig `yaml:"dataset" mapstructure:"dataset"`
	Chart   ChartConfig   `yaml:"chart" mapstructure:"chart"`
	Server  ServerConfig  `yaml:"server" mapstructure:"server"`
	Log     LogConfig     `yaml:"log" mapstructure:"log"`
}

// DatasetConfig locates and decodes the indicator table.
type DatasetConfig struct {
	Path        string `yaml:"path" mapstructure:"path"`
	Format      string `yaml:"format" mapstructure:"format"`
	Delimiter   string `yaml:"delimiter" mapstructure:"delimiter"`
	Encoding    string `yaml:"encoding" mapstructure:"encoding"`
	Sheet       string `yaml:"sheet" mapstructure:"sheet"`
	TimeoutSecs int    `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	UserAgent   string `yaml:"user_agent" mapstructure:"user_agent"`
}

// MarginConfig is the space around the plot area.
type MarginConfig struct {
	Left   float64 `yaml:"left" mapstructure:"left"`
	Right  float64 `yaml:"right" mapstructure:"right"`
	Top    float64 `yaml:"top" mapstructure:"top"`
	Bottom float64 `yaml:"bottom" mapstructure:"bottom"`
}

// ChartConfig sets plot geometry and transition timing.
type ChartConfig struct {
	Width        float64      `yaml:"width" mapstructure:"width"`
	Height       float64      `yaml:"height" mapstructure:"height"`
	Margin       MarginConfig `yaml:"margin" mapstructure:"margin"`
	MarkerRadius float64      `yaml:"marker_radius" mapstructure:"marker_radius"`
	LabelDY      float64      `yaml:"label_dy" mapstructure:"label_dy"`
	TransitionMS int          `yaml:"transition_ms" mapstructure:"transition_ms"`
	TickCount    int          `yaml:"tick_count" mapstructure:"tick_count"`
	Title        string       `yaml:"title" mapstructure:"title"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Port        int      `yaml:"port" mapstructure:"port"`
	CORSOrigins []string `yaml:"cors_origins" mapstructure:"cors_origins"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("STATESCATTER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("dataset.path", "data/data.csv")
	v.SetDefault("dataset.format", "")
	v.SetDefault("dataset.delimiter", ",")
	v.SetDefault("dataset.encoding", "utf-8")
	v.SetDefault("dataset.sheet", "")
	v.SetDefault("dataset.timeout_secs", 30)
	v.SetDefault("dataset.user_agent", "state-scatter/1.0")
	v.SetDefault("chart.width", 800)
	v.SetDefault("chart.height", 700)
	v.SetDefault("chart.margin.left", 100)
	v.SetDefault("chart.margin.right", 20)
	v.SetDefault("chart.margin.top", 50)
	v.SetDefault("chart.margin.bottom", 150)
	v.SetDefault("chart.marker_radius", 30)
	v.SetDefault("chart.label_dy", 6)
	v.SetDefault("chart.transition_ms", 1000)
	v.SetDefault("chart.tick_count", 10)
	v.SetDefault("chart.title", scene.DefaultTitle)
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.cors_origins", []string{"*"})
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Layout converts the chart settings into a scene layout.
func (c ChartConfig) Layout() scene.Layout {
	return scene.Layout{
		Width:  c.Width,
		Height: c.Height,
		Margin: scene.Margin{
			Left:   c.Margin.Left,
			Right:  c.Margin.Right,
			Top:    c.Margin.Top,
			Bottom: c.Margin.Bottom,
		},
		Radius:    c.MarkerRadius,
		LabelDY:   c.LabelDY,
		Duration:  time.Duration(c.TransitionMS) * time.Millisecond,
		TickCount: c.TickCount,
		Title:     c.Title,
	}
}

// LoadOptions converts the dataset settings into loader options. An
// explicit location overrides the configured path.
func (d DatasetConfig) LoadOptions(location string) (dataset.Options, error) {
	if location == "" {
		location = d.Path
	}
	delim := ','
	if d.Delimiter != "" {
		r := []rune(d.Delimiter)
		if len(r) != 1 {
			return dataset.Options{}, eris.Errorf("config: delimiter must be one character, got %q", d.Delimiter)
		}
		delim = r[0]
	}
	timeout := time.Duration(d.TimeoutSecs) * time.Second
	return dataset.Options{
		Location:  location,
		Format:    strings.ToLower(d.Format),
		Delimiter: delim,
		Encoding:  d.Encoding,
		Sheet:     d.Sheet,
		Timeout:   timeout,
		Fetch: fetcher.Options{
			UserAgent: d.UserAgent,
			Timeout:   timeout,
		},
	}, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
