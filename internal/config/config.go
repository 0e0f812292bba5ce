// Package config loads hotspot settings from config.yaml and HOTSPOT_*
// environment variables, and builds the global logger.
package config

import (
	"errors"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Analysis AnalysisConfig `yaml:"analysis" mapstructure:"analysis"`
	Ingest   IngestConfig   `yaml:"ingest" mapstructure:"ingest"`
	Geocode  GeocodeConfig  `yaml:"geocode" mapstructure:"geocode"`
	Server   ServerConfig   `yaml:"server" mapstructure:"server"`
	Log      LogConfig      `yaml:"log" mapstructure:"log"`
}

// AnalysisConfig holds default analysis geometry in meters.
type AnalysisConfig struct {
	InnerRadiusM      float64 `yaml:"inner_radius_m" mapstructure:"inner_radius_m"`
	OuterRadiusM      float64 `yaml:"outer_radius_m" mapstructure:"outer_radius_m"`
	ComparisonRadiusM float64 `yaml:"comparison_radius_m" mapstructure:"comparison_radius_m"`
	SweepConcurrency  int     `yaml:"sweep_concurrency" mapstructure:"sweep_concurrency"`
}

// IngestConfig configures incident file parsing.
type IngestConfig struct {
	Encoding       string `yaml:"encoding" mapstructure:"encoding"`
	DefaultOffense string `yaml:"default_offense" mapstructure:"default_offense"`
	RequireDate    bool   `yaml:"require_date" mapstructure:"require_date"`
	SheetIndex     int    `yaml:"sheet_index" mapstructure:"sheet_index"`
}

// GeocodeConfig configures the Census address geocoder.
type GeocodeConfig struct {
	BaseURL     string  `yaml:"base_url" mapstructure:"base_url"`
	Benchmark   string  `yaml:"benchmark" mapstructure:"benchmark"`
	RateLimit   float64 `yaml:"rate_limit" mapstructure:"rate_limit"`
	TimeoutSecs int     `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	MaxAttempts int     `yaml:"max_attempts" mapstructure:"max_attempts"`
}

// ServerConfig configures the HTTP API server.
type ServerConfig struct {
	Port        int      `yaml:"port" mapstructure:"port"`
	CORSOrigins []string `yaml:"cors_origins" mapstructure:"cors_origins"`
	MaxBodyMB   int      `yaml:"max_body_mb" mapstructure:"max_body_mb"`
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
	v.SetEnvPrefix("HOTSPOT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("analysis.inner_radius_m", 500)
	v.SetDefault("analysis.outer_radius_m", 1500)
	v.SetDefault("analysis.comparison_radius_m", 800)
	v.SetDefault("analysis.sweep_concurrency", 4)
	v.SetDefault("ingest.encoding", "utf-8")
	v.SetDefault("ingest.default_offense", "UNKNOWN")
	v.SetDefault("ingest.require_date", true)
	v.SetDefault("ingest.sheet_index", 0)
	v.SetDefault("geocode.base_url", "https://geocoding.geo.census.gov/geocoder/locations/onelineaddress")
	v.SetDefault("geocode.benchmark", "Public_AR_Current")
	v.SetDefault("geocode.rate_limit", 10)
	v.SetDefault("geocode.timeout_secs", 30)
	v.SetDefault("geocode.max_attempts", 3)
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.cors_origins", []string{"*"})
	v.SetDefault("server.max_body_mb", 32)

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

// Validate checks the settings a command mode depends on. Modes are
// "analyze", "geocode" and "serve".
func (c *Config) Validate(mode string) error {
	var errs []error

	switch mode {
	case "analyze":
		errs = append(errs, c.validateAnalysis()...)
	case "geocode":
		errs = append(errs, c.validateGeocode()...)
	case "serve":
		errs = append(errs, c.validateAnalysis()...)
		errs = append(errs, c.validateGeocode()...)
		if c.Server.Port <= 0 || c.Server.Port > 65535 {
			errs = append(errs, eris.New("server.port must be > 0 and <= 65535"))
		}
		if c.Server.MaxBodyMB <= 0 {
			errs = append(errs, eris.New("server.max_body_mb must be > 0"))
		}
	default:
		return eris.Errorf("config: unknown mode %q", mode)
	}

	if err := errors.Join(errs...); err != nil {
		return eris.Wrapf(err, "config: invalid for %s", mode)
	}
	return nil
}

func (c *Config) validateAnalysis() []error {
	var errs []error
	a := c.Analysis
	if a.InnerRadiusM <= 0 {
		errs = append(errs, eris.New("analysis.inner_radius_m must be > 0"))
	}
	if a.OuterRadiusM <= a.InnerRadiusM {
		errs = append(errs, eris.New("analysis.outer_radius_m must be greater than analysis.inner_radius_m"))
	}
	if a.ComparisonRadiusM <= 0 {
		errs = append(errs, eris.New("analysis.comparison_radius_m must be > 0"))
	}
	if a.SweepConcurrency < 1 || a.SweepConcurrency > 64 {
		errs = append(errs, eris.New("analysis.sweep_concurrency must be between 1 and 64"))
	}
	return errs
}

func (c *Config) validateGeocode() []error {
	var errs []error
	if c.Geocode.BaseURL == "" {
		errs = append(errs, eris.New("geocode.base_url is required"))
	}
	if c.Geocode.TimeoutSecs <= 0 {
		errs = append(errs, eris.New("geocode.timeout_secs must be > 0"))
	}
	if c.Geocode.MaxAttempts < 1 {
		errs = append(errs, eris.New("geocode.max_attempts must be >= 1"))
	}
	return errs
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
