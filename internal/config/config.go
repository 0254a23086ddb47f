package config

import (
	"fmt"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration.
type Config struct {
	Logging   LoggingConfig   `yaml:"logging" envconfig:"LOGGING"`
	Paths     PathsConfig     `yaml:"paths" envconfig:"PATHS"`
	Pipeline  PipelineConfig  `yaml:"pipeline" envconfig:"PIPELINE"`
	Generator GeneratorConfig `yaml:"generator" envconfig:"GENERATOR"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL"`
	Format   string `yaml:"format" envconfig:"FORMAT"`
	Output   string `yaml:"output" envconfig:"OUTPUT"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH"`
}

// PathsConfig contains file system paths configuration. All relative paths
// are resolved against BaseDir.
type PathsConfig struct {
	BaseDir      string `yaml:"base_dir" envconfig:"BASE_DIR"`
	RawDir       string `yaml:"raw_dir" envconfig:"RAW_DIR"`
	ProcessedDir string `yaml:"processed_dir" envconfig:"PROCESSED_DIR"`
	ReportsDir   string `yaml:"reports_dir" envconfig:"REPORTS_DIR"`
	LogsDir      string `yaml:"logs_dir" envconfig:"LOGS_DIR"`
}

// PipelineConfig carries the enrichment and aggregation knobs. It is passed
// into the core as an explicit immutable value so that runs with different
// configurations never interfere.
type PipelineConfig struct {
	// BucketBoundaries are the upper bounds of the value buckets, strictly
	// increasing. The last bucket is open-ended so every non-negative value
	// falls in exactly one bucket.
	BucketBoundaries []float64 `yaml:"bucket_boundaries" envconfig:"BUCKET_BOUNDARIES"`
	BucketLabels     []string  `yaml:"bucket_labels" envconfig:"BUCKET_LABELS"`

	// DeliveryThresholds are the upper bounds in days of the delivery
	// categories, strictly increasing; durations beyond the last threshold
	// fall in the final category.
	DeliveryThresholds []int    `yaml:"delivery_thresholds" envconfig:"DELIVERY_THRESHOLDS"`
	DeliveryLabels     []string `yaml:"delivery_labels" envconfig:"DELIVERY_LABELS"`

	// Tier cut points as percentages of the customer population, highest
	// spenders first. Must sum to 100.
	GoldPercent   float64 `yaml:"gold_percent" envconfig:"GOLD_PERCENT"`
	SilverPercent float64 `yaml:"silver_percent" envconfig:"SILVER_PERCENT"`
	BronzePercent float64 `yaml:"bronze_percent" envconfig:"BRONZE_PERCENT"`

	// CompletedOnlyRevenue excludes non-completed sales from revenue when
	// set. The reference report includes all statuses.
	CompletedOnlyRevenue bool `yaml:"completed_only_revenue" envconfig:"COMPLETED_ONLY_REVENUE"`

	// MarginRate is the simulated profit margin applied to final values.
	MarginRate float64 `yaml:"margin_rate" envconfig:"MARGIN_RATE"`

	// Workers bounds the number of goroutines used for enrichment.
	// Zero or one means sequential.
	Workers int `yaml:"workers" envconfig:"WORKERS"`
}

// GeneratorConfig configures the synthetic data source. It is handed to the
// generator collaborator; the core never consumes it.
type GeneratorConfig struct {
	RecordCount int       `yaml:"record_count" envconfig:"RECORD_COUNT"`
	Seed        int64     `yaml:"seed" envconfig:"SEED"`
	DateFrom    time.Time `yaml:"date_from" envconfig:"DATE_FROM"`
	DateTo      time.Time `yaml:"date_to" envconfig:"DATE_TO"`
}

// Load loads configuration starting from built-in defaults, then an optional
// YAML file, then environment variables, each layer overriding the previous.
func Load(configFile string) (*Config, error) {
	cfg := Default()

	if configFile != "" {
		if _, err := os.Stat(configFile); err == nil {
			if err := loadFromFile(configFile, cfg); err != nil {
				return nil, fmt.Errorf("failed to load config from file: %w", err)
			}
		}
	}

	if err := envconfig.Process("SALESPULSE", cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// loadFromFile overlays YAML file values onto cfg; keys absent from the file
// keep their current values.
func loadFromFile(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}

	return yaml.Unmarshal(data, cfg)
}

// validate checks app-level invariants. Pipeline-specific invariants are
// re-checked by the core before a run starts.
func (c *Config) validate() error {
	switch c.Logging.Output {
	case "stdout", "file", "both":
	default:
		return fmt.Errorf("invalid logging output: %q", c.Logging.Output)
	}

	if c.Logging.Format != "json" && c.Logging.Format != "text" {
		return fmt.Errorf("invalid logging format: %q", c.Logging.Format)
	}

	if c.Generator.RecordCount < 0 {
		return fmt.Errorf("generator record count must be non-negative")
	}
	if !c.Generator.DateTo.After(c.Generator.DateFrom) {
		return fmt.Errorf("generator date window is empty: %s..%s",
			c.Generator.DateFrom.Format("2006-01-02"), c.Generator.DateTo.Format("2006-01-02"))
	}

	return nil
}

// Default returns the built-in default configuration.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "json",
			Output:   "stdout",
			FilePath: "logs/salespulse.log",
		},
		Paths: PathsConfig{
			BaseDir:      "data",
			RawDir:       "raw",
			ProcessedDir: "processed",
			ReportsDir:   "reports",
			LogsDir:      "logs",
		},
		Pipeline: PipelineConfig{
			BucketBoundaries:   []float64{1000, 5000, 10000},
			BucketLabels:       []string{"Low (<1k)", "Medium (1k-5k)", "High (5k-10k)", "Premium (>10k)"},
			DeliveryThresholds: []int{7, 14, 21},
			DeliveryLabels:     []string{"Fast (1-7d)", "Normal (8-14d)", "Slow (15-21d)", "Very Slow (22d+)"},
			GoldPercent:        15,
			SilverPercent:      38,
			BronzePercent:      47,
			MarginRate:         0.30,
			Workers:            1,
		},
		Generator: GeneratorConfig{
			RecordCount: 5000,
			Seed:        42,
			DateFrom:    time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
			DateTo:      time.Date(2025, 2, 25, 0, 0, 0, 0, time.UTC),
		},
	}
}
