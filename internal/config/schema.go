package config

import "time"

// Config is the top-level YAML structure.
type Config struct {
	// Speed is the autoplay period, e.g. "300ms".
	Speed time.Duration `yaml:"speed"`

	LogLevel    string `yaml:"log_level"`
	MetricsAddr string `yaml:"metrics_addr"`

	// Algorithms holds default generator parameters keyed by catalog name.
	Algorithms map[string]map[string]any `yaml:"algorithms"`
}

// Defaults applied by Load for zero fields.
const (
	DefaultSpeed    = 500 * time.Millisecond
	DefaultLogLevel = "info"
)

// Default returns a Config with every default applied.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()

	return cfg
}

func (c *Config) applyDefaults() {
	if c.Speed == 0 {
		c.Speed = DefaultSpeed
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	if c.Algorithms == nil {
		c.Algorithms = map[string]map[string]any{}
	}
}

// Params returns the configured parameters for algorithm, or nil.
func (c *Config) Params(algorithm string) map[string]any {
	if c == nil {
		return nil
	}

	return c.Algorithms[algorithm]
}
