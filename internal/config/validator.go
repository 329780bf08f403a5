package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/katalvlaran/algotrace/internal/logging"
)

// MaxSpeed bounds the autoplay period.
const MaxSpeed = time.Minute

// ErrInvalidConfig marks every validation failure.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Validate checks for:
//   - a positive speed no longer than MaxSpeed
//   - a known log level
//   - non-empty algorithm names
func Validate(cfg *Config) error {
	var errs []string
	if cfg.Speed <= 0 || cfg.Speed > MaxSpeed {
		errs = append(errs, fmt.Sprintf("speed %s must be in (0, %s]", cfg.Speed, MaxSpeed))
	}
	if _, err := logging.ParseLevel(cfg.LogLevel); err != nil {
		errs = append(errs, fmt.Sprintf("log_level %q is not one of debug, info, warn, error", cfg.LogLevel))
	}
	for name := range cfg.Algorithms {
		if strings.TrimSpace(name) == "" {
			errs = append(errs, "algorithms: empty name")
		}
	}

	if len(errs) > 0 {
		return errors.Wrapf(ErrInvalidConfig, "%s", strings.Join(errs, "; "))
	}
	return nil
}
