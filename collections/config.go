package collections

import (
	"sync"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
)

// Config holds package-wide runtime settings.
type Config struct {
	// Logger receives Dump output and registry events.
	// Defaults to a disabled logger.
	Logger zerolog.Logger

	// Clock drives time-based lazy stages (TakeUntilTimeout, Throttle).
	// Defaults to the real wall clock.
	Clock clockwork.Clock
}

// DefaultConfig returns a [Config] populated with defaults.
func DefaultConfig() Config {
	return Config{
		Logger: zerolog.Nop(),
		Clock:  clockwork.NewRealClock(),
	}
}

var settings = struct {
	mu  sync.RWMutex
	cfg Config
}{cfg: DefaultConfig()}

// Configure replaces the package configuration. A nil Clock falls back to
// the real clock. Safe to call from multiple goroutines.
func Configure(cfg Config) {
	if cfg.Clock == nil {
		cfg.Clock = clockwork.NewRealClock()
	}
	settings.mu.Lock()
	defer settings.mu.Unlock()
	settings.cfg = cfg
}

func config() Config {
	settings.mu.RLock()
	defer settings.mu.RUnlock()
	return settings.cfg
}

func logger() *zerolog.Logger {
	l := config().Logger
	return &l
}
