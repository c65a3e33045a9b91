package spatial

import (
	"fmt"
	"runtime"
)

// Config controls searcher construction through the factory functions.
// Start with [DefaultConfig] and override the fields you need.
type Config struct {
	// Algorithm selects the concrete searcher. It has no default: an unset
	// or unknown value is reported to Reporter as a fatal error.
	Algorithm Algorithm

	// LeafSize is the maximum number of points in a KD-tree leaf.
	// Only used by AlgorithmKDTree. Default: 16.
	LeafSize int

	// Workers is the goroutine count for the *Parallel batch helpers.
	// 0 means runtime.NumCPU().
	Workers int

	// Logger receives debug records about algorithm resolution.
	// Default: NoopLogger().
	Logger *Logger

	// Reporter handles fatal configuration errors.
	// Default: PanicReporter using Logger.
	Reporter ErrorReporter
}

// DefaultConfig returns a Config selecting the recommended algorithm.
func DefaultConfig() Config {
	return Config{
		Algorithm: AlgorithmRecommended,
		LeafSize:  DefaultLeafSize,
	}
}

// applyDefaults fills in zero-valued fields other than Algorithm.
func applyDefaults(cfg *Config) {
	if cfg.LeafSize == 0 {
		cfg.LeafSize = DefaultLeafSize
	}
	if cfg.Workers == 0 {
		cfg.Workers = runtime.NumCPU()
	}
	if cfg.Logger == nil {
		cfg.Logger = NoopLogger()
	}
	if cfg.Reporter == nil {
		cfg.Reporter = PanicReporter{Logger: cfg.Logger}
	}
}

// validateConfig checks the fields that do not depend on the capability.
func validateConfig(cfg *Config) error {
	if cfg.LeafSize < 1 {
		return fmt.Errorf("spatial: LeafSize must be >= 1, got %d", cfg.LeafSize)
	}
	if cfg.Workers < 1 {
		return fmt.Errorf("spatial: Workers must be >= 1, got %d", cfg.Workers)
	}
	return nil
}
