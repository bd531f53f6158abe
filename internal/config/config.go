// Package config loads optional TOML overrides for the pipeline settings.
package config

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/phonlab/cleantalking/internal/processor"
)

// Config holds the tunable pipeline settings. The defaults are the values
// existing reports were produced with; override them only when a corpus
// uses different annotation conventions.
type Config struct {
	Tier           string  `toml:"tier"`
	SilencePattern string  `toml:"silence_pattern"`
	ShortPauseMax  float64 `toml:"short_pause_max"`
	PitchFloor     float64 `toml:"pitch_floor"`
	SaveCleaned    bool    `toml:"save_cleaned"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Tier:           processor.DefaultTierName,
		SilencePattern: processor.DefaultSilencePattern,
		ShortPauseMax:  processor.DefaultShortPauseMax,
		PitchFloor:     processor.DefaultPitchFloor,
	}
}

// Load reads a TOML config file over the defaults. An empty path returns
// the defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return cfg, fmt.Errorf("failed to load config %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return cfg, fmt.Errorf("unknown config key %q in %s", undecoded[0].String(), path)
	}

	if cfg.ShortPauseMax < 0 {
		return cfg, fmt.Errorf("short_pause_max must not be negative (got %g)", cfg.ShortPauseMax)
	}
	if cfg.PitchFloor <= 0 {
		return cfg, fmt.Errorf("pitch_floor must be positive (got %g)", cfg.PitchFloor)
	}

	return cfg, nil
}
