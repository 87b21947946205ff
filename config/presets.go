package config

import (
	"fmt"
	"time"
)

// preset changes configuration in place, values it sets take precedence
// over the ones loaded from the file.
type preset func(cfg *Config)

var presets = map[string]preset{
	"development": func(cfg *Config) {
		cfg.Compiler.ErrorMode = "warn"
		cfg.Compiler.ValidateClasses = true
		if cfg.Compiler.WarnThreshold == 0 {
			cfg.Compiler.WarnThreshold = 800
		}
	},
	"production": func(cfg *Config) {
		cfg.Compiler.ErrorMode = "silent"
		cfg.Compiler.ValidateClasses = false
		cfg.Compiler.Cache.Enable = true
		cfg.Compiler.Cache.MaxSize = 2000
		cfg.Output.Minify = true
		cfg.Watch.BatchDelay = 5 * time.Millisecond
	},
	"testing": func(cfg *Config) {
		cfg.Compiler.ErrorMode = "strict"
		cfg.Compiler.ValidateClasses = true
		cfg.Compiler.Cache.Enable = false
	},
	"minimal": func(cfg *Config) {
		cfg.Compiler.ErrorMode = "silent"
		cfg.Compiler.ValidateClasses = false
		cfg.Compiler.Cache.Enable = false
		cfg.Compiler.WarnThreshold = 0
	},
}

// Presets returns names of known presets.
func Presets() []string {
	return []string{"development", "production", "testing", "minimal"}
}

func (cfg *Config) applyPreset() error {
	name := cfg.Compiler.Preset
	if len(name) == 0 {
		return nil
	}
	p, ok := presets[name]
	if !ok {
		return fmt.Errorf("unknown configuration preset %q", name)
	}
	p(cfg)
	return nil
}
