package compiler

import (
	"zcss/config"
)

// ErrorMode defines how compiler reports class names it could not turn into
// rules.
type ErrorMode string

const (
	// ErrorModeSilent drops problems quietly.
	ErrorModeSilent ErrorMode = "silent"
	// ErrorModeWarn logs problems.
	ErrorModeWarn ErrorMode = "warn"
	// ErrorModeStrict logs problems and returns them from batch processing.
	ErrorModeStrict ErrorMode = "strict"
)

// Options is resolved compiler configuration.
type Options struct {
	Breakpoints     Breakpoints
	ClassPrefix     string
	Important       bool
	ErrorMode       ErrorMode
	ValidateClasses bool
	CacheEnable     bool
	CacheMaxSize    int
	// WarnThreshold enables warning when number of processed class names
	// reaches it, 0 disables.
	WarnThreshold int
}

// DefaultOptions returns options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		Breakpoints:     DefaultBreakpoints(),
		ErrorMode:       ErrorModeSilent,
		ValidateClasses: true,
		CacheEnable:     true,
		CacheMaxSize:    1000,
	}
}

// OptionsFromConfig converts configuration section into compiler options.
func OptionsFromConfig(cfg *config.CompilerConfig) Options {
	opts := DefaultOptions()
	if cfg == nil {
		return opts
	}
	opts.Breakpoints = opts.Breakpoints.Merge(cfg.Breakpoints)
	opts.ClassPrefix = cfg.ClassPrefix
	opts.Important = cfg.Important
	if len(cfg.ErrorMode) > 0 {
		opts.ErrorMode = ErrorMode(cfg.ErrorMode)
	}
	opts.ValidateClasses = cfg.ValidateClasses
	opts.CacheEnable = cfg.Cache.Enable
	opts.CacheMaxSize = cfg.Cache.MaxSize
	opts.WarnThreshold = cfg.WarnThreshold
	return opts
}
