package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	yaml "gopkg.in/yaml.v3"

	"github.com/rupor-github/gencfg"
)

//go:embed config.yaml.tmpl
var ConfigTmpl []byte

type (
	TemplateFieldName string

	CacheConfig struct {
		Enable  bool `yaml:"enable"`
		MaxSize int  `yaml:"max_size" validate:"gte=0"`
	}

	CompilerConfig struct {
		Preset          string         `yaml:"preset,omitempty" validate:"omitempty,oneof=development production testing minimal"`
		Breakpoints     map[string]int `yaml:"breakpoints,omitempty"`
		ClassPrefix     string         `yaml:"class_prefix"`
		Important       bool           `yaml:"important"`
		ErrorMode       string         `yaml:"error_mode" validate:"oneof=silent warn strict"`
		ValidateClasses bool           `yaml:"validate_classes"`
		Cache           CacheConfig    `yaml:"cache"`
		WarnThreshold   int            `yaml:"warn_threshold" validate:"gte=0"`
	}

	OutputConfig struct {
		Minify         bool   `yaml:"minify"`
		HeaderTemplate string `yaml:"header_template"`
		Encoding       string `yaml:"encoding,omitempty"`
	}

	WatchConfig struct {
		BatchDelay   time.Duration `yaml:"batch_delay" validate:"gte=0"`
		MaxBatchSize int           `yaml:"max_batch_size" validate:"gte=1"`
	}

	Config struct {
		Version   int            `yaml:"version" validate:"eq=1"`
		Compiler  CompilerConfig `yaml:"compiler"`
		Output    OutputConfig   `yaml:"output"`
		Watch     WatchConfig    `yaml:"watch"`
		Logging   LoggingConfig  `yaml:"logging"`
		Reporting ReporterConfig `yaml:"reporting"`
	}
)

const (
	// NOTE: must match yaml field name above
	HeaderTemplateFieldName TemplateFieldName = "header_template"
)

var requiredOptions = append([]func(*gencfg.ProcessingOptions){},
	gencfg.WithDoNotExpandField(string(HeaderTemplateFieldName)),
)

// breakpoint names are used in class names and cannot look like width
// qualifiers
func checkBreakpoints(bps map[string]int) error {
	validate := validator.New()
	for name, width := range bps {
		if err := validate.Var(name, "required,alphanum"); err != nil {
			return fmt.Errorf("bad breakpoint name %q: %w", name, err)
		}
		if strings.HasPrefix(name, "min") || strings.HasPrefix(name, "max") {
			return fmt.Errorf("bad breakpoint name %q: must not start with min or max", name)
		}
		if err := validate.Var(width, "gt=0,lte=100000"); err != nil {
			return fmt.Errorf("bad width for breakpoint %q: %w", name, err)
		}
	}
	return nil
}

func unmarshalConfig(data []byte, cfg *Config, process bool) (*Config, error) {
	// We want to use only fields we defined so we cannot use yaml.Unmarshal
	// directly here
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration data: %w", err)
	}
	if process {
		if err := cfg.applyPreset(); err != nil {
			return nil, err
		}
		// sanitize and validate what has been loaded
		if err := gencfg.Sanitize(cfg); err != nil {
			return nil, err
		}
		if err := gencfg.Validate(cfg); err != nil {
			return nil, err
		}
		if err := checkBreakpoints(cfg.Compiler.Breakpoints); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// LoadConfiguration reads the configuration from the file at the given path,
// superimposes its values on top of expanded configuration tamplate to provide
// sane defaults and performs validation.
func LoadConfiguration(path string, options ...func(*gencfg.ProcessingOptions)) (*Config, error) {
	haveFile := len(path) > 0

	data, err := gencfg.Process(ConfigTmpl, append(requiredOptions, options...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	cfg, err := unmarshalConfig(data, &Config{}, !haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	if !haveFile {
		return cfg, nil
	}

	// overwrite cfg values with values from the file
	data, err = os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg, err = unmarshalConfig(data, cfg, haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration file: %w", err)
	}
	return cfg, nil
}

// Prepare generates configuration file from template and returns it as a byte
// slice.
func Prepare() ([]byte, error) {
	return gencfg.Process(ConfigTmpl, requiredOptions...)
}

func Dump(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(*cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config to yaml: %v", err)
	}
	return data, nil
}
