package driver

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Mode selects what Execute does with a compiled program.
type Mode string

const (
	ModeInterpret Mode = "interpret"
	ModeRender    Mode = "render"
	ModeAST       Mode = "ast"
)

// IsValid reports whether the mode is recognised.
func (m Mode) IsValid() bool {
	switch m {
	case ModeInterpret, ModeRender, ModeAST:
		return true
	default:
		return false
	}
}

// ColorMode controls ANSI colouring of diagnostics.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// IsValid reports whether the color mode is recognised.
func (c ColorMode) IsValid() bool {
	switch c {
	case ColorAuto, ColorAlways, ColorNever:
		return true
	default:
		return false
	}
}

// DefaultCacheSize is the number of parsed programs a Driver keeps when the
// configuration does not say otherwise.
const DefaultCacheSize = 64

// Config represents the parsed contents of manipula.yml.
type Config struct {
	Path        string
	Mode        Mode
	Render      RenderConfig
	Diagnostics DiagnosticsConfig
	Cache       CacheConfig
}

// RenderConfig controls the Python back end.
type RenderConfig struct {
	Indent string
}

// DiagnosticsConfig controls error reporting.
type DiagnosticsConfig struct {
	Color ColorMode
}

// CacheConfig controls the parse cache. Size 0 disables it.
type CacheConfig struct {
	Size int
}

// ConfigError aggregates configuration validation failures.
type ConfigError struct {
	Issues []string
}

func (e *ConfigError) Error() string {
	if len(e.Issues) == 0 {
		return "config: invalid configuration"
	}
	var b strings.Builder
	b.WriteString("config validation failed:")
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Mode:        ModeInterpret,
		Render:      RenderConfig{Indent: "    "},
		Diagnostics: DiagnosticsConfig{Color: ColorAuto},
		Cache:       CacheConfig{Size: DefaultCacheSize},
	}
}

// LoadConfig parses manipula.yml from disk, returning a validated config.
// Keys left out of the file keep their DefaultConfig values.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config: empty path")
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("config: resolve %s: %w", path, err)
	}
	file, err := os.Open(absPath)
	if err != nil {
		return nil, fmt.Errorf("config: open %s: %w", absPath, err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)

	var raw configFile
	if err := decoder.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("config: %s is empty", absPath)
		}
		return nil, fmt.Errorf("config: parse %s: %w", absPath, err)
	}

	cfg := raw.toConfig(absPath)
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	var errs ConfigError
	if !c.Mode.IsValid() {
		errs.Issues = append(errs.Issues, fmt.Sprintf("mode %q must be one of interpret, render, ast", c.Mode))
	}
	if !c.Diagnostics.Color.IsValid() {
		errs.Issues = append(errs.Issues, fmt.Sprintf("diagnostics.color %q must be one of auto, always, never", c.Diagnostics.Color))
	}
	if strings.Trim(c.Render.Indent, " \t") != "" {
		errs.Issues = append(errs.Issues, "render.indent may only contain spaces and tabs")
	}
	if c.Cache.Size < 0 {
		errs.Issues = append(errs.Issues, fmt.Sprintf("cache.size must not be negative, got %d", c.Cache.Size))
	}
	if len(errs.Issues) > 0 {
		return &errs
	}
	return nil
}

type configFile struct {
	Mode        string           `yaml:"mode"`
	Render      *renderYAML      `yaml:"render"`
	Diagnostics *diagnosticsYAML `yaml:"diagnostics"`
	Cache       *cacheYAML       `yaml:"cache"`
}

type renderYAML struct {
	Indent *string `yaml:"indent"`
}

type diagnosticsYAML struct {
	Color string `yaml:"color"`
}

type cacheYAML struct {
	Size *int `yaml:"size"`
}

func (cf configFile) toConfig(path string) *Config {
	cfg := DefaultConfig()
	cfg.Path = path
	if mode := strings.TrimSpace(cf.Mode); mode != "" {
		cfg.Mode = Mode(strings.ToLower(mode))
	}
	if cf.Render != nil && cf.Render.Indent != nil && *cf.Render.Indent != "" {
		cfg.Render.Indent = *cf.Render.Indent
	}
	if cf.Diagnostics != nil {
		if color := strings.TrimSpace(cf.Diagnostics.Color); color != "" {
			cfg.Diagnostics.Color = ColorMode(strings.ToLower(color))
		}
	}
	if cf.Cache != nil && cf.Cache.Size != nil {
		cfg.Cache.Size = *cf.Cache.Size
	}
	return cfg
}
