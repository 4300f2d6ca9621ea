// Package config provides the plugin's two-tier configuration.
//
// Settings come from a global plugin file and a project-local override
// file. Both are JSON; keys beginning with "//" carry inline
// documentation and are ignored. Local values override global values key
// by key, and prettier_options maps merge rather than replace.
//
// Configuration is reloaded from disk on every formatting invocation.
// There is no cached singleton, so editing either file takes effect on
// the next format without a restart.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dshills/prettierfmt/internal/config/layer"
	"github.com/dshills/prettierfmt/internal/config/loader"
)

// File names for the two configuration tiers.
const (
	// GlobalFileName is the plugin-wide configuration file, found in the
	// host's settings directory.
	GlobalFileName = "prettierfmt.json"

	// LocalFileName is the project-local override file, found in the
	// project root.
	LocalFileName = ".prettierfmt.json"
)

// Config holds the effective plugin settings for one invocation.
type Config struct {
	// PrettierPath overrides executable auto-detection when non-empty.
	PrettierPath string

	// TimeoutSeconds bounds the formatter subprocess.
	TimeoutSeconds float64

	// UsePrettierConfigFile defers option discovery to Prettier's own
	// config files when true. When false, PrettierOptions are passed on
	// the command line.
	UsePrettierConfigFile bool

	// PrettierOptions maps prettier option names to values.
	PrettierOptions map[string]any
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		TimeoutSeconds:        DefaultTimeoutSeconds,
		UsePrettierConfigFile: true,
		PrettierOptions:       DefaultOptions(),
	}
}

// Timeout returns the subprocess timeout as a duration.
func (c Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds * float64(time.Second))
}

// Source describes where configuration is read from.
// Load reads both tiers fresh on every call.
type Source struct {
	// GlobalPath is the full path of the global plugin file.
	GlobalPath string

	// ProjectDir is the project root searched for LocalFileName.
	// Empty disables the local tier.
	ProjectDir string

	// FS is the file system to read from. Nil uses the OS.
	FS loader.FileSystem
}

// Load reads and merges both configuration tiers.
//
// Parse failures are non-fatal: the affected tier is skipped and the
// failure is returned in problems, with built-in defaults (and any tier
// that did parse) still taking effect.
func (s Source) Load() (Config, []error) {
	jl := loader.NewJSONLoader(s.FS)

	var problems []error
	tiers := []map[string]any{defaultsMap()}

	if s.GlobalPath != "" {
		global, err := jl.LoadFrom(s.GlobalPath)
		if err != nil {
			problems = append(problems, err)
		} else if global != nil {
			tiers = append(tiers, global)
		}
	}

	if s.ProjectDir != "" {
		localPath := filepath.Join(s.ProjectDir, LocalFileName)
		local, err := jl.LoadFrom(localPath)
		if err != nil {
			problems = append(problems, err)
		} else if local != nil {
			tiers = append(tiers, local)
		}
	}

	cfg, errs := fromMap(layer.Merge(tiers...))
	problems = append(problems, errs...)
	return cfg, problems
}

// defaultsMap returns the built-in configuration as a mergeable map.
func defaultsMap() map[string]any {
	return map[string]any{
		"prettier_path":            "",
		"timeout_seconds":          float64(DefaultTimeoutSeconds),
		"use_prettier_config_file": true,
		"prettier_options":         DefaultOptions(),
	}
}

// fromMap converts a merged configuration map into a typed Config.
// Values of the wrong type fall back to defaults and are reported.
func fromMap(m map[string]any) (Config, []error) {
	cfg := Default()
	var problems []error

	if v, ok := m["prettier_path"]; ok {
		if s, ok := v.(string); ok {
			cfg.PrettierPath = s
		} else {
			problems = append(problems, fmt.Errorf("prettier_path: expected string, got %T", v))
		}
	}

	if v, ok := m["timeout_seconds"]; ok {
		if n, ok := v.(float64); ok && n > 0 {
			cfg.TimeoutSeconds = n
		} else {
			problems = append(problems, fmt.Errorf("timeout_seconds: invalid value %v, using default %d", v, DefaultTimeoutSeconds))
		}
	}

	if v, ok := m["use_prettier_config_file"]; ok {
		if b, ok := v.(bool); ok {
			cfg.UsePrettierConfigFile = b
		} else {
			problems = append(problems, fmt.Errorf("use_prettier_config_file: expected bool, got %T", v))
		}
	}

	if v, ok := m["prettier_options"]; ok {
		if opts, ok := v.(map[string]any); ok {
			cfg.PrettierOptions = opts
		} else {
			problems = append(problems, fmt.Errorf("prettier_options: expected object, got %T", v))
		}
	}

	return cfg, problems
}

// EnsureGlobal creates the global configuration file with commented
// defaults if it does not already exist. Returns true if it was created.
func EnsureGlobal(path string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("stat %s: %w", path, err)
	}

	doc, err := DefaultDocument()
	if err != nil {
		return false, fmt.Errorf("render default config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, fmt.Errorf("create settings dir: %w", err)
	}
	if err := os.WriteFile(path, doc, 0o644); err != nil {
		return false, fmt.Errorf("write %s: %w", path, err)
	}

	return true, nil
}
