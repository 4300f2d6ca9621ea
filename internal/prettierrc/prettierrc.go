// Package prettierrc discovers Prettier's own configuration files, the
// way the formatter itself would, for diagnostic reporting. Parsed
// options are informational only; they are never translated into
// command-line flags.
package prettierrc

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"
)

// Format identifies how a discovered configuration file is encoded.
type Format uint8

const (
	// FormatJSON covers .prettierrc.json and JSON-bodied .prettierrc.
	FormatJSON Format = iota
	// FormatYAML covers .prettierrc.yaml/.yml and YAML-bodied .prettierrc.
	FormatYAML
	// FormatTOML covers .prettierrc.toml.
	FormatTOML
	// FormatJS covers prettier.config.js and friends; detected by
	// presence only, never parsed.
	FormatJS
	// FormatPackageJSON is the "prettier" key inside package.json.
	FormatPackageJSON
)

// String returns a human-readable format name.
func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	case FormatTOML:
		return "toml"
	case FormatJS:
		return "js"
	case FormatPackageJSON:
		return "package.json"
	default:
		return "unknown"
	}
}

// Discovery describes the native configuration file that Prettier's own
// lookup would use for files in the searched directory.
type Discovery struct {
	// Path is the file that won the search.
	Path string

	// Format is the file's encoding.
	Format Format

	// Options holds the parsed option map. Nil for JS configs, which
	// are located but never evaluated.
	Options map[string]any
}

// candidate is one file name checked per directory, in Prettier's
// lookup order.
type candidate struct {
	name   string
	format Format
}

var candidates = []candidate{
	{"package.json", FormatPackageJSON},
	{".prettierrc", FormatJSON}, // JSON or YAML body, sniffed below
	{".prettierrc.json", FormatJSON},
	{".prettierrc.yaml", FormatYAML},
	{".prettierrc.yml", FormatYAML},
	{".prettierrc.toml", FormatTOML},
	{".prettierrc.js", FormatJS},
	{".prettierrc.cjs", FormatJS},
	{".prettierrc.mjs", FormatJS},
	{"prettier.config.js", FormatJS},
	{"prettier.config.cjs", FormatJS},
	{"prettier.config.mjs", FormatJS},
}

// Discover walks from dir up to the filesystem root and returns the
// first native Prettier configuration found, or nil when there is none.
func Discover(dir string) (*Discovery, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", dir, err)
	}

	for {
		if d, err := discoverIn(dir); err != nil || d != nil {
			return d, err
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return nil, nil
		}
		dir = parent
	}
}

// discoverIn checks a single directory for every candidate file.
func discoverIn(dir string) (*Discovery, error) {
	for _, c := range candidates {
		path := filepath.Join(dir, c.name)
		info, err := os.Stat(path)
		if err != nil || info.IsDir() {
			continue
		}

		d, err := load(path, c.format)
		if err != nil {
			return nil, err
		}
		if d != nil {
			return d, nil
		}
	}
	return nil, nil
}

// load reads and parses one candidate file. A package.json without a
// "prettier" key yields nil so the search continues.
func load(path string, format Format) (*Discovery, error) {
	if format == FormatJS {
		return &Discovery{Path: path, Format: FormatJS}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	switch format {
	case FormatPackageJSON:
		key := gjson.GetBytes(data, "prettier")
		if !key.Exists() || !key.IsObject() {
			return nil, nil
		}
		opts, ok := key.Value().(map[string]any)
		if !ok {
			return nil, nil
		}
		return &Discovery{Path: path, Format: FormatPackageJSON, Options: opts}, nil

	case FormatJSON:
		// A bare .prettierrc may hold YAML; try JSON first.
		if gjson.ValidBytes(data) {
			parsed := gjson.ParseBytes(data)
			if opts, ok := parsed.Value().(map[string]any); ok {
				return &Discovery{Path: path, Format: FormatJSON, Options: opts}, nil
			}
		}
		opts, err := parseYAML(data)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
		return &Discovery{Path: path, Format: FormatYAML, Options: opts}, nil

	case FormatYAML:
		opts, err := parseYAML(data)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
		return &Discovery{Path: path, Format: FormatYAML, Options: opts}, nil

	case FormatTOML:
		opts := map[string]any{}
		if err := toml.Unmarshal(data, &opts); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
		return &Discovery{Path: path, Format: FormatTOML, Options: opts}, nil

	default:
		return nil, fmt.Errorf("unhandled format %v for %s", format, path)
	}
}

// parseYAML decodes a YAML option map.
func parseYAML(data []byte) (map[string]any, error) {
	opts := map[string]any{}
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return nil, err
	}
	return opts, nil
}
