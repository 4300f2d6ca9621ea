package loader

import (
	"errors"
	"fmt"
	"os"

	"github.com/tidwall/gjson"

	"github.com/dshills/prettierfmt/internal/config/layer"
)

// ErrNotObject indicates the file's top-level JSON value is not an object.
var ErrNotObject = errors.New("top-level value is not a JSON object")

// ParseError describes a configuration file that failed to parse.
type ParseError struct {
	// Path is the file that failed to parse.
	Path string
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// JSONLoader loads JSON configuration files.
// Keys beginning with "//" are treated as inline documentation and removed.
type JSONLoader struct {
	fs FileSystem
}

// NewJSONLoader creates a JSON loader backed by the given file system.
// A nil fs uses the OS file system.
func NewJSONLoader(fsys FileSystem) *JSONLoader {
	if fsys == nil {
		fsys = DefaultFS()
	}
	return &JSONLoader{fs: fsys}
}

// LoadFrom reads and parses the JSON file at path.
// A missing file returns nil, nil; malformed JSON returns a *ParseError.
func (l *JSONLoader) LoadFrom(path string) (map[string]any, error) {
	data, err := l.fs.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	return l.Parse(path, data)
}

// Parse parses raw JSON configuration bytes.
func (l *JSONLoader) Parse(path string, data []byte) (map[string]any, error) {
	if !gjson.ValidBytes(data) {
		return nil, &ParseError{Path: path, Err: errors.New("invalid JSON")}
	}

	value, ok := gjson.ParseBytes(data).Value().(map[string]any)
	if !ok {
		return nil, &ParseError{Path: path, Err: ErrNotObject}
	}

	return layer.StripComments(value), nil
}
