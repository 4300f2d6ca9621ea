package loader

import (
	"errors"
	"io/fs"
	"os"
	"testing"
	"time"
)

// memFS is an in-memory FileSystem for tests.
type memFS struct {
	files map[string][]byte
}

func (m memFS) ReadFile(path string) ([]byte, error) {
	data, ok := m.files[path]
	if !ok {
		return nil, os.ErrNotExist
	}
	return data, nil
}

func (m memFS) Stat(path string) (fs.FileInfo, error) {
	if _, ok := m.files[path]; !ok {
		return nil, os.ErrNotExist
	}
	return memInfo{name: path}, nil
}

type memInfo struct{ name string }

func (i memInfo) Name() string       { return i.name }
func (i memInfo) Size() int64        { return 0 }
func (i memInfo) Mode() fs.FileMode  { return 0o644 }
func (i memInfo) ModTime() time.Time { return time.Time{} }
func (i memInfo) IsDir() bool        { return false }
func (i memInfo) Sys() any           { return nil }

func TestJSONLoader_LoadFrom(t *testing.T) {
	fsys := memFS{files: map[string][]byte{
		"cfg.json": []byte(`{
			"prettier_path": "/opt/prettier",
			"// prettier_path": "comment",
			"prettier_options": {"semi": false, "// semi": "comment"}
		}`),
	}}

	l := NewJSONLoader(fsys)
	got, err := l.LoadFrom("cfg.json")
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}

	if got["prettier_path"] != "/opt/prettier" {
		t.Errorf("unexpected prettier_path: %v", got["prettier_path"])
	}
	if _, ok := got["// prettier_path"]; ok {
		t.Error("expected comment key to be stripped")
	}

	opts := got["prettier_options"].(map[string]any)
	if opts["semi"] != false {
		t.Errorf("unexpected semi: %v", opts["semi"])
	}
	if _, ok := opts["// semi"]; ok {
		t.Error("expected nested comment key to be stripped")
	}
}

func TestJSONLoader_Missing(t *testing.T) {
	l := NewJSONLoader(memFS{files: map[string][]byte{}})

	got, err := l.LoadFrom("absent.json")
	if err != nil {
		t.Fatalf("expected missing file to be nil, nil; got err %v", err)
	}
	if got != nil {
		t.Errorf("expected nil map, got %v", got)
	}
}

func TestJSONLoader_Malformed(t *testing.T) {
	fsys := memFS{files: map[string][]byte{
		"bad.json": []byte(`{"prettier_path": `),
	}}

	l := NewJSONLoader(fsys)
	_, err := l.LoadFrom("bad.json")

	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected *ParseError, got %v", err)
	}
	if parseErr.Path != "bad.json" {
		t.Errorf("expected path in error, got %q", parseErr.Path)
	}
}

func TestJSONLoader_NotObject(t *testing.T) {
	fsys := memFS{files: map[string][]byte{
		"arr.json": []byte(`[1,2,3]`),
	}}

	l := NewJSONLoader(fsys)
	_, err := l.LoadFrom("arr.json")
	if !errors.Is(err, ErrNotObject) {
		t.Errorf("expected ErrNotObject, got %v", err)
	}
}
