package layer

import (
	"reflect"
	"testing"
)

func TestDeepMerge_Override(t *testing.T) {
	global := map[string]any{
		"timeout_seconds": float64(10),
		"prettier_options": map[string]any{
			"singleQuote": false,
			"tabWidth":    float64(2),
		},
	}
	local := map[string]any{
		"prettier_options": map[string]any{
			"singleQuote": true,
		},
	}

	merged := Merge(global, local)

	opts, ok := merged["prettier_options"].(map[string]any)
	if !ok {
		t.Fatal("expected prettier_options map")
	}
	if opts["singleQuote"] != true {
		t.Error("expected local singleQuote to win")
	}
	if opts["tabWidth"] != float64(2) {
		t.Error("expected global tabWidth to survive the merge")
	}
	if merged["timeout_seconds"] != float64(10) {
		t.Error("expected global timeout to survive the merge")
	}
}

func TestDeepMerge_DoesNotAliasSource(t *testing.T) {
	src := map[string]any{
		"prettier_options": map[string]any{"semi": true},
	}
	merged := Merge(nil, src)

	opts := merged["prettier_options"].(map[string]any)
	opts["semi"] = false

	if src["prettier_options"].(map[string]any)["semi"] != true {
		t.Error("merge aliased the source map")
	}
}

func TestDeepMerge_TypeReplacement(t *testing.T) {
	dst := map[string]any{"prettier_path": map[string]any{"weird": true}}
	src := map[string]any{"prettier_path": "/usr/bin/prettier"}

	merged := DeepMerge(dst, src)
	if merged["prettier_path"] != "/usr/bin/prettier" {
		t.Error("expected scalar to replace map")
	}
}

func TestStripComments(t *testing.T) {
	in := map[string]any{
		"prettier_path":    "",
		"// prettier_path": "Custom path to the executable",
		"prettier_options": map[string]any{
			"semi":    true,
			"// semi": "Add semicolons",
		},
	}

	got := StripComments(in)

	want := map[string]any{
		"prettier_path": "",
		"prettier_options": map[string]any{
			"semi": true,
		},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}
