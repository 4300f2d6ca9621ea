package lang

import "testing"

func TestParserForLexer(t *testing.T) {
	tests := []struct {
		lexer  string
		parser string
		ok     bool
	}{
		{"JavaScript", "babel", true},
		{"JavaScript Babel", "babel-flow", true},
		{"TypeScript", "typescript", true},
		{"XML", "html", true},
		{"Jade", "pug", true},
		{"Vue", "vue", true},
		{"Python", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		parser, ok := ParserForLexer(tt.lexer)
		if ok != tt.ok || parser != tt.parser {
			t.Errorf("ParserForLexer(%q) = %q, %v; want %q, %v", tt.lexer, parser, ok, tt.parser, tt.ok)
		}
	}
}

func TestParserForPath(t *testing.T) {
	tests := []struct {
		path   string
		parser string
		ok     bool
	}{
		{"src/app.js", "babel", true},
		{"src/App.TSX", "typescript", true},
		{"styles/main.scss", "scss", true},
		{"README.md", "markdown", true},
		{"config.yml", "yaml", true},
		{"component.vue", "vue", true},
		{"main.go", "", false},
		{"Makefile", "", false},
	}

	for _, tt := range tests {
		parser, ok := ParserForPath(tt.path)
		if ok != tt.ok || parser != tt.parser {
			t.Errorf("ParserForPath(%q) = %q, %v; want %q, %v", tt.path, parser, ok, tt.parser, tt.ok)
		}
	}
}

func TestSupported_CoversAllLexers(t *testing.T) {
	if got := len(Supported()); got < 22 {
		t.Errorf("expected at least 22 supported lexers, got %d", got)
	}
}
