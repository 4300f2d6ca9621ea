// Package lang maps host lexer names and file extensions to Prettier
// parser names.
//
// The plugin has no syntactic knowledge of its own; this table only
// decides which --parser value to pass so Prettier picks the right
// front end for buffers whose path alone is not enough.
package lang

import (
	"path/filepath"
	"strings"
)

// lexerToParser maps host lexer names to Prettier parser names.
var lexerToParser = map[string]string{
	// JavaScript family
	"JavaScript":       "babel",
	"JavaScript Babel": "babel-flow",
	"TypeScript":       "typescript",

	// Stylesheets
	"CSS":  "css",
	"SCSS": "scss",
	"LESS": "less",

	// Markup
	"HTML":     "html",
	"XML":      "html",
	"Markdown": "markdown",
	"MDX":      "mdx",

	// Data formats
	"JSON": "json",
	"YAML": "yaml",

	// GraphQL
	"GraphQL": "graphql",

	// Template engines (HTML-based)
	"HTML Handlebars":    "html",
	"HTML Laravel Blade": "html",
	"HTML Django DTL":    "html",
	"Jinja2":             "html",
	"Twig":               "html",
	"Svelte":             "html",
	"Vue":                "vue",
	"Pug":                "pug",
	"Jade":               "pug",
}

// extToLexer maps file extensions to host lexer names.
var extToLexer = map[string]string{
	".js":       "JavaScript",
	".mjs":      "JavaScript",
	".cjs":      "JavaScript",
	".jsx":      "JavaScript Babel",
	".ts":       "TypeScript",
	".tsx":      "TypeScript",
	".mts":      "TypeScript",
	".cts":      "TypeScript",
	".css":      "CSS",
	".scss":     "SCSS",
	".less":     "LESS",
	".html":     "HTML",
	".htm":      "HTML",
	".xml":      "XML",
	".md":       "Markdown",
	".markdown": "Markdown",
	".mdx":      "MDX",
	".json":     "JSON",
	".yaml":     "YAML",
	".yml":      "YAML",
	".graphql":  "GraphQL",
	".gql":      "GraphQL",
	".hbs":      "HTML Handlebars",
	".twig":     "Twig",
	".svelte":   "Svelte",
	".vue":      "Vue",
	".pug":      "Pug",
	".jade":     "Jade",
}

// ParserForLexer returns the Prettier parser for a host lexer name.
// The second return value is false for unsupported lexers.
func ParserForLexer(lexer string) (string, bool) {
	parser, ok := lexerToParser[lexer]
	return parser, ok
}

// LexerForPath returns the host lexer name for a file path, judged by
// extension. The second return value is false for unknown extensions.
func LexerForPath(path string) (string, bool) {
	ext := strings.ToLower(filepath.Ext(path))
	lexer, ok := extToLexer[ext]
	return lexer, ok
}

// ParserForPath returns the Prettier parser for a file path.
func ParserForPath(path string) (string, bool) {
	lexer, ok := LexerForPath(path)
	if !ok {
		return "", false
	}
	return ParserForLexer(lexer)
}

// Supported returns all supported lexer names in no particular order.
func Supported() []string {
	out := make([]string, 0, len(lexerToParser))
	for lexer := range lexerToParser {
		out = append(out, lexer)
	}
	return out
}
