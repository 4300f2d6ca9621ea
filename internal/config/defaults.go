package config

import (
	"github.com/tidwall/sjson"
)

// DefaultTimeoutSeconds bounds the formatter subprocess by default.
const DefaultTimeoutSeconds = 10

// DefaultOptions returns the built-in prettier option defaults.
// These are only passed on the command line when
// use_prettier_config_file is false.
func DefaultOptions() map[string]any {
	return map[string]any{
		"printWidth":                 float64(80),
		"tabWidth":                   float64(2),
		"useTabs":                    false,
		"semi":                       true,
		"singleQuote":                false,
		"jsxSingleQuote":             false,
		"quoteProps":                 "as-needed",
		"trailingComma":              "es5",
		"bracketSpacing":             true,
		"bracketSameLine":            false,
		"arrowParens":                "always",
		"proseWrap":                  "preserve",
		"htmlWhitespaceSensitivity":  "css",
		"vueIndentScriptAndStyle":    false,
		"endOfLine":                  "lf",
		"embeddedLanguageFormatting": "auto",
		"singleAttributePerLine":     false,
		"objectWrap":                 "preserve",
		"experimentalTernaries":      false,
		"insertPragma":               false,
		"requirePragma":              false,
		"rangeStart":                 float64(0),
		"rangeEnd":                   "Infinity",
	}
}

// defaultEntry is one key of the commented default document.
type defaultEntry struct {
	path    string
	value   any
	comment string
}

// defaultDocumentEntries lists the default global configuration in file
// order, with inline documentation for each key.
func defaultDocumentEntries() []defaultEntry {
	return []defaultEntry{
		{"prettier_path", "", "Custom path to the Prettier executable. Leave empty for auto-detection"},
		{"timeout_seconds", 10, "Prettier subprocess timeout in seconds (default: 10)"},
		{"use_prettier_config_file", true, "If true, defers to the project's own Prettier config. If false, uses prettier_options below"},
		{"prettier_options.printWidth", 80, "Line length (default: 80)"},
		{"prettier_options.tabWidth", 2, "Spaces per indentation (default: 2)"},
		{"prettier_options.useTabs", false, "Use tabs instead of spaces (default: false)"},
		{"prettier_options.semi", true, "Add semicolons (default: true)"},
		{"prettier_options.singleQuote", false, "Use single quotes (default: false)"},
		{"prettier_options.jsxSingleQuote", false, "Single quotes in JSX (default: false)"},
		{"prettier_options.quoteProps", "as-needed", "Quote object properties: as-needed | consistent | preserve (default: as-needed)"},
		{"prettier_options.trailingComma", "es5", "Trailing commas: none | es5 | all (default: es5)"},
		{"prettier_options.bracketSpacing", true, "Spaces in brackets (default: true)"},
		{"prettier_options.bracketSameLine", false, "Put > on same line in HTML/JSX (default: false)"},
		{"prettier_options.arrowParens", "always", "Arrow function parens: avoid | always (default: always)"},
		{"prettier_options.proseWrap", "preserve", "Wrap prose: always | never | preserve (default: preserve)"},
		{"prettier_options.htmlWhitespaceSensitivity", "css", "HTML whitespace: css | strict | ignore (default: css)"},
		{"prettier_options.vueIndentScriptAndStyle", false, "Indent script/style in Vue (default: false)"},
		{"prettier_options.endOfLine", "lf", "Line ending: auto | lf | crlf | cr (default: lf)"},
		{"prettier_options.embeddedLanguageFormatting", "auto", "Format embedded code: auto | off (default: auto)"},
		{"prettier_options.singleAttributePerLine", false, "One attribute per line in HTML/JSX (default: false)"},
		{"prettier_options.objectWrap", "preserve", "Object wrap mode: preserve | collapse (default: preserve)"},
		{"prettier_options.experimentalTernaries", false, "Ternary formatting: false | true (default: false, experimental)"},
		{"prettier_options.insertPragma", false, "Insert @format pragma (default: false)"},
		{"prettier_options.requirePragma", false, "Only format files with pragma (default: false)"},
		{"prettier_options.rangeStart", 0, "Format from byte offset (default: 0 = start of file)"},
		{"prettier_options.rangeEnd", "Infinity", "Format to byte offset (default: Infinity = end of file)"},
	}
}

// DefaultDocument renders the commented default global configuration file.
func DefaultDocument() ([]byte, error) {
	doc := []byte("{}")
	var err error

	for _, e := range defaultDocumentEntries() {
		doc, err = sjson.SetBytes(doc, e.path, e.value)
		if err != nil {
			return nil, err
		}
		doc, err = sjson.SetBytes(doc, commentPath(e.path), e.comment)
		if err != nil {
			return nil, err
		}
	}

	return doc, nil
}

// PrettierrcDocument renders a standalone .prettierrc from the default
// option set. The "Infinity" sentinel is not valid JSON for Prettier's own
// config file, so rangeEnd becomes the maximum 32-bit integer.
func PrettierrcDocument() ([]byte, error) {
	doc := []byte("{}")
	var err error

	for _, e := range defaultDocumentEntries() {
		const prefix = "prettier_options."
		if len(e.path) <= len(prefix) || e.path[:len(prefix)] != prefix {
			continue
		}
		key := e.path[len(prefix):]

		value := e.value
		if key == "rangeEnd" {
			value = 2147483647
		}

		doc, err = sjson.SetBytes(doc, key, value)
		if err != nil {
			return nil, err
		}
	}

	return doc, nil
}

// commentPath returns the inline documentation key for a config path.
// "prettier_options.semi" documents as "prettier_options.// semi".
func commentPath(path string) string {
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '.' {
			return path[:i+1] + "// " + path[i+1:]
		}
	}
	return "// " + path
}
