package formatter

import (
	"fmt"
	"strconv"

	"github.com/dshills/prettierfmt/internal/config"
)

// BuildArgs assembles the full command line for one invocation: the
// resolved executable prefix, the parser, and either nothing (deferring
// to Prettier's own config-file discovery) or one flag per inline option.
func BuildArgs(prefix []string, parser, filePath string, cfg config.Config) []string {
	argv := make([]string, 0, len(prefix)+8)
	argv = append(argv, prefix...)

	if parser != "" {
		argv = append(argv, "--parser", parser)
	}
	// Keep stderr free of ANSI escapes.
	argv = append(argv, "--no-color")
	if filePath != "" {
		argv = append(argv, "--stdin-filepath", filePath)
	}

	// With a project .prettierrc in charge, no inline options are passed.
	if cfg.UsePrettierConfigFile {
		return argv
	}

	return appendOptionArgs(argv, cfg.PrettierOptions)
}

// appendOptionArgs translates prettier_options entries into CLI flags.
// Boolean flags follow Prettier's conventions: default-false options emit
// a bare flag when true, default-true options emit a --no- flag when false.
func appendOptionArgs(argv []string, options map[string]any) []string {
	valued := func(key, flag string) {
		if v, ok := options[key]; ok {
			argv = append(argv, flag, optionText(v))
		}
	}
	enabled := func(key, flag string) {
		if boolOption(options, key, false) {
			argv = append(argv, flag)
		}
	}

	// Print width and tabs.
	valued("printWidth", "--print-width")
	valued("tabWidth", "--tab-width")
	enabled("useTabs", "--use-tabs")

	// Semicolons and quotes.
	if !boolOption(options, "semi", true) {
		argv = append(argv, "--no-semi")
	}
	enabled("singleQuote", "--single-quote")
	enabled("jsxSingleQuote", "--jsx-single-quote")
	valued("quoteProps", "--quote-props")

	// Trailing commas and brackets.
	valued("trailingComma", "--trailing-comma")
	if !boolOption(options, "bracketSpacing", true) {
		argv = append(argv, "--no-bracket-spacing")
	}
	enabled("bracketSameLine", "--bracket-same-line")

	// Arrow functions and line endings.
	valued("arrowParens", "--arrow-parens")
	valued("endOfLine", "--end-of-line")

	// Language-specific options.
	valued("proseWrap", "--prose-wrap")
	valued("htmlWhitespaceSensitivity", "--html-whitespace-sensitivity")
	enabled("vueIndentScriptAndStyle", "--vue-indent-script-and-style")
	valued("embeddedLanguageFormatting", "--embedded-language-formatting")

	// Advanced options.
	enabled("singleAttributePerLine", "--single-attribute-per-line")
	valued("objectWrap", "--object-wrap")
	enabled("experimentalTernaries", "--experimental-ternaries")
	enabled("insertPragma", "--insert-pragma")
	enabled("requirePragma", "--require-pragma")

	// Range bounds are always explicit so stale .prettierrc values cannot
	// narrow the formatted region.
	rangeStart := "0"
	if v, ok := options["rangeStart"]; ok {
		rangeStart = optionText(v)
	}
	rangeEnd := "Infinity"
	if v, ok := options["rangeEnd"]; ok {
		rangeEnd = optionText(v)
	}
	argv = append(argv, "--range-start", rangeStart, "--range-end", rangeEnd)

	return argv
}

// boolOption reads a boolean option with a default for missing or
// mistyped values.
func boolOption(options map[string]any, key string, def bool) bool {
	if v, ok := options[key]; ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return def
}

// optionText renders an option value as a command-line argument.
// JSON numbers arrive as float64; whole values print without a fraction.
func optionText(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case int:
		return strconv.Itoa(t)
	case float64:
		if t == float64(int64(t)) {
			return strconv.FormatInt(int64(t), 10)
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", t)
	}
}
