// Package main is the command-line front end for the prettierfmt
// formatting pipeline: it runs files (or stdin) through the same
// controller and reference host the editor integration uses.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/dshills/prettierfmt/internal/app"
	"github.com/dshills/prettierfmt/internal/engine/buffer"
	"github.com/dshills/prettierfmt/internal/engine/tracking"
	"github.com/dshills/prettierfmt/internal/formatter"
	"github.com/dshills/prettierfmt/internal/host"
	"github.com/dshills/prettierfmt/internal/lang"
	"github.com/dshills/prettierfmt/internal/project"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

type options struct {
	write         bool
	check         bool
	diff          bool
	watch         bool
	doctor        bool
	initConfig    bool
	initRC        bool
	settingsDir   string
	timeout       float64
	logLevel      string
	stdinFilepath string
	files         []string
}

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	logger := app.NewLogger(app.LoggerConfig{
		Level:  app.ParseLogLevel(opts.logLevel),
		Output: os.Stderr,
		Prefix: "prettierfmt",
	})

	application := app.New(opts.settingsDir, app.WithLogger(logger))

	switch {
	case opts.initConfig:
		path, err := application.OpenConfig()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		fmt.Println(path)
		return 0

	case opts.initRC:
		dir, _ := os.Getwd()
		if len(opts.files) > 0 {
			dir = opts.files[0]
		}
		path, created, err := application.CreatePrettierrc(dir)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		if !created {
			fmt.Fprintf(os.Stderr, "exists: %s\n", path)
		}
		fmt.Println(path)
		return 0

	case opts.doctor:
		dir, _ := os.Getwd()
		if len(opts.files) > 0 {
			dir = project.FindRoot(opts.files[0])
		}
		fmt.Print(application.Doctor(context.Background(), dir).Render())
		return 0
	}

	if len(opts.files) == 0 {
		return runStdin(application, opts)
	}

	if opts.watch {
		if !opts.write {
			fmt.Fprintln(os.Stderr, "Error: -watch requires -write")
			return 1
		}
		return runWatch(application, opts)
	}

	exit := 0
	for _, file := range opts.files {
		changed, err := formatFile(application, opts, file)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", file, err)
			exit = 1
			continue
		}
		if changed && opts.check {
			fmt.Fprintf(os.Stderr, "%s: not formatted\n", file)
			exit = 1
		}
	}
	return exit
}

// formatFile runs one file through the pipeline. The formatted text is
// written back only with -write; -diff prints a unified diff instead.
func formatFile(application *app.App, opts options, file string) (bool, error) {
	abs, err := filepath.Abs(file)
	if err != nil {
		return false, err
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return false, err
	}
	original := string(data)

	h := host.NewEditor(buffer.FromString(original, buffer.WithPath(abs)))
	req := formatter.Request{
		Buffer:     h,
		Apply:      h,
		ProjectDir: project.FindRoot(abs),
	}

	ctx, cancel := timeoutContext(opts.timeout)
	defer cancel()

	res, err := application.Format(ctx, req)
	if err != nil {
		return false, err
	}
	if !res.Changed {
		return false, nil
	}

	if opts.diff {
		printDiff(os.Stdout, original, h.Text(), file)
	}
	if opts.write {
		if err := os.WriteFile(abs, []byte(h.Text()), 0o644); err != nil {
			return true, fmt.Errorf("write result: %w", err)
		}
	}
	return true, nil
}

// runStdin formats standard input to standard output. The parser is
// inferred from -stdin-filepath.
func runStdin(application *app.App, opts options) int {
	if opts.stdinFilepath == "" {
		fmt.Fprintln(os.Stderr, "Error: formatting stdin requires -stdin-filepath")
		return 1
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: read stdin: %v\n", err)
		return 1
	}

	h := host.NewEditor(buffer.FromString(string(data), buffer.WithPath(opts.stdinFilepath)))
	req := formatter.Request{Buffer: h, Apply: h}
	if dir := filepath.Dir(opts.stdinFilepath); dir != "." {
		req.ProjectDir = project.FindRoot(dir)
	}

	ctx, cancel := timeoutContext(opts.timeout)
	defer cancel()

	res, err := application.Format(ctx, req)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	if opts.check {
		if res.Changed {
			fmt.Fprintln(os.Stderr, "stdin: not formatted")
			return 1
		}
		return 0
	}

	fmt.Print(h.Text())
	return 0
}

// runWatch reformats files in place as they change.
func runWatch(application *app.App, opts options) int {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: create watcher: %v\n", err)
		return 1
	}
	defer watcher.Close()

	for _, file := range opts.files {
		target := file
		if info, err := os.Stat(file); err == nil && !info.IsDir() {
			// Watch the directory; editors often replace files on save.
			target = filepath.Dir(file)
		}
		if err := watcher.Add(target); err != nil {
			fmt.Fprintf(os.Stderr, "Error: watch %s: %v\n", target, err)
			return 1
		}
	}

	logger := application.Logger()
	logger.Info("watching %s", strings.Join(opts.files, ", "))

	// Suppress the event our own write generates.
	lastWrite := make(map[string]time.Time)

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return 0
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if _, supported := lang.ParserForPath(event.Name); !supported {
				continue
			}
			if t, ok := lastWrite[event.Name]; ok && time.Since(t) < 500*time.Millisecond {
				continue
			}

			changed, err := formatFile(application, opts, event.Name)
			if err != nil {
				logger.Error("%s: %v", event.Name, err)
				continue
			}
			if changed {
				lastWrite[event.Name] = time.Now()
				logger.Info("formatted %s", event.Name)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return 0
			}
			logger.Error("watch: %v", err)
		}
	}
}

// timeoutContext bounds one invocation with the -timeout override, on
// top of the per-config subprocess timeout.
func timeoutContext(seconds float64) (context.Context, context.CancelFunc) {
	if seconds <= 0 {
		return context.WithCancel(context.Background())
	}
	return context.WithTimeout(context.Background(), time.Duration(seconds*float64(time.Second)))
}

// printDiff writes a unified diff between the original and formatted text.
func printDiff(w io.Writer, original, formatted, name string) {
	oldLines, _ := buffer.SplitLines(original)
	newLines, _ := buffer.SplitLines(formatted)

	r := tracking.DiffLines(oldLines, newLines, tracking.Options{})
	fmt.Fprint(w, tracking.UnifiedDiff(r, oldLines, newLines, name+".orig", name, 3))
}

func parseFlags() options {
	var opts options
	var showVersion bool
	var showHelp bool

	flag.BoolVar(&opts.write, "write", false, "Write formatted output back to the file")
	flag.BoolVar(&opts.write, "w", false, "Write formatted output back to the file (shorthand)")
	flag.BoolVar(&opts.check, "check", false, "Exit 1 when a file is not formatted; change nothing")
	flag.BoolVar(&opts.diff, "diff", false, "Print a unified diff of the changes")
	flag.BoolVar(&opts.watch, "watch", false, "Watch files and reformat on change (requires -write)")
	flag.BoolVar(&opts.doctor, "doctor", false, "Report executable resolution and config discovery")
	flag.BoolVar(&opts.initConfig, "init-config", false, "Create the global config with defaults and print its path")
	flag.BoolVar(&opts.initRC, "init-rc", false, "Create a .prettierrc with defaults in the target directory")
	flag.StringVar(&opts.settingsDir, "config", defaultSettingsDir(), "Settings directory holding the global config")
	flag.Float64Var(&opts.timeout, "timeout", 0, "Overall per-file timeout in seconds (0 = config value only)")
	flag.StringVar(&opts.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	flag.StringVar(&opts.stdinFilepath, "stdin-filepath", "", "File path used to infer the parser when reading stdin")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "prettierfmt - Prettier bridge\n\n")
		fmt.Fprintf(os.Stderr, "Usage: prettierfmt [options] [files...]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  prettierfmt -w src/app.js            Format in place\n")
		fmt.Fprintf(os.Stderr, "  prettierfmt -check src/*.ts          Verify formatting\n")
		fmt.Fprintf(os.Stderr, "  prettierfmt -diff src/app.js         Show pending changes\n")
		fmt.Fprintf(os.Stderr, "  prettierfmt -w -watch src/           Reformat on save\n")
		fmt.Fprintf(os.Stderr, "  prettierfmt -stdin-filepath x.js < x Format stdin\n")
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("prettierfmt %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	switch opts.logLevel {
	case "debug", "info", "warn", "error":
		// Valid
	default:
		fmt.Fprintf(os.Stderr, "Error: invalid log level %q (must be debug, info, warn, or error)\n", opts.logLevel)
		os.Exit(1)
	}

	opts.files = flag.Args()
	return opts
}

// defaultSettingsDir returns the per-user settings directory.
func defaultSettingsDir() string {
	if base, err := os.UserConfigDir(); err == nil {
		return filepath.Join(base, "prettierfmt")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".prettierfmt")
}
