package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dshills/prettierfmt/internal/config"
	"github.com/dshills/prettierfmt/internal/formatter"
	"github.com/dshills/prettierfmt/internal/host"
	"github.com/dshills/prettierfmt/internal/prettierrc"
	"github.com/dshills/prettierfmt/internal/process"
	"github.com/dshills/prettierfmt/internal/resolver"
)

// ErrNoFileDir is returned by CreatePrettierrc when the buffer has no
// saved file to anchor the new config file to.
var ErrNoFileDir = errors.New("no file directory: save the file first")

// versionProbeTimeout bounds the prettier --version check run by Doctor.
const versionProbeTimeout = 3 * time.Second

// App owns the plugin-level commands built on top of the controller.
type App struct {
	logger           *Logger
	settingsDir      string
	portableToolsDir string
	controller       *formatter.Controller
}

// Option configures an App.
type Option func(*App)

// WithLogger sets the application logger.
func WithLogger(l *Logger) Option {
	return func(a *App) {
		a.logger = l
	}
}

// WithPortableToolsDir sets the bundled executable directory searched
// last during resolution.
func WithPortableToolsDir(dir string) Option {
	return func(a *App) {
		a.portableToolsDir = dir
	}
}

// New creates the application. settingsDir holds the global
// configuration file.
func New(settingsDir string, opts ...Option) *App {
	a := &App{
		logger:      NewLogger(DefaultLoggerConfig()),
		settingsDir: settingsDir,
	}

	for _, opt := range opts {
		opt(a)
	}

	a.controller = formatter.NewController(
		a.GlobalConfigPath(),
		a.portableToolsDir,
		formatter.WithNotifier(a.Notifier()),
	)

	return a
}

// Logger returns the application logger.
func (a *App) Logger() *Logger {
	return a.logger
}

// Controller returns the formatting controller.
func (a *App) Controller() *formatter.Controller {
	return a.controller
}

// GlobalConfigPath returns the full path of the global configuration file.
func (a *App) GlobalConfigPath() string {
	return filepath.Join(a.settingsDir, config.GlobalFileName)
}

// Notifier bridges controller notifications into the logger.
func (a *App) Notifier() host.Notifier {
	return host.NotifierFunc(func(level host.Level, msg string) {
		switch level {
		case host.LevelError:
			a.logger.Error("%s", msg)
		case host.LevelWarn:
			a.logger.Warn("%s", msg)
		default:
			a.logger.Info("%s", msg)
		}
	})
}

// Format runs one formatting invocation against the given buffer.
func (a *App) Format(ctx context.Context, req formatter.Request) (formatter.Result, error) {
	res, err := a.controller.Format(ctx, req)
	if err != nil {
		a.logger.Error("format failed: %v", err)
		return res, err
	}

	if res.Changed {
		a.logger.Info("formatted with parser %s via %s (%d spans)", res.Parser, res.Origin, res.SpliceCount)
	} else {
		a.logger.Debug("already formatted")
	}
	return res, nil
}

// OpenConfig ensures the global configuration file exists, creating it
// with commented defaults if needed, and returns its path for the host
// to open.
func (a *App) OpenConfig() (string, error) {
	path := a.GlobalConfigPath()

	created, err := config.EnsureGlobal(path)
	if err != nil {
		return "", err
	}
	if created {
		a.logger.Info("created default config: %s", path)
	}
	return path, nil
}

// CreatePrettierrc writes a .prettierrc with the default option set into
// fileDir. An existing file is never overwritten; its path is returned
// with created=false so the host can open it instead.
func (a *App) CreatePrettierrc(fileDir string) (path string, created bool, err error) {
	if fileDir == "" {
		return "", false, ErrNoFileDir
	}

	path = filepath.Join(fileDir, ".prettierrc")
	if _, err := os.Stat(path); err == nil {
		return path, false, nil
	} else if !os.IsNotExist(err) {
		return "", false, fmt.Errorf("stat %s: %w", path, err)
	}

	doc, err := config.PrettierrcDocument()
	if err != nil {
		return "", false, fmt.Errorf("render .prettierrc: %w", err)
	}
	if err := os.WriteFile(path, doc, 0o644); err != nil {
		return "", false, fmt.Errorf("write %s: %w", path, err)
	}

	a.logger.Info("created %s", path)
	return path, true, nil
}

// DoctorReport is the result of an environment check.
type DoctorReport struct {
	// Command is the resolved executable prefix, nil when none was found.
	Command []string

	// Origin describes where the executable came from.
	Origin resolver.Origin

	// ResolveErr is set when no executable was located.
	ResolveErr error

	// Version is the output of prettier --version, "" when unavailable.
	Version string

	// NativeConfig is the Prettier config file its own discovery would
	// use, nil when there is none.
	NativeConfig *prettierrc.Discovery

	// ConfigProblems lists plugin configuration file issues.
	ConfigProblems []string
}

// Doctor inspects the environment for a project: plugin config health,
// executable resolution, formatter version, and native config discovery.
func (a *App) Doctor(ctx context.Context, projectDir string) DoctorReport {
	var report DoctorReport

	cfg, problems := config.Source{
		GlobalPath: a.GlobalConfigPath(),
		ProjectDir: projectDir,
	}.Load()
	for _, p := range problems {
		report.ConfigProblems = append(report.ConfigProblems, p.Error())
	}

	cmd, err := resolver.New(cfg.PrettierPath, projectDir, a.portableToolsDir).Resolve()
	if err != nil {
		report.ResolveErr = err
	} else {
		report.Command = cmd.Argv
		report.Origin = cmd.Origin
		report.Version = a.probeVersion(ctx, cmd.Argv, projectDir)
	}

	if d, err := prettierrc.Discover(projectDir); err != nil {
		report.ConfigProblems = append(report.ConfigProblems, err.Error())
	} else {
		report.NativeConfig = d
	}

	return report
}

// probeVersion runs prettier --version with a short bound.
func (a *App) probeVersion(ctx context.Context, argv []string, dir string) string {
	probeCtx, cancel := context.WithTimeout(ctx, versionProbeTimeout)
	defer cancel()

	out, err := process.Run(probeCtx, append(append([]string{}, argv...), "--version"), dir, "")
	if err != nil || !out.Success() {
		return ""
	}
	return strings.TrimSpace(out.Stdout)
}

// Render formats the report as human-readable lines.
func (r DoctorReport) Render() string {
	var b strings.Builder

	if r.ResolveErr != nil {
		fmt.Fprintf(&b, "executable: NOT FOUND\n  %v\n", r.ResolveErr)
	} else {
		fmt.Fprintf(&b, "executable: %s (%s)\n", strings.Join(r.Command, " "), r.Origin)
		if r.Version != "" {
			fmt.Fprintf(&b, "version: %s\n", r.Version)
		} else {
			b.WriteString("version: unavailable\n")
		}
	}

	if r.NativeConfig != nil {
		fmt.Fprintf(&b, "prettier config: %s (%s)\n", r.NativeConfig.Path, r.NativeConfig.Format)
	} else {
		b.WriteString("prettier config: none found\n")
	}

	for _, p := range r.ConfigProblems {
		fmt.Fprintf(&b, "config problem: %s\n", p)
	}

	return b.String()
}
