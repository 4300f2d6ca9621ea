// Package resolver locates a usable Prettier executable.
//
// Resolution tries, in strict priority order: the configured path
// override, a project-local package-manager wrapper, the system PATH,
// and a portable tools directory bundled with the host installation.
// The resolved command is built fresh on every call; nothing is cached.
package resolver

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

// Origin identifies which search tier produced the command.
type Origin uint8

const (
	// OriginConfigured is the prettier_path config override.
	OriginConfigured Origin = iota
	// OriginProjectWrapper is a project-pinned installation or
	// package-manager wrapper.
	OriginProjectWrapper
	// OriginPath is a system PATH lookup.
	OriginPath
	// OriginPortable is the bundled portable tools directory.
	OriginPortable
)

// String returns a human-readable origin name.
func (o Origin) String() string {
	switch o {
	case OriginConfigured:
		return "configured path"
	case OriginProjectWrapper:
		return "project wrapper"
	case OriginPath:
		return "system PATH"
	case OriginPortable:
		return "portable tools"
	default:
		return fmt.Sprintf("unknown(%d)", o)
	}
}

// Command is a resolved executable invocation prefix.
// Argv is immutable once built; callers append their own arguments.
type Command struct {
	Argv   []string
	Origin Origin
}

// NotFoundError reports that no usable executable was located.
// Searched lists every location tried, in order.
type NotFoundError struct {
	Searched []string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("prettier executable not found; searched: %s", strings.Join(e.Searched, ", "))
}

// wrapperSpec describes one package-manager wrapper and the lockfiles
// that mark a project as using it.
type wrapperSpec struct {
	binary    string
	args      []string
	lockfiles []string
}

// wrapperSpecs lists supported wrappers in detection order.
var wrapperSpecs = []wrapperSpec{
	{binary: "npx", args: []string{"prettier"}, lockfiles: []string{"package-lock.json", "npm-shrinkwrap.json"}},
	{binary: "yarn", args: []string{"exec", "prettier"}, lockfiles: []string{"yarn.lock"}},
	{binary: "pnpm", args: []string{"exec", "prettier"}, lockfiles: []string{"pnpm-lock.yaml"}},
	{binary: "bunx", args: []string{"prettier"}, lockfiles: []string{"bun.lockb", "bun.lock"}},
}

// Resolver locates the Prettier executable for one invocation.
type Resolver struct {
	// ConfiguredPath, when non-empty, is used verbatim with no existence
	// check; the subprocess launch reports any problem. A value with
	// spaces is split into an argv prefix, so wrapper invocations like
	// "npx prettier" can be configured directly.
	ConfiguredPath string

	// ProjectDir is searched for project-local installations and
	// package-manager lockfiles.
	ProjectDir string

	// PortableToolsDir is the bundled tools directory searched last.
	PortableToolsDir string

	// GOOS overrides runtime.GOOS, for tests.
	GOOS string

	// lookPath and fileExists are replaceable for tests.
	lookPath   func(string) (string, error)
	fileExists func(string) bool
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithLookPath replaces the PATH lookup function.
func WithLookPath(fn func(string) (string, error)) Option {
	return func(r *Resolver) {
		r.lookPath = fn
	}
}

// WithFileExists replaces the file existence check.
func WithFileExists(fn func(string) bool) Option {
	return func(r *Resolver) {
		r.fileExists = fn
	}
}

// New creates a resolver.
func New(configuredPath, projectDir, portableToolsDir string, opts ...Option) *Resolver {
	r := &Resolver{
		ConfiguredPath:   configuredPath,
		ProjectDir:       projectDir,
		PortableToolsDir: portableToolsDir,
		GOOS:             runtime.GOOS,
		lookPath:         exec.LookPath,
		fileExists: func(path string) bool {
			info, err := os.Stat(path)
			return err == nil && !info.IsDir()
		},
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// windows reports whether resolution targets Windows conventions.
func (r *Resolver) windows() bool {
	return r.GOOS == "windows"
}

// executableNames returns the platform-appropriate candidates for a base
// executable name, in preference order.
func (r *Resolver) executableNames(base string) []string {
	if r.windows() {
		return []string{base + ".exe", base + ".cmd"}
	}
	return []string{base}
}

// Resolve returns the executable invocation prefix, trying each tier in
// priority order. First match wins.
func (r *Resolver) Resolve() (Command, error) {
	var searched []string

	// 1. Configured path, used verbatim.
	if path := strings.TrimSpace(r.ConfiguredPath); path != "" {
		return Command{Argv: strings.Fields(path), Origin: OriginConfigured}, nil
	}
	searched = append(searched, "configured prettier_path (empty)")

	// 2. Project-local wrapper or installation.
	if r.ProjectDir != "" {
		if cmd, ok := r.resolveProject(); ok {
			return cmd, nil
		}
		searched = append(searched, fmt.Sprintf("project %s (node_modules/.bin, lockfiles)", r.ProjectDir))
	}

	// 3. System PATH.
	for _, name := range r.executableNames("prettier") {
		if path, err := r.lookPath(name); err == nil {
			return Command{Argv: []string{path}, Origin: OriginPath}, nil
		}
	}
	searched = append(searched, "system PATH (prettier)")

	// 4. Portable tools directory.
	if r.PortableToolsDir != "" {
		for _, name := range r.executableNames("prettier") {
			candidate := filepath.Join(r.PortableToolsDir, name)
			if r.fileExists(candidate) {
				return Command{Argv: []string{candidate}, Origin: OriginPortable}, nil
			}
		}
		searched = append(searched, fmt.Sprintf("portable tools %s", r.PortableToolsDir))
	}

	return Command{}, &NotFoundError{Searched: searched}
}

// resolveProject checks for a project-pinned prettier: first a direct
// node_modules/.bin entry, then a package-manager wrapper whose lockfile
// is present and whose binary is on PATH.
func (r *Resolver) resolveProject() (Command, bool) {
	binName := "prettier"
	if r.windows() {
		binName = "prettier.cmd"
	}
	local := filepath.Join(r.ProjectDir, "node_modules", ".bin", binName)
	if r.fileExists(local) {
		return Command{Argv: []string{local}, Origin: OriginProjectWrapper}, true
	}

	for _, spec := range wrapperSpecs {
		if !r.hasLockfile(spec.lockfiles) {
			continue
		}

		binary := spec.binary
		if r.windows() {
			binary += ".cmd"
		}
		path, err := r.lookPath(binary)
		if err != nil {
			continue
		}

		argv := append([]string{path}, spec.args...)
		return Command{Argv: argv, Origin: OriginProjectWrapper}, true
	}

	return Command{}, false
}

// hasLockfile reports whether any of the lockfiles exists in ProjectDir.
func (r *Resolver) hasLockfile(names []string) bool {
	for _, name := range names {
		if r.fileExists(filepath.Join(r.ProjectDir, name)) {
			return true
		}
	}
	return false
}
