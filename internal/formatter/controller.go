package formatter

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/dshills/prettierfmt/internal/config"
	"github.com/dshills/prettierfmt/internal/config/loader"
	"github.com/dshills/prettierfmt/internal/engine/buffer"
	"github.com/dshills/prettierfmt/internal/engine/tracking"
	"github.com/dshills/prettierfmt/internal/host"
	"github.com/dshills/prettierfmt/internal/lang"
	"github.com/dshills/prettierfmt/internal/process"
	"github.com/dshills/prettierfmt/internal/resolver"
)

// RunFunc executes a command with input on stdin, bounded by ctx.
// Replaceable for tests; the default is process.Run.
type RunFunc func(ctx context.Context, argv []string, dir, input string) (process.Output, error)

// Request describes one formatting invocation.
type Request struct {
	// Buffer provides the text to format.
	Buffer host.BufferAccess

	// Apply receives the resulting line splices as one undo transaction.
	Apply host.TransactionApply

	// FilePath is the buffer's file path, passed to Prettier as
	// --stdin-filepath. Defaults to Buffer.Path().
	FilePath string

	// ProjectDir is the subprocess working directory and the root
	// searched for local configuration and lockfiles. Defaults to the
	// directory of FilePath.
	ProjectDir string

	// Lexer names the buffer's language when the host knows it; the
	// parser is otherwise inferred from the file extension.
	Lexer string
}

// Result summarizes a successful invocation.
type Result struct {
	// Changed is false when the formatter output matched the buffer.
	Changed bool

	// SpliceCount is the number of contiguous line spans replaced.
	SpliceCount int

	// Parser is the Prettier parser that was used.
	Parser string

	// Origin describes where the executable came from.
	Origin resolver.Origin

	// Duration is the subprocess wall-clock runtime.
	Duration time.Duration
}

// Controller runs the resolve, invoke, and merge pipeline.
// Safe for concurrent use; overlapping requests for the same buffer are
// rejected.
type Controller struct {
	globalConfigPath string
	portableToolsDir string
	notifier         host.Notifier
	run              RunFunc
	fs               loader.FileSystem
	resolverOpts     []resolver.Option
	maxDiffLines     int

	mu       sync.Mutex
	inFlight map[host.BufferAccess]struct{}
}

// ControllerOption configures a Controller.
type ControllerOption func(*Controller)

// WithNotifier sets the user-facing notification sink.
func WithNotifier(n host.Notifier) ControllerOption {
	return func(c *Controller) {
		c.notifier = n
	}
}

// WithRunner replaces the subprocess runner.
func WithRunner(run RunFunc) ControllerOption {
	return func(c *Controller) {
		c.run = run
	}
}

// WithFileSystem replaces the file system used for configuration reads.
func WithFileSystem(fs loader.FileSystem) ControllerOption {
	return func(c *Controller) {
		c.fs = fs
	}
}

// WithResolverOptions forwards options to the executable resolver.
func WithResolverOptions(opts ...resolver.Option) ControllerOption {
	return func(c *Controller) {
		c.resolverOpts = opts
	}
}

// WithMaxDiffLines caps the exact-diff input size before the heuristic
// fallback takes over.
func WithMaxDiffLines(n int) ControllerOption {
	return func(c *Controller) {
		c.maxDiffLines = n
	}
}

// NewController creates a controller. globalConfigPath locates the
// plugin-wide configuration file; portableToolsDir is the bundled
// executable directory searched last during resolution.
func NewController(globalConfigPath, portableToolsDir string, opts ...ControllerOption) *Controller {
	c := &Controller{
		globalConfigPath: globalConfigPath,
		portableToolsDir: portableToolsDir,
		notifier:         host.NopNotifier(),
		run:              process.Run,
		maxDiffLines:     tracking.DefaultMaxDiffLines,
		inFlight:         make(map[host.BufferAccess]struct{}),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Format runs one invocation for req. On success the buffer has been
// updated through req.Apply (or left alone when already formatted); on
// any error the buffer is untouched.
func (c *Controller) Format(ctx context.Context, req Request) (Result, error) {
	if err := c.acquire(req.Buffer); err != nil {
		return Result{}, err
	}
	defer c.release(req.Buffer)

	filePath := req.FilePath
	if filePath == "" {
		filePath = req.Buffer.Path()
	}
	projectDir := req.ProjectDir
	if projectDir == "" && filePath != "" {
		projectDir = filepath.Dir(filePath)
	}

	// Configuration is read fresh every time so edits take effect on the
	// next format without a restart.
	cfg, problems := config.Source{
		GlobalPath: c.globalConfigPath,
		ProjectDir: projectDir,
		FS:         c.fs,
	}.Load()
	for _, p := range problems {
		c.notifier.Notify(host.LevelWarn, (&FormatError{Kind: KindConfig, Err: p}).Error())
	}

	parser, ok := c.parserFor(req.Lexer, filePath)
	if !ok {
		return Result{}, &FormatError{
			Kind:    KindUnsupported,
			Message: fmt.Sprintf("no parser for %q", firstNonEmpty(req.Lexer, filePath)),
		}
	}

	cmd, err := resolver.New(cfg.PrettierPath, projectDir, c.portableToolsDir, c.resolverOpts...).Resolve()
	if err != nil {
		return Result{}, &FormatError{Kind: KindNotFound, Err: err}
	}

	original := req.Buffer.Text()
	if strings.TrimSpace(original) == "" {
		return Result{Parser: parser, Origin: cmd.Origin}, nil
	}

	argv := BuildArgs(cmd.Argv, parser, filePath, cfg)

	runCtx, cancel := context.WithTimeout(ctx, cfg.Timeout())
	defer cancel()

	out, err := c.run(runCtx, argv, projectDir, original)
	if err != nil {
		return Result{}, &FormatError{
			Kind:    KindNotFound,
			Message: fmt.Sprintf("cannot launch %s", argv[0]),
			Err:     err,
		}
	}
	if out.TimedOut {
		return Result{}, &FormatError{
			Kind:    KindTimeout,
			Message: fmt.Sprintf("no result after %gs", cfg.TimeoutSeconds),
		}
	}
	if out.ExitCode != 0 {
		return Result{}, &FormatError{
			Kind:    KindFormatter,
			Message: strings.TrimSpace(out.Stderr),
		}
	}
	if out.Stdout == "" {
		return Result{}, &FormatError{Kind: KindFormatter, Message: "empty output"}
	}

	res := Result{Parser: parser, Origin: cmd.Origin, Duration: out.Duration}

	changed, spliceCount, err := c.merge(req, original, out.Stdout)
	if err != nil {
		return Result{}, fmt.Errorf("apply formatted output: %w", err)
	}
	res.Changed = changed
	res.SpliceCount = spliceCount

	return res, nil
}

// merge diffs the formatter output against the original text and applies
// only the differing line spans as one transaction.
func (c *Controller) merge(req Request, original, formatted string) (changed bool, spliceCount int, err error) {
	oldLines, oldTrailing := buffer.SplitLines(original)
	newLines, newTrailing := buffer.SplitLines(formatted)

	diff := tracking.DiffLines(oldLines, newLines, tracking.Options{MaxLines: c.maxDiffLines})
	splices := tracking.Splices(diff, newLines)

	if len(splices) == 0 && oldTrailing == newTrailing {
		return false, 0, nil
	}

	if err := req.Apply.ApplySplices("prettier format", splices, newTrailing); err != nil {
		return false, 0, err
	}
	return true, len(splices), nil
}

// parserFor picks the Prettier parser from the host-provided lexer name,
// falling back to the file extension.
func (c *Controller) parserFor(lexer, filePath string) (string, bool) {
	if lexer != "" {
		return lang.ParserForLexer(lexer)
	}
	if filePath != "" {
		return lang.ParserForPath(filePath)
	}
	return "", false
}

// acquire reserves the buffer for one invocation.
func (c *Controller) acquire(buf host.BufferAccess) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, busy := c.inFlight[buf]; busy {
		return ErrFormatInFlight
	}
	c.inFlight[buf] = struct{}{}
	return nil
}

// release frees the buffer after an invocation.
func (c *Controller) release(buf host.BufferAccess) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.inFlight, buf)
}

// firstNonEmpty returns the first non-empty string.
func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
