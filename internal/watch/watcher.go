package watch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
)

// RunFunc is called each time the watcher triggers a rerun of the filter
// pipeline. It receives the context and returns the run result for
// status reporting and verification.
type RunFunc func(ctx context.Context) (*RunResult, error)

// RunResult holds the output of a single pipeline execution so the
// watcher can report progress and optionally verify the output.
type RunResult struct {
	Lines      int
	Kept       int
	Dropped    int
	OutputPath string
}

// VerifyFunc is called after each run to re-check the written output.
// It receives the output path and returns an error if the check fails.
type VerifyFunc func(ctx context.Context, outputPath string) error

// Options configures a watch session.
type Options struct {
	// Files are the input files to watch.
	Files []string

	// Debounce is the quiet period before triggering a rerun.
	Debounce time.Duration

	// Verify enables automatic verification after each run.
	Verify bool

	// VerifyFn is called after each run when Verify is true.
	// If nil, verification is skipped even when Verify is true.
	VerifyFn VerifyFunc

	// Logger receives watcher diagnostics.
	Logger *slog.Logger

	// Out receives status lines; defaults to stderr.
	Out io.Writer
}

// DefaultOptions returns the defaults used by the watch command.
func DefaultOptions() Options {
	return Options{
		Debounce: 500 * time.Millisecond,
		Logger:   slog.Default(),
		Out:      os.Stderr,
	}
}

// Run watches the configured files and reruns the pipeline on every
// change. It blocks until ctx is cancelled or SIGINT/SIGTERM arrives.
func Run(ctx context.Context, opts Options, runFn RunFunc) error {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	if opts.Out == nil {
		opts.Out = io.Discard
	}

	if len(opts.Files) == 0 {
		return fmt.Errorf("no files to watch")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	watched, err := addSources(watcher, opts.Files)
	if err != nil {
		return err
	}

	// A signal cancels sigCtx, which drains the loop below.
	sigCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(opts.Out, "watching %s (debounce=%s, verify=%t)\n",
		strings.Join(opts.Files, ", "), opts.Debounce, opts.Verify)

	doRun(sigCtx, opts, runFn, "(initial)")

	debouncer := NewDebouncer(opts.Debounce, func(path string, events int) {
		trigger := path
		if events > 1 {
			trigger = fmt.Sprintf("%s (%d events)", path, events)
		}

		doRun(sigCtx, opts, runFn, trigger)
	})
	defer debouncer.Stop()

	for {
		select {
		case <-sigCtx.Done():
			fmt.Fprintln(opts.Out, "\nshutting down watcher")
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if !isRelevant(event) {
				continue
			}

			// Only events on the watched files themselves count; the
			// watcher sees every change in their parent directories.
			if !watched[filepath.Clean(event.Name)] {
				continue
			}

			debouncer.Trigger(event.Name)

		case watchErr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}

			opts.Logger.Error("watcher error", slog.String("error", watchErr.Error()))
		}
	}
}

// doRun executes a single pipeline run and prints the status line.
func doRun(ctx context.Context, opts Options, runFn RunFunc, trigger string) {
	now := time.Now().Format("15:04:05")

	result, err := runFn(ctx)
	if err != nil {
		fmt.Fprintf(opts.Out, "[%s] %s → ERROR: %v\n", now, trigger, err)
		return
	}

	fmt.Fprintf(opts.Out, "[%s] %s → OK (%d lines, %d dropped)\n",
		now, trigger, result.Lines, result.Dropped)

	// Auto-verify (when enabled and a verify function is provided).
	if opts.Verify && opts.VerifyFn != nil && result.OutputPath != "" {
		if verifyErr := opts.VerifyFn(ctx, result.OutputPath); verifyErr != nil {
			fmt.Fprintf(opts.Out, "  verify: FAILED: %v\n", verifyErr)
			return
		}

		fmt.Fprintf(opts.Out, "  verify: OK\n")
	}
}

// addSources watches the parent directory of every file and returns the
// set of absolute paths whose events should trigger a rerun. Watching the
// directory keeps events flowing when an editor replaces the file on save.
func addSources(watcher *fsnotify.Watcher, files []string) (map[string]bool, error) {
	watched := make(map[string]bool, len(files))
	dirs := make(map[string]bool)

	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			return nil, fmt.Errorf("resolving file %q: %w", f, err)
		}

		watched[filepath.Clean(abs)] = true

		dir := filepath.Dir(abs)
		if dirs[dir] {
			continue
		}

		if err := watcher.Add(dir); err != nil {
			return nil, fmt.Errorf("watching directory %q: %w", dir, err)
		}

		dirs[dir] = true
	}

	return watched, nil
}

// isRelevant filters out events that should never trigger a rerun.
func isRelevant(event fsnotify.Event) bool {
	// Chmod-only events carry no content change.
	const ops = fsnotify.Write | fsnotify.Create | fsnotify.Remove | fsnotify.Rename
	if event.Op&ops == 0 {
		return false
	}

	// Swap files, backups and hidden files are editor noise.
	name := filepath.Base(event.Name)
	if strings.HasPrefix(name, ".") || strings.HasPrefix(name, "#") ||
		strings.HasSuffix(name, "~") || strings.HasSuffix(name, ".swp") {
		return false
	}

	return true
}
