package output

import (
	"compress/gzip"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/DataDog/zstd"

	"github.com/hupe1980/stripimports/internal/source"
)

// Sink is the interface for filtered output destinations.
type Sink interface {
	// Write streams filtered bytes to the destination.
	Write(p []byte) (int, error)

	// Close flushes buffered data and releases the destination.
	Close() error
}

// StdoutSink streams filtered output to os.Stdout.
type StdoutSink struct {
	out io.Writer
}

// NewStdoutSink creates a sink that streams to the given writer.
// If w is nil, os.Stdout is used.
func NewStdoutSink(w io.Writer) *StdoutSink {
	if w == nil {
		w = os.Stdout
	}

	return &StdoutSink{out: w}
}

// Write sends data to stdout.
func (ss *StdoutSink) Write(p []byte) (int, error) {
	n, err := ss.out.Write(p)
	if err != nil {
		return n, fmt.Errorf("writing to stdout: %w", err)
	}

	return n, nil
}

// Close is a no-op; the underlying stream stays open.
func (ss *StdoutSink) Close() error {
	return nil
}

// FileSink streams filtered output to a file, creating parent directories
// as needed. Paths ending in .gz, .zst, or .zstd are compressed
// transparently.
type FileSink struct {
	path   string
	perm   os.FileMode
	logger *slog.Logger
	file   *os.File
	w      io.Writer
	codec  io.Closer
}

// FileSinkOption configures a FileSink.
type FileSinkOption func(*FileSink)

// WithPermissions overrides the default file permissions (0644).
func WithPermissions(perm os.FileMode) FileSinkOption {
	return func(fs *FileSink) {
		fs.perm = perm
	}
}

// WithLogger sets a logger for the FileSink.
func WithLogger(logger *slog.Logger) FileSinkOption {
	return func(fs *FileSink) {
		fs.logger = logger
	}
}

// NewFileSink creates a sink that streams to the given file path.
func NewFileSink(path string, opts ...FileSinkOption) (*FileSink, error) {
	fs := &FileSink{
		path:   path,
		perm:   0o644,
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(fs)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating directory %s: %w", dir, err)
	}

	// Check if file exists for warning.
	if _, err := os.Stat(path); err == nil {
		fs.logger.Warn("overwriting existing file", slog.String("path", path))
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, fs.perm) //nolint:gosec // path comes from the user
	if err != nil {
		return nil, fmt.Errorf("creating file %s: %w", path, err)
	}

	fs.file = f
	fs.w = f

	switch source.Detect(path) {
	case source.TypeGzip:
		zw := gzip.NewWriter(f)
		fs.w = zw
		fs.codec = zw
	case source.TypeZstd:
		zw := zstd.NewWriter(f)
		fs.w = zw
		fs.codec = zw
	}

	return fs, nil
}

// Write streams data to the file.
func (fs *FileSink) Write(p []byte) (int, error) {
	n, err := fs.w.Write(p)
	if err != nil {
		return n, fmt.Errorf("writing file %s: %w", fs.path, err)
	}

	return n, nil
}

// Close flushes the compression codec, if any, then closes the file.
func (fs *FileSink) Close() error {
	var firstErr error

	if fs.codec != nil {
		if err := fs.codec.Close(); err != nil {
			firstErr = fmt.Errorf("closing codec for %s: %w", fs.path, err)
		}
	}

	if err := fs.file.Close(); err != nil && firstErr == nil {
		firstErr = fmt.Errorf("closing file %s: %w", fs.path, err)
	}

	return firstErr
}

// Path returns the output file path.
func (fs *FileSink) Path() string {
	return fs.path
}
