// Package source resolves and opens the ordered input sources of a
// filter run: named files (optionally gzip- or zstandard-compressed) or
// standard input, with automatic type detection by name.
package source

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/DataDog/zstd"
)

// StdinName is the conventional argument naming standard input.
const StdinName = "-"

// Type identifies how an input source is read.
type Type int

const (
	// TypeStdin reads from standard input.
	TypeStdin Type = iota
	// TypePlain reads an uncompressed file.
	TypePlain
	// TypeGzip reads a gzip-compressed file (.gz).
	TypeGzip
	// TypeZstd reads a zstandard-compressed file (.zst, .zstd).
	TypeZstd
)

// String returns a human-readable name for the source type.
func (t Type) String() string {
	switch t {
	case TypeStdin:
		return "stdin"
	case TypePlain:
		return "plain"
	case TypeGzip:
		return "gzip"
	case TypeZstd:
		return "zstd"
	default:
		return "unknown"
	}
}

// Source is one ordered input of a filter run.
type Source struct {
	// Name is the path as given on the command line, or "-" for stdin.
	Name string
	// Type is the detected source type.
	Type Type
}

// Detect classifies a source reference by its name.
func Detect(ref string) Type {
	switch {
	case ref == "" || ref == StdinName:
		return TypeStdin
	case strings.HasSuffix(ref, ".gz"):
		return TypeGzip
	case strings.HasSuffix(ref, ".zst") || strings.HasSuffix(ref, ".zstd"):
		return TypeZstd
	default:
		return TypePlain
	}
}

// Resolve builds the ordered source sequence from the positional
// command-line arguments. An empty argument list falls back to a single
// standard-input source. Order is preserved exactly as given.
func Resolve(args []string) []Source {
	if len(args) == 0 {
		return []Source{{Name: StdinName, Type: TypeStdin}}
	}

	sources := make([]Source, 0, len(args))
	for _, arg := range args {
		sources = append(sources, Source{Name: arg, Type: Detect(arg)})
	}

	return sources
}

// Open returns a streaming reader for the source, transparently
// decompressing gzip and zstandard files. For stdin sources the given
// reader is used (os.Stdin when nil) and is never closed by the
// returned closer.
func (s Source) Open(stdin io.Reader) (io.ReadCloser, error) {
	if s.Type == TypeStdin {
		if stdin == nil {
			stdin = os.Stdin
		}

		return io.NopCloser(stdin), nil
	}

	f, err := os.Open(s.Name)
	if err != nil {
		return nil, fmt.Errorf("opening source %q: %w", s.Name, err)
	}

	switch s.Type {
	case TypeGzip:
		zr, gzErr := gzip.NewReader(f)
		if gzErr != nil {
			_ = f.Close()
			return nil, fmt.Errorf("opening gzip source %q: %w", s.Name, gzErr)
		}

		return &decompressingReader{r: zr, closers: []io.Closer{zr, f}}, nil
	case TypeZstd:
		zr := zstd.NewReader(f)

		return &decompressingReader{r: zr, closers: []io.Closer{zr, f}}, nil
	default:
		return f, nil
	}
}

// decompressingReader closes the decompressor before the underlying file.
type decompressingReader struct {
	r       io.Reader
	closers []io.Closer
}

func (d *decompressingReader) Read(p []byte) (int, error) {
	return d.r.Read(p)
}

func (d *decompressingReader) Close() error {
	var firstErr error

	for _, c := range d.closers {
		if err := c.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	return firstErr
}
