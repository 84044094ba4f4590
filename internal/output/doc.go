// Package output provides destinations for filtered text.
//
// The [Sink] interface abstracts where filtered lines go. [StdoutSink]
// streams to standard output (or any io.Writer), while [FileSink] streams
// to a file, creating parent directories as needed and compressing
// transparently when the path carries a .gz, .zst, or .zstd extension.
package output
