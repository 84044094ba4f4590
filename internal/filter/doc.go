// Package filter implements the line filter at the core of stripimports:
// a per-line keep/drop decision that removes import declarations from
// generated source text while preserving lines referencing Foundation.
//
// The package is built around the [Line] value type, the [Evaluate] rule,
// and the streaming [Processor], which copies kept lines byte-for-byte
// from a reader to a writer.
package filter
