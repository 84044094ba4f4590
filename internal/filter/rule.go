package filter

import "bytes"

// The filter rule is fixed: neither the keyword nor the preserved module
// reference is configurable.
const (
	// importPrefix marks a line as an import declaration. The test is a
	// plain prefix check on the raw line; an indented import does not
	// match and always passes through.
	importPrefix = "import"

	// preservedImport retains an import declaration when it appears
	// anywhere in the line.
	preservedImport = "import Foundation"
)

// Verdict is the outcome of evaluating a single line.
type Verdict int

const (
	// VerdictPass means the line is not an import declaration and is
	// emitted unchanged.
	VerdictPass Verdict = iota
	// VerdictPreserve means the line is an import declaration kept
	// because it references Foundation.
	VerdictPreserve
	// VerdictDrop means the line is an unwanted import declaration and
	// produces no output.
	VerdictDrop
)

// String returns a human-readable name for the verdict.
func (v Verdict) String() string {
	switch v {
	case VerdictPass:
		return "pass"
	case VerdictPreserve:
		return "preserve"
	case VerdictDrop:
		return "drop"
	default:
		return "unknown"
	}
}

// Keep reports whether a line with this verdict is written to output.
func (v Verdict) Keep() bool {
	return v != VerdictDrop
}

// Evaluate applies the keep/drop rule to a single line. The decision is
// stateless: no line affects the verdict of any other line.
//
// A line whose raw content starts with "import" is dropped unless it
// contains "import Foundation" anywhere; every other line passes. The
// containment test is substring matching, not a structural parse, so
// "import FooFoundation, import Foundation" is preserved.
func Evaluate(l Line) Verdict {
	content := l.Content()

	if !bytes.HasPrefix(content, []byte(importPrefix)) {
		return VerdictPass
	}

	if bytes.Contains(content, []byte(preservedImport)) {
		return VerdictPreserve
	}

	return VerdictDrop
}
