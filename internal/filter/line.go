package filter

import "bytes"

// Line is a single unit of input text. Raw holds the original bytes
// exactly as read, including the trailing line terminator when one was
// present. Lines are immutable values with no identity beyond their
// position in the input stream.
type Line struct {
	// Raw is the original line including its terminator (or lacking one,
	// on a final unterminated line).
	Raw []byte
}

// NewLine wraps raw bytes as a Line. The slice is not copied.
func NewLine(raw []byte) Line {
	return Line{Raw: raw}
}

// Content returns the line without its trailing terminator.
func (l Line) Content() []byte {
	return bytes.TrimSuffix(bytes.TrimSuffix(l.Raw, []byte("\n")), []byte("\r"))
}

// Terminator returns the trailing terminator bytes ("\n", "\r\n", or
// empty for a final unterminated line).
func (l Line) Terminator() []byte {
	return l.Raw[len(l.Content()):]
}

// String returns the line content without its terminator.
func (l Line) String() string {
	return string(l.Content())
}
