// Package frame defines the immutable captured-frame type shared by the
// capture pipeline and the decoders.
package frame

import "time"

// Frame is an owned copy of one captured link-layer PDU plus capture
// metadata. The capture pipeline copies bytes out of the capture library's
// callback buffer before constructing a Frame, so a Frame's Data is safe to
// hold past the callback's lifetime.
type Frame struct {
	// Data is the captured bytes, possibly shorter than WireLen when the
	// capture source's snaplen truncated the frame.
	Data []byte

	// WireLen is the original length of the frame on the wire, which may
	// exceed len(Data).
	WireLen int

	// Timestamp is the capture time reported by the capture source.
	Timestamp time.Time
}

// Truncated reports whether the capture was shorter than the frame as seen
// on the wire.
func (f *Frame) Truncated() bool { return len(f.Data) < f.WireLen }
