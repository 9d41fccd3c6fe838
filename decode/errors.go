package decode

import "fmt"

// InvalidHeaderLength is returned when a variable-length header field (IPv4
// IHL, TCP data offset) falls outside its legal range.
type InvalidHeaderLength struct {
	Value int
}

func (e *InvalidHeaderLength) Error() string {
	return fmt.Sprintf("invalid header length: %d", e.Value)
}

// InvalidLengthField is returned when a declared length field disagrees
// with the captured slice. Callers that see this error still get a Record
// back — the payload is clamped, not rejected — so this is informational,
// not a decode-stopping failure.
type InvalidLengthField struct {
	Declared int
	Have     int
}

func (e *InvalidLengthField) Error() string {
	return fmt.Sprintf("declared length %d inconsistent with captured %d bytes", e.Declared, e.Have)
}

// UnsupportedEtherType describes an Ethernet EtherType with no decoder.
// DecodeEthernet does not return it; it emits an Unsupported record instead.
type UnsupportedEtherType struct {
	Value uint16
}

func (e *UnsupportedEtherType) Error() string {
	return fmt.Sprintf("unsupported ethertype 0x%04x", e.Value)
}

// UnsupportedProtocol describes an IPv4/IPv6 protocol number with no
// transport decoder. The IP decoders do not return it; they emit an
// Unsupported record instead.
type UnsupportedProtocol struct {
	Value uint8
}

func (e *UnsupportedProtocol) Error() string {
	return fmt.Sprintf("unsupported protocol %d", e.Value)
}

// MalformedIPv6Chain is returned when the extension-header walker observes
// an invariant violation: a header length outside bounds, a cursor that
// fails to advance, or more than the iteration ceiling of chained headers.
type MalformedIPv6Chain struct {
	Reason string
}

func (e *MalformedIPv6Chain) Error() string {
	return "malformed ipv6 extension header chain: " + e.Reason
}

// MalformedName is returned when a DNS name fails to decode: an
// out-of-range or self-referencing compression pointer, an oversized
// label, or more than the pointer-traversal ceiling.
type MalformedName struct {
	Reason string
}

func (e *MalformedName) Error() string {
	return "malformed dns name: " + e.Reason
}

// MalformedOption records a DHCP option TLV problem — either structural
// (runs out of bounds) or semantic (wrong length/range for its code).
// Earlier and later options in the same walk are parsed independently of
// this error; only a structural problem stops the walk.
type MalformedOption struct {
	Reason string
}

func (e *MalformedOption) Error() string {
	return "malformed dhcp option: " + e.Reason
}
