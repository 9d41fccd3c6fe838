package decode

import (
	"net"

	"github.com/wiresock/netwatch/cursor"
	"github.com/wiresock/netwatch/stats"
)

const (
	extHopByHop    = 0
	extRouting     = 43
	extFragment    = 44
	extDestOptions = 60

	maxExtHeaderIterations = 64
	maxExtHeaderBytes      = 2048
)

// IPv6Record describes one decoded IPv6 fixed header. NextHdr is the value
// of the fixed header's own next_header field, which may name an extension
// header rather than the final transport protocol.
type IPv6Record struct {
	Src, Dst   net.IP
	HopLimit   uint8
	NextHdr    uint8
	PayloadLen int
}

func (r *IPv6Record) Kind() string { return "ipv6" }

// DecodeIPv6 reads the 40-byte fixed header, walks any extension headers to
// find the final transport protocol, and dispatches to its decoder.
func DecodeIPv6(cur *cursor.Cursor, reg *stats.Registry, emit Sink) error {
	if _, err := cur.U32(); err != nil { // version/traffic class/flow label
		return err
	}
	payloadLength, err := cur.U16()
	if err != nil {
		return err
	}
	nextHeader, err := cur.U8()
	if err != nil {
		return err
	}
	hopLimit, err := cur.U8()
	if err != nil {
		return err
	}
	srcBytes, err := cur.Bytes(16)
	if err != nil {
		return err
	}
	dstBytes, err := cur.Bytes(16)
	if err != nil {
		return err
	}

	clamped := int(payloadLength)
	if clamped > cur.Len() {
		clamped = cur.Len()
	}
	payload, err := cur.Bytes(clamped)
	if err != nil {
		return err
	}

	record := &IPv6Record{
		Src:        net.IP(append([]byte(nil), srcBytes...)),
		Dst:        net.IP(append([]byte(nil), dstBytes...)),
		HopLimit:   hopLimit,
		NextHdr:    nextHeader,
		PayloadLen: clamped,
	}
	emit(record)

	payloadCur := cursor.New(payload)
	transport, err := walkIPv6Extensions(payloadCur, nextHeader)
	if err != nil {
		return err
	}

	return dispatchTransport(transport, record.Src, record.Dst, payloadCur, reg, emit)
}

// walkIPv6Extensions advances cur past any chained extension headers and
// returns the final transport protocol (TCP, UDP, or ICMPv6). It enforces
// every invariant spec.md names: each header is at least 8 bytes, does not
// exceed the 2048-byte ceiling or the remaining buffer, the cursor strictly
// advances every iteration, and the walk never exceeds 64 iterations.
func walkIPv6Extensions(cur *cursor.Cursor, nextHeader uint8) (uint8, error) {
	for i := 0; i < maxExtHeaderIterations; i++ {
		switch nextHeader {
		case protoTCP, protoUDP, protoICMPv6:
			return nextHeader, nil

		case extFragment:
			start := cur.Pos()
			if cur.Len() < 8 {
				return 0, &MalformedIPv6Chain{Reason: "fragment header shorter than 8 bytes"}
			}
			nh, err := cur.U8()
			if err != nil {
				return 0, err
			}
			if err := cur.Skip(7); err != nil {
				return 0, err
			}
			if cur.Pos() <= start {
				return 0, &MalformedIPv6Chain{Reason: "cursor did not advance"}
			}
			nextHeader = nh

		default: // Hop-by-Hop, Routing, Destination Options, or unknown best-effort
			start := cur.Pos()
			if cur.Len() < 2 {
				return 0, &MalformedIPv6Chain{Reason: "extension header shorter than 2 bytes"}
			}
			nh, err := cur.U8()
			if err != nil {
				return 0, err
			}
			hdrExtLen, err := cur.U8()
			if err != nil {
				return 0, err
			}
			hdrLen := (int(hdrExtLen) + 1) * 8
			if hdrLen < 8 || hdrLen > maxExtHeaderBytes {
				return 0, &MalformedIPv6Chain{Reason: "header length out of bounds"}
			}
			toSkip := hdrLen - 2
			if toSkip > cur.Len() {
				return 0, &MalformedIPv6Chain{Reason: "header length exceeds captured buffer"}
			}
			if err := cur.Skip(toSkip); err != nil {
				return 0, err
			}
			if cur.Pos() <= start {
				return 0, &MalformedIPv6Chain{Reason: "cursor did not advance"}
			}
			nextHeader = nh
		}
	}
	return 0, &MalformedIPv6Chain{Reason: "exceeded 64 iterations"}
}
