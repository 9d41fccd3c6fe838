package decode

import (
	"net"

	"github.com/wiresock/netwatch/cursor"
	"github.com/wiresock/netwatch/stats"
)

const (
	protoICMPv4 = 1
	protoTCP    = 6
	protoUDP    = 17
	protoICMPv6 = 58
)

// IPv4Record describes one decoded IPv4 base header.
type IPv4Record struct {
	Src, Dst   net.IP
	TTL        uint8
	Proto      uint8
	Len        int
	MF         bool
	FragOffset int
	Warn       error
}

func (r *IPv4Record) Kind() string { return "ipv4" }

// DecodeIPv4 reads the 20-byte IPv4 base header, skips any options, and
// dispatches to the transport decoder named by the protocol field. A
// declared total_length that disagrees with the captured slice is clamped
// and recorded as a warning rather than rejected, since captures may be
// snaplen-truncated.
func DecodeIPv4(cur *cursor.Cursor, reg *stats.Registry, emit Sink) error {
	size := cur.Len()

	verIHL, err := cur.U8()
	if err != nil {
		return err
	}
	if _, err := cur.U8(); err != nil { // DSCP/ECN, unused
		return err
	}
	totalLength, err := cur.U16()
	if err != nil {
		return err
	}
	if _, err := cur.U16(); err != nil { // identification, unused
		return err
	}
	flagsFrag, err := cur.U16()
	if err != nil {
		return err
	}
	ttl, err := cur.U8()
	if err != nil {
		return err
	}
	proto, err := cur.U8()
	if err != nil {
		return err
	}
	if _, err := cur.U16(); err != nil { // header checksum, unused
		return err
	}
	srcBytes, err := cur.Bytes(4)
	if err != nil {
		return err
	}
	dstBytes, err := cur.Bytes(4)
	if err != nil {
		return err
	}

	ihl := int(verIHL&0x0F) * 4
	if ihl < 20 || ihl > size {
		return &InvalidHeaderLength{Value: ihl}
	}
	if err := cur.Skip(ihl - 20); err != nil {
		return err
	}

	var warn error
	clampedTotal := int(totalLength)
	if int(totalLength) < ihl || int(totalLength) > size {
		warn = &InvalidLengthField{Declared: int(totalLength), Have: size}
		clampedTotal = size
	}

	payloadLen := clampedTotal - ihl
	if payloadLen < 0 {
		payloadLen = 0
	}
	if payloadLen > cur.Len() {
		payloadLen = cur.Len()
	}
	payload, err := cur.Bytes(payloadLen)
	if err != nil {
		return err
	}

	record := &IPv4Record{
		Src:        net.IP(append([]byte(nil), srcBytes...)),
		Dst:        net.IP(append([]byte(nil), dstBytes...)),
		TTL:        ttl,
		Proto:      proto,
		Len:        clampedTotal,
		MF:         flagsFrag&0x2000 != 0,
		FragOffset: int(flagsFrag&0x1FFF) * 8,
		Warn:       warn,
	}
	emit(record)

	return dispatchTransport(proto, record.Src, record.Dst, cursor.New(payload), reg, emit)
}

// dispatchTransport invokes the transport decoder named by an IP protocol
// number, bumping that transport's counter beforehand. Shared by IPv4 and
// the IPv6 extension-header walker's final hop.
func dispatchTransport(proto uint8, src, dst net.IP, cur *cursor.Cursor, reg *stats.Registry, emit Sink) error {
	switch proto {
	case protoICMPv4:
		reg.Increment(stats.TagICMP)
		return DecodeICMPv4(cur, emit)
	case protoTCP:
		reg.Increment(stats.TagTCP)
		return DecodeTCP(cur, src, dst, reg, emit)
	case protoUDP:
		reg.Increment(stats.TagUDP)
		return DecodeUDP(cur, src, dst, reg, emit)
	case protoICMPv6:
		reg.Increment(stats.TagICMP)
		return DecodeICMPv6(cur, emit)
	default:
		emit(&Unsupported{Layer: "ip", Value: uint32(proto)})
		return nil
	}
}
