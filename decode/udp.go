package decode

import (
	"net"

	"github.com/wiresock/netwatch/cursor"
	"github.com/wiresock/netwatch/stats"
)

const (
	minUDPHeaderLen = 8

	portDNS      = 53
	portDHCPSrv  = 67
	portDHCPCli  = 68
)

// UDPRecord describes one decoded UDP header.
type UDPRecord struct {
	Src, Dst net.IP
	SrcPort  uint16
	DstPort  uint16
	Len      int
	Warn     error
}

func (r *UDPRecord) Kind() string { return "udp" }

// DecodeUDP reads the 8-byte UDP header. A declared length outside
// [8, captured size] is clamped to the captured size and recorded as a
// warning. DNS (port 53) and DHCP (ports 67/68) are dispatched by port.
func DecodeUDP(cur *cursor.Cursor, src, dst net.IP, reg *stats.Registry, emit Sink) error {
	size := cur.Len()

	srcPort, err := cur.U16()
	if err != nil {
		return err
	}
	dstPort, err := cur.U16()
	if err != nil {
		return err
	}
	length, err := cur.U16()
	if err != nil {
		return err
	}
	if _, err := cur.U16(); err != nil { // checksum, unused
		return err
	}

	var warn error
	clamped := int(length)
	if clamped < minUDPHeaderLen || clamped > size {
		warn = &InvalidLengthField{Declared: int(length), Have: size}
		clamped = size
	}

	payloadLen := clamped - minUDPHeaderLen
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

	emit(&UDPRecord{
		Src: src, Dst: dst,
		SrcPort: srcPort, DstPort: dstPort,
		Len:  clamped,
		Warn: warn,
	})

	if srcPort == portDNS || dstPort == portDNS {
		reg.Increment(stats.TagDNS)
		return DecodeDNS(payload, emit)
	}
	if srcPort == portDHCPSrv || dstPort == portDHCPSrv || srcPort == portDHCPCli || dstPort == portDHCPCli {
		reg.Increment(stats.TagDHCP)
		return DecodeDHCP(payload, src, srcPort, dst, dstPort, emit)
	}
	return nil
}
