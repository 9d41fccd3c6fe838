package decode

import (
	"net"

	"github.com/wiresock/netwatch/cursor"
	"github.com/wiresock/netwatch/stats"
)

const (
	minTCPHeaderLen = 20
	maxTCPHeaderLen = 60

	portHTTP = 80
	portTLS  = 443
)

// TCPFlags holds the fixed-order set of TCP control bits. Rendering order
// is CWR ECE URG ACK PSH RST SYN FIN, per the stable emitted-line contract.
type TCPFlags struct {
	CWR, ECE, URG, ACK, PSH, RST, SYN, FIN bool
}

// TCPRecord describes one decoded TCP segment header.
type TCPRecord struct {
	Src, Dst       net.IP
	SrcPort        uint16
	DstPort        uint16
	Seq, Ack       uint32
	Window         uint16
	Flags          TCPFlags
	HeaderLen      int
	PayloadLen     int
}

func (r *TCPRecord) Kind() string { return "tcp" }

// DecodeTCP reads the fixed 20-byte header plus options (data offset
// dependent), then invokes the HTTP or TLS recognizer when either endpoint
// uses the well-known port, but only when the segment carries a non-empty
// payload (an empty segment on port 80/443 bumps no application counter).
func DecodeTCP(cur *cursor.Cursor, src, dst net.IP, reg *stats.Registry, emit Sink) error {
	size := cur.Len()

	srcPort, err := cur.U16()
	if err != nil {
		return err
	}
	dstPort, err := cur.U16()
	if err != nil {
		return err
	}
	seq, err := cur.U32()
	if err != nil {
		return err
	}
	ack, err := cur.U32()
	if err != nil {
		return err
	}
	offsetFlags, err := cur.U16()
	if err != nil {
		return err
	}
	window, err := cur.U16()
	if err != nil {
		return err
	}
	if _, err := cur.U16(); err != nil { // checksum, unused
		return err
	}
	if _, err := cur.U16(); err != nil { // urgent pointer, unused
		return err
	}

	hdrLen := int((offsetFlags>>12)&0x0F) * 4
	maxAllowed := maxTCPHeaderLen
	if size < maxAllowed {
		maxAllowed = size
	}
	if hdrLen < minTCPHeaderLen || hdrLen > maxAllowed {
		return &InvalidHeaderLength{Value: hdrLen}
	}

	if err := cur.Skip(hdrLen - 20); err != nil {
		return err
	}

	flags := TCPFlags{
		CWR: offsetFlags&0x0080 != 0,
		ECE: offsetFlags&0x0040 != 0,
		URG: offsetFlags&0x0020 != 0,
		ACK: offsetFlags&0x0010 != 0,
		PSH: offsetFlags&0x0008 != 0,
		RST: offsetFlags&0x0004 != 0,
		SYN: offsetFlags&0x0002 != 0,
		FIN: offsetFlags&0x0001 != 0,
	}

	payload := cur.Remaining()
	record := &TCPRecord{
		Src: src, Dst: dst,
		SrcPort: srcPort, DstPort: dstPort,
		Seq: seq, Ack: ack,
		Window:     window,
		Flags:      flags,
		HeaderLen:  hdrLen,
		PayloadLen: len(payload),
	}
	emit(record)

	if len(payload) == 0 {
		return nil
	}

	if srcPort == portHTTP || dstPort == portHTTP {
		return DecodeHTTP(payload, src, srcPort, dst, dstPort, reg, emit)
	}
	if srcPort == portTLS || dstPort == portTLS {
		return DecodeTLS(payload, src, srcPort, dst, dstPort, reg, emit)
	}
	return nil
}
