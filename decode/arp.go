package decode

import (
	"net"

	"github.com/wiresock/netwatch/cursor"
	"github.com/wiresock/netwatch/stats"
)

// ARPOp names the decoded operation code.
type ARPOp int

const (
	ARPOpUnknown ARPOp = iota
	ARPOpRequest
	ARPOpReply
	ARPOpRARPRequest
	ARPOpRARPReply
)

func (op ARPOp) String() string {
	switch op {
	case ARPOpRequest:
		return "ARP Request"
	case ARPOpReply:
		return "ARP Reply"
	case ARPOpRARPRequest:
		return "RARP Request"
	case ARPOpRARPReply:
		return "RARP Reply"
	default:
		return "Unknown"
	}
}

// ARPRecord describes one decoded Ethernet/IPv4 ARP payload.
type ARPRecord struct {
	Op           ARPOp
	SenderMAC    net.HardwareAddr
	SenderIP     net.IP
	TargetMAC    net.HardwareAddr
	TargetIP     net.IP
	Unsupported  bool
	HardwareType uint16
	ProtocolType uint16
}

func (r *ARPRecord) Kind() string { return "arp" }

// DecodeARP reads a 28-byte Ethernet-II/IPv4 ARP payload. Hardware types
// other than Ethernet (1) or protocol types other than IPv4 (0x0800) are
// reported as an informational unsupported record, not an error.
func DecodeARP(cur *cursor.Cursor, reg *stats.Registry, emit Sink) error {
	hwType, err := cur.U16()
	if err != nil {
		return err
	}
	protoType, err := cur.U16()
	if err != nil {
		return err
	}
	hwLen, err := cur.U8()
	if err != nil {
		return err
	}
	protoLen, err := cur.U8()
	if err != nil {
		return err
	}
	opcode, err := cur.U16()
	if err != nil {
		return err
	}
	senderMAC, err := cur.Bytes(6)
	if err != nil {
		return err
	}
	senderIP, err := cur.Bytes(4)
	if err != nil {
		return err
	}
	targetMAC, err := cur.Bytes(6)
	if err != nil {
		return err
	}
	targetIP, err := cur.Bytes(4)
	if err != nil {
		return err
	}
	_ = hwLen
	_ = protoLen

	if hwType != 1 || protoType != 0x0800 {
		emit(&ARPRecord{Unsupported: true, HardwareType: hwType, ProtocolType: protoType})
		return nil
	}

	op := ARPOpUnknown
	switch opcode {
	case 1:
		op = ARPOpRequest
	case 2:
		op = ARPOpReply
	case 3:
		op = ARPOpRARPRequest
	case 4:
		op = ARPOpRARPReply
	}

	emit(&ARPRecord{
		Op:        op,
		SenderMAC: net.HardwareAddr(append([]byte(nil), senderMAC...)),
		SenderIP:  net.IP(append([]byte(nil), senderIP...)),
		TargetMAC: net.HardwareAddr(append([]byte(nil), targetMAC...)),
		TargetIP:  net.IP(append([]byte(nil), targetIP...)),
	})
	return nil
}
