package decode

import (
	"net"

	"github.com/wiresock/netwatch/cursor"
	"github.com/wiresock/netwatch/stats"
)

const (
	etherTypeIPv4 = 0x0800
	etherTypeIPv6 = 0x86DD
	etherTypeARP  = 0x0806
)

// EthernetRecord describes one decoded Ethernet II header.
type EthernetRecord struct {
	Dst       net.HardwareAddr
	Src       net.HardwareAddr
	EtherType uint16
}

func (r *EthernetRecord) Kind() string { return "ethernet" }

// DecodeEthernet reads the 14-byte Ethernet header from cur and dispatches
// to the network-layer decoder indicated by EtherType. Reading its own
// header fails only with *cursor.Truncated, on frames shorter than 14
// bytes; an error from the network-layer decoder is returned as is.
func DecodeEthernet(cur *cursor.Cursor, reg *stats.Registry, emit Sink) error {
	dst, err := cur.Bytes(6)
	if err != nil {
		return err
	}
	src, err := cur.Bytes(6)
	if err != nil {
		return err
	}
	etherType, err := cur.U16()
	if err != nil {
		return err
	}

	reg.Increment(stats.TagEthernet)
	emit(&EthernetRecord{
		Dst:       net.HardwareAddr(append([]byte(nil), dst...)),
		Src:       net.HardwareAddr(append([]byte(nil), src...)),
		EtherType: etherType,
	})

	switch etherType {
	case etherTypeIPv4:
		reg.Increment(stats.TagIPv4)
		return DecodeIPv4(cur, reg, emit)
	case etherTypeIPv6:
		reg.Increment(stats.TagIPv6)
		return DecodeIPv6(cur, reg, emit)
	case etherTypeARP:
		reg.Increment(stats.TagARP)
		return DecodeARP(cur, reg, emit)
	default:
		emit(&Unsupported{Layer: "ethernet", Value: uint32(etherType)})
		return nil
	}
}
