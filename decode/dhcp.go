package decode

import (
	"fmt"
	"net"

	"github.com/wiresock/netwatch/cursor"
)

const (
	dhcpMagicCookie  = 0x63825363
	dhcpFixedHdrLen  = 236
	dhcpOptionsStart = 240
	maxCHAddrLen     = 16
)

// DHCPMsgType names the message-type option's decoded value (option 53).
type DHCPMsgType int

const (
	DHCPMsgUnknown DHCPMsgType = iota
	DHCPDiscover
	DHCPOffer
	DHCPRequest
	DHCPDecline
	DHCPAck
	DHCPNak
	DHCPRelease
	DHCPInform
)

func (t DHCPMsgType) String() string {
	switch t {
	case DHCPDiscover:
		return "DISCOVER"
	case DHCPOffer:
		return "OFFER"
	case DHCPRequest:
		return "REQUEST"
	case DHCPDecline:
		return "DECLINE"
	case DHCPAck:
		return "ACK"
	case DHCPNak:
		return "NAK"
	case DHCPRelease:
		return "RELEASE"
	case DHCPInform:
		return "INFORM"
	default:
		return "UNKNOWN"
	}
}

// DHCPMessage describes one decoded DHCP message: the fixed BOOTP header
// plus the recognized subset of option TLVs.
type DHCPMessage struct {
	Src, Dst         net.IP
	SrcPort, DstPort uint16

	Op       uint8
	HType    uint8
	HLen     uint8
	Hops     uint8
	XID      uint32
	Secs     uint16
	Broadcast bool

	ClientIP  net.IP
	YourIP    net.IP
	ServerIP  net.IP
	GatewayIP net.IP
	ClientHW  net.HardwareAddr

	SubnetMask       net.IP
	Router           net.IP
	DNSServer        net.IP
	Hostname         string
	RequestedIP      net.IP
	LeaseSeconds     uint32
	HasLeaseSeconds  bool
	MessageType      DHCPMsgType
	ServerIdentifier net.IP

	Warn error
}

func (m *DHCPMessage) Kind() string { return "dhcp" }

func zeroIP(b []byte) bool {
	for _, v := range b {
		if v != 0 {
			return false
		}
	}
	return true
}

func ipOrNil(b []byte) net.IP {
	if zeroIP(b) {
		return nil
	}
	return net.IP(append([]byte(nil), b...))
}

// DecodeDHCP requires a 236-byte fixed header followed by a 4-byte magic
// cookie, then walks option TLVs starting at offset 240. An option whose
// value fails its own length/range check is skipped, with Warn recording
// the last such failure, but the walk continues over the remaining
// options; only a structural TLV problem (missing length byte, or a value
// running past the options buffer) stops the walk early.
func DecodeDHCP(payload []byte, src net.IP, srcPort uint16, dst net.IP, dstPort uint16, emit Sink) error {
	cur := cursor.New(payload)

	op, err := cur.U8()
	if err != nil {
		return err
	}
	htype, err := cur.U8()
	if err != nil {
		return err
	}
	hlen, err := cur.U8()
	if err != nil {
		return err
	}
	hops, err := cur.U8()
	if err != nil {
		return err
	}
	xid, err := cur.U32()
	if err != nil {
		return err
	}
	secs, err := cur.U16()
	if err != nil {
		return err
	}
	flags, err := cur.U16()
	if err != nil {
		return err
	}
	ciaddr, err := cur.Bytes(4)
	if err != nil {
		return err
	}
	yiaddr, err := cur.Bytes(4)
	if err != nil {
		return err
	}
	siaddr, err := cur.Bytes(4)
	if err != nil {
		return err
	}
	giaddr, err := cur.Bytes(4)
	if err != nil {
		return err
	}
	chaddr, err := cur.Bytes(16)
	if err != nil {
		return err
	}
	if _, err := cur.Bytes(64); err != nil { // sname, unused
		return err
	}
	if _, err := cur.Bytes(128); err != nil { // file, unused
		return err
	}
	cookie, err := cur.U32()
	if err != nil {
		return err
	}
	if cookie != dhcpMagicCookie {
		return fmt.Errorf("dhcp: bad magic cookie 0x%08x", cookie)
	}

	effHLen := int(hlen)
	if effHLen > maxCHAddrLen {
		effHLen = maxCHAddrLen
	}

	msg := &DHCPMessage{
		Src: src, SrcPort: srcPort, Dst: dst, DstPort: dstPort,
		Op: op, HType: htype, HLen: hlen, Hops: hops,
		XID: xid, Secs: secs, Broadcast: flags&0x8000 != 0,
		ClientIP: ipOrNil(ciaddr), YourIP: ipOrNil(yiaddr),
		ServerIP: ipOrNil(siaddr), GatewayIP: ipOrNil(giaddr),
		ClientHW: net.HardwareAddr(append([]byte(nil), chaddr[:effHLen]...)),
	}

	walkDHCPOptions(cur, msg)

	emit(msg)
	return nil
}

func walkDHCPOptions(cur *cursor.Cursor, msg *DHCPMessage) {
	for {
		code, err := cur.U8()
		if err != nil {
			return
		}
		if code == 0 {
			continue // pad
		}
		if code == 255 {
			return // end
		}

		length, err := cur.U8()
		if err != nil {
			msg.Warn = &MalformedOption{Reason: "length byte missing"}
			return
		}
		value, err := cur.Bytes(int(length))
		if err != nil {
			msg.Warn = &MalformedOption{Reason: "value runs past end of options"}
			return
		}

		switch code {
		case 1: // subnet mask
			if len(value) != 4 {
				msg.Warn = &MalformedOption{Reason: "subnet mask option length != 4"}
				continue
			}
			msg.SubnetMask = net.IP(append([]byte(nil), value...))
		case 3: // router
			if len(value) < 4 {
				msg.Warn = &MalformedOption{Reason: "router option shorter than 4 bytes"}
				continue
			}
			msg.Router = net.IP(append([]byte(nil), value[:4]...))
		case 6: // dns server
			if len(value) < 4 {
				msg.Warn = &MalformedOption{Reason: "dns server option shorter than 4 bytes"}
				continue
			}
			msg.DNSServer = net.IP(append([]byte(nil), value[:4]...))
		case 12: // hostname
			if len(value) >= 256 {
				msg.Warn = &MalformedOption{Reason: "hostname option too long"}
				continue
			}
			msg.Hostname = string(value)
		case 50: // requested IP
			if len(value) != 4 {
				msg.Warn = &MalformedOption{Reason: "requested IP option length != 4"}
				continue
			}
			msg.RequestedIP = net.IP(append([]byte(nil), value...))
		case 51: // lease time
			if len(value) != 4 {
				msg.Warn = &MalformedOption{Reason: "lease time option length != 4"}
				continue
			}
			msg.LeaseSeconds = uint32(value[0])<<24 | uint32(value[1])<<16 | uint32(value[2])<<8 | uint32(value[3])
			msg.HasLeaseSeconds = true
		case 53: // message type
			if len(value) != 1 || value[0] < 1 || value[0] > 8 {
				msg.Warn = &MalformedOption{Reason: "message type option invalid"}
				continue
			}
			msg.MessageType = DHCPMsgType(value[0])
		case 54: // server identifier
			if len(value) != 4 {
				msg.Warn = &MalformedOption{Reason: "server identifier option length != 4"}
				continue
			}
			msg.ServerIdentifier = net.IP(append([]byte(nil), value...))
		}
	}
}
