package emit

import (
	"fmt"
	"strings"

	"github.com/wiresock/netwatch/decode"
)

// Record renders one decoded record as the stable line(s) described by the
// emitted-line-format contract. Unrecognized record types are ignored.
func (e *Emitter) Record(rec decode.Record) {
	switch r := rec.(type) {
	case *decode.EthernetRecord:
		e.Linef(LevelInfo, "[Ethernet] Src MAC %s, Dst MAC %s, Type 0x%04x", r.Src, r.Dst, r.EtherType)

	case *decode.IPv4Record:
		line := fmt.Sprintf("IPv4: %s -> %s, TTL=%d, Proto=%d, Len=%d", r.Src, r.Dst, r.TTL, r.Proto, r.Len)
		if r.MF || r.FragOffset != 0 {
			line += fmt.Sprintf("  [fragment MF offset=%d]", r.FragOffset)
		}
		e.Line(LevelInfo, line)
		if r.Warn != nil {
			e.Linef(LevelWarn, "IPv4: %v", r.Warn)
		}

	case *decode.IPv6Record:
		e.Linef(LevelInfo, "IPv6: %s -> %s, HopLimit=%d, NextHdr=%d, PayloadLen=%d",
			r.Src, r.Dst, r.HopLimit, r.NextHdr, r.PayloadLen)

	case *decode.ARPRecord:
		if r.Unsupported {
			e.Linef(LevelInfo, "ARP: Unsupported (hwtype=%d, ptype=0x%04x)", r.HardwareType, r.ProtocolType)
			return
		}
		e.Linef(LevelInfo, "ARP: %s", r.Op)
		e.Linef(LevelInfo, "  Sender: %s (%s)", r.SenderIP, r.SenderMAC)
		e.Linef(LevelInfo, "  Target: %s (%s)", r.TargetIP, r.TargetMAC)

	case *decode.ICMPv4Record:
		if r.HasID {
			e.Linef(LevelInfo, "ICMPv4: Type=%d, Code=%d, ID=%d, Seq=%d", r.Type, r.Code, r.ID, r.Seq)
		} else {
			e.Linef(LevelInfo, "ICMPv4: Type=%d, Code=%d", r.Type, r.Code)
		}

	case *decode.ICMPv6Record:
		if r.HasID {
			e.Linef(LevelInfo, "ICMPv6: Type=%d, Code=%d, ID=%d, Seq=%d", r.Type, r.Code, r.ID, r.Seq)
		} else {
			e.Linef(LevelInfo, "ICMPv6: Type=%d, Code=%d", r.Type, r.Code)
		}

	case *decode.TCPRecord:
		flags := renderTCPFlags(r.Flags)
		e.Linef(LevelInfo, "TCP: %s:%d -> %s:%d, Seq=%d Ack=%d, Win=%d [%s]",
			r.Src, r.SrcPort, r.Dst, r.DstPort, r.Seq, r.Ack, r.Window, flags)

	case *decode.UDPRecord:
		e.Linef(LevelInfo, "UDP: %s:%d -> %s:%d, Len=%d", r.Src, r.SrcPort, r.Dst, r.DstPort, r.Len)
		if r.Warn != nil {
			e.Linef(LevelWarn, "UDP: %v", r.Warn)
		}

	case *decode.DNSMessage:
		e.dnsRecord(r)

	case *decode.DHCPMessage:
		e.dhcpRecord(r)

	case *decode.HTTPRecord:
		e.Linef(LevelInfo, "[HTTP] %s:%d -> %s:%d | %s", r.Src, r.SrcPort, r.Dst, r.DstPort, r.FirstLine)
		if r.Host != "" {
			e.Linef(LevelInfo, "  Host: %s", r.Host)
		}

	case *decode.TLSRecordInfo:
		e.Linef(LevelInfo, "HTTPS: %s:%d -> %s:%d, TLS Record: %s, Version=%s, Length=%d",
			r.Src, r.SrcPort, r.Dst, r.DstPort, r.ContentType, r.Version, r.Length)

	case *decode.Unsupported:
		e.Linef(LevelDebug, "Unsupported %s dispatch value %d", r.Layer, r.Value)
	}
}

var tcpFlagOrder = []struct {
	name string
	get  func(decode.TCPFlags) bool
}{
	{"CWR", func(f decode.TCPFlags) bool { return f.CWR }},
	{"ECE", func(f decode.TCPFlags) bool { return f.ECE }},
	{"URG", func(f decode.TCPFlags) bool { return f.URG }},
	{"ACK", func(f decode.TCPFlags) bool { return f.ACK }},
	{"PSH", func(f decode.TCPFlags) bool { return f.PSH }},
	{"RST", func(f decode.TCPFlags) bool { return f.RST }},
	{"SYN", func(f decode.TCPFlags) bool { return f.SYN }},
	{"FIN", func(f decode.TCPFlags) bool { return f.FIN }},
}

func renderTCPFlags(f decode.TCPFlags) string {
	var b strings.Builder
	for _, entry := range tcpFlagOrder {
		if entry.get(f) {
			b.WriteString(entry.name)
			b.WriteByte(' ')
		}
	}
	return b.String()
}

func (e *Emitter) dnsRecord(r *decode.DNSMessage) {
	kind := "Response"
	if !r.QR {
		kind = "Query"
	}
	e.Linef(LevelInfo, "DNS: %s (ID=0x%04x)", kind, r.ID)

	var flagNames []string
	if r.AA {
		flagNames = append(flagNames, "AA")
	}
	if r.TC {
		flagNames = append(flagNames, "TC")
	}
	if r.RD {
		flagNames = append(flagNames, "RD")
	}
	if r.RA {
		flagNames = append(flagNames, "RA")
	}
	if r.AD {
		flagNames = append(flagNames, "AD")
	}
	if r.CD {
		flagNames = append(flagNames, "CD")
	}
	e.Linef(LevelInfo, "Flags: %s", strings.Join(flagNames, " "))
	e.Linef(LevelInfo, "Questions: %d, Answers: %d, Authority: %d, Additional: %d",
		r.QDCount, r.ANCount, r.NSCount, r.ARCount)

	for _, q := range r.Questions {
		e.Linef(LevelInfo, "  Question: %s (Type=%d, Class=%d)", q.Name, q.Type, q.Class)
	}
	for _, a := range r.Answers {
		e.Linef(LevelInfo, "  Answer: %s (Type=%d, Class=%d, TTL=%d) %s", a.Name, a.Type, a.Class, a.TTL, a.Rendered)
	}
	if r.Warn != nil {
		e.Linef(LevelWarn, "DNS: %v", r.Warn)
	}
}

func (e *Emitter) dhcpRecord(r *decode.DHCPMessage) {
	op := "Unknown"
	switch r.Op {
	case 1:
		op = "Request"
	case 2:
		op = "Reply"
	}
	e.Linef(LevelInfo, "DHCP: %s:%d -> %s:%d, Op=%s, Type=%s, XID=0x%08x",
		r.Src, r.SrcPort, r.Dst, r.DstPort, op, r.MessageType, r.XID)
	if r.Warn != nil {
		e.Linef(LevelWarn, "DHCP: %v", r.Warn)
	}
}
