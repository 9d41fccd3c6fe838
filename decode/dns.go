package decode

import (
	"fmt"
	"net"
	"strings"

	"github.com/wiresock/netwatch/cursor"
)

const maxNamePointerJumps = 16

const (
	dnsTypeA     = 1
	dnsTypeNS    = 2
	dnsTypeCNAME = 5
	dnsTypeMX    = 15
	dnsTypePTR   = 12
	dnsTypeTXT   = 16
	dnsTypeAAAA  = 28
)

// DNSQuestion is one parsed question-section entry.
type DNSQuestion struct {
	Name  string
	Type  uint16
	Class uint16
}

// DNSAnswer is one parsed answer-section resource record.
type DNSAnswer struct {
	Name     string
	Type     uint16
	Class    uint16
	TTL      uint32
	RDLength uint16
	Rendered string
}

// DNSMessage describes one decoded DNS message header plus its question and
// answer sections. Authority and additional sections are not decoded.
type DNSMessage struct {
	ID                         uint16
	QR, AA, TC, RD, RA, AD, CD bool
	Opcode                     uint8
	Rcode                      uint8
	QDCount, ANCount           uint16
	NSCount, ARCount           uint16
	Questions                  []DNSQuestion
	Answers                    []DNSAnswer
	Warn                       error
}

func (m *DNSMessage) Kind() string { return "dns" }

// DecodeDNS parses the 12-byte header and the question/answer sections of a
// DNS message. A malformed name anywhere in either section stops decoding
// that message; records already parsed are kept and the message is emitted
// with Warn set.
func DecodeDNS(payload []byte, emit Sink) error {
	cur := cursor.New(payload)

	id, err := cur.U16()
	if err != nil {
		return err
	}
	flags, err := cur.U16()
	if err != nil {
		return err
	}
	qd, err := cur.U16()
	if err != nil {
		return err
	}
	an, err := cur.U16()
	if err != nil {
		return err
	}
	ns, err := cur.U16()
	if err != nil {
		return err
	}
	ar, err := cur.U16()
	if err != nil {
		return err
	}

	msg := &DNSMessage{
		ID:      id,
		QR:      flags&0x8000 != 0,
		Opcode:  uint8((flags >> 11) & 0x0F),
		AA:      flags&0x0400 != 0,
		TC:      flags&0x0200 != 0,
		RD:      flags&0x0100 != 0,
		RA:      flags&0x0080 != 0,
		AD:      flags&0x0020 != 0,
		CD:      flags&0x0010 != 0,
		Rcode:   uint8(flags & 0x000F),
		QDCount: qd,
		ANCount: an,
		NSCount: ns,
		ARCount: ar,
	}

	for i := 0; i < int(qd); i++ {
		name, err := decodeName(cur, payload)
		if err != nil {
			msg.Warn = err
			emit(msg)
			return nil
		}
		qtype, err := cur.U16()
		if err != nil {
			msg.Warn = err
			emit(msg)
			return nil
		}
		qclass, err := cur.U16()
		if err != nil {
			msg.Warn = err
			emit(msg)
			return nil
		}
		msg.Questions = append(msg.Questions, DNSQuestion{Name: name, Type: qtype, Class: qclass})
	}

	for i := 0; i < int(an); i++ {
		name, err := decodeName(cur, payload)
		if err != nil {
			msg.Warn = err
			emit(msg)
			return nil
		}
		typ, err := cur.U16()
		if err != nil {
			msg.Warn = err
			emit(msg)
			return nil
		}
		class, err := cur.U16()
		if err != nil {
			msg.Warn = err
			emit(msg)
			return nil
		}
		ttl, err := cur.U32()
		if err != nil {
			msg.Warn = err
			emit(msg)
			return nil
		}
		rdlen, err := cur.U16()
		if err != nil {
			msg.Warn = err
			emit(msg)
			return nil
		}
		rdataStart := cur.Pos()
		rdata, err := cur.Bytes(int(rdlen))
		if err != nil {
			msg.Warn = err
			emit(msg)
			return nil
		}

		msg.Answers = append(msg.Answers, DNSAnswer{
			Name:     name,
			Type:     typ,
			Class:    class,
			TTL:      ttl,
			RDLength: rdlen,
			Rendered: renderRData(payload, rdataStart, typ, rdata),
		})
	}

	emit(msg)
	return nil
}

// decodeName reads a DNS name starting at cur's current position, following
// at most maxNamePointerJumps compression pointers. cur is left positioned
// just past the first pointer encountered (not past the ultimate target of
// the chain), per the stable parsing contract.
func decodeName(cur *cursor.Cursor, msg []byte) (string, error) {
	name, next, err := decodeNameAt(msg, cur.Pos())
	if err != nil {
		return "", err
	}
	if err := cur.SeekAbs(next); err != nil {
		return "", err
	}
	return name, nil
}

// decodeNameAt decodes a name at an absolute offset into the full DNS
// message, following compression pointers as needed. It returns the offset
// just past the first pointer encountered, or just past the terminating
// zero byte if no pointer was seen.
func decodeNameAt(msg []byte, start int) (string, int, error) {
	if start < 0 || start > len(msg) {
		return "", 0, &MalformedName{Reason: "start offset out of bounds"}
	}

	pos := start
	firstPointerNext := -1
	jumps := 0
	var labels []string

	for {
		if pos >= len(msg) {
			return "", 0, &MalformedName{Reason: "offset out of bounds"}
		}
		b := msg[pos]

		if b&0xC0 == 0xC0 {
			if pos+1 >= len(msg) {
				return "", 0, &MalformedName{Reason: "truncated compression pointer"}
			}
			ptr := (int(b&0x3F) << 8) | int(msg[pos+1])
			if firstPointerNext == -1 {
				firstPointerNext = pos + 2
			}
			if ptr == pos {
				return "", 0, &MalformedName{Reason: "pointer references its own byte"}
			}
			if ptr < 12 {
				return "", 0, &MalformedName{Reason: "pointer targets the message header"}
			}
			if ptr >= len(msg) {
				return "", 0, &MalformedName{Reason: "pointer target out of bounds"}
			}
			jumps++
			if jumps > maxNamePointerJumps {
				return "", 0, &MalformedName{Reason: "exceeded 16 pointer traversals"}
			}
			pos = ptr
			continue
		}

		if b == 0 {
			pos++
			break
		}

		if b > 63 {
			return "", 0, &MalformedName{Reason: "label length exceeds 63"}
		}
		labelStart := pos + 1
		labelEnd := labelStart + int(b)
		if labelEnd > len(msg) {
			return "", 0, &MalformedName{Reason: "label runs past end of message"}
		}
		labels = append(labels, string(msg[labelStart:labelEnd]))
		pos = labelEnd
	}

	next := pos
	if firstPointerNext != -1 {
		next = firstPointerNext
	}
	return strings.Join(labels, "."), next, nil
}

// renderRData formats an answer's rdata per the type-specific rule table.
// absRdataStart is rdata's absolute offset into msg, needed because
// name-bearing rdata (CNAME/NS/PTR/MX) may itself carry compression
// pointers back into the full message.
func renderRData(msg []byte, absRdataStart int, typ uint16, rdata []byte) string {
	switch typ {
	case dnsTypeA:
		if len(rdata) != 4 {
			return fmt.Sprintf("A (invalid length %d)", len(rdata))
		}
		return net.IP(rdata).String()

	case dnsTypeAAAA:
		if len(rdata) != 16 {
			return fmt.Sprintf("AAAA (invalid length %d)", len(rdata))
		}
		return net.IP(rdata).String()

	case dnsTypeCNAME, dnsTypeNS, dnsTypePTR:
		name, _, err := decodeNameAt(msg, absRdataStart)
		if err != nil {
			return fmt.Sprintf("<malformed name: %v>", err)
		}
		return name

	case dnsTypeMX:
		if len(rdata) < 2 {
			return "MX (truncated)"
		}
		pref := uint16(rdata[0])<<8 | uint16(rdata[1])
		name, _, err := decodeNameAt(msg, absRdataStart+2)
		if err != nil {
			return fmt.Sprintf("MX %d <malformed name: %v>", pref, err)
		}
		return fmt.Sprintf("MX %d %s", pref, name)

	case dnsTypeTXT:
		var parts []string
		i := 0
		for i < len(rdata) {
			n := int(rdata[i])
			i++
			if i+n > len(rdata) {
				break
			}
			parts = append(parts, string(rdata[i:i+n]))
			i += n
		}
		return strings.Join(parts, " ")

	default:
		return fmt.Sprintf("type=%d rdlength=%d", typ, len(rdata))
	}
}
