package decode

import "github.com/wiresock/netwatch/cursor"

// ICMPv4Record describes one decoded ICMPv4 header.
type ICMPv4Record struct {
	Type   uint8
	Code   uint8
	HasID  bool
	ID     uint16
	Seq    uint16
}

func (r *ICMPv4Record) Kind() string { return "icmpv4" }

// DecodeICMPv4 requires an 8-byte header. Echo request/reply (types 8/0)
// additionally carry an identifier and sequence number.
func DecodeICMPv4(cur *cursor.Cursor, emit Sink) error {
	if cur.Len() < 8 {
		return &cursor.Truncated{Need: 8, Have: cur.Len()}
	}
	typ, err := cur.U8()
	if err != nil {
		return err
	}
	code, err := cur.U8()
	if err != nil {
		return err
	}
	if _, err := cur.U16(); err != nil { // checksum, unused
		return err
	}

	rec := &ICMPv4Record{Type: typ, Code: code}
	if typ == 0 || typ == 8 {
		id, err := cur.U16()
		if err != nil {
			return err
		}
		seq, err := cur.U16()
		if err != nil {
			return err
		}
		rec.HasID = true
		rec.ID = id
		rec.Seq = seq
	}
	emit(rec)
	return nil
}

// ICMPv6Kind names the high-level category an ICMPv6 message falls into,
// for rendering purposes.
type ICMPv6Kind int

const (
	ICMPv6KindOther ICMPv6Kind = iota
	ICMPv6KindDestUnreachable
	ICMPv6KindTimeExceeded
	ICMPv6KindRouterSolicit
	ICMPv6KindRouterAdvert
	ICMPv6KindNeighborSolicit
	ICMPv6KindNeighborAdvert
	ICMPv6KindEchoRequest
	ICMPv6KindEchoReply
)

// ICMPv6Record describes one decoded ICMPv6 header.
type ICMPv6Record struct {
	Type  uint8
	Code  uint8
	Kind  ICMPv6Kind
	HasID bool
	ID    uint16
	Seq   uint16
}

func (r *ICMPv6Record) Kind() string { return "icmpv6" }

// DecodeICMPv6 requires a 4-byte header. Echo request/reply (types 128/129)
// additionally carry an identifier and sequence number from the following
// 4 bytes.
func DecodeICMPv6(cur *cursor.Cursor, emit Sink) error {
	typ, err := cur.U8()
	if err != nil {
		return err
	}
	code, err := cur.U8()
	if err != nil {
		return err
	}
	if _, err := cur.U16(); err != nil { // checksum, unused
		return err
	}

	rec := &ICMPv6Record{Type: typ, Code: code}
	switch typ {
	case 1:
		rec.Kind = ICMPv6KindDestUnreachable
	case 3:
		rec.Kind = ICMPv6KindTimeExceeded
	case 133:
		rec.Kind = ICMPv6KindRouterSolicit
	case 134:
		rec.Kind = ICMPv6KindRouterAdvert
	case 135:
		rec.Kind = ICMPv6KindNeighborSolicit
	case 136:
		rec.Kind = ICMPv6KindNeighborAdvert
	case 128:
		rec.Kind = ICMPv6KindEchoRequest
	case 129:
		rec.Kind = ICMPv6KindEchoReply
	}

	if typ == 128 || typ == 129 {
		id, err := cur.U16()
		if err != nil {
			return err
		}
		seq, err := cur.U16()
		if err != nil {
			return err
		}
		rec.HasID = true
		rec.ID = id
		rec.Seq = seq
	}
	emit(rec)
	return nil
}
