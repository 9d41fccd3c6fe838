package decode

import (
	"net"

	"github.com/wiresock/netwatch/cursor"
	"github.com/wiresock/netwatch/stats"
)

// TLSContentType names a TLS record's content type byte.
type TLSContentType uint8

const (
	TLSChangeCipherSpec TLSContentType = 20
	TLSAlert            TLSContentType = 21
	TLSHandshake        TLSContentType = 22
	TLSApplicationData  TLSContentType = 23
)

func (t TLSContentType) String() string {
	switch t {
	case TLSChangeCipherSpec:
		return "ChangeCipherSpec"
	case TLSAlert:
		return "Alert"
	case TLSHandshake:
		return "Handshake"
	case TLSApplicationData:
		return "ApplicationData"
	default:
		return "Unknown"
	}
}

// TLSVersion names the two-byte record-layer version field.
type TLSVersion uint16

func (v TLSVersion) String() string {
	switch v {
	case 0x0301:
		return "TLS 1.0"
	case 0x0302:
		return "TLS 1.1"
	case 0x0303:
		return "TLS 1.2"
	case 0x0304:
		return "TLS 1.3"
	default:
		return "Unknown"
	}
}

// TLSRecordInfo describes one recognized TLS record header. No SNI or
// further handshake extraction is attempted.
type TLSRecordInfo struct {
	Src, Dst         net.IP
	SrcPort, DstPort uint16
	ContentType      TLSContentType
	Version          TLSVersion
	Length           int
}

func (r *TLSRecordInfo) Kind() string { return "tls" }

// DecodeTLS requires a 5-byte record header and clamps the declared length
// to the remaining payload. Bumps the HTTPS counter exactly once, since it
// is only invoked for a non-empty payload.
func DecodeTLS(payload []byte, src net.IP, srcPort uint16, dst net.IP, dstPort uint16, reg *stats.Registry, emit Sink) error {
	cur := cursor.New(payload)

	contentType, err := cur.U8()
	if err != nil {
		return err
	}
	version, err := cur.U16()
	if err != nil {
		return err
	}
	length, err := cur.U16()
	if err != nil {
		return err
	}

	clamped := int(length)
	if clamped > cur.Len() {
		clamped = cur.Len()
	}

	reg.Increment(stats.TagHTTPS)
	emit(&TLSRecordInfo{
		Src: src, SrcPort: srcPort, Dst: dst, DstPort: dstPort,
		ContentType: TLSContentType(contentType),
		Version:     TLSVersion(version),
		Length:      clamped,
	})
	return nil
}
