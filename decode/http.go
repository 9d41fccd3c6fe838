package decode

import (
	"bytes"
	"net"

	"github.com/wiresock/netwatch/stats"
)

const maxHTTPLineLen = 512

// HTTPRecord describes the first line of an HTTP request or status line
// found in one TCP segment's payload, plus the Host header if present. No
// further parsing is attempted and no state is kept across segments.
type HTTPRecord struct {
	Src, Dst         net.IP
	SrcPort, DstPort uint16
	FirstLine        string
	Host             string
}

func (r *HTTPRecord) Kind() string { return "http" }

// DecodeHTTP renders the first CRLF-terminated line of payload and
// case-insensitively searches for a Host header. Bumps the HTTP counter
// exactly once, since it is only invoked for a non-empty payload.
func DecodeHTTP(payload []byte, src net.IP, srcPort uint16, dst net.IP, dstPort uint16, reg *stats.Registry, emit Sink) error {
	reg.Increment(stats.TagHTTP)

	line := firstLine(payload)
	if len(line) > maxHTTPLineLen {
		line = line[:maxHTTPLineLen]
	}

	rec := &HTTPRecord{
		Src: src, SrcPort: srcPort, Dst: dst, DstPort: dstPort,
		FirstLine: line,
		Host:      findHostHeader(payload),
	}
	emit(rec)
	return nil
}

func firstLine(payload []byte) string {
	if idx := bytes.Index(payload, []byte("\r\n")); idx >= 0 {
		return string(payload[:idx])
	}
	return string(payload)
}

func findHostHeader(payload []byte) string {
	lower := bytes.ToLower(payload)
	idx := bytes.Index(lower, []byte("host:"))
	if idx < 0 {
		return ""
	}
	rest := payload[idx+len("host:"):]
	end := bytes.Index(rest, []byte("\r\n"))
	if end < 0 {
		end = len(rest)
	}
	return string(bytes.TrimSpace(rest[:end]))
}
