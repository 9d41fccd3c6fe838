package decode

import (
	"github.com/wiresock/netwatch/cursor"
	"github.com/wiresock/netwatch/frame"
	"github.com/wiresock/netwatch/stats"
)

// DecodeFrame decodes f's bytes as an Ethernet frame, recursing through the
// network, transport, and application layers, bumping reg as each layer
// succeeds. It returns every record produced before decoding stopped,
// whether that was because the frame was fully decoded or because a layer
// reported a stopping error.
func DecodeFrame(f *frame.Frame, reg *stats.Registry) ([]Record, error) {
	var records []Record
	emit := func(r Record) { records = append(records, r) }

	err := DecodeEthernet(cursor.New(f.Data), reg, emit)
	return records, err
}
