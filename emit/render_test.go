package emit_test

import (
	"bytes"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wiresock/netwatch/decode"
	"github.com/wiresock/netwatch/emit"
)

func TestEmitter_EthernetLineFormat(t *testing.T) {
	var buf bytes.Buffer
	e := emit.New(emit.LevelDebug, &buf, nil)

	e.Record(&decode.EthernetRecord{
		Src:       net.HardwareAddr{0x11, 0x22, 0x33, 0x44, 0x55, 0x66},
		Dst:       net.HardwareAddr{0xAA, 0xBB, 0xCC, 0xDD, 0xEE, 0xFF},
		EtherType: 0x0800,
	})

	assert.Equal(t, "[Ethernet] Src MAC 11:22:33:44:55:66, Dst MAC aa:bb:cc:dd:ee:ff, Type 0x0800\n", buf.String())
}

func TestEmitter_TCPFlagOrderIsFixed(t *testing.T) {
	var buf bytes.Buffer
	e := emit.New(emit.LevelDebug, &buf, nil)

	e.Record(&decode.TCPRecord{
		Src: net.ParseIP("10.0.0.1"), Dst: net.ParseIP("10.0.0.2"),
		SrcPort: 1234, DstPort: 443,
		Seq: 1, Ack: 2, Window: 65535,
		Flags: decode.TCPFlags{SYN: true, ACK: true},
	})

	assert.Equal(t, "TCP: 10.0.0.1:1234 -> 10.0.0.2:443, Seq=1 Ack=2, Win=65535 [ACK SYN ]\n", buf.String())
}

func TestEmitter_SuppressesBelowConfiguredLevel(t *testing.T) {
	var buf bytes.Buffer
	e := emit.New(emit.LevelWarn, &buf, nil)

	e.Record(&decode.Unsupported{Layer: "ethernet", Value: 0x1234})
	assert.Empty(t, buf.String(), "Unsupported renders at LevelDebug and must be suppressed at LevelWarn")

	e.Linef(emit.LevelWarn, "something")
	assert.Equal(t, "something\n", buf.String())
}

func TestEmitter_IPv4FragmentSuffix(t *testing.T) {
	var buf bytes.Buffer
	e := emit.New(emit.LevelDebug, &buf, nil)

	e.Record(&decode.IPv4Record{
		Src: net.ParseIP("1.1.1.1"), Dst: net.ParseIP("2.2.2.2"),
		TTL: 64, Proto: 6, Len: 100, MF: true, FragOffset: 8,
	})

	assert.Contains(t, buf.String(), "IPv4: 1.1.1.1 -> 2.2.2.2, TTL=64, Proto=6, Len=100")
	assert.Contains(t, buf.String(), "[fragment MF offset=8]")
}
