package decode_test

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wiresock/netwatch/cursor"
	"github.com/wiresock/netwatch/decode"
	"github.com/wiresock/netwatch/frame"
	"github.com/wiresock/netwatch/stats"
)

func ethHeader(etherType uint16) []byte {
	b := make([]byte, 14)
	copy(b[0:6], []byte{0xAA, 0xBB, 0xCC, 0xDD, 0xEE, 0xFF})
	copy(b[6:12], []byte{0x11, 0x22, 0x33, 0x44, 0x55, 0x66})
	binary.BigEndian.PutUint16(b[12:14], etherType)
	return b
}

func decodeFrame(t *testing.T, data []byte) ([]decode.Record, *stats.Registry) {
	t.Helper()
	reg := stats.NewRegistry()
	records, err := decode.DecodeFrame(&frame.Frame{Data: data}, reg)
	require.NoError(t, err)
	return records, reg
}

func TestDecodeFrame_ARPRequest(t *testing.T) {
	arp := make([]byte, 28)
	binary.BigEndian.PutUint16(arp[0:2], 1)      // hw type ethernet
	binary.BigEndian.PutUint16(arp[2:4], 0x0800) // proto type IPv4
	arp[4] = 6
	arp[5] = 4
	binary.BigEndian.PutUint16(arp[6:8], 1) // request
	copy(arp[8:14], []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06})
	copy(arp[14:18], []byte{10, 0, 0, 1})
	copy(arp[18:24], []byte{0, 0, 0, 0, 0, 0})
	copy(arp[24:28], []byte{10, 0, 0, 2})

	data := append(ethHeader(0x0806), arp...)
	records, reg := decodeFrame(t, data)

	require.Len(t, records, 2)
	eth, ok := records[0].(*decode.EthernetRecord)
	require.True(t, ok)
	assert.Equal(t, uint16(0x0806), eth.EtherType)

	rec, ok := records[1].(*decode.ARPRecord)
	require.True(t, ok)
	assert.Equal(t, decode.ARPOpRequest, rec.Op)
	assert.Equal(t, "10.0.0.1", rec.SenderIP.String())
	assert.Equal(t, "10.0.0.2", rec.TargetIP.String())

	assert.Equal(t, uint64(1), reg.Snapshot().Ethernet)
	assert.Equal(t, uint64(1), reg.Snapshot().ARP)
}

func TestDecodeFrame_TCPSynToTLSPortWithEmptyPayload(t *testing.T) {
	ipv4 := make([]byte, 20)
	ipv4[0] = 0x45
	binary.BigEndian.PutUint16(ipv4[2:4], 40) // 20 IP + 20 TCP
	ipv4[8] = 64
	ipv4[9] = 6 // TCP
	copy(ipv4[12:16], []byte{192, 168, 1, 1})
	copy(ipv4[16:20], []byte{192, 168, 1, 2})

	tcp := make([]byte, 20)
	binary.BigEndian.PutUint16(tcp[0:2], 51000)
	binary.BigEndian.PutUint16(tcp[2:4], 443)
	tcp[12] = 5 << 4 // data offset 5 (20 bytes), no options
	tcp[13] = 0x02   // SYN

	data := append(ethHeader(0x0800), append(ipv4, tcp...)...)
	records, reg := decodeFrame(t, data)

	var sawTCP, sawTLS bool
	for _, r := range records {
		switch rec := r.(type) {
		case *decode.TCPRecord:
			sawTCP = true
			assert.True(t, rec.Flags.SYN)
			assert.Equal(t, 0, rec.PayloadLen)
		case *decode.TLSRecordInfo:
			sawTLS = true
		}
	}
	assert.True(t, sawTCP)
	assert.False(t, sawTLS, "empty TCP payload must not invoke the TLS recognizer")
	assert.Equal(t, uint64(0), reg.Snapshot().HTTPS)
}

func TestDecodeFrame_DNSQuery(t *testing.T) {
	// Question: www.example.com A IN
	var q []byte
	for _, label := range []string{"www", "example", "com"} {
		q = append(q, byte(len(label)))
		q = append(q, []byte(label)...)
	}
	q = append(q, 0)
	q = append(q, 0, 1, 0, 1) // type A, class IN

	header := make([]byte, 12)
	binary.BigEndian.PutUint16(header[0:2], 0x1234)
	header[2] = 0x01 // RD
	binary.BigEndian.PutUint16(header[4:6], 1)
	binary.BigEndian.PutUint16(header[6:8], 0)

	dnsPayload := append(header, q...)

	udp := make([]byte, 8)
	binary.BigEndian.PutUint16(udp[0:2], 53000)
	binary.BigEndian.PutUint16(udp[2:4], 53)
	binary.BigEndian.PutUint16(udp[4:6], uint16(8+len(dnsPayload)))

	ipv4 := make([]byte, 20)
	ipv4[0] = 0x45
	binary.BigEndian.PutUint16(ipv4[2:4], uint16(20+8+len(dnsPayload)))
	ipv4[8] = 64
	ipv4[9] = 17 // UDP
	copy(ipv4[12:16], []byte{10, 0, 0, 1})
	copy(ipv4[16:20], []byte{8, 8, 8, 8})

	data := append(ethHeader(0x0800), append(ipv4, append(udp, dnsPayload...)...)...)
	records, reg := decodeFrame(t, data)

	var dns *decode.DNSMessage
	for _, r := range records {
		if m, ok := r.(*decode.DNSMessage); ok {
			dns = m
		}
	}
	require.NotNil(t, dns)
	assert.NoError(t, dns.Warn)
	require.Len(t, dns.Questions, 1)
	assert.Equal(t, "www.example.com", dns.Questions[0].Name)
	assert.Equal(t, uint64(1), reg.Snapshot().DNS)
}

func TestDecodeFrame_DNSSelfLoopPointerIsMalformed(t *testing.T) {
	header := make([]byte, 12)
	binary.BigEndian.PutUint16(header[4:6], 1) // one question

	// the pointer at offset 12 points back to itself.
	name := []byte{0xC0, 12}
	name = append(name, 0, 1, 0, 1)

	dnsPayload := append(header, name...)
	records := []decode.Record{}

	reg := stats.NewRegistry()
	emitSink := func(r decode.Record) { records = append(records, r) }
	err := decode.DecodeDNS(dnsPayload, emitSink)
	require.NoError(t, err) // DNS decode failure is reported via Warn, not a returned error
	_ = reg

	require.Len(t, records, 1)
	msg, ok := records[0].(*decode.DNSMessage)
	require.True(t, ok)
	assert.Error(t, msg.Warn)
}

func TestCursorRoundTrip(t *testing.T) {
	c := cursor.New([]byte{1, 2, 3, 4})
	v, err := c.U32()
	require.NoError(t, err)
	assert.Equal(t, uint32(0x01020304), v)
}
