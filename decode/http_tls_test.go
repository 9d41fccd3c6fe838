package decode_test

import (
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wiresock/netwatch/decode"
	"github.com/wiresock/netwatch/stats"
)

func TestDecodeHTTP_ExtractsFirstLineAndHost(t *testing.T) {
	reg := stats.NewRegistry()
	payload := []byte("GET /index.html HTTP/1.1\r\nHost: example.com\r\nAccept: */*\r\n\r\n")

	var got *decode.HTTPRecord
	err := decode.DecodeHTTP(payload, net.ParseIP("10.0.0.1"), 51000, net.ParseIP("10.0.0.2"), 80, reg,
		func(r decode.Record) { got = r.(*decode.HTTPRecord) })

	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "GET /index.html HTTP/1.1", got.FirstLine)
	assert.Equal(t, "example.com", got.Host)
	assert.Equal(t, uint64(1), reg.Snapshot().HTTP)
}

func TestDecodeTLS_ClampsDeclaredLengthToPayload(t *testing.T) {
	reg := stats.NewRegistry()
	payload := []byte{0x16, 0x03, 0x03, 0xFF, 0xFF, 0x01, 0x02, 0x03} // declared length far exceeds payload

	var got *decode.TLSRecordInfo
	err := decode.DecodeTLS(payload, net.ParseIP("10.0.0.1"), 51000, net.ParseIP("10.0.0.2"), 443, reg,
		func(r decode.Record) { got = r.(*decode.TLSRecordInfo) })

	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, decode.TLSHandshake, got.ContentType)
	assert.Equal(t, "TLS 1.2", got.Version.String())
	assert.Equal(t, 3, got.Length)
	assert.Equal(t, uint64(1), reg.Snapshot().HTTPS)
}
