package decode_test

import (
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wiresock/netwatch/decode"
)

func dhcpDiscoverPayload() []byte {
	b := make([]byte, 240)
	b[0] = 1 // BOOTREQUEST
	b[1] = 1 // ethernet
	b[2] = 6 // hlen
	copy(b[28:34], []byte{0xDE, 0xAD, 0xBE, 0xEF, 0x00, 0x01})
	b[236], b[237], b[238], b[239] = 0x63, 0x82, 0x53, 0x63 // magic cookie

	opts := []byte{53, 1, 1, 255} // message type = DISCOVER, end
	return append(b, opts...)
}

func TestDecodeDHCP_Discover(t *testing.T) {
	var got *decode.DHCPMessage
	err := decode.DecodeDHCP(dhcpDiscoverPayload(), net.ParseIP("0.0.0.0"), 68, net.ParseIP("255.255.255.255"), 67,
		func(r decode.Record) { got = r.(*decode.DHCPMessage) })

	require.NoError(t, err)
	require.NotNil(t, got)
	assert.NoError(t, got.Warn)
	assert.Equal(t, decode.DHCPDiscover, got.MessageType)
	assert.Equal(t, "de:ad:be:ef:00:01", got.ClientHW.String())
}

func TestDecodeDHCP_BadMagicCookieIsError(t *testing.T) {
	b := make([]byte, 240)
	b[0] = 1
	err := decode.DecodeDHCP(b, nil, 68, nil, 67, func(decode.Record) {})
	assert.Error(t, err)
}

// A semantic mismatch on one option (malformed subnet mask) must not
// prevent later, well-formed options from being parsed.
func TestDecodeDHCP_BadOptionAmongManyStillParsesLaterOptions(t *testing.T) {
	b := make([]byte, 240)
	b[0] = 1
	b[1] = 1
	b[2] = 6
	b[236], b[237], b[238], b[239] = 0x63, 0x82, 0x53, 0x63

	opts := []byte{
		1, 2, 0xFF, 0xFF, // subnet mask, malformed length 2 (must be 4)
		53, 1, 1, // message type = DISCOVER, valid
		255, // end
	}
	payload := append(b, opts...)

	var got *decode.DHCPMessage
	err := decode.DecodeDHCP(payload, net.ParseIP("0.0.0.0"), 68, net.ParseIP("255.255.255.255"), 67,
		func(r decode.Record) { got = r.(*decode.DHCPMessage) })

	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Error(t, got.Warn, "malformed subnet mask option should be recorded as a warning")
	assert.Nil(t, got.SubnetMask)
	assert.Equal(t, decode.DHCPDiscover, got.MessageType, "message type option after the bad option must still be parsed")
}
