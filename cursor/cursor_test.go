package cursor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wiresock/netwatch/cursor"
)

func TestCursor_ReadsFieldsInOrder(t *testing.T) {
	c := cursor.New([]byte{0x01, 0x02, 0x03, 0xAA, 0xBB, 0xCC, 0xDD})

	b, err := c.U8()
	assert.NoError(t, err)
	assert.Equal(t, uint8(0x01), b)

	u16, err := c.U16()
	assert.NoError(t, err)
	assert.Equal(t, uint16(0x0203), u16)

	u32, err := c.U32()
	assert.NoError(t, err)
	assert.Equal(t, uint32(0xAABBCCDD), u32)

	assert.Equal(t, 0, c.Len())
}

func TestCursor_TruncatedOnShortRead(t *testing.T) {
	c := cursor.New([]byte{0x01})

	_, err := c.U16()
	assert.Error(t, err)

	var trunc *cursor.Truncated
	assert.ErrorAs(t, err, &trunc)
	assert.Equal(t, 2, trunc.Need)
	assert.Equal(t, 1, trunc.Have)
}

func TestCursor_SkipAndSeek(t *testing.T) {
	c := cursor.New([]byte{0, 1, 2, 3, 4, 5})

	assert.NoError(t, c.Skip(3))
	assert.Equal(t, 3, c.Pos())

	assert.NoError(t, c.SeekAbs(1))
	b, err := c.U8()
	assert.NoError(t, err)
	assert.Equal(t, uint8(1), b)
}

func TestCursor_BytesBoundsCheck(t *testing.T) {
	c := cursor.New([]byte{1, 2, 3})

	_, err := c.Bytes(4)
	assert.Error(t, err)

	got, err := c.Bytes(2)
	assert.NoError(t, err)
	assert.Equal(t, []byte{1, 2}, got)
}
