package frame_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wiresock/netwatch/frame"
)

func TestFrame_Truncated(t *testing.T) {
	f := &frame.Frame{Data: make([]byte, 10), WireLen: 64}
	assert.True(t, f.Truncated())

	full := &frame.Frame{Data: make([]byte, 64), WireLen: 64}
	assert.False(t, full.Truncated())
}
