package bytereader

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robolog/wpilog/errs"
)

func TestByteAndPeek(t *testing.T) {
	r := New([]byte{0x01, 0x02})

	b, err := r.PeekByte()
	require.NoError(t, err)
	assert.Equal(t, byte(0x01), b)

	b, err = r.Byte()
	require.NoError(t, err)
	assert.Equal(t, byte(0x01), b)
	assert.Equal(t, 1, r.Len())

	b, err = r.Byte()
	require.NoError(t, err)
	assert.Equal(t, byte(0x02), b)

	_, err = r.Byte()
	assert.ErrorIs(t, err, errs.ErrShortRecordBuffer)
}

func TestBytesOutOfBoundsLeavesOffsetUnchanged(t *testing.T) {
	r := New([]byte{0x01, 0x02})
	_, err := r.Bytes(3)
	require.ErrorIs(t, err, errs.ErrShortRecordBuffer)
	assert.Equal(t, 2, r.Len())
}

func TestFixedWidthDecoders(t *testing.T) {
	// uint32 little-endian 0x04030201, int64 -1, float32 1.5, float64 2.5, bool true
	buf := []byte{
		0x01, 0x02, 0x03, 0x04,
		0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF,
		0x00, 0x00, 0xC0, 0x3F,
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x04, 0x40,
		0x01,
	}
	r := New(buf)

	u32, err := r.Uint32()
	require.NoError(t, err)
	assert.Equal(t, uint32(0x04030201), u32)

	i64, err := r.Int64()
	require.NoError(t, err)
	assert.Equal(t, int64(-1), i64)

	f32, err := r.Float32()
	require.NoError(t, err)
	assert.InDelta(t, float32(1.5), f32, 1e-6)

	f64, err := r.Float64()
	require.NoError(t, err)
	assert.InDelta(t, 2.5, f64, 1e-9)

	b, err := r.Bool()
	require.NoError(t, err)
	assert.True(t, b)

	assert.True(t, r.IsEmpty())
}

func TestStringRejectsInvalidUTF8(t *testing.T) {
	r := New([]byte{0xFF, 0xFE})
	_, err := r.String(2)
	assert.ErrorIs(t, err, errs.ErrShortRecordBuffer)
}

func TestVarUintWidths(t *testing.T) {
	r := New([]byte{0x2A, 0x01})
	v, err := r.VarUint(2)
	require.NoError(t, err)
	assert.Equal(t, uint64(0x012A), v)
}

func TestSkipAndRest(t *testing.T) {
	r := New([]byte{0x01, 0x02, 0x03, 0x04})
	require.NoError(t, r.Skip(2))
	assert.Equal(t, []byte{0x03, 0x04}, r.Rest())
	assert.True(t, r.IsEmpty())
}
