// Package varuint implements the variable-width unsigned integer used
// throughout record framing: a uint64 paired with the minimal number of
// little-endian bytes (1..8) needed to hold it.
//
// Every framing field (entry id, payload length, timestamp) is encoded
// this way rather than as a fixed-width integer, so the on-disk cost of
// a small value is proportional to its size.
package varuint

import "github.com/robolog/wpilog/errs"

// VarUint is a value paired with its encoded byte width.
type VarUint struct {
	Value uint64
	Width int
}

// Shrink returns the VarUint for value using the smallest width w in
// 1..8 such that value < 2^(8*w). Every value fits in 8 bytes, so Shrink
// never fails.
func Shrink(value uint64) VarUint {
	w := 1
	for w < 8 && value>>(8*w) != 0 {
		w++
	}

	return VarUint{Value: value, Width: w}
}

// Bytes returns the little-endian encoding of v, truncated to v.Width
// bytes. The result always has len(result) == v.Width.
func (v VarUint) Bytes() []byte {
	b := make([]byte, v.Width)
	for i := 0; i < v.Width; i++ {
		b[i] = byte(v.Value >> (8 * i))
	}

	return b
}

// AppendTo appends the little-endian encoding of v to dst and returns
// the extended slice.
func (v VarUint) AppendTo(dst []byte) []byte {
	for i := 0; i < v.Width; i++ {
		dst = append(dst, byte(v.Value>>(8*i)))
	}

	return dst
}

// FromBytes decodes b as a little-endian integer, using len(b) as the
// width. It fails if b is empty or longer than 8 bytes, since no
// framing field can be wider than that.
func FromBytes(b []byte) (VarUint, error) {
	if len(b) == 0 || len(b) > 8 {
		return VarUint{}, errs.ErrShortRecordBuffer
	}

	var v uint64
	for i := len(b) - 1; i >= 0; i-- {
		v = v<<8 | uint64(b[i])
	}

	return VarUint{Value: v, Width: len(b)}, nil
}
