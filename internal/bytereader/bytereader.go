// Package bytereader provides a cursor over a borrowed byte slice that
// returns errs.ErrShortRecordBuffer instead of panicking whenever a
// decode needs more bytes than remain.
//
// Record framing is a sequence of variable-width fields read in order,
// which a stateful cursor expresses more directly than repeated manual
// slicing with a caller-tracked offset.
package bytereader

import (
	"math"
	"unicode/utf8"

	"github.com/robolog/wpilog/endian"
	"github.com/robolog/wpilog/errs"
)

// Reader is a cursor over a byte slice. It never copies the underlying
// array; slice-returning methods borrow directly from buf.
type Reader struct {
	buf    []byte
	off    int
	engine endian.EndianEngine
}

// New wraps buf in a Reader starting at offset 0. Fixed-width fields
// decode little-endian, matching the on-disk format.
func New(buf []byte) *Reader {
	return &Reader{buf: buf, engine: endian.GetLittleEndianEngine()}
}

// Len returns the number of unread bytes.
func (r *Reader) Len() int { return len(r.buf) - r.off }

// IsEmpty reports whether no unread bytes remain.
func (r *Reader) IsEmpty() bool { return r.Len() == 0 }

func (r *Reader) require(n int) error {
	if r.Len() < n {
		return errs.ErrShortRecordBuffer
	}

	return nil
}

// Byte consumes and returns one byte.
func (r *Reader) Byte() (byte, error) {
	if err := r.require(1); err != nil {
		return 0, err
	}
	b := r.buf[r.off]
	r.off++

	return b, nil
}

// PeekByte returns the next byte without advancing the cursor.
func (r *Reader) PeekByte() (byte, error) {
	if err := r.require(1); err != nil {
		return 0, err
	}

	return r.buf[r.off], nil
}

// Bytes consumes and returns the next n bytes as a slice borrowed from
// the underlying buffer. The offset only advances on success.
func (r *Reader) Bytes(n int) ([]byte, error) {
	if err := r.require(n); err != nil {
		return nil, err
	}
	b := r.buf[r.off : r.off+n]
	r.off += n

	return b, nil
}

// PeekBytes returns the next n bytes without advancing the cursor.
func (r *Reader) PeekBytes(n int) ([]byte, error) {
	if err := r.require(n); err != nil {
		return nil, err
	}

	return r.buf[r.off : r.off+n], nil
}

// String consumes n bytes and decodes them as UTF-8. Invalid UTF-8 is
// reported as errs.ErrShortRecordBuffer, since both failure modes make
// the record undecodable and cause it to be dropped during ingest.
func (r *Reader) String(n int) (string, error) {
	b, err := r.Bytes(n)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(b) {
		return "", errs.ErrShortRecordBuffer
	}

	return string(b), nil
}

// Skip advances the cursor by n bytes without returning them.
func (r *Reader) Skip(n int) error {
	if err := r.require(n); err != nil {
		return err
	}
	r.off += n

	return nil
}

// Rest consumes and returns every remaining byte.
func (r *Reader) Rest() []byte {
	b := r.buf[r.off:]
	r.off = len(r.buf)

	return b
}

// Bool consumes one byte, nonzero meaning true.
func (r *Reader) Bool() (bool, error) {
	b, err := r.Byte()
	if err != nil {
		return false, err
	}

	return b != 0, nil
}

// Uint32 consumes 4 bytes as a little-endian uint32.
func (r *Reader) Uint32() (uint32, error) {
	b, err := r.Bytes(4)
	if err != nil {
		return 0, err
	}

	return r.engine.Uint32(b), nil
}

// Int32 consumes 4 bytes as a little-endian, two's complement int32.
func (r *Reader) Int32() (int32, error) {
	u, err := r.Uint32()
	if err != nil {
		return 0, err
	}

	return int32(u), nil
}

// Int64 consumes 8 bytes as a little-endian, two's complement int64.
func (r *Reader) Int64() (int64, error) {
	u, err := r.Uint64()
	if err != nil {
		return 0, err
	}

	return int64(u), nil
}

// Uint64 consumes 8 bytes as a little-endian uint64.
func (r *Reader) Uint64() (uint64, error) {
	b, err := r.Bytes(8)
	if err != nil {
		return 0, err
	}

	return r.engine.Uint64(b), nil
}

// Float32 consumes 4 bytes as an IEEE-754 little-endian float32.
func (r *Reader) Float32() (float32, error) {
	u, err := r.Uint32()
	if err != nil {
		return 0, err
	}

	return math.Float32frombits(u), nil
}

// Float64 consumes 8 bytes as an IEEE-754 little-endian float64.
func (r *Reader) Float64() (float64, error) {
	u, err := r.Uint64()
	if err != nil {
		return 0, err
	}

	return math.Float64frombits(u), nil
}

// VarUint consumes n little-endian bytes (1..=8) and returns them as a
// uint64.
func (r *Reader) VarUint(n int) (uint64, error) {
	b, err := r.Bytes(n)
	if err != nil {
		return 0, err
	}
	var v uint64
	for i := n - 1; i >= 0; i-- {
		v = v<<8 | uint64(b[i])
	}

	return v, nil
}
