// Package writer implements the append-only wpilog encoder: entry
// creation with type-consistency and lifetime checks, typed and dynamic
// write paths, and Close/Flush.
package writer

import (
	"io"
	"sync/atomic"

	"github.com/robolog/wpilog/clock"
	"github.com/robolog/wpilog/errs"
	"github.com/robolog/wpilog/internal/options"
	"github.com/robolog/wpilog/internal/pool"
	"github.com/robolog/wpilog/internal/typeserial"
	"github.com/robolog/wpilog/record"
	"github.com/robolog/wpilog/value"
)

// nextLogID is the process-wide monotone counter tagging every Writer
// instance, so a Handle can detect accidental use against the wrong
// Writer.
var nextLogID uint32

func allocateLogID() uint32 {
	return atomic.AddUint32(&nextLogID, 1)
}

// Handle is an opaque reference to a created entry, scoped to the
// Writer that created it. Using a Handle against a different Writer
// fails with errs.ErrInvalidDataLog.
type Handle struct {
	logID   uint32
	entryID uint32
}

// TypedHandle binds a declared type string to a Handle, enabling the
// typed write path to skip the type-serial check on every write.
type TypedHandle struct {
	Handle
	typeStr string
}

type entryState struct {
	id      uint32
	key     string
	typeStr string
	serial  uint32
	alive   bool
	scratch *pool.ByteBuffer
}

// DataLogWriter appends framed wpilog records to an underlying
// io.Writer. It is not safe for concurrent mutation; a single instance
// is meant to be driven from one goroutine.
type DataLogWriter struct {
	logID uint32
	out   io.Writer
	clock clock.Source

	nextEntryID uint32
	byKey       map[string]*entryState
	byID        map[uint32]*entryState

	outBuf *pool.ByteBuffer
}

// New creates a Writer over out, stamping the header with metadata and
// the format version [0x00, 0x01]. Fails with errs.ErrMetadataTooLarge
// if metadata exceeds 2^32-1 bytes.
func New(out io.Writer, metadata string, opts ...Option) (*DataLogWriter, error) {
	cfg := defaultConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	if uint64(len(metadata)) > maxMetadataLen {
		return nil, errs.ErrMetadataTooLarge
	}

	w := &DataLogWriter{
		logID: allocateLogID(),
		out:   out,
		clock: cfg.clock,
		// Id 0 is reserved for control records; user entries start at 1.
		nextEntryID: 1,
		byKey:       make(map[string]*entryState),
		byID:        make(map[uint32]*entryState),
		outBuf:      pool.GetWriteBuffer(),
	}

	if err := w.writeHeader(metadata); err != nil {
		return nil, err
	}

	return w, nil
}

const maxMetadataLen = 1<<32 - 1

func (w *DataLogWriter) writeHeader(metadata string) error {
	header := make([]byte, 0, 6+2+4+len(metadata))
	header = append(header, "WPILOG"...)
	header = append(header, 0x00, 0x01)
	l := uint32(len(metadata))
	header = append(header, byte(l), byte(l>>8), byte(l>>16), byte(l>>24))
	header = append(header, metadata...)

	_, err := w.out.Write(header)

	return err
}

// GetEntryDynamic creates or returns an existing entry for key with
// declared type typeStr and initial metadata. Rejects the void type.
// If key is already bound, returns the existing handle when the type
// matches and the entry is Alive, fails with ErrEntryTypeMismatch on a
// type-serial difference, or ErrOutsideEntryLifetime if the entry is
// Dead.
func (w *DataLogWriter) GetEntryDynamic(key, typeStr, metadata string) (Handle, error) {
	if typeStr == value.KindVoid.TypeString() {
		return Handle{}, errs.ErrVoidEntryType
	}

	serial := typeserial.Fingerprint(typeStr)

	if e, ok := w.byKey[key]; ok {
		if e.serial != serial {
			return Handle{}, errs.ErrEntryTypeMismatch
		}
		if !e.alive {
			return Handle{}, errs.ErrOutsideEntryLifetime
		}

		return Handle{logID: w.logID, entryID: e.id}, nil
	}

	if uint64(len(metadata)) > maxMetadataLen {
		return Handle{}, errs.ErrMetadataTooLarge
	}

	id := w.nextEntryID
	w.nextEntryID++

	e := &entryState{
		id:      id,
		key:     key,
		typeStr: typeStr,
		serial:  serial,
		alive:   true,
		scratch: pool.GetScratchBuffer(),
	}
	w.byKey[key] = e
	w.byID[id] = e

	start := record.Start{EntryID: id, Name: key, Type: typeStr, Metadata: metadata}
	if err := w.emitControl(start); err != nil {
		return Handle{}, err
	}

	return Handle{logID: w.logID, entryID: id}, nil
}

// GetEntry is the typed variant of GetEntryDynamic: it binds typeStr to
// the returned TypedHandle so Write/WriteTimestamped can skip the
// type-serial check on every call.
func (w *DataLogWriter) GetEntry(key, typeStr, metadata string) (TypedHandle, error) {
	h, err := w.GetEntryDynamic(key, typeStr, metadata)
	if err != nil {
		return TypedHandle{}, err
	}

	return TypedHandle{Handle: h, typeStr: typeStr}, nil
}

// Write appends v under handle at the current time, skipping the
// type-serial check: the handle's declared type is assumed correct.
func (w *DataLogWriter) Write(handle TypedHandle, v value.Value) error {
	return w.WriteTimestamped(handle, v, w.clock.Micros())
}

// WriteTimestamped is Write with an explicit timestamp.
func (w *DataLogWriter) WriteTimestamped(handle TypedHandle, v value.Value, ts uint64) error {
	return w.writeChecked(handle.Handle, v, ts, false)
}

// WriteDynamic appends v under handle, checking v's type-serial against
// the entry's stored type before writing; fails with
// ErrEntryTypeMismatch on a mismatch.
func (w *DataLogWriter) WriteDynamic(handle Handle, v value.Value, ts uint64) error {
	return w.writeChecked(handle, v, ts, true)
}

func (w *DataLogWriter) writeChecked(handle Handle, v value.Value, ts uint64, checkType bool) error {
	if v.IsVoid() {
		return nil
	}
	if handle.logID != w.logID {
		return errs.ErrInvalidDataLog
	}

	e, ok := w.byID[handle.entryID]
	if !ok {
		return errs.ErrNoSuchEntry
	}
	if !e.alive {
		return errs.ErrOutsideEntryLifetime
	}
	if checkType && typeserial.Fingerprint(v.TypeString()) != e.serial {
		return errs.ErrEntryTypeMismatch
	}

	return w.emitData(e, v, ts)
}

// CloseEntry transitions handle's entry Alive to Dead, releases its
// scratch buffer, and appends a Finish control record. Closing an
// already-Dead entry fails with ErrOutsideEntryLifetime.
func (w *DataLogWriter) CloseEntry(handle Handle) error {
	if handle.logID != w.logID {
		return errs.ErrInvalidDataLog
	}

	e, ok := w.byID[handle.entryID]
	if !ok {
		return errs.ErrNoSuchEntry
	}
	if !e.alive {
		return errs.ErrOutsideEntryLifetime
	}

	if err := w.emitControl(record.Finish{EntryID: e.id}); err != nil {
		return err
	}

	e.alive = false
	if e.scratch != nil {
		pool.PutScratchBuffer(e.scratch)
		e.scratch = nil
	}

	return nil
}

// Flush flushes the buffered output. Writes are always append-only
// regardless of when Flush is called.
func (w *DataLogWriter) Flush() error {
	if w.outBuf.Len() == 0 {
		return nil
	}

	_, err := w.outBuf.WriteTo(w.out)
	w.outBuf.Reset()

	return err
}

func (w *DataLogWriter) emitControl(body record.ControlBody) error {
	buf, err := record.EncodeControlRecord(body, w.clock.Micros())
	if err != nil {
		return err
	}

	return w.appendAndFlush(buf)
}

// emitData encodes the framed record with record.EncodeDataRecord, which
// allocates a fresh slice on every call, copies it into the entry's own
// scratch buffer (while the entry has one), and appends that copy to the
// writer's output buffer. The scratch copy does not avoid the encoder's
// per-call allocation.
func (w *DataLogWriter) emitData(e *entryState, v value.Value, ts uint64) error {
	buf, err := record.EncodeDataRecord(e.id, v, ts)
	if err != nil {
		return err
	}

	if e.scratch != nil {
		e.scratch.Reset()
		e.scratch.MustWrite(buf)
		buf = e.scratch.Bytes()
	}

	return w.appendAndFlush(buf)
}

func (w *DataLogWriter) appendAndFlush(buf []byte) error {
	w.outBuf.MustWrite(buf)
	if w.outBuf.Len() < pool.WriteBufferDefaultSize {
		return nil
	}

	return w.Flush()
}
