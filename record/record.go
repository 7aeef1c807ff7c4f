// Package record implements the on-disk record codec: the length
// bitfield and variable-width framing header, the three control-record
// payload shapes, and the eleven data-record payload encodings.
//
// This package is stateless. It knows nothing about entry lifecycles,
// type bindings, or ingest order — callers (the reader and writer
// packages) own that state and drive the codec one record at a time.
package record

import (
	"github.com/robolog/wpilog/value"
)

// EncodeControlRecord frames a control body at timestamp ts. The framed
// entry id is always 0; body.EntryID carries the logical id instead.
func EncodeControlRecord(body ControlBody, ts uint64) ([]byte, error) {
	return EncodeFrame(0, ts, EncodeControlPayload(body))
}

// EncodeDataRecord frames v, bound to entryID, at timestamp ts.
func EncodeDataRecord(entryID uint32, v value.Value, ts uint64) ([]byte, error) {
	return EncodeFrame(entryID, ts, EncodeDataPayload(v))
}
