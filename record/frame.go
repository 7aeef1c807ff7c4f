package record

import (
	"github.com/robolog/wpilog/errs"
	"github.com/robolog/wpilog/internal/bytereader"
	"github.com/robolog/wpilog/internal/varuint"
)

// Frame is one decoded record at the framing level, before its payload
// has been interpreted as a control body or a typed data value. A Frame
// with EntryID == 0 is a control record; its logical entry id lives
// inside Payload. A Frame with EntryID >= 1 is a data record bound to
// that entry.
type Frame struct {
	EntryID   uint32
	Timestamp uint64
	Payload   []byte
}

// maxPayloadLenWidth is the widest payload-length field the bitfield
// byte can express (2 bits -> widths 1..4).
const maxPayloadLenWidth = 4

// EncodeFrame packs entryID, timestamp and payload into one framed
// record: a bitfield byte, the three variable-width header fields, then
// the payload bytes verbatim. entryID is 0 for control records.
func EncodeFrame(entryID uint32, timestamp uint64, payload []byte) ([]byte, error) {
	idVu := varuint.Shrink(uint64(entryID))
	lenVu := varuint.Shrink(uint64(len(payload)))
	tsVu := varuint.Shrink(timestamp)

	if lenVu.Width > maxPayloadLenWidth {
		return nil, errs.ErrRecordTooLarge
	}

	buf := make([]byte, 0, 1+idVu.Width+lenVu.Width+tsVu.Width+len(payload))
	buf = append(buf, packBitfield(idVu.Width, lenVu.Width, tsVu.Width))
	buf = idVu.AppendTo(buf)
	buf = lenVu.AppendTo(buf)
	buf = tsVu.AppendTo(buf)
	buf = append(buf, payload...)

	return buf, nil
}

// PeekFrameLen inspects buf for one complete framed record without
// consuming it, returning the total byte length the record occupies.
// ok is false when buf is too short to even contain the header, or the
// header is complete but the declared payload length reaches past the
// end of buf — both cases mean the caller should stop decoding and
// treat the remainder as a truncated trailing fragment.
func PeekFrameLen(buf []byte) (n int, ok bool) {
	if len(buf) < 1 {
		return 0, false
	}

	idWidth, lenWidth, tsWidth := unpackBitfield(buf[0])
	headerLen := 1 + idWidth + lenWidth + tsWidth
	if len(buf) < headerLen {
		return 0, false
	}

	lenStart := 1 + idWidth
	lenField, err := varuint.FromBytes(buf[lenStart : lenStart+lenWidth])
	if err != nil {
		return 0, false
	}

	total := headerLen + int(lenField.Value)
	if len(buf) < total {
		return 0, false
	}

	return total, true
}

// DecodeFrame decodes the single framed record occupying the first
// PeekFrameLen(buf) bytes of buf. Callers must have already confirmed
// buf holds a complete record with PeekFrameLen; DecodeFrame re-derives
// the widths itself rather than taking them as parameters so it stays a
// single source of truth for the framing layout.
func DecodeFrame(buf []byte) (Frame, error) {
	r := bytereader.New(buf)

	bitfield, err := r.Byte()
	if err != nil {
		return Frame{}, err
	}
	idWidth, lenWidth, tsWidth := unpackBitfield(bitfield)

	idBytes, err := r.Bytes(idWidth)
	if err != nil {
		return Frame{}, err
	}
	entryID, err := varuint.FromBytes(idBytes)
	if err != nil {
		return Frame{}, err
	}

	lenBytes, err := r.Bytes(lenWidth)
	if err != nil {
		return Frame{}, err
	}
	payloadLen, err := varuint.FromBytes(lenBytes)
	if err != nil {
		return Frame{}, err
	}

	tsBytes, err := r.Bytes(tsWidth)
	if err != nil {
		return Frame{}, err
	}
	timestamp, err := varuint.FromBytes(tsBytes)
	if err != nil {
		return Frame{}, err
	}

	payload, err := r.Bytes(int(payloadLen.Value))
	if err != nil {
		return Frame{}, err
	}

	return Frame{
		EntryID:   uint32(entryID.Value),
		Timestamp: timestamp.Value,
		Payload:   payload,
	}, nil
}
