package record

import (
	"github.com/robolog/wpilog/endian"
	"github.com/robolog/wpilog/errs"
	"github.com/robolog/wpilog/internal/bytereader"
)

var littleEndian = endian.GetLittleEndianEngine()

// Control record payload type discriminators. These are the first byte
// of every control record's payload, distinct from the framing bitfield
// byte that precedes the whole record.
const (
	controlStart    = 0
	controlFinish   = 1
	controlMetadata = 2
)

// ControlBody is one of Start, Finish, or MetadataRecord: the three
// shapes a control record's payload can take.
type ControlBody interface {
	controlBody()
}

// Start declares a new entry: its logical id, name, declared type
// string, and initial metadata.
type Start struct {
	EntryID  uint32
	Name     string
	Type     string
	Metadata string
}

// Finish terminates an entry.
type Finish struct {
	EntryID uint32
}

// MetadataRecord attaches a new metadata string to an already-started
// entry without changing its lifecycle state.
type MetadataRecord struct {
	EntryID  uint32
	Metadata string
}

func (Start) controlBody()          {}
func (Finish) controlBody()         {}
func (MetadataRecord) controlBody() {}

// EncodeControlPayload serializes body into a control record's payload
// bytes (everything after the framing header, but including the leading
// discriminator byte).
func EncodeControlPayload(body ControlBody) []byte {
	switch b := body.(type) {
	case Start:
		return encodeStart(b)
	case Finish:
		return encodeFinish(b)
	case MetadataRecord:
		return encodeMetadataRecord(b)
	default:
		panic("record: unknown ControlBody implementation")
	}
}

func encodeStart(s Start) []byte {
	name := []byte(s.Name)
	typ := []byte(s.Type)
	meta := []byte(s.Metadata)

	buf := make([]byte, 0, 1+4+4+len(name)+4+len(typ)+4+len(meta))
	buf = append(buf, controlStart)
	buf = appendUint32(buf, s.EntryID)
	buf = appendUint32(buf, uint32(len(name)))
	buf = append(buf, name...)
	buf = appendUint32(buf, uint32(len(typ)))
	buf = append(buf, typ...)
	buf = appendUint32(buf, uint32(len(meta)))
	buf = append(buf, meta...)

	return buf
}

func encodeFinish(f Finish) []byte {
	buf := make([]byte, 0, 5)
	buf = append(buf, controlFinish)
	buf = appendUint32(buf, f.EntryID)

	return buf
}

// encodeMetadataRecord emits (entry_id, metadata_length, metadata_bytes)
// for the Metadata control variant, matching Start's entry-id-first
// field order.
func encodeMetadataRecord(m MetadataRecord) []byte {
	meta := []byte(m.Metadata)

	buf := make([]byte, 0, 1+4+4+len(meta))
	buf = append(buf, controlMetadata)
	buf = appendUint32(buf, m.EntryID)
	buf = appendUint32(buf, uint32(len(meta)))
	buf = append(buf, meta...)

	return buf
}

func appendUint32(buf []byte, v uint32) []byte {
	return littleEndian.AppendUint32(buf, v)
}

// DecodeControlPayload parses payload (the control record's payload
// bytes, including the discriminator) into a ControlBody.
func DecodeControlPayload(payload []byte) (ControlBody, error) {
	r := bytereader.New(payload)

	disc, err := r.Byte()
	if err != nil {
		return nil, err
	}

	switch disc {
	case controlStart:
		return decodeStart(r)
	case controlFinish:
		return decodeFinish(r)
	case controlMetadata:
		return decodeMetadataRecord(r)
	default:
		return nil, errs.ErrUnsupportedRecordType
	}
}

func decodeStart(r *bytereader.Reader) (Start, error) {
	entryID, err := r.Uint32()
	if err != nil {
		return Start{}, err
	}
	nameLen, err := r.Uint32()
	if err != nil {
		return Start{}, err
	}
	name, err := r.String(int(nameLen))
	if err != nil {
		return Start{}, err
	}
	typeLen, err := r.Uint32()
	if err != nil {
		return Start{}, err
	}
	typ, err := r.String(int(typeLen))
	if err != nil {
		return Start{}, err
	}
	metaLen, err := r.Uint32()
	if err != nil {
		return Start{}, err
	}
	meta, err := r.String(int(metaLen))
	if err != nil {
		return Start{}, err
	}

	return Start{EntryID: entryID, Name: name, Type: typ, Metadata: meta}, nil
}

func decodeFinish(r *bytereader.Reader) (Finish, error) {
	entryID, err := r.Uint32()
	if err != nil {
		return Finish{}, err
	}

	return Finish{EntryID: entryID}, nil
}

func decodeMetadataRecord(r *bytereader.Reader) (MetadataRecord, error) {
	entryID, err := r.Uint32()
	if err != nil {
		return MetadataRecord{}, err
	}
	metaLen, err := r.Uint32()
	if err != nil {
		return MetadataRecord{}, err
	}
	meta, err := r.String(int(metaLen))
	if err != nil {
		return MetadataRecord{}, err
	}

	return MetadataRecord{EntryID: entryID, Metadata: meta}, nil
}
