// Package reader ingests a whole wpilog file into memory, reconstructs
// each entry's lifecycle and timelines from the record stream, and
// answers key-based, time-ranged queries against the result.
//
// A DataLogReader fully ingests its input up front; there is no
// random-access or streaming mode. This mirrors the non-goal that reads
// never need to seek a live, possibly still-growing file.
package reader

import (
	"sort"

	"github.com/robolog/wpilog/internal/bytereader"
	"github.com/robolog/wpilog/internal/options"
	"github.com/robolog/wpilog/internal/typeserial"
	"github.com/robolog/wpilog/record"
	"github.com/robolog/wpilog/value"
)

// DataLogReader holds the fully-ingested state of one log file: its
// header, and every entry's lifecycle and timelines, keyed both by name
// and by entry id.
type DataLogReader struct {
	header Header

	byID   map[uint32]*entry
	byName map[string]*entry
}

// Open ingests data as a complete wpilog file and returns a reader over
// its reconstructed entries. Ingest never fails on a malformed or
// truncated record; only header-level problems (magic/version mismatch,
// a header that cannot be parsed at all) abort the open.
func Open(data []byte, opts ...Option) (*DataLogReader, error) {
	cfg := defaultConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	r := bytereader.New(data)
	header, err := parseHeader(r, cfg)
	if err != nil {
		return nil, err
	}

	dlr := &DataLogReader{
		header: header,
		byID:   make(map[uint32]*entry),
		byName: make(map[string]*entry),
	}
	dlr.ingest(r.Rest())
	dlr.sortTimelines()

	return dlr, nil
}

// ingest walks the framed record stream in buf, applying each record to
// the entry table. A record that fails to decode is dropped; the
// trailing fragment of a truncated stream is silently discarded.
func (d *DataLogReader) ingest(buf []byte) {
	tracker := typeserial.NewTracker()

	for len(buf) > 0 {
		n, ok := record.PeekFrameLen(buf)
		if !ok {
			break
		}
		frame, err := record.DecodeFrame(buf[:n])
		buf = buf[n:]
		if err != nil {
			continue
		}

		if frame.EntryID == 0 {
			d.applyControl(frame, tracker)
			continue
		}
		d.applyData(frame, tracker)
	}
}

func (d *DataLogReader) applyControl(frame record.Frame, tracker *typeserial.Tracker) {
	body, err := record.DecodeControlPayload(frame.Payload)
	if err != nil {
		return
	}

	switch b := body.(type) {
	case record.Start:
		d.applyStart(b, frame.Timestamp, tracker)
	case record.Finish:
		d.applyFinish(b, frame.Timestamp, tracker)
	case record.MetadataRecord:
		d.applyMetadata(b, frame.Timestamp)
	}
}

func (d *DataLogReader) applyStart(s record.Start, ts uint64, tracker *typeserial.Tracker) {
	e, exists := d.byID[s.EntryID]
	if exists && e.status.Alive {
		return
	}
	if !exists {
		e = &entry{id: s.EntryID, name: s.Name}
		d.byID[s.EntryID] = e
	}
	e.status = LifeStatus{Alive: true, Start: ts}
	d.byName[s.Name] = e
	tracker.Bind(s.EntryID, s.Type)
	e.types = append(e.types, TimestampedString{Timestamp: ts, Value: s.Type})
	e.metadata = append(e.metadata, TimestampedString{Timestamp: ts, Value: s.Metadata})
}

func (d *DataLogReader) applyFinish(f record.Finish, ts uint64, tracker *typeserial.Tracker) {
	e, ok := d.byID[f.EntryID]
	if !ok || !e.status.Alive {
		return
	}
	e.status = LifeStatus{Alive: false, Start: e.status.Start, End: ts}
	tracker.Forget(f.EntryID)
}

func (d *DataLogReader) applyMetadata(m record.MetadataRecord, ts uint64) {
	e, ok := d.byID[m.EntryID]
	if !ok || !e.status.Alive {
		return
	}
	e.metadata = append(e.metadata, TimestampedString{Timestamp: ts, Value: m.Metadata})
}

func (d *DataLogReader) applyData(frame record.Frame, tracker *typeserial.Tracker) {
	e, ok := d.byID[frame.EntryID]
	if !ok || !e.status.Alive {
		return
	}

	kind := value.KindRaw
	if serial, ok := tracker.SerialOf(frame.EntryID); ok {
		if k, ok := typeserial.KindForSerial(serial); ok {
			kind = k
		}
	}

	v, err := record.DecodeDataPayload(frame.Payload, kind)
	if err != nil {
		return
	}

	e.values = append(e.values, TimestampedValue{Timestamp: frame.Timestamp, Value: v})
}

func (d *DataLogReader) sortTimelines() {
	for _, e := range d.byID {
		sort.Slice(e.values, func(i, j int) bool { return e.values[i].Timestamp < e.values[j].Timestamp })
		sort.Slice(e.metadata, func(i, j int) bool { return e.metadata[i].Timestamp < e.metadata[j].Timestamp })
		sort.Slice(e.types, func(i, j int) bool { return e.types[i].Timestamp < e.types[j].Timestamp })
	}
}

// FormatVersion returns the file's parsed format version.
func (d *DataLogReader) FormatVersion() Version { return d.header.Version }

// HeaderMetadata returns the file-level metadata string from the header.
func (d *DataLogReader) HeaderMetadata() string { return d.header.Metadata }

// EntryKeys returns every entry name the reader has seen, in no
// particular order.
func (d *DataLogReader) EntryKeys() []string {
	keys := make([]string, 0, len(d.byName))
	for k := range d.byName {
		keys = append(keys, k)
	}

	return keys
}

// ReadEntry returns the full, timestamp-sorted value timeline for key.
// ok is false if no entry by that name was ever started.
func (d *DataLogReader) ReadEntry(key string) ([]TimestampedValue, bool) {
	e, ok := d.byName[key]
	if !ok {
		return nil, false
	}

	return e.values, true
}

// ReadEntryAfter returns key's values with timestamp strictly greater
// than t.
func (d *DataLogReader) ReadEntryAfter(key string, t uint64) ([]TimestampedValue, bool) {
	values, ok := d.ReadEntry(key)
	if !ok {
		return nil, false
	}

	return filterValues(values, func(v TimestampedValue) bool { return v.Timestamp > t }), true
}

// ReadEntryBefore returns key's values with timestamp strictly less
// than t.
func (d *DataLogReader) ReadEntryBefore(key string, t uint64) ([]TimestampedValue, bool) {
	values, ok := d.ReadEntry(key)
	if !ok {
		return nil, false
	}

	return filterValues(values, func(v TimestampedValue) bool { return v.Timestamp < t }), true
}

// ReadEntryBetween returns key's values with a <= timestamp <= b.
func (d *DataLogReader) ReadEntryBetween(key string, a, b uint64) ([]TimestampedValue, bool) {
	values, ok := d.ReadEntry(key)
	if !ok {
		return nil, false
	}

	return filterValues(values, func(v TimestampedValue) bool { return v.Timestamp >= a && v.Timestamp <= b }), true
}

// EntryMetadataTimeline returns key's full, timestamp-sorted metadata
// string timeline.
func (d *DataLogReader) EntryMetadataTimeline(key string) ([]TimestampedString, bool) {
	e, ok := d.byName[key]
	if !ok {
		return nil, false
	}

	return e.metadata, true
}

// EntryTypeTimeline returns key's full, timestamp-sorted declared-type
// string timeline.
func (d *DataLogReader) EntryTypeTimeline(key string) ([]TimestampedString, bool) {
	e, ok := d.byName[key]
	if !ok {
		return nil, false
	}

	return e.types, true
}

// EntryLifeStatus returns key's current lifecycle state.
func (d *DataLogReader) EntryLifeStatus(key string) (LifeStatus, bool) {
	e, ok := d.byName[key]
	if !ok {
		return LifeStatus{}, false
	}

	return e.status, true
}

func filterValues(values []TimestampedValue, keep func(TimestampedValue) bool) []TimestampedValue {
	out := make([]TimestampedValue, 0, len(values))
	for _, v := range values {
		if keep(v) {
			out = append(out, v)
		}
	}

	return out
}
