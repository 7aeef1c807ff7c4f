package reader

// EntryFilterReader composes a time bound with optional metadata and
// type predicates over one entry's value timeline. A predicate is
// matched against the most recent metadata/type timeline entry with
// timestamp <= the value's timestamp; if no such entry exists when a
// predicate is set, the value is rejected.
type EntryFilterReader struct {
	reader *DataLogReader
	key    string

	hasAfter   bool
	after      uint64
	hasBefore  bool
	before     uint64
	hasBetween bool
	betweenLo  uint64
	betweenHi  uint64

	metadataPredicate func(string) bool
	typePredicate     func(string) bool
}

// NewEntryFilterReader builds a filter over key's timeline in r. With no
// bounds or predicates set, Run returns the full timeline.
func NewEntryFilterReader(r *DataLogReader, key string) *EntryFilterReader {
	return &EntryFilterReader{reader: r, key: key}
}

// After restricts results to timestamp > t.
func (f *EntryFilterReader) After(t uint64) *EntryFilterReader {
	f.hasAfter = true
	f.after = t
	return f
}

// Before restricts results to timestamp < t.
func (f *EntryFilterReader) Before(t uint64) *EntryFilterReader {
	f.hasBefore = true
	f.before = t
	return f
}

// Between restricts results to lo <= timestamp <= hi.
func (f *EntryFilterReader) Between(lo, hi uint64) *EntryFilterReader {
	f.hasBetween = true
	f.betweenLo = lo
	f.betweenHi = hi
	return f
}

// WithMetadata keeps only values whose most-recent-at-or-before metadata
// entry satisfies predicate.
func (f *EntryFilterReader) WithMetadata(predicate func(string) bool) *EntryFilterReader {
	f.metadataPredicate = predicate
	return f
}

// WithType keeps only values whose most-recent-at-or-before type entry
// satisfies predicate.
func (f *EntryFilterReader) WithType(predicate func(string) bool) *EntryFilterReader {
	f.typePredicate = predicate
	return f
}

// RequiredType is a WithType convenience that keeps only values whose
// most-recent-at-or-before type entry exactly matches typeStr.
func (f *EntryFilterReader) RequiredType(typeStr string) *EntryFilterReader {
	return f.WithType(func(s string) bool { return s == typeStr })
}

// Run evaluates the filter and returns the matching values.
func (f *EntryFilterReader) Run() []TimestampedValue {
	values, ok := f.reader.ReadEntry(f.key)
	if !ok {
		return nil
	}

	var metaTimeline, typeTimeline []TimestampedString
	if f.metadataPredicate != nil {
		metaTimeline, _ = f.reader.EntryMetadataTimeline(f.key)
	}
	if f.typePredicate != nil {
		typeTimeline, _ = f.reader.EntryTypeTimeline(f.key)
	}

	out := make([]TimestampedValue, 0, len(values))
	for _, v := range values {
		if f.hasAfter && v.Timestamp <= f.after {
			continue
		}
		if f.hasBefore && v.Timestamp >= f.before {
			continue
		}
		if f.hasBetween && (v.Timestamp < f.betweenLo || v.Timestamp > f.betweenHi) {
			continue
		}

		if f.metadataPredicate != nil {
			s, ok := mostRecentAtOrBefore(metaTimeline, v.Timestamp)
			if !ok || !f.metadataPredicate(s) {
				continue
			}
		}
		if f.typePredicate != nil {
			s, ok := mostRecentAtOrBefore(typeTimeline, v.Timestamp)
			if !ok || !f.typePredicate(s) {
				continue
			}
		}

		out = append(out, v)
	}

	return out
}

// mostRecentAtOrBefore returns the value of the last timeline entry with
// Timestamp <= t. Timeline is assumed sorted ascending by timestamp, as
// every timeline a DataLogReader produces is.
func mostRecentAtOrBefore(timeline []TimestampedString, t uint64) (string, bool) {
	found := false
	var s string
	for _, e := range timeline {
		if e.Timestamp > t {
			break
		}
		s = e.Value
		found = true
	}

	return s, found
}
