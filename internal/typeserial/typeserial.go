// Package typeserial computes the 32-bit type-serial fingerprint used to
// cheaply identify a type string, and tracks the entry id → type-serial
// binding built up while ingesting or writing a log.
//
// Data records do not carry their type inline; only the entry id they
// belong to. The fingerprint of the type string named in that entry's
// most recent Start record is what a Data record is actually checked
// against; Metadata records carry no type and leave the binding as is. The fingerprint is intentionally simple
// and non-cryptographic: a collision between two distinct type strings
// is tolerated, not treated as an error, since it only risks an
// imprecise type match rather than data corruption.
package typeserial

import "github.com/robolog/wpilog/value"

// Fingerprint computes the type-serial of a type string. For a string s
// of length L, characters are walked with a 1-based index i and
// accumulated as sum += codepoint(i) * (i mod 8), so the multiplier
// cycles through 1,2,3,4,5,6,7,0 as i advances. The result is
// sum*L + L, truncated to 32 bits.
func Fingerprint(s string) uint32 {
	runes := []rune(s)
	l := uint64(len(runes))

	var sum uint64
	for idx, r := range runes {
		i := uint64(idx + 1)
		sum += uint64(r) * (i % 8)
	}

	return uint32(sum*l + l)
}

var primitiveSerials = func() map[uint32]value.Kind {
	primitives := []value.Kind{
		value.KindRaw, value.KindBoolean, value.KindInt64, value.KindFloat,
		value.KindDouble, value.KindString, value.KindBooleanArray,
		value.KindInt64Array, value.KindFloatArray, value.KindDoubleArray,
		value.KindStringArray,
	}
	m := make(map[uint32]value.Kind, len(primitives))
	for _, k := range primitives {
		m[Fingerprint(k.TypeString())] = k
	}

	return m
}()

// KindForSerial resolves a type-serial to one of the eleven primitive
// kinds. ok is false when the serial does not belong to the known
// primitive set, in which case a caller decoding a data record falls
// back to KindRaw.
func KindForSerial(serial uint32) (value.Kind, bool) {
	k, ok := primitiveSerials[serial]
	return k, ok
}

// Tracker maintains the entry id → type-serial binding built up while
// walking a log's control records.
type Tracker struct {
	serials map[uint32]uint32
}

// NewTracker returns an empty Tracker.
func NewTracker() *Tracker {
	return &Tracker{serials: make(map[uint32]uint32)}
}

// Bind records entryID as currently bound to the fingerprint of typeStr,
// overwriting any prior binding. The reader calls it for every Start
// control record it applies.
func (t *Tracker) Bind(entryID uint32, typeStr string) {
	t.serials[entryID] = Fingerprint(typeStr)
}

// BindSerial records entryID as bound to an already-computed serial,
// for callers that hold the serial rather than the type string.
func (t *Tracker) BindSerial(entryID uint32, serial uint32) {
	t.serials[entryID] = serial
}

// Forget removes entryID's binding, used when an entry is closed via a
// Finish control record.
func (t *Tracker) Forget(entryID uint32) {
	delete(t.serials, entryID)
}

// SerialOf returns the type-serial currently bound to entryID, if any.
func (t *Tracker) SerialOf(entryID uint32) (uint32, bool) {
	s, ok := t.serials[entryID]
	return s, ok
}

// Matches reports whether typeStr's fingerprint equals entryID's bound
// type-serial.
func (t *Tracker) Matches(entryID uint32, typeStr string) bool {
	bound, ok := t.serials[entryID]
	if !ok {
		return false
	}

	return bound == Fingerprint(typeStr)
}
