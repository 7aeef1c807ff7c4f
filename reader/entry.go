package reader

import "github.com/robolog/wpilog/value"

// LifeStatus is an entry's lifecycle state: Alive since a start
// timestamp, or Dead between a start and an end timestamp. The reader
// ignores a second Start for an already-Alive entry and ignores a
// Finish for an already-Dead one; a Start for a Dead entry id marks it
// Alive again with the new start timestamp.
type LifeStatus struct {
	Alive bool
	Start uint64
	End   uint64
}

// TimestampedValue pairs a decoded value with the timestamp it was
// recorded at.
type TimestampedValue struct {
	Timestamp uint64
	Value     value.Value
}

// TimestampedString pairs a metadata or type string with the timestamp
// it was attached at.
type TimestampedString struct {
	Timestamp uint64
	Value     string
}

// entry holds everything the reader knows about one logical timeline:
// its lifecycle, and its three timestamp-sorted timelines.
type entry struct {
	id     uint32
	name   string
	status LifeStatus

	values   []TimestampedValue
	metadata []TimestampedString
	types    []TimestampedString
}
