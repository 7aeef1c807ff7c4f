// Package errs enumerates the flat error taxonomy surfaced by wpilog's
// reader and writer packages.
//
// Following the retrieval pack's convention for binary-format libraries,
// every failure mode is a package-level sentinel error. Callers can test
// for a specific condition with errors.Is, and call sites that need more
// context wrap a sentinel with fmt.Errorf("...: %w", errs.ErrXxx) rather
// than introducing a new error type.
package errs

import "errors"

var (
	// ErrMagicMismatch is returned when a file's leading 6 bytes are not
	// "WPILOG" and the reader was configured to require the magic.
	ErrMagicMismatch = errors.New("wpilog: magic mismatch")

	// ErrVersionMismatch is returned when a file's format version does not
	// match the reader's required version.
	ErrVersionMismatch = errors.New("wpilog: version mismatch")

	// ErrNotADataLog is returned when a byte stream cannot be interpreted
	// as a wpilog file at all (distinct from a version/magic mismatch).
	ErrNotADataLog = errors.New("wpilog: not a valid datalog")

	// ErrReadOnlyLog is returned by write operations attempted against a
	// read-only log.
	ErrReadOnlyLog = errors.New("wpilog: datalog is read only")

	// ErrNoSuchEntry is returned when an entry id or key has no bound
	// entry.
	ErrNoSuchEntry = errors.New("wpilog: no such entry")

	// ErrOutsideEntryLifetime is returned when a write or close is
	// attempted against an entry that has already been closed (Dead).
	ErrOutsideEntryLifetime = errors.New("wpilog: outside entry lifetime")

	// ErrEntryAlreadyExists is part of the taxonomy but no operation in
	// this module returns it: an entry creation call that conflicts with
	// an existing entry's type fails with ErrEntryTypeMismatch.
	ErrEntryAlreadyExists = errors.New("wpilog: entry already exists")

	// ErrEntryTypeMismatch is returned when a handle or dynamic write's
	// value type does not match the entry's bound type.
	ErrEntryTypeMismatch = errors.New("wpilog: entry type mismatch")

	// ErrInvalidDataLog is returned when an entry handle is used against a
	// writer other than the one that issued it.
	ErrInvalidDataLog = errors.New("wpilog: entry handle belongs to a different datalog")

	// ErrRecordTooLarge is returned when a record's payload cannot be
	// represented within the framing's length fields.
	ErrRecordTooLarge = errors.New("wpilog: record too large")

	// ErrMetadataTooLarge is returned when header or entry metadata
	// exceeds the 2^32-1 byte limit the format allows.
	ErrMetadataTooLarge = errors.New("wpilog: metadata too large")

	// ErrUnsupportedRecordType is returned when a control record's type
	// discriminator is not one of Start/Finish/Metadata.
	ErrUnsupportedRecordType = errors.New("wpilog: unsupported control record type")

	// ErrShortRecordBuffer is returned by the byte-level cursor whenever a
	// decode operation needs more bytes than remain.
	ErrShortRecordBuffer = errors.New("wpilog: short record buffer")

	// ErrVoidEntryType is returned when a caller attempts to create an
	// entry of the void type, which carries no data.
	ErrVoidEntryType = errors.New("wpilog: cannot create a void entry")
)
