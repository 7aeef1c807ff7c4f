package reader

import (
	"github.com/robolog/wpilog/errs"
	"github.com/robolog/wpilog/internal/bytereader"
)

// Magic is the fixed 6-byte tag every wpilog file begins with.
const Magic = "WPILOG"

// Header is the parsed file header: the format version and the
// free-form metadata string a writer attached at creation time.
type Header struct {
	Version  Version
	Metadata string
}

// parseHeader consumes the file header from r according to cfg and
// returns it, leaving r positioned at the first record.
func parseHeader(r *bytereader.Reader, cfg *config) (Header, error) {
	magic, err := r.Bytes(len(Magic))
	if err != nil {
		return Header{}, errs.ErrNotADataLog
	}
	if cfg.requireMagic && string(magic) != Magic {
		return Header{}, errs.ErrMagicMismatch
	}

	verBytes, err := r.Bytes(2)
	if err != nil {
		return Header{}, errs.ErrNotADataLog
	}
	version := Version{Hi: verBytes[1], Lo: verBytes[0]}
	if cfg.hasVersionCheck && cfg.requiredVersion != nil && version != *cfg.requiredVersion {
		return Header{}, errs.ErrVersionMismatch
	}

	metaLen, err := r.Uint32()
	if err != nil {
		return Header{}, errs.ErrNotADataLog
	}
	metaBytes, err := r.Bytes(int(metaLen))
	if err != nil {
		return Header{}, errs.ErrNotADataLog
	}

	return Header{Version: version, Metadata: toUTF8OrEmpty(metaBytes)}, nil
}

// toUTF8OrEmpty decodes b as UTF-8, falling back to an empty string:
// header metadata is not required to be valid UTF-8, unlike record
// payloads, where invalid UTF-8 drops the whole record instead.
func toUTF8OrEmpty(b []byte) string {
	r := bytereader.New(b)
	s, err := r.String(len(b))
	if err != nil {
		return ""
	}

	return s
}
