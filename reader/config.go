package reader

import "github.com/robolog/wpilog/internal/options"

// Version is a file format version. The two on-disk version bytes are
// read swapped (second byte first), so a file written with bytes
// [0x00, 0x01] is seen by the reader as Version{Hi: 1, Lo: 0} rather
// than Version{Hi: 0, Lo: 1}.
type Version struct {
	Hi uint8
	Lo uint8
}

// config holds a DataLogReader's open-time settings.
type config struct {
	requireMagic    bool
	requiredVersion *Version
	hasVersionCheck bool
}

func defaultConfig() *config {
	return &config{
		requireMagic:    true,
		requiredVersion: &Version{Hi: 1, Lo: 0},
		hasVersionCheck: true,
	}
}

// Option configures a DataLogReader at open time.
type Option = options.Option[*config]

// WithRequireMagic controls whether the leading 6 bytes must equal the
// magic tag "WPILOG". Defaults to true.
func WithRequireMagic(require bool) Option {
	return options.NoError(func(c *config) {
		c.requireMagic = require
	})
}

// WithRequiredVersion sets the format version the reader insists on,
// compared against the as-read (swapped) Version. Defaults to Hi: 1, Lo: 0.
func WithRequiredVersion(hi, lo uint8) Option {
	return options.NoError(func(c *config) {
		c.requiredVersion = &Version{Hi: hi, Lo: lo}
		c.hasVersionCheck = true
	})
}

// WithNoVersionCheck disables the format-version check entirely; any
// version byte pair is accepted.
func WithNoVersionCheck() Option {
	return options.NoError(func(c *config) {
		c.hasVersionCheck = false
	})
}
