package writer

import (
	"github.com/robolog/wpilog/clock"
	"github.com/robolog/wpilog/internal/options"
)

type config struct {
	clock clock.Source
}

func defaultConfig() *config {
	return &config{clock: clock.System{}}
}

// Option configures a DataLogWriter at construction time.
type Option = options.Option[*config]

// WithClock overrides the "now" source stamping data and control
// records. Defaults to clock.System.
func WithClock(c clock.Source) Option {
	return options.NoError(func(cfg *config) { cfg.clock = c })
}
