package wells

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Options carries tunables of the manager. The tubing-head-pressure
// targets are not yet wired to schedule data; until they are, active wells
// get a sentinel target that keeps THP constraints inactive. The sentinels
// stay overridable rather than hard-coded.
type Options struct {
	// InjectorTHPSentinel is the target tubing-head pressure assigned to
	// injectors (very large, so the constraint never binds).
	InjectorTHPSentinel float64 `env:"RESWELL_INJECTOR_THP_SENTINEL" envDefault:"1e100"`

	// ProducerTHPSentinel is the target tubing-head pressure assigned to
	// producers (very negative, so the constraint never binds).
	ProducerTHPSentinel float64 `env:"RESWELL_PRODUCER_THP_SENTINEL" envDefault:"-1e100"`
}

// DefaultOptions returns the built-in sentinel values
func DefaultOptions() Options {
	return Options{
		InjectorTHPSentinel: 1e100,
		ProducerTHPSentinel: -1e100,
	}
}

// OptionsFromEnv loads options from the environment, falling back to the
// defaults for unset variables.
func OptionsFromEnv() (Options, error) {
	var o Options
	if err := env.Parse(&o); err != nil {
		return Options{}, fmt.Errorf("parse env: %w", err)
	}
	return o, nil
}
