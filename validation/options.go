package validation

import (
	"github.com/YuminosukeSato/sciboot/core/rng"
	"github.com/YuminosukeSato/sciboot/pkg/log"
)

// Option configures resampling and validation runs.
type Option func(*config)

type config struct {
	source  rng.Source
	workers int
	logger  log.Logger
}

func newConfig(opts []Option) *config {
	c := &config{}
	for _, opt := range opts {
		opt(c)
	}
	if c.source == nil {
		c.source = rng.Default()
	}
	if c.logger == nil {
		c.logger = log.GetLoggerWithName("validation")
	}
	return c
}

// WithSource sets the random source. The default is the process-wide source.
func WithSource(src rng.Source) Option {
	return func(c *config) {
		c.source = src
	}
}

// WithSeed uses a reproducible source seeded with seed.
func WithSeed(seed uint64) Option {
	return func(c *config) {
		c.source = rng.New(seed)
	}
}

// WithWorkers runs replications (and per-round training) on up to n
// goroutines. Each bootstrap round then draws from its own stream split off
// the source, so results for a seeded source are identical for every n > 1.
// n <= 1 keeps everything on the calling goroutine.
func WithWorkers(n int) Option {
	return func(c *config) {
		c.workers = n
	}
}

// WithLogger sets the logger used for run diagnostics.
func WithLogger(l log.Logger) Option {
	return func(c *config) {
		c.logger = l
	}
}
