package cubescene

import (
	"io"
	"log"
	"math/rand"
	"time"
)

// Option configures a Cube.
type Option func(*config)

type config struct {
	turnDuration  time.Duration
	shuffleLength int
	rng           *rand.Rand
	logger        *log.Logger
}

func defaultConfig() *config {
	return &config{
		turnDuration:  DefaultTurnDuration,
		shuffleLength: DefaultShuffleLength,
		rng:           rand.New(rand.NewSource(time.Now().UnixNano())),
		logger:        log.New(io.Discard, "", 0),
	}
}

// WithTurnDuration sets how long one face turn animates for.
func WithTurnDuration(d time.Duration) Option {
	return func(c *config) {
		if d > 0 {
			c.turnDuration = d
		}
	}
}

// WithShuffleLength sets the number of moves in generated shuffles.
func WithShuffleLength(n int) Option {
	return func(c *config) {
		if n >= 0 {
			c.shuffleLength = n
		}
	}
}

// WithRand sets the randomness source used for shuffle generation.
// Useful for reproducible shuffles.
func WithRand(rng *rand.Rand) Option {
	return func(c *config) {
		if rng != nil {
			c.rng = rng
		}
	}
}

// WithLogger sets a logger for diagnostics (rejected requests, shuffle
// progress). The default discards everything.
func WithLogger(l *log.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}
