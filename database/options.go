package database

import (
	"io"

	"github.com/go-kdbv1/kdbv1/internal/options"
	"github.com/go-kdbv1/kdbv1/logx"
)

// Option represents a functional option for configuring a Database.
type Option = options.Option[*Database]

// WithRounds overrides the key-stretching round count used by New and by
// Write when it re-derives the key. Ignored by Read, which always uses the
// round count recorded in the file's header.
func WithRounds(n uint32) Option {
	return options.NoError(func(d *Database) {
		d.rounds = n
	})
}

// WithLogger sets the Logger warnings (e.g. orphaned entries dropped while
// building the hierarchy) are reported through. Defaults to logx.Nop().
func WithLogger(l logx.Logger) Option {
	return options.NoError(func(d *Database) {
		if l != nil {
			d.logger = l
		}
	})
}

// WithRandSource overrides the source of randomness used for header seeds/
// IV and group id generation. Defaults to crypto/rand.Reader; intended for
// deterministic tests.
func WithRandSource(r io.Reader) Option {
	return options.NoError(func(d *Database) {
		if r != nil {
			d.rand = r
		}
	})
}
