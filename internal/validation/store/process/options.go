// Package process holds the ValidationProcess repository backends.
//
// Every backend applies the same lifecycle rules (models.ValidationProcess.Transition) and
// reports unknown ids as models.ErrProcessNotFound. Only one background execution ever
// writes a given process id, so backends need atomic single-record updates but no
// cross-record coordination.
package process

import "time"

// Clock returns the current time. Injected for tests.
type Clock func() time.Time

type options struct {
	clock     Clock
	table     string
	keyPrefix string
}

// Option configures a process store.
type Option func(*options)

// WithClock sets the clock used for created/updated timestamps.
func WithClock(clock Clock) Option {
	return func(o *options) {
		if clock != nil {
			o.clock = clock
		}
	}
}

// WithTable overrides the SQL table name (Postgres and SQLite backends).
func WithTable(table string) Option {
	return func(o *options) {
		if table != "" {
			o.table = table
		}
	}
}

// WithKeyPrefix overrides the Redis key prefix.
func WithKeyPrefix(prefix string) Option {
	return func(o *options) {
		if prefix != "" {
			o.keyPrefix = prefix
		}
	}
}

const (
	defaultTable     = "validation_processes"
	defaultKeyPrefix = "validation:process:"
)

func buildOptions(opts []Option) options {
	o := options{
		clock:     func() time.Time { return time.Now().UTC() },
		table:     defaultTable,
		keyPrefix: defaultKeyPrefix,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}
