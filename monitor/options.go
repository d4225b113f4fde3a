package monitor

import (
	"time"

	"code.cloudfoundry.org/clock"
)

const (
	DefaultMaxLatency = time.Millisecond * 100
)

type Option func(*options)

func WithMaxLatency(latency time.Duration) Option {
	return func(o *options) {
		o.maxLatency = latency
	}
}

func WithClock(c clock.Clock) Option {
	return func(o *options) {
		o.clock = c
	}
}

type options struct {
	maxLatency time.Duration
	clock      clock.Clock
}

func defaultOptions() *options {
	return &options{
		maxLatency: DefaultMaxLatency,
		clock:      clock.NewClock(),
	}
}
