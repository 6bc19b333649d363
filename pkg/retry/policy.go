package retry

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// Unbounded disables the attempt bound.
const Unbounded = -1

// Policy configures retry timing.
type Policy struct {
	// InitialDelay is the delay before the first retry.
	InitialDelay time.Duration
	// MaxDelay caps the delay between retries.
	MaxDelay time.Duration
	// Multiplier grows the delay after each retry.
	Multiplier float64
	// Jitter randomizes each delay by +/- the given fraction.
	Jitter float64
	// MaxAttempts is the number of retries after the first attempt.
	// Unbounded (-1) retries until success or a permanent error.
	MaxAttempts int
	// MaxElapsed stops retrying once this much time has passed. Zero means no limit.
	MaxElapsed time.Duration
	// FileDeleteDelay is the pause before the single retry of a file delete.
	FileDeleteDelay time.Duration
}

// DefaultPolicy retries without bound, starting at half a second.
func DefaultPolicy() Policy {
	return Policy{
		InitialDelay:    500 * time.Millisecond,
		MaxDelay:        3 * time.Second,
		Multiplier:      2.0,
		Jitter:          0.1,
		MaxAttempts:     Unbounded,
		MaxElapsed:      0,
		FileDeleteDelay: 500 * time.Millisecond,
	}
}

// Option adjusts a Policy.
type Option func(*Policy)

// WithInitialDelay sets the delay before the first retry.
func WithInitialDelay(d time.Duration) Option {
	return func(p *Policy) {
		p.InitialDelay = d
	}
}

// WithMaxDelay caps the delay between retries.
func WithMaxDelay(d time.Duration) Option {
	return func(p *Policy) {
		p.MaxDelay = d
	}
}

// WithMultiplier sets the growth factor between retries.
func WithMultiplier(m float64) Option {
	return func(p *Policy) {
		p.Multiplier = m
	}
}

// WithJitter sets the randomization fraction (0.0-1.0).
func WithJitter(j float64) Option {
	return func(p *Policy) {
		p.Jitter = j
	}
}

// WithMaxAttempts bounds the number of retries. Unbounded removes the bound.
func WithMaxAttempts(n int) Option {
	return func(p *Policy) {
		p.MaxAttempts = n
	}
}

// WithMaxElapsed bounds the total time spent retrying.
func WithMaxElapsed(d time.Duration) Option {
	return func(p *Policy) {
		p.MaxElapsed = d
	}
}

// WithFileDeleteDelay sets the pause before a file delete is retried.
func WithFileDeleteDelay(d time.Duration) Option {
	return func(p *Policy) {
		p.FileDeleteDelay = d
	}
}

// NewPolicy returns DefaultPolicy with opts applied.
func NewPolicy(opts ...Option) Policy {
	p := DefaultPolicy()
	for _, opt := range opts {
		opt(&p)
	}
	return p
}

// Bounded reports whether the policy can give up on a transient error.
func (p Policy) Bounded() bool {
	return p.MaxAttempts >= 0 || p.MaxElapsed > 0
}

// NewBackOff builds a fresh backoff for one retry loop. It stops when ctx
// is done or the configured bounds are reached.
func (p Policy) NewBackOff(ctx context.Context) backoff.BackOff {
	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = p.InitialDelay
	exp.MaxInterval = p.MaxDelay
	exp.Multiplier = p.Multiplier
	exp.RandomizationFactor = p.Jitter
	exp.MaxElapsedTime = p.MaxElapsed
	exp.Reset()

	var b backoff.BackOff = exp
	if p.MaxAttempts >= 0 {
		b = backoff.WithMaxRetries(b, uint64(p.MaxAttempts))
	}
	return backoff.WithContext(b, ctx)
}
