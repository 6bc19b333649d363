package retry

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// Executor runs an operation under a Policy.
//
// An Executor is safe for concurrent use; WithOnRetry returns a copy.
type Executor struct {
	policy     Policy
	classifier Classifier
	onRetry    func(attempt int, err error, delay time.Duration)
}

// NewExecutor creates an executor. A nil classifier falls back to IOClassifier.
func NewExecutor(policy Policy, classifier Classifier) *Executor {
	if classifier == nil {
		classifier = IOClassifier{}
	}
	return &Executor{
		policy:     policy,
		classifier: classifier,
	}
}

// Policy returns the executor's policy.
func (e *Executor) Policy() Policy {
	return e.policy
}

// WithOnRetry returns a new Executor that calls callback before each retry.
func (e *Executor) WithOnRetry(callback func(attempt int, err error, delay time.Duration)) *Executor {
	clone := *e
	clone.onRetry = callback
	return &clone
}

// Execute runs op until it succeeds, returns a non-transient error, or the
// backoff stops. It returns nil, the permanent error, the last transient
// error, or the context error.
func (e *Executor) Execute(ctx context.Context, op func() error) error {
	attempt := 0
	operation := func() error {
		err := op()
		if err != nil && !e.classifier.IsTransient(err) {
			return backoff.Permanent(err)
		}
		return err
	}
	notify := func(err error, delay time.Duration) {
		attempt++
		if e.onRetry != nil {
			e.onRetry(attempt, err, delay)
		}
	}
	return backoff.RetryNotify(operation, e.policy.NewBackOff(ctx), notify)
}
