// Package retry holds the delete-under-contention policy.
//
// Recursive deletes on a live filesystem fail intermittently: a handle that
// was just closed, a scanner holding a lock, or a concurrent writer filling
// a directory while it is being removed. The Executor retries an operation
// while a Classifier reports its error as transient, sleeping per a backoff
// built from a Policy.
//
// The default Policy is unbounded: the operation is retried until it
// succeeds or fails permanently. MaxAttempts, MaxElapsed and the context
// passed to Execute are the opt-in ways out.
//
// # Example Usage
//
//	executor := retry.NewExecutor(retry.DefaultPolicy(), retry.IOClassifier{})
//	err := executor.Execute(ctx, func() error {
//	    return os.RemoveAll(dir)
//	})
package retry
