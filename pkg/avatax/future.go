package avatax

import (
	"context"
	"fmt"
	"sync"
)

// Future is the handle returned by asynchronous operations. It completes
// exactly once, with either a value or an error. Callbacks registered with
// OnComplete run after completion, in registration order, on the goroutine
// that completed the future (or immediately on the caller's goroutine when the
// future has already completed).
type Future[T any] struct {
	done      chan struct{}
	mu        sync.Mutex
	completed bool
	// dispatching is set while the completing goroutine runs callbacks.
	dispatching bool
	value       T
	err         error
	callbacks   []func(T, error)
}

// NewFuture creates a pending future.
func NewFuture[T any]() *Future[T] {
	return &Future[T]{done: make(chan struct{})}
}

// Resolved creates a future that has already completed.
func Resolved[T any](value T, err error) *Future[T] {
	f := NewFuture[T]()
	f.Complete(value, err)

	return f
}

// Go runs fn on a new goroutine and returns a future for its outcome.
func Go[T any](fn func() (T, error)) *Future[T] {
	f := NewFuture[T]()

	go func() {
		defer func() {
			if r := recover(); r != nil {
				var zero T
				f.Complete(zero, fmt.Errorf("%w: %v", ErrAsyncPanic, r))
			}
		}()

		f.Complete(fn())
	}()

	return f
}

// Complete settles the future. Only the first call has any effect; it
// reports whether this call settled the future.
func (f *Future[T]) Complete(value T, err error) bool {
	f.mu.Lock()
	if f.completed {
		f.mu.Unlock()

		return false
	}

	f.completed = true
	f.value = value
	f.err = err
	f.dispatching = true
	close(f.done)

	for {
		callbacks := f.callbacks
		f.callbacks = nil

		if len(callbacks) == 0 {
			f.dispatching = false
			f.mu.Unlock()

			return true
		}

		f.mu.Unlock()

		for _, callback := range callbacks {
			callback(value, err)
		}

		f.mu.Lock()
	}
}

// Done returns a channel closed once the future completes.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// Get blocks until the future completes.
func (f *Future[T]) Get() (T, error) {
	<-f.done

	return f.value, f.err
}

// Wait blocks until the future completes or ctx is done. Giving up on the wait
// does not cancel the underlying call.
func (f *Future[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.value, f.err
	case <-ctx.Done():
		var zero T

		return zero, ctx.Err()
	}
}

// OnComplete registers a continuation.
func (f *Future[T]) OnComplete(fn func(T, error)) *Future[T] {
	f.mu.Lock()
	if !f.completed || f.dispatching {
		f.callbacks = append(f.callbacks, fn)
		f.mu.Unlock()

		return f
	}
	f.mu.Unlock()

	fn(f.value, f.err)

	return f
}

// Then chains a continuation that only runs on success. Errors propagate to
// the returned future unchanged.
func Then[T, U any](f *Future[T], fn func(T) (U, error)) *Future[U] {
	next := NewFuture[U]()

	f.OnComplete(func(value T, err error) {
		if err != nil {
			var zero U
			next.Complete(zero, err)

			return
		}

		next.Complete(fn(value))
	})

	return next
}

// Catch chains a continuation that only runs on failure, allowing a caller to
// recover with a replacement value.
func Catch[T any](f *Future[T], fn func(error) (T, error)) *Future[T] {
	next := NewFuture[T]()

	f.OnComplete(func(value T, err error) {
		if err == nil {
			next.Complete(value, nil)

			return
		}

		next.Complete(fn(err))
	})

	return next
}
