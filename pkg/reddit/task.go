package reddit

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/xid"
)

// Task is the handle of an operation running in the background. Callers may
// wait for its outcome, poll it, or drop the handle entirely.
type Task[T any] struct {
	id     string
	done   chan struct{}
	once   sync.Once
	result T
	err    error
}

// RunTask starts fn on a new goroutine. The context handed to fn keeps the
// values of ctx but is never canceled by it, so the operation outlives the
// caller's request scope. onFailure, when non-nil, is invoked with the task ID
// and error if fn fails.
func RunTask[T any](ctx context.Context, fn func(ctx context.Context) (T, error), onFailure func(id string, err error)) *Task[T] {
	task := &Task[T]{
		id:   xid.New().String(),
		done: make(chan struct{}),
	}

	taskCtx := context.WithoutCancel(ctx)

	go func() {
		var (
			result T
			err    error
		)

		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("task %s panicked: %v", task.id, r)
			}

			if err != nil && onFailure != nil {
				onFailure(task.id, err)
			}

			task.complete(result, err)
		}()

		result, err = fn(taskCtx)
	}()

	return task
}

func (t *Task[T]) complete(result T, err error) {
	t.once.Do(func() {
		t.result = result
		t.err = err
		close(t.done)
	})
}

// ID returns the task identifier.
func (t *Task[T]) ID() string {
	return t.id
}

// Done is closed once the operation has finished.
func (t *Task[T]) Done() <-chan struct{} {
	return t.done
}

// Wait blocks until the operation finishes or ctx is done.
func (t *Task[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-t.done:
		return t.result, t.err
	case <-ctx.Done():
		var zero T

		return zero, fmt.Errorf("waiting for task %s: %w", t.id, ctx.Err())
	}
}

// Result returns the outcome without blocking. It reports ErrTaskPending while
// the operation is still running.
func (t *Task[T]) Result() (T, error) {
	select {
	case <-t.done:
		return t.result, t.err
	default:
		var zero T

		return zero, ErrTaskPending
	}
}
