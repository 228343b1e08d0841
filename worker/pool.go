// Package worker provides the goroutine pool used for parallel file
// parsing and serialization. All pipeline concurrency goes through a Pool
// so panics in one file never take down a whole pass.
package worker

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"
)

// ErrPoolClosed is returned when submitting to a released pool.
var ErrPoolClosed = errors.New("worker pool is closed")

// Task is a context-aware task function.
type Task func(ctx context.Context)

// Pool wraps ants.Pool with context-aware submission.
type Pool struct {
	pool *ants.Pool
	log  *zap.Logger
}

// NewPool creates a pool of size workers. Size 0 or below means one
// worker per file batch is pointless, so it falls back to 4.
func NewPool(size int, log *zap.Logger) (*Pool, error) {
	if size <= 0 {
		size = 4
	}
	if log == nil {
		log = zap.NewNop()
	}

	panicHandler := func(p interface{}) {
		log.Error("worker panic recovered",
			zap.Any("panic", p),
			zap.Stack("stack"),
		)
	}

	antsPool, err := ants.NewPool(size,
		ants.WithPanicHandler(panicHandler),
		ants.WithNonblocking(false),
		ants.WithExpiryDuration(10*time.Second),
	)
	if err != nil {
		return nil, err
	}

	return &Pool{pool: antsPool, log: log}, nil
}

// Submit submits a context-aware task. The task receives the caller's
// context and should check ctx.Done() at blocking points. If the context
// is already cancelled, returns ctx.Err() without submitting.
func (p *Pool) Submit(ctx context.Context, task Task) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	err := p.pool.Submit(func() {
		// May have been cancelled while queued.
		select {
		case <-ctx.Done():
			p.log.Debug("task skipped: context cancelled", zap.Error(ctx.Err()))
			return
		default:
		}
		task(ctx)
	})
	if errors.Is(err, ants.ErrPoolClosed) {
		return ErrPoolClosed
	}
	return err
}

// Map runs fn over every index in [0, n) on the pool and waits for all of
// them. The first submission error aborts remaining submissions; tasks
// already running complete. Cancellation mid-run returns ctx.Err() once
// every queued task has drained: the WaitGroup is signalled on the skip
// path too, never only inside fn.
func (p *Pool) Map(ctx context.Context, n int, fn func(ctx context.Context, i int)) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		i := i
		wg.Add(1)
		err := p.pool.Submit(func() {
			defer wg.Done()
			if ctx.Err() != nil {
				return
			}
			fn(ctx, i)
		})
		if err != nil {
			wg.Done()
			wg.Wait()
			if errors.Is(err, ants.ErrPoolClosed) {
				return ErrPoolClosed
			}
			return err
		}
	}
	wg.Wait()
	return ctx.Err()
}

// Release shuts the pool down, waiting up to 30s for running tasks.
func (p *Pool) Release() {
	if err := p.pool.ReleaseTimeout(30 * time.Second); err != nil {
		p.log.Warn("pool shutdown timeout", zap.Error(err))
	}
}

// Running returns the number of currently running workers.
func (p *Pool) Running() int {
	return p.pool.Running()
}

// Cap returns the pool capacity.
func (p *Pool) Cap() int {
	return p.pool.Cap()
}
