// Package runner drives processors over a record stream. Sequential owns a
// single processor; Sharded partitions clients across a fixed set of worker
// goroutines, each owning a private processor, so no processor is ever
// touched from two goroutines.
package runner

import (
	"context"
	"errors"
	"fmt"
	"io"

	"golang.org/x/sync/errgroup"

	"github.com/wojciech-zurek/the-secret-project/internal/core"
	"github.com/wojciech-zurek/the-secret-project/internal/port"
)

//go:generate go tool go.uber.org/mock/mockgen -source=runner.go -destination=runner_mock.go -package=runner

// Source yields records in input order. Read returns io.EOF once the stream
// is drained; any other error aborts the run.
type Source interface {
	Read() (core.Record, error)
}

// Observer is notified of every record outcome, accepted or rejected.
// Sharded calls Observe from multiple goroutines, so implementations must be
// safe for concurrent use.
type Observer interface {
	Observe(rec core.Record, err error)
}

// Runner consumes a source to completion and exposes the resulting account
// snapshots.
type Runner interface {
	Run(ctx context.Context, src Source) error
	Snapshots() []core.Snapshot
}

type Option func(*options)

type options struct {
	observers []Observer
}

func newOptions(opts []Option) *options {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	return o
}

// WithObserver registers an outcome observer. May be given more than once.
func WithObserver(obs Observer) Option {
	return func(o *options) {
		o.observers = append(o.observers, obs)
	}
}

func (o *options) observe(rec core.Record, err error) {
	for _, obs := range o.observers {
		obs.Observe(rec, err)
	}
}

// Sequential applies every record, in order, to a single processor.
type Sequential struct {
	proc port.Processor
	opts *options
}

func NewSequential(proc port.Processor, opts ...Option) *Sequential {
	return &Sequential{
		proc: proc,
		opts: newOptions(opts),
	}
}

func (r *Sequential) Run(ctx context.Context, src Source) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		rec, err := src.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		r.opts.observe(rec, r.proc.Process(rec))
	}
}

func (r *Sequential) Snapshots() []core.Snapshot {
	return r.proc.Snapshots()
}

// shardQueueDepth bounds how far the dispatcher may run ahead of a worker.
const shardQueueDepth = 256

// Sharded fans records out to workers keyed by client id, so all records of
// one client land on the same processor in arrival order. Cross-client
// ordering is not preserved, which is fine: clients are independent.
type Sharded struct {
	factory func() port.Processor
	workers int
	opts    *options

	procs []port.Processor
}

// NewSharded builds a host with the given worker count; the factory is
// invoked once per worker at the start of a run.
func NewSharded(workers int, factory func() port.Processor, opts ...Option) *Sharded {
	if workers < 1 {
		workers = 1
	}

	return &Sharded{
		factory: factory,
		workers: workers,
		opts:    newOptions(opts),
	}
}

func (r *Sharded) Run(ctx context.Context, src Source) error {
	queues := make([]chan core.Record, r.workers)
	r.procs = make([]port.Processor, r.workers)
	for i := range queues {
		queues[i] = make(chan core.Record, shardQueueDepth)
		r.procs[i] = r.factory()
	}

	g, ctx := errgroup.WithContext(ctx)

	for i := range r.procs {
		proc, queue := r.procs[i], queues[i]
		g.Go(func() error {
			for {
				select {
				case rec, ok := <-queue:
					if !ok {
						return nil
					}

					r.opts.observe(rec, proc.Process(rec))
				case <-ctx.Done():
					return ctx.Err()
				}
			}
		})
	}

	g.Go(func() error {
		defer func() {
			for _, queue := range queues {
				close(queue)
			}
		}()

		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			rec, err := src.Read()
			if errors.Is(err, io.EOF) {
				return nil
			}
			if err != nil {
				return fmt.Errorf("read record: %w", err)
			}

			select {
			case queues[int(rec.Client)%r.workers] <- rec:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	})

	return g.Wait()
}

// Snapshots merges the per-worker snapshots. Each client is owned by exactly
// one worker, so the merge is a plain concatenation.
func (r *Sharded) Snapshots() []core.Snapshot {
	var snapshots []core.Snapshot
	for _, proc := range r.procs {
		snapshots = append(snapshots, proc.Snapshots()...)
	}

	return snapshots
}
