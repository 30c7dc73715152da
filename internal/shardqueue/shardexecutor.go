// Package shardqueue provides a lightweight sharded work-queue that
// guarantees FIFO order per cache key while allowing parallelism across
// shards. The mutation coordinator uses it to serialize settlement of
// optimistic writes that touch the same cached collection.
//
// Contract: callers must not invoke Submit concurrently for the same key.
// FIFO ordering relies on that external serialisation.
package shardqueue

import (
	"context"
	"hash/fnv"
	"sync"
	"sync/atomic"
	"time"

	backoff "github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog/log"

	"github.com/carejourney/client-go/internal/errors"
)

type queuedJob struct {
	ctx context.Context
	job Job
}

// ShardExecutor executes Jobs on worker goroutines partitioned by a stable
// hash of the key (the primary cache key of a mutation). FIFO ordering is
// preserved within a shard; jobs with different keys may run in parallel.
type ShardExecutor struct {
	cfg    Config
	queues []chan queuedJob // len == cfg.Shards

	done   chan struct{} // closed in Stop()
	closed uint32        // 0 running, 1 closed

	wg sync.WaitGroup
}

// NewShardExecutor constructs the executor and starts its shard workers.
func NewShardExecutor(cfg Config) *ShardExecutor {
	if cfg.Shards <= 0 {
		cfg.Shards = 4
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 128
	}
	if cfg.EnqueueTimeout <= 0 {
		cfg.EnqueueTimeout = 100 * time.Millisecond
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 1
	}
	if cfg.BaseBackoff <= 0 {
		cfg.BaseBackoff = 100 * time.Millisecond
	}
	if cfg.MaxInterval <= 0 {
		cfg.MaxInterval = 20 * time.Second
	}

	ex := &ShardExecutor{
		cfg:    cfg,
		queues: make([]chan queuedJob, cfg.Shards),
		done:   make(chan struct{}),
	}
	for i := 0; i < cfg.Shards; i++ {
		ch := make(chan queuedJob, cfg.QueueSize)
		ex.queues[i] = ch
		ex.wg.Add(1)
		go ex.runWorker(i, ch)
	}
	return ex
}

// Submit enqueues job on the shard derived from key.
//
//   - Returns nil on success.
//   - Returns ErrExecutorClosed if the executor is stopped.
//   - Returns a *QueueFullError if the shard is still full after
//     EnqueueTimeout elapses.
//   - Returns ctx.Err() if the caller-provided context is cancelled first.
func (ex *ShardExecutor) Submit(ctx context.Context, key string, job Job) error {
	// Reject work after Stop(): the flag may be set before done is closed,
	// and done may close before we observe the flag, so check both.
	if atomic.LoadUint32(&ex.closed) == 1 {
		return ErrExecutorClosed
	}
	select {
	case <-ex.done:
		return ErrExecutorClosed
	default:
	}

	shard := ex.shardFor(key)
	ch := ex.queues[shard]

	timer := time.NewTimer(ex.cfg.EnqueueTimeout)
	defer timer.Stop()

	select {
	case ch <- queuedJob{ctx: ctx, job: job}:
		submissionsTotal.WithLabelValues(labelFor(shard)).Inc()
		return nil

	case <-ex.done: // Stop() may be called while waiting for space
		return ErrExecutorClosed

	case <-ctx.Done():
		return ctx.Err()

	case <-timer.C:
		queueFullTotal.WithLabelValues(labelFor(shard)).Inc()
		return &QueueFullError{Shard: shard, Length: len(ch), Capacity: cap(ch)}
	}
}

// Barrier enqueues a no-op job on the shard for key and waits until it runs,
// ensuring all previously submitted jobs for that key have completed.
func (ex *ShardExecutor) Barrier(ctx context.Context, key string) error {
	done := make(chan struct{})
	j := JobFunc(func(context.Context) error {
		close(done)
		return nil
	})
	if err := ex.Submit(ctx, key, j); err != nil {
		return err
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-done:
		return nil
	}
}

// Stop signals every worker to finish draining its current queue, waits for
// them to terminate, and returns. Idempotent and safe for concurrent use.
func (ex *ShardExecutor) Stop() {
	if !atomic.CompareAndSwapUint32(&ex.closed, 0, 1) {
		return
	}
	log.Debug().Int("shards", ex.cfg.Shards).Msg("shardqueue: stopping executor")
	close(ex.done)
	ex.wg.Wait()
	log.Debug().Msg("shardqueue: executor stopped, all queues drained")
}

// Close lets ShardExecutor satisfy io.Closer.
func (ex *ShardExecutor) Close() error {
	ex.Stop()
	return nil
}

// ------------------------- internals -------------------------

func (ex *ShardExecutor) runWorker(idx int, ch <-chan queuedJob) {
	defer ex.wg.Done()

	// A panicking job must not take down the whole executor.
	defer func() {
		if r := recover(); r != nil {
			log.Error().Int("shard", idx).Interface("panic", r).Msg("shardqueue: worker panic")
		}
	}()

	label := labelFor(idx)

	for {
		select {
		case qj := <-ch:
			ex.runOne(label, qj)
			queueDepth.WithLabelValues(label).Set(float64(len(ch)))

		case <-ex.done:
			// Drain remaining jobs, preserving FIFO, then exit.
			for {
				select {
				case qj := <-ch:
					if qj.job != nil {
						_ = qj.job.Run(qj.ctx)
					}
				default:
					queueDepth.WithLabelValues(label).Set(0)
					return
				}
			}
		}
	}
}

// runOne executes a single queued job with the configured retry policy.
func (ex *ShardExecutor) runOne(label string, qj queuedJob) {
	if qj.job == nil {
		return
	}

	// Honour caller context so a cancelled job doesn't stall the shard.
	select {
	case <-qj.ctx.Done():
		ex.safeHandleError(qj.ctx.Err())
		return
	default:
	}

	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = ex.cfg.BaseBackoff
	exp.Multiplier = 2
	exp.MaxInterval = ex.cfg.MaxInterval
	exp.Reset()

	for attempt := 1; ; attempt++ {
		start := time.Now()
		err := qj.job.Run(qj.ctx)
		runDuration.WithLabelValues(label).Observe(time.Since(start).Seconds())

		if err == nil {
			return
		}
		if errors.IsIrrecoverable(err) || attempt >= ex.cfg.MaxAttempts {
			ex.safeHandleError(err)
			return
		}

		select {
		case <-time.After(exp.NextBackOff()):
		case <-ex.done:
			return
		case <-qj.ctx.Done():
			ex.safeHandleError(qj.ctx.Err())
			return
		}
	}
}

func (ex *ShardExecutor) safeHandleError(err error) {
	if err == nil || ex.cfg.ErrorHandler == nil {
		return
	}
	func() {
		// Guard against panics in the user-supplied handler.
		defer func() {
			if r := recover(); r != nil {
				log.Error().Interface("panic", r).Msg("shardqueue: error handler panic")
			}
		}()
		ex.cfg.ErrorHandler(err)
	}()
}

func (ex *ShardExecutor) shardFor(key string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return int(h.Sum32()) % ex.cfg.Shards
}
