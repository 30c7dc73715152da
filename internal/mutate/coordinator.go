// Package mutate implements the optimistic mutation protocol: snapshot,
// optimistic cache write, network call, then confirm or rollback.
//
// Mutations against the same primary key settle on a per-key FIFO queue and
// share a rollback window: the coordinator keeps one base snapshot per key
// taken before the earliest still-pending mutation, and rebuilds the cache
// from that base whenever an outcome lands out of the optimistic order. The
// optimistic write still happens synchronously, before Run returns, which is
// what keeps the UI instantaneous.
package mutate

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/carejourney/client-go/internal/cache"
	clierrors "github.com/carejourney/client-go/internal/errors"
	"github.com/carejourney/client-go/internal/job"
	"github.com/carejourney/client-go/internal/shardqueue"
	"github.com/carejourney/client-go/internal/types"
)

// Executor abstracts the shard executor that serializes settlement per key.
type Executor interface {
	Submit(ctx context.Context, key string, j shardqueue.Job) error
	Barrier(ctx context.Context, key string) error
}

// Notifier is the single user-facing channel for mutation failures.
type Notifier interface {
	Notify(severity Severity, message string)
}

// Severity grades a notification.
type Severity string

const (
	SeverityInfo  Severity = "info"
	SeverityError Severity = "error"
)

// Mutation describes one write operation end to end.
type Mutation struct {
	// Name labels metrics and logs, e.g. "delete-schedule-item".
	Name string

	// Keys lists every cache entry the mutation touches. Keys[0] is the
	// primary key; settlement is serialized on its shard and mutations
	// sharing it roll back as one window.
	Keys []cache.Key

	// Apply performs the optimistic cache writes assuming success. It must
	// be a pure function of the current cache state: the coordinator replays
	// it when an overlapping mutation on the same primary key rolls back.
	Apply func()

	// Call issues the gateway request.
	Call func(ctx context.Context) error

	// Confirm, when set, merges server-returned canonical data into the
	// cache after a successful Call. When nil the optimistic state stands
	// as authoritative.
	Confirm func()

	// Invalidate lists dependent cache keys marked stale after a successful
	// settlement, strictly after Confirm.
	Invalidate []cache.Key

	// OnSettled runs unconditionally once the mutation settles, success or
	// failure (e.g. closing an editor view). The error is nil on success.
	OnSettled func(err error)
}

// pendingOp is one enqueued mutation inside a rollback window.
type pendingOp struct {
	m Mutation
}

// window tracks the mutations in flight for one primary key. base holds deep
// snapshots of every touched key as of the moment the earliest pending
// mutation applied its optimistic write; ops is FIFO, ops[0] settles next.
type window struct {
	keys []cache.Key
	base []cache.Snapshot
	ops  []*pendingOp
}

func (w *window) covers(k cache.Key) bool {
	ks := k.String()
	for _, have := range w.keys {
		if have.String() == ks {
			return true
		}
	}
	return false
}

func (w *window) drop(op *pendingOp) {
	for i, p := range w.ops {
		if p == op {
			w.ops = append(w.ops[:i], w.ops[i+1:]...)
			return
		}
	}
}

// Coordinator orchestrates mutations over the cache, gateway ops and the
// shard executor.
type Coordinator struct {
	store  *cache.Store
	exec   Executor
	notify Notifier

	mu      sync.Mutex
	windows map[string]*window // primary key -> in-flight window
}

// New constructs a Coordinator. notify must not be nil.
func New(store *cache.Store, exec Executor, notify Notifier) *Coordinator {
	return &Coordinator{store: store, exec: exec, notify: notify, windows: make(map[string]*window)}
}

// Run executes the optimistic protocol for m:
//
//  1. join (or open) the rollback window for m.Keys[0], snapshotting any
//     touched key the window does not cover yet
//  2. Apply the optimistic transformation synchronously
//  3. enqueue settlement on the shard of m.Keys[0]
//
// Run returns as soon as the settlement is queued; the cache already
// reflects the optimistic result. If enqueueing fails (closed executor,
// back-pressure) the optimistic write is unwound and the error returned —
// nothing was sent, so nothing needs notifying.
func (c *Coordinator) Run(ctx context.Context, m Mutation) (*types.EnqueueAck, error) {
	if len(m.Keys) == 0 || m.Apply == nil || m.Call == nil {
		return nil, clierrors.NewValidationError("incomplete mutation: " + m.Name)
	}
	primary := m.Keys[0].String()

	c.mu.Lock()
	w := c.windows[primary]
	if w == nil {
		w = &window{}
		c.windows[primary] = w
	}
	for _, k := range m.Keys {
		if w.covers(k) {
			continue
		}
		// The key is untouched by earlier pending ops of this window, so its
		// current state doubles as its window-start state.
		snap, err := c.store.Snapshot(k)
		if err != nil {
			if len(w.ops) == 0 {
				delete(c.windows, primary)
			}
			c.mu.Unlock()
			return nil, err
		}
		w.keys = append(w.keys, k)
		w.base = append(w.base, snap)
	}
	op := &pendingOp{m: m}
	w.ops = append(w.ops, op)

	m.Apply()
	c.mu.Unlock()

	settle := job.New(func(jobCtx context.Context) error {
		c.settle(jobCtx, primary, op)
		return nil
	})

	// An in-flight mutation runs to completion even if the caller's view
	// goes away, so settlement is detached from the caller's cancellation.
	// The enqueue wait itself is bounded by the executor's timeout.
	detached := context.WithoutCancel(ctx)
	if err := c.exec.Submit(detached, primary, settle); err != nil {
		c.unwind(primary, op)
		return nil, err
	}
	return &types.EnqueueAck{Key: primary, Status: "applied"}, nil
}

// Await blocks until every previously queued settlement for key has run.
func (c *Coordinator) Await(ctx context.Context, key cache.Key) error {
	return c.exec.Barrier(ctx, key.String())
}

// settle drives one queued mutation to its terminal state. FIFO settlement
// per primary key means op is always the head of its window.
func (c *Coordinator) settle(ctx context.Context, primary string, op *pendingOp) {
	m := op.m
	shard := job.ShardLabel(primary)
	err := m.Call(ctx)

	c.mu.Lock()
	w := c.windows[primary]
	w.drop(op)
	if err == nil {
		if len(w.ops) == 0 {
			if m.Confirm != nil {
				m.Confirm()
			}
			delete(c.windows, primary)
		} else {
			// Later mutations are still pending; fold the confirmed op into
			// the window base so their rollback can no longer undo it.
			c.rebase(w, m)
		}
		// Dependent invalidation is ordered strictly after the confirmed
		// write.
		for _, k := range m.Invalidate {
			c.store.Invalidate(k)
		}
		settledTotal.WithLabelValues(m.Name, "confirmed", shard).Inc()
		c.mu.Unlock()
	} else {
		// Rewind to the window base, then replay the optimistic writes of
		// the mutations still pending so only the failed op's effect is
		// removed.
		c.restoreBase(w)
		for _, p := range w.ops {
			p.m.Apply()
		}
		if len(w.ops) == 0 {
			delete(c.windows, primary)
		}
		c.mu.Unlock()
		c.notify.Notify(SeverityError, userMessage(err))
		settledTotal.WithLabelValues(m.Name, "rolled_back", shard).Inc()
		log.Warn().Err(err).Str("mutation", m.Name).Msg("mutation rolled back")
	}

	if m.OnSettled != nil {
		m.OnSettled(err)
	}
}

// rebase advances the window base past one confirmed mutation: rewind to the
// old base, apply and confirm the settled op, re-snapshot, then replay the
// pending optimistic writes on top. Readers may briefly observe the
// intermediate states; each is a value the cache legitimately held.
func (c *Coordinator) rebase(w *window, m Mutation) {
	c.restoreBase(w)
	m.Apply()
	if m.Confirm != nil {
		m.Confirm()
	}
	for i, k := range w.keys {
		snap, err := c.store.Snapshot(k)
		if err != nil {
			// Keep the previous snapshot for this key; a later rollback may
			// then undo the confirmed op, which is the lesser failure.
			log.Error().Err(err).Str("key", k.String()).Msg("window rebase snapshot failed")
			continue
		}
		w.base[i] = snap
	}
	for _, p := range w.ops {
		p.m.Apply()
	}
}

// unwind removes an op whose settlement was never enqueued and rebuilds the
// window without it.
func (c *Coordinator) unwind(primary string, op *pendingOp) {
	c.mu.Lock()
	defer c.mu.Unlock()
	w := c.windows[primary]
	w.drop(op)
	c.restoreBase(w)
	for _, p := range w.ops {
		p.m.Apply()
	}
	if len(w.ops) == 0 {
		delete(c.windows, primary)
	}
}

// restoreBase rewinds every window key to its base snapshot, last taken
// first.
func (c *Coordinator) restoreBase(w *window) {
	for i := len(w.base) - 1; i >= 0; i-- {
		c.store.Restore(w.base[i])
	}
}

func userMessage(err error) string {
	if ge, ok := err.(*clierrors.GatewayError); ok {
		return ge.UserMessage()
	}
	return "something went wrong, please try again"
}
