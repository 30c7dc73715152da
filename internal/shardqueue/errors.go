package shardqueue

import (
	"errors"
	"fmt"
)

// ErrExecutorClosed is returned by Submit after Stop has been called.
var ErrExecutorClosed = errors.New("shardqueue: executor closed")

// ErrQueueFull is the sentinel matched by errors.Is for back-pressure
// rejections; the concrete error carries shard detail.
var ErrQueueFull = errors.New("shardqueue: queue full")

// QueueFullError reports that a shard queue stayed full for the whole
// EnqueueTimeout window.
type QueueFullError struct {
	Shard    int
	Length   int
	Capacity int
}

func (e *QueueFullError) Error() string {
	return fmt.Sprintf("shardqueue: shard %d full (%d/%d)", e.Shard, e.Length, e.Capacity)
}

// Is lets errors.Is(err, ErrQueueFull) match.
func (e *QueueFullError) Is(target error) bool { return target == ErrQueueFull }
