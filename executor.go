package client

import (
	"context"

	"github.com/carejourney/client-go/internal/shardqueue"
)

// executor abstracts the internal settlement runner so tests can stub it.
type executor interface {
	Submit(ctx context.Context, key string, j shardqueue.Job) error
	Barrier(ctx context.Context, key string) error
	Stop()
}
