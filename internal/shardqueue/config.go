package shardqueue

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config tunes the shard executor. Zero values are replaced with defaults in
// NewShardExecutor.
type Config struct {
	// Shards is the number of worker goroutines / FIFO queues.
	Shards int `envconfig:"SQ_SHARDS"`
	// QueueSize is the buffered capacity of each shard queue.
	QueueSize int `envconfig:"SQ_QUEUE_SIZE"`
	// EnqueueTimeout bounds how long Submit blocks on a full shard before
	// reporting back-pressure.
	EnqueueTimeout time.Duration `envconfig:"SQ_ENQUEUE_TIMEOUT"`
	// MaxAttempts caps job executions including the first. Mutation
	// settlements run with 1: a settled failure already rolled back and must
	// not be replayed.
	MaxAttempts int `envconfig:"SQ_MAX_ATTEMPTS"`
	// BaseBackoff is the initial retry interval; MaxInterval the ceiling.
	BaseBackoff time.Duration `envconfig:"SQ_BASE_BACKOFF"`
	MaxInterval time.Duration `envconfig:"SQ_MAX_INTERVAL"`

	// ErrorHandler, when set, receives every terminal job error.
	ErrorHandler func(error) `ignored:"true"`
}

// LoadConfig reads Config overrides from SQ_* environment variables.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
