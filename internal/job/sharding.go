package job

import (
	"fmt"
	"hash/fnv"
)

// ShardLabel hashes a cache key to a stable small-cardinality metric label
// (0-31) so per-key counters stay bounded.
func ShardLabel(cacheKey string) string {
	h := fnv.New32a()
	_, _ = h.Write([]byte(cacheKey))
	return fmt.Sprintf("%d", h.Sum32()%32)
}
