package cache

import "strings"

// keySep joins tuple parts into the map key. A unit separator keeps joined
// keys collision-free for any printable part.
const keySep = "\x1f"

// Key identifies one cached collection: resource family plus discriminator,
// e.g. ("schedules", "appointments") or ("posts", cancerType). Equality is
// structural (tuple-wise).
type Key []string

// NewKey builds a key from its ordered parts.
func NewKey(parts ...string) Key { return Key(parts) }

// String returns the canonical joined form used for map lookup and shard
// hashing.
func (k Key) String() string { return strings.Join(k, keySep) }

// splitKey recovers the tuple parts from a joined map key.
func splitKey(s string) []string { return strings.Split(s, keySep) }

// HasPrefix reports whether k starts with prefix, tuple-wise.
func (k Key) HasPrefix(prefix Key) bool {
	if len(prefix) > len(k) {
		return false
	}
	for i, p := range prefix {
		if k[i] != p {
			return false
		}
	}
	return true
}
