package redis

const (
	// KeyPrefixHits is the prefix for per-mount hit counters (sorted sets)
	KeyPrefixHits = "assetd:hits:"
)

// HitsKey returns the Redis key holding the hit counters of a mount.
// The server-root mount (empty prefix) is stored under "/".
func HitsKey(mount string) string {
	if mount == "" {
		mount = "/"
	}
	return KeyPrefixHits + mount
}
