// Package cache stores rendered artifacts (SVG/PNG bytes) between runs.
//
// Rendering a tree through Graphviz is the slowest step of the program, and
// its output depends only on the snapshot bytes and the render options. The
// cache keys artifacts by a SHA-256 over both, so any edit to the guest list
// naturally invalidates stale renders.
//
// Three backends implement [Cache]:
//   - [FileCache]: files under the XDG cache dir, for normal CLI use
//   - [NullCache]: never stores anything (--no-cache)
//   - [RedisCache]: shared cache for the HTTP viewer, enabled via config
//
// The cache only ever holds derived artifacts - never graph state. Losing it
// costs a re-render, nothing else.
package cache

import (
	"context"
	"time"
)

// Cache is the interface all backends implement.
type Cache interface {
	// Get retrieves a value. The second result reports a hit.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A ttl of 0 means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// ArtifactKey builds the cache key for a rendered artifact.
// snapshotHash is Hash() over the snapshot bytes; format is the output
// format ("svg", "png", "dot").
func ArtifactKey(snapshotHash, format string) string {
	return "artifact:" + format + ":" + snapshotHash
}
