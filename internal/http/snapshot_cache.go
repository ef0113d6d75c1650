package http

import (
	"sync"

	"github.com/wojciech-zurek/the-secret-project/internal/core"
)

// SnapshotCache is an AccountSource that becomes ready once the host
// publishes the end-of-run snapshots.
type SnapshotCache struct {
	mu        sync.RWMutex
	snapshots []core.Snapshot
	ready     bool
}

func (c *SnapshotCache) Publish(snapshots []core.Snapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.snapshots = snapshots
	c.ready = true
}

func (c *SnapshotCache) Snapshots() ([]core.Snapshot, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.snapshots, c.ready
}
