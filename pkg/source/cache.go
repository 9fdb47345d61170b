package source

import (
	"github.com/peterbourgon/diskv/v3"
)

const snapshotKey = "snapshot.json"

// SnapshotCache persists the last good raw document so a reload without any
// reachable endpoint can still come up with data, the same role the original
// deployment's service worker played for offline visitors.
type SnapshotCache struct {
	d *diskv.Diskv
}

// OpenCache creates a snapshot cache rooted at basePath.
func OpenCache(basePath string) *SnapshotCache {
	return &SnapshotCache{d: diskv.New(diskv.Options{
		BasePath:     basePath,
		CacheSizeMax: 1024 * 1024, // 1MB
	})}
}

// Put stores the raw document bytes.
func (c *SnapshotCache) Put(data []byte) error {
	return c.d.Write(snapshotKey, data)
}

// Get returns the cached raw document bytes, if present.
func (c *SnapshotCache) Get() ([]byte, bool) {
	data, err := c.d.Read(snapshotKey)
	if err != nil || len(data) == 0 {
		return nil, false
	}
	return data, true
}
