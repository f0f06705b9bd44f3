// Package iocache is for caching report I/O between calls of a long-lived process.
package iocache

import (
	"context"
	"os"
	"sync"
	"time"

	"github.com/huangsam/awrlens/core/parser"
	"github.com/huangsam/awrlens/internal/contract"
)

// fileStamp identifies one version of a file on disk.
type fileStamp struct {
	size    int64
	modTime time.Time
}

func (s fileStamp) matches(other fileStamp) bool {
	return s.size == other.size && s.modTime.Equal(other.modTime)
}

type entry struct {
	stamp  fileStamp
	result *parser.Result
}

// CachingLoader memoizes parse results per path until the file changes.
// Cached results are shared and must be treated as read-only.
type CachingLoader struct {
	sync.RWMutex // Protects entries
	next         contract.ReportLoader
	entries      map[string]entry
}

var _ contract.ReportLoader = &CachingLoader{} // Compile-time check

// NewCachingLoader wraps next with an in-memory cache.
func NewCachingLoader(next contract.ReportLoader) *CachingLoader {
	return &CachingLoader{next: next, entries: make(map[string]entry)}
}

// Load implements the ReportLoader interface.
func (c *CachingLoader) Load(ctx context.Context, path string) (*parser.Result, error) {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		// Let the wrapped loader report the error with its own taxonomy.
		return c.next.Load(ctx, path)
	}
	stamp := fileStamp{size: info.Size(), modTime: info.ModTime()}

	c.RLock()
	e, ok := c.entries[path]
	c.RUnlock()
	if ok && e.stamp.matches(stamp) {
		return e.result, nil
	}

	res, err := c.next.Load(ctx, path)
	if err != nil {
		return nil, err
	}
	c.Lock()
	c.entries[path] = entry{stamp: stamp, result: res}
	c.Unlock()
	return res, nil
}

// Len returns the number of cached reports.
func (c *CachingLoader) Len() int {
	c.RLock()
	defer c.RUnlock()
	return len(c.entries)
}

// Purge drops every cached report.
func (c *CachingLoader) Purge() {
	c.Lock()
	defer c.Unlock()
	clear(c.entries)
}
