package reconcile

import (
	"context"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// AlbumCache holds artist album listings for the duration of one sweep.
// Only successful listings are stored, so a cached sweep reaches the same
// outcomes as an uncached one.
type AlbumCache struct {
	mu          sync.RWMutex
	albums      map[string][]Album
	sf          singleflight.Group
	loadTimeout time.Duration
}

// NewAlbumCache creates an empty cache. Each shared load gets loadTimeout
// of its own, independent of the caller that started it; zero or less
// means DefaultLibraryTimeout.
func NewAlbumCache(loadTimeout time.Duration) *AlbumCache {
	if loadTimeout <= 0 {
		loadTimeout = DefaultLibraryTimeout
	}
	return &AlbumCache{
		albums:      make(map[string][]Album),
		loadTimeout: loadTimeout,
	}
}

// Albums returns the cached listing for key or loads it.
// Concurrent misses for the same key share one load. Every caller waits
// under its own ctx: a caller whose deadline passes gets ctx.Err() while
// the load carries on for the others.
func (c *AlbumCache) Albums(ctx context.Context, key string, load func(context.Context) ([]Album, error)) ([]Album, error) {
	// Fast path: check if the listing is already known
	c.mu.RLock()
	albums, ok := c.albums[key]
	c.mu.RUnlock()
	if ok {
		return albums, nil
	}

	ch := c.sf.DoChan(key, func() (interface{}, error) {
		// Double-check after acquiring singleflight lock
		c.mu.RLock()
		albums, ok := c.albums[key]
		c.mu.RUnlock()
		if ok {
			return albums, nil
		}

		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.loadTimeout)
		defer cancel()

		albums, err := load(loadCtx)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.albums[key] = albums
		c.mu.Unlock()
		return albums, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]Album), nil
	}
}

// Len returns the number of cached listings.
func (c *AlbumCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.albums)
}

func albumCacheKey(libraryKey, artistName string) string {
	return libraryKey + "|" + strings.ToLower(artistName)
}
