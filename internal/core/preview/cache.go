package preview

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sync/singleflight"
)

// ComputeFunc produces the preview image bytes for a cache miss, typically
// by invoking the compositor.
type ComputeFunc func(ctx context.Context) ([]byte, error)

// Cache is the on-disk preview store with single-flight miss handling: for
// one key, at most one compute runs at a time and concurrent callers join
// its result. Failed computes are not cached; the next request retries.
type Cache struct {
	dir   string
	group singleflight.Group
}

func NewCache(dir string) *Cache {
	return &Cache{dir: dir}
}

// Dir returns the cache directory, swept by the janitor.
func (c *Cache) Dir() string {
	return c.dir
}

// Path returns the canonical artifact path for a key.
func (c *Cache) Path(key string) string {
	return filepath.Join(c.dir, key+".png")
}

// GetOrCompute returns the artifact path for key, computing and persisting
// it on a miss. Callers arriving while a compute for the same key is in
// flight wait for that compute and receive its result, success or failure
// alike. The artifact is fully written to its canonical path before any
// waiter is released.
func (c *Cache) GetOrCompute(ctx context.Context, key string, compute ComputeFunc) (string, error) {
	path := c.Path(key)
	if fileExists(path) {
		return path, nil
	}

	v, err, _ := c.group.Do(key, func() (any, error) {
		// A previous flight may have settled between the caller's disk
		// check and this one.
		if fileExists(path) {
			return path, nil
		}

		data, err := compute(ctx)
		if err != nil {
			return nil, err
		}
		if err := c.persist(path, data); err != nil {
			return nil, err
		}
		return path, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// persist writes the artifact via a temp file and rename, so a concurrent
// reader never observes a partial image at the canonical path.
func (c *Cache) persist(path string, data []byte) error {
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return fmt.Errorf("cache dir: %w", err)
	}
	tmp, err := os.CreateTemp(c.dir, ".partial-*")
	if err != nil {
		return fmt.Errorf("temp artifact: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write artifact: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close artifact: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("publish artifact: %w", err)
	}
	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
