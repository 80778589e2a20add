package preview

import (
	"context"
	"errors"
	"os"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheHitSkipsCompute(t *testing.T) {
	cache := NewCache(t.TempDir())
	path := cache.Path("abc")
	require.NoError(t, os.WriteFile(path, []byte("png"), 0o644))

	got, err := cache.GetOrCompute(context.Background(), "abc", func(context.Context) ([]byte, error) {
		t.Fatal("compute must not run on a hit")
		return nil, nil
	})
	require.NoError(t, err)
	assert.Equal(t, path, got)
}

func TestCacheMissComputesAndPersists(t *testing.T) {
	cache := NewCache(t.TempDir())

	got, err := cache.GetOrCompute(context.Background(), "k1", func(context.Context) ([]byte, error) {
		return []byte("image-bytes"), nil
	})
	require.NoError(t, err)
	assert.Equal(t, cache.Path("k1"), got)

	data, err := os.ReadFile(got)
	require.NoError(t, err)
	assert.Equal(t, []byte("image-bytes"), data)
}

func TestCacheSingleFlight(t *testing.T) {
	cache := NewCache(t.TempDir())

	const callers = 5
	var calls atomic.Int32
	gate := make(chan struct{})

	compute := func(context.Context) ([]byte, error) {
		calls.Add(1)
		<-gate
		return []byte("shared"), nil
	}

	var wg sync.WaitGroup
	paths := make([]string, callers)
	errs := make([]error, callers)
	ready := make(chan struct{}, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ready <- struct{}{}
			paths[i], errs[i] = cache.GetOrCompute(context.Background(), "hot", compute)
		}(i)
	}

	for i := 0; i < callers; i++ {
		<-ready
	}
	close(gate)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load(), "compositor must be invoked exactly once")
	for i := 0; i < callers; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, cache.Path("hot"), paths[i])
	}

	// The flight has settled: the artifact is on disk and no in-flight
	// entry remains, so the next call is a plain disk hit.
	_, err := cache.GetOrCompute(context.Background(), "hot", func(context.Context) ([]byte, error) {
		return nil, errors.New("must not recompute")
	})
	require.NoError(t, err)
}

func TestCacheFailureNotCached(t *testing.T) {
	cache := NewCache(t.TempDir())

	const callers = 3
	gate := make(chan struct{})
	var wg sync.WaitGroup
	errs := make([]error, callers)
	ready := make(chan struct{}, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ready <- struct{}{}
			_, errs[i] = cache.GetOrCompute(context.Background(), "bad", func(context.Context) ([]byte, error) {
				<-gate
				return nil, errors.New("render exploded")
			})
		}(i)
	}
	for i := 0; i < callers; i++ {
		<-ready
	}
	close(gate)
	wg.Wait()

	// All joined callers surface the same failure.
	for i := 0; i < callers; i++ {
		require.Error(t, errs[i])
		assert.Contains(t, errs[i].Error(), "render exploded")
	}
	assert.NoFileExists(t, cache.Path("bad"))

	// The failed flight left nothing behind; the next request retries from
	// scratch and can succeed.
	got, err := cache.GetOrCompute(context.Background(), "bad", func(context.Context) ([]byte, error) {
		return []byte("second try"), nil
	})
	require.NoError(t, err)
	assert.FileExists(t, got)
}
