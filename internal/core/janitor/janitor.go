// Package janitor reclaims aged filesystem artifacts: completed render
// outputs and cached preview stills. It never touches job records; a
// completed job whose output was reclaimed reports that condition at
// download time.
package janitor

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"
)

// Target is one directory swept on its own interval with its own retention
// window.
type Target struct {
	Name     string
	Dir      string
	TTL      time.Duration
	Interval time.Duration
}

type Janitor struct {
	targets []Target
}

func New(targets ...Target) *Janitor {
	return &Janitor{targets: targets}
}

// Run sweeps every target on its interval until the context is cancelled.
// Sweeps are best-effort; nothing a sweep encounters can stop the loop.
func (j *Janitor) Run(ctx context.Context) {
	for _, t := range j.targets {
		go j.loop(ctx, t)
	}
}

func (j *Janitor) loop(ctx context.Context, t Target) {
	ticker := time.NewTicker(t.Interval)
	defer ticker.Stop()

	log.Info().Str("target", t.Name).Str("dir", t.Dir).
		Dur("ttl", t.TTL).Dur("interval", t.Interval).Msg("janitor started")

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := Sweep(t.Dir, t.TTL); n > 0 {
				log.Info().Str("target", t.Name).Int("removed", n).Msg("swept aged artifacts")
			}
		}
	}
}

// Sweep removes regular files in dir whose mtime is older than ttl and
// returns how many it removed. A missing directory or an already-gone file
// is benign.
func Sweep(dir string, ttl time.Duration) int {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0
	}

	removed := 0
	cutoff := time.Now().Add(-ttl)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(cutoff) {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := os.Remove(path); err != nil {
			log.Debug().Str("path", path).Err(err).Msg("sweep remove failed")
			continue
		}
		removed++
	}
	return removed
}
