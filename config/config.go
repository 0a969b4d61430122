// Package config centralizes the literal constants the teacher's tests
// scattered across call sites (buffer pool size, replacer k, tree fanout)
// into one struct, so an engine can be constructed with either sane
// defaults or an override. LeafMaxSize and InternalMaxSize are only
// reported in the engine's startup log; the catalog builds every index
// with its own fixed fanout.
package config

import "github.com/relnova/petrodb/storage/disk"

// EngineConfig is the knob set NewEngine needs to wire a buffer pool, disk
// manager, and catalog together.
type EngineConfig struct {
	BufferPoolSize  int
	ReplacerK       int
	DBFilePath      string
	LeafMaxSize     int
	InternalMaxSize int
}

// DefaultConfig mirrors the literals the teacher's own tests pass at every
// call site: a 10-frame pool, k=2, and a fanout of 4 small enough to
// exercise splits and merges without thousands of rows.
func DefaultConfig() EngineConfig {
	return EngineConfig{
		BufferPoolSize:  10,
		ReplacerK:       2,
		DBFilePath:      "petro.db",
		LeafMaxSize:     4,
		InternalMaxSize: 4,
	}
}

// Capacity is how many pages the on-disk file is pre-sized for; growth
// beyond it doubles the file, matching disk.Manager's own behavior.
func (c EngineConfig) Capacity() int { return disk.DEFAULT_PAGE_CAPACITY }
