package engine

import (
	"os"
	"path"
	"testing"

	"github.com/relnova/petrodb/config"
	"github.com/stretchr/testify/assert"
)

func TestNewEngine(t *testing.T) {
	t.Run("opens a fresh db file and wires a usable catalog", func(t *testing.T) {
		cfg := config.DefaultConfig()
		cfg.DBFilePath = path.Join(t.TempDir(), "engine.db")

		eng, err := NewEngine(cfg)
		assert.NoError(t, err)
		defer eng.Close()

		assert.NotNil(t, eng.BPM)
		assert.NotNil(t, eng.Catalog)
		assert.NotNil(t, eng.Txn)
	})

	t.Run("reopening an existing db file does not shrink it", func(t *testing.T) {
		cfg := config.DefaultConfig()
		cfg.DBFilePath = path.Join(t.TempDir(), "engine.db")

		eng1, err := NewEngine(cfg)
		assert.NoError(t, err)
		assert.NoError(t, eng1.Close())

		info, err := os.Stat(cfg.DBFilePath)
		assert.NoError(t, err)
		grown := info.Size() * 2
		assert.NoError(t, os.Truncate(cfg.DBFilePath, grown))

		eng2, err := NewEngine(cfg)
		assert.NoError(t, err)
		defer eng2.Close()

		info, err = os.Stat(cfg.DBFilePath)
		assert.NoError(t, err)
		assert.Equal(t, grown, info.Size())
	})
}
