// Package engine wires a buffer pool, disk manager, and catalog into a
// single runnable unit the CLI (or a test) can issue statements against.
package engine

import (
	"os"

	"github.com/sirupsen/logrus"

	"github.com/relnova/petrodb/buffer"
	"github.com/relnova/petrodb/catalog"
	"github.com/relnova/petrodb/config"
	"github.com/relnova/petrodb/storage/disk"
	"github.com/relnova/petrodb/txn"
)

// Engine owns everything a session of petrocli needs: storage, the
// catalog, and a single default transaction every statement runs under.
// petrodb has no multi-transaction concurrency control (see Non-goals),
// so one transaction for the process's lifetime is sufficient.
type Engine struct {
	BPM     *buffer.BufferpoolManager
	Catalog *catalog.Catalog
	Txn     *txn.Transaction
	LockMgr *txn.LockManager

	file *os.File
}

// NewEngine opens (or creates) cfg.DBFilePath, grows it to hold at least
// cfg.Capacity() pages (a larger file is left as it is), and wires the
// buffer pool and catalog on top of it.
func NewEngine(cfg config.EngineConfig) (*Engine, error) {
	file, err := os.OpenFile(cfg.DBFilePath, os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return nil, err
	}

	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, err
	}
	if info.Size() < int64(disk.PAGE_SIZE*cfg.Capacity()) {
		if err := file.Truncate(int64(disk.PAGE_SIZE * cfg.Capacity())); err != nil {
			file.Close()
			return nil, err
		}
	}

	diskMgr := disk.NewManager(file)
	scheduler := disk.NewScheduler(diskMgr)
	replacer := buffer.NewLrukReplacer(cfg.BufferPoolSize, cfg.ReplacerK)
	bpm := buffer.NewBufferpoolManager(cfg.BufferPoolSize, replacer, scheduler)

	logrus.WithFields(logrus.Fields{
		"db_file":     cfg.DBFilePath,
		"pool_size":   cfg.BufferPoolSize,
		"leaf_max":    cfg.LeafMaxSize,
		"internal_max": cfg.InternalMaxSize,
	}).Info("engine started")

	return &Engine{
		BPM:     bpm,
		Catalog: catalog.NewCatalog(bpm),
		Txn:     txn.NewTransaction(1),
		LockMgr: txn.NewLockManager(),
		file:    file,
	}, nil
}

// Close releases the underlying db file. Any dirty page not yet flushed
// by a FlushPage/DeletePage call is lost, the same tradeoff the teacher's
// own tests accept by never calling a whole-pool flush.
func (e *Engine) Close() error {
	return e.file.Close()
}
