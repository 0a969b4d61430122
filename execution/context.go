package execution

import (
	"github.com/relnova/petrodb/catalog"
	"github.com/relnova/petrodb/txn"
)

// ExecutorContext bundles the state every executor needs but no single
// plan node owns: the catalog to resolve table/index oids against, the
// running transaction to stamp tuple metadata with, and the lock manager
// mutating executors are expected to consult before touching a row.
type ExecutorContext struct {
	Catalog *catalog.Catalog
	Txn     *txn.Transaction
	LockMgr *txn.LockManager
}

func NewExecutorContext(cat *catalog.Catalog, transaction *txn.Transaction, lockMgr *txn.LockManager) *ExecutorContext {
	return &ExecutorContext{Catalog: cat, Txn: transaction, LockMgr: lockMgr}
}
