// Package txn carries the minimal transaction context executors need to
// stamp tuple metadata. Real locking and MVCC visibility are out of scope
// here (see Non-goals); LockManager is a stub that never blocks, the same
// role BusTub's tests give it when a plan doesn't exercise concurrency
// control.
package txn

import "sync/atomic"

var tempTsCounter atomic.Int64

// Transaction is deliberately thin: petrodb has no undo log or commit
// protocol, only the temporary timestamp every inserted or updated tuple
// is stamped with.
type Transaction struct {
	id    int64
	tempTs int64
}

// NewTransaction hands out a fresh, already-"started" transaction. Each
// call advances the temporary timestamp counter, so tuples written by
// distinct transactions are distinguishable even without a commit log.
func NewTransaction(id int64) *Transaction {
	return &Transaction{id: id, tempTs: tempTsCounter.Add(1)}
}

func (t *Transaction) ID() int64 { return t.id }

// GetTransactionTempTs returns the timestamp executors stamp into
// TupleMeta.Ts on insert and update.
func (t *Transaction) GetTransactionTempTs() int64 { return t.tempTs }

// LockManager is a no-op stand-in for BusTub's tuple/table lock manager.
// Every call succeeds immediately; petrodb serializes access at the
// table-heap level instead (see Non-goals: no MVCC, no 2PL).
type LockManager struct{}

func NewLockManager() *LockManager { return &LockManager{} }

func (*LockManager) LockTable(*Transaction, int64) error { return nil }
func (*LockManager) LockRow(*Transaction, int64) error   { return nil }
