// Package execution implements the pull-based operator tree that answers
// a query: each Executor's Next is called repeatedly until it reports no
// more rows, the same Init/Next contract as the original planner's
// AbstractExecutor.
package execution

import "github.com/relnova/petrodb/storage/table"

// Executor is one node of an operator tree. Next returns ok=false once
// exhausted; callers must stop calling it at that point rather than
// relying on a particular post-exhaustion behavior.
type Executor interface {
	Init() error
	Next() (ok bool, tuple *table.Tuple, rid table.RID, err error)
}
