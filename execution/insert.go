package execution

import (
	"github.com/relnova/petrodb/catalog"
	"github.com/relnova/petrodb/storage/table"
	"github.com/relnova/petrodb/types"
)

// InsertPlanNode inserts every row Child produces into TableOid, keeping
// every index on that table in sync.
type InsertPlanNode struct {
	TableOid int32
	Child    Executor
}

// InsertExecutor is single-shot: the first Next drains Child completely
// and reports the row count; a second Next reports exhaustion, mirroring
// the original executor's done_ flag.
type InsertExecutor struct {
	ctx       *ExecutorContext
	plan      *InsertPlanNode
	tableInfo *catalog.TableInfo
	done      bool
}

func NewInsertExecutor(ctx *ExecutorContext, plan *InsertPlanNode) *InsertExecutor {
	return &InsertExecutor{ctx: ctx, plan: plan}
}

func (e *InsertExecutor) Init() error {
	info, err := e.ctx.Catalog.GetTable(e.plan.TableOid)
	if err != nil {
		return err
	}
	e.tableInfo = info
	e.done = false
	return e.plan.Child.Init()
}

func (e *InsertExecutor) Next() (bool, *table.Tuple, table.RID, error) {
	if e.done {
		return false, nil, table.RID{}, nil
	}

	var count int64
	for {
		ok, tuple, _, err := e.plan.Child.Next()
		if err != nil {
			return false, nil, table.RID{}, err
		}
		if !ok {
			break
		}

		meta := table.TupleMeta{Ts: e.ctx.Txn.GetTransactionTempTs()}
		rid, err := e.tableInfo.Table.InsertTuple(meta, tuple)
		if err != nil {
			return false, nil, table.RID{}, err
		}

		for _, idxInfo := range e.ctx.Catalog.GetTableIndexes(e.tableInfo.Name) {
			if err := idxInfo.Index.InsertEntry(tuple.KeyFromTuple(idxInfo.KeyAttrs), *rid); err != nil {
				return false, nil, table.RID{}, err
			}
		}
		count++
	}

	e.done = true
	return true, table.NewTuple([]types.Value{types.NewInteger(count)}), table.RID{}, nil
}
