package execution

import (
	"github.com/relnova/petrodb/catalog"
	"github.com/relnova/petrodb/storage/table"
	"github.com/relnova/petrodb/types"
)

// DeletePlanNode tombstones every row Child produces and removes the
// matching entry from every index on the table.
type DeletePlanNode struct {
	TableOid int32
	Child    Executor
}

type DeleteExecutor struct {
	ctx       *ExecutorContext
	plan      *DeletePlanNode
	tableInfo *catalog.TableInfo
	done      bool
}

func NewDeleteExecutor(ctx *ExecutorContext, plan *DeletePlanNode) *DeleteExecutor {
	return &DeleteExecutor{ctx: ctx, plan: plan}
}

func (e *DeleteExecutor) Init() error {
	info, err := e.ctx.Catalog.GetTable(e.plan.TableOid)
	if err != nil {
		return err
	}
	e.tableInfo = info
	e.done = false
	return e.plan.Child.Init()
}

func (e *DeleteExecutor) Next() (bool, *table.Tuple, table.RID, error) {
	if e.done {
		return false, nil, table.RID{}, nil
	}

	var count int64
	for {
		ok, tuple, rid, err := e.plan.Child.Next()
		if err != nil {
			return false, nil, table.RID{}, err
		}
		if !ok {
			break
		}

		for _, idxInfo := range e.ctx.Catalog.GetTableIndexes(e.tableInfo.Name) {
			if err := idxInfo.Index.DeleteEntry(tuple.KeyFromTuple(idxInfo.KeyAttrs)); err != nil {
				return false, nil, table.RID{}, err
			}
		}

		meta := table.TupleMeta{Ts: e.ctx.Txn.GetTransactionTempTs(), IsDeleted: true}
		if err := e.tableInfo.Table.UpdateTupleMeta(meta, rid); err != nil {
			return false, nil, table.RID{}, err
		}
		count++
	}

	e.done = true
	return true, table.NewTuple([]types.Value{types.NewInteger(count)}), table.RID{}, nil
}
