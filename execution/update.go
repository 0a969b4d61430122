package execution

import (
	"github.com/relnova/petrodb/catalog"
	"github.com/relnova/petrodb/expression"
	"github.com/relnova/petrodb/storage/table"
	"github.com/relnova/petrodb/types"
)

// UpdatePlanNode computes a new row for every row Child produces, by
// evaluating TargetExpressions (one per output column) against the old
// row, then replaces the old row: old index entries are dropped, the old
// tuple is tombstoned, the new tuple is inserted fresh, and new index
// entries are added for it. The original planner does the same
// delete-then-insert rather than an in-place rewrite, since a slotted
// page's tuple bytes aren't meant to change size after insertion.
type UpdatePlanNode struct {
	TableOid          int32
	Child             Executor
	TargetExpressions []expression.Expression
}

type UpdateExecutor struct {
	ctx       *ExecutorContext
	plan      *UpdatePlanNode
	tableInfo *catalog.TableInfo
	done      bool
}

func NewUpdateExecutor(ctx *ExecutorContext, plan *UpdatePlanNode) *UpdateExecutor {
	return &UpdateExecutor{ctx: ctx, plan: plan}
}

func (e *UpdateExecutor) Init() error {
	info, err := e.ctx.Catalog.GetTable(e.plan.TableOid)
	if err != nil {
		return err
	}
	e.tableInfo = info
	e.done = false
	return e.plan.Child.Init()
}

func (e *UpdateExecutor) Next() (bool, *table.Tuple, table.RID, error) {
	if e.done {
		return false, nil, table.RID{}, nil
	}

	var oldTuples []*table.Tuple
	var oldRids []table.RID
	for {
		ok, oldTuple, oldRid, err := e.plan.Child.Next()
		if err != nil {
			return false, nil, table.RID{}, err
		}
		if !ok {
			break
		}
		oldTuples = append(oldTuples, oldTuple)
		oldRids = append(oldRids, oldRid)
	}

	var count int64
	for i, oldTuple := range oldTuples {
		oldRid := oldRids[i]

		newValues := make([]types.Value, len(e.plan.TargetExpressions))
		for i, expr := range e.plan.TargetExpressions {
			v, err := expr.Evaluate(oldTuple, e.tableInfo.Schema)
			if err != nil {
				return false, nil, table.RID{}, err
			}
			newValues[i] = v
		}
		newTuple := table.NewTuple(newValues)

		indexes := e.ctx.Catalog.GetTableIndexes(e.tableInfo.Name)
		for _, idxInfo := range indexes {
			if err := idxInfo.Index.DeleteEntry(oldTuple.KeyFromTuple(idxInfo.KeyAttrs)); err != nil {
				return false, nil, table.RID{}, err
			}
		}

		ts := e.ctx.Txn.GetTransactionTempTs()
		if err := e.tableInfo.Table.UpdateTupleMeta(table.TupleMeta{Ts: ts, IsDeleted: true}, oldRid); err != nil {
			return false, nil, table.RID{}, err
		}

		newRid, err := e.tableInfo.Table.InsertTuple(table.TupleMeta{Ts: ts}, newTuple)
		if err != nil {
			return false, nil, table.RID{}, err
		}

		for _, idxInfo := range indexes {
			if err := idxInfo.Index.InsertEntry(newTuple.KeyFromTuple(idxInfo.KeyAttrs), *newRid); err != nil {
				return false, nil, table.RID{}, err
			}
		}
		count++
	}

	e.done = true
	return true, table.NewTuple([]types.Value{types.NewInteger(count)}), table.RID{}, nil
}
