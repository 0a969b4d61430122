package execution

import (
	"github.com/relnova/petrodb/catalog"
	"github.com/relnova/petrodb/expression"
	"github.com/relnova/petrodb/storage/table"
	"github.com/relnova/petrodb/types"
)

// SeqScanPlanNode walks a table's heap end to end, optionally applying
// Filter as a residual predicate.
type SeqScanPlanNode struct {
	TableOid int32
	Filter   expression.Expression
}

type SeqScanExecutor struct {
	ctx       *ExecutorContext
	plan      *SeqScanPlanNode
	tableInfo *catalog.TableInfo
	it        *table.TableIterator
}

func NewSeqScanExecutor(ctx *ExecutorContext, plan *SeqScanPlanNode) *SeqScanExecutor {
	return &SeqScanExecutor{ctx: ctx, plan: plan}
}

func (e *SeqScanExecutor) Init() error {
	info, err := e.ctx.Catalog.GetTable(e.plan.TableOid)
	if err != nil {
		return err
	}
	e.tableInfo = info
	e.it = info.Table.MakeIterator()
	return nil
}

// Next skips tombstoned rows and rows the filter rejects, advancing the
// iterator regardless of whether a row matched, matching the original
// SeqScanExecutor's loop.
func (e *SeqScanExecutor) Next() (bool, *table.Tuple, table.RID, error) {
	for {
		ok, rid, meta, tuple, err := e.it.Next()
		if err != nil {
			return false, nil, table.RID{}, err
		}
		if !ok {
			return false, nil, table.RID{}, nil
		}
		if meta.IsDeleted {
			continue
		}

		if e.plan.Filter != nil {
			v, err := e.plan.Filter.Evaluate(tuple, e.tableInfo.Schema)
			if err != nil {
				return false, nil, table.RID{}, err
			}
			if v.Kind() != types.Integer || v.AsInt() == 0 {
				continue
			}
		}

		return true, tuple, rid, nil
	}
}
