package execution

import (
	"github.com/relnova/petrodb/catalog"
	"github.com/relnova/petrodb/expression"
	"github.com/relnova/petrodb/storage/table"
	"github.com/relnova/petrodb/types"
)

// IndexScanPlanNode replaces a SeqScanPlanNode when the optimizer proves
// Filter is an OR of equalities on the index's leading key column. In
// point mode (PredKeys non-empty) it looks up each key directly; the
// optimizer never produces PredKeys for anything but that shape, so a nil
// or empty PredKeys means an unfiltered, fully ordered scan of the index.
type IndexScanPlanNode struct {
	TableOid int32
	IndexOid int32
	Filter   expression.Expression
	PredKeys []expression.Expression
}

type IndexScanExecutor struct {
	ctx       *ExecutorContext
	plan      *IndexScanPlanNode
	tableInfo *catalog.TableInfo
	rids      []table.RID
	pos       int
}

func NewIndexScanExecutor(ctx *ExecutorContext, plan *IndexScanPlanNode) *IndexScanExecutor {
	return &IndexScanExecutor{ctx: ctx, plan: plan}
}

func (e *IndexScanExecutor) Init() error {
	tableInfo, err := e.ctx.Catalog.GetTable(e.plan.TableOid)
	if err != nil {
		return err
	}
	e.tableInfo = tableInfo

	indexInfo, err := e.ctx.Catalog.GetIndex(e.plan.IndexOid)
	if err != nil {
		return err
	}

	e.rids = nil
	e.pos = 0

	if len(e.plan.PredKeys) > 0 {
		return e.pointLookup(indexInfo)
	}
	return e.orderedScan(indexInfo)
}

func (e *IndexScanExecutor) pointLookup(indexInfo *catalog.IndexInfo) error {
	seen := make(map[table.RID]bool)
	for _, keyExpr := range e.plan.PredKeys {
		v, err := keyExpr.Evaluate(nil, nil)
		if err != nil {
			return err
		}
		found, err := indexInfo.Index.ScanKey(table.NewTuple([]types.Value{v}))
		if err != nil {
			return err
		}
		for _, rid := range found {
			if !seen[rid] {
				seen[rid] = true
				e.rids = append(e.rids, rid)
			}
		}
	}
	return nil
}

func (e *IndexScanExecutor) orderedScan(indexInfo *catalog.IndexInfo) error {
	it, err := indexInfo.Index.Begin()
	if err != nil {
		return err
	}
	defer it.Close()

	for !it.IsEnd() {
		e.rids = append(e.rids, it.Value())
		if err := it.Next(); err != nil {
			return err
		}
	}
	return nil
}

func (e *IndexScanExecutor) Next() (bool, *table.Tuple, table.RID, error) {
	for e.pos < len(e.rids) {
		rid := e.rids[e.pos]
		e.pos++

		meta, tuple, err := e.tableInfo.Table.GetTuple(rid)
		if err != nil {
			return false, nil, table.RID{}, err
		}
		if meta.IsDeleted {
			continue
		}
		return true, tuple, rid, nil
	}
	return false, nil, table.RID{}, nil
}
