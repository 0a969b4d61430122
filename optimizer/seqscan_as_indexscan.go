// Package optimizer rewrites a sequential scan into an index scan when its
// filter is an OR of equalities on a single column that some index on the
// table leads with. petrodb's plans never nest a scan under another scan —
// only a mutating plan node's single child can be one — so recursing over
// children collapses to optimizing that one scan, unlike the original
// planner's walk over an arbitrarily deep plan tree.
package optimizer

import (
	"github.com/relnova/petrodb/catalog"
	"github.com/relnova/petrodb/execution"
	"github.com/relnova/petrodb/expression"
)

// ExtractOrKeys inspects expr and, if every leaf is an equality comparing
// the same column index against a constant, returns the constant-side
// expressions and that column index. Any other shape reports ok=false.
func ExtractOrKeys(expr expression.Expression) (keys []expression.Expression, colIdx int, ok bool) {
	switch e := expr.(type) {
	case *expression.ComparisonExpression:
		if e.Op != expression.Equal {
			return nil, 0, false
		}
		_, leftConst := e.Left.(*expression.ConstantValueExpression)
		_, rightConst := e.Right.(*expression.ConstantValueExpression)
		if col, isCol := e.Left.(*expression.ColumnValueExpression); isCol && col.TupleIdx == 0 && rightConst {
			return []expression.Expression{e.Right}, col.ColIdx, true
		}
		if col, isCol := e.Right.(*expression.ColumnValueExpression); isCol && col.TupleIdx == 0 && leftConst {
			return []expression.Expression{e.Left}, col.ColIdx, true
		}
		return nil, 0, false

	case *expression.LogicExpression:
		if e.Op != expression.Or {
			return nil, 0, false
		}
		leftKeys, leftCol, leftOk := ExtractOrKeys(e.Left)
		rightKeys, rightCol, rightOk := ExtractOrKeys(e.Right)
		if !leftOk || !rightOk || leftCol != rightCol {
			return nil, 0, false
		}
		return append(leftKeys, rightKeys...), leftCol, true

	default:
		return nil, 0, false
	}
}

// OptimizeSeqScanAsIndexScan returns an *execution.IndexScanPlanNode when
// scan's filter qualifies and some index on the table leads with the
// extracted column, or scan itself unchanged otherwise.
func OptimizeSeqScanAsIndexScan(cat *catalog.Catalog, scan *execution.SeqScanPlanNode) any {
	if scan.Filter == nil {
		return scan
	}

	tableInfo, err := cat.GetTable(scan.TableOid)
	if err != nil {
		return scan
	}

	keys, colIdx, ok := ExtractOrKeys(scan.Filter)
	if !ok || len(keys) == 0 {
		return scan
	}

	for _, idxInfo := range cat.GetTableIndexes(tableInfo.Name) {
		if len(idxInfo.KeyAttrs) > 0 && idxInfo.KeyAttrs[0] == colIdx {
			return &execution.IndexScanPlanNode{
				TableOid: scan.TableOid,
				IndexOid: idxInfo.Oid,
				Filter:   scan.Filter,
				PredKeys: keys,
			}
		}
	}

	return scan
}
