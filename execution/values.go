package execution

import (
	"github.com/relnova/petrodb/expression"
	"github.com/relnova/petrodb/storage/table"
	"github.com/relnova/petrodb/types"
)

// ValuesPlanNode is the literal row source behind an INSERT INTO ... VALUES
// statement: each Rows entry is one row's worth of constant expressions.
type ValuesPlanNode struct {
	Rows []([]expression.Expression)
}

// ValuesExecutor emits one tuple per row in its plan, evaluating each
// cell's expression against no input row (every cell is expected to be a
// ConstantValueExpression, but nothing enforces that beyond the caller).
type ValuesExecutor struct {
	plan *ValuesPlanNode
	idx  int
}

func NewValuesExecutor(plan *ValuesPlanNode) *ValuesExecutor {
	return &ValuesExecutor{plan: plan}
}

func (e *ValuesExecutor) Init() error {
	e.idx = 0
	return nil
}

func (e *ValuesExecutor) Next() (bool, *table.Tuple, table.RID, error) {
	if e.idx >= len(e.plan.Rows) {
		return false, nil, table.RID{}, nil
	}

	row := e.plan.Rows[e.idx]
	e.idx++

	values := make([]types.Value, len(row))
	for i, expr := range row {
		v, err := expr.Evaluate(nil, nil)
		if err != nil {
			return false, nil, table.RID{}, err
		}
		values[i] = v
	}

	return true, table.NewTuple(values), table.RID{}, nil
}
