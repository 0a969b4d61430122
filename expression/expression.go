// Package expression implements the small tree of scalar expressions
// evaluated against a tuple during a scan: column references, constants,
// comparisons, and boolean logic. The optimizer package pattern-matches on
// ComparisonExpression and LogicExpression to rewrite qualifying filters
// into index scans.
package expression

import (
	"github.com/relnova/petrodb/storage/table"
	"github.com/relnova/petrodb/types"
)

// Expression is evaluated against one row of a scan.
type Expression interface {
	Evaluate(tuple *table.Tuple, schema *types.Schema) (types.Value, error)
	Children() []Expression
}

// ColumnValueExpression reads one column out of the tuple at TupleIdx.
// TupleIdx is 0 for every expression in petrodb, since executors never
// join two child tuples together; it is kept because the optimizer's
// ExtractOrKeys logic checks it, mirroring the original planner's
// join-aware column references.
type ColumnValueExpression struct {
	TupleIdx int
	ColIdx   int
}

func NewColumnValue(tupleIdx, colIdx int) *ColumnValueExpression {
	return &ColumnValueExpression{TupleIdx: tupleIdx, ColIdx: colIdx}
}

func (e *ColumnValueExpression) Evaluate(tuple *table.Tuple, schema *types.Schema) (types.Value, error) {
	return tuple.GetValue(schema, e.ColIdx), nil
}

func (e *ColumnValueExpression) Children() []Expression { return nil }

// ConstantValueExpression always evaluates to the same Value regardless of
// the row it is applied to.
type ConstantValueExpression struct {
	Val types.Value
}

func NewConstantValue(v types.Value) *ConstantValueExpression {
	return &ConstantValueExpression{Val: v}
}

func (e *ConstantValueExpression) Evaluate(*table.Tuple, *types.Schema) (types.Value, error) {
	return e.Val, nil
}

func (e *ConstantValueExpression) Children() []Expression { return nil }

type ComparisonType int

const (
	Equal ComparisonType = iota
	NotEqual
	LessThan
	LessThanOrEqual
	GreaterThan
	GreaterThanOrEqual
)

// ComparisonExpression evaluates both children and reduces the comparison
// to an INTEGER 0/1 truth value, the same convention the executors use
// when they check filter_predicate_->Evaluate(...).GetAs<bool>().
type ComparisonExpression struct {
	Op    ComparisonType
	Left  Expression
	Right Expression
}

func NewComparison(op ComparisonType, left, right Expression) *ComparisonExpression {
	return &ComparisonExpression{Op: op, Left: left, Right: right}
}

func (e *ComparisonExpression) Evaluate(tuple *table.Tuple, schema *types.Schema) (types.Value, error) {
	lv, err := e.Left.Evaluate(tuple, schema)
	if err != nil {
		return types.Value{}, err
	}
	rv, err := e.Right.Evaluate(tuple, schema)
	if err != nil {
		return types.Value{}, err
	}

	cmp := lv.CompareTo(rv)
	var truth bool
	switch e.Op {
	case Equal:
		truth = cmp == 0
	case NotEqual:
		truth = cmp != 0
	case LessThan:
		truth = cmp < 0
	case LessThanOrEqual:
		truth = cmp <= 0
	case GreaterThan:
		truth = cmp > 0
	case GreaterThanOrEqual:
		truth = cmp >= 0
	}
	return boolValue(truth), nil
}

func (e *ComparisonExpression) Children() []Expression { return []Expression{e.Left, e.Right} }

type LogicType int

const (
	And LogicType = iota
	Or
)

type LogicExpression struct {
	Op    LogicType
	Left  Expression
	Right Expression
}

func NewLogic(op LogicType, left, right Expression) *LogicExpression {
	return &LogicExpression{Op: op, Left: left, Right: right}
}

func (e *LogicExpression) Evaluate(tuple *table.Tuple, schema *types.Schema) (types.Value, error) {
	lv, err := e.Left.Evaluate(tuple, schema)
	if err != nil {
		return types.Value{}, err
	}
	rv, err := e.Right.Evaluate(tuple, schema)
	if err != nil {
		return types.Value{}, err
	}

	switch e.Op {
	case And:
		return boolValue(isTruthy(lv) && isTruthy(rv)), nil
	default:
		return boolValue(isTruthy(lv) || isTruthy(rv)), nil
	}
}

func (e *LogicExpression) Children() []Expression { return []Expression{e.Left, e.Right} }

func boolValue(b bool) types.Value {
	if b {
		return types.NewInteger(1)
	}
	return types.NewInteger(0)
}

func isTruthy(v types.Value) bool { return v.Kind() == types.Integer && v.AsInt() != 0 }
