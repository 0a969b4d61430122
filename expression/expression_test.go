package expression

import (
	"testing"

	"github.com/relnova/petrodb/storage/table"
	"github.com/relnova/petrodb/types"
	"github.com/stretchr/testify/assert"
)

func testRow() (*table.Tuple, *types.Schema) {
	tuple := table.NewTuple([]types.Value{types.NewInteger(5), types.NewVarchar("bob")})
	schema := types.NewSchema([]types.Column{{Name: "id", Kind: types.Integer}, {Name: "name", Kind: types.Varchar}})
	return tuple, schema
}

func TestColumnAndConstantExpressions(t *testing.T) {
	tuple, schema := testRow()

	col := NewColumnValue(0, 1)
	v, err := col.Evaluate(tuple, schema)
	assert.NoError(t, err)
	assert.Equal(t, "bob", v.AsString())

	constant := NewConstantValue(types.NewInteger(9))
	v, err = constant.Evaluate(tuple, schema)
	assert.NoError(t, err)
	assert.Equal(t, int64(9), v.AsInt())
}

func TestComparisonExpression(t *testing.T) {
	tuple, schema := testRow()

	eq := NewComparison(Equal, NewColumnValue(0, 0), NewConstantValue(types.NewInteger(5)))
	v, err := eq.Evaluate(tuple, schema)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), v.AsInt())

	neq := NewComparison(Equal, NewColumnValue(0, 0), NewConstantValue(types.NewInteger(6)))
	v, err = neq.Evaluate(tuple, schema)
	assert.NoError(t, err)
	assert.Equal(t, int64(0), v.AsInt())

	lt := NewComparison(LessThan, NewColumnValue(0, 0), NewConstantValue(types.NewInteger(10)))
	v, err = lt.Evaluate(tuple, schema)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), v.AsInt())
}

func TestLogicExpression(t *testing.T) {
	tuple, schema := testRow()

	truthy := NewComparison(Equal, NewColumnValue(0, 0), NewConstantValue(types.NewInteger(5)))
	falsy := NewComparison(Equal, NewColumnValue(0, 0), NewConstantValue(types.NewInteger(1)))

	and := NewLogic(And, truthy, falsy)
	v, err := and.Evaluate(tuple, schema)
	assert.NoError(t, err)
	assert.Equal(t, int64(0), v.AsInt())

	or := NewLogic(Or, truthy, falsy)
	v, err = or.Evaluate(tuple, schema)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), v.AsInt())
}
