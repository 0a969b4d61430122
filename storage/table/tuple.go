package table

import (
	"github.com/relnova/petrodb/codec"
	"github.com/relnova/petrodb/errs"
	"github.com/relnova/petrodb/types"
)

// TupleMeta mirrors BusTub's tuple header: a timestamp stamping which
// transaction last touched the row, and a tombstone bit. Deletion never
// removes bytes from a page; it only flips IsDeleted, matching the
// original UpdateTupleMeta contract.
type TupleMeta struct {
	Ts        int64
	IsDeleted bool
}

// Tuple is an ordered row of values. Column order always matches the
// owning table's schema.
type Tuple struct {
	Values []types.Value
}

func NewTuple(values []types.Value) *Tuple {
	return &Tuple{Values: values}
}

// GetValue returns the value at colIdx. colIdx out of range is a
// programming error, since it means the caller's schema disagrees with
// the tuple that produced it.
func (t *Tuple) GetValue(schema *types.Schema, colIdx int) types.Value {
	errs.Ensure(colIdx >= 0 && colIdx < len(t.Values), "column index %d out of range for tuple with %d values", colIdx, len(t.Values))
	return t.Values[colIdx]
}

// KeyFromTuple projects the tuple's values down to the columns named by
// keyAttrs, in order, producing the row that belongs to an index built on
// keySchema.
func (t *Tuple) KeyFromTuple(keyAttrs []int) *Tuple {
	key := make([]types.Value, len(keyAttrs))
	for i, attr := range keyAttrs {
		key[i] = t.Values[attr]
	}
	return &Tuple{Values: key}
}

func decodeTupleBytes(data []byte) (*Tuple, error) {
	t, err := codec.Unmarshal[Tuple](data)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
