package types

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValueCompareTo(t *testing.T) {
	t.Run("integers compare numerically", func(t *testing.T) {
		assert.Equal(t, -1, NewInteger(1).CompareTo(NewInteger(2)))
		assert.Equal(t, 0, NewInteger(5).CompareTo(NewInteger(5)))
		assert.Equal(t, 1, NewInteger(9).CompareTo(NewInteger(3)))
	})

	t.Run("varchars compare lexically", func(t *testing.T) {
		assert.Equal(t, -1, NewVarchar("alice").CompareTo(NewVarchar("bob")))
		assert.Equal(t, 0, NewVarchar("alice").CompareTo(NewVarchar("alice")))
	})

	t.Run("comparing across kinds panics", func(t *testing.T) {
		assert.Panics(t, func() {
			NewInteger(1).CompareTo(NewVarchar("1"))
		})
	})
}

func TestValueToKeyOrdering(t *testing.T) {
	t.Run("integer keys sort like the underlying values, including negatives", func(t *testing.T) {
		vals := []int64{5, -3, 0, 100, -100, 1}
		keys := make([]string, len(vals))
		for i, v := range vals {
			keys[i] = NewInteger(v).ToKey()
		}

		sortedKeys := append([]string{}, keys...)
		sort.Strings(sortedKeys)

		sortedVals := append([]int64{}, vals...)
		sort.Slice(sortedVals, func(i, j int) bool { return sortedVals[i] < sortedVals[j] })

		gotOrder := make([]int64, len(vals))
		for i, k := range sortedKeys {
			for j, orig := range keys {
				if orig == k {
					gotOrder[i] = vals[j]
					break
				}
			}
		}
		assert.Equal(t, sortedVals, gotOrder)
	})

	t.Run("varchar keys are the raw string", func(t *testing.T) {
		assert.Equal(t, "hello", NewVarchar("hello").ToKey())
	})
}

func TestSchemaColumnIndex(t *testing.T) {
	s := NewSchema([]Column{
		{Name: "id", Kind: Integer},
		{Name: "name", Kind: Varchar},
	})

	assert.Equal(t, 2, s.ColumnCount())
	assert.Equal(t, 0, s.ColumnIndex("id"))
	assert.Equal(t, 1, s.ColumnIndex("name"))
	assert.Equal(t, -1, s.ColumnIndex("missing"))
}
