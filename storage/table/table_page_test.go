package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTablePage(t *testing.T) {
	t.Run("insert and get round-trip", func(t *testing.T) {
		p := newTablePage()

		slot, ok, err := p.InsertTuple(TupleMeta{Ts: 5}, []byte("hello"))
		assert.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, 0, slot)

		meta, data, err := p.GetTuple(slot)
		assert.NoError(t, err)
		assert.Equal(t, int64(5), meta.Ts)
		assert.Equal(t, []byte("hello"), data)
	})

	t.Run("insert refuses once the page is full and leaves it unchanged", func(t *testing.T) {
		p := newTablePage()

		big := make([]byte, maxTablePagePayload)
		_, ok, err := p.InsertTuple(TupleMeta{}, big)
		assert.NoError(t, err)
		assert.False(t, ok)
		assert.Equal(t, 0, p.SlotCount())
	})

	t.Run("update meta does not disturb the stored bytes", func(t *testing.T) {
		p := newTablePage()
		slot, _, err := p.InsertTuple(TupleMeta{Ts: 1}, []byte("x"))
		assert.NoError(t, err)

		assert.NoError(t, p.UpdateTupleMeta(slot, TupleMeta{Ts: 9, IsDeleted: true}))

		meta, data, err := p.GetTuple(slot)
		assert.NoError(t, err)
		assert.Equal(t, int64(9), meta.Ts)
		assert.True(t, meta.IsDeleted)
		assert.Equal(t, []byte("x"), data)
	})

	t.Run("out of range slot is reported as not found", func(t *testing.T) {
		p := newTablePage()
		_, _, err := p.GetTuple(3)
		assert.Error(t, err)
	})
}
