package index

import (
	"os"
	"path"
	"testing"

	"github.com/relnova/petrodb/buffer"
	"github.com/relnova/petrodb/storage/disk"
	"github.com/stretchr/testify/assert"
)

func createTestBpm(t *testing.T) *buffer.BufferpoolManager {
	t.Helper()

	dbPath := path.Join(t.TempDir(), "index.db")
	file, err := os.OpenFile(dbPath, os.O_CREATE|os.O_RDWR, 0644)
	assert.NoError(t, err)
	assert.NoError(t, file.Truncate(disk.PAGE_SIZE*disk.DEFAULT_PAGE_CAPACITY))
	t.Cleanup(func() { file.Close() })

	diskMgr := disk.NewManager(file)
	scheduler := disk.NewScheduler(diskMgr)
	replacer := buffer.NewLrukReplacer(10, 2)

	return buffer.NewBufferpoolManager(10, replacer, scheduler)
}

func TestBplusTree(t *testing.T) {
	t.Run("stored values can be retrieved", func(t *testing.T) {
		bpm := createTestBpm(t)
		tree, err := NewBplusTree[string, string]("names", bpm, 4, 4)
		assert.NoError(t, err)

		inserted := map[string]string{"john": "1", "jane": "2", "doe": "3"}
		for k, v := range inserted {
			ok, err := tree.Insert(k, v)
			assert.NoError(t, err)
			assert.True(t, ok)
		}

		for k, v := range inserted {
			got, err := tree.GetValue(k)
			assert.NoError(t, err)
			assert.Equal(t, v, got)
		}
	})

	t.Run("duplicate insert is rejected", func(t *testing.T) {
		bpm := createTestBpm(t)
		tree, err := NewBplusTree[int, int]("dup", bpm, 4, 4)
		assert.NoError(t, err)

		ok, err := tree.Insert(1, 100)
		assert.NoError(t, err)
		assert.True(t, ok)

		ok, err = tree.Insert(1, 200)
		assert.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("can store items larger than a page's max size", func(t *testing.T) {
		bpm := createTestBpm(t)
		tree, err := NewBplusTree[int, int]("large", bpm, 4, 4)
		assert.NoError(t, err)

		for i := 100; i >= 0; i-- {
			ok, err := tree.Insert(i, i*10)
			assert.NoError(t, err)
			assert.True(t, ok)
		}

		for i := 0; i <= 100; i++ {
			got, err := tree.GetValue(i)
			assert.NoError(t, err)
			assert.Equal(t, i*10, got)
		}
	})

	t.Run("can iterate through stored values in order", func(t *testing.T) {
		bpm := createTestBpm(t)
		tree, err := NewBplusTree[int, int]("iter", bpm, 4, 4)
		assert.NoError(t, err)

		for i := 100; i >= 0; i-- {
			_, err := tree.Insert(i, i)
			assert.NoError(t, err)
		}

		it, err := tree.Begin()
		assert.NoError(t, err)

		got := []int{}
		for !it.IsEnd() {
			got = append(got, it.Key())
			assert.NoError(t, it.Next())
		}

		expected := make([]int, 101)
		for i := range expected {
			expected[i] = i
		}
		assert.Equal(t, expected, got)
	})

	t.Run("delete removes a key and later lookups fail", func(t *testing.T) {
		bpm := createTestBpm(t)
		tree, err := NewBplusTree[int, int]("del", bpm, 4, 4)
		assert.NoError(t, err)

		for i := 0; i < 20; i++ {
			_, err := tree.Insert(i, i)
			assert.NoError(t, err)
		}

		ok, err := tree.Remove(10)
		assert.NoError(t, err)
		assert.True(t, ok)

		_, err = tree.GetValue(10)
		assert.Error(t, err)

		for _, i := range []int{0, 5, 15, 19} {
			got, err := tree.GetValue(i)
			assert.NoError(t, err)
			assert.Equal(t, i, got)
		}
	})

	t.Run("deleting a missing key is a no-op", func(t *testing.T) {
		bpm := createTestBpm(t)
		tree, err := NewBplusTree[int, int]("missing", bpm, 4, 4)
		assert.NoError(t, err)

		_, err = tree.Insert(1, 1)
		assert.NoError(t, err)

		ok, err := tree.Remove(99)
		assert.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("deleting down to empty collapses the root", func(t *testing.T) {
		bpm := createTestBpm(t)
		tree, err := NewBplusTree[int, int]("collapse", bpm, 4, 4)
		assert.NoError(t, err)

		for i := 0; i < 30; i++ {
			_, err := tree.Insert(i, i)
			assert.NoError(t, err)
		}

		for i := 0; i < 30; i++ {
			ok, err := tree.Remove(i)
			assert.NoError(t, err)
			assert.True(t, ok)
		}

		assert.True(t, tree.IsEmpty())
		_, err = tree.GetValue(0)
		assert.Error(t, err)
	})
}
