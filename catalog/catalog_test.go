package catalog

import (
	"os"
	"path"
	"testing"

	"github.com/relnova/petrodb/buffer"
	"github.com/relnova/petrodb/storage/disk"
	"github.com/relnova/petrodb/types"
	"github.com/stretchr/testify/assert"
)

func createTestBpm(t *testing.T) *buffer.BufferpoolManager {
	t.Helper()

	dbPath := path.Join(t.TempDir(), "catalog.db")
	file, err := os.OpenFile(dbPath, os.O_CREATE|os.O_RDWR, 0644)
	assert.NoError(t, err)
	assert.NoError(t, file.Truncate(disk.PAGE_SIZE*disk.DEFAULT_PAGE_CAPACITY))
	t.Cleanup(func() { file.Close() })

	diskMgr := disk.NewManager(file)
	scheduler := disk.NewScheduler(diskMgr)
	replacer := buffer.NewLrukReplacer(20, 2)
	return buffer.NewBufferpoolManager(20, replacer, scheduler)
}

func testSchema() *types.Schema {
	return types.NewSchema([]types.Column{
		{Name: "id", Kind: types.Integer},
		{Name: "name", Kind: types.Varchar},
	})
}

func TestCatalog(t *testing.T) {
	t.Run("created tables are retrievable by name and oid", func(t *testing.T) {
		cat := NewCatalog(createTestBpm(t))

		info, err := cat.CreateTable("users", testSchema())
		assert.NoError(t, err)
		assert.Equal(t, "users", info.Name)

		byName, err := cat.GetTableByName("users")
		assert.NoError(t, err)
		assert.Same(t, info, byName)

		byOid, err := cat.GetTable(info.Oid)
		assert.NoError(t, err)
		assert.Same(t, info, byOid)
	})

	t.Run("duplicate table name is rejected", func(t *testing.T) {
		cat := NewCatalog(createTestBpm(t))

		_, err := cat.CreateTable("users", testSchema())
		assert.NoError(t, err)

		_, err = cat.CreateTable("users", testSchema())
		assert.Error(t, err)
	})

	t.Run("created index is attached to its table", func(t *testing.T) {
		cat := NewCatalog(createTestBpm(t))
		_, err := cat.CreateTable("users", testSchema())
		assert.NoError(t, err)

		keySchema := types.NewSchema([]types.Column{{Name: "id", Kind: types.Integer}})
		idxInfo, err := cat.CreateIndex("users_id_idx", "users", keySchema, []int{0})
		assert.NoError(t, err)

		indexes := cat.GetTableIndexes("users")
		assert.Len(t, indexes, 1)
		assert.Same(t, idxInfo, indexes[0])

		byOid, err := cat.GetIndex(idxInfo.Oid)
		assert.NoError(t, err)
		assert.Same(t, idxInfo, byOid)
	})

	t.Run("index on a missing table is rejected", func(t *testing.T) {
		cat := NewCatalog(createTestBpm(t))
		keySchema := types.NewSchema([]types.Column{{Name: "id", Kind: types.Integer}})

		_, err := cat.CreateIndex("ghost_idx", "ghost", keySchema, []int{0})
		assert.Error(t, err)
	})

	t.Run("missing lookups return not found", func(t *testing.T) {
		cat := NewCatalog(createTestBpm(t))

		_, err := cat.GetTableByName("nope")
		assert.Error(t, err)

		_, err = cat.GetTable(99)
		assert.Error(t, err)
	})
}
