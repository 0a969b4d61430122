package execution

import (
	"os"
	"path"
	"testing"

	"github.com/relnova/petrodb/buffer"
	"github.com/relnova/petrodb/catalog"
	"github.com/relnova/petrodb/expression"
	"github.com/relnova/petrodb/storage/disk"
	"github.com/relnova/petrodb/storage/table"
	"github.com/relnova/petrodb/txn"
	"github.com/relnova/petrodb/types"
	"github.com/stretchr/testify/assert"
)

func newTestContext(t *testing.T) (*ExecutorContext, *catalog.Catalog) {
	t.Helper()

	dbPath := path.Join(t.TempDir(), "exec.db")
	file, err := os.OpenFile(dbPath, os.O_CREATE|os.O_RDWR, 0644)
	assert.NoError(t, err)
	assert.NoError(t, file.Truncate(disk.PAGE_SIZE*disk.DEFAULT_PAGE_CAPACITY))
	t.Cleanup(func() { file.Close() })

	diskMgr := disk.NewManager(file)
	scheduler := disk.NewScheduler(diskMgr)
	replacer := buffer.NewLrukReplacer(20, 2)
	bpm := buffer.NewBufferpoolManager(20, replacer, scheduler)

	cat := catalog.NewCatalog(bpm)
	ctx := NewExecutorContext(cat, txn.NewTransaction(1), txn.NewLockManager())
	return ctx, cat
}

func usersSchema() *types.Schema {
	return types.NewSchema([]types.Column{
		{Name: "id", Kind: types.Integer},
		{Name: "name", Kind: types.Varchar},
	})
}

func valuesRows(rows ...[2]any) []([]expression.Expression) {
	out := make([]([]expression.Expression), len(rows))
	for i, r := range rows {
		out[i] = []expression.Expression{
			expression.NewConstantValue(types.NewInteger(r[0].(int64))),
			expression.NewConstantValue(types.NewVarchar(r[1].(string))),
		}
	}
	return out
}

func drain(t *testing.T, e Executor) []*table.Tuple {
	t.Helper()
	assert.NoError(t, e.Init())

	var tuples []*table.Tuple
	for {
		ok, tuple, _, err := e.Next()
		assert.NoError(t, err)
		if !ok {
			break
		}
		tuples = append(tuples, tuple)
	}
	return tuples
}

func TestInsertThenSeqScan(t *testing.T) {
	ctx, cat := newTestContext(t)
	info, err := cat.CreateTable("users", usersSchema())
	assert.NoError(t, err)

	rows := valuesRows([2]any{int64(1), "alice"}, [2]any{int64(2), "bob"})
	insert := NewInsertExecutor(ctx, &InsertPlanNode{TableOid: info.Oid, Child: NewValuesExecutor(&ValuesPlanNode{Rows: rows})})

	results := drain(t, insert)
	assert.Len(t, results, 1)
	assert.Equal(t, int64(2), results[0].Values[0].AsInt())

	scan := NewSeqScanExecutor(ctx, &SeqScanPlanNode{TableOid: info.Oid})
	seen := drain(t, scan)
	assert.Len(t, seen, 2)
}

func TestSeqScanFilterSkipsNonMatchingRows(t *testing.T) {
	ctx, cat := newTestContext(t)
	info, err := cat.CreateTable("users", usersSchema())
	assert.NoError(t, err)

	rows := valuesRows([2]any{int64(1), "alice"}, [2]any{int64(2), "bob"}, [2]any{int64(3), "carl"})
	assert.NotEmpty(t, drain(t, NewInsertExecutor(ctx, &InsertPlanNode{TableOid: info.Oid, Child: NewValuesExecutor(&ValuesPlanNode{Rows: rows})})))

	filter := expression.NewComparison(expression.Equal, expression.NewColumnValue(0, 0), expression.NewConstantValue(types.NewInteger(2)))
	scan := NewSeqScanExecutor(ctx, &SeqScanPlanNode{TableOid: info.Oid, Filter: filter})

	got := drain(t, scan)
	assert.Len(t, got, 1)
	assert.Equal(t, "bob", got[0].Values[1].AsString())
}

func TestDeleteRemovesIndexEntryAndTombstonesRow(t *testing.T) {
	ctx, cat := newTestContext(t)
	info, err := cat.CreateTable("users", usersSchema())
	assert.NoError(t, err)

	keySchema := types.NewSchema([]types.Column{{Name: "id", Kind: types.Integer}})
	idxInfo, err := cat.CreateIndex("users_id_idx", "users", keySchema, []int{0})
	assert.NoError(t, err)

	rows := valuesRows([2]any{int64(1), "alice"}, [2]any{int64(2), "bob"})
	assert.NotEmpty(t, drain(t, NewInsertExecutor(ctx, &InsertPlanNode{TableOid: info.Oid, Child: NewValuesExecutor(&ValuesPlanNode{Rows: rows})})))

	filter := expression.NewComparison(expression.Equal, expression.NewColumnValue(0, 0), expression.NewConstantValue(types.NewInteger(1)))
	toDelete := NewSeqScanExecutor(ctx, &SeqScanPlanNode{TableOid: info.Oid, Filter: filter})
	del := NewDeleteExecutor(ctx, &DeletePlanNode{TableOid: info.Oid, Child: toDelete})
	result := drain(t, del)
	assert.Equal(t, int64(1), result[0].Values[0].AsInt())

	got, err := idxInfo.Index.ScanKey(table.NewTuple([]types.Value{types.NewInteger(1)}))
	assert.NoError(t, err)
	assert.Nil(t, got)

	remaining := drain(t, NewSeqScanExecutor(ctx, &SeqScanPlanNode{TableOid: info.Oid}))
	assert.Len(t, remaining, 1)
	assert.Equal(t, "bob", remaining[0].Values[1].AsString())
}

func TestUpdatePreservesIndexConsistency(t *testing.T) {
	ctx, cat := newTestContext(t)
	info, err := cat.CreateTable("users", usersSchema())
	assert.NoError(t, err)

	keySchema := types.NewSchema([]types.Column{{Name: "id", Kind: types.Integer}})
	idxInfo, err := cat.CreateIndex("users_id_idx", "users", keySchema, []int{0})
	assert.NoError(t, err)

	rows := valuesRows([2]any{int64(1), "alice"})
	assert.NotEmpty(t, drain(t, NewInsertExecutor(ctx, &InsertPlanNode{TableOid: info.Oid, Child: NewValuesExecutor(&ValuesPlanNode{Rows: rows})})))

	toUpdate := NewSeqScanExecutor(ctx, &SeqScanPlanNode{TableOid: info.Oid})
	update := NewUpdateExecutor(ctx, &UpdatePlanNode{
		TableOid: info.Oid,
		Child:    toUpdate,
		TargetExpressions: []expression.Expression{
			expression.NewColumnValue(0, 0),
			expression.NewConstantValue(types.NewVarchar("alicia")),
		},
	})
	result := drain(t, update)
	assert.Equal(t, int64(1), result[0].Values[0].AsInt())

	found, err := idxInfo.Index.ScanKey(table.NewTuple([]types.Value{types.NewInteger(1)}))
	assert.NoError(t, err)
	assert.Len(t, found, 1)

	meta, tuple, err := info.Table.GetTuple(found[0])
	assert.NoError(t, err)
	assert.False(t, meta.IsDeleted)
	assert.Equal(t, "alicia", tuple.Values[1].AsString())
}

func TestIndexScanPointLookup(t *testing.T) {
	ctx, cat := newTestContext(t)
	info, err := cat.CreateTable("users", usersSchema())
	assert.NoError(t, err)

	keySchema := types.NewSchema([]types.Column{{Name: "id", Kind: types.Integer}})
	idxInfo, err := cat.CreateIndex("users_id_idx", "users", keySchema, []int{0})
	assert.NoError(t, err)

	rows := valuesRows([2]any{int64(1), "alice"}, [2]any{int64(2), "bob"}, [2]any{int64(3), "carl"})
	assert.NotEmpty(t, drain(t, NewInsertExecutor(ctx, &InsertPlanNode{TableOid: info.Oid, Child: NewValuesExecutor(&ValuesPlanNode{Rows: rows})})))

	filter := expression.NewComparison(expression.Equal, expression.NewColumnValue(0, 0), expression.NewConstantValue(types.NewInteger(2)))
	scan := NewIndexScanExecutor(ctx, &IndexScanPlanNode{
		TableOid: info.Oid,
		IndexOid: idxInfo.Oid,
		Filter:   filter,
		PredKeys: []expression.Expression{expression.NewConstantValue(types.NewInteger(2))},
	})

	got := drain(t, scan)
	assert.Len(t, got, 1)
	assert.Equal(t, "bob", got[0].Values[1].AsString())
}

func TestIndexScanPointLookupUnionsMultiplePredKeysWithoutDuplicates(t *testing.T) {
	ctx, cat := newTestContext(t)
	info, err := cat.CreateTable("users", usersSchema())
	assert.NoError(t, err)

	keySchema := types.NewSchema([]types.Column{{Name: "id", Kind: types.Integer}})
	idxInfo, err := cat.CreateIndex("users_id_idx", "users", keySchema, []int{0})
	assert.NoError(t, err)

	rows := valuesRows(
		[2]any{int64(3), "carl"},
		[2]any{int64(5), "dana"},
		[2]any{int64(7), "eve"},
		[2]any{int64(9), "finn"},
	)
	assert.NotEmpty(t, drain(t, NewInsertExecutor(ctx, &InsertPlanNode{TableOid: info.Oid, Child: NewValuesExecutor(&ValuesPlanNode{Rows: rows})})))

	filter := expression.NewLogic(expression.Or,
		expression.NewLogic(expression.Or,
			expression.NewComparison(expression.Equal, expression.NewColumnValue(0, 0), expression.NewConstantValue(types.NewInteger(5))),
			expression.NewComparison(expression.Equal, expression.NewColumnValue(0, 0), expression.NewConstantValue(types.NewInteger(9)))),
		expression.NewComparison(expression.Equal, expression.NewColumnValue(0, 0), expression.NewConstantValue(types.NewInteger(3))))

	scan := NewIndexScanExecutor(ctx, &IndexScanPlanNode{
		TableOid: info.Oid,
		IndexOid: idxInfo.Oid,
		Filter:   filter,
		PredKeys: []expression.Expression{
			expression.NewConstantValue(types.NewInteger(5)),
			expression.NewConstantValue(types.NewInteger(9)),
			expression.NewConstantValue(types.NewInteger(3)),
		},
	})

	got := drain(t, scan)
	ids := make(map[int64]bool)
	for _, tuple := range got {
		ids[tuple.Values[0].AsInt()] = true
	}
	assert.Len(t, got, 3)
	assert.Equal(t, map[int64]bool{3: true, 5: true, 9: true}, ids)
}

func TestIndexScanOrderedCoversWholeIndex(t *testing.T) {
	ctx, cat := newTestContext(t)
	info, err := cat.CreateTable("users", usersSchema())
	assert.NoError(t, err)

	keySchema := types.NewSchema([]types.Column{{Name: "id", Kind: types.Integer}})
	idxInfo, err := cat.CreateIndex("users_id_idx", "users", keySchema, []int{0})
	assert.NoError(t, err)

	rows := valuesRows([2]any{int64(3), "carl"}, [2]any{int64(1), "alice"}, [2]any{int64(2), "bob"})
	assert.NotEmpty(t, drain(t, NewInsertExecutor(ctx, &InsertPlanNode{TableOid: info.Oid, Child: NewValuesExecutor(&ValuesPlanNode{Rows: rows})})))

	scan := NewIndexScanExecutor(ctx, &IndexScanPlanNode{TableOid: info.Oid, IndexOid: idxInfo.Oid})
	got := drain(t, scan)
	assert.Len(t, got, 3)
	assert.Equal(t, int64(1), got[0].Values[0].AsInt())
	assert.Equal(t, int64(2), got[1].Values[0].AsInt())
	assert.Equal(t, int64(3), got[2].Values[0].AsInt())
}
