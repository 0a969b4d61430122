package index

import (
	"github.com/relnova/petrodb/buffer"
	"github.com/relnova/petrodb/storage/table"
)

// BPlusTreeIndex adapts the generic BplusTree, keyed on types.Value.ToKey
// strings, to the catalog's notion of an Index over table rows: it maps a
// key tuple's projected Values to a RID.
//
// types.Value cannot itself instantiate BplusTree's K type parameter since
// cmp.Ordered requires an ordered underlying kind and Value is a struct;
// ToKey's string encoding is the bridge.
type BPlusTreeIndex struct {
	tree     *BplusTree[string, table.RID]
	keyAttrs []int
}

// NewBPlusTreeIndex builds an index over name, keyed by keyAttrs (the
// positions of the indexed columns in the owning table's schema).
func NewBPlusTreeIndex(name string, bpm *buffer.BufferpoolManager, leafMaxSize, internalMaxSize int, keyAttrs []int) (*BPlusTreeIndex, error) {
	tree, err := NewBplusTree[string, table.RID](name, bpm, int32(leafMaxSize), int32(internalMaxSize))
	if err != nil {
		return nil, err
	}
	return &BPlusTreeIndex{tree: tree, keyAttrs: keyAttrs}, nil
}

func valueKey(keyTuple *table.Tuple) string {
	if len(keyTuple.Values) == 1 {
		return keyTuple.Values[0].ToKey()
	}
	key := ""
	for _, v := range keyTuple.Values {
		key += v.ToKey() + "\x00"
	}
	return key
}

// ScanKey looks up every RID stored under keyTuple's key. petrodb's
// indexes never carry duplicate keys, so the result holds at most one RID,
// but the slice return keeps the shape the executor expects when a filter
// widens to an OR of several keys.
func (idx *BPlusTreeIndex) ScanKey(keyTuple *table.Tuple) ([]table.RID, error) {
	rid, err := idx.tree.GetValue(valueKey(keyTuple))
	if err != nil {
		return nil, nil
	}
	return []table.RID{rid}, nil
}

func (idx *BPlusTreeIndex) InsertEntry(keyTuple *table.Tuple, rid table.RID) error {
	_, err := idx.tree.Insert(valueKey(keyTuple), rid)
	return err
}

func (idx *BPlusTreeIndex) DeleteEntry(keyTuple *table.Tuple) error {
	_, err := idx.tree.Remove(valueKey(keyTuple))
	return err
}

func (idx *BPlusTreeIndex) GetKeyAttrs() []int { return idx.keyAttrs }

// Begin and End expose ordered iteration for a full index scan.
func (idx *BPlusTreeIndex) Begin() (*Iterator[string, table.RID], error) { return idx.tree.Begin() }
func (idx *BPlusTreeIndex) End() *Iterator[string, table.RID]            { return idx.tree.End() }
