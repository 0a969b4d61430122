package table

import "github.com/relnova/petrodb/storage/disk"

// TableIterator walks every slot of a table heap in page order, oldest
// page first. It does not skip tombstoned rows; that filtering belongs to
// the executor reading it, mirroring the original table iterator.
type TableIterator struct {
	heap   *TableHeap
	pageId int64
	slot   int
}

// Next reports whether another row was available and, if so, returns its
// location, metadata, and contents, advancing the cursor past it.
func (it *TableIterator) Next() (ok bool, rid RID, meta TupleMeta, tuple *Tuple, err error) {
	for it.pageId != disk.INVALID_PAGE_ID {
		guard, err := it.heap.bpm.ReadPage(it.pageId)
		if err != nil {
			return false, RID{}, TupleMeta{}, nil, err
		}

		page, err := decodeTablePage(guard.GetData())
		if err != nil {
			guard.Drop()
			return false, RID{}, TupleMeta{}, nil, err
		}

		if it.slot >= page.SlotCount() {
			next := page.NextPageId
			guard.Drop()
			it.pageId = next
			it.slot = 0
			continue
		}

		meta, data, err := page.GetTuple(it.slot)
		guard.Drop()
		if err != nil {
			return false, RID{}, TupleMeta{}, nil, err
		}

		rid := RID{PageId: it.pageId, SlotNum: it.slot}
		it.slot++

		t, err := decodeTupleBytes(data)
		if err != nil {
			return false, RID{}, TupleMeta{}, nil, err
		}
		return true, rid, meta, t, nil
	}

	return false, RID{}, TupleMeta{}, nil, nil
}
