package table

import (
	"sync"

	"github.com/relnova/petrodb/buffer"
	"github.com/relnova/petrodb/codec"
	"github.com/relnova/petrodb/errs"
)

// TableHeap is a table's storage: a forward-linked chain of tablePages
// fetched through the shared buffer pool. It carries no locking of its
// own beyond serializing its own InsertTuple calls; UpdateTupleMeta and
// reads rely on the page latches alone, and callers coordinate concurrent
// access through the (stubbed) lock manager, as BusTub does.
type TableHeap struct {
	bpm         *buffer.BufferpoolManager
	mu          sync.Mutex
	firstPageId int64
	lastPageId  int64
}

// NewTableHeap allocates the heap's first, empty page.
func NewTableHeap(bpm *buffer.BufferpoolManager) (*TableHeap, error) {
	pageId, guard, err := bpm.NewPage()
	if err != nil {
		return nil, err
	}

	encoded, err := encodeTablePage(newTablePage())
	if err != nil {
		guard.Drop()
		return nil, err
	}
	copy(*guard.GetDataMut(), encoded)
	guard.Drop()

	return &TableHeap{bpm: bpm, firstPageId: pageId, lastPageId: pageId}, nil
}

// InsertTuple appends tuple to the last page in the chain, allocating a
// fresh page when the current one has no room left.
func (h *TableHeap) InsertTuple(meta TupleMeta, tuple *Tuple) (*RID, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	data, err := codec.Marshal(tuple)
	if err != nil {
		return nil, err
	}

	guard, err := h.bpm.WritePage(h.lastPageId)
	if err != nil {
		return nil, err
	}
	page, err := decodeTablePage(*guard.GetDataMut())
	if err != nil {
		guard.Drop()
		return nil, err
	}

	if slotNum, ok, err := page.InsertTuple(meta, data); err != nil {
		guard.Drop()
		return nil, err
	} else if ok {
		encoded, err := encodeTablePage(page)
		if err != nil {
			guard.Drop()
			return nil, err
		}
		copy(*guard.GetDataMut(), encoded)
		guard.Drop()
		return &RID{PageId: h.lastPageId, SlotNum: slotNum}, nil
	}
	guard.Drop()

	return h.insertIntoNewPage(meta, data)
}

func (h *TableHeap) insertIntoNewPage(meta TupleMeta, data []byte) (*RID, error) {
	newPageId, newGuard, err := h.bpm.NewPage()
	if err != nil {
		return nil, err
	}

	newPage := newTablePage()
	slotNum, ok, err := newPage.InsertTuple(meta, data)
	if err != nil {
		newGuard.Drop()
		return nil, err
	}
	if !ok {
		newGuard.Drop()
		return nil, errs.Exhausted("tuple does not fit even on a fresh page")
	}

	encoded, err := encodeTablePage(newPage)
	if err != nil {
		newGuard.Drop()
		return nil, err
	}
	copy(*newGuard.GetDataMut(), encoded)
	newGuard.Drop()

	oldLastGuard, err := h.bpm.WritePage(h.lastPageId)
	if err != nil {
		return nil, err
	}
	oldLast, err := decodeTablePage(*oldLastGuard.GetDataMut())
	if err != nil {
		oldLastGuard.Drop()
		return nil, err
	}
	oldLast.NextPageId = newPageId
	encodedOld, err := encodeTablePage(oldLast)
	if err != nil {
		oldLastGuard.Drop()
		return nil, err
	}
	copy(*oldLastGuard.GetDataMut(), encodedOld)
	oldLastGuard.Drop()

	h.lastPageId = newPageId
	return &RID{PageId: newPageId, SlotNum: slotNum}, nil
}

// GetTuple fetches the tuple and metadata stored at rid.
func (h *TableHeap) GetTuple(rid RID) (TupleMeta, *Tuple, error) {
	guard, err := h.bpm.ReadPage(rid.PageId)
	if err != nil {
		return TupleMeta{}, nil, err
	}
	defer guard.Drop()

	page, err := decodeTablePage(guard.GetData())
	if err != nil {
		return TupleMeta{}, nil, err
	}

	meta, data, err := page.GetTuple(rid.SlotNum)
	if err != nil {
		return TupleMeta{}, nil, err
	}

	tuple, err := codec.Unmarshal[Tuple](data)
	if err != nil {
		return TupleMeta{}, nil, err
	}
	return meta, &tuple, nil
}

// UpdateTupleMeta rewrites rid's metadata in place, most commonly to flip
// IsDeleted on delete.
func (h *TableHeap) UpdateTupleMeta(meta TupleMeta, rid RID) error {
	guard, err := h.bpm.WritePage(rid.PageId)
	if err != nil {
		return err
	}
	defer guard.Drop()

	page, err := decodeTablePage(*guard.GetDataMut())
	if err != nil {
		return err
	}
	if err := page.UpdateTupleMeta(rid.SlotNum, meta); err != nil {
		return err
	}

	encoded, err := encodeTablePage(page)
	if err != nil {
		return err
	}
	copy(*guard.GetDataMut(), encoded)
	return nil
}

// MakeIterator returns an iterator over every slot in the heap, deleted
// or not; callers filter on TupleMeta.IsDeleted themselves, matching the
// original SeqScanExecutor's contract.
func (h *TableHeap) MakeIterator() *TableIterator {
	return &TableIterator{heap: h, pageId: h.firstPageId, slot: 0}
}
