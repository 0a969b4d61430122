package table

import (
	"github.com/relnova/petrodb/codec"
	"github.com/relnova/petrodb/storage/disk"
)

// slotEntry is one entry in a page's slot directory: where the tuple's
// bytes sit in the page's heap, how long they are, and the tombstone/ts
// pair mirrored from TupleMeta so a reader never has to touch the heap
// just to check IsDeleted.
type slotEntry struct {
	Offset    int
	Length    int
	Ts        int64
	IsDeleted bool
}

// tablePage is BusTub/Postgres-style slotted storage: a directory of
// fixed-size slot entries and a heap of variable-length tuple bytes.
// Unlike the classic layout, which grows the heap backward from the end
// of a fixed byte array, this page is a single msgpack-encoded struct
// padded to disk.PAGE_SIZE by the buffer pool's codec, so the heap is
// simply appended to and slot offsets index into it directly.
type tablePage struct {
	NextPageId int64
	Slots      []slotEntry
	Heap       []byte
}

// maxTablePagePayload leaves headroom below disk.PAGE_SIZE for msgpack's
// own framing overhead, which grows slightly with slot count.
const maxTablePagePayload = disk.PAGE_SIZE - 64

func newTablePage() *tablePage {
	return &tablePage{NextPageId: disk.INVALID_PAGE_ID}
}

// InsertTuple appends data to the page's heap and records a new slot for
// it. It reports ok=false, without mutating the page, when the tuple
// would not fit in the remaining space.
func (p *tablePage) InsertTuple(meta TupleMeta, data []byte) (slotNum int, ok bool, err error) {
	trial := &tablePage{
		NextPageId: p.NextPageId,
		Slots:      append(append([]slotEntry{}, p.Slots...), slotEntry{Offset: len(p.Heap), Length: len(data), Ts: meta.Ts, IsDeleted: meta.IsDeleted}),
		Heap:       append(append([]byte{}, p.Heap...), data...),
	}

	encoded, err := codec.Marshal(trial)
	if err != nil {
		return 0, false, err
	}
	if len(encoded) > maxTablePagePayload {
		return 0, false, nil
	}

	p.Slots = trial.Slots
	p.Heap = trial.Heap
	return len(p.Slots) - 1, true, nil
}

func (p *tablePage) GetTuple(slotNum int) (TupleMeta, []byte, error) {
	if slotNum < 0 || slotNum >= len(p.Slots) {
		return TupleMeta{}, nil, errSlotOutOfRange(slotNum, len(p.Slots))
	}
	s := p.Slots[slotNum]
	return TupleMeta{Ts: s.Ts, IsDeleted: s.IsDeleted}, p.Heap[s.Offset : s.Offset+s.Length], nil
}

func (p *tablePage) UpdateTupleMeta(slotNum int, meta TupleMeta) error {
	if slotNum < 0 || slotNum >= len(p.Slots) {
		return errSlotOutOfRange(slotNum, len(p.Slots))
	}
	p.Slots[slotNum].Ts = meta.Ts
	p.Slots[slotNum].IsDeleted = meta.IsDeleted
	return nil
}

func (p *tablePage) SlotCount() int { return len(p.Slots) }

func encodeTablePage(p *tablePage) ([]byte, error) {
	return codec.ToBytes(p)
}

func decodeTablePage(data []byte) (*tablePage, error) {
	page, err := codec.FromBytes[tablePage](data)
	if err != nil {
		return nil, err
	}
	return &page, nil
}
