package index

import (
	"cmp"

	"github.com/relnova/petrodb/buffer"
)

// Iterator walks leaf pages left to right, holding a read latch on
// exactly one leaf at a time. Crossing into the next leaf drops the
// current guard before acquiring the next one, so a long-lived iterator
// never pins more than a single frame.
type Iterator[K cmp.Ordered, V any] struct {
	bpm     *buffer.BufferpoolManager
	guard   *buffer.ReadPageGuard
	leaf    *leafPage[K, V]
	slotIdx int
}

// endIterator returns the sentinel "past the last entry" iterator.
func endIterator[K cmp.Ordered, V any]() *Iterator[K, V] {
	return &Iterator[K, V]{}
}

func newIterator[K cmp.Ordered, V any](bpm *buffer.BufferpoolManager, leafId int64, slotIdx int) (*Iterator[K, V], error) {
	if leafId == INVALID_PAGE_ID {
		return endIterator[K, V](), nil
	}

	guard, err := bpm.ReadPage(leafId)
	if err != nil {
		return nil, err
	}

	leaf, err := decodeLeaf[K, V](guard.GetData())
	if err != nil {
		guard.Drop()
		return nil, err
	}

	return &Iterator[K, V]{bpm: bpm, guard: guard, leaf: leaf, slotIdx: slotIdx}, nil
}

// IsEnd reports whether the iterator has advanced past the last entry.
func (it *Iterator[K, V]) IsEnd() bool {
	return it.guard == nil
}

// Key and Value return the entry the iterator currently points at.
// Calling either at end is a programming error.
func (it *Iterator[K, V]) Key() K   { return it.leaf.KeyAt(it.slotIdx) }
func (it *Iterator[K, V]) Value() V { return it.leaf.ValueAt(it.slotIdx) }

// Next advances the iterator, releasing the current leaf's latch before
// acquiring the next one when it crosses a leaf boundary.
func (it *Iterator[K, V]) Next() error {
	if it.IsEnd() {
		return nil
	}

	it.slotIdx++
	if it.slotIdx < it.leaf.getSize() {
		return nil
	}

	nextId := it.leaf.Next
	it.guard.Drop()
	it.guard = nil
	it.leaf = nil

	if nextId == INVALID_PAGE_ID {
		return nil
	}

	guard, err := it.bpm.ReadPage(nextId)
	if err != nil {
		return err
	}

	leaf, err := decodeLeaf[K, V](guard.GetData())
	if err != nil {
		guard.Drop()
		return err
	}

	it.guard = guard
	it.leaf = leaf
	it.slotIdx = 0
	return nil
}

// Close releases any held latch without exhausting the iterator by
// advancing to the end. Safe to call multiple times.
func (it *Iterator[K, V]) Close() {
	if it.guard != nil {
		it.guard.Drop()
		it.guard = nil
	}
}
