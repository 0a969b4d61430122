package index

import (
	"cmp"

	"github.com/relnova/petrodb/buffer"
	"github.com/relnova/petrodb/errs"
)

const DEFAULT_LEAF_MAX_SIZE = 100
const DEFAULT_INTERNAL_MAX_SIZE = 100

// BplusTree is a disk-backed B+Tree index keyed by K, storing V (typically
// a row id) at the leaves. Every tree owns its own header page at
// HEADER_PAGE_ID within its buffer pool, so distinct indexes must each
// get their own BufferpoolManager/disk manager pair.
type BplusTree[K cmp.Ordered, V any] struct {
	indexName       string
	bpm             *buffer.BufferpoolManager
	leafMaxSize     int32
	internalMaxSize int32
}

// NewBplusTree opens (and, if empty, initializes) the tree backed by bpm.
func NewBplusTree[K cmp.Ordered, V any](name string, bpm *buffer.BufferpoolManager, leafMaxSize, internalMaxSize int32) (*BplusTree[K, V], error) {
	if leafMaxSize <= 0 {
		leafMaxSize = DEFAULT_LEAF_MAX_SIZE
	}
	if internalMaxSize <= 0 {
		internalMaxSize = DEFAULT_INTERNAL_MAX_SIZE
	}

	t := &BplusTree[K, V]{
		indexName:       name,
		bpm:             bpm,
		leafMaxSize:     leafMaxSize,
		internalMaxSize: internalMaxSize,
	}

	guard, err := t.bpm.WritePage(HEADER_PAGE_ID)
	if err != nil {
		return nil, err
	}
	defer guard.Drop()

	header, err := readHeader(guard)
	if err != nil {
		header = headerPage{RootPageId: INVALID_PAGE_ID}
		if err := writeHeader(guard, header); err != nil {
			return nil, err
		}
	}

	return t, nil
}

func readHeader(guard *buffer.WritePageGuard) (headerPage, error) {
	return codecUnmarshalHeader(*guard.GetDataMut())
}

func writeHeader(guard *buffer.WritePageGuard, h headerPage) error {
	data, err := codecMarshalHeader(h)
	if err != nil {
		return err
	}
	copy(*guard.GetDataMut(), data)
	return nil
}

func (t *BplusTree[K, V]) IsEmpty() bool {
	rootId, err := t.rootPageId()
	if err != nil {
		return true
	}
	return rootId == INVALID_PAGE_ID
}

func (t *BplusTree[K, V]) rootPageId() (int64, error) {
	guard, err := t.bpm.ReadPage(HEADER_PAGE_ID)
	if err != nil {
		return INVALID_PAGE_ID, err
	}
	defer guard.Drop()

	h, err := codecUnmarshalHeader(guard.GetData())
	if err != nil {
		return INVALID_PAGE_ID, err
	}
	return h.RootPageId, nil
}

func (t *BplusTree[K, V]) setRootPageId(headerGuard *buffer.WritePageGuard, pageId int64) error {
	return writeHeader(headerGuard, headerPage{RootPageId: pageId})
}

// GetValue returns the value stored for key, or errs.NotFound.
func (t *BplusTree[K, V]) GetValue(key K) (V, error) {
	var zero V

	rootId, err := t.rootPageId()
	if err != nil {
		return zero, err
	}
	if rootId == INVALID_PAGE_ID {
		return zero, errs.NotFound("index %q is empty", t.indexName)
	}

	leafId, err := t.descendToLeaf(rootId, key)
	if err != nil {
		return zero, err
	}

	guard, err := t.bpm.ReadPage(leafId)
	if err != nil {
		return zero, err
	}
	defer guard.Drop()

	leaf, err := decodeLeaf[K, V](guard.GetData())
	if err != nil {
		return zero, err
	}

	idx := leaf.KeyIndex(key)
	if idx >= leaf.getSize() || leaf.KeyAt(idx) != key {
		return zero, errs.NotFound("key not found in index %q", t.indexName)
	}

	return leaf.ValueAt(idx), nil
}

// descendToLeaf walks internal pages from rootId to the leaf that should
// hold key, read-latching one page at a time (each dropped before the
// next is acquired).
func (t *BplusTree[K, V]) descendToLeaf(rootId int64, key K) (int64, error) {
	currId := rootId

	for {
		guard, err := t.bpm.ReadPage(currId)
		if err != nil {
			return INVALID_PAGE_ID, err
		}

		pageType, err := peekPageType(guard.GetData())
		if err != nil {
			guard.Drop()
			return INVALID_PAGE_ID, err
		}

		if pageType == LEAF_PAGE {
			guard.Drop()
			return currId, nil
		}

		internal, err := decodeInternal[K](guard.GetData())
		guard.Drop()
		if err != nil {
			return INVALID_PAGE_ID, err
		}

		childIdx := internal.KeyIndex(key)
		currId = internal.ValueAt(childIdx)
	}
}

// Insert adds key/value to the tree, splitting nodes on overflow as
// needed. Returns false if key already exists.
func (t *BplusTree[K, V]) Insert(key K, value V) (bool, error) {
	headerGuard, err := t.bpm.WritePage(HEADER_PAGE_ID)
	if err != nil {
		return false, err
	}
	defer headerGuard.Drop()

	header, err := codecUnmarshalHeader(*headerGuard.GetDataMut())
	if err != nil {
		return false, err
	}

	if header.RootPageId == INVALID_PAGE_ID {
		pageId, guard, err := t.bpm.NewPage()
		if err != nil {
			return false, err
		}
		defer guard.Drop()

		leaf := newLeafPage[K, V](pageId, INVALID_PAGE_ID, t.leafMaxSize)
		leaf.Insert(key, value)

		data, err := encodeLeaf(leaf)
		if err != nil {
			return false, err
		}
		copy(*guard.GetDataMut(), data)

		return true, t.setRootPageId(headerGuard, pageId)
	}

	path, err := t.lockPathToLeaf(header.RootPageId, key)
	if err != nil {
		return false, err
	}
	defer releaseGuards(path)

	leafGuard := path[len(path)-1]
	leaf, err := decodeLeaf[K, V](*leafGuard.GetDataMut())
	if err != nil {
		return false, err
	}

	if !leaf.Insert(key, value) {
		return false, nil
	}

	if !leaf.isFull() {
		return true, t.saveLeaf(leafGuard, leaf)
	}

	siblingId, siblingGuard, err := t.bpm.NewPage()
	if err != nil {
		return false, err
	}
	defer siblingGuard.Drop()

	sibling := newLeafPage[K, V](siblingId, leaf.Parent, t.leafMaxSize)
	middleKey := leaf.Split(sibling)

	if err := t.saveLeaf(leafGuard, leaf); err != nil {
		return false, err
	}
	if err := t.saveLeaf(siblingGuard, sibling); err != nil {
		return false, err
	}
	if err := t.relinkNextPrev(sibling.Next, siblingId); err != nil {
		return false, err
	}

	setLeftParent := func(p int64) error {
		leaf.Parent = p
		return t.saveLeaf(leafGuard, leaf)
	}
	setRightParent := func(p int64) error {
		sibling.Parent = p
		return t.saveLeaf(siblingGuard, sibling)
	}

	return true, t.insertIntoParent(headerGuard, path[:len(path)-1], leaf.PageId, middleKey, siblingId, setLeftParent, setRightParent)
}

// lockPathToLeaf write-latches every page from rootId down to the target
// leaf, in order, and returns the held guards. Coarser than BusTub's
// optimistic-then-pessimistic crabbing, but never corrupts structure
// under concurrent writers.
func (t *BplusTree[K, V]) lockPathToLeaf(rootId int64, key K) ([]*buffer.WritePageGuard, error) {
	var path []*buffer.WritePageGuard
	currId := rootId

	for {
		guard, err := t.bpm.WritePage(currId)
		if err != nil {
			releaseGuards(path)
			return nil, err
		}
		path = append(path, guard)

		pageType, err := peekPageType(*guard.GetDataMut())
		if err != nil {
			releaseGuards(path)
			return nil, err
		}

		if pageType == LEAF_PAGE {
			return path, nil
		}

		internal, err := decodeInternal[K](*guard.GetDataMut())
		if err != nil {
			releaseGuards(path)
			return nil, err
		}

		currId = internal.ValueAt(internal.KeyIndex(key))
	}
}

func releaseGuards(guards []*buffer.WritePageGuard) {
	for i := len(guards) - 1; i >= 0; i-- {
		guards[i].Drop()
	}
}

func (t *BplusTree[K, V]) saveLeaf(guard *buffer.WritePageGuard, leaf *leafPage[K, V]) error {
	data, err := encodeLeaf(leaf)
	if err != nil {
		return err
	}
	copy(*guard.GetDataMut(), data)
	return nil
}

func (t *BplusTree[K, V]) saveInternal(guard *buffer.WritePageGuard, p *internalPage[K]) error {
	data, err := encodeInternal(p)
	if err != nil {
		return err
	}
	copy(*guard.GetDataMut(), data)
	return nil
}

// insertIntoParent inserts (middleKey -> rightId) after leftId in the
// parent found at the top of ancestors, creating a new root or splitting
// the parent recursively as needed. setLeftParent/setRightParent update
// and persist the Parent field of the pages at leftId/rightId using
// guards the caller already holds — callers must never pass a page id
// whose guard isn't backed by one of these closures, since fetching it
// again through the buffer pool would try to re-lock a latch this same
// call stack already owns.
func (t *BplusTree[K, V]) insertIntoParent(headerGuard *buffer.WritePageGuard, ancestors []*buffer.WritePageGuard, leftId int64, middleKey K, rightId int64, setLeftParent, setRightParent func(int64) error) error {
	if len(ancestors) == 0 {
		newRootId, newRootGuard, err := t.bpm.NewPage()
		if err != nil {
			return err
		}
		defer newRootGuard.Drop()

		var zeroKey K
		root := newInternalPage[K](newRootId, INVALID_PAGE_ID, t.internalMaxSize)
		root.Keys = []K{zeroKey, middleKey}
		root.Values = []int64{leftId, rightId}
		root.setSize(2)

		if err := setLeftParent(newRootId); err != nil {
			return err
		}
		if err := setRightParent(newRootId); err != nil {
			return err
		}

		if err := t.saveInternal(newRootGuard, root); err != nil {
			return err
		}
		return t.setRootPageId(headerGuard, newRootId)
	}

	parentGuard := ancestors[len(ancestors)-1]
	parent, err := decodeInternal[K](*parentGuard.GetDataMut())
	if err != nil {
		return err
	}

	parent.InsertNodeAfter(leftId, middleKey, rightId)
	if err := setRightParent(parent.PageId); err != nil {
		return err
	}

	if !parent.isFull() {
		return t.saveInternal(parentGuard, parent)
	}

	siblingId, siblingGuard, err := t.bpm.NewPage()
	if err != nil {
		return err
	}
	defer siblingGuard.Drop()

	sibling := newInternalPage[K](siblingId, parent.Parent, t.internalMaxSize)
	pushUpKey := parent.Split(sibling)

	for _, childId := range sibling.Values {
		var err error
		switch childId {
		case leftId:
			err = setLeftParent(siblingId)
		case rightId:
			err = setRightParent(siblingId)
		default:
			err = t.reparent(childId, siblingId)
		}
		if err != nil {
			return err
		}
	}

	if err := t.saveInternal(parentGuard, parent); err != nil {
		return err
	}
	if err := t.saveInternal(siblingGuard, sibling); err != nil {
		return err
	}

	setParentParent := func(p int64) error {
		parent.Parent = p
		return t.saveInternal(parentGuard, parent)
	}
	setSiblingParent := func(p int64) error {
		sibling.Parent = p
		return t.saveInternal(siblingGuard, sibling)
	}

	return t.insertIntoParent(headerGuard, ancestors[:len(ancestors)-1], parent.PageId, pushUpKey, siblingId, setParentParent, setSiblingParent)
}

func (t *BplusTree[K, V]) reparent(childId, newParentId int64) error {
	guard, err := t.bpm.WritePage(childId)
	if err != nil {
		return err
	}
	defer guard.Drop()

	pageType, err := peekPageType(*guard.GetDataMut())
	if err != nil {
		return err
	}

	if pageType == LEAF_PAGE {
		leaf, err := decodeLeaf[K, V](*guard.GetDataMut())
		if err != nil {
			return err
		}
		leaf.Parent = newParentId
		return t.saveLeaf(guard, leaf)
	}

	internal, err := decodeInternal[K](*guard.GetDataMut())
	if err != nil {
		return err
	}
	internal.Parent = newParentId
	return t.saveInternal(guard, internal)
}

func (t *BplusTree[K, V]) reparentChildren(p *internalPage[K]) error {
	for _, childId := range p.Values {
		if err := t.reparent(childId, p.PageId); err != nil {
			return err
		}
	}
	return nil
}

func (t *BplusTree[K, V]) minLeafSize() int  { return int(t.leafMaxSize+1) / 2 }
func (t *BplusTree[K, V]) minInternalSize() int {
	return int(t.internalMaxSize+1) / 2
}

// Remove deletes key from the tree, borrowing from or merging with a
// sibling on underflow. Returns false if key was not present.
func (t *BplusTree[K, V]) Remove(key K) (bool, error) {
	headerGuard, err := t.bpm.WritePage(HEADER_PAGE_ID)
	if err != nil {
		return false, err
	}
	defer headerGuard.Drop()

	header, err := codecUnmarshalHeader(*headerGuard.GetDataMut())
	if err != nil {
		return false, err
	}
	if header.RootPageId == INVALID_PAGE_ID {
		return false, nil
	}

	path, err := t.lockPathToLeaf(header.RootPageId, key)
	if err != nil {
		return false, err
	}
	defer func() { releaseGuards(path) }()

	leafGuard := path[len(path)-1]
	leaf, err := decodeLeaf[K, V](*leafGuard.GetDataMut())
	if err != nil {
		return false, err
	}

	if !leaf.RemoveAndDeleteRecord(key) {
		return false, nil
	}

	if leaf.PageId == header.RootPageId {
		if leaf.getSize() == 0 {
			if err := t.setRootPageId(headerGuard, INVALID_PAGE_ID); err != nil {
				return false, err
			}
			releaseGuards(path)
			path = nil
			return true, t.bpm.DeletePage(leaf.PageId)
		}
		return true, t.saveLeaf(leafGuard, leaf)
	}

	if leaf.getSize() >= t.minLeafSize() {
		return true, t.saveLeaf(leafGuard, leaf)
	}

	return true, t.fixLeafUnderflow(headerGuard, path[:len(path)-1], leafGuard, leaf)
}

func (t *BplusTree[K, V]) fixLeafUnderflow(headerGuard *buffer.WritePageGuard, ancestors []*buffer.WritePageGuard, leafGuard *buffer.WritePageGuard, leaf *leafPage[K, V]) error {
	parentGuard := ancestors[len(ancestors)-1]
	parent, err := decodeInternal[K](*parentGuard.GetDataMut())
	if err != nil {
		return err
	}

	childIndex := parent.ValueIndex(leaf.PageId)

	if childIndex > 0 {
		leftId := parent.ValueAt(childIndex - 1)
		leftGuard, err := t.bpm.WritePage(leftId)
		if err != nil {
			return err
		}
		defer leftGuard.Drop()

		left, err := decodeLeaf[K, V](*leftGuard.GetDataMut())
		if err != nil {
			return err
		}

		if left.getSize() > t.minLeafSize() {
			borrowed := left.getSize() - 1
			key, val := left.KeyAt(borrowed), left.ValueAt(borrowed)
			left.Keys = left.Keys[:borrowed]
			left.Values = left.Values[:borrowed]
			left.changeSizeBy(-1)

			leaf.Keys = append([]K{key}, leaf.Keys...)
			leaf.Values = append([]V{val}, leaf.Values...)
			leaf.changeSizeBy(1)

			parent.SetKeyAt(childIndex, key)

			if err := t.saveLeaf(leftGuard, left); err != nil {
				return err
			}
			if err := t.saveLeaf(leafGuard, leaf); err != nil {
				return err
			}
			return t.saveInternal(parentGuard, parent)
		}
	}

	if childIndex < parent.getSize()-1 {
		rightId := parent.ValueAt(childIndex + 1)
		rightGuard, err := t.bpm.WritePage(rightId)
		if err != nil {
			return err
		}
		defer rightGuard.Drop()

		right, err := decodeLeaf[K, V](*rightGuard.GetDataMut())
		if err != nil {
			return err
		}

		if right.getSize() > t.minLeafSize() {
			key, val := right.KeyAt(0), right.ValueAt(0)
			right.Keys = right.Keys[1:]
			right.Values = right.Values[1:]
			right.changeSizeBy(-1)

			leaf.Keys = append(leaf.Keys, key)
			leaf.Values = append(leaf.Values, val)
			leaf.changeSizeBy(1)

			parent.SetKeyAt(childIndex+1, right.KeyAt(0))

			if err := t.saveLeaf(rightGuard, right); err != nil {
				return err
			}
			if err := t.saveLeaf(leafGuard, leaf); err != nil {
				return err
			}
			return t.saveInternal(parentGuard, parent)
		}
	}

	if childIndex > 0 {
		leftId := parent.ValueAt(childIndex - 1)
		leftGuard, err := t.bpm.WritePage(leftId)
		if err != nil {
			return err
		}
		defer leftGuard.Drop()

		left, err := decodeLeaf[K, V](*leftGuard.GetDataMut())
		if err != nil {
			return err
		}

		left.Merge(leaf)
		if err := t.relinkNextPrev(left.Next, left.PageId); err != nil {
			return err
		}
		if err := t.saveLeaf(leftGuard, left); err != nil {
			return err
		}
		if err := t.bpm.DeletePage(leaf.PageId); err != nil {
			return err
		}

		parent.Remove(childIndex)
		setSurvivorParent := func(p int64) error {
			left.Parent = p
			return t.saveLeaf(leftGuard, left)
		}
		return t.fixParentUnderflow(headerGuard, ancestors, parentGuard, parent, left.PageId, setSurvivorParent)
	}

	rightId := parent.ValueAt(childIndex + 1)
	rightGuard, err := t.bpm.WritePage(rightId)
	if err != nil {
		return err
	}
	defer rightGuard.Drop()

	right, err := decodeLeaf[K, V](*rightGuard.GetDataMut())
	if err != nil {
		return err
	}

	leaf.Merge(right)
	if err := t.relinkNextPrev(leaf.Next, leaf.PageId); err != nil {
		return err
	}
	if err := t.saveLeaf(leafGuard, leaf); err != nil {
		return err
	}
	if err := t.bpm.DeletePage(right.PageId); err != nil {
		return err
	}

	parent.Remove(childIndex + 1)
	setSurvivorParent := func(p int64) error {
		leaf.Parent = p
		return t.saveLeaf(leafGuard, leaf)
	}
	return t.fixParentUnderflow(headerGuard, ancestors, parentGuard, parent, leaf.PageId, setSurvivorParent)
}

// relinkNextPrev fixes nextId's Prev pointer to point at newPrevId, a
// no-op when there is no next leaf.
func (t *BplusTree[K, V]) relinkNextPrev(nextId, newPrevId int64) error {
	if nextId == INVALID_PAGE_ID {
		return nil
	}

	guard, err := t.bpm.WritePage(nextId)
	if err != nil {
		return err
	}
	defer guard.Drop()

	next, err := decodeLeaf[K, V](*guard.GetDataMut())
	if err != nil {
		return err
	}
	next.Prev = newPrevId
	return t.saveLeaf(guard, next)
}

// fixParentUnderflow restores parent's minimum occupancy after one of its
// entries was removed. survivorId/setSurvivorParent identify the child
// that was just merged into (from the level below) and let the
// root-collapse case reparent it without re-fetching a guard the caller
// already holds.
func (t *BplusTree[K, V]) fixParentUnderflow(headerGuard *buffer.WritePageGuard, ancestors []*buffer.WritePageGuard, parentGuard *buffer.WritePageGuard, parent *internalPage[K], survivorId int64, setSurvivorParent func(int64) error) error {
	header, err := codecUnmarshalHeader(*headerGuard.GetDataMut())
	if err != nil {
		return err
	}

	if parent.PageId == header.RootPageId {
		if parent.getSize() == 1 {
			onlyChild := parent.ValueAt(0)
			if onlyChild == survivorId {
				if err := setSurvivorParent(INVALID_PAGE_ID); err != nil {
					return err
				}
			} else if err := t.reparent(onlyChild, INVALID_PAGE_ID); err != nil {
				return err
			}
			if err := t.setRootPageId(headerGuard, onlyChild); err != nil {
				return err
			}
			return t.bpm.DeletePage(parent.PageId)
		}
		return t.saveInternal(parentGuard, parent)
	}

	if parent.getSize() >= t.minInternalSize() {
		return t.saveInternal(parentGuard, parent)
	}

	if len(ancestors) == 0 {
		return t.saveInternal(parentGuard, parent)
	}

	grandparentGuard := ancestors[len(ancestors)-1]
	grandparent, err := decodeInternal[K](*grandparentGuard.GetDataMut())
	if err != nil {
		return err
	}

	childIndex := grandparent.ValueIndex(parent.PageId)

	if childIndex > 0 {
		leftId := grandparent.ValueAt(childIndex - 1)
		leftGuard, err := t.bpm.WritePage(leftId)
		if err != nil {
			return err
		}
		defer leftGuard.Drop()

		left, err := decodeInternal[K](*leftGuard.GetDataMut())
		if err != nil {
			return err
		}

		if left.getSize() > t.minInternalSize() {
			borrowed := left.getSize() - 1
			childId := left.ValueAt(borrowed)
			ascendingKey := left.KeyAt(borrowed)
			separator := grandparent.KeyAt(childIndex)

			left.Keys = left.Keys[:borrowed]
			left.Values = left.Values[:borrowed]
			left.changeSizeBy(-1)

			parent.InsertFront(separator, childId)
			grandparent.SetKeyAt(childIndex, ascendingKey)

			if err := t.reparent(childId, parent.PageId); err != nil {
				return err
			}
			if err := t.saveInternal(leftGuard, left); err != nil {
				return err
			}
			if err := t.saveInternal(parentGuard, parent); err != nil {
				return err
			}
			return t.saveInternal(grandparentGuard, grandparent)
		}
	}

	if childIndex < grandparent.getSize()-1 {
		rightId := grandparent.ValueAt(childIndex + 1)
		rightGuard, err := t.bpm.WritePage(rightId)
		if err != nil {
			return err
		}
		defer rightGuard.Drop()

		right, err := decodeInternal[K](*rightGuard.GetDataMut())
		if err != nil {
			return err
		}

		if right.getSize() > t.minInternalSize() {
			childId := right.ValueAt(0)
			separator := grandparent.KeyAt(childIndex + 1)

			right.Values = right.Values[1:]
			right.Keys = right.Keys[1:]
			right.changeSizeBy(-1)

			parent.InsertBack(separator, childId)
			grandparent.SetKeyAt(childIndex+1, right.KeyAt(0))

			if err := t.reparent(childId, parent.PageId); err != nil {
				return err
			}
			if err := t.saveInternal(rightGuard, right); err != nil {
				return err
			}
			if err := t.saveInternal(parentGuard, parent); err != nil {
				return err
			}
			return t.saveInternal(grandparentGuard, grandparent)
		}
	}

	if childIndex > 0 {
		leftId := grandparent.ValueAt(childIndex - 1)
		leftGuard, err := t.bpm.WritePage(leftId)
		if err != nil {
			return err
		}
		defer leftGuard.Drop()

		left, err := decodeInternal[K](*leftGuard.GetDataMut())
		if err != nil {
			return err
		}

		separator := grandparent.KeyAt(childIndex)
		left.Merge(parent, separator)
		if err := t.reparentChildren(left); err != nil {
			return err
		}
		if err := t.saveInternal(leftGuard, left); err != nil {
			return err
		}
		if err := t.bpm.DeletePage(parent.PageId); err != nil {
			return err
		}

		grandparent.Remove(childIndex)
		setSurvivorParent := func(p int64) error {
			left.Parent = p
			return t.saveInternal(leftGuard, left)
		}
		return t.fixParentUnderflow(headerGuard, ancestors[:len(ancestors)-1], grandparentGuard, grandparent, left.PageId, setSurvivorParent)
	}

	rightId := grandparent.ValueAt(childIndex + 1)
	rightGuard, err := t.bpm.WritePage(rightId)
	if err != nil {
		return err
	}
	defer rightGuard.Drop()

	right, err := decodeInternal[K](*rightGuard.GetDataMut())
	if err != nil {
		return err
	}

	separator := grandparent.KeyAt(childIndex + 1)
	parent.Merge(right, separator)
	if err := t.reparentChildren(parent); err != nil {
		return err
	}
	if err := t.saveInternal(parentGuard, parent); err != nil {
		return err
	}
	if err := t.bpm.DeletePage(right.PageId); err != nil {
		return err
	}

	grandparent.Remove(childIndex + 1)
	setSurvivorParent = func(p int64) error {
		parent.Parent = p
		return t.saveInternal(parentGuard, parent)
	}
	return t.fixParentUnderflow(headerGuard, ancestors[:len(ancestors)-1], grandparentGuard, grandparent, parent.PageId, setSurvivorParent)
}

// GetRootPageId returns the current root, or INVALID_PAGE_ID when empty.
func (t *BplusTree[K, V]) GetRootPageId() (int64, error) {
	return t.rootPageId()
}
