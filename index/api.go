package index

// Begin returns an iterator positioned at the smallest key in the tree.
func (t *BplusTree[K, V]) Begin() (*Iterator[K, V], error) {
	rootId, err := t.rootPageId()
	if err != nil {
		return nil, err
	}
	if rootId == INVALID_PAGE_ID {
		return endIterator[K, V](), nil
	}

	leftmost, err := t.leftmostLeaf(rootId)
	if err != nil {
		return nil, err
	}

	return newIterator[K, V](t.bpm, leftmost, 0)
}

// BeginAt returns an iterator positioned at the first key >= key.
func (t *BplusTree[K, V]) BeginAt(key K) (*Iterator[K, V], error) {
	rootId, err := t.rootPageId()
	if err != nil {
		return nil, err
	}
	if rootId == INVALID_PAGE_ID {
		return endIterator[K, V](), nil
	}

	leafId, err := t.descendToLeaf(rootId, key)
	if err != nil {
		return nil, err
	}

	guard, err := t.bpm.ReadPage(leafId)
	if err != nil {
		return nil, err
	}
	defer guard.Drop()

	leaf, err := decodeLeaf[K, V](guard.GetData())
	if err != nil {
		return nil, err
	}

	idx := leaf.KeyIndex(key)
	if idx >= leaf.getSize() {
		return newIterator[K, V](t.bpm, leaf.Next, 0)
	}
	return newIterator[K, V](t.bpm, leafId, idx)
}

// End returns the sentinel iterator representing the position past the
// last entry.
func (t *BplusTree[K, V]) End() *Iterator[K, V] {
	return endIterator[K, V]()
}

func (t *BplusTree[K, V]) leftmostLeaf(rootId int64) (int64, error) {
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

		currId = internal.ValueAt(0)
	}
}
