package index

import (
	"cmp"
	"slices"
)

// leafPage is a paged, sorted array of key/value pairs, doubly linked to
// its left and right sibling leaves so range scans never have to climb
// back up to an internal node.
type leafPage[K cmp.Ordered, V any] struct {
	baseHeader
	Next   int64
	Prev   int64
	Keys   []K
	Values []V
}

func newLeafPage[K cmp.Ordered, V any](pageId, parentPageId int64, maxSize int32) *leafPage[K, V] {
	return &leafPage[K, V]{
		baseHeader: baseHeader{
			PageId:   pageId,
			Parent:   parentPageId,
			PageType: LEAF_PAGE,
			MaxSize:  maxSize,
		},
		Next: INVALID_PAGE_ID,
		Prev: INVALID_PAGE_ID,
	}
}

func (p *leafPage[K, V]) KeyAt(idx int) K     { return p.Keys[idx] }
func (p *leafPage[K, V]) ValueAt(idx int) V   { return p.Values[idx] }
func (p *leafPage[K, V]) SetKeyAt(idx int, k K)  { p.Keys[idx] = k }
func (p *leafPage[K, V]) SetValAt(idx int, v V)  { p.Values[idx] = v }

// KeyIndex returns the first position whose key is >= key (lower bound).
func (p *leafPage[K, V]) KeyIndex(key K) int {
	left, right := 0, p.getSize()
	for left < right {
		mid := left + (right-left)/2
		if p.Keys[mid] < key {
			left = mid + 1
		} else {
			right = mid
		}
	}
	return left
}

// Insert adds key/value in sorted position; returns false without
// mutating if key already exists (petrodb's indexes are unique).
func (p *leafPage[K, V]) Insert(key K, value V) bool {
	idx := p.KeyIndex(key)
	if idx < p.getSize() && p.Keys[idx] == key {
		return false
	}

	p.Keys = slices.Insert(p.Keys, idx, key)
	p.Values = slices.Insert(p.Values, idx, value)
	p.changeSizeBy(1)
	return true
}

// RemoveAndDeleteRecord removes key if present, reporting whether it was found.
func (p *leafPage[K, V]) RemoveAndDeleteRecord(key K) bool {
	idx := p.KeyIndex(key)
	if idx >= p.getSize() || p.Keys[idx] != key {
		return false
	}

	p.Keys = slices.Delete(p.Keys, idx, idx+1)
	p.Values = slices.Delete(p.Values, idx, idx+1)
	p.changeSizeBy(-1)
	return true
}

// Split moves the upper half of this leaf (ceiling split, so the left
// side keeps the extra element on odd sizes) into sibling and returns the
// first key of the moved range, the key the parent must adopt as the new
// separator.
func (p *leafPage[K, V]) Split(sibling *leafPage[K, V]) K {
	midIndex := (p.getSize() + 1) / 2

	sibling.Keys = append(sibling.Keys, p.Keys[midIndex:]...)
	sibling.Values = append(sibling.Values, p.Values[midIndex:]...)
	sibling.setSize(p.getSize() - midIndex)

	middleKey := p.Keys[midIndex]

	p.Keys = p.Keys[:midIndex]
	p.Values = p.Values[:midIndex]
	p.setSize(midIndex)

	sibling.Next = p.Next
	sibling.Prev = p.PageId
	p.Next = sibling.PageId

	return middleKey
}

// Merge appends sibling's entries onto p and relinks around it. Callers
// are responsible for updating sibling's old next leaf's Prev pointer.
func (p *leafPage[K, V]) Merge(sibling *leafPage[K, V]) {
	p.Keys = append(p.Keys, sibling.Keys...)
	p.Values = append(p.Values, sibling.Values...)
	p.changeSizeBy(sibling.getSize())

	p.Next = sibling.Next
}
