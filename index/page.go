// Package index implements the disk-oriented B+Tree used to back
// secondary and primary lookups. Pages are fixed-size, paged through the
// buffer pool, and (de)serialized with the same msgpack-based codec the
// rest of petrodb's storage layer uses.
package index

import "github.com/relnova/petrodb/storage/disk"

type PAGE_TYPE int32

const (
	INVALID_PAGE PAGE_TYPE = iota
	INTERNAL_PAGE
	LEAF_PAGE
)

// HEADER_PAGE_ID is a fixed, well-known page id holding the tree's root
// pointer. Every tree occupies its own page id namespace via a distinct
// buffer pool / disk manager pair, so page id 0 never collides across
// trees.
const HEADER_PAGE_ID = 0

const INVALID_PAGE_ID = disk.INVALID_PAGE_ID

type baseHeader struct {
	PageId   int64
	Parent   int64
	Size     int32
	MaxSize  int32
	PageType PAGE_TYPE
}

func (h *baseHeader) getSize() int       { return int(h.Size) }
func (h *baseHeader) setSize(n int)      { h.Size = int32(n) }
func (h *baseHeader) changeSizeBy(d int) { h.Size += int32(d) }
func (h *baseHeader) isLeafPage() bool   { return h.PageType == LEAF_PAGE }
func (h *baseHeader) isFull() bool       { return h.getSize() > int(h.MaxSize) }
func (h *baseHeader) isUnderflow(minSize int) bool {
	return h.getSize() < minSize
}

type headerPage struct {
	RootPageId int64
}
