package table

import "fmt"

// RID (record id) locates a tuple within a table heap: the page it lives
// on and its slot in that page's slot directory.
type RID struct {
	PageId  int64
	SlotNum int
}

func (r RID) String() string { return fmt.Sprintf("%d:%d", r.PageId, r.SlotNum) }
