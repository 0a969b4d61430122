package disk

import (
	"fmt"
	"os"

	"github.com/relnova/petrodb/errs"
)

// NewManager wraps an already-open db file. The file is expected to already
// be sized to hold at least one page; NewDiskManager grows it as needed.
func NewManager(file *os.File) *diskManager {
	return &diskManager{
		dbFile:       file,
		pageCapacity: DEFAULT_PAGE_CAPACITY,
		freeSlots:    []int{},
		pages:        map[int]int{},
	}
}

// NewDiskManager is an alias kept for callers that prefer the fuller name.
func NewDiskManager(file *os.File) *diskManager {
	return NewManager(file)
}

func (dm *diskManager) writePage(pageId int, data []byte) error {
	offset, pageFound := dm.pages[pageId]

	if !pageFound {
		newOffset, err := dm.allocatePage()
		if err != nil {
			return err
		}
		offset = newOffset
		dm.pages[pageId] = offset
	}

	if _, err := dm.dbFile.WriteAt(data, int64(offset)); err != nil {
		return errs.IO(fmt.Sprintf("writing page %d at offset %d", pageId, offset), err)
	}

	return nil
}

// readPage returns an errs.NotFound error for a page id that was never written or
// allocated; unlike the original port it never invents an offset for an
// unseen page, since that allocation belongs to writePage/allocatePage.
func (dm *diskManager) readPage(pageId int) ([]byte, error) {
	offset, pageFound := dm.pages[pageId]
	if !pageFound {
		return nil, errs.NotFound("page %d has never been written", pageId)
	}

	buf := make([]byte, PAGE_SIZE)
	if _, err := dm.dbFile.ReadAt(buf, int64(offset)); err != nil {
		return nil, errs.IO(fmt.Sprintf("reading page %d at offset %d", pageId, offset), err)
	}

	return buf, nil
}

func (dm *diskManager) deletePage(pageId int) {
	if offset, ok := dm.pages[pageId]; ok {
		dm.freeSlots = append(dm.freeSlots, offset)
		delete(dm.pages, pageId)
	}
}

func (dm *diskManager) allocatePage() (int, error) {
	if len(dm.freeSlots) > 0 {
		offset := dm.freeSlots[0]
		dm.freeSlots = dm.freeSlots[1:]

		return offset, nil
	}

	if len(dm.pages)+1 > dm.pageCapacity {
		dm.pageCapacity *= 2
		if err := os.Truncate(dm.dbFile.Name(), int64(dm.pageCapacity)*PAGE_SIZE); err != nil {
			return -1, errs.IO("resizing db file", err)
		}
	}

	return dm.getNextOffset(), nil
}

func (dm *diskManager) getNextOffset() int {
	return len(dm.pages) * PAGE_SIZE
}

type diskManager struct {
	dbFile       *os.File
	pages        map[int]int
	freeSlots    []int
	pageCapacity int
}
