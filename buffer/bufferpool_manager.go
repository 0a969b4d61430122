package buffer

import (
	"sync"
	"sync/atomic"

	"github.com/relnova/petrodb/errs"
	"github.com/relnova/petrodb/storage/disk"
)

type mode = int

const (
	write mode = iota
	read
)

func NewBufferpoolManager(size int, replacer *lrukReplacer, diskScheduler *disk.DiskScheduler) *BufferpoolManager {
	frames := make([]*frame, size)
	freeFrames := make([]int, size)

	for i := 0; i < size; i++ {
		f := &frame{
			id:     i,
			pageId: disk.INVALID_PAGE_ID,
			data:   make([]byte, disk.PAGE_SIZE),
		}

		frames[i] = f
		freeFrames[i] = i
	}

	bpm := &BufferpoolManager{
		mu:            sync.Mutex{},
		frames:        frames,
		pageTable:     make(map[int64]int),
		replacer:      replacer,
		diskScheduler: diskScheduler,
		freeFrames:    freeFrames,
	}
	bpm.cond = *sync.NewCond(&bpm.mu)
	return bpm
}

// ReadPage pins the frame holding pageId and read-latches it, fetching it
// from disk first if it isn't already resident.
func (b *BufferpoolManager) ReadPage(pageId int64) (*ReadPageGuard, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for {
		if id, ok := b.pageTable[pageId]; ok {
			f := b.frames[id]

			b.replacer.recordAccess(f.id)
			b.replacer.setEvictable(f.id, false)
			f.mu.RLock()
			f.pin()

			return NewReadPageGuard(f, b), nil
		}

		f, err := b.acquireFrame()
		if err != nil {
			return nil, err
		}
		if f == nil {
			b.cond.Wait()
			continue
		}

		delete(b.pageTable, f.pageId)
		b.pageTable[pageId] = f.id

		b.replacer.recordAccess(f.id)
		b.replacer.setEvictable(f.id, false)

		f.mu.RLock()
		f.reset()
		f.pin()
		f.pageId = pageId

		data, err := b.fetchFromDisk(pageId)
		if err != nil {
			f.mu.RUnlock()
			return nil, err
		}
		copy(f.data, data)

		return NewReadPageGuard(f, b), nil
	}
}

// WritePage pins the frame holding pageId and write-latches it, marking it
// dirty. Existing contents are loaded from disk first so a caller that
// mutates only part of the page doesn't lose the rest.
func (b *BufferpoolManager) WritePage(pageId int64) (*WritePageGuard, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for {
		if id, ok := b.pageTable[pageId]; ok {
			f := b.frames[id]

			b.replacer.recordAccess(f.id)
			b.replacer.setEvictable(f.id, false)
			f.mu.Lock()
			f.pin()
			f.dirty = true

			return NewWritePageGuard(f, b), nil
		}

		f, err := b.acquireFrame()
		if err != nil {
			return nil, err
		}
		if f == nil {
			b.cond.Wait()
			continue
		}

		delete(b.pageTable, f.pageId)
		b.pageTable[pageId] = f.id

		b.replacer.recordAccess(f.id)
		b.replacer.setEvictable(f.id, false)

		f.mu.Lock()
		f.reset()
		f.pin()
		f.dirty = true
		f.pageId = pageId

		if data, err := b.fetchFromDisk(pageId); err == nil {
			copy(f.data, data)
		}

		return NewWritePageGuard(f, b), nil
	}
}

// NewPage allocates a fresh page id and returns a pinned, write-latched
// guard over a zeroed frame for the caller to initialize.
func (b *BufferpoolManager) NewPage() (int64, *WritePageGuard, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for {
		f, err := b.acquireFrame()
		if err != nil {
			return disk.INVALID_PAGE_ID, nil, err
		}
		if f == nil {
			b.cond.Wait()
			continue
		}

		pageId := b.NewPageId()

		delete(b.pageTable, f.pageId)
		b.pageTable[pageId] = f.id

		b.replacer.recordAccess(f.id)
		b.replacer.setEvictable(f.id, false)

		f.mu.Lock()
		f.reset()
		f.pin()
		f.dirty = true
		f.pageId = pageId

		return pageId, NewWritePageGuard(f, b), nil
	}
}

// DeletePage flushes pageId if dirty, evicts it from the pool and frees its
// frame for reuse. It refuses to delete a page that is still pinned.
func (b *BufferpoolManager) DeletePage(pageId int64) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	id, ok := b.pageTable[pageId]
	if !ok {
		return nil
	}

	f := b.frames[id]
	if f.pins.Load() > 0 {
		return errs.Exhausted("page %d is still pinned", pageId)
	}

	b.flush(f)
	delete(b.pageTable, pageId)
	_ = b.replacer.remove(f.id)
	b.freeFrames = append(b.freeFrames, f.id)
	f.reset()
	f.pageId = disk.INVALID_PAGE_ID

	b.cond.Signal()
	return nil
}

// FlushPage forces pageId's contents to disk if dirty and resident,
// without evicting it from the pool.
func (b *BufferpoolManager) FlushPage(pageId int64) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	id, ok := b.pageTable[pageId]
	if !ok {
		return errs.NotFound("page %d is not in the buffer pool", pageId)
	}

	b.flush(b.frames[id])
	return nil
}

// acquireFrame returns a free frame, or one evicted via the replacer, or
// nil when the caller must wait for one to free up. Caller holds b.mu.
func (b *BufferpoolManager) acquireFrame() (*frame, error) {
	if len(b.freeFrames) > 0 {
		id := b.freeFrames[0]
		b.freeFrames = b.freeFrames[1:]
		return b.frames[id], nil
	}

	id, err := b.replacer.evict()
	if err != nil {
		return nil, err
	}
	if id == INVALID_FRAME_ID {
		return nil, nil
	}

	f := b.frames[id]
	b.flush(f)
	return f, nil
}

func (b *BufferpoolManager) fetchFromDisk(pageId int64) ([]byte, error) {
	diskReq := disk.NewRequest(pageId, nil, false)
	respCh := b.diskScheduler.Schedule(diskReq)
	resp := <-respCh
	if !resp.Success {
		if resp.Err != nil {
			return nil, resp.Err
		}
		return nil, errs.IO("reading page", nil)
	}
	return resp.Data, nil
}

func (b *BufferpoolManager) NewPageId() int64 {
	return b.nextPageId.Add(1)
}

func (b *BufferpoolManager) flush(f *frame) {
	if f.dirty {
		writeReq := disk.NewRequest(f.pageId, f.data, true)
		respCh := b.diskScheduler.Schedule(writeReq)
		<-respCh
		f.dirty = false
	}
}

type BufferpoolManager struct {
	mu            sync.Mutex
	frames        []*frame
	pageTable     map[int64]int
	nextPageId    atomic.Int64
	diskScheduler *disk.DiskScheduler
	replacer      *lrukReplacer
	freeFrames    []int
	cond          sync.Cond
}
