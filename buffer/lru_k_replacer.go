package buffer

import (
	"sync"

	"github.com/relnova/petrodb/errs"
)

func NewLrukReplacer(capacity, k int) *lrukReplacer {
	head := &lrukNode{frameId: INVALID_FRAME_ID}
	tail := &lrukNode{frameId: INVALID_FRAME_ID}

	head.next = tail
	tail.prev = head

	return &lrukReplacer{
		k:             k,
		mu:            sync.Mutex{},
		nodeStore:     map[int]*lrukNode{},
		currSize:      0,
		currTimestamp: 0,
		head:          head,
		tail:          tail,
		replacerSize:  capacity,
	}
}

// remove drops frameId from the replacer's bookkeeping directly, without
// going through evict's victim-selection scan.
func (lru *lrukReplacer) remove(frameId int) error {
	lru.mu.Lock()
	defer lru.mu.Unlock()

	errs.Ensure(frameId >= 0 && frameId < lru.replacerSize, "remove called on out-of-range frame %d", frameId)

	node, ok := lru.nodeStore[frameId]
	if !ok {
		return nil
	}

	if !node.isEvictable {
		return errs.NotFound("frame %d is not evictable", frameId)
	}

	lru.removeNode(node)
	delete(lru.nodeStore, frameId)
	lru.currSize--

	return nil
}

// recordAccess registers an access to frameId, creating its node on first
// sight with isEvictable defaulted false. currTimestamp advances on every
// call regardless of whether the frame was already known.
func (lru *lrukReplacer) recordAccess(frameId int) {
	lru.mu.Lock()
	defer lru.mu.Unlock()

	errs.Ensure(frameId >= 0 && frameId < lru.replacerSize, "recordAccess called on out-of-range frame %d", frameId)

	node, ok := lru.nodeStore[frameId]
	if !ok {
		node = &lrukNode{frameId: frameId, k: lru.k}
		lru.addNode(node)
	}

	node.addTimestamp(lru.currTimestamp)
	lru.currTimestamp++

	lru.removeNode(node)
	lru.addNode(node)
}

func (lru *lrukReplacer) removeNode(node *lrukNode) {
	back := node.prev
	front := node.next

	back.next = front
	front.prev = back
}

func (lru *lrukReplacer) addNode(newNode *lrukNode) {
	newNode.k = lru.k
	tmp := lru.head.next
	lru.head.next = newNode
	newNode.prev = lru.head
	newNode.next = tmp
	tmp.prev = newNode

	lru.nodeStore[newNode.frameId] = newNode
}

// setEvictable flips a frame's evictable flag and keeps currSize in sync.
// Calling this on a frame recordAccess has never seen is a precondition
// violation, not a silent no-op.
func (lru *lrukReplacer) setEvictable(frameId int, setEvictable bool) {
	lru.mu.Lock()
	defer lru.mu.Unlock()

	errs.Ensure(frameId >= 0 && frameId < lru.replacerSize, "setEvictable called on out-of-range frame %d", frameId)

	node, ok := lru.nodeStore[frameId]
	errs.Ensure(ok, "setEvictable called on unknown frame %d", frameId)

	if node.isEvictable && !setEvictable {
		lru.currSize--
	} else if !node.isEvictable && setEvictable {
		lru.currSize++
	}

	node.isEvictable = setEvictable
}

// evict selects a victim frame under the LRU-K policy: any frame with
// fewer than k recorded accesses has infinite backward distance and beats
// every frame that does have k accesses; ties among infinite-distance
// frames go to the one with the oldest single access; ties among
// k-access frames go to the one with the largest backward k-distance.
// currTimestamp always advances, whether or not a victim is found.
func (lru *lrukReplacer) evict() (int, error) {
	lru.mu.Lock()
	defer lru.mu.Unlock()
	defer func() { lru.currTimestamp++ }()

	victimFrameId := INVALID_FRAME_ID

	for frameId, node := range lru.nodeStore {
		if !node.isEvictable || node.hasKAccess() {
			continue
		}

		if victimFrameId == INVALID_FRAME_ID || node.kthAccess() < lru.nodeStore[victimFrameId].kthAccess() {
			victimFrameId = frameId
		}
	}

	if victimFrameId == INVALID_FRAME_ID {
		victimDistance := -1
		for frameId, node := range lru.nodeStore {
			if !node.isEvictable {
				continue
			}

			distance := lru.currTimestamp - node.kthAccess()
			if victimFrameId == INVALID_FRAME_ID || distance > victimDistance {
				victimFrameId = frameId
				victimDistance = distance
			}
		}
	}

	if victimFrameId == INVALID_FRAME_ID {
		return INVALID_FRAME_ID, nil
	}

	node := lru.nodeStore[victimFrameId]
	lru.removeNode(node)
	delete(lru.nodeStore, victimFrameId)
	lru.currSize--

	return victimFrameId, nil
}

func (lru *lrukReplacer) size() int { return lru.currSize }

type lrukReplacer struct {
	mu            sync.Mutex
	nodeStore     map[int]*lrukNode
	replacerSize  int
	currSize      int
	currTimestamp int
	k             int
	head          *lrukNode
	tail          *lrukNode
}
