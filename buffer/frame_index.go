package buffer

import (
	"fmt"

	"github.com/jobala/minidb/storage/disk"
)

func newFrameIndex(numBufs int) *frameIndex {
	return &frameIndex{
		entries: make(map[pageKey]int, numBufs),
	}
}

func (idx *frameIndex) lookup(file File, pageNo disk.PageID) (int, bool) {
	frameNo, ok := idx.entries[pageKey{file, pageNo}]
	return frameNo, ok
}

// insert adds a new entry. Inserting a key that is already present is a
// programming error in the manager, not a runtime condition.
func (idx *frameIndex) insert(file File, pageNo disk.PageID, frameNo int) {
	key := pageKey{file, pageNo}
	if existing, ok := idx.entries[key]; ok {
		panic(fmt.Sprintf("page %d of %s already indexed at frame %d", pageNo, file.Filename(), existing))
	}

	idx.entries[key] = frameNo
}

func (idx *frameIndex) remove(file File, pageNo disk.PageID) bool {
	key := pageKey{file, pageNo}
	if _, ok := idx.entries[key]; !ok {
		return false
	}

	delete(idx.entries, key)
	return true
}

func (idx *frameIndex) size() int {
	return len(idx.entries)
}

// pageKey identifies a resident page. The File field compares by reference
// identity, which is exactly the equality the manager wants.
type pageKey struct {
	file   File
	pageNo disk.PageID
}

// frameIndex maps resident pages to their frame numbers. It never holds
// more than numBufs entries, one per valid frame.
type frameIndex struct {
	entries map[pageKey]int
}
