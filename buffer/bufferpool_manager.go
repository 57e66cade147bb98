package buffer

import (
	"fmt"
	"strings"

	"github.com/jobala/minidb/storage/disk"
)

func NewBufferpoolManager(numBufs int) *BufferpoolManager {
	descTable := make([]frameDesc, numBufs)
	for i := range descTable {
		descTable[i].frameNo = i
	}

	return &BufferpoolManager{
		numBufs:   numBufs,
		descTable: descTable,
		pool:      make([]disk.Page, numBufs),
		pageTable: newFrameIndex(numBufs),
		clockHand: numBufs - 1,
	}
}

// ReadPage pins the page and returns a reference into the pool. The
// reference stays valid until the last pin is released and a later
// allocation picks the frame.
func (b *BufferpoolManager) ReadPage(file File, pageNo disk.PageID) (*disk.Page, error) {
	if frameNo, ok := b.pageTable.lookup(file, pageNo); ok {
		desc := &b.descTable[frameNo]
		desc.pinCnt++
		desc.refbit = true

		return &b.pool[frameNo], nil
	}

	frameNo, err := b.allocBuf()
	if err != nil {
		return nil, err
	}

	// The frame is installed only after a successful read; on failure it
	// stays cleared and the index is untouched.
	page, err := file.ReadPage(pageNo)
	if err != nil {
		return nil, err
	}

	b.pool[frameNo] = page
	b.pageTable.insert(file, pageNo, frameNo)
	b.descTable[frameNo].set(file, pageNo)

	return &b.pool[frameNo], nil
}

// AllocPage allocates a new page in file, pins it in a frame and returns
// its number together with a reference into the pool. The reference stays
// valid until the last pin is released and a later allocation picks the
// frame.
func (b *BufferpoolManager) AllocPage(file File) (disk.PageID, *disk.Page, error) {
	newPage, err := file.AllocatePage()
	if err != nil {
		return disk.INVALID_PAGE_ID, nil, err
	}
	pageNo := newPage.PageNumber()

	// If no frame can be found the page stays allocated in the file with
	// no frame attached; the file-level allocation is not rolled back.
	frameNo, err := b.allocBuf()
	if err != nil {
		return disk.INVALID_PAGE_ID, nil, err
	}

	page, err := file.ReadPage(pageNo)
	if err != nil {
		return disk.INVALID_PAGE_ID, nil, err
	}

	b.pool[frameNo] = page
	b.pageTable.insert(file, pageNo, frameNo)
	b.descTable[frameNo].set(file, pageNo)

	return pageNo, &b.pool[frameNo], nil
}

// UnpinPage releases one pin on the page. Unpinning a page that is not
// resident does nothing; cleanup paths may unpin blindly.
func (b *BufferpoolManager) UnpinPage(file File, pageNo disk.PageID, dirty bool) error {
	frameNo, ok := b.pageTable.lookup(file, pageNo)
	if !ok {
		return nil
	}

	desc := &b.descTable[frameNo]
	if desc.pinCnt == 0 {
		return NewPageNotPinnedError(file.Filename(), pageNo, frameNo)
	}

	desc.pinCnt--
	if dirty {
		desc.dirty = true
	}

	return nil
}

// FlushFile writes every dirty resident page of file back to disk and
// evicts all of the file's frames. No frame of the file may be pinned;
// nothing is written unless the whole file passes that check.
func (b *BufferpoolManager) FlushFile(file File) error {
	for i := range b.descTable {
		desc := &b.descTable[i]
		if desc.file != file {
			continue
		}

		if !desc.valid {
			return NewBadBufferError(desc.frameNo, desc.dirty, desc.valid, desc.refbit)
		}
		if desc.pinCnt > 0 {
			return NewPagePinnedError(file.Filename(), desc.pageNo, desc.frameNo)
		}
	}

	for i := range b.descTable {
		desc := &b.descTable[i]
		if desc.file != file {
			continue
		}

		if desc.dirty {
			if err := file.WritePage(&b.pool[desc.frameNo]); err != nil {
				return err
			}
			desc.dirty = false
		}

		b.pageTable.remove(file, desc.pageNo)
		desc.clear()
	}

	return nil
}

// DisposePage deletes the page from its file, evicting it first if
// resident. The in-memory copy is discarded without write-back.
func (b *BufferpoolManager) DisposePage(file File, pageNo disk.PageID) error {
	if frameNo, ok := b.pageTable.lookup(file, pageNo); ok {
		desc := &b.descTable[frameNo]
		if desc.pinCnt > 0 {
			return NewPagePinnedError(file.Filename(), pageNo, frameNo)
		}

		desc.clear()
		b.pageTable.remove(file, pageNo)
	}

	return file.DeletePage(pageNo)
}

// Close flushes every file that still has a dirty resident page. Callers
// unpin everything first; a remaining pin surfaces as PagePinnedError.
func (b *BufferpoolManager) Close() error {
	for i := range b.descTable {
		desc := &b.descTable[i]
		if desc.valid && desc.dirty {
			if err := b.FlushFile(desc.file); err != nil {
				return err
			}
		}
	}

	return nil
}

// allocBuf returns the number of a frame that is free to use, evicting a
// resident page if it has to. It is the only routine that evicts.
func (b *BufferpoolManager) allocBuf() (int, error) {
	// Two full sweeps with no selection mean every frame is pinned: one
	// sweep clears all refbits, a second observes only pins.
	start := b.clockHand
	pass := 0

	for pass < 2 {
		b.advanceClock()
		if b.clockHand == start {
			pass++
		}

		desc := &b.descTable[b.clockHand]
		if !desc.valid {
			return desc.frameNo, nil
		}

		// Recently referenced pages get a second chance.
		if desc.refbit {
			desc.refbit = false
			continue
		}

		if desc.pinCnt > 0 {
			continue
		}

		if desc.dirty {
			if err := desc.file.WritePage(&b.pool[desc.frameNo]); err != nil {
				return 0, err
			}
		}

		b.pageTable.remove(desc.file, desc.pageNo)
		desc.clear()

		return desc.frameNo, nil
	}

	return 0, NewBufferExceededError()
}

func (b *BufferpoolManager) advanceClock() {
	b.clockHand = (b.clockHand + 1) % b.numBufs
}

// String dumps the descriptor table, one line per frame.
func (b *BufferpoolManager) String() string {
	var sb strings.Builder
	validFrames := 0

	for i := range b.descTable {
		desc := &b.descTable[i]
		if !desc.valid {
			fmt.Fprintf(&sb, "frame %d: invalid\n", desc.frameNo)
			continue
		}

		validFrames++
		fmt.Fprintf(&sb, "frame %d: page %d of %s pinCnt=%d dirty=%v refbit=%v\n",
			desc.frameNo, desc.pageNo, desc.file.Filename(), desc.pinCnt, desc.dirty, desc.refbit)
	}
	fmt.Fprintf(&sb, "total valid frames: %d\n", validFrames)

	return sb.String()
}

// BufferpoolManager caches pages of client-owned files in a fixed pool of
// frames, choosing eviction victims with a clock sweep.
type BufferpoolManager struct {
	numBufs   int
	descTable []frameDesc
	pool      []disk.Page
	pageTable *frameIndex
	clockHand int
}
