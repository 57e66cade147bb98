package buffer

import (
	"github.com/jobala/minidb/storage/disk"
)

// set installs a freshly loaded page in the descriptor: pinned once,
// clean, recently referenced.
func (f *frameDesc) set(file File, pageNo disk.PageID) {
	f.file = file
	f.pageNo = pageNo
	f.pinCnt = 1
	f.dirty = false
	f.refbit = true
	f.valid = true
}

// clear resets the descriptor to the invalid-frame defaults.
func (f *frameDesc) clear() {
	f.file = nil
	f.pageNo = disk.INVALID_PAGE_ID
	f.pinCnt = 0
	f.dirty = false
	f.refbit = false
	f.valid = false
}

// frameDesc holds the bookkeeping state of one frame. frameNo equals the
// descriptor's index in the table and never changes.
type frameDesc struct {
	frameNo int
	file    File
	pageNo  disk.PageID
	pinCnt  int
	dirty   bool
	refbit  bool
	valid   bool
}
