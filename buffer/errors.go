package buffer

import (
	"fmt"

	"github.com/jobala/minidb/storage/disk"
	"github.com/jobala/minidb/util"
)

func NewBufferExceededError() *BufferExceededError {
	return &BufferExceededError{
		MinidbError: &util.MinidbError{
			Message: "buffer pool exceeded, every frame is pinned",
		},
	}
}

func NewPageNotPinnedError(filename string, pageNo disk.PageID, frameNo int) *PageNotPinnedError {
	return &PageNotPinnedError{
		MinidbError: &util.MinidbError{
			Message: fmt.Sprintf("page %d of %s in frame %d is not pinned", pageNo, filename, frameNo),
		},
		Filename: filename,
		PageNo:   pageNo,
		FrameNo:  frameNo,
	}
}

func NewPagePinnedError(filename string, pageNo disk.PageID, frameNo int) *PagePinnedError {
	return &PagePinnedError{
		MinidbError: &util.MinidbError{
			Message: fmt.Sprintf("page %d of %s is still pinned in frame %d", pageNo, filename, frameNo),
		},
		Filename: filename,
		PageNo:   pageNo,
		FrameNo:  frameNo,
	}
}

func NewBadBufferError(frameNo int, dirty, valid, refbit bool) *BadBufferError {
	return &BadBufferError{
		MinidbError: &util.MinidbError{
			Message: fmt.Sprintf("frame %d has a bad descriptor: dirty=%v valid=%v refbit=%v", frameNo, dirty, valid, refbit),
		},
		FrameNo: frameNo,
		Dirty:   dirty,
		Valid:   valid,
		Refbit:  refbit,
	}
}

// BufferExceededError reports that no frame can be allocated because every
// frame in the pool is pinned.
type BufferExceededError struct {
	*util.MinidbError
}

// PageNotPinnedError reports an unpin of a resident page whose pin count is
// already zero.
type PageNotPinnedError struct {
	*util.MinidbError
	Filename string
	PageNo   disk.PageID
	FrameNo  int
}

// PagePinnedError reports an operation that requires a page to be unpinned
// while some client still holds it.
type PagePinnedError struct {
	*util.MinidbError
	Filename string
	PageNo   disk.PageID
	FrameNo  int
}

// BadBufferError reports a descriptor that violates the manager's
// consistency rules, primarily a defensive check in FlushFile.
type BadBufferError struct {
	*util.MinidbError
	FrameNo int
	Dirty   bool
	Valid   bool
	Refbit  bool
}
