package disk

import (
	"fmt"

	"github.com/jobala/minidb/util"
)

func NewFileNotFoundError(filename string, err error) *FileNotFoundError {
	return &FileNotFoundError{
		MinidbError: &util.MinidbError{
			Message: fmt.Sprintf("file %s does not exist", filename),
			Err:     err,
		},
		Filename: filename,
	}
}

func NewInvalidPageError(filename string, pageNo PageID) *InvalidPageError {
	return &InvalidPageError{
		MinidbError: &util.MinidbError{
			Message: fmt.Sprintf("page %d is not allocated in file %s", pageNo, filename),
		},
		Filename: filename,
		PageNo:   pageNo,
	}
}

func NewInvalidRecordError(rid RecordID) *InvalidRecordError {
	return &InvalidRecordError{
		MinidbError: &util.MinidbError{
			Message: fmt.Sprintf("no record at slot %d of page %d", rid.SlotNo, rid.PageNo),
		},
		Rid: rid,
	}
}

func NewInsufficientSpaceError(pageNo PageID, size int) *InsufficientSpaceError {
	return &InsufficientSpaceError{
		MinidbError: &util.MinidbError{
			Message: fmt.Sprintf("page %d cannot hold %d bytes, page size is %d", pageNo, size, PAGE_SIZE),
		},
		PageNo: pageNo,
		Size:   size,
	}
}

type FileNotFoundError struct {
	*util.MinidbError
	Filename string
}

type InvalidPageError struct {
	*util.MinidbError
	Filename string
	PageNo   PageID
}

type InvalidRecordError struct {
	*util.MinidbError
	Rid RecordID
}

type InsufficientSpaceError struct {
	*util.MinidbError
	PageNo PageID
	Size   int
}
