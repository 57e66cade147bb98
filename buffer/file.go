package buffer

import (
	"github.com/jobala/minidb/storage/disk"
)

// File is the page container the manager caches on behalf of. The manager
// never interprets file content; identity of the File reference itself keys
// the frame index, so two open handles to the same path are distinct files.
// Files must outlive every frame that references them.
type File interface {
	AllocatePage() (disk.Page, error)
	ReadPage(pageNo disk.PageID) (disk.Page, error)
	WritePage(page *disk.Page) error
	DeletePage(pageNo disk.PageID) error
	Filename() string
}

var _ File = (*disk.PageFile)(nil)
