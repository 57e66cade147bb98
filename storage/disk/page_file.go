package disk

import (
	"fmt"
	"os"

	"github.com/jobala/minidb/util"
)

// Create makes a new page file at filename, truncating any previous one.
func Create(filename string) (*PageFile, error) {
	file, err := os.OpenFile(filename, os.O_CREATE|os.O_RDWR|os.O_TRUNC, 0644)
	if err != nil {
		return nil, fmt.Errorf("error creating db file %s: %v", filename, err)
	}

	pf := &PageFile{
		file: file,
		header: fileHeader{
			NextPageNo: 1,
			Allocated:  map[PageID]bool{},
		},
		capacity: DEFAULT_PAGE_CAPACITY * PAGE_SIZE,
	}

	if err := os.Truncate(filename, pf.capacity); err != nil {
		return nil, fmt.Errorf("error sizing db file %s: %v", filename, err)
	}

	if err := pf.writeHeader(); err != nil {
		return nil, err
	}

	return pf, nil
}

// Open opens an existing page file and recovers its header.
func Open(filename string) (*PageFile, error) {
	file, err := os.OpenFile(filename, os.O_RDWR, 0644)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, NewFileNotFoundError(filename, err)
		}
		return nil, fmt.Errorf("error opening db file %s: %v", filename, err)
	}

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("error reading db file %s: %v", filename, err)
	}

	pf := &PageFile{file: file, capacity: info.Size()}
	if err := pf.readHeader(); err != nil {
		return nil, err
	}

	return pf, nil
}

// Remove deletes the file from the filesystem.
func Remove(filename string) error {
	if err := os.Remove(filename); err != nil {
		if os.IsNotExist(err) {
			return NewFileNotFoundError(filename, err)
		}
		return err
	}

	return nil
}

// AllocatePage assigns the next free page number, persists an empty page
// image for it and returns the page. Deleted page numbers are reused first.
func (f *PageFile) AllocatePage() (Page, error) {
	var pageNo PageID
	if len(f.header.Free) > 0 {
		pageNo = f.header.Free[0]
		f.header.Free = f.header.Free[1:]
	} else {
		pageNo = f.header.NextPageNo
		if err := f.grow(pageNo); err != nil {
			return Page{}, err
		}
		f.header.NextPageNo++
	}

	f.header.Allocated[pageNo] = true
	page := Page{PageNo: pageNo}

	if err := f.WritePage(&page); err != nil {
		return Page{}, err
	}
	if err := f.writeHeader(); err != nil {
		return Page{}, err
	}

	return page, nil
}

func (f *PageFile) ReadPage(pageNo PageID) (Page, error) {
	if !f.header.Allocated[pageNo] {
		return Page{}, NewInvalidPageError(f.Filename(), pageNo)
	}

	buf := make([]byte, PAGE_SIZE)
	if _, err := f.file.ReadAt(buf, pageOffset(pageNo)); err != nil {
		return Page{}, fmt.Errorf("error reading page %d of %s: %v", pageNo, f.Filename(), err)
	}

	return util.ToStruct[Page](buf)
}

func (f *PageFile) WritePage(page *Page) error {
	if !f.header.Allocated[page.PageNo] {
		return NewInvalidPageError(f.Filename(), page.PageNo)
	}

	buf, err := util.ToByteSlice(page, PAGE_SIZE)
	if err != nil {
		return err
	}

	if _, err := f.file.WriteAt(buf, pageOffset(page.PageNo)); err != nil {
		return fmt.Errorf("error writing page %d of %s: %v", page.PageNo, f.Filename(), err)
	}

	return nil
}

// DeletePage removes the page from the file and recycles its number.
func (f *PageFile) DeletePage(pageNo PageID) error {
	if !f.header.Allocated[pageNo] {
		return NewInvalidPageError(f.Filename(), pageNo)
	}

	delete(f.header.Allocated, pageNo)
	f.header.Free = append(f.header.Free, pageNo)

	return f.writeHeader()
}

func (f *PageFile) Filename() string {
	return f.file.Name()
}

func (f *PageFile) Close() error {
	return f.file.Close()
}

func (f *PageFile) grow(pageNo PageID) error {
	needed := pageOffset(pageNo) + PAGE_SIZE
	if needed <= f.capacity {
		return nil
	}

	for f.capacity < needed {
		f.capacity *= 2
	}

	if err := os.Truncate(f.Filename(), f.capacity); err != nil {
		return fmt.Errorf("error resizing db file %s: %v", f.Filename(), err)
	}

	return nil
}

func (f *PageFile) writeHeader() error {
	buf, err := util.ToByteSlice(f.header, PAGE_SIZE)
	if err != nil {
		return err
	}

	if _, err := f.file.WriteAt(buf, 0); err != nil {
		return fmt.Errorf("error writing header of %s: %v", f.Filename(), err)
	}

	return nil
}

func (f *PageFile) readHeader() error {
	buf := make([]byte, PAGE_SIZE)
	if _, err := f.file.ReadAt(buf, 0); err != nil {
		return fmt.Errorf("error reading header of %s: %v", f.Filename(), err)
	}

	header, err := util.ToStruct[fileHeader](buf)
	if err != nil {
		return err
	}

	if header.Allocated == nil {
		header.Allocated = map[PageID]bool{}
	}
	f.header = header

	return nil
}

func pageOffset(pageNo PageID) int64 {
	return int64(pageNo) * PAGE_SIZE
}

type fileHeader struct {
	NextPageNo PageID          `msgpack:"next_page_no"`
	Allocated  map[PageID]bool `msgpack:"allocated"`
	Free       []PageID        `msgpack:"free"`
}

// PageFile is a random-access container of fixed-size pages backed by a
// single os file. Byte offset pageNo*PAGE_SIZE holds the page's image;
// offset 0 holds the header with the allocation state.
type PageFile struct {
	file     *os.File
	header   fileHeader
	capacity int64
}
