package disk

import (
	"github.com/jobala/minidb/util"
)

// InsertRecord appends data to the page and returns the record's id.
// The copy keeps the caller's buffer independent of the page image.
func (p *Page) InsertRecord(data []byte) (RecordID, error) {
	rec := make([]byte, len(data))
	copy(rec, data)

	p.Slots = append(p.Slots, Slot{Used: true, Data: rec})
	if err := p.checkSize(); err != nil {
		p.Slots = p.Slots[:len(p.Slots)-1]
		return RecordID{}, err
	}

	return RecordID{PageNo: p.PageNo, SlotNo: len(p.Slots) - 1}, nil
}

func (p *Page) GetRecord(rid RecordID) ([]byte, error) {
	if !p.hasRecord(rid) {
		return nil, NewInvalidRecordError(rid)
	}

	return p.Slots[rid.SlotNo].Data, nil
}

func (p *Page) UpdateRecord(rid RecordID, data []byte) error {
	if !p.hasRecord(rid) {
		return NewInvalidRecordError(rid)
	}

	old := p.Slots[rid.SlotNo].Data
	rec := make([]byte, len(data))
	copy(rec, data)

	p.Slots[rid.SlotNo].Data = rec
	if err := p.checkSize(); err != nil {
		p.Slots[rid.SlotNo].Data = old
		return err
	}

	return nil
}

// DeleteRecord frees the record's slot. Slot numbers are not reused; a
// deleted slot reads back as an invalid record.
func (p *Page) DeleteRecord(rid RecordID) error {
	if !p.hasRecord(rid) {
		return NewInvalidRecordError(rid)
	}

	p.Slots[rid.SlotNo] = Slot{}
	return nil
}

// Records returns the live records in slot order.
func (p *Page) Records() [][]byte {
	res := make([][]byte, 0, len(p.Slots))
	for _, slot := range p.Slots {
		if slot.Used {
			res = append(res, slot.Data)
		}
	}

	return res
}

func (p *Page) PageNumber() PageID {
	return p.PageNo
}

func (p *Page) hasRecord(rid RecordID) bool {
	return rid.PageNo == p.PageNo &&
		rid.SlotNo >= 0 && rid.SlotNo < len(p.Slots) &&
		p.Slots[rid.SlotNo].Used
}

func (p *Page) checkSize() error {
	size, err := util.EncodedSize(p)
	if err != nil {
		return err
	}

	if size > PAGE_SIZE {
		return NewInsufficientSpaceError(p.PageNo, size)
	}

	return nil
}

type RecordID struct {
	PageNo PageID `msgpack:"page_no"`
	SlotNo int    `msgpack:"slot_no"`
}

type Slot struct {
	Used bool   `msgpack:"used"`
	Data []byte `msgpack:"data"`
}

// Page is the fixed-size unit of storage. In memory it is a slotted record
// container; on disk it is msgpack-encoded into a PAGE_SIZE image.
type Page struct {
	PageNo PageID `msgpack:"page_no"`
	Slots  []Slot `msgpack:"slots"`
}
