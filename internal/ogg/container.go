package ogg

import (
	"fmt"

	"github.com/simonhull/tagframe/internal/binary"
)

// flagContinued marks a page whose first segment continues the last
// packet of the previous page.
const flagContinued = 0x01

// pageHeaderSize is the size of a page header without the segment table.
const pageHeaderSize = 27

// Page represents an Ogg page.
//
// An Ogg page is the fundamental unit of the Ogg container format.
// Each page contains a header, a segment table and payload data.
type Page struct {
	HeaderType      byte   // Bit flags: 0x01=continued, 0x02=BOS, 0x04=EOS
	GranulePosition int64  // Position in samples
	SerialNumber    uint32 // Logical bitstream identifier
	SequenceNumber  uint32 // Page sequence number
	Segments        []byte // Lacing values
	Data            []byte // Page payload (one or more packets)
}

// readPage reads an Ogg page at the given offset.
//
// Returns the page, next offset, and any error encountered.
func readPage(sr *binary.SafeReader, offset int64) (*Page, int64, error) {
	header := make([]byte, pageHeaderSize)
	if err := sr.ReadAt(header, offset, "Ogg page header"); err != nil {
		return nil, 0, err
	}
	if string(header[0:4]) != "OggS" {
		return nil, 0, fmt.Errorf("invalid Ogg page at offset %d", offset)
	}
	if header[4] != 0 {
		return nil, 0, fmt.Errorf("unsupported Ogg version: %d", header[4])
	}

	granule, err := binary.ReadLE[uint64](sr, offset+6, "granule position")
	if err != nil {
		return nil, 0, err
	}
	serial, err := binary.ReadLE[uint32](sr, offset+14, "serial number")
	if err != nil {
		return nil, 0, err
	}
	sequence, err := binary.ReadLE[uint32](sr, offset+18, "sequence number")
	if err != nil {
		return nil, 0, err
	}

	// Segment table: each byte is the size of a segment, 0-255
	segments := make([]byte, header[26])
	if len(segments) > 0 {
		if err := sr.ReadAt(segments, offset+pageHeaderSize, "segment table"); err != nil {
			return nil, 0, err
		}
	}

	dataSize := 0
	for _, seg := range segments {
		dataSize += int(seg)
	}

	dataOffset := offset + pageHeaderSize + int64(len(segments))
	data := make([]byte, dataSize)
	if dataSize > 0 {
		if err := sr.ReadAt(data, dataOffset, "page data"); err != nil {
			return nil, 0, err
		}
	}

	page := &Page{
		HeaderType:      header[5],
		GranulePosition: int64(granule),
		SerialNumber:    serial,
		SequenceNumber:  sequence,
		Segments:        segments,
		Data:            data,
	}
	return page, dataOffset + int64(dataSize), nil
}

// packetReader reassembles packets from the pages of one logical
// stream.
//
// A packet ends with a segment shorter than 255 bytes. Packets can span
// multiple pages, and a page can hold several packets.
type packetReader struct {
	serial  uint32
	started bool
	current []byte
	packets [][]byte
}

// add appends the packets completed by page. Pages of other logical
// streams are ignored.
func (pr *packetReader) add(page *Page) {
	if !pr.started {
		pr.serial = page.SerialNumber
		pr.started = true
	}
	if page.SerialNumber != pr.serial {
		return
	}
	if page.HeaderType&flagContinued == 0 {
		pr.current = nil
	}

	pos := 0
	for _, seg := range page.Segments {
		pr.current = append(pr.current, page.Data[pos:pos+int(seg)]...)
		pos += int(seg)
		if seg < 255 {
			pr.packets = append(pr.packets, pr.current)
			pr.current = nil
		}
	}
}

// findLastGranulePosition searches backwards from the end of file
// to find the last Ogg page's granule position.
//
// This is used to calculate the duration of the audio stream.
func findLastGranulePosition(sr *binary.SafeReader, fileSize int64) (int64, error) {
	// Search last 64KB for final page (typical max page size)
	searchStart := max(fileSize-65536, 0)

	buf := make([]byte, fileSize-searchStart)
	if err := sr.ReadAt(buf, searchStart, "search region"); err != nil {
		return 0, err
	}

	for i := len(buf) - pageHeaderSize; i >= 0; i-- {
		if string(buf[i:i+4]) != "OggS" {
			continue
		}
		granule, err := binary.ReadLE[uint64](sr, searchStart+int64(i)+6, "granule position")
		if err != nil {
			return 0, err
		}
		if int64(granule) >= 0 {
			return int64(granule), nil
		}
	}

	return 0, fmt.Errorf("could not find last Ogg page")
}
