package asf

import (
	"fmt"
	"time"

	tfbinary "github.com/simonhull/tagframe/internal/binary"
	"github.com/simonhull/tagframe/internal/types"
)

// objectHeaderSize is the size of GUID and 64-bit size before each
// object's payload.
const objectHeaderSize = 24

// header collects what is read from the header object.
type header struct {
	content  [indexAttributes]string
	attrs    []Attribute
	info     types.DetailInfo
	warnings []types.Warning
}

// object is a header object with its payload.
type object struct {
	id     guid
	offset int64
	data   []byte
}

// parseHeader reads the top-level header object. Objects which cannot
// be decoded are reported as warnings, or as error in strict mode.
func parseHeader(sr *tfbinary.SafeReader, strict bool) (*header, error) {
	var id guid
	if err := sr.ReadAt(id[:], 0, "header GUID"); err != nil {
		return nil, err
	}
	if id != guidHeader {
		return nil, &types.CorruptedFileError{Path: sr.Path(), Reason: "missing ASF header object"}
	}
	size, err := tfbinary.ReadLE[uint64](sr, 16, "header size")
	if err != nil {
		return nil, err
	}
	count, err := tfbinary.ReadLE[uint32](sr, 24, "header object count")
	if err != nil {
		return nil, err
	}
	if size < 30 || size > uint64(sr.Size()) {
		return nil, &types.CorruptedFileError{Path: sr.Path(), Reason: fmt.Sprintf("invalid header size %d", size)}
	}

	// GUID, size, object count and two reserved bytes precede the objects
	objects, err := readObjects(sr, 30, int64(size), int(count))
	if err != nil {
		return nil, &types.CorruptedFileError{Path: sr.Path(), Reason: err.Error()}
	}

	h := &header{info: types.DetailInfo{Format: containerASF, Container: containerASF}}
	for _, obj := range objects {
		if err := h.parseObject(obj); err != nil {
			if strict {
				return nil, &types.CorruptedFileError{Path: sr.Path(), Reason: err.Error(), Offset: obj.offset}
			}
			h.warnings = append(h.warnings, types.Warning{Stage: "asf", Message: err.Error(), Offset: obj.offset})
		}
	}
	return h, nil
}

// readObjects reads up to count objects between start and end.
func readObjects(sr *tfbinary.SafeReader, start, end int64, count int) ([]object, error) {
	var objects []object
	for off := start; off+objectHeaderSize <= end && len(objects) < count; {
		var obj object
		if err := sr.ReadAt(obj.id[:], off, "object GUID"); err != nil {
			return objects, err
		}
		size, err := tfbinary.ReadLE[uint64](sr, off+16, "object size")
		if err != nil {
			return objects, err
		}
		if size < objectHeaderSize || size > uint64(end-off) {
			return objects, fmt.Errorf("object %s at offset %d has invalid size %d", obj.id, off, size)
		}
		obj.offset = off
		obj.data = make([]byte, size-objectHeaderSize)
		if len(obj.data) > 0 {
			if err := sr.ReadAt(obj.data, off+objectHeaderSize, "object payload"); err != nil {
				return objects, err
			}
		}
		objects = append(objects, obj)
		off += int64(size)
	}
	return objects, nil
}

// splitObjects splits payload bytes into objects, as found inside the
// header extension object.
func splitObjects(data []byte, base int64) ([]object, error) {
	var objects []object
	for off := 0; off+objectHeaderSize <= len(data); {
		var obj object
		copy(obj.id[:], data[off:])
		br := tfbinary.NewBodyReader(data[off+16:off+objectHeaderSize], "extension object")
		size := br.Uint64LE("size")
		if size < objectHeaderSize || size > uint64(len(data)-off) {
			return objects, fmt.Errorf("extension object %s has invalid size %d", obj.id, size)
		}
		obj.offset = base + int64(off)
		obj.data = data[off+objectHeaderSize : off+int(size)]
		objects = append(objects, obj)
		off += int(size)
	}
	return objects, nil
}

func (h *header) parseObject(obj object) error {
	switch obj.id {
	case guidContentDescription:
		return h.parseContentDescription(obj.data)
	case guidExtendedContentDescription:
		return h.parseExtendedContentDescription(obj.data)
	case guidMetadata, guidMetadataLibrary:
		return h.parseMetadata(obj.data)
	case guidFileProperties:
		return h.parseFileProperties(obj.data)
	case guidStreamProperties:
		return h.parseStreamProperties(obj.data)
	case guidHeaderExtension:
		// reserved GUID (16), reserved (2), data size (4)
		br := tfbinary.NewBodyReader(obj.data, "header extension")
		br.Bytes(18, "reserved")
		n := br.Uint32LE("data size")
		data := br.Bytes(int(n), "data")
		if err := br.Err(); err != nil {
			return err
		}
		children, err := splitObjects(data, obj.offset+objectHeaderSize+22)
		for _, child := range children {
			if perr := h.parseObject(child); perr != nil && err == nil {
				err = perr
			}
		}
		return err
	}
	return nil
}

// parseContentDescription reads title, author, copyright, description
// and rating. The lengths of all five strings come first.
func (h *header) parseContentDescription(data []byte) error {
	br := tfbinary.NewBodyReader(data, "content description")
	var lengths [5]int
	for i := range lengths {
		lengths[i] = int(br.Uint16LE("length"))
	}
	// stored in the order title, author, copyright, description, rating
	order := [5]int{indexTitle, indexArtist, indexCopyright, indexComment, indexRating}
	for i, n := range lengths {
		s, _ := utf16Data.String(br.Bytes(n, "text"))
		h.content[order[i]] = s
	}
	return br.Err()
}

// parseExtendedContentDescription reads the descriptors: name length,
// name, value type, value length, value.
func (h *header) parseExtendedContentDescription(data []byte) error {
	br := tfbinary.NewBodyReader(data, "extended content description")
	count := int(br.Uint16LE("descriptor count"))
	for i := 0; i < count && br.Err() == nil; i++ {
		nameLen := int(br.Uint16LE("name length"))
		name, _ := utf16Data.String(br.Bytes(nameLen, "name"))
		vt := ValueType(br.Uint16LE("value type"))
		valueLen := int(br.Uint16LE("value length"))
		value := br.Bytes(valueLen, "value")
		if br.Err() == nil {
			h.attrs = append(h.attrs, Attribute{Name: name, Type: vt, Data: value})
		}
	}
	return br.Err()
}

// parseMetadata reads the description records of the metadata and
// metadata library objects. Language and stream number are dropped.
func (h *header) parseMetadata(data []byte) error {
	br := tfbinary.NewBodyReader(data, "metadata")
	count := int(br.Uint16LE("record count"))
	for i := 0; i < count && br.Err() == nil; i++ {
		br.Uint16LE("language index")
		br.Uint16LE("stream number")
		nameLen := int(br.Uint16LE("name length"))
		vt := ValueType(br.Uint16LE("data type"))
		dataLen := int(br.Uint32LE("data length"))
		name, _ := utf16Data.String(br.Bytes(nameLen, "name"))
		value := br.Bytes(dataLen, "data")
		if br.Err() == nil {
			h.attrs = append(h.attrs, Attribute{Name: name, Type: vt, Data: value})
		}
	}
	return br.Err()
}

// parseFileProperties reads the play duration, given in 100 ns units
// including the preroll in milliseconds.
func (h *header) parseFileProperties(data []byte) error {
	br := tfbinary.NewBodyReader(data, "file properties")
	br.Bytes(16, "file ID")
	br.Uint64LE("file size")
	br.Uint64LE("creation date")
	br.Uint64LE("data packets")
	play := br.Uint64LE("play duration")
	br.Uint64LE("send duration")
	preroll := br.Uint64LE("preroll")
	if err := br.Err(); err != nil {
		return err
	}
	d := time.Duration(play)*100 - time.Duration(preroll)*time.Millisecond
	if d > 0 {
		h.info.Duration = d
		h.info.Valid = true
	}
	return nil
}

// codecNames maps the WAVEFORMATEX format tags of audio streams.
var codecNames = map[uint16]string{
	0x0001: "PCM",
	0x000A: "WMA Voice",
	0x0055: "MP3",
	0x0160: "WMA 1",
	0x0161: "WMA 2",
	0x0162: "WMA Pro",
	0x0163: "WMA Lossless",
}

// parseStreamProperties reads the WAVEFORMATEX of the first audio
// stream.
func (h *header) parseStreamProperties(data []byte) error {
	br := tfbinary.NewBodyReader(data, "stream properties")
	var streamType guid
	copy(streamType[:], br.Bytes(16, "stream type"))
	if br.Err() != nil || streamType != guidAudioMedia || h.info.Channels > 0 {
		return br.Err()
	}
	br.Bytes(16, "error correction type")
	br.Uint64LE("time offset")
	br.Uint32LE("type-specific data length")
	br.Uint32LE("error correction data length")
	br.Uint16LE("flags")
	br.Uint32LE("reserved")

	formatTag := br.Uint16LE("format tag")
	channels := br.Uint16LE("channels")
	sampleRate := br.Uint32LE("samples per second")
	bytesPerSec := br.Uint32LE("average bytes per second")
	br.Uint16LE("block align")
	bitsPerSample := br.Uint16LE("bits per sample")
	if err := br.Err(); err != nil {
		return err
	}

	if name, ok := codecNames[formatTag]; ok {
		h.info.Format = containerASF + " " + name
	}
	h.info.Channels = int(channels)
	h.info.SampleRate = int(sampleRate)
	h.info.Bitrate = int(bytesPerSec * 8 / 1000)
	h.info.Lossless = formatTag == 0x0163 || formatTag == 0x0001
	if h.info.Lossless {
		h.info.BitDepth = int(bitsPerSample)
	}
	h.info.Valid = true
	return nil
}
