package asf

import (
	"encoding/binary"
	"errors"

	tfbinary "github.com/simonhull/tagframe/internal/binary"
	"github.com/simonhull/tagframe/internal/types"
)

// PictureName is the attribute holding embedded pictures.
const PictureName = "WM/Picture"

// parsePicture decodes a WM/Picture value: picture type (1), data
// length (4, little-endian), MIME type and description as terminated
// UTF-16LE strings, picture data.
func parsePicture(data []byte) (types.Picture, error) {
	br := tfbinary.NewBodyReader(data, PictureName)
	typ := br.Byte("picture type")
	size := br.Uint32LE("data length")
	if err := br.Err(); err != nil {
		return types.Picture{}, err
	}
	rest := br.Rest()

	mime, rest, ok := cutWideString(rest)
	if !ok {
		return types.Picture{}, errors.New("WM/Picture: unterminated MIME type")
	}
	desc, rest, ok := cutWideString(rest)
	if !ok {
		return types.Picture{}, errors.New("WM/Picture: unterminated description")
	}
	if uint64(size) != uint64(len(rest)) {
		return types.Picture{}, errors.New("WM/Picture: data length mismatch")
	}
	return types.Picture{
		Type:        types.PictureType(typ),
		MIMEType:    mime,
		Description: desc,
		Data:        rest,
	}, nil
}

// renderPicture encodes p as WM/Picture value.
func renderPicture(p types.Picture) []byte {
	mime, _ := utf16Data.Bytes(p.MIMEType)
	desc, _ := utf16Data.Bytes(p.Description)
	out := make([]byte, 0, 5+len(mime)+len(desc)+len(p.Data))
	out = append(out, byte(p.Type))
	out = binary.LittleEndian.AppendUint32(out, uint32(len(p.Data)))
	out = append(out, mime...)
	out = append(out, desc...)
	return append(out, p.Data...)
}

// cutWideString splits a UTF-16LE string terminated by two zero bytes
// at an even offset from data.
func cutWideString(data []byte) (s string, rest []byte, ok bool) {
	for i := 0; i+1 < len(data); i += 2 {
		if data[i] == 0 && data[i+1] == 0 {
			s, _ = utf16Data.String(data[:i])
			return s, data[i+2:], true
		}
	}
	return "", data, false
}
