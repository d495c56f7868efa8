package ogg

import (
	"encoding/binary"
	"fmt"

	"github.com/simonhull/tagframe/internal/types"
)

// vorbisMagic follows the packet type byte of every Vorbis header.
const vorbisMagic = "vorbis"

// Vorbis header packet types.
const (
	vorbisIdentification = 0x01
	vorbisComment        = 0x03
)

// parseVorbisIdentification parses the identification header (packet 0)
// of an Ogg Vorbis stream.
//
// Layout after the 7 byte signature: version (4), channels (1), sample
// rate (4), maximum, nominal and minimum bitrate (3 x 4), block sizes and
// framing flag.
func parseVorbisIdentification(data []byte) (types.DetailInfo, error) {
	if len(data) < 30 {
		return types.DetailInfo{}, fmt.Errorf("identification header too short: %d bytes", len(data))
	}
	if data[0] != vorbisIdentification || string(data[1:7]) != vorbisMagic {
		return types.DetailInfo{}, fmt.Errorf("not a Vorbis identification header")
	}
	if version := binary.LittleEndian.Uint32(data[7:11]); version != 0 {
		return types.DetailInfo{}, fmt.Errorf("unsupported Vorbis version: %d", version)
	}

	bitrateNominal := int32(binary.LittleEndian.Uint32(data[20:24]))
	info := types.DetailInfo{
		Valid:      true,
		Format:     "Ogg Vorbis",
		Container:  containerOgg,
		Channels:   int(data[11]),
		SampleRate: int(binary.LittleEndian.Uint32(data[12:16])),
		VBR:        true,
	}
	if bitrateNominal > 0 {
		info.Bitrate = int(bitrateNominal / 1000)
	}
	return info, nil
}

// vorbisCommentPayload returns the comment list of a Vorbis comment header
// (packet 1), without its signature.
func vorbisCommentPayload(data []byte) ([]byte, error) {
	if len(data) < 7 || data[0] != vorbisComment || string(data[1:7]) != vorbisMagic {
		return nil, fmt.Errorf("not a Vorbis comment header")
	}
	return data[7:], nil
}
