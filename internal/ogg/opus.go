package ogg

import (
	"encoding/binary"
	"fmt"

	"github.com/simonhull/tagframe/internal/types"
)

// Opus header signatures.
const (
	opusHeadMagic = "OpusHead"
	opusTagsMagic = "OpusTags"
)

// opusSampleRate is the output rate of every Opus stream; granule
// positions count samples at this rate.
const opusSampleRate = 48000

// parseOpusHead parses the OpusHead identification header.
//
// The input sample rate of the header is informational only, Opus always
// decodes at 48 kHz. The pre-skip is returned because it has to be
// subtracted from the last granule position to get the duration.
func parseOpusHead(data []byte) (types.DetailInfo, uint16, error) {
	if len(data) < 19 {
		return types.DetailInfo{}, 0, fmt.Errorf("OpusHead packet too short: %d bytes (need at least 19)", len(data))
	}
	if string(data[0:8]) != opusHeadMagic {
		return types.DetailInfo{}, 0, fmt.Errorf("invalid OpusHead magic: %q", string(data[0:8]))
	}
	// Versions 0-15 are compatible with version 1
	if version := data[8]; version == 0 || version > 15 {
		return types.DetailInfo{}, 0, fmt.Errorf("unsupported Opus version: %d", version)
	}

	info := types.DetailInfo{
		Valid:      true,
		Format:     "Opus",
		Container:  containerOgg,
		Channels:   int(data[9]),
		SampleRate: opusSampleRate,
		VBR:        true,
	}
	return info, binary.LittleEndian.Uint16(data[10:12]), nil
}

// opusTagsPayload returns the comment list of an OpusTags header, which
// has the Vorbis comment layout behind its signature.
func opusTagsPayload(data []byte) ([]byte, error) {
	if len(data) < 8 || string(data[0:8]) != opusTagsMagic {
		return nil, fmt.Errorf("not an OpusTags header")
	}
	return data[8:], nil
}
