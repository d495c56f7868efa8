package mp4

import (
	"github.com/simonhull/tagframe/internal/binary"
)

// codecNames maps MP4 codec FourCC codes to human-readable names.
var codecNames = map[string]string{
	// AAC Family
	"mp4a": "AAC",
	"mhm1": "xHE-AAC",
	"mhm2": "xHE-AAC v2",

	// Dolby Family
	"ac-3": "AC-3",
	"ec-3": "E-AC-3",
	"ac-4": "AC-4",

	// Lossless
	"alac": "ALAC",
	"flac": "FLAC",

	// Other
	"opus": "Opus",
	"mp3 ": "MP3",
	".mp3": "MP3",
}

// losslessCodecs are the FourCC codes of lossless codecs.
var losslessCodecs = map[string]bool{"alac": true, "flac": true}

// aacProfiles maps AAC Audio Object Types to profile names.
var aacProfiles = map[uint8]string{
	1:  "AAC Main",
	2:  "AAC-LC",
	3:  "AAC-SSR",
	4:  "AAC-LTP",
	5:  "HE-AAC",
	6:  "AAC Scalable",
	29: "HE-AAC v2",
	42: "xHE-AAC",
}

// mapCodecName converts a FourCC codec identifier to a human-readable name.
func mapCodecName(fourCC string) string {
	if name, ok := codecNames[fourCC]; ok {
		return name
	}
	return fourCC
}

// codecDescription names the codec of a sample entry. AAC other than
// AAC-LC is named by its profile from the esds descriptor.
func codecDescription(sr *binary.SafeReader, sampleEntryOffset int64, codec string) string {
	desc := mapCodecName(codec)
	if codec == "mp4a" {
		if profile, err := parseAACProfile(sr, sampleEntryOffset); err == nil && profile != "" && profile != "AAC-LC" {
			desc = profile
		}
	}
	return desc
}

// parseAACProfile attempts to extract AAC profile from ESDS atom.
func parseAACProfile(sr *binary.SafeReader, sampleEntryOffset int64) (string, error) {
	// Search for "esds" within sample entry
	searchLen := min(int64(256), sr.Size()-sampleEntryOffset)
	if searchLen < 8 {
		return "", nil
	}
	searchBuf := make([]byte, searchLen)
	if err := sr.ReadAt(searchBuf, sampleEntryOffset, "esds search buffer"); err != nil {
		return "", err
	}

	esdsOffset := int64(-1)
	for i := 4; i < len(searchBuf)-4; i++ {
		if string(searchBuf[i:i+4]) == "esds" {
			esdsOffset = sampleEntryOffset + int64(i) - 4
			break
		}
	}

	if esdsOffset == -1 {
		return "", nil
	}

	esdsSize, err := binary.Read[uint32](sr, esdsOffset, "esds size")
	if err != nil || esdsSize < 12 || esdsSize > 1024 {
		return "", nil //nolint:nilerr // A broken esds only loses the profile
	}

	esdsDataSize := int(esdsSize) - 12
	if esdsDataSize <= 0 || esdsDataSize > 512 {
		return "", nil
	}

	esdsData := make([]byte, esdsDataSize)
	if err := sr.ReadAt(esdsData, esdsOffset+12, "esds data"); err != nil {
		return "", err
	}

	audioObjectType := parseESDescriptors(esdsData)
	if audioObjectType == 0 {
		return "", nil
	}

	if profile, ok := aacProfiles[audioObjectType]; ok {
		return profile, nil
	}

	return "", nil
}

// parseESDescriptors returns the audio object type of the decoder
// specific info inside the ES descriptor, 0 if not found.
func parseESDescriptors(data []byte) uint8 {
	pos := 0

	readSize := func() int {
		size := 0
		for range 4 {
			if pos >= len(data) {
				return -1
			}
			b := data[pos]
			pos++
			size = (size << 7) | int(b&0x7F)
			if (b & 0x80) == 0 {
				break
			}
		}
		return size
	}

	for pos < len(data) {
		switch data[pos] {
		case 0x03: // ES descriptor: ES_ID (2) and flags (1)
			pos++
			if readSize() < 0 {
				return 0
			}
			pos += 3
		case 0x04: // Decoder config: object type, stream type, buffer size, bitrates
			pos++
			if readSize() < 0 {
				return 0
			}
			pos += 13
		case 0x05: // Decoder specific info: audio object type in the top 5 bits
			pos++
			if readSize() < 0 || pos >= len(data) {
				return 0
			}
			aot := data[pos] >> 3
			if aot == 31 && pos+1 < len(data) {
				// escape: 6 more bits follow
				aot = 32 + ((data[pos]&0x07)<<3 | data[pos+1]>>5)
			}
			return aot
		default:
			pos++
		}
	}

	return 0
}
