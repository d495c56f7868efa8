package tagframe

import (
	"io"

	"github.com/simonhull/tagframe/internal/types"
)

// Format is an alias to types.Format.
type Format = types.Format

// Re-export all format constants.
const (
	FormatUnknown = types.FormatUnknown
	FormatMP3     = types.FormatMP3
	FormatFLAC    = types.FormatFLAC
	FormatM4A     = types.FormatM4A
	FormatOgg     = types.FormatOgg
	FormatWMA     = types.FormatWMA
)

// DetectFormat identifies the container of a file from its content. path
// is only used in errors.
func DetectFormat(r io.ReaderAt, size int64, path string) (Format, error) {
	return types.DetectFormat(r, size, path)
}
