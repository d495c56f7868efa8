package tagframe

import (
	"github.com/simonhull/tagframe/internal/types"
)

// DetailInfo is an alias to types.DetailInfo.
type DetailInfo = types.DetailInfo

// ChannelMode is an alias to types.ChannelMode.
type ChannelMode = types.ChannelMode

// Channel modes of MPEG audio.
const (
	ChannelModeNone        = types.ChannelModeNone
	ChannelModeStereo      = types.ChannelModeStereo
	ChannelModeJointStereo = types.ChannelModeJointStereo
)

// FormatTime formats seconds as "m:ss", or "h:mm:ss" from one hour on.
func FormatTime(seconds int) string {
	return types.FormatTime(seconds)
}
