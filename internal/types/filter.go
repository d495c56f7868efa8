package types

// FrameFilter selects frames by type, and frames of type Other by name.
// The zero value enables all frames.
type FrameFilter struct {
	disabled      uint64
	disabledNames map[string]struct{}
}

// EnableAll enables all frames.
func (f *FrameFilter) EnableAll() {
	f.disabled = 0
	f.disabledNames = nil
}

// AreAllEnabled reports whether no frame is disabled.
func (f *FrameFilter) AreAllEnabled() bool {
	return f.disabled == 0 && len(f.disabledNames) == 0
}

// IsEnabled reports whether a frame passes the filter. name is only
// used for types beyond TypeLastFrame.
func (f *FrameFilter) IsEnabled(t Type, name string) bool {
	if t <= TypeLastFrame {
		return f.disabled&(1<<uint(t)) == 0
	}
	if name != "" {
		_, off := f.disabledNames[name]
		return !off
	}
	return true
}

// Enable enables or disables a frame type, or for types beyond
// TypeLastFrame a frame name.
func (f *FrameFilter) Enable(t Type, name string, enable bool) {
	if t <= TypeLastFrame {
		if enable {
			f.disabled &^= 1 << uint(t)
		} else {
			f.disabled |= 1 << uint(t)
		}
		return
	}
	if name == "" {
		return
	}
	if enable {
		delete(f.disabledNames, name)
		return
	}
	if f.disabledNames == nil {
		f.disabledNames = make(map[string]struct{})
	}
	f.disabledNames[name] = struct{}{}
}
