package types

// TagNumber selects one of the tags of a file.
type TagNumber int

const (
	// Tag1 is the ID3v1 tag of MP3 files.
	Tag1 TagNumber = iota
	// Tag2 is the main tag: ID3v2, Vorbis comments, MP4 items or
	// ASF attributes.
	Tag2
)

func (n TagNumber) String() string {
	if n == Tag1 {
		return "tag 1"
	}
	return "tag 2"
}

// TagBackend maps one native tag to and from frames.
//
// Frames returned by AllFrames carry the native position in Index; the
// setters use it to target a specific native frame when several share a
// type, and fall back to the type otherwise.
type TagBackend interface {
	// TagFormat names the native format, e.g. "ID3v2.4.0" or "Vorbis".
	TagFormat() string

	// IsEmpty reports whether the native tag has no entries.
	IsEmpty() bool

	// AllFrames converts all native entries.
	AllFrames() FrameCollection

	// SetFrame updates an existing native entry.
	SetFrame(f *Frame) bool

	// AddFrame creates a native entry and sets f.Index and f.Fields.
	AddFrame(f *Frame) bool

	// DeleteFrame removes the native entry f refers to.
	DeleteFrame(f Frame) bool

	// DeleteFrames removes all entries passing flt.
	DeleteFrames(flt FrameFilter)

	// FrameIDs lists the names offered for new frames.
	FrameIDs() []string
}

// Saver is implemented by backends which can write their tag back to
// the file.
type Saver interface {
	Save(path string) error
}

// Tags are the tag backends loaded from one file.
type Tags struct {
	// Tag1 is nil for formats without an ID3v1 tag.
	Tag1     TagBackend
	Tag2     TagBackend
	Info     DetailInfo
	Warnings []Warning
}

// Backend returns the backend for a tag number, nil if absent.
func (t *Tags) Backend(n TagNumber) TagBackend {
	if n == Tag1 {
		return t.Tag1
	}
	return t.Tag2
}
