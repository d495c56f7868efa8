package tagframe

// SaveOption configures Save and SaveAs.
//
//	err := file.Save(
//	    tagframe.WithBackup(".bak"),
//	    tagframe.WithRemoveTags(tagframe.Tag1),
//	)
type SaveOption func(*saveOptions)

type saveOptions struct {
	backupSuffix    string
	validate        bool
	preserveModTime bool
	removeTags      []TagNumber
}

func applySaveOptions(opts []SaveOption) *saveOptions {
	options := &saveOptions{}
	for _, opt := range opts {
		opt(options)
	}
	return options
}

// WithBackup keeps the replaced file under its name with suffix
// appended, e.g. WithBackup(".bak") keeps "song.mp3.bak". An existing
// backup is overwritten.
func WithBackup(suffix string) SaveOption {
	return func(o *saveOptions) {
		o.backupSuffix = suffix
	}
}

// WithValidation re-opens the saved file and compares title, artist and
// album of tag 2 with the frames in memory.
func WithValidation() SaveOption {
	return func(o *saveOptions) {
		o.validate = true
	}
}

// WithPreserveModTime restores the modification time the file had
// before saving.
func WithPreserveModTime() SaveOption {
	return func(o *saveOptions) {
		o.preserveModTime = true
	}
}

// WithRemoveTags deletes all frames of the given tags before writing. An
// ID3 tag without frames is removed from the file.
//
//	// Drop the ID3v1 trailer, keep ID3v2.
//	err := file.Save(tagframe.WithRemoveTags(tagframe.Tag1))
func WithRemoveTags(tags ...TagNumber) SaveOption {
	return func(o *saveOptions) {
		o.removeTags = append(o.removeTags, tags...)
	}
}
