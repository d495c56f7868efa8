// Package tagframe reads and edits the tags of audio files through one
// frame model.
//
// Every native entry of a tag, an ID3v2 frame, a Vorbis comment, an MP4
// item or an ASF attribute, is converted to a Frame: a canonical Type
// such as TypeTitle or TypeTrack, a string value and, for structured
// frames, a list of fields. Frames are edited and written back without
// knowing the native format.
//
// # Quick Start
//
// Reading the tags of an audio file:
//
//	file, err := tagframe.Open("song.flac")
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer file.Close()
//
//	frames := file.Frames(tagframe.Tag2)
//	fmt.Printf("%s - %s\n", frames.Artist(), frames.Title())
//	fmt.Println(file.Info())
//
// # Supported Formats
//
//   - MP3: ID3v1 (tag 1) and ID3v2.3/ID3v2.4 (tag 2), read and write
//   - FLAC: Vorbis comments and picture blocks, read and write
//   - Ogg: Vorbis comments of Vorbis and Opus streams, read only
//   - M4A: iTunes ilst items, read only
//   - WMA: ASF content description and attributes, read only
//
// Tags of the read only formats can still be edited in memory; Save
// returns an UnsupportedWriteError for them.
//
// # Editing
//
// Frames returned by Frames carry the position of their native entry,
// so a changed frame replaces exactly the entry it came from:
//
//	frames := file.Frames(tagframe.Tag2)
//	if title := frames.Find(tagframe.ExtendedType{Type: tagframe.TypeTitle}); title != nil {
//		title.SetValue("New Title")
//		title.ValueChanged = true
//	}
//	if err := file.SetFrames(tagframe.Tag2, &frames); err != nil {
//		return err
//	}
//	err = file.Save(tagframe.WithBackup(".bak"))
//
// New frames are created with NewFrame and replace the first frame of
// their type. Frames of TypeOther are identified by their native name.
//
// # Filtering and Format Strings
//
// Format strings use codes like %t or %{title}, %1 and %2 select a tag:
//
//	name := file.FormatString("%{track.2} %{artist} - %{title}")
//
// A FileFilter evaluates expressions over format strings:
//
//	flt, err := tagframe.NewFileFilter(`%{genre} equals Rock and not %{year} matches "19.*"`, nil)
//	if err != nil {
//		log.Fatal(err)
//	}
//	results, err := tagframe.FilterMany(ctx, flt, files...)
//
// # Error Handling
//
// Fatal errors prevent opening a file (file not found, unsupported format,
// corrupted container). Frames which cannot be decoded are kept as raw
// data and reported as warnings:
//
//	for _, w := range file.Warnings {
//		log.Printf("Warning: %s", w)
//	}
//
// Conversions between values and native frames report failure with a
// boolean result; debug messages go to the logger set with WithLogger.
package tagframe
