package vorbis

import (
	"strings"

	"github.com/simonhull/tagframe/internal/types"
)

// Field names of the standard frame types, indexed by type.
var namesOfTypes = [...]string{
	types.TypeTitle:           "TITLE",
	types.TypeArtist:          "ARTIST",
	types.TypeAlbum:           "ALBUM",
	types.TypeComment:         "COMMENT",
	types.TypeDate:            "DATE",
	types.TypeTrack:           "TRACKNUMBER",
	types.TypeGenre:           "GENRE",
	types.TypeAlbumArtist:     "ALBUMARTIST",
	types.TypeArranger:        "ARRANGER",
	types.TypeAuthor:          "AUTHOR",
	types.TypeBpm:             "BPM",
	types.TypeCatalogNumber:   "CATALOGNUMBER",
	types.TypeCompilation:     "COMPILATION",
	types.TypeComposer:        "COMPOSER",
	types.TypeConductor:       "CONDUCTOR",
	types.TypeCopyright:       "COPYRIGHT",
	types.TypeDisc:            "DISCNUMBER",
	types.TypeEncodedBy:       "ENCODED-BY",
	types.TypeEncoderSettings: "ENCODERSETTINGS",
	types.TypeEncodingTime:    "ENCODINGTIME",
	types.TypeGrouping:        "GROUPING",
	types.TypeInitialKey:      "INITIALKEY",
	types.TypeIsrc:            "ISRC",
	types.TypeLanguage:        "LANGUAGE",
	types.TypeLyricist:        "LYRICIST",
	types.TypeLyrics:          "LYRICS",
	types.TypeMedia:           "SOURCEMEDIA",
	types.TypeMood:            "MOOD",
	types.TypeOriginalAlbum:   "ORIGINALALBUM",
	types.TypeOriginalArtist:  "ORIGINALARTIST",
	types.TypeOriginalDate:    "ORIGINALDATE",
	types.TypeDescription:     "DESCRIPTION",
	types.TypePerformer:       "PERFORMER",
	types.TypePicture:         PictureName,
	types.TypePublisher:       "PUBLISHER",
	types.TypeReleaseCountry:  "RELEASECOUNTRY",
	types.TypeRemixer:         "REMIXER",
	types.TypeSortAlbum:       "ALBUMSORT",
	types.TypeSortAlbumArtist: "ALBUMARTISTSORT",
	types.TypeSortArtist:      "ARTISTSORT",
	types.TypeSortComposer:    "COMPOSERSORT",
	types.TypeSortName:        "TITLESORT",
	types.TypeSubtitle:        "SUBTITLE",
	types.TypeWebsite:         "WEBSITE",
	types.TypeWWWAudioFile:    "WWWAUDIOFILE",
	types.TypeWWWAudioSource:  "WWWAUDIOSOURCE",
	types.TypeReleaseDate:     "RELEASEDATE",
	types.TypeRating:          "RATING",
	types.TypeWork:            "WORK",
}

const (
	// PictureName holds base64 encoded FLAC picture blocks.
	PictureName = "METADATA_BLOCK_PICTURE"

	// CoverArtName holds base64 encoded image data, the MIME type is in
	// CoverArtMIMEName.
	CoverArtName     = "COVERART"
	CoverArtMIMEName = "COVERARTMIME"

	trackTotalName = "TRACKTOTAL"
)

var typesOfNames = func() map[string]types.Type {
	m := make(map[string]types.Type, len(namesOfTypes)+1)
	for t, name := range namesOfTypes {
		m[name] = types.Type(t)
	}
	m[CoverArtName] = types.TypePicture
	return m
}()

// NameOfType returns the field name of a standard type, "" for other
// types.
func NameOfType(t types.Type) string {
	if t < types.TypeFirstFrame || t > types.TypeLastFrame {
		return ""
	}
	return namesOfTypes[t]
}

// TypeOfName returns the type of a field name. Names are matched
// case-insensitively and '=' is ignored; unknown names are TypeOther.
func TypeOfName(name string) types.Type {
	key := strings.ToUpper(strings.ReplaceAll(name, "=", ""))
	if t, ok := typesOfNames[key]; ok {
		return t
	}
	return types.TypeOther
}

// FixUpKey makes a field name valid. Vorbis field names consist of
// printable ASCII characters except '='; they are stored upper case.
func FixUpKey(name string) string {
	var sb strings.Builder
	for _, r := range name {
		if r >= 0x20 && r <= 0x7D && r != '=' {
			sb.WriteRune(r)
		}
	}
	return strings.ToUpper(sb.String())
}

// nameOf returns the field name used to store f.
func nameOf(f *types.Frame) string {
	switch {
	case f.Type == types.TypePicture && f.Name == CoverArtName:
		return CoverArtName
	case f.Type <= types.TypeLastFrame:
		return namesOfTypes[f.Type]
	}
	return FixUpKey(f.Name)
}

// frameNames are offered for new frames in addition to the standard
// types.
var frameNames = []string{
	"CONTACT", "DISCTOTAL", "EAN/UPN", "ENCODING", "ENGINEER",
	"ENSEMBLE", "GUESTARTIST", "LABEL", "LABELNO", "LICENSE",
	"LOCATION", "OPUS", "ORGANIZATION", "PARTNUMBER", "PRODUCER",
	"PRODUCTNUMBER", "RECORDINGDATE", "TRACKTOTAL", "VERSION", "VOLUME",
}

// FrameIDs returns the display names of the standard types followed by
// the common field names without a standard type.
func FrameIDs() []string {
	var ids []string
	for t := types.TypeFirstFrame; t <= types.TypeLastFrame; t++ {
		ids = append(ids, t.String())
	}
	return append(ids, frameNames...)
}
