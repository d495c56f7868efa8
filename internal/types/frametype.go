package types

import "strings"

// Type is the canonical, format-independent kind of a frame.
//
// The order is significant: the first seven types form the ID3v1 set,
// FrameFilter masks are indexed by Type and collections sort by it.
type Type int

// Frame types.
const (
	TypeTitle Type = iota
	TypeArtist
	TypeAlbum
	TypeComment
	TypeDate
	TypeTrack
	TypeGenre
	TypeAlbumArtist
	TypeArranger
	TypeAuthor
	TypeBpm
	TypeCatalogNumber
	TypeCompilation
	TypeComposer
	TypeConductor
	TypeCopyright
	TypeDisc
	TypeEncodedBy
	TypeEncoderSettings
	TypeEncodingTime
	TypeGrouping
	TypeInitialKey
	TypeIsrc
	TypeLanguage
	TypeLyricist
	TypeLyrics
	TypeMedia
	TypeMood
	TypeOriginalAlbum
	TypeOriginalArtist
	TypeOriginalDate
	TypeDescription
	TypePerformer
	TypePicture
	TypePublisher
	TypeReleaseCountry
	TypeRemixer
	TypeSortAlbum
	TypeSortAlbumArtist
	TypeSortArtist
	TypeSortComposer
	TypeSortName
	TypeSubtitle
	TypeWebsite
	TypeWWWAudioFile
	TypeWWWAudioSource
	TypeReleaseDate
	TypeRating
	TypeWork
	TypeOther
	TypeUnknownFrame
)

// Range markers.
const (
	TypeFirstFrame  = TypeTitle
	TypeLastV1Frame = TypeGenre
	TypeLastFrame   = TypeWork
)

var typeNames = [...]string{
	TypeTitle:           "Title",
	TypeArtist:          "Artist",
	TypeAlbum:           "Album",
	TypeComment:         "Comment",
	TypeDate:            "Date",
	TypeTrack:           "Track Number",
	TypeGenre:           "Genre",
	TypeAlbumArtist:     "Album Artist",
	TypeArranger:        "Arranger",
	TypeAuthor:          "Author",
	TypeBpm:             "BPM",
	TypeCatalogNumber:   "Catalog Number",
	TypeCompilation:     "Compilation",
	TypeComposer:        "Composer",
	TypeConductor:       "Conductor",
	TypeCopyright:       "Copyright",
	TypeDisc:            "Disc Number",
	TypeEncodedBy:       "Encoded-by",
	TypeEncoderSettings: "Encoder Settings",
	TypeEncodingTime:    "Encoding Time",
	TypeGrouping:        "Grouping",
	TypeInitialKey:      "Initial Key",
	TypeIsrc:            "ISRC",
	TypeLanguage:        "Language",
	TypeLyricist:        "Lyricist",
	TypeLyrics:          "Lyrics",
	TypeMedia:           "Media",
	TypeMood:            "Mood",
	TypeOriginalAlbum:   "Original Album",
	TypeOriginalArtist:  "Original Artist",
	TypeOriginalDate:    "Original Date",
	TypeDescription:     "Description",
	TypePerformer:       "Performer",
	TypePicture:         "Picture",
	TypePublisher:       "Publisher",
	TypeReleaseCountry:  "Release Country",
	TypeRemixer:         "Remixer",
	TypeSortAlbum:       "Sort Album",
	TypeSortAlbumArtist: "Sort Album Artist",
	TypeSortArtist:      "Sort Artist",
	TypeSortComposer:    "Sort Composer",
	TypeSortName:        "Sort Name",
	TypeSubtitle:        "Subtitle",
	TypeWebsite:         "Website",
	TypeWWWAudioFile:    "WWW Audio File",
	TypeWWWAudioSource:  "WWW Audio Source",
	TypeReleaseDate:     "Release Date",
	TypeRating:          "Rating",
	TypeWork:            "Work",
	TypeOther:           "Other",
	TypeUnknownFrame:    "Unknown",
}

// typeByKey maps the normalized display name to its type.
var typeByKey = func() map[string]Type {
	m := make(map[string]Type, TypeLastFrame+1)
	for t := TypeFirstFrame; t <= TypeLastFrame; t++ {
		m[nameKey(typeNames[t])] = t
	}
	return m
}()

func nameKey(name string) string {
	return strings.ToUpper(strings.ReplaceAll(name, " ", ""))
}

// String returns the display name of the type.
func (t Type) String() string {
	if t < 0 || int(t) >= len(typeNames) {
		return "Unknown"
	}
	return typeNames[t]
}

// TypeFromName returns the canonical type for a display name.
// Spaces are ignored and case does not matter; TypeOther is returned
// when nothing matches.
func TypeFromName(name string) Type {
	if t, ok := typeByKey[nameKey(name)]; ok {
		return t
	}
	return TypeOther
}

// ExtendedType is a frame type together with the format-native name.
// The name only takes part in comparisons for TypeOther.
type ExtendedType struct {
	Type Type
	Name string
}

// ExtendedTypeFromName derives the type from a name.
func ExtendedTypeFromName(name string) ExtendedType {
	return ExtendedType{Type: TypeFromName(name), Name: name}
}

// DisplayName returns the name shown to users.
func (e ExtendedType) DisplayName() string {
	if e.Type == TypeOther {
		return e.Name
	}
	return e.Type.String()
}

// InternalName returns the native name if set, else the display name.
func (e ExtendedType) InternalName() string {
	if e.Name != "" {
		return e.Name
	}
	return e.Type.String()
}

// Compare orders by type and, for TypeOther, by name.
func (e ExtendedType) Compare(o ExtendedType) int {
	switch {
	case e.Type < o.Type:
		return -1
	case e.Type > o.Type:
		return 1
	case e.Type != TypeOther:
		return 0
	}
	return strings.Compare(e.Name, o.Name)
}
