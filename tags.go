package tagframe

import (
	"github.com/simonhull/tagframe/internal/types"
)

// Frame is an alias to types.Frame.
type Frame = types.Frame

// Field is an alias to types.Field.
type Field = types.Field

// FieldID is an alias to types.FieldID.
type FieldID = types.FieldID

// FrameCollection is an alias to types.FrameCollection.
type FrameCollection = types.FrameCollection

// FrameFilter is an alias to types.FrameFilter.
type FrameFilter = types.FrameFilter

// ExtendedType is an alias to types.ExtendedType.
type ExtendedType = types.ExtendedType

// Type is an alias to types.Type.
type Type = types.Type

// TagNumber is an alias to types.TagNumber.
type TagNumber = types.TagNumber

// TextEncoding is an alias to types.TextEncoding.
type TextEncoding = types.TextEncoding

// Tag numbers.
const (
	Tag1 = types.Tag1
	Tag2 = types.Tag2
)

// Text encodings of new ID3v2 frames.
const (
	EncodingISO8859_1 = types.EncodingISO8859_1
	EncodingUTF16     = types.EncodingUTF16
	EncodingUTF16BE   = types.EncodingUTF16BE
	EncodingUTF8      = types.EncodingUTF8
)

// Re-export all frame type constants.
const (
	TypeTitle           = types.TypeTitle
	TypeArtist          = types.TypeArtist
	TypeAlbum           = types.TypeAlbum
	TypeComment         = types.TypeComment
	TypeDate            = types.TypeDate
	TypeTrack           = types.TypeTrack
	TypeGenre           = types.TypeGenre
	TypeAlbumArtist     = types.TypeAlbumArtist
	TypeArranger        = types.TypeArranger
	TypeAuthor          = types.TypeAuthor
	TypeBpm             = types.TypeBpm
	TypeCatalogNumber   = types.TypeCatalogNumber
	TypeCompilation     = types.TypeCompilation
	TypeComposer        = types.TypeComposer
	TypeConductor       = types.TypeConductor
	TypeCopyright       = types.TypeCopyright
	TypeDisc            = types.TypeDisc
	TypeEncodedBy       = types.TypeEncodedBy
	TypeEncoderSettings = types.TypeEncoderSettings
	TypeEncodingTime    = types.TypeEncodingTime
	TypeGrouping        = types.TypeGrouping
	TypeInitialKey      = types.TypeInitialKey
	TypeIsrc            = types.TypeIsrc
	TypeLanguage        = types.TypeLanguage
	TypeLyricist        = types.TypeLyricist
	TypeLyrics          = types.TypeLyrics
	TypeMedia           = types.TypeMedia
	TypeMood            = types.TypeMood
	TypeOriginalAlbum   = types.TypeOriginalAlbum
	TypeOriginalArtist  = types.TypeOriginalArtist
	TypeOriginalDate    = types.TypeOriginalDate
	TypeDescription     = types.TypeDescription
	TypePerformer       = types.TypePerformer
	TypePicture         = types.TypePicture
	TypePublisher       = types.TypePublisher
	TypeReleaseCountry  = types.TypeReleaseCountry
	TypeRemixer         = types.TypeRemixer
	TypeSortAlbum       = types.TypeSortAlbum
	TypeSortAlbumArtist = types.TypeSortAlbumArtist
	TypeSortArtist      = types.TypeSortArtist
	TypeSortComposer    = types.TypeSortComposer
	TypeSortName        = types.TypeSortName
	TypeSubtitle        = types.TypeSubtitle
	TypeWebsite         = types.TypeWebsite
	TypeWWWAudioFile    = types.TypeWWWAudioFile
	TypeWWWAudioSource  = types.TypeWWWAudioSource
	TypeReleaseDate     = types.TypeReleaseDate
	TypeRating          = types.TypeRating
	TypeWork            = types.TypeWork
	TypeOther           = types.TypeOther
	TypeUnknownFrame    = types.TypeUnknownFrame
)

// NewFrame creates a frame of type t. name is only needed for TypeOther.
func NewFrame(t Type, value, name string) Frame {
	return types.NewFrame(t, value, name)
}

// DisplayNameOf returns a readable name for a frame name, e.g.
// "Event Timing Codes" for "ETCO".
func DisplayNameOf(name string) string {
	return types.DisplayNameOf(name)
}

// NewFrameCollection returns a collection holding frames.
func NewFrameCollection(frames ...Frame) FrameCollection {
	return types.NewFrameCollection(frames...)
}

// ExtendedTypeFromName returns the extended type for a display or native
// frame name, e.g. "Title" or "TXXX".
func ExtendedTypeFromName(name string) ExtendedType {
	return types.ExtendedTypeFromName(name)
}
