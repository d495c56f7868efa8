package asf

import (
	"strings"

	"github.com/simonhull/tagframe/internal/types"
)

type attributeName struct {
	name string
	typ  types.Type
	vt   ValueType
}

// attributeNames maps attribute names to frame types. For types with
// several names the first one is used for new attributes.
var attributeNames = []attributeName{
	{"Title", types.TypeTitle, UnicodeType},
	{"Author", types.TypeArtist, UnicodeType},
	{"WM/AlbumTitle", types.TypeAlbum, UnicodeType},
	{"Description", types.TypeComment, UnicodeType},
	{"WM/Year", types.TypeDate, UnicodeType},
	{"Copyright", types.TypeCopyright, UnicodeType},
	{ratingName, types.TypeOther, UnicodeType},
	{"WM/TrackNumber", types.TypeTrack, UnicodeType},
	{"WM/Track", types.TypeTrack, UnicodeType},
	{"WM/Genre", types.TypeGenre, UnicodeType},
	{"WM/GenreID", types.TypeGenre, UnicodeType},
	{"WM/AlbumArtist", types.TypeAlbumArtist, UnicodeType},
	{"WM/AlbumSortOrder", types.TypeSortAlbum, UnicodeType},
	{"WM/ArtistSortOrder", types.TypeSortArtist, UnicodeType},
	{"WM/TitleSortOrder", types.TypeSortName, UnicodeType},
	{"WM/Producer", types.TypeArranger, UnicodeType},
	{"WM/BeatsPerMinute", types.TypeBpm, UnicodeType},
	{"WM/Composer", types.TypeComposer, UnicodeType},
	{"WM/Conductor", types.TypeConductor, UnicodeType},
	{"WM/PartOfSet", types.TypeDisc, UnicodeType},
	{"WM/EncodedBy", types.TypeEncodedBy, UnicodeType},
	{"WM/ContentGroupDescription", types.TypeWork, UnicodeType},
	{"WM/ISRC", types.TypeIsrc, UnicodeType},
	{"WM/Language", types.TypeLanguage, UnicodeType},
	{"WM/Writer", types.TypeLyricist, UnicodeType},
	{"WM/Lyrics", types.TypeLyrics, UnicodeType},
	{"WM/AudioSourceURL", types.TypeWWWAudioSource, UnicodeType},
	{"WM/OriginalAlbumTitle", types.TypeOriginalAlbum, UnicodeType},
	{"WM/OriginalArtist", types.TypeOriginalArtist, UnicodeType},
	{"WM/OriginalReleaseYear", types.TypeOriginalDate, UnicodeType},
	{"WM/SubTitleDescription", types.TypeDescription, UnicodeType},
	{PictureName, types.TypePicture, BytesType},
	{"WM/Publisher", types.TypePublisher, UnicodeType},
	{"WM/ModifiedBy", types.TypeRemixer, UnicodeType},
	{"WM/SubTitle", types.TypeSubtitle, UnicodeType},
	{"WM/AuthorURL", types.TypeWebsite, UnicodeType},
	{"AverageLevel", types.TypeOther, DWordType},
	{"PeakValue", types.TypeOther, DWordType},
	{"WM/AudioFileURL", types.TypeWWWAudioFile, UnicodeType},
	{"WM/EncodingSettings", types.TypeEncoderSettings, UnicodeType},
	{"WM/EncodingTime", types.TypeEncodingTime, BytesType},
	{"WM/InitialKey", types.TypeInitialKey, UnicodeType},
	// WM/Lyrics_Synchronised is left out: broken values make the file
	// unreadable for Windows.
	{"WM/MCDI", types.TypeOther, BytesType},
	{"WM/MediaClassPrimaryID", types.TypeOther, GuidType},
	{"WM/MediaClassSecondaryID", types.TypeOther, GuidType},
	{"WM/Mood", types.TypeMood, UnicodeType},
	{"WM/OriginalFilename", types.TypeOther, UnicodeType},
	{"WM/OriginalLyricist", types.TypeOther, UnicodeType},
	{"WM/PromotionURL", types.TypeOther, UnicodeType},
	{"WM/SharedUserRating", types.TypeRating, UnicodeType},
	{"WM/WMCollectionGroupID", types.TypeOther, GuidType},
	{"WM/WMCollectionID", types.TypeOther, GuidType},
	{"WM/WMContentID", types.TypeOther, GuidType},
}

// ratingName is the content description field shown as other frame.
const ratingName = "Rating Information"

var (
	namesByType = func() map[types.Type]attributeName {
		m := make(map[types.Type]attributeName)
		for _, n := range attributeNames {
			if _, ok := m[n.typ]; !ok && n.typ != types.TypeOther {
				m[n.typ] = n
			}
		}
		return m
	}()
	namesByName = func() map[string]attributeName {
		m := make(map[string]attributeName, len(attributeNames))
		for _, n := range attributeNames {
			m[n.name] = n
		}
		return m
	}()
)

// nameForType returns the attribute name and value type for a frame
// type, "" if the type has no attribute.
func nameForType(t types.Type) (string, ValueType) {
	if n, ok := namesByType[t]; ok {
		return n.name, n.vt
	}
	return "", UnicodeType
}

// typeForName returns the frame type and value type of an attribute
// name. Unknown names are text attributes of type Other.
func typeForName(name string) (types.Type, ValueType) {
	if n, ok := namesByName[name]; ok {
		return n.typ, n.vt
	}
	return types.TypeOther, UnicodeType
}

// nameOfFrame returns the attribute name and value type used to store f.
func nameOfFrame(f *types.Frame) (string, ValueType) {
	if f.Type != types.TypeOther {
		name, vt := nameForType(f.Type)
		if name == "" {
			name = f.InternalName()
		}
		return name, vt
	}
	name := fixUpKey(f.InternalName())
	_, vt := typeForName(name)
	return name, vt
}

// fixUpKey drops the control characters of a name.
func fixUpKey(name string) string {
	return strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7F {
			return -1
		}
		return r
	}, name)
}

// FrameIDs returns the display names of the types which have an
// attribute followed by the attribute names of type Other.
func FrameIDs() []string {
	var ids []string
	for t := types.TypeFirstFrame; t <= types.TypeLastFrame; t++ {
		if name, _ := nameForType(t); name != "" {
			ids = append(ids, t.String())
		}
	}
	for _, n := range attributeNames {
		if n.typ == types.TypeOther {
			ids = append(ids, n.name)
		}
	}
	return ids
}
