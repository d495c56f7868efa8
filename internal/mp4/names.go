package mp4

import (
	"strings"

	"github.com/simonhull/tagframe/internal/types"
)

// valueKind is the encoding of an item's data.
type valueKind int

const (
	kindByteArray valueKind = iota
	kindCoverArt
	kindString
	kindBool
	kindInt
	kindIntPair
	kindByte
	kindUInt
	kindLongLong
)

type atomName struct {
	name string
	typ  types.Type
	kind valueKind
}

// atomNames maps item names to frame types. Names starting with an
// upper case letter are stored as free-form items.
var atomNames = []atomName{
	{"\251nam", types.TypeTitle, kindString},
	{"\251ART", types.TypeArtist, kindString},
	{"\251wrt", types.TypeComposer, kindString},
	{"\251alb", types.TypeAlbum, kindString},
	{"\251day", types.TypeDate, kindString},
	{"\251enc", types.TypeEncodedBy, kindString},
	{"\251cmt", types.TypeComment, kindString},
	{"gnre", types.TypeGenre, kindString},
	// later entries win the type lookup, new genres use ©gen
	{"\251gen", types.TypeGenre, kindString},
	{"trkn", types.TypeTrack, kindIntPair},
	{"disk", types.TypeDisc, kindIntPair},
	{"cpil", types.TypeCompilation, kindBool},
	{"tmpo", types.TypeBpm, kindInt},
	{"\251grp", types.TypeGrouping, kindString},
	{"aART", types.TypeAlbumArtist, kindString},
	{"pgap", types.TypeOther, kindBool},
	{"cprt", types.TypeCopyright, kindString},
	{"\251lyr", types.TypeLyrics, kindString},
	{"tvsh", types.TypeOther, kindString},
	{"tvnn", types.TypeOther, kindString},
	{"tven", types.TypeOther, kindString},
	{"tvsn", types.TypeOther, kindUInt},
	{"tves", types.TypeOther, kindUInt},
	{"desc", types.TypeDescription, kindString},
	{"ldes", types.TypeOther, kindString},
	{"sonm", types.TypeSortName, kindString},
	{"soar", types.TypeSortArtist, kindString},
	{"soaa", types.TypeSortAlbumArtist, kindString},
	{"soal", types.TypeSortAlbum, kindString},
	{"soco", types.TypeSortComposer, kindString},
	{"sosn", types.TypeOther, kindString},
	{"\251too", types.TypeEncoderSettings, kindString},
	{"purd", types.TypeOther, kindString},
	{"pcst", types.TypeOther, kindBool},
	{"keyw", types.TypeOther, kindString},
	{"catg", types.TypeOther, kindString},
	{"hdvd", types.TypeOther, kindUInt},
	{"stik", types.TypeOther, kindByte},
	{"rtng", types.TypeOther, kindByte},
	{"apID", types.TypeOther, kindString},
	{"akID", types.TypeOther, kindByte},
	{"sfID", types.TypeOther, kindUInt},
	{"cnID", types.TypeOther, kindUInt},
	{"atID", types.TypeOther, kindUInt},
	{"plID", types.TypeOther, kindLongLong},
	{"geID", types.TypeOther, kindUInt},
	{"ownr", types.TypeOther, kindString},
	{"purl", types.TypeOther, kindString},
	{"egid", types.TypeOther, kindString},
	{"cmID", types.TypeOther, kindUInt},
	{"xid ", types.TypeOther, kindString},
	{coverArtName, types.TypePicture, kindCoverArt},
	{"\251wrk", types.TypeWork, kindString},
	{"\251mvn", types.TypeOther, kindString},
	{"\251mvi", types.TypeOther, kindInt},
	{"\251mvc", types.TypeOther, kindInt},
	{"shwm", types.TypeOther, kindBool},
	{"ARRANGER", types.TypeArranger, kindString},
	{"AUTHOR", types.TypeAuthor, kindString},
	{"CATALOGNUMBER", types.TypeCatalogNumber, kindString},
	{"CONDUCTOR", types.TypeConductor, kindString},
	{"ENCODINGTIME", types.TypeEncodingTime, kindString},
	{"INITIALKEY", types.TypeInitialKey, kindString},
	{"ISRC", types.TypeIsrc, kindString},
	{"LANGUAGE", types.TypeLanguage, kindString},
	{"LYRICIST", types.TypeLyricist, kindString},
	{"MOOD", types.TypeMood, kindString},
	{"SOURCEMEDIA", types.TypeMedia, kindString},
	{"ORIGINALALBUM", types.TypeOriginalAlbum, kindString},
	{"ORIGINALARTIST", types.TypeOriginalArtist, kindString},
	{"ORIGINALDATE", types.TypeOriginalDate, kindString},
	{"PERFORMER", types.TypePerformer, kindString},
	{"PUBLISHER", types.TypePublisher, kindString},
	{"RELEASECOUNTRY", types.TypeReleaseCountry, kindString},
	{"REMIXER", types.TypeRemixer, kindString},
	{"SUBTITLE", types.TypeSubtitle, kindString},
	{"WEBSITE", types.TypeWebsite, kindString},
	{"WWWAUDIOFILE", types.TypeWWWAudioFile, kindString},
	{"WWWAUDIOSOURCE", types.TypeWWWAudioSource, kindString},
	{"RELEASEDATE", types.TypeReleaseDate, kindString},
	{"rate", types.TypeRating, kindString},
}

const (
	coverArtName   = "covr"
	freeFormType   = "----"
	iTunesFreeForm = "----:com.apple.iTunes:"
)

var (
	namesByType = func() map[types.Type]atomName {
		m := make(map[types.Type]atomName)
		for _, n := range atomNames {
			if n.typ != types.TypeOther {
				m[n.typ] = n
			}
		}
		return m
	}()
	namesByName = func() map[string]atomName {
		m := make(map[string]atomName, len(atomNames))
		for _, n := range atomNames {
			m[n.name] = n
		}
		return m
	}()
)

// nameForType returns the item name and kind of a standard type. The
// name is empty for TypeOther.
func nameForType(t types.Type) (string, valueKind) {
	if n, ok := namesByType[t]; ok {
		return n.name, n.kind
	}
	return "", kindString
}

// typeForName returns the frame type and kind of an item name. freeForm
// reports whether the name is stored in a free-form item: names of the
// table starting with an upper case letter and all unknown names.
func typeForName(name string) (t types.Type, kind valueKind, freeForm bool) {
	if n, ok := namesByName[name]; ok {
		return n.typ, n.kind, name != "" && name[0] >= 'A' && name[0] <= 'Z'
	}
	return types.TypeOther, kindString, true
}

// stripFreeFormName converts the key of a free-form item to the name
// shown in frames: "----:com.apple.iTunes:MOOD" becomes "MOOD". A name
// which would not be stored as free-form again gets a leading ':' to
// keep it apart from the standard item of that name.
func stripFreeFormName(key string) string {
	if !strings.HasPrefix(key, freeFormType) {
		return key
	}
	var name string
	if i := strings.LastIndexByte(key, ':'); i >= 0 {
		name = key[i+1:]
	} else if len(key) > 5 {
		name = key[5:]
	}
	if _, _, freeForm := typeForName(name); !freeForm {
		name = ":" + name
	}
	return name
}

// isStandardKey reports whether a key has the form of an item name
// rather than a free-form name: four characters starting with © or a
// lower case letter.
func isStandardKey(key string) bool {
	return len(key) == 4 && (key[0] == '\251' || (key[0] >= 'a' && key[0] <= 'z'))
}

// fixUpKey drops control characters from a name. Keys are compared
// byte-wise; "\251nam" holds the raw © byte of the file.
func fixUpKey(name string) string {
	var sb strings.Builder
	for i := 0; i < len(name); i++ {
		if c := name[i]; c >= 0x20 && c != 0x7F {
			sb.WriteByte(c)
		}
	}
	return sb.String()
}

// nameOfFrame returns the item name and kind used to store f.
func nameOfFrame(f *types.Frame) (string, valueKind) {
	if f.Type != types.TypeOther {
		name, kind := nameForType(f.Type)
		if name == "" {
			name = f.InternalName()
		}
		return name, kind
	}
	name := fixUpKey(f.InternalName())
	_, kind, _ := typeForName(name)
	return name, kind
}

// FrameIDs returns the display names of the standard types which have
// an item name followed by the other item names of the table.
func FrameIDs() []string {
	var ids []string
	for t := types.TypeFirstFrame; t <= types.TypeLastFrame; t++ {
		if name, kind := nameForType(t); name != "" && kind != kindByteArray &&
			!(name[0] >= 'A' && name[0] <= 'Z') {
			ids = append(ids, t.String())
		}
	}
	for _, n := range atomNames {
		if n.typ == types.TypeOther && n.kind != kindByteArray &&
			!(n.name[0] >= 'A' && n.name[0] <= 'Z') {
			ids = append(ids, n.name)
		}
	}
	return ids
}
