package id3v2

import (
	"strings"

	"github.com/simonhull/tagframe/internal/types"
)

// frameSpec describes one ID3v2.4 frame ID.
type frameSpec struct {
	id        string
	desc      string
	typ       types.Type
	supported bool
}

// name returns the frame name used in ExtendedType, e.g.
// "TALB - Album/Movie/Show title".
func (s frameSpec) name() string { return s.id + " - " + s.desc }

var frameTable = []frameSpec{
	{"AENC", "Audio encryption", types.TypeOther, false},
	{"APIC", "Attached picture", types.TypePicture, true},
	{"ASPI", "Audio seek point index", types.TypeOther, false},
	{"CHAP", "Chapter", types.TypeOther, true},
	{"COMM", "Comments", types.TypeComment, true},
	{"COMR", "Commercial", types.TypeOther, false},
	{"CTOC", "Table of contents", types.TypeOther, true},
	{"ENCR", "Encryption method registration", types.TypeOther, false},
	{"EQU2", "Equalisation (2)", types.TypeOther, false},
	{"ETCO", "Event timing codes", types.TypeOther, true},
	{"GEOB", "General encapsulated object", types.TypeOther, true},
	{"GRID", "Group identification registration", types.TypeOther, false},
	{"GRP1", "Grouping", types.TypeOther, true},
	{"LINK", "Linked information", types.TypeOther, false},
	{"MCDI", "Music CD identifier", types.TypeOther, false},
	{"MLLT", "MPEG location lookup table", types.TypeOther, false},
	{"MVIN", "Movement Number", types.TypeOther, true},
	{"MVNM", "Movement Name", types.TypeOther, true},
	{"OWNE", "Ownership frame", types.TypeOther, true},
	{"PRIV", "Private frame", types.TypeOther, true},
	{"PCNT", "Play counter", types.TypeOther, false},
	{"PCST", "Podcast", types.TypeOther, true},
	{"POPM", "Popularimeter", types.TypeRating, true},
	{"POSS", "Position synchronisation frame", types.TypeOther, false},
	{"RBUF", "Recommended buffer size", types.TypeOther, false},
	{"RVA2", "Relative volume adjustment (2)", types.TypeOther, true},
	{"RVRB", "Reverb", types.TypeOther, false},
	{"SEEK", "Seek frame", types.TypeOther, false},
	{"SIGN", "Signature frame", types.TypeOther, false},
	{"SYLT", "Synchronized lyric/text", types.TypeOther, true},
	{"SYTC", "Synchronized tempo codes", types.TypeOther, false},
	{"TALB", "Album/Movie/Show title", types.TypeAlbum, true},
	{"TBPM", "BPM (beats per minute)", types.TypeBpm, true},
	{"TCAT", "Podcast category", types.TypeOther, true},
	{"TCMP", "iTunes compilation flag", types.TypeCompilation, true},
	{"TCOM", "Composer", types.TypeComposer, true},
	{"TCON", "Content type", types.TypeGenre, true},
	{"TCOP", "Copyright message", types.TypeCopyright, true},
	{"TDEN", "Encoding time", types.TypeEncodingTime, true},
	{"TDES", "Podcast description", types.TypeOther, true},
	{"TDLY", "Playlist delay", types.TypeOther, true},
	{"TDOR", "Original release time", types.TypeOriginalDate, true},
	{"TDRC", "Recording time", types.TypeDate, true},
	{"TDRL", "Release time", types.TypeReleaseDate, true},
	{"TDTG", "Tagging time", types.TypeOther, true},
	{"TENC", "Encoded by", types.TypeEncodedBy, true},
	{"TEXT", "Lyricist/Text writer", types.TypeLyricist, true},
	{"TFLT", "File type", types.TypeOther, true},
	{"TGID", "Podcast identifier", types.TypeOther, true},
	{"TIPL", "Involved people list", types.TypeArranger, true},
	{"TIT1", "Content group description", types.TypeWork, true},
	{"TIT2", "Title/songname/content description", types.TypeTitle, true},
	{"TIT3", "Subtitle/Description refinement", types.TypeDescription, true},
	{"TKEY", "Initial key", types.TypeInitialKey, true},
	{"TKWD", "Podcast keywords", types.TypeOther, true},
	{"TLAN", "Language(s)", types.TypeLanguage, true},
	{"TLEN", "Length", types.TypeOther, true},
	{"TMCL", "Musician credits list", types.TypePerformer, true},
	{"TMED", "Media type", types.TypeMedia, true},
	{"TMOO", "Mood", types.TypeMood, true},
	{"TOAL", "Original album/movie/show title", types.TypeOriginalAlbum, true},
	{"TOFN", "Original filename", types.TypeOther, true},
	{"TOLY", "Original lyricist(s)/text writer(s)", types.TypeAuthor, true},
	{"TOPE", "Original artist(s)/performer(s)", types.TypeOriginalArtist, true},
	{"TOWN", "File owner/licensee", types.TypeOther, true},
	{"TPE1", "Lead performer(s)/Soloist(s)", types.TypeArtist, true},
	{"TPE2", "Band/orchestra/accompaniment", types.TypeAlbumArtist, true},
	{"TPE3", "Conductor/performer refinement", types.TypeConductor, true},
	{"TPE4", "Interpreted, remixed, or otherwise modified by", types.TypeRemixer, true},
	{"TPOS", "Part of a set", types.TypeDisc, true},
	{"TPRO", "Produced notice", types.TypeOther, true},
	{"TPUB", "Publisher", types.TypePublisher, true},
	{"TRCK", "Track number/Position in set", types.TypeTrack, true},
	{"TRSN", "Internet radio station name", types.TypeOther, true},
	{"TRSO", "Internet radio station owner", types.TypeOther, true},
	{"TSO2", "Album artist sort order", types.TypeSortAlbumArtist, true},
	{"TSOA", "Album sort order", types.TypeSortAlbum, true},
	{"TSOC", "Composer sort order", types.TypeSortComposer, true},
	{"TSOP", "Performer sort order", types.TypeSortArtist, true},
	{"TSOT", "Title sort order", types.TypeSortName, true},
	{"TSRC", "ISRC (international standard recording code)", types.TypeIsrc, true},
	{"TSSE", "Software/Hardware and settings used for encoding", types.TypeEncoderSettings, true},
	{"TSST", "Set subtitle", types.TypeSubtitle, true},
	{"TXXX", "User defined text information", types.TypeOther, true},
	{"UFID", "Unique file identifier", types.TypeOther, true},
	{"USER", "Terms of use", types.TypeOther, false},
	{"USLT", "Unsynchronized lyric/text transcription", types.TypeLyrics, true},
	{"WCOM", "Commercial information", types.TypeOther, true},
	{"WCOP", "Copyright/Legal information", types.TypeOther, true},
	{"WFED", "Podcast feed", types.TypeOther, true},
	{"WOAF", "Official audio file webpage", types.TypeWWWAudioFile, true},
	{"WOAR", "Official artist/performer webpage", types.TypeWebsite, true},
	{"WOAS", "Official audio source webpage", types.TypeWWWAudioSource, true},
	{"WORS", "Official internet radio station homepage", types.TypeOther, true},
	{"WPAY", "Payment", types.TypeOther, true},
	{"WPUB", "Official publisher webpage", types.TypeOther, true},
	{"WXXX", "User defined URL link", types.TypeOther, true},
}

// Lookup indexes, built once at init and read-only afterwards.
var (
	specByID   = make(map[string]frameSpec, len(frameTable))
	idByType   = make(map[types.Type]string)
	unknownTag = frameSpec{desc: "????", typ: types.TypeUnknownFrame}
)

func init() {
	for _, s := range frameTable {
		specByID[s.id] = s
		if s.typ != types.TypeOther {
			idByType[s.typ] = s.id
		}
	}
}

// lookupID returns the table entry of a frame ID. Unknown IDs get an
// entry of type TypeUnknownFrame with description "????".
func lookupID(id string) frameSpec {
	if s, ok := specByID[id]; ok {
		return s
	}
	s := unknownTag
	s.id = id
	return s
}

// idOfType returns the frame ID for a canonical type, "" if ID3v2 has
// no dedicated frame for it.
func idOfType(t types.Type) string {
	return idByType[t]
}

// isValidID reports whether id is four upper case letters or digits,
// starting with a letter.
func isValidID(id string) bool {
	if len(id) != 4 || id[0] < 'A' || id[0] > 'Z' {
		return false
	}
	for i := 1; i < 4; i++ {
		c := id[i]
		if !(c >= 'A' && c <= 'Z') && !(c >= '0' && c <= '9') {
			return false
		}
	}
	return true
}

// idOfName extracts the frame ID of names like "TXXX - User defined
// text information\nDescription" or a plain "TXXX".
func idOfName(name string) (string, bool) {
	if len(name) < 4 {
		return "", false
	}
	id := name[:4]
	if len(name) > 4 && name[4] != ' ' && name[4] != '\n' {
		return "", false
	}
	if _, ok := specByID[id]; !ok {
		return "", false
	}
	return id, true
}

// descriptionOfName returns the part of a frame name after the first
// newline.
func descriptionOfName(name string) (string, bool) {
	if nl := strings.IndexByte(name, '\n'); nl >= 0 {
		return name[nl+1:], true
	}
	return "", false
}

// frameIDs lists the canonical types followed by the supported frames
// without canonical type and the chapters pseudo frame.
func frameIDs() []string {
	var ids []string
	for t := types.TypeFirstFrame; t <= types.TypeLastFrame; t++ {
		ids = append(ids, t.String())
	}
	for _, s := range frameTable {
		if s.typ == types.TypeOther && s.supported {
			ids = append(ids, s.name())
		}
	}
	return append(ids, ChaptersName)
}
