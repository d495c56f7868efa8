package types

import (
	"sort"
	"strings"
)

// displayNamesOfIDs holds readable names for native frame IDs which have
// no canonical type.
var displayNamesOfIDs = map[string]string{
	"AENC": "Audio Encryption",
	"ASPI": "Audio Seek Point",
	"CHAP": "Chapter",
	"COMR": "Commercial",
	"CTOC": "Table of Contents",
	"ENCR": "Encryption Method",
	"EQU2": "Equalization",
	"EQUA": "Equalization",
	"ETCO": "Event Timing Codes",
	"GEOB": "General Object",
	"GRID": "Group Identification",
	"GRP1": "Grouping",
	"LINK": "Linked Information",
	"MCDI": "Music CD Identifier",
	"MLLT": "MPEG Lookup Table",
	"MVIN": "Movement Number",
	"MVNM": "Movement Name",
	"OWNE": "Ownership",
	"PCNT": "Play Counter",
	"PCST": "Podcast",
	"POPM": "Popularimeter",
	"POSS": "Position Synchronisation",
	"PRIV": "Private",
	"RBUF": "Recommended Buffer Size",
	"RVA2": "Volume Adjustment",
	"RVAD": "Volume Adjustment",
	"RVRB": "Reverb",
	"SEEK": "Seek",
	"SIGN": "Signature",
	"SYLT": "Synchronized Lyrics",
	"SYTC": "Synchronized Tempo Codes",
	"TCAT": "Podcast Category",
	"TDAT": "Date",
	"TDEN": "Encoding Time",
	"TDES": "Podcast Description",
	"TDLY": "Playlist Delay",
	"TDOR": "Original Release Time",
	"TDRC": "Recording Time",
	"TDRL": "Release Time",
	"TDTG": "Tagging Time",
	"TFLT": "File Type",
	"TGID": "Podcast Identifier",
	"TIME": "Time",
	"TKWD": "Podcast Keywords",
	"TLEN": "Length",
	"TOFN": "Original Filename",
	"TOWN": "File Owner",
	"TPRO": "Produced Notice",
	"TRDA": "Recording Date",
	"TRSN": "Radio Station Name",
	"TRSO": "Radio Station Owner",
	"TSIZ": "Size",
	"TXXX": "User-defined Text",
	"UFID": "Unique File Identifier",
	"USER": "Terms of Use",
	"WCOM": "Commercial URL",
	"WCOP": "Copyright URL",
	"WFED": "Podcast Feed",
	"WORS": "Official Radio Station",
	"WPAY": "Payment",
	"WPUB": "Official Publisher",
	"WXXX": "User-defined URL",

	"DISCTOTAL":   "Total Discs",
	"TOTALDISCS":  "Total Discs",
	"TOTALTRACKS": "Total Tracks",
	"TRACKTOTAL":  "Total Tracks",
	"ENCODER":     "Encoder",
	"LABEL":       "Label",
	"PRODUCER":    "Producer",
	"VERSION":     "Version",

	"WM/AlbumArtistSortOrder": "Sort Album Artist",
	"WM/Comments":             "Comment",
	"WM/MCDI":                 "MCDI",
	"WM/OriginalFilename":     "Original Filename",
	"WM/OriginalLyricist":     "Original Lyricist",
	"WM/PromotionURL":         "Commercial URL",
	"WM/SharedUserRating":     "User Rating",
	"WM/UserWebURL":           "User-defined URL",

	"akID":     "Account Type",
	"apID":     "Purchase Account",
	"atID":     "Artist ID",
	"catg":     "Category",
	"cnID":     "Catalog ID",
	"desc":     "Description",
	"geID":     "Genre ID",
	"hdvd":     "HD Video",
	"keyw":     "Keyword",
	"ldes":     "Long Description",
	"pcst":     "Podcast",
	"pgap":     "Gapless Playback",
	"plID":     "Album ID",
	"purd":     "Purchase Date",
	"rtng":     "Rating/Advisory",
	"sfID":     "Country Code",
	"sosn":     "Sort Show",
	"stik":     "Media Type",
	"tven":     "TV Episode",
	"tves":     "TV Episode Number",
	"tvnn":     "TV Network Name",
	"tvsh":     "TV Show Name",
	"tvsn":     "TV Season",
	"\251mvn":  "Movement Name",
	"\251mvi":  "Movement Number",
	"\251mvc":  "Movement Count",
	"shwm":     "Show Work & Movement",
	"ownr":     "Owner",
	"purl":     "Podcast URL",
	"egid":     "Podcast GUID",
	"cmID":     "Composer ID",
	"xid ":     "XID",
	"Chapters": "Chapters",
}

// DisplayNameOf returns a readable name for a frame name.
//
// Canonical names are returned unchanged. For a name like
// "TXXX - User defined text information\nDescription" the part after the
// newline is used, and known native IDs get their readable name.
func DisplayNameOf(name string) string {
	if name == "" {
		return name
	}
	if t := TypeFromName(name); t != TypeOther {
		return name
	}
	if nl := strings.IndexByte(name, '\n'); nl > 0 {
		name = name[nl+1:]
	}
	id := name
	if len(name) >= 7 && name[4:7] == " - " {
		id = name[:4]
	}
	if s, ok := displayNamesOfIDs[id]; ok {
		return s
	}
	return name
}

// IDsOfDisplayName returns the native IDs with the given readable name,
// sorted.
func IDsOfDisplayName(name string) []string {
	var ids []string
	for id, s := range displayNamesOfIDs {
		if s == name {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}
