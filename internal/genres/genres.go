// Package genres maps ID3 genre numbers to names.
//
// ID3v1 stores a genre as a single byte; ID3v2 text frames may contain
// the number in parentheses, the number followed by a refinement, or
// free text.
package genres

import (
	"strconv"
	"strings"
)

// Unknown is the number of a genre which is not in the table.
const Unknown = 0xff

// Custom is the placeholder name for genres outside the table.
const Custom = "Custom"

type genre struct {
	name string
	num  int
}

// table is sorted by name, the empty name comes first.
var table = [...]genre{
	{"", 255},
	{"A Cappella", 123},
	{"Abstract", 148},
	{"Acid", 34},
	{"Acid Jazz", 74},
	{"Acid Punk", 73},
	{"Acoustic", 99},
	{"Alternative", 20},
	{"Alternative Rock", 40},
	{"Ambient", 26},
	{"Anime", 145},
	{"Art Rock", 149},
	{"Audio Theatre", 184},
	{"Audiobook", 183},
	{"Avantgarde", 90},
	{"Ballad", 116},
	{"Baroque", 150},
	{"Bass", 41},
	{"Beat", 135},
	{"Bebob", 85},
	{"Bhangra", 151},
	{"Big Band", 96},
	{"Big Beat", 152},
	{"Black Metal", 138},
	{"Bluegrass", 89},
	{"Blues", 0},
	{"Booty Bass", 107},
	{"Breakbeat", 153},
	{"BritPop", 132},
	{"Cabaret", 65},
	{"Celtic", 88},
	{"Chamber Music", 104},
	{"Chanson", 102},
	{"Chillout", 154},
	{"Chorus", 97},
	{"Christian Gangsta Rap", 136},
	{"Christian Rap", 61},
	{"Christian Rock", 141},
	{"Classic Rock", 1},
	{"Classical", 32},
	{"Club", 112},
	{"Club-House", 128},
	{"Comedy", 57},
	{"Contemporary Christian", 140},
	{"Country", 2},
	{"Crossover", 139},
	{"Cult", 58},
	{"Dance", 3},
	{"Dance Hall", 125},
	{"Darkwave", 50},
	{"Death Metal", 22},
	{"Disco", 4},
	{"Downtempo", 155},
	{"Dream", 55},
	{"Drum & Bass", 127},
	{"Drum Solo", 122},
	{"Dub", 156},
	{"Dubstep", 189},
	{"Duet", 120},
	{"EBM", 157},
	{"Easy Listening", 98},
	{"Eclectic", 158},
	{"Electro", 159},
	{"Electroclash", 160},
	{"Electronic", 52},
	{"Emo", 161},
	{"Ethnic", 48},
	{"Euro-House", 124},
	{"Euro-Techno", 25},
	{"Eurodance", 54},
	{"Experimental", 162},
	{"Folk", 80},
	{"Folk/Rock", 81},
	{"Folklore", 115},
	{"Freestyle", 119},
	{"Funk", 5},
	{"Fusion", 30},
	{"Fusion", 84},
	{"G-Funk", 188},
	{"Game", 36},
	{"Gangsta", 59},
	{"Garage", 163},
	{"Garage Rock", 190},
	{"Global", 164},
	{"Goa", 126},
	{"Gospel", 38},
	{"Gothic", 49},
	{"Gothic Rock", 91},
	{"Grunge", 6},
	{"Hard Rock", 79},
	{"Hardcore", 129},
	{"Heavy Metal", 137},
	{"Hip-Hop", 7},
	{"House", 35},
	{"Humour", 100},
	{"IDM", 165},
	{"Illbient", 166},
	{"Indie", 131},
	{"Indie Rock", 187},
	{"Industrial", 19},
	{"Industro-Goth", 167},
	{"Instrumental", 33},
	{"Instrumental Pop", 46},
	{"Instrumental Rock", 47},
	{"Jam Band", 168},
	{"Jazz", 8},
	{"Jazz+Funk", 29},
	{"Jpop", 146},
	{"Jungle", 63},
	{"Krautrock", 169},
	{"Latin", 86},
	{"Leftfield", 170},
	{"Lo-Fi", 71},
	{"Lounge", 171},
	{"Math Rock", 172},
	{"Meditative", 45},
	{"Merengue", 142},
	{"Metal", 9},
	{"Musical", 77},
	{"National Folk", 82},
	{"Native American", 64},
	{"Neoclassical", 182},
	{"Neue Deutsche Welle", 185},
	{"New Age", 10},
	{"New Romantic", 173},
	{"New Wave", 66},
	{"Noise", 39},
	{"Nu-Breakz", 174},
	{"Oldies", 11},
	{"Opera", 103},
	{"Other", 12},
	{"Podcast", 186},
	{"Polka", 75},
	{"Polsk Punk", 134},
	{"Pop", 13},
	{"Pop-Folk", 53},
	{"Pop/Funk", 62},
	{"Porn Groove", 109},
	{"Post-Punk", 175},
	{"Post-Rock", 176},
	{"Power Ballad", 117},
	{"Pranks", 23},
	{"Primus", 108},
	{"Progressive Rock", 92},
	{"Psybient", 191},
	{"Psychedelic", 67},
	{"Psychedelic Rock", 93},
	{"Psytrance", 177},
	{"Punk", 43},
	{"Punk Rock", 121},
	{"R&B", 14},
	{"Rap", 15},
	{"Rave", 68},
	{"Reggae", 16},
	{"Retro", 76},
	{"Revival", 87},
	{"Rhythmic Soul", 118},
	{"Rock", 17},
	{"Rock & Roll", 78},
	{"Salsa", 143},
	{"Samba", 114},
	{"Satire", 110},
	{"Shoegaze", 178},
	{"Showtunes", 69},
	{"Ska", 21},
	{"Slow Jam", 111},
	{"Slow Rock", 95},
	{"Sonata", 105},
	{"Soul", 42},
	{"Sound Clip", 37},
	{"Soundtrack", 24},
	{"Southern Rock", 56},
	{"Space", 44},
	{"Space Rock", 179},
	{"Speech", 101},
	{"Swing", 83},
	{"Symphonic Rock", 94},
	{"Symphony", 106},
	{"Synthpop", 147},
	{"Tango", 113},
	{"Techno", 18},
	{"Techno-Industrial", 51},
	{"Terror", 130},
	{"Thrash Metal", 144},
	{"Top 40", 60},
	{"Trailer", 70},
	{"Trance", 31},
	{"Tribal", 72},
	{"Trip-Hop", 27},
	{"Trop Rock", 180},
	{"Vocal", 28},
	{"World Music", 181},
	{"Worldbeat", 133},
}

var (
	indexOfNum = make(map[int]int, len(table))
	numOfName  = make(map[string]int, len(table))
)

func init() {
	for i, g := range table {
		if _, ok := indexOfNum[g.num]; !ok {
			indexOfNum[g.num] = i
		}
		numOfName[g.name] = g.num
	}
}

// Names returns all genre names in alphabetical order, starting with the
// empty name and ending with Custom.
func Names() []string {
	names := make([]string, 0, len(table)+1)
	for _, g := range table {
		names = append(names, g.name)
	}
	return append(names, Custom)
}

// Count returns the number of table entries, not counting the empty name.
func Count() int { return len(table) - 1 }

// Index returns the position of a genre number in Names, 0 if unknown.
func Index(num int) int {
	return indexOfNum[num]
}

// Name returns the name of a genre number, "" if unknown.
func Name(num int) string {
	return table[Index(num)].name
}

// Number returns the number of a genre name, Unknown if the name is not
// in the table. The match is exact.
func Number(name string) int {
	if n, ok := numOfName[name]; ok {
		return n
	}
	return Unknown
}

// NameString returns the name for a genre stored as "9", "(9)" or
// "(9)Metal". Other strings are returned unchanged.
func NameString(s string) string {
	if s == "" {
		return s
	}
	if s[0] == '(' {
		if cp := strings.IndexByte(s[1:], ')') + 1; cp > 1 {
			if n, err := strconv.Atoi(s[1:cp]); err == nil && n <= 0xff {
				return Name(n)
			}
		}
		return s
	}
	if n, err := strconv.Atoi(s); err == nil && n >= 0 && n <= 0xff {
		return Name(n)
	}
	return s
}

// NumberString returns "(9)" or "9" for a known genre name and the name
// itself otherwise.
func NumberString(s string, parentheses bool) string {
	n := Number(s)
	if n >= Unknown {
		return s
	}
	if parentheses {
		return "(" + strconv.Itoa(n) + ")"
	}
	return strconv.Itoa(n)
}
