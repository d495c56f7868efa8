package asf

import (
	"slices"
	"strings"

	"github.com/google/uuid"
)

// guid is an object identifier in file byte order: the first three
// groups are little-endian.
type guid [16]byte

// mustGUID converts the textual form of an identifier to file order.
func mustGUID(s string) guid {
	id := uuid.MustParse(s)
	var g guid
	copy(g[:], id[:])
	slices.Reverse(g[0:4])
	slices.Reverse(g[4:6])
	slices.Reverse(g[6:8])
	return g
}

// String returns the textual form, e.g. "75B22630-668E-11CF-A6D9-00AA0062CE6C".
func (g guid) String() string {
	b := g
	slices.Reverse(b[0:4])
	slices.Reverse(b[4:6])
	slices.Reverse(b[6:8])
	return strings.ToUpper(uuid.UUID(b).String())
}

// Object identifiers of the header objects which are read.
var (
	guidHeader                     = mustGUID("75B22630-668E-11CF-A6D9-00AA0062CE6C")
	guidFileProperties             = mustGUID("8CABDCA1-A947-11CF-8EE4-00C00C205365")
	guidStreamProperties           = mustGUID("B7DC0791-A9B7-11CF-8EE6-00C00C205365")
	guidHeaderExtension            = mustGUID("5FBF03B5-A92E-11CF-8EE3-00C00C205365")
	guidContentDescription         = mustGUID("75B22633-668E-11CF-A6D9-00AA0062CE6C")
	guidExtendedContentDescription = mustGUID("D2D0A440-E307-11D2-97F0-00A0C95EA850")
	guidMetadata                   = mustGUID("C5F8CBEA-5BAF-4877-8467-AA8C44FA4CCA")
	guidMetadataLibrary            = mustGUID("44231C94-9498-49D1-A141-1D134E457054")
	guidAudioMedia                 = mustGUID("F8699E40-5B4D-11CF-A8FD-00805F5C442B")
)
