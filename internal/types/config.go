package types

import (
	"fmt"
	"strconv"

	"github.com/sirupsen/logrus"
)

// TagConfig carries the settings the backends read when they create or
// rewrite native frames. It is built once per Open call and not modified
// afterwards.
type TagConfig struct {
	// Logger receives debug and warning messages of the conversions.
	Logger logrus.FieldLogger

	// PopmEmail is the email stored in new popularimeter frames.
	PopmEmail string

	// ID3v2Version is 3 or 4; it decides encoding normalization and
	// the IPLS/TIPL frame.
	ID3v2Version int

	// TextEncoding is the preferred encoding for new ID3v2 text frames.
	TextEncoding TextEncoding

	// TrackNumberDigits zero-pads track numbers, 1 disables padding.
	TrackNumberDigits int

	// TotalNumberOfTracks is appended as "/N" to track numbers when
	// EnableTotalNumberOfTracks is set.
	TotalNumberOfTracks       int
	EnableTotalNumberOfTracks bool

	// GenreNotNumeric stores ID3v2 genres as text instead of "(N)".
	GenreNotNumeric bool

	// Strict makes Open fail on frames which cannot be decoded instead
	// of keeping them as raw data.
	Strict bool
}

// DefaultTagConfig returns the configuration used when no options are given.
func DefaultTagConfig() TagConfig {
	return TagConfig{
		Logger:            logrus.StandardLogger(),
		ID3v2Version:      4,
		TextEncoding:      EncodingISO8859_1,
		TrackNumberDigits: 1,
		GenreNotNumeric:   true,
	}
}

// Log returns the configured logger, falling back to the standard logger.
func (c *TagConfig) Log() logrus.FieldLogger {
	if c.Logger == nil {
		return logrus.StandardLogger()
	}
	return c.Logger
}

func (c *TagConfig) trackDigits() int {
	if c.TrackNumberDigits < 1 || c.TrackNumberDigits > 5 {
		return 1
	}
	return c.TrackNumberDigits
}

func (c *TagConfig) totalTracks(addTotal bool) int {
	if addTotal && c.EnableTotalNumberOfTracks {
		return c.TotalNumberOfTracks
	}
	return -1
}

// FormatTrackNumber pads a plain track number to the configured digits
// and appends the total number of tracks when enabled and addTotal is
// set. Values which are not a positive number are returned unchanged.
func (c *TagConfig) FormatTrackNumber(value string, addTotal bool) string {
	digits := c.trackDigits()
	total := c.totalTracks(addTotal)
	if total <= 0 && digits <= 1 {
		return value
	}
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		return value
	}
	if total > 0 {
		return fmt.Sprintf("%0*d/%0*d", digits, n, digits, total)
	}
	return fmt.Sprintf("%0*d", digits, n)
}

// TrackNumberString formats a track number and an optional total,
// "" for 0.
func (c *TagConfig) TrackNumberString(n, total int) string {
	if n == 0 {
		return ""
	}
	digits := c.trackDigits()
	s := fmt.Sprintf("%0*d", digits, n)
	if total > 0 {
		s += fmt.Sprintf("/%0*d", digits, total)
	}
	return s
}
