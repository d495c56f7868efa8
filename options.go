package tagframe

import (
	"github.com/sirupsen/logrus"

	"github.com/simonhull/tagframe/internal/types"
)

// TagConfig is an alias to types.TagConfig.
type TagConfig = types.TagConfig

// Option configures behavior when opening audio files.
//
// Options use the functional options pattern; they fill the TagConfig
// the tag backends of the file read when they convert frames.
//
// Example:
//
//	file, err := tagframe.Open("song.mp3",
//	    tagframe.WithID3v2Version(3),
//	    tagframe.WithTextEncoding(tagframe.EncodingUTF16),
//	)
type Option func(*openOptions)

// openOptions holds configuration for opening files.
type openOptions struct {
	cfg            types.TagConfig
	ignoreWarnings bool // Suppress all warnings
}

// defaultOptions returns the default configuration.
func defaultOptions() *openOptions {
	return &openOptions{
		cfg: types.DefaultTagConfig(),
	}
}

func applyOptions(opts []Option) *openOptions {
	options := defaultOptions()
	for _, opt := range opts {
		opt(options)
	}
	return options
}

// WithStrictParsing treats any warning as a fatal error.
//
// By default, frames whose body cannot be decoded are kept as raw data
// and reported in File.Warnings. With strict parsing enabled, Open fails
// instead.
//
// Example:
//
//	file, err := tagframe.Open("song.mp3", tagframe.WithStrictParsing())
//	// err != nil if ANY frame is broken
func WithStrictParsing() Option {
	return func(o *openOptions) {
		o.cfg.Strict = true
	}
}

// WithIgnoreWarnings suppresses all warnings.
//
// Example:
//
//	file, err := tagframe.Open("song.flac", tagframe.WithIgnoreWarnings())
//	// file.Warnings will always be empty
func WithIgnoreWarnings() Option {
	return func(o *openOptions) {
		o.ignoreWarnings = true
	}
}

// WithLogger sets the logger receiving debug messages about skipped
// frames and failed conversions. The default is the logrus standard
// logger.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(o *openOptions) {
		o.cfg.Logger = logger
	}
}

// WithLogLevel logs to a new logger with the given level.
//
// Example:
//
//	file, err := tagframe.Open("song.mp3", tagframe.WithLogLevel(logrus.DebugLevel))
func WithLogLevel(level logrus.Level) Option {
	return func(o *openOptions) {
		logger := logrus.New()
		logger.SetLevel(level)
		o.cfg.Logger = logger
	}
}

// WithID3v2Version selects the ID3v2 version frames are converted for,
// 3 or 4. Other values are ignored.
//
// ID3v2.3 has no TDRC and TIPL frames, dates and involved people use the
// TYER/TDAT and IPLS frames then.
func WithID3v2Version(version int) Option {
	return func(o *openOptions) {
		if version == 3 || version == 4 {
			o.cfg.ID3v2Version = version
		}
	}
}

// WithTextEncoding sets the encoding of new ID3v2 text frames.
func WithTextEncoding(enc TextEncoding) Option {
	return func(o *openOptions) {
		o.cfg.TextEncoding = enc
	}
}

// WithTrackNumberDigits zero-pads track numbers to digits places.
func WithTrackNumberDigits(digits int) Option {
	return func(o *openOptions) {
		if digits > 0 {
			o.cfg.TrackNumberDigits = digits
		}
	}
}

// WithTotalNumberOfTracks appends "/total" to track numbers which are
// written without a total.
func WithTotalNumberOfTracks(total int) Option {
	return func(o *openOptions) {
		o.cfg.TotalNumberOfTracks = total
		o.cfg.EnableTotalNumberOfTracks = total > 0
	}
}

// WithNumericGenres writes ID3v2 genres from the ID3v1 list as "(N)"
// references instead of text.
func WithNumericGenres() Option {
	return func(o *openOptions) {
		o.cfg.GenreNotNumeric = false
	}
}

// WithPopmEmail sets the email of new ID3v2 popularimeter frames.
func WithPopmEmail(email string) Option {
	return func(o *openOptions) {
		o.cfg.PopmEmail = email
	}
}
