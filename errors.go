package tagframe

import (
	"github.com/simonhull/tagframe/internal/types"
)

// UnsupportedFormatError is an alias to types.UnsupportedFormatError.
type UnsupportedFormatError = types.UnsupportedFormatError

// CorruptedFileError is an alias to types.CorruptedFileError.
type CorruptedFileError = types.CorruptedFileError

// UnsupportedWriteError is an alias to types.UnsupportedWriteError.
// Tags of such formats can still be edited in memory.
type UnsupportedWriteError = types.UnsupportedWriteError

// TagNotFoundError is an alias to types.TagNotFoundError.
type TagNotFoundError = types.TagNotFoundError

// FilterExpressionError is an alias to types.FilterExpressionError.
type FilterExpressionError = types.FilterExpressionError

// Warning is an alias to types.Warning.
type Warning = types.Warning
