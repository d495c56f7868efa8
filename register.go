package tagframe

// The format packages register their loaders and writers.
import (
	_ "github.com/simonhull/tagframe/internal/asf"
	_ "github.com/simonhull/tagframe/internal/flac"
	_ "github.com/simonhull/tagframe/internal/mp3"
	_ "github.com/simonhull/tagframe/internal/mp4"
	_ "github.com/simonhull/tagframe/internal/ogg"
)
