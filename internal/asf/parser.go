// Package asf maps the content description and the attributes of
// ASF files (WMA, WMV) to frames.
//
// The header object is read directly: the content description, the
// extended content description and the metadata objects inside the
// header extension. Rewriting the header would need the data packets
// to be moved, so ASF tags are edited in memory only.
package asf

import (
	"io"

	"github.com/sirupsen/logrus"

	"github.com/simonhull/tagframe/internal/binary"
	"github.com/simonhull/tagframe/internal/registry"
	"github.com/simonhull/tagframe/internal/types"
)

const containerASF = "ASF"

// loader implements registry.Loader for ASF files.
type loader struct{}

// Load reads the header object.
func (loader) Load(r io.ReaderAt, size int64, path string, cfg *types.TagConfig) (*types.Tags, error) {
	sr := binary.NewSafeReader(r, size, path)
	h, err := parseHeader(sr, cfg.Strict)
	if err != nil {
		return nil, err
	}

	backend := fromHeader(h, cfg)
	cfg.Log().WithFields(logrus.Fields{
		"path":       path,
		"attributes": len(backend.attrs),
		"warnings":   len(h.warnings),
	}).Debug("loaded ASF header")

	return &types.Tags{Tag2: backend, Info: h.info, Warnings: h.warnings}, nil
}

// writer rejects saving; see the package documentation.
type writer struct{}

func (writer) ReadOnly() bool { return true }

func (writer) Save(string, *types.Tags) error {
	return &types.UnsupportedWriteError{
		Format: types.FormatWMA,
		Reason: "rewriting the ASF header is not supported",
	}
}

// init registers the ASF loader.
func init() {
	registry.Register(types.FormatWMA, loader{})
	registry.RegisterWriter(types.FormatWMA, writer{})
}
