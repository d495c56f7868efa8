package mp4

import (
	"fmt"

	"github.com/simonhull/tagframe/internal/binary"
	"github.com/simonhull/tagframe/internal/types"
)

// Atom is the header of an MP4 box.
type Atom struct {
	Size     uint64 // Total size including header
	Type     string // 4-character type code
	Offset   int64  // Position in file
	Extended bool   // Whether this uses 64-bit extended size
}

// DataSize returns the size of the atom's data (excluding header)
func (a *Atom) DataSize() uint64 {
	headerSize := uint64(8)
	if a.Extended {
		headerSize = 16
	}
	if a.Size < headerSize {
		return 0
	}
	return a.Size - headerSize
}

// DataOffset returns the file offset where the atom's data starts
func (a *Atom) DataOffset() int64 {
	headerSize := int64(8)
	if a.Extended {
		headerSize = 16
	}
	return a.Offset + headerSize
}

// End returns the file offset after the atom.
func (a *Atom) End() int64 {
	return a.Offset + int64(a.Size)
}

var containerTypes = map[string]bool{
	"moov": true,
	"udta": true,
	"meta": true,
	"ilst": true,
	"trak": true,
	"mdia": true,
	"minf": true,
	"stbl": true,
}

// IsContainer returns true if this atom type can contain other atoms
func (a *Atom) IsContainer() bool {
	return containerTypes[a.Type]
}

// readAtomHeader reads an atom header at the given offset
func readAtomHeader(sr *binary.SafeReader, offset int64) (*Atom, error) {
	size32, err := binary.Read[uint32](sr, offset, "atom size")
	if err != nil {
		return nil, err
	}

	typeBytes := make([]byte, 4)
	if err := sr.ReadAt(typeBytes, offset+4, "atom type"); err != nil {
		return nil, err
	}

	atom := &Atom{
		Type:   string(typeBytes),
		Offset: offset,
	}

	switch size32 {
	case 0:
		// The atom extends to the end of the file
		atom.Size = uint64(sr.Size() - offset)
	case 1:
		size64, err := binary.Read[uint64](sr, offset+8, "extended atom size")
		if err != nil {
			return nil, err
		}
		atom.Size = size64
		atom.Extended = true
	default:
		atom.Size = uint64(size32)
	}

	minSize := uint64(8)
	if atom.Extended {
		minSize = 16
	}
	if atom.Size < minSize {
		return nil, &types.CorruptedFileError{
			Path:   sr.Path(),
			Offset: offset,
			Reason: fmt.Sprintf("invalid atom size %d (minimum is %d)", atom.Size, minSize),
		}
	}
	if atom.End() > sr.Size() {
		return nil, &types.CorruptedFileError{
			Path:   sr.Path(),
			Offset: offset,
			Reason: fmt.Sprintf("atom '%s' of size %d exceeds file", atom.Type, atom.Size),
		}
	}

	return atom, nil
}

// children reads the headers of the atoms between start and end.
func children(sr *binary.SafeReader, start, end int64) ([]*Atom, error) {
	var atoms []*Atom
	for offset := start; offset+8 <= end; {
		atom, err := readAtomHeader(sr, offset)
		if err != nil {
			return atoms, err
		}
		if atom.End() > end {
			return atoms, &types.CorruptedFileError{
				Path:   sr.Path(),
				Offset: offset,
				Reason: fmt.Sprintf("atom '%s' exceeds its parent", atom.Type),
			}
		}
		atoms = append(atoms, atom)
		offset = atom.End()
	}
	return atoms, nil
}

// findAtom searches for an atom of the given type within a range
// Returns the first matching atom or an error if not found
func findAtom(sr *binary.SafeReader, start, end int64, atomType string) (*Atom, error) {
	offset := start

	for offset+8 <= end {
		atom, err := readAtomHeader(sr, offset)
		if err != nil {
			return nil, err
		}

		if atom.Type == atomType {
			return atom, nil
		}

		offset = atom.End()
	}

	return nil, fmt.Errorf("atom '%s' not found", atomType)
}

// findPath follows a path of atom types from the top level. The meta
// atom is a full box, its children start after version and flags.
func findPath(sr *binary.SafeReader, path ...string) (*Atom, error) {
	start, end := int64(0), sr.Size()
	var atom *Atom
	for _, typ := range path {
		var err error
		atom, err = findAtom(sr, start, end, typ)
		if err != nil {
			return nil, err
		}
		start, end = atom.DataOffset(), atom.End()
		if typ == "meta" {
			start += 4
		}
	}
	return atom, nil
}
