package binary

import (
	"bytes"
	"errors"
	"testing"
)

func TestSafeWriter_Integers(t *testing.T) {
	buf := &bytes.Buffer{}
	sw := NewSafeWriter(buf)

	_ = Write[uint8](sw, 0x01)
	_ = Write[uint16](sw, 0x0203)
	_ = Write[uint32](sw, 0x04050607)
	_ = WriteLE[uint16](sw, 0x0908)
	_ = WriteLE[uint32](sw, 0x0D0C0B0A)
	if err := WriteLE[uint64](sw, 0x15141312_11100F0E); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []byte{
		0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08, 0x09,
		0x0A, 0x0B, 0x0C, 0x0D, 0x0E, 0x0F, 0x10, 0x11, 0x12,
		0x13, 0x14, 0x15,
	}
	if !bytes.Equal(buf.Bytes(), want) {
		t.Errorf("written = % x, want % x", buf.Bytes(), want)
	}
	if sw.Offset() != int64(len(want)) {
		t.Errorf("Offset() = %d, want %d", sw.Offset(), len(want))
	}
}

func TestSafeWriter_WriteString(t *testing.T) {
	buf := &bytes.Buffer{}
	sw := NewSafeWriter(buf)

	if err := sw.WriteString("TAG"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := buf.String(); got != "TAG" {
		t.Errorf("written = %q, want %q", got, "TAG")
	}
}

func TestSafeWriter_WriteText(t *testing.T) {
	tests := []struct {
		name      string
		enc       byte
		terminate bool
		want      []byte
	}{
		{"latin1 terminated", EncodingISO8859_1, true, []byte{'A', 0xE9, 0}},
		{"latin1 open", EncodingISO8859_1, false, []byte{'A', 0xE9}},
		{"utf8 terminated", EncodingUTF8, true, []byte{'A', 0xC3, 0xA9, 0}},
		{"utf16 terminated", EncodingUTF16, true, []byte{0xFF, 0xFE, 'A', 0, 0xE9, 0, 0, 0}},
		{"utf16be", EncodingUTF16BE, false, []byte{0, 'A', 0, 0xE9}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			sw := NewSafeWriter(buf)
			if err := sw.WriteText("A\u00e9", tt.enc, tt.terminate); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !bytes.Equal(buf.Bytes(), tt.want) {
				t.Errorf("WriteText() = % x, want % x", buf.Bytes(), tt.want)
			}
		})
	}
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) { return 0, errShort }

var errShort = errors.New("short write")

func TestSafeWriter_ErrIsSticky(t *testing.T) {
	sw := NewSafeWriter(failWriter{})
	_ = Write[uint32](sw, 1)
	_ = sw.WriteString("more")
	if !errors.Is(sw.Err(), errShort) {
		t.Errorf("Err() = %v, want %v", sw.Err(), errShort)
	}
}
