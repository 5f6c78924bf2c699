package image

import (
	"bytes"
	"testing"
)

// Verify a NIB with a few captured half-tracks round-trips through
// WriteNIB/ReadNIB, and that the zero-entry table terminator is honored.
func TestNIBRoundTrip(t *testing.T) {
	n := NIB{
		Entries: []NibEntry{
			{Halftrack: 2, Flags: 0x03},
			{Halftrack: 4, Flags: 0x02},
		},
		Raw: [][]byte{
			bytes.Repeat([]byte{0x11}, nibRawTrackSz),
			bytes.Repeat([]byte{0x22}, nibRawTrackSz),
		},
	}

	var buf bytes.Buffer
	if err := WriteNIB(&buf, n); err != nil {
		t.Fatalf("WriteNIB: %v", err)
	}

	got, err := ReadNIB(buf.Bytes())
	if err != nil {
		t.Fatalf("ReadNIB: %v", err)
	}

	if len(got.Entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(got.Entries))
	}
	if got.Entries[0] != n.Entries[0] || got.Entries[1] != n.Entries[1] {
		t.Errorf("entries mismatch: got %+v, want %+v", got.Entries, n.Entries)
	}
	if !bytes.Equal(got.Raw[0], n.Raw[0]) || !bytes.Equal(got.Raw[1], n.Raw[1]) {
		t.Errorf("raw capture mismatch")
	}
}

// Verify a capture of the wrong length is rejected at write time rather
// than silently padded or truncated.
func TestNIBWriteRejectsWrongLength(t *testing.T) {
	n := NIB{
		Entries: []NibEntry{{Halftrack: 2, Flags: 0}},
		Raw:     [][]byte{make([]byte, nibRawTrackSz-1)},
	}
	var buf bytes.Buffer
	if err := WriteNIB(&buf, n); err == nil {
		t.Errorf("WriteNIB with short capture: got nil error, want one")
	}
}

// Verify a bad signature is rejected.
func TestNIBReadBadSignature(t *testing.T) {
	buf := make([]byte, nibHeaderSize)
	copy(buf, "NOT-A-NIB-FILE")
	if _, err := ReadNIB(buf); err == nil {
		t.Errorf("ReadNIB with bad signature: got nil error, want one")
	}
}
