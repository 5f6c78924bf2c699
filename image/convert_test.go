package image

import "testing"

// Verify NIBToD64 reports an error rather than silently producing an
// image with a zero disk ID when the directory track was never captured.
func TestNIBToD64MissingDirectoryTrack(t *testing.T) {
	n := NIB{
		Entries: []NibEntry{{Halftrack: 2, Flags: 0}}, // track 1 only
		Raw:     [][]byte{make([]byte, 8192)},
	}
	if _, err := NIBToD64(n, 35); err == nil {
		t.Errorf("NIBToD64 with no directory-track capture: got nil error, want one")
	}
}

// Verify G64ToD64 reports an error when the directory track's slot is
// absent from the G64.
func TestG64ToD64MissingDirectoryTrack(t *testing.T) {
	var g G64
	g.Tracks[0] = make([]byte, 100) // track 1 only, not track 18

	if _, err := G64ToD64(g, 35); err == nil {
		t.Errorf("G64ToD64 with no directory-track slot: got nil error, want one")
	}
}

// Verify rawByTrack only keys whole tracks (even half-track numbers),
// discarding half-track-only captures that don't correspond to a track
// boundary.
func TestRawByTrackWholeTracksOnly(t *testing.T) {
	n := NIB{
		Entries: []NibEntry{
			{Halftrack: 2, Flags: 0},
			{Halftrack: 3, Flags: 0}, // half-track, not a whole track
			{Halftrack: 4, Flags: 0},
		},
		Raw: [][]byte{
			{0x01}, {0x02}, {0x03},
		},
	}
	m := rawByTrack(n)
	if len(m) != 2 {
		t.Fatalf("rawByTrack returned %d entries, want 2", len(m))
	}
	if m[1][0] != 0x01 || m[2][0] != 0x03 {
		t.Errorf("rawByTrack mismatched raw buffers: %v", m)
	}
}

// Verify halftrackSlot's 1-indexed-track to 0-indexed-slot mapping.
func TestHalftrackSlot(t *testing.T) {
	if got := halftrackSlot(1); got != 1 {
		t.Errorf("halftrackSlot(1) = %d, want 1", got)
	}
	if got := halftrackSlot(18); got != 35 {
		t.Errorf("halftrackSlot(18) = %d, want 35", got)
	}
}
