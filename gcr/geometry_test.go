package gcr

import "testing"

// Verify the standard 1541 geometry adds up to 683 blocks across tracks
// 1-35 and a further 85 across the extended tracks 36-40.
func TestGeometry1541BlockCounts(t *testing.T) {
	g := NewGeometry1541()

	if got := g.TotalBlocks(35); got != BlocksOnDisk {
		t.Errorf("TotalBlocks(35) = %d, want %d", got, BlocksOnDisk)
	}

	extra := g.TotalBlocks(40) - g.TotalBlocks(35)
	if extra != BlocksExtra {
		t.Errorf("tracks 36-40 blocks = %d, want %d", extra, BlocksExtra)
	}
}

// Verify the four speed zones are assigned to the track ranges the
// reference geometry uses.
func TestSpeedZoneForTrack(t *testing.T) {
	g := NewGeometry1541()

	cases := []struct {
		track    int
		wantZone int
	}{
		{1, 3},
		{17, 3},
		{18, 2},
		{24, 2},
		{25, 1},
		{30, 1},
		{31, 0},
		{42, 0},
	}
	for _, c := range cases {
		if got := g.SpeedZoneForTrack(c.track); got != c.wantZone {
			t.Errorf("SpeedZoneForTrack(%d) = %d, want %d", c.track, got, c.wantZone)
		}
	}
}

// Verify out-of-range track numbers return zero rather than indexing
// past the fixed-size geometry tables.
func TestSectorsForTrackOutOfRange(t *testing.T) {
	g := NewGeometry1541()
	if got := g.SectorsForTrack(0); got != 0 {
		t.Errorf("SectorsForTrack(0) = %d, want 0", got)
	}
	if got := g.SectorsForTrack(43); got != 0 {
		t.Errorf("SectorsForTrack(43) = %d, want 0", got)
	}
}
