package image

import (
	"bytes"
	"testing"

	"github.com/mbrenner/nibtools/gcr"
)

func buildTestDisk(maxTrack int) Disk {
	geom := gcr.NewGeometry1541()
	disk := Disk{Tracks: make([][]SectorEntry, maxTrack)}
	for t := 1; t <= maxTrack; t++ {
		n := geom.SectorsForTrack(t)
		disk.Tracks[t-1] = make([]SectorEntry, n)
		for s := 0; s < n; s++ {
			var entry SectorEntry
			entry.Data[0] = byte(t)
			entry.Data[1] = byte(s)
			entry.Error = gcr.Ok
			disk.Tracks[t-1][s] = entry
		}
	}
	return disk
}

// Verify a clean 35-track disk round-trips through WriteD64/ReadD64
// without growing an error annex.
func TestD64RoundTripNoAnnex(t *testing.T) {
	disk := buildTestDisk(35)

	var buf bytes.Buffer
	if err := WriteD64(&buf, disk); err != nil {
		t.Fatalf("WriteD64: %v", err)
	}

	geom := gcr.NewGeometry1541()
	wantLen := geom.TotalBlocks(35) * 256
	if buf.Len() != wantLen {
		t.Fatalf("written d64 is %d bytes, want %d (no annex)", buf.Len(), wantLen)
	}

	got, err := ReadD64(&buf, geom, 35)
	if err != nil {
		t.Fatalf("ReadD64: %v", err)
	}
	if !got.Equal(disk) {
		t.Errorf("round-tripped disk does not match original")
	}
}

// Verify a disk with a non-Ok sector grows a one-byte-per-sector annex,
// and that the annex byte survives the round trip.
func TestD64RoundTripWithAnnex(t *testing.T) {
	disk := buildTestDisk(35)
	disk.Tracks[4][3].Error = gcr.BadDataChecksum

	var buf bytes.Buffer
	if err := WriteD64(&buf, disk); err != nil {
		t.Fatalf("WriteD64: %v", err)
	}

	geom := gcr.NewGeometry1541()
	wantLen := geom.TotalBlocks(35)*256 + geom.TotalBlocks(35)
	if buf.Len() != wantLen {
		t.Fatalf("written d64 is %d bytes, want %d (with annex)", buf.Len(), wantLen)
	}

	got, err := ReadD64(&buf, geom, 35)
	if err != nil {
		t.Fatalf("ReadD64: %v", err)
	}
	if got.Tracks[4][3].Error != gcr.BadDataChecksum {
		t.Errorf("annex error code lost in round trip: got %v", got.Tracks[4][3].Error)
	}
}

// Verify HasAnnex reports true unconditionally once any extended track
// (36-40) is present, even if every sector on it is Ok.
func TestHasAnnexExtendedTracksAlwaysAnnexed(t *testing.T) {
	disk := buildTestDisk(40)
	if !disk.HasAnnex() {
		t.Errorf("HasAnnex() = false for a 40-track disk, want true")
	}
}
