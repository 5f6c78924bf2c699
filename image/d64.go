package image

import (
	"bytes"
	"fmt"
	"io"

	"github.com/mbrenner/nibtools/gcr"
)

// SectorEntry is one decoded sector plus the error code it converged on.
type SectorEntry struct {
	Data  [256]byte
	Error gcr.ErrorCode
}

// Disk is a full D64 image: one slice of SectorEntry per track, indexed
// from track 1 (Tracks[0] is track 1).
type Disk struct {
	Tracks [][]SectorEntry
}

// MaxTrack returns the highest track number present.
func (d Disk) MaxTrack() int {
	return len(d.Tracks)
}

// HasAnnex reports whether the image must carry an error annex: any
// non-Ok sector on tracks 1-35, or the presence of any of tracks 36-40 at
// all (the extended annex is emitted unconditionally once those tracks
// are written — see the Open Question resolution in the design notes).
func (d Disk) HasAnnex() bool {
	for t := 1; t <= d.MaxTrack() && t <= gcr.MaxTrackD64; t++ {
		if t > 35 {
			return true
		}
		for _, s := range d.Tracks[t-1] {
			if s.Error != gcr.Ok {
				return true
			}
		}
	}
	return false
}

// WriteD64 serializes disk as sequential 256-byte sectors in track/
// sector order, followed by a one-byte-per-sector error annex when
// HasAnnex reports true.
func WriteD64(w io.Writer, disk Disk) error {
	for t := 1; t <= disk.MaxTrack(); t++ {
		for _, s := range disk.Tracks[t-1] {
			if _, err := w.Write(s.Data[:]); err != nil {
				return fmt.Errorf("image: write d64 track %d: %w", t, err)
			}
		}
	}

	if !disk.HasAnnex() {
		return nil
	}

	for t := 1; t <= disk.MaxTrack(); t++ {
		for _, s := range disk.Tracks[t-1] {
			if _, err := w.Write([]byte{s.Error.D64Byte()}); err != nil {
				return fmt.Errorf("image: write d64 annex track %d: %w", t, err)
			}
		}
	}
	return nil
}

// ReadD64 parses a D64 image, using geom to recover the track/sector
// boundaries (the file itself carries no geometry information) and
// recognizing a trailing one-byte-per-sector annex by its exact length.
func ReadD64(r io.Reader, geom gcr.Geometry, maxTrack int) (Disk, error) {
	buf, err := io.ReadAll(r)
	if err != nil {
		return Disk{}, fmt.Errorf("image: read d64: %w", err)
	}

	totalSectors := geom.TotalBlocks(maxTrack)
	dataLen := totalSectors * 256

	if len(buf) < dataLen {
		return Disk{}, fmt.Errorf("image: d64 too short: have %d bytes, want at least %d", len(buf), dataLen)
	}

	hasAnnex := len(buf) == dataLen+totalSectors

	disk := Disk{Tracks: make([][]SectorEntry, maxTrack)}
	pos := 0
	annexPos := dataLen
	for t := 1; t <= maxTrack; t++ {
		n := geom.SectorsForTrack(t)
		disk.Tracks[t-1] = make([]SectorEntry, n)
		for s := 0; s < n; s++ {
			copy(disk.Tracks[t-1][s].Data[:], buf[pos:pos+256])
			pos += 256
			if hasAnnex {
				disk.Tracks[t-1][s].Error = errorFromByte(buf[annexPos])
				annexPos++
			} else {
				disk.Tracks[t-1][s].Error = gcr.Ok
			}
		}
	}
	return disk, nil
}

func errorFromByte(b byte) gcr.ErrorCode {
	return gcr.ErrorCode(b)
}

// Equal reports whether two disks have byte-identical sector payloads
// (ignoring error annex), used by round-trip tests.
func (d Disk) Equal(other Disk) bool {
	if d.MaxTrack() != other.MaxTrack() {
		return false
	}
	for t := range d.Tracks {
		if len(d.Tracks[t]) != len(other.Tracks[t]) {
			return false
		}
		for s := range d.Tracks[t] {
			if !bytes.Equal(d.Tracks[t][s].Data[:], other.Tracks[t][s].Data[:]) {
				return false
			}
		}
	}
	return true
}
