// Convert.go implements the toolkit's four data-flow operations: raw
// capture to NIB, NIB to D64, NIB to G64, and G64 to D64. Each is built
// directly from the gcr/track/vote primitives; this file only wires
// them together and handles the container I/O.
package image

import (
	"context"
	"fmt"

	"github.com/mbrenner/nibtools/drive"
	"github.com/mbrenner/nibtools/gcr"
	"github.com/mbrenner/nibtools/track"
	"github.com/mbrenner/nibtools/vote"
)

// halftrackSlot converts a track number (1-42) to its 0-indexed slot in
// an 84-entry half-track array (slot i holds half-track i+1).
func halftrackSlot(trackNum int) int {
	return trackNum*2 - 1
}

// DirectoryTrack is the track whose sector 0 header carries the disk ID
// every other sector's header is checked against.
const DirectoryTrack = 18

// CaptureOptions controls a raw-capture-to-NIB run.
type CaptureOptions struct {
	MaxTrack    int  // 35 or 40
	HalfTracks  bool // capture every half-track, not just whole tracks
	ScanDensity bool // honour track.ClassifyTrack's per-track zone choice
	ResetFirst  bool // send a Reset before starting
	GEOS12      bool // force density 3 on track 36 1/2 (halftrack 73)
}

// CaptureNIB drives d through every requested (half-)track, choosing for
// each the best of up to vote.MaxRetries raw reads — the one whose
// sector parse yields the most Ok sectors — and assembles the resulting
// captures into a NIB image. This is the read side of the toolkit: the
// only operation that talks to real hardware.
func CaptureNIB(ctx context.Context, d drive.Drive, opts CaptureOptions) (NIB, error) {
	geom := gcr.NewGeometry1541()

	if opts.ResetFirst {
		if err := d.Reset(); err != nil {
			return NIB{}, fmt.Errorf("image: reset: %w", err)
		}
	}
	if err := d.MotorOn(); err != nil {
		return NIB{}, fmt.Errorf("image: motor on: %w", err)
	}
	defer d.MotorOff()

	var n NIB
	step := 2
	if opts.HalfTracks {
		step = 1
	}

	for halftrack := 2; halftrack <= opts.MaxTrack*2; halftrack += step {
		if err := ctx.Err(); err != nil {
			return NIB{}, err
		}

		trackNum := halftrack / 2
		zone := geom.SpeedZoneForTrack(trackNum)
		var flags byte

		if err := d.StepTo(halftrack); err != nil {
			return NIB{}, fmt.Errorf("image: step to halftrack %d: %w", halftrack, err)
		}

		if opts.GEOS12 && halftrack == 73 {
			zone = 3
		} else if opts.ScanDensity {
			classification, err := track.ClassifyTrack(d, trackNum)
			if err != nil {
				return NIB{}, fmt.Errorf("image: classify track %d: %w", trackNum, err)
			}
			flags = classification
			zone = int(classification & 0x03)
		}
		flags |= byte(zone)

		if err := d.SetBitrate(zone); err != nil {
			return NIB{}, fmt.Errorf("image: set bitrate track %d: %w", trackNum, err)
		}

		best, err := bestRawCapture(d, trackNum, geom)
		if err != nil {
			return NIB{}, err
		}

		n.Entries = append(n.Entries, NibEntry{Halftrack: halftrack, Flags: flags})
		n.Raw = append(n.Raw, best)
	}

	return n, nil
}

// bestRawCapture takes up to vote.MaxRetries raw reads of the track
// currently under the head and returns the one whose sector parse scores
// the most Ok sectors.
func bestRawCapture(d drive.Drive, trackNum int, geom gcr.Geometry) ([]byte, error) {
	nSectors := geom.SectorsForTrack(trackNum)

	var best []byte
	bestScore := -1

	for attempt := 0; attempt < vote.MaxRetries; attempt++ {
		raw, err := d.ReadRawTrack()
		if err != nil {
			return nil, fmt.Errorf("image: read raw track %d: %w", trackNum, err)
		}

		cycleLen := len(raw)
		if pos, ok := gcr.FindTrackCycle(raw); ok {
			cycleLen = pos
		}

		score := 0
		var sec gcr.Sector
		for s := 0; s < nSectors; s++ {
			if gcr.ConvertGCRSector(raw, cycleLen, &sec, trackNum, s, [2]byte{}) == gcr.Ok {
				score++
			}
		}

		if score > bestScore {
			bestScore = score
			best = raw
		}
		if score == nSectors {
			break
		}
	}

	return best, nil
}

// NIBToD64 decodes every captured whole-track raw capture in n directly
// (one sector parse per sector, no cross-read voting — n already holds
// a single concrete physical capture per track) into a Disk.
func NIBToD64(n NIB, maxTrack int) (Disk, error) {
	geom := gcr.NewGeometry1541()

	raw := rawByTrack(n)
	idRaw, ok := raw[DirectoryTrack]
	if !ok {
		return Disk{}, fmt.Errorf("image: nib has no capture for directory track %d", DirectoryTrack)
	}
	idCycle := idRaw
	if pos, ok := gcr.FindTrackCycle(idRaw); ok {
		idCycle = idRaw[:pos]
	}
	id, ok := gcr.ExtractID(idCycle)
	if !ok {
		return Disk{}, fmt.Errorf("image: could not locate disk id on track %d", DirectoryTrack)
	}

	disk := Disk{Tracks: make([][]SectorEntry, maxTrack)}
	for t := 1; t <= maxTrack; t++ {
		nSectors := geom.SectorsForTrack(t)
		disk.Tracks[t-1] = make([]SectorEntry, nSectors)

		trackRaw, ok := raw[t]
		if !ok {
			for s := 0; s < nSectors; s++ {
				var sec gcr.Sector
				code := gcr.ConvertGCRSector(nil, 0, &sec, t, s, id)
				disk.Tracks[t-1][s] = SectorEntry{Data: sec.DataArray(), Error: code}
			}
			continue
		}

		cycleLen := len(trackRaw)
		if pos, ok := gcr.FindTrackCycle(trackRaw); ok {
			cycleLen = pos
		}
		for s := 0; s < nSectors; s++ {
			var sec gcr.Sector
			code := gcr.ConvertGCRSector(trackRaw, cycleLen, &sec, t, s, id)
			disk.Tracks[t-1][s] = SectorEntry{Data: sec.DataArray(), Error: code}
		}
	}
	return disk, nil
}

// NIBToG64 packs every captured half-track's raw capture into a
// canonical G64 slot via track.ExtractTrack.
func NIBToG64(n NIB) (G64, error) {
	var g G64
	for i, e := range n.Entries {
		if e.Halftrack < 1 || e.Halftrack > g64MaxSlots {
			return G64{}, fmt.Errorf("image: nib half-track %d out of range", e.Halftrack)
		}
		payload, _ := track.ExtractTrack(n.Raw[i])
		g.Tracks[e.Halftrack-1] = payload
		g.Zones[e.Halftrack-1] = int(e.Flags & 0x03)
	}
	return g, nil
}

// G64ToD64 decodes every whole-track slot present in g into a Disk.
func G64ToD64(g G64, maxTrack int) (Disk, error) {
	geom := gcr.NewGeometry1541()

	idSlot := halftrackSlot(DirectoryTrack)
	if idSlot >= len(g.Tracks) || g.Tracks[idSlot] == nil {
		return Disk{}, fmt.Errorf("image: g64 has no slot for directory track %d", DirectoryTrack)
	}
	id, ok := gcr.ExtractID(g.Tracks[idSlot])
	if !ok {
		return Disk{}, fmt.Errorf("image: could not locate disk id on track %d", DirectoryTrack)
	}

	disk := Disk{Tracks: make([][]SectorEntry, maxTrack)}
	for t := 1; t <= maxTrack; t++ {
		n := geom.SectorsForTrack(t)
		disk.Tracks[t-1] = make([]SectorEntry, n)

		slot := halftrackSlot(t)
		var trackGCR []byte
		if slot < len(g.Tracks) {
			trackGCR = g.Tracks[slot]
		}

		for s := 0; s < n; s++ {
			var sec gcr.Sector
			code := gcr.ConvertGCRSector(trackGCR, len(trackGCR), &sec, t, s, id)
			disk.Tracks[t-1][s] = SectorEntry{Data: sec.DataArray(), Error: code}
		}
	}
	return disk, nil
}

func rawByTrack(n NIB) map[int][]byte {
	m := make(map[int][]byte, len(n.Entries))
	for i, e := range n.Entries {
		if e.Halftrack%2 == 0 {
			m[e.Halftrack/2] = n.Raw[i]
		}
	}
	return m
}
