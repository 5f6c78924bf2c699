package track

import (
	"github.com/mbrenner/nibtools/drive"
	"github.com/mbrenner/nibtools/gcr"
)

// goodBinThreshold is the minimum per-round bin count (out of six scan
// rounds) for a speed zone to count as "good" in a round, matching the
// reference density scan's count>=40 test.
const goodBinThreshold = 40

// densityRounds is the number of SampleDensityBins rounds taken before
// picking a winning zone.
const densityRounds = 6

// Classification bit layout: bits 0-1 zone, bit 6 no-sync, bit 7 killer.
const (
	NoSyncBit = 0x40
	KillerBit = 0x80
)

// ClassifyTrack determines the speed zone, killer, and no-sync status of
// a physical track, the same two-pass probe the reference density scan
// performs: set the track's nominal zone, check the killer/no-sync byte
// once and return immediately if the killer bit is set; otherwise vote
// across densityRounds samples to settle on the zone that actually reads
// well on this drive, then probe once more at the chosen zone.
func ClassifyTrack(d drive.Drive, trackNum int) (byte, error) {
	geom := gcr.NewGeometry1541()
	zone := geom.SpeedZoneForTrack(trackNum)

	if err := d.SetBitrate(zone); err != nil {
		return 0, err
	}

	info, err := d.ScanKiller()
	if err != nil {
		return 0, err
	}
	if info&KillerBit != 0 {
		return byte(zone) | (info & 0xc0), nil
	}

	var isGood [4]int
	var stats [4]int

	if err := d.SetBitrate(2); err != nil {
		return 0, err
	}

	for i := 0; i < densityRounds; i++ {
		bins, serr := d.SampleDensityBins()
		if serr != nil {
			return 0, serr
		}
		for bin := 0; bin < 4; bin++ {
			if bins[bin] >= goodBinThreshold {
				isGood[bin]++
			}
			stats[bin] += bins[bin]
		}
	}

	goodMax, goodBest := 0, 0
	statMax, statBest := 0, 0
	for bin := 0; bin < 4; bin++ {
		if isGood[bin] > goodMax {
			goodMax = isGood[bin]
			goodBest = bin
		}
		if stats[bin] > statMax {
			statMax = stats[bin]
			statBest = bin
		}
	}

	if goodMax > 0 {
		zone = goodBest
	} else {
		zone = statBest
	}

	if err := d.SetBitrate(zone); err != nil {
		return 0, err
	}

	info, err = d.ScanKiller()
	if err != nil {
		return 0, err
	}
	return byte(zone) | (info & 0xc0), nil
}
