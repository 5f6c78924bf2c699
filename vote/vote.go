// Package vote implements the Voting Reader: repeated physical reads of
// a half-track, grouped by identical decoded outcome, converging on the
// best available sector data.
package vote

import (
	"context"
	"fmt"

	"github.com/mbrenner/nibtools/drive"
	"github.com/mbrenner/nibtools/gcr"
)

// MaxRetries bounds the number of physical re-reads attempted per track.
const MaxRetries = 16

// GiveUpAfter is the retry count at which, if no sector has ever decoded
// Ok, the reader abandons the track rather than continuing to spin.
const GiveUpAfter = 2

// errorPenalty is subtracted from an entry's occurrence count when its
// error is not Ok, per the adjusted-score rule: a persistently confirmed
// bad read can still outvote a single spurious good one, but only after
// repeated confirmation.
const errorPenalty = 8

// Track holds the voting outcome for every sector of one physical track:
// the winning payload and the error code it was decoded with.
type Track struct {
	TrackNum int
	Sectors  []SectorResult
}

// SectorResult is the converged outcome for a single sector.
type SectorResult struct {
	Sector gcr.Sector
	Error  gcr.ErrorCode
}

// HasError reports whether any sector's chosen outcome is non-Ok.
func (t Track) HasError() bool {
	for _, s := range t.Sectors {
		if s.Error != gcr.Ok {
			return true
		}
	}
	return false
}

// entry is one distinct (payload, error) outcome observed for a sector,
// together with how many times it has been seen.
type entry struct {
	payload gcr.Sector
	err     gcr.ErrorCode
	count   int
}

func (e *entry) score() int {
	s := e.count
	if e.err != gcr.Ok {
		s -= errorPenalty
	}
	return s
}

// Reader runs the voting algorithm against a drive.Drive.
type Reader struct{}

// ReadTrack reads trackNum (1-42) by repeated physical capture, voting
// sector-by-sector until every sector converges or the retry budget is
// exhausted. It never returns a transport error unless the drive itself
// faults; an unreadable track is reflected in the returned Track's
// per-sector error codes, not as a Go error.
func (r Reader) ReadTrack(ctx context.Context, d drive.Drive, trackNum int, geom gcr.Geometry, id [2]byte) (Track, error) {
	nSectors := geom.SectorsForTrack(trackNum)
	entries := make([][]entry, nSectors)
	everOk := make([]bool, nSectors)

	halftrack := trackNum * 2
	if err := d.StepTo(halftrack); err != nil {
		return Track{}, fmt.Errorf("vote: step to halftrack %d: %w", halftrack, err)
	}

	anyOk := false
	retry := 0
	for retry = 1; retry <= MaxRetries; retry++ {
		if err := ctx.Err(); err != nil {
			return Track{}, err
		}

		raw, err := d.ReadRawTrack()
		if err != nil {
			return Track{}, fmt.Errorf("vote: read raw track %d: %w", trackNum, err)
		}

		cycleLen := len(raw)
		if pos, ok := gcr.FindTrackCycle(raw); ok {
			cycleLen = pos
		}

		for s := 0; s < nSectors; s++ {
			var sec gcr.Sector
			code := gcr.ConvertGCRSector(raw, cycleLen, &sec, trackNum, s, id)
			if code == gcr.Ok {
				everOk[s] = true
				anyOk = true
			}
			recordOutcome(&entries[s], sec, code)
		}

		allGood := true
		threshold := retry/2 + 1
		for s := 0; s < nSectors; s++ {
			if bestScore(entries[s]) <= threshold {
				allGood = false
			}
		}
		if allGood {
			break
		}

		if retry == GiveUpAfter && !anyOk {
			break
		}
	}

	track := Track{TrackNum: trackNum, Sectors: make([]SectorResult, nSectors)}
	for s := 0; s < nSectors; s++ {
		best := bestEntry(entries[s])
		track.Sectors[s] = SectorResult{Sector: best.payload, Error: best.err}
	}
	return track, nil
}

// recordOutcome finds an existing entry whose payload and error match
// byte-for-byte and increments its count, or appends a new one.
func recordOutcome(list *[]entry, sec gcr.Sector, code gcr.ErrorCode) {
	for i := range *list {
		e := &(*list)[i]
		if e.err == code && e.payload == sec {
			e.count++
			return
		}
	}
	*list = append(*list, entry{payload: sec, err: code, count: 1})
}

func bestEntry(list []entry) entry {
	var best entry
	bestScore := -1 << 31
	for _, e := range list {
		if e.score() > bestScore {
			bestScore = e.score()
			best = e
		}
	}
	return best
}

func bestScore(list []entry) int {
	max := -1 << 31
	for _, e := range list {
		if e.score() > max {
			max = e.score()
		}
	}
	return max
}
