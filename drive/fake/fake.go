// Package fake provides an in-memory drive.Drive double for tests: it
// serves ReadRawTrack captures from pre-seeded GCR buffers instead of
// talking to real hardware.
package fake

import (
	"fmt"

	"github.com/mbrenner/nibtools/drive"
)

// Drive is a drive.Drive backed by a fixed set of tracks, keyed by
// halftrack number. Missing halftracks read back as all-zero bytes.
type Drive struct {
	Tracks map[int][]byte

	// DensityBins, if set, is returned verbatim by SampleDensityBins
	// regardless of which zone is currently selected.
	DensityBins [4]int
	// Killers lists halftracks that ScanKiller should report as killer
	// tracks (bit 7 set in the returned probe byte).
	Killers map[int]bool

	halftrack int
	zone      int
	motorOn   bool

	// MotorOnCalls, ResetCalls count invocations, useful for assertions
	// in tests exercising retry/orchestration logic.
	MotorOnCalls int
	ResetCalls   int
}

// New returns an empty fake Drive.
func New() *Drive {
	return &Drive{Tracks: make(map[int][]byte), Killers: make(map[int]bool)}
}

func (d *Drive) MotorOn() error {
	d.motorOn = true
	d.MotorOnCalls++
	return nil
}

func (d *Drive) MotorOff() error {
	d.motorOn = false
	return nil
}

func (d *Drive) StepTo(halftrack int) error {
	if halftrack < 1 || halftrack > 84 {
		return fmt.Errorf("fake: halftrack %d out of range", halftrack)
	}
	d.halftrack = halftrack
	return nil
}

func (d *Drive) SetBitrate(zone int) error {
	if zone < 0 || zone > 3 {
		return fmt.Errorf("fake: zone %d out of range", zone)
	}
	d.zone = zone
	return nil
}

func (d *Drive) ReadRawTrack() ([]byte, error) {
	buf := make([]byte, drive.RawTrackLength)
	src, ok := d.Tracks[d.halftrack]
	if !ok {
		return buf, nil
	}
	n := copy(buf, src)
	for n < len(buf) {
		n += copy(buf[n:], src)
	}
	return buf, nil
}

func (d *Drive) SampleDensityBins() ([4]int, error) {
	return d.DensityBins, nil
}

func (d *Drive) ScanKiller() (byte, error) {
	if d.Killers[d.halftrack] {
		return 0x80, nil
	}
	return 0x00, nil
}

func (d *Drive) Reset() error {
	d.ResetCalls++
	return nil
}
