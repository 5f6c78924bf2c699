package track

import (
	"testing"

	"github.com/mbrenner/nibtools/drive/fake"
)

// Verify ClassifyTrack short-circuits on the first killer probe and never
// runs the six-round density sampling.
func TestClassifyTrackKillerShortCircuit(t *testing.T) {
	d := fake.New()
	d.Killers[2*18] = true
	if err := d.StepTo(2 * 18); err != nil {
		t.Fatalf("StepTo: %v", err)
	}

	classification, err := ClassifyTrack(d, 18)
	if err != nil {
		t.Fatalf("ClassifyTrack: %v", err)
	}
	if classification&KillerBit == 0 {
		t.Errorf("classification %#02x missing killer bit", classification)
	}
}

// Verify ClassifyTrack picks the zone with the most "good" rounds when at
// least one bin consistently samples above the good-bin threshold.
func TestClassifyTrackPicksGoodZone(t *testing.T) {
	d := fake.New()
	d.DensityBins = [4]int{10, 50, 20, 0}

	classification, err := ClassifyTrack(d, 18)
	if err != nil {
		t.Fatalf("ClassifyTrack: %v", err)
	}
	if classification&KillerBit != 0 {
		t.Errorf("classification %#02x unexpectedly has killer bit set", classification)
	}
	if zone := classification & 0x03; zone != 1 {
		t.Errorf("chosen zone = %d, want 1 (bin with count >= goodBinThreshold)", zone)
	}
}

// Verify ClassifyTrack falls back to the highest cumulative bin sum when
// no bin ever reaches the good-bin threshold.
func TestClassifyTrackFallsBackToStatistics(t *testing.T) {
	d := fake.New()
	d.DensityBins = [4]int{5, 30, 12, 2}

	classification, err := ClassifyTrack(d, 18)
	if err != nil {
		t.Fatalf("ClassifyTrack: %v", err)
	}
	if zone := classification & 0x03; zone != 1 {
		t.Errorf("chosen zone = %d, want 1 (highest cumulative sum)", zone)
	}
}
