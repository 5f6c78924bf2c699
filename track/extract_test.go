package track

import (
	"bytes"
	"testing"
)

// buildPeriodicCapture returns a raw capture made of two back-to-back
// copies of a single block: a 5-byte sync followed by a deterministic,
// sync-free data pattern. blockLen must be at least gcr.MinTrackLength
// for FindTrackCycle to have a chance of finding the repeat.
func buildPeriodicCapture(blockLen int) []byte {
	block := make([]byte, blockLen)
	for i := 0; i < 5; i++ {
		block[i] = 0xff
	}
	for i := 5; i < blockLen; i++ {
		block[i] = byte((i*37 + 11) % 251) // never 0xff
	}
	return append(append([]byte{}, block...), block...)
}

// Verify ExtractTrack recovers one full period from a clean, perfectly
// periodic capture and that the recovered payload matches the source
// block byte-for-byte.
func TestExtractTrackPeriodicCapture(t *testing.T) {
	const blockLen = 6020 // just above gcr.MinTrackLength (6016)
	raw := buildPeriodicCapture(blockLen)

	payload, cycleLen := ExtractTrack(raw)

	if cycleLen != blockLen {
		t.Fatalf("cycleLen = %d, want %d", cycleLen, blockLen)
	}
	if !bytes.Equal(payload, raw[:blockLen]) {
		t.Errorf("extracted payload does not match the source block")
	}
}

// Verify the killer-track clamp: a capture whose repeat period is at or
// beyond MaxTrackPayload is clamped to exactly MaxTrackPayload bytes
// starting from the beginning of the buffer.
func TestExtractTrackKillerClamp(t *testing.T) {
	const blockLen = MaxTrackPayload + 50
	raw := buildPeriodicCapture(blockLen)

	payload, cycleLen := ExtractTrack(raw)

	if cycleLen != MaxTrackPayload {
		t.Fatalf("cycleLen = %d, want %d (killer clamp)", cycleLen, MaxTrackPayload)
	}
	if len(payload) != MaxTrackPayload {
		t.Fatalf("len(payload) = %d, want %d", len(payload), MaxTrackPayload)
	}
}
