package gcr

import "bytes"

// MinTrackLength is the shortest plausible distance, in GCR bytes, before
// a raw over-sampled read can have wrapped around one physical revolution.
const MinTrackLength = 0x1780 // 6016

// MatchLength is the number of bytes compared immediately after each sync
// when verifying a cycle candidate. Comparing only this many bytes (and
// only right after each sync) is deliberate: a full-window memcmp fails
// under speed variation or capture noise that shifts bytes mid-track,
// while every-sync anchoring tolerates such drift.
const MatchLength = 7

// FindTrackCycle locates the offset within an over-sampled raw read (one
// revolution plus change) at which the data begins to repeat. raw is
// typically 8192 bytes (one raw half-track capture).
//
// It returns false if no candidate sync position has every subsequent
// sync-anchored 7-byte window matching the corresponding window from the
// start of the buffer.
func FindTrackCycle(raw []byte) (int, bool) {
	stop := len(raw) - MatchLength
	if stop <= MinTrackLength {
		return 0, false
	}

	syncPos := MinTrackLength
	for {
		p, ok := FindSync(raw, syncPos, stop)
		if !ok {
			return 0, false
		}
		syncPos = p

		if cyclePos, matched := tryCycle(raw, p, stop); matched {
			return cyclePos, true
		}
	}
}

// tryCycle checks whether candidate sync position p is a valid cycle
// point: walking p1 from the buffer start and p2 from p in lockstep,
// every sync-aligned MatchLength-byte window must agree.
func tryCycle(raw []byte, p int, stop int) (int, bool) {
	p1 := 0
	p2 := p
	cycleTry := p

	for p2 < stop {
		if p1+MatchLength > len(raw) || p2+MatchLength > len(raw) {
			return 0, false
		}
		if !bytes.Equal(raw[p1:p1+MatchLength], raw[p2:p2+MatchLength]) {
			return 0, false
		}

		next1, ok1 := FindSync(raw, p1, stop)
		if !ok1 {
			break
		}
		next2, ok2 := FindSync(raw, p2, stop)
		if !ok2 {
			break
		}
		p1, p2 = next1, next2
	}

	return cycleTry, true
}
