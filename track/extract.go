// Package track implements the track extractor (canonical G64 packer) and
// the density/killer classifier.
package track

import "github.com/mbrenner/nibtools/gcr"

// MaxTrackPayload bounds the length a packed GCR track payload can reach;
// it also doubles as the "killer track" clamp value used by the
// extractor when a cycle can't be meaningfully bounded.
const MaxTrackPayload = 7900

// isSectorZeroFingerprint recognises the GCR-encoded (not decoded) byte
// pattern that immediately follows a sync for a sector-0 block header
// (header mark 0x08, sector 0) on any track. Matching on the raw GCR bytes
// avoids decoding every candidate header just to find the anchor.
func isSectorZeroFingerprint(raw []byte, pos int) bool {
	if pos+4 > len(raw) {
		return false
	}
	return raw[pos] == 0x52 && (raw[pos+2]&0x0f) == 0x05 && (raw[pos+3]&0xfc) == 0x28
}

// ExtractTrack produces a canonical, sync-aligned GCR payload from a raw
// over-sampled capture, suitable for a G64 slot. It returns the payload
// bytes and the cycle length (one physical revolution's worth of bytes).
//
// Procedure, per the reference track packer:
//  1. Walk every sync, tracking the sector-0 anchor and the position that
//     ends the single longest inter-sync run.
//  2. Locate the cycle point (gcr.FindTrackCycle).
//  3. Prefer the sector-0 anchor over the longest-run anchor when the two
//     are within 64 bytes of each other (guarantees a recognisable track
//     head). Clamp to the killer-track special case when the cycle looks
//     unbounded.
//  4. Back the chosen start up to the first byte of its sync.
//  5. Emit cycleLen bytes starting at the chosen start, wrapping through
//     the beginning of the buffer once.
//
// When gcr.FindTrackCycle finds no cycle, extractTrackFallback is used
// instead, with the same MaxTrackPayload clamp applied to its result.
func ExtractTrack(raw []byte) ([]byte, int) {
	cyclePos, ok := gcr.FindTrackCycle(raw)
	if !ok {
		payload, cycleLen := extractTrackFallback(raw)
		if cycleLen >= MaxTrackPayload {
			return payload[:MaxTrackPayload], MaxTrackPayload
		}
		return payload, cycleLen
	}
	cycleLen := cyclePos

	var sectorZeroPos, sectorZeroLen int
	haveSectorZero := false
	maxLenPos := 0
	maxBlockLen := 0

	lastSync := 0
	pos := 0
	for {
		p, found := gcr.FindSync(raw, pos, len(raw))
		if !found {
			break
		}
		if isSectorZeroFingerprint(raw, p) {
			sectorZeroPos = p
			sectorZeroLen = p - lastSync
			haveSectorZero = true
		}
		blockLen := p - lastSync
		if blockLen > maxBlockLen {
			maxBlockLen = blockLen
			maxLenPos = p
		}
		lastSync = p
		pos = p
		if pos >= cycleLen {
			break
		}
	}

	startPos := maxLenPos
	if haveSectorZero && sectorZeroLen+64 >= maxBlockLen {
		startPos = sectorZeroPos
	}

	if cycleLen >= MaxTrackPayload {
		startPos = 0
		cycleLen = MaxTrackPayload
	} else {
		startPos = backUpToSyncStart(raw, startPos, cycleLen)
	}

	return wrapCopy(raw, startPos, cycleLen), cycleLen
}

// backUpToSyncStart walks backwards from pos over 0xff bytes (wrapping
// within the first cycleLen bytes of raw) to find the first byte of the
// sync that precedes pos.
func backUpToSyncStart(raw []byte, pos int, cycleLen int) int {
	if cycleLen <= 0 {
		return pos
	}
	for {
		pos--
		if pos < 0 {
			pos += cycleLen
		}
		if raw[pos] != 0xff {
			break
		}
	}
	pos++
	if pos >= cycleLen {
		pos = 0
	}
	return pos
}

// wrapCopy emits cycleLen bytes starting at startPos, wrapping through
// the start of raw once if necessary.
func wrapCopy(raw []byte, startPos int, cycleLen int) []byte {
	out := make([]byte, cycleLen)
	n := copy(out, raw[startPos:])
	if n < cycleLen {
		copy(out[n:], raw[:cycleLen-n])
	}
	return out
}

// extractTrackFallback performs a sliding MatchLength-extended (50-byte)
// memcmp from start+MinTrackLength onward, copying start..cyclePos
// directly with no rotation. Used when the sync-anchored cycle detector
// finds no qualifying candidate (e.g. very noisy or killer-adjacent
// captures).
func extractTrackFallback(raw []byte) ([]byte, int) {
	const matchWindow = 50
	start := gcr.MinTrackLength
	stop := len(raw) - matchWindow

	for pos := start; pos < stop; pos++ {
		if matches(raw, 0, pos, matchWindow) {
			cycleLen := pos
			out := make([]byte, cycleLen)
			copy(out, raw[:cycleLen])
			return out, cycleLen
		}
	}
	return nil, 0
}

func matches(raw []byte, a, b, n int) bool {
	if a+n > len(raw) || b+n > len(raw) {
		return false
	}
	for i := 0; i < n; i++ {
		if raw[a+i] != raw[b+i] {
			return false
		}
	}
	return true
}
