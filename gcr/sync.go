package gcr

// FindSync advances past any non-sync bytes starting at pos, then past the
// following run of 0xff bytes, returning the position of the first
// non-0xff byte after the sync and true. It reports false if the scan
// reaches end while still inside or before a sync (no sync found).
//
// A sync is any maximal run of one or more 0xff bytes; byte-aligned
// granularity only, matching the drive's byte-level view of the bitstream.
func FindSync(buf []byte, pos int, end int) (int, bool) {
	if end > len(buf) {
		end = len(buf)
	}
	for pos < end && buf[pos] != 0xff {
		pos++
	}
	for pos < end && buf[pos] == 0xff {
		pos++
	}
	return pos, pos < end
}
