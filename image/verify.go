package image

import "github.com/mbrenner/nibtools/gcr"

// VerifyReport summarizes a post-conversion verification pass: how many
// sectors are Ok, how many carry a non-Ok error code (the codes a D64
// error annex would record), and the first non-Ok code in track/sector
// order.
type VerifyReport struct {
	OkSectors    int
	ErrorSectors int
	FirstError   gcr.ErrorCode
}

// Clean reports whether every sector in the verified disk decoded Ok.
func (r VerifyReport) Clean() bool {
	return r.ErrorSectors == 0
}

// VerifyDisk re-examines an already-built Disk's sector error codes and
// reports how many are Ok versus in error. It does not re-run the GCR
// parse — that already happened when the Disk was built — it exists so
// callers (the CLI's n2d/g2d commands) can print a one-line verification
// summary without threading per-sector error codes through themselves.
func VerifyDisk(d Disk) VerifyReport {
	var r VerifyReport
	for _, track := range d.Tracks {
		for _, s := range track {
			if s.Error == gcr.Ok {
				r.OkSectors++
				continue
			}
			r.ErrorSectors++
			if r.ErrorSectors == 1 {
				r.FirstError = s.Error
			}
		}
	}
	return r
}
