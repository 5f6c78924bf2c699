// Package image implements the three on-disk container formats the
// toolkit moves GCR data through: D64 (decoded sectors), G64 (raw GCR
// per-track slots), and NIB (raw oversampled captures).
package image

import (
	"path/filepath"
	"strings"
)

// Format identifies a disk image container.
type Format int

const (
	FormatUnknown Format = iota
	FormatD64
	FormatG64
	FormatNIB
)

func (f Format) String() string {
	switch f {
	case FormatD64:
		return "d64"
	case FormatG64:
		return "g64"
	case FormatNIB:
		return "nib"
	default:
		return "unknown"
	}
}

// DetectFormat identifies a container format from a file name's
// extension; anything other than .d64/.g64 is treated as NIB, matching
// the CLI surface's "else NIB" rule.
func DetectFormat(name string) Format {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".d64":
		return FormatD64
	case ".g64":
		return FormatG64
	default:
		return FormatNIB
	}
}
