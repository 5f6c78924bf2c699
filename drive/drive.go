// Package drive defines the narrow command-ABI interface the core GCR,
// track, and vote packages use to talk to a physical (or simulated) 1541
// drive. The core never depends on a transport directly — only on this
// interface — so it can run unmodified against a USB adapter, a serial
// bridge cable, or the in-memory fake used in tests.
package drive

// Command opcodes for the parallel/IEC command ABI, sent as a single byte
// following the sync preamble (see Preamble). Named and numbered to match
// the reference cable firmware.
const (
	CmdStepTo      = 0x00
	CmdMotor       = 0x01
	CmdReset       = 0x02
	CmdReadNormal  = 0x03
	CmdDensity     = 0x05
	CmdScanKiller  = 0x06
	CmdScanDensity = 0x07
	CmdReadWoSync  = 0x08
	CmdTest        = 0x0a
	CmdSoftStep    = 0x10
)

// Preamble is sent before every command byte: a fixed four-byte sync
// sequence the drive-side firmware uses to resynchronize its command
// parser against line noise.
var Preamble = [4]byte{0x00, 0x55, 0xaa, 0xff}

// RawTrackLength is the size of one ReadRawTrack capture: more than one
// revolution's worth of bytes in every speed zone (the longest nominal
// track, zone 3, is 7692 bytes), enough that the track extractor always
// sees a full cycle.
const RawTrackLength = 8192

// Drive is the command ABI the core depends on. Implementations translate
// these calls into whatever wire protocol the underlying cable speaks;
// the core does not know or care which one is in use.
type Drive interface {
	// MotorOn spins up the drive motor and turns on the head-load LED.
	MotorOn() error
	// MotorOff stops the drive motor.
	MotorOff() error
	// StepTo moves the head to the given halftrack (1-84).
	StepTo(halftrack int) error
	// SetBitrate selects one of the four speed zones (0-3).
	SetBitrate(zone int) error
	// ReadRawTrack captures one RawTrackLength-byte oversampled read of
	// the track currently under the head.
	ReadRawTrack() ([]byte, error)
	// SampleDensityBins takes one round of the density scan, returning
	// the raw byte-count seen in each of the four speed-zone bins.
	SampleDensityBins() ([4]int, error)
	// ScanKiller reports the raw killer/no-sync probe byte: bit 7 set
	// means a killer track (no usable sync at all, e.g. some copy
	// protection schemes), bit 6 set means no-sync.
	ScanKiller() (byte, error)
	// Reset reinitializes the drive-side firmware state machine.
	Reset() error
}
