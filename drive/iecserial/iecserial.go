// Package iecserial implements drive.Drive over a USB-serial IEC bridge
// cable: a virtual COM port that speaks the same sync-preamble command
// framing as the reference parallel cable. It does not upload a
// drive-side command handler: no IEC memory-write/execute or
// LISTEN/TALK primitives are implemented here.
package iecserial

import (
	"fmt"
	"io"

	"go.bug.st/serial"
	"go.bug.st/serial/enumerator"

	"github.com/mbrenner/nibtools/drive"
)

// VendorID/ProductID identify the bridge cable's USB-serial chip.
const (
	VendorID  = 0x0403
	ProductID = 0x6001
)

const baudRate = 115200

func init() {
	drive.Register(VendorID, ProductID, NewDrive)
}

// Client wraps a serial port connection to the bridge cable.
type Client struct {
	port         serial.Port
	serialNumber string
}

// NewDrive opens the serial port and returns a drive.Drive.
func NewDrive(portDetails *enumerator.PortDetails) (drive.Drive, error) {
	mode := &serial.Mode{BaudRate: baudRate}
	port, err := serial.Open(portDetails.Name, mode)
	if err != nil {
		return nil, fmt.Errorf("iecserial: open %s: %w", portDetails.Name, err)
	}
	return &Client{port: port, serialNumber: portDetails.SerialNumber}, nil
}

// doCommand sends the sync preamble followed by cmd and its args, then
// reads a single status byte (0 means success, matching the reference
// send_par_cmd/cbm_par_read framing — there is no multi-byte ACK here,
// only a trailing par_read per step).
func (c *Client) doCommand(cmd byte, args ...byte) error {
	buf := append(append([]byte{}, drive.Preamble[:]...), cmd)
	buf = append(buf, args...)
	if _, err := c.port.Write(buf); err != nil {
		return fmt.Errorf("iecserial: write command 0x%02x: %w", cmd, err)
	}
	status := make([]byte, 1)
	if _, err := io.ReadFull(c.port, status); err != nil {
		return fmt.Errorf("iecserial: read status for command 0x%02x: %w", cmd, err)
	}
	if status[0] != 0 {
		return fmt.Errorf("iecserial: command 0x%02x failed, status 0x%02x", cmd, status[0])
	}
	return nil
}

// readBytes reads n bytes following a command that streams a response.
func (c *Client) readBytes(n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := io.ReadFull(c.port, buf); err != nil {
		return nil, fmt.Errorf("iecserial: read %d bytes: %w", n, err)
	}
	return buf, nil
}

var motorMasks = [2]byte{0x00, 0x0c} // off, on (LED + motor)

func (c *Client) MotorOn() error {
	return c.doCommand(drive.CmdMotor, 0xf3, motorMasks[1])
}

func (c *Client) MotorOff() error {
	return c.doCommand(drive.CmdMotor, 0xf3, motorMasks[0])
}

func (c *Client) StepTo(halftrack int) error {
	if halftrack < 1 || halftrack > 84 {
		return fmt.Errorf("iecserial: halftrack %d out of range", halftrack)
	}
	return c.doCommand(drive.CmdStepTo, byte(halftrack))
}

// bitrateValue/densityBranch mirror the reference zone-to-firmware-mask
// tables: bitrateValue sets the VIA bit-rate select bits, densityBranch
// picks which of the firmware's four density-comparator branches to arm.
var bitrateValue = [4]byte{0x00, 0x20, 0x40, 0x60}
var densityBranch = [4]byte{0xb1, 0xb5, 0xb7, 0xb9}

func (c *Client) SetBitrate(zone int) error {
	if zone < 0 || zone > 3 {
		return fmt.Errorf("iecserial: zone %d out of range", zone)
	}
	if err := c.doCommand(drive.CmdDensity, densityBranch[zone]); err != nil {
		return err
	}
	return c.doCommand(drive.CmdDensity, 0x9f, bitrateValue[zone])
}

func (c *Client) ReadRawTrack() ([]byte, error) {
	if err := c.doCommand(drive.CmdReadNormal); err != nil {
		return nil, err
	}
	return c.readBytes(drive.RawTrackLength)
}

func (c *Client) SampleDensityBins() ([4]int, error) {
	var bins [4]int
	if err := c.doCommand(drive.CmdScanDensity); err != nil {
		return bins, err
	}
	raw, err := c.readBytes(4)
	if err != nil {
		return bins, err
	}
	for bin := 0; bin < 4; bin++ {
		bins[3-bin] = int(raw[bin])
	}
	if _, err := c.readBytes(1); err != nil { // trailing par_read
		return bins, err
	}
	return bins, nil
}

func (c *Client) ScanKiller() (byte, error) {
	if err := c.doCommand(drive.CmdScanKiller); err != nil {
		return 0, err
	}
	info, err := c.readBytes(1)
	if err != nil {
		return 0, err
	}
	return info[0], nil
}

func (c *Client) Reset() error {
	return c.doCommand(drive.CmdReset)
}

// Close releases the underlying serial port.
func (c *Client) Close() error {
	if c.port != nil {
		return c.port.Close()
	}
	return nil
}
