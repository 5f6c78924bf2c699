// Package zoomfloppy implements drive.Drive over a USB-bulk xum1541-class
// adapter using github.com/google/gousb, modeled on the reference cable
// adapters' doCommand/ack-byte pattern but carried over USB bulk
// transfers instead of a serial port.
package zoomfloppy

import (
	"fmt"

	"github.com/google/gousb"
	"go.bug.st/serial/enumerator"

	"github.com/mbrenner/nibtools/drive"
)

// VendorID/ProductID identify the xum1541-class USB floppy bridge.
const (
	VendorID  = 0x16d0
	ProductID = 0x0504
)

const (
	bulkOutEndpoint = 1
	bulkInEndpoint  = 1
)

func init() {
	drive.RegisterUSBOnly(openFirst)
}

// Client wraps a USB bulk connection to a xum1541-class adapter.
type Client struct {
	ctx   *gousb.Context
	dev   *gousb.Device
	done  func()
	outEP *gousb.OutEndpoint
	inEP  *gousb.InEndpoint
}

// openFirst opens the first attached zoomfloppy-class device found,
// ignoring the serial-port details argument (registered as a USB-only
// factory — see drive.RegisterUSBOnly).
func openFirst(_ *enumerator.PortDetails) (drive.Drive, error) {
	ctx := gousb.NewContext()

	dev, err := ctx.OpenDeviceWithVIDPID(gousb.ID(VendorID), gousb.ID(ProductID))
	if err != nil {
		ctx.Close()
		return nil, fmt.Errorf("zoomfloppy: open device: %w", err)
	}
	if dev == nil {
		ctx.Close()
		return nil, fmt.Errorf("zoomfloppy: no device found for VID:PID %04x:%04x", VendorID, ProductID)
	}

	if err := dev.SetAutoDetach(true); err != nil {
		dev.Close()
		ctx.Close()
		return nil, fmt.Errorf("zoomfloppy: set auto detach: %w", err)
	}

	intf, done, err := dev.DefaultInterface()
	if err != nil {
		dev.Close()
		ctx.Close()
		return nil, fmt.Errorf("zoomfloppy: claim interface: %w", err)
	}

	outEP, err := intf.OutEndpoint(bulkOutEndpoint)
	if err != nil {
		done()
		dev.Close()
		ctx.Close()
		return nil, fmt.Errorf("zoomfloppy: out endpoint: %w", err)
	}
	inEP, err := intf.InEndpoint(bulkInEndpoint)
	if err != nil {
		done()
		dev.Close()
		ctx.Close()
		return nil, fmt.Errorf("zoomfloppy: in endpoint: %w", err)
	}

	return &Client{ctx: ctx, dev: dev, done: done, outEP: outEP, inEP: inEP}, nil
}

// doCommand sends the sync preamble, the opcode, and any args as a single
// bulk-out transfer, then reads back a single status byte.
func (c *Client) doCommand(cmd byte, args ...byte) error {
	buf := append(append([]byte{}, drive.Preamble[:]...), cmd)
	buf = append(buf, args...)
	if _, err := c.outEP.Write(buf); err != nil {
		return fmt.Errorf("zoomfloppy: write command 0x%02x: %w", cmd, err)
	}
	status := make([]byte, 1)
	if _, err := c.inEP.Read(status); err != nil {
		return fmt.Errorf("zoomfloppy: read status for command 0x%02x: %w", cmd, err)
	}
	if status[0] != 0 {
		return fmt.Errorf("zoomfloppy: command 0x%02x failed, status 0x%02x", cmd, status[0])
	}
	return nil
}

func (c *Client) readBytes(n int) ([]byte, error) {
	buf := make([]byte, n)
	read := 0
	for read < n {
		m, err := c.inEP.Read(buf[read:])
		if err != nil {
			return nil, fmt.Errorf("zoomfloppy: read %d bytes: %w", n, err)
		}
		if m == 0 {
			return nil, fmt.Errorf("zoomfloppy: short read (%d/%d bytes)", read, n)
		}
		read += m
	}
	return buf, nil
}

var bitrateValue = [4]byte{0x00, 0x20, 0x40, 0x60}
var densityBranch = [4]byte{0xb1, 0xb5, 0xb7, 0xb9}

func (c *Client) MotorOn() error {
	return c.doCommand(drive.CmdMotor, 0xf3, 0x0c)
}

func (c *Client) MotorOff() error {
	return c.doCommand(drive.CmdMotor, 0xf3, 0x00)
}

func (c *Client) StepTo(halftrack int) error {
	if halftrack < 1 || halftrack > 84 {
		return fmt.Errorf("zoomfloppy: halftrack %d out of range", halftrack)
	}
	return c.doCommand(drive.CmdStepTo, byte(halftrack))
}

func (c *Client) SetBitrate(zone int) error {
	if zone < 0 || zone > 3 {
		return fmt.Errorf("zoomfloppy: zone %d out of range", zone)
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
	if _, err := c.readBytes(1); err != nil {
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

// Close releases the USB interface claim, device handle, and context.
func (c *Client) Close() error {
	if c.done != nil {
		c.done()
	}
	var err error
	if c.dev != nil {
		err = c.dev.Close()
	}
	if c.ctx != nil {
		c.ctx.Close()
	}
	return err
}
