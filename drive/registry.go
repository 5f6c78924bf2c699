package drive

import (
	"strconv"

	"go.bug.st/serial/enumerator"
)

// Factory builds a Drive from the enumerated port (or USB device, for
// VendorID==0 marker entries) details it was matched against.
type Factory func(portDetails *enumerator.PortDetails) (Drive, error)

// registration pairs a Factory with the VID/PID it claims.
type registration struct {
	VendorID  uint16
	ProductID uint16
	Factory   Factory
}

var registered []registration

// Register associates a VID/PID pair with a Factory. Called from an
// adapter package's init() so that autodetection (see Open) need not
// import every adapter package directly.
func Register(vendorID, productID uint16, factory Factory) {
	registered = append(registered, registration{vendorID, productID, factory})
}

// RegisterUSBOnly registers a Factory for an adapter that enumerates over
// USB directly rather than through a virtual serial port (VendorID/
// ProductID of 0 is a marker, not a real match).
func RegisterUSBOnly(factory Factory) {
	registered = append(registered, registration{0, 0, factory})
}

// Open scans the registered factories for one whose VID/PID matches a
// discovered USB serial port and returns that factory's result, error
// included, without trying further ports. If no port matches, it tries
// the USB-only factories in registration order and returns the first
// Drive one of them opens.
func Open() (Drive, error) {
	ports, err := enumerator.GetDetailedPortsList()
	if err != nil {
		return nil, err
	}
	for _, port := range ports {
		if !port.IsUSB {
			continue
		}
		vid, err := strconv.ParseUint(port.VID, 16, 16)
		if err != nil {
			continue
		}
		pid, err := strconv.ParseUint(port.PID, 16, 16)
		if err != nil {
			continue
		}
		for _, reg := range registered {
			if reg.VendorID == 0 && reg.ProductID == 0 {
				continue // USB-only adapters are tried separately
			}
			if reg.VendorID == uint16(vid) && reg.ProductID == uint16(pid) {
				return reg.Factory(port)
			}
		}
	}
	for _, reg := range registered {
		if reg.VendorID == 0 && reg.ProductID == 0 {
			if d, err := reg.Factory(nil); err == nil {
				return d, nil
			}
		}
	}
	return nil, ErrNoDriveFound
}
