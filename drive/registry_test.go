package drive

import (
	"errors"
	"testing"

	"go.bug.st/serial/enumerator"

	"github.com/mbrenner/nibtools/drive/fake"
)

// Verify Open falls back to a USB-only factory when no serial port on
// the system matches any registered VID/PID pair (the common case when
// running this test suite with no hardware attached).
func TestOpenFallsBackToUSBOnlyFactory(t *testing.T) {
	saved := registered
	defer func() { registered = saved }()
	registered = nil

	called := false
	RegisterUSBOnly(func(_ *enumerator.PortDetails) (Drive, error) {
		called = true
		return fake.New(), nil
	})

	d, err := Open()
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if !called {
		t.Errorf("USB-only factory was never invoked")
	}
	if d == nil {
		t.Errorf("Open returned a nil Drive despite no error")
	}
}

// Verify Open reports ErrNoDriveFound when nothing is registered at all.
func TestOpenNoFactoriesRegistered(t *testing.T) {
	saved := registered
	defer func() { registered = saved }()
	registered = nil

	_, err := Open()
	if !errors.Is(err, ErrNoDriveFound) {
		t.Errorf("Open() error = %v, want ErrNoDriveFound", err)
	}
}
