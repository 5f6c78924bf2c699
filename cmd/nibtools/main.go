// Command nibtools reads, reconstructs, and converts Commodore 1541/1571
// floppy disk images captured over a GCR-capable USB or serial bridge.
package main

import (
	"github.com/mbrenner/nibtools/cli"

	// Blank-imported for their init() registration with the drive
	// registry; cli/root.go resolves a concrete Drive by VID/PID only
	// when a command actually needs hardware.
	_ "github.com/mbrenner/nibtools/drive/iecserial"
	_ "github.com/mbrenner/nibtools/drive/zoomfloppy"
)

func main() {
	cli.Execute()
}
