package drive

import "errors"

// ErrNoDriveFound is returned by Open when no registered adapter claims
// any enumerated port and no USB-only adapter could be opened either.
var ErrNoDriveFound = errors.New("drive: no compatible adapter found")
