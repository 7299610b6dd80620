// internal/bus/bus.go
package bus

import "errors"

// Addr7 is a 7-bit device address on the two-wire bus.
// It does not encompass the R/W bit.
type Addr7 uint8

// Transport is the raw bus contract the drivers consume.
// Each call blocks until the transfer completes or fails and is
// all-or-nothing: no partial transfer counts are reported.
// Transports perform no retries; a failure is reported once and
// handling it is the caller's responsibility.
type Transport interface {
	// 8-bit register pointer devices.
	WriteBlock(dev Addr7, reg uint8, p []byte) error
	ReadBlock(dev Addr7, reg uint8, p []byte) error

	// 16-bit register pointer devices.
	WriteBlock16(dev Addr7, reg uint16, p []byte) error
	ReadBlock16(dev Addr7, reg uint16, p []byte) error
}

// ErrOutOfRange reports a request whose length meets or exceeds the
// region capacity. The check is strict: length == capacity is rejected.
var ErrOutOfRange = errors.New("bus: length out of range")
