// internal/eeprom/eeprom.go

// Package eeprom drives an AT24C32 serial EEPROM over a bus.Transport
// using 16-bit register pointers.
package eeprom

import (
	"time"

	"github.com/tamzrod/tinyrtc/internal/bus"
)

// Size is the part's address space, in bytes.
const Size = 4096

// PageSize is the part's physical write page. A single write transfer
// that crosses a page boundary wraps around inside the page and
// corrupts data, so Write splits transfers at these boundaries.
const PageSize = 32

// DefaultAddr is the part's 7-bit bus address with all address pins
// strapped low.
const DefaultAddr bus.Addr7 = 0x50

// writeCycleTime is the worst-case internal write cycle of the part.
const writeCycleTime = 10 * time.Millisecond

// Device is an AT24C32 handle. Like the clock driver it caches
// nothing; contents live in the hardware only.
type Device struct {
	mem   bus.Region
	sleep func(time.Duration)
}

func New(tr bus.Transport, addr bus.Addr7) *Device {
	return &Device{
		mem:   bus.NewRegion16(tr, addr, Size),
		sleep: time.Sleep,
	}
}

// Read returns n bytes starting at off. Sequential reads cross page
// boundaries freely on these parts, so one transfer suffices. Returns
// bus.ErrOutOfRange, without touching the bus, when n >= Size.
func (d *Device) Read(off uint16, n int) ([]byte, error) {
	buf := make([]byte, n)
	if err := d.mem.ReadAt(off, buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// Write stores p starting at off, splitting the transfer so that no
// single write crosses a PageSize boundary, and waiting out the
// device's internal write cycle between pages. Returns
// bus.ErrOutOfRange, without touching the bus, when len(p) >= Size.
func (d *Device) Write(off uint16, p []byte) error {
	if len(p) >= Size {
		return bus.ErrOutOfRange
	}

	for len(p) > 0 {
		n := PageSize - int(off)%PageSize
		if n > len(p) {
			n = len(p)
		}
		if err := d.mem.WriteAt(off, p[:n]); err != nil {
			return err
		}
		d.sleep(writeCycleTime)

		off += uint16(n)
		p = p[n:]
	}
	return nil
}
