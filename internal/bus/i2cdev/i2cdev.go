// internal/bus/i2cdev/i2cdev.go
package i2cdev

import (
	"fmt"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"

	"github.com/tamzrod/tinyrtc/internal/bus"
)

// Transport implements bus.Transport over a native Linux I2C adapter.
// This adapter is geometry-only: it prefixes the register pointer and
// hands the transfer to the kernel driver.
type Transport struct {
	bus i2c.BusCloser
}

// New opens the named I2C bus ("1", "/dev/i2c-1", or "" for the first
// one registered by the host).
func New(name string) (*Transport, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("i2cdev: host init: %w", err)
	}
	b, err := i2creg.Open(name)
	if err != nil {
		return nil, fmt.Errorf("i2cdev: open %q: %w", name, err)
	}
	return &Transport{bus: b}, nil
}

// Close releases the underlying bus handle.
func (t *Transport) Close() error {
	return t.bus.Close()
}

func (t *Transport) dev(addr bus.Addr7) *i2c.Dev {
	return &i2c.Dev{Bus: t.bus, Addr: uint16(addr)}
}

func (t *Transport) WriteBlock(dev bus.Addr7, reg uint8, p []byte) error {
	w := make([]byte, 1+len(p))
	w[0] = reg
	copy(w[1:], p)
	return t.dev(dev).Tx(w, nil)
}

func (t *Transport) ReadBlock(dev bus.Addr7, reg uint8, p []byte) error {
	return t.dev(dev).Tx([]byte{reg}, p)
}

func (t *Transport) WriteBlock16(dev bus.Addr7, reg uint16, p []byte) error {
	w := make([]byte, 2+len(p))
	w[0] = byte(reg >> 8)
	w[1] = byte(reg)
	copy(w[2:], p)
	return t.dev(dev).Tx(w, nil)
}

func (t *Transport) ReadBlock16(dev bus.Addr7, reg uint16, p []byte) error {
	return t.dev(dev).Tx([]byte{byte(reg >> 8), byte(reg)}, p)
}
