// internal/bus/sim/sim.go
package sim

import (
	"fmt"

	"github.com/tamzrod/tinyrtc/internal/bus"
)

// Device is a register-addressed simulated peripheral.
type Device interface {
	Read(reg uint16, p []byte) error
	Write(reg uint16, p []byte) error
}

// Transfer records the geometry of one bus transfer.
type Transfer struct {
	Dev   bus.Addr7
	Reg   uint16
	Width uint8 // register pointer width in bits: 8 or 16
	Write bool
	Len   int
}

// Bus is an in-memory bus.Transport with attached register-file
// devices. It records transfer geometry and supports fault injection.
type Bus struct {
	devs map[bus.Addr7]Device

	// Transfers holds the geometry of every transfer issued, in order,
	// including failed ones.
	Transfers []Transfer

	faults []error
}

// NewBus returns an empty simulated bus. Addressing a device that was
// never attached fails the same way real hardware does: no acknowledge.
func NewBus() *Bus {
	return &Bus{devs: make(map[bus.Addr7]Device)}
}

// Attach connects a device at the given address, replacing any
// previous occupant.
func (b *Bus) Attach(addr bus.Addr7, dev Device) {
	b.devs[addr] = dev
}

// InjectFault queues err to be returned by the next transfer. Queued
// faults are consumed in order before any device is touched.
func (b *Bus) InjectFault(err error) {
	b.faults = append(b.faults, err)
}

func (b *Bus) transfer(t Transfer, p []byte) error {
	b.Transfers = append(b.Transfers, t)

	if len(b.faults) > 0 {
		err := b.faults[0]
		b.faults = b.faults[1:]
		return err
	}

	dev, ok := b.devs[t.Dev]
	if !ok {
		return fmt.Errorf("sim: no ack from device 0x%02x", uint8(t.Dev))
	}
	if t.Write {
		return dev.Write(t.Reg, p)
	}
	return dev.Read(t.Reg, p)
}

func (b *Bus) WriteBlock(dev bus.Addr7, reg uint8, p []byte) error {
	return b.transfer(Transfer{Dev: dev, Reg: uint16(reg), Width: 8, Write: true, Len: len(p)}, p)
}

func (b *Bus) ReadBlock(dev bus.Addr7, reg uint8, p []byte) error {
	return b.transfer(Transfer{Dev: dev, Reg: uint16(reg), Width: 8, Len: len(p)}, p)
}

func (b *Bus) WriteBlock16(dev bus.Addr7, reg uint16, p []byte) error {
	return b.transfer(Transfer{Dev: dev, Reg: reg, Width: 16, Write: true, Len: len(p)}, p)
}

func (b *Bus) ReadBlock16(dev bus.Addr7, reg uint16, p []byte) error {
	return b.transfer(Transfer{Dev: dev, Reg: reg, Width: 16, Len: len(p)}, p)
}
