// internal/bus/sim/devices.go
package sim

import "fmt"

// Clock models a DS1307-style part: 8 timekeeping registers followed
// by 56 bytes of general-purpose RAM, all behind an 8-bit pointer.
type Clock struct {
	Regs [64]byte
}

func NewClock() *Clock {
	return &Clock{}
}

// SetCounter loads raw packed-BCD seconds and minutes registers.
func (c *Clock) SetCounter(sec, min byte) {
	c.Regs[0] = sec
	c.Regs[1] = min
}

func (c *Clock) Read(reg uint16, p []byte) error {
	if int(reg)+len(p) > len(c.Regs) {
		return fmt.Errorf("sim: clock read past register file: reg=%#02x len=%d", reg, len(p))
	}
	copy(p, c.Regs[reg:])
	return nil
}

func (c *Clock) Write(reg uint16, p []byte) error {
	if int(reg)+len(p) > len(c.Regs) {
		return fmt.Errorf("sim: clock write past register file: reg=%#02x len=%d", reg, len(p))
	}
	copy(c.Regs[reg:], p)
	return nil
}

// Memory24 models a 24-series serial EEPROM. Sequential reads cross
// page boundaries freely; a single write wraps around within the page
// it started in, exactly as the real parts corrupt data when a caller
// neglects to split at page boundaries.
type Memory24 struct {
	Data     []byte
	PageSize int
}

func NewMemory24(size, pageSize int) *Memory24 {
	return &Memory24{Data: make([]byte, size), PageSize: pageSize}
}

func (m *Memory24) Read(reg uint16, p []byte) error {
	if int(reg)+len(p) > len(m.Data) {
		return fmt.Errorf("sim: eeprom read past array end: reg=%#04x len=%d", reg, len(p))
	}
	copy(p, m.Data[reg:])
	return nil
}

func (m *Memory24) Write(reg uint16, p []byte) error {
	if int(reg) >= len(m.Data) {
		return fmt.Errorf("sim: eeprom write past array end: reg=%#04x", reg)
	}
	pageStart := int(reg) &^ (m.PageSize - 1)
	for i, b := range p {
		addr := pageStart + (int(reg)+i)%m.PageSize
		m.Data[addr] = b
	}
	return nil
}
