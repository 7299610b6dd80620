// internal/rtc/rtc.go

// Package rtc drives a DS1307 real-time clock and its battery-backed
// general-purpose RAM over a bus.Transport.
package rtc

import "github.com/tamzrod/tinyrtc/internal/bus"

const (
	// regStartTime is the register holding the start/stop time counter.
	regStartTime uint8 = 0x00
	// regRAMBufStart is the register pointing at the internal RAM buffer.
	regRAMBufStart uint8 = 0x08
)

// RAMSize is the usable general-purpose RAM of the part, in bytes.
const RAMSize = 56

// DefaultAddr is the part's fixed 7-bit bus address.
const DefaultAddr bus.Addr7 = 0x68

// TimeVar is one decoded snapshot of the running time counter. It is
// produced fresh on every read and carries no identity.
type TimeVar struct {
	SecTens uint8
	SecOnes uint8
	MinTens uint8
	MinOnes uint8
}

// Device is a DS1307 handle. It caches nothing: every access is a
// fresh blocking round trip, so reads always reflect the hardware.
type Device struct {
	tr   bus.Transport
	addr bus.Addr7
	ram  bus.Region
}

func New(tr bus.Transport, addr bus.Addr7) *Device {
	return &Device{
		tr:   tr,
		addr: addr,
		ram:  bus.NewRegion8(tr, addr, regRAMBufStart, RAMSize),
	}
}

// Addr returns the device's bus address.
func (d *Device) Addr() bus.Addr7 { return d.addr }

// Init clears the whole RAM buffer with one block write of zeros, then
// writes a single zero byte to the start/stop register to start the
// time counter. Any previously stored RAM contents are lost.
//
// The clear writes the full RAMSize bytes and therefore goes through
// the transport directly; the Region's strict bound would reject it.
func (d *Device) Init() error {
	var zero [RAMSize]byte
	if err := d.tr.WriteBlock(d.addr, regRAMBufStart, zero[:]); err != nil {
		return err
	}
	return d.tr.WriteBlock(d.addr, regStartTime, []byte{0})
}

// ReadRAM reads n bytes from the start of the RAM buffer. It returns
// bus.ErrOutOfRange, without touching the bus, when n >= RAMSize.
func (d *Device) ReadRAM(n int) ([]byte, error) {
	buf := make([]byte, n)
	if err := d.ram.ReadAt(0, buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// WriteRAM stores p at the start of the RAM buffer. It returns
// bus.ErrOutOfRange, without touching the bus, when len(p) >= RAMSize.
func (d *Device) WriteRAM(p []byte) error {
	return d.ram.WriteAt(0, p)
}

// Time reads the seconds and minutes registers and decodes them. On a
// transport error the zero TimeVar is returned together with the
// error; callers must check the error, not the decoded digits.
func (d *Device) Time() (TimeVar, error) {
	var raw [2]byte
	if err := d.tr.ReadBlock(d.addr, regStartTime, raw[:]); err != nil {
		return TimeVar{}, err
	}

	secTens, secOnes := decodeBCD(raw[0])
	minTens, minOnes := decodeBCD(raw[1])
	return TimeVar{
		SecTens: secTens,
		SecOnes: secOnes,
		MinTens: minTens,
		MinOnes: minOnes,
	}, nil
}

// decodeBCD splits one packed register byte: bits 6:4 hold the tens
// digit, bits 3:0 the ones digit. Bit 7 is the part's clock-halt flag
// and is masked off.
func decodeBCD(b byte) (tens, ones uint8) {
	return (b & 0x70) >> 4, b & 0x0F
}
