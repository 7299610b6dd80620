// internal/rtc/rtc_test.go
package rtc

import (
	"bytes"
	"errors"
	"testing"

	"github.com/tamzrod/tinyrtc/internal/bus"
	"github.com/tamzrod/tinyrtc/internal/bus/sim"
)

func newSimDevice() (*Device, *sim.Bus, *sim.Clock) {
	b := sim.NewBus()
	c := sim.NewClock()
	b.Attach(DefaultAddr, c)
	return New(b, DefaultAddr), b, c
}

func TestInit_ClearsRAMAndStartsCounter(t *testing.T) {
	d, b, c := newSimDevice()

	// Pre-fill RAM and halt the counter so Init has something to undo.
	for i := 8; i < 64; i++ {
		c.Regs[i] = 0xFF
	}
	c.Regs[0] = 0x80 // clock-halt bit set

	if err := d.Init(); err != nil {
		t.Fatalf("Init err=%v", err)
	}

	for i := 8; i < 64; i++ {
		if c.Regs[i] != 0 {
			t.Fatalf("RAM byte %d not cleared: %#02x", i, c.Regs[i])
		}
	}
	if c.Regs[0] != 0 {
		t.Fatalf("start/stop register not cleared: %#02x", c.Regs[0])
	}

	// One block write for the RAM clear, one byte write to start.
	if len(b.Transfers) != 2 {
		t.Fatalf("expected 2 transfers, got %d", len(b.Transfers))
	}
	if b.Transfers[0].Len != RAMSize || b.Transfers[0].Reg != 0x08 {
		t.Fatalf("unexpected RAM clear transfer: %+v", b.Transfers[0])
	}
	if b.Transfers[1].Len != 1 || b.Transfers[1].Reg != 0x00 {
		t.Fatalf("unexpected counter start transfer: %+v", b.Transfers[1])
	}
}

func TestRAM_BoundsStrict(t *testing.T) {
	d, b, _ := newSimDevice()
	if err := d.Init(); err != nil {
		t.Fatalf("Init err=%v", err)
	}

	before := len(b.Transfers)
	for _, n := range []int{RAMSize, RAMSize + 1, 200} {
		if _, err := d.ReadRAM(n); !errors.Is(err, bus.ErrOutOfRange) {
			t.Fatalf("ReadRAM(%d) expected ErrOutOfRange, got %v", n, err)
		}
		if err := d.WriteRAM(make([]byte, n)); !errors.Is(err, bus.ErrOutOfRange) {
			t.Fatalf("WriteRAM len=%d expected ErrOutOfRange, got %v", n, err)
		}
	}
	if len(b.Transfers) != before {
		t.Fatal("out-of-range RAM access reached the bus")
	}

	if _, err := d.ReadRAM(RAMSize - 1); err != nil {
		t.Fatalf("ReadRAM(%d) err=%v", RAMSize-1, err)
	}
}

func TestRAM_RoundTrip(t *testing.T) {
	d, _, _ := newSimDevice()
	if err := d.Init(); err != nil {
		t.Fatalf("Init err=%v", err)
	}

	want := []byte("RTC_RAM_Dummy_data")
	if err := d.WriteRAM(want); err != nil {
		t.Fatalf("WriteRAM err=%v", err)
	}
	got, err := d.ReadRAM(len(want))
	if err != nil {
		t.Fatalf("ReadRAM err=%v", err)
	}
	if !bytes.Equal(got, want) {
		t.Fatalf("round trip mismatch: got %q want %q", got, want)
	}
}

func TestTime_DecodesBCD(t *testing.T) {
	cases := []struct {
		sec, min byte
		want     TimeVar
	}{
		{0x45, 0x12, TimeVar{SecTens: 4, SecOnes: 5, MinTens: 1, MinOnes: 2}},
		{0x00, 0x00, TimeVar{}},
		{0x59, 0x59, TimeVar{SecTens: 5, SecOnes: 9, MinTens: 5, MinOnes: 9}},
		// Bit 7 of the seconds register is the halt flag, not a digit.
		{0xC5, 0x00, TimeVar{SecTens: 4, SecOnes: 5}},
	}

	for _, tc := range cases {
		d, _, c := newSimDevice()
		c.SetCounter(tc.sec, tc.min)

		got, err := d.Time()
		if err != nil {
			t.Fatalf("Time() sec=%#02x err=%v", tc.sec, err)
		}
		if got != tc.want {
			t.Fatalf("decode sec=%#02x min=%#02x: got %+v want %+v", tc.sec, tc.min, got, tc.want)
		}
	}
}

func TestTime_TransportFailure(t *testing.T) {
	d, b, c := newSimDevice()
	c.SetCounter(0x45, 0x12)

	fault := errors.New("no ack")
	b.InjectFault(fault)

	got, err := d.Time()
	if !errors.Is(err, fault) {
		t.Fatalf("expected transport error, got %v", err)
	}
	// A failed read must not surface as a plausible timestamp.
	if got != (TimeVar{}) {
		t.Fatalf("expected zero TimeVar on failure, got %+v", got)
	}
}
