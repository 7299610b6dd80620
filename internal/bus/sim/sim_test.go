// internal/bus/sim/sim_test.go
package sim

import (
	"bytes"
	"errors"
	"testing"

	"github.com/tamzrod/tinyrtc/internal/bus"
)

func TestBus_RoundTrip8(t *testing.T) {
	b := NewBus()
	b.Attach(0x68, NewClock())

	want := []byte("snapshot")
	if err := b.WriteBlock(0x68, 0x08, want); err != nil {
		t.Fatalf("WriteBlock err=%v", err)
	}

	got := make([]byte, len(want))
	if err := b.ReadBlock(0x68, 0x08, got); err != nil {
		t.Fatalf("ReadBlock err=%v", err)
	}
	if !bytes.Equal(got, want) {
		t.Fatalf("round trip mismatch: got %q want %q", got, want)
	}
}

func TestBus_NoAck(t *testing.T) {
	b := NewBus()
	if err := b.ReadBlock(0x68, 0x00, make([]byte, 2)); err == nil {
		t.Fatal("expected no-ack error for unattached device")
	}
}

func TestBus_InjectFault(t *testing.T) {
	b := NewBus()
	b.Attach(0x50, NewMemory24(4096, 32))

	fault := errors.New("bus stuck")
	b.InjectFault(fault)

	if err := b.ReadBlock16(0x50, 0, make([]byte, 4)); !errors.Is(err, fault) {
		t.Fatalf("expected injected fault, got %v", err)
	}
	// Fault is consumed: the next transfer succeeds.
	if err := b.ReadBlock16(0x50, 0, make([]byte, 4)); err != nil {
		t.Fatalf("second read err=%v", err)
	}
}

func TestBus_RecordsGeometry(t *testing.T) {
	b := NewBus()
	b.Attach(0x50, NewMemory24(4096, 32))

	_ = b.WriteBlock16(0x50, 0x0100, make([]byte, 16))

	if len(b.Transfers) != 1 {
		t.Fatalf("expected 1 transfer, got %d", len(b.Transfers))
	}
	tr := b.Transfers[0]
	if tr.Dev != bus.Addr7(0x50) || tr.Reg != 0x0100 || tr.Width != 16 || !tr.Write || tr.Len != 16 {
		t.Fatalf("unexpected transfer record: %+v", tr)
	}
}

func TestMemory24_WriteWrapsWithinPage(t *testing.T) {
	m := NewMemory24(4096, 32)

	// Unsplit write of 4 bytes starting 2 bytes before a page boundary:
	// the last two bytes must wrap to the start of the SAME page.
	if err := m.Write(30, []byte{1, 2, 3, 4}); err != nil {
		t.Fatalf("Write err=%v", err)
	}
	if m.Data[30] != 1 || m.Data[31] != 2 {
		t.Fatalf("in-page bytes wrong: %v", m.Data[28:34])
	}
	if m.Data[32] != 0 {
		t.Fatalf("write leaked into next page: %v", m.Data[32:36])
	}
	if m.Data[0] != 3 || m.Data[1] != 4 {
		t.Fatalf("wraparound bytes wrong: %v", m.Data[0:4])
	}
}
