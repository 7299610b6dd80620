// internal/bus/region_test.go
package bus

import (
	"errors"
	"testing"
)

// recordTransport records every transfer so tests can assert on
// geometry and call counts.
type recordTransport struct {
	calls []string
	fail  error
}

func (r *recordTransport) WriteBlock(dev Addr7, reg uint8, p []byte) error {
	r.calls = append(r.calls, "w8")
	return r.fail
}

func (r *recordTransport) ReadBlock(dev Addr7, reg uint8, p []byte) error {
	r.calls = append(r.calls, "r8")
	return r.fail
}

func (r *recordTransport) WriteBlock16(dev Addr7, reg uint16, p []byte) error {
	r.calls = append(r.calls, "w16")
	return r.fail
}

func (r *recordTransport) ReadBlock16(dev Addr7, reg uint16, p []byte) error {
	r.calls = append(r.calls, "r16")
	return r.fail
}

func TestRegion8_BoundsStrict(t *testing.T) {
	tr := &recordTransport{}
	reg := NewRegion8(tr, 0x68, 0x08, 56)

	for _, n := range []int{0, 1, 55} {
		if err := reg.ReadAt(0, make([]byte, n)); err != nil {
			t.Fatalf("ReadAt len=%d err=%v", n, err)
		}
		if err := reg.WriteAt(0, make([]byte, n)); err != nil {
			t.Fatalf("WriteAt len=%d err=%v", n, err)
		}
	}

	tr.calls = nil
	for _, n := range []int{56, 57, 100} {
		if err := reg.ReadAt(0, make([]byte, n)); !errors.Is(err, ErrOutOfRange) {
			t.Fatalf("ReadAt len=%d expected ErrOutOfRange, got %v", n, err)
		}
		if err := reg.WriteAt(0, make([]byte, n)); !errors.Is(err, ErrOutOfRange) {
			t.Fatalf("WriteAt len=%d expected ErrOutOfRange, got %v", n, err)
		}
	}
	if len(tr.calls) != 0 {
		t.Fatalf("out-of-range access reached the transport: %v", tr.calls)
	}
}

func TestRegion16_BoundsStrict(t *testing.T) {
	tr := &recordTransport{}
	reg := NewRegion16(tr, 0x50, 4096)

	if err := reg.WriteAt(0, make([]byte, 4095)); err != nil {
		t.Fatalf("WriteAt len=4095 err=%v", err)
	}

	tr.calls = nil
	if err := reg.ReadAt(0, make([]byte, 4096)); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("ReadAt len=4096 expected ErrOutOfRange, got %v", err)
	}
	if err := reg.WriteAt(0, make([]byte, 4096)); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("WriteAt len=4096 expected ErrOutOfRange, got %v", err)
	}
	if len(tr.calls) != 0 {
		t.Fatalf("out-of-range access reached the transport: %v", tr.calls)
	}
}

func TestRegion_WidthDispatch(t *testing.T) {
	tr := &recordTransport{}

	r8 := NewRegion8(tr, 0x68, 0x08, 56)
	r16 := NewRegion16(tr, 0x50, 4096)

	_ = r8.ReadAt(0, make([]byte, 4))
	_ = r8.WriteAt(0, make([]byte, 4))
	_ = r16.ReadAt(0, make([]byte, 4))
	_ = r16.WriteAt(0, make([]byte, 4))

	want := []string{"r8", "w8", "r16", "w16"}
	if len(tr.calls) != len(want) {
		t.Fatalf("expected %d transfers, got %v", len(want), tr.calls)
	}
	for i := range want {
		if tr.calls[i] != want[i] {
			t.Fatalf("transfer %d: expected %s, got %s", i, want[i], tr.calls[i])
		}
	}
}

func TestRegion_TransportErrorPropagates(t *testing.T) {
	fail := errors.New("no ack")
	tr := &recordTransport{fail: fail}
	reg := NewRegion8(tr, 0x68, 0x08, 56)

	if err := reg.ReadAt(0, make([]byte, 8)); !errors.Is(err, fail) {
		t.Fatalf("expected transport error, got %v", err)
	}
}
