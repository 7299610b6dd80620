// internal/bus/region.go
package bus

// Region is a bounds-checked window into one device's address space.
// The two concrete variants differ only in register-pointer width;
// callers depend on geometry only.
//
// Every access is a fresh blocking round trip to the hardware. Regions
// hold no cached copy of device contents.
type Region interface {
	Capacity() int
	ReadAt(off uint16, p []byte) error
	WriteAt(off uint16, p []byte) error
}

// checkLen rejects transfers whose length meets or exceeds the region
// capacity. Length-only: the offset is not folded into the check, which
// matches the observed device behavior this layer preserves.
func checkLen(n, capacity int) error {
	if n >= capacity {
		return ErrOutOfRange
	}
	return nil
}

// region8 addresses a device behind an 8-bit register pointer,
// starting at a fixed base register.
type region8 struct {
	tr       Transport
	dev      Addr7
	base     uint8
	capacity int
}

// NewRegion8 returns a Region over an 8-bit-addressed device window of
// the given capacity, rooted at base.
func NewRegion8(tr Transport, dev Addr7, base uint8, capacity int) Region {
	return &region8{tr: tr, dev: dev, base: base, capacity: capacity}
}

func (r *region8) Capacity() int { return r.capacity }

func (r *region8) ReadAt(off uint16, p []byte) error {
	if err := checkLen(len(p), r.capacity); err != nil {
		return err
	}
	return r.tr.ReadBlock(r.dev, r.base+uint8(off), p)
}

func (r *region8) WriteAt(off uint16, p []byte) error {
	if err := checkLen(len(p), r.capacity); err != nil {
		return err
	}
	return r.tr.WriteBlock(r.dev, r.base+uint8(off), p)
}

// region16 addresses a device behind a 16-bit register pointer.
type region16 struct {
	tr       Transport
	dev      Addr7
	capacity int
}

// NewRegion16 returns a Region over a 16-bit-addressed device of the
// given capacity.
func NewRegion16(tr Transport, dev Addr7, capacity int) Region {
	return &region16{tr: tr, dev: dev, capacity: capacity}
}

func (r *region16) Capacity() int { return r.capacity }

func (r *region16) ReadAt(off uint16, p []byte) error {
	if err := checkLen(len(p), r.capacity); err != nil {
		return err
	}
	return r.tr.ReadBlock16(r.dev, off, p)
}

func (r *region16) WriteAt(off uint16, p []byte) error {
	if err := checkLen(len(p), r.capacity); err != nil {
		return err
	}
	return r.tr.WriteBlock16(r.dev, off, p)
}
