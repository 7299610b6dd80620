// internal/heartbeat/heartbeat.go

// Package heartbeat drives the single binary output toggled once per
// poll cycle, observable externally as a blinking indicator.
package heartbeat

import (
	"fmt"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"
)

// Output is a binary output with toggle semantics.
type Output interface {
	Toggle() error
}

// gpioOutput toggles a GPIO pin, keeping a shadow of the last driven
// level the way the original firmware shadowed its port register.
type gpioOutput struct {
	pin   gpio.PinIO
	level gpio.Level
}

// NewGPIO opens the named pin and drives it low.
func NewGPIO(name string) (Output, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("heartbeat: host init: %w", err)
	}
	pin := gpioreg.ByName(name)
	if pin == nil {
		return nil, fmt.Errorf("heartbeat: no such pin %q", name)
	}
	if err := pin.Out(gpio.Low); err != nil {
		return nil, fmt.Errorf("heartbeat: drive %q low: %w", name, err)
	}
	return &gpioOutput{pin: pin, level: gpio.Low}, nil
}

func (o *gpioOutput) Toggle() error {
	o.level = !o.level
	return o.pin.Out(o.level)
}

type noop struct{}

// NewNoop returns an Output that does nothing, for setups without an
// indicator wired up.
func NewNoop() Output { return noop{} }

func (noop) Toggle() error { return nil }
