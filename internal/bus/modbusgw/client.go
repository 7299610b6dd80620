// internal/bus/modbusgw/client.go
package modbusgw

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/goburrow/modbus"

	"github.com/tamzrod/tinyrtc/internal/bus"
)

// Transport implements bus.Transport against a Modbus-attached bus
// gateway (a bridge board that exposes its local two-wire bus through
// a holding-register map).
//
// Gateway register map:
//
//	0x0000 device address (7-bit)
//	0x0001 register pointer width in bits (8 or 16)
//	0x0002 register pointer
//	0x0003 transfer length in bytes
//	0x0004 opcode; writing it triggers execution
//	0x0005 status
//	0x0100.. data window, two bytes per register, big-endian
type Transport struct {
	cli     regClient
	closer  io.Closer
	timeout time.Duration
}

// regClient is the exact slice of the Modbus client the gateway needs.
type regClient interface {
	ReadHoldingRegisters(address, quantity uint16) ([]byte, error)
	WriteMultipleRegisters(address, quantity uint16, value []byte) ([]byte, error)
}

const (
	regDevAddr  uint16 = 0x0000
	regPtrWidth uint16 = 0x0001
	regPointer  uint16 = 0x0002
	regLength   uint16 = 0x0003
	regOpcode   uint16 = 0x0004
	regStatus   uint16 = 0x0005
	regDataBase uint16 = 0x0100
)

const (
	opRead  uint16 = 1
	opWrite uint16 = 2
)

const (
	statusIdle  uint16 = 0
	statusBusy  uint16 = 1
	statusNoAck uint16 = 2
	statusBad   uint16 = 3
)

// Config is minimal transport config.
type Config struct {
	Mode     string // "tcp" or "rtu"
	Endpoint string // tcp only
	Device   string // rtu only
	BaudRate int    // rtu only
	UnitID   uint8
	Timeout  time.Duration
}

// New creates a connected gateway transport.
func New(cfg Config) (*Transport, error) {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 500 * time.Millisecond
	}

	switch cfg.Mode {
	case "tcp":
		if cfg.Endpoint == "" {
			return nil, errors.New("modbusgw: endpoint required")
		}
		h := modbus.NewTCPClientHandler(cfg.Endpoint)
		h.Timeout = cfg.Timeout
		h.SlaveId = cfg.UnitID
		if err := h.Connect(); err != nil {
			return nil, err
		}
		return &Transport{cli: modbus.NewClient(h), closer: h, timeout: cfg.Timeout}, nil

	case "rtu":
		if cfg.Device == "" {
			return nil, errors.New("modbusgw: serial device required")
		}
		h := modbus.NewRTUClientHandler(cfg.Device)
		h.BaudRate = cfg.BaudRate
		h.DataBits = 8
		h.Parity = "N"
		h.StopBits = 1
		h.SlaveId = cfg.UnitID
		h.Timeout = cfg.Timeout
		if err := h.Connect(); err != nil {
			return nil, err
		}
		return &Transport{cli: modbus.NewClient(h), closer: h, timeout: cfg.Timeout}, nil

	default:
		return nil, fmt.Errorf("modbusgw: unknown mode %q", cfg.Mode)
	}
}

// Close closes the underlying Modbus link.
func (t *Transport) Close() error {
	if t == nil || t.closer == nil {
		return nil
	}
	return t.closer.Close()
}

// ---- bus.Transport ----

func (t *Transport) WriteBlock(dev bus.Addr7, reg uint8, p []byte) error {
	return t.execute(dev, 8, uint16(reg), opWrite, p)
}

func (t *Transport) ReadBlock(dev bus.Addr7, reg uint8, p []byte) error {
	return t.execute(dev, 8, uint16(reg), opRead, p)
}

func (t *Transport) WriteBlock16(dev bus.Addr7, reg uint16, p []byte) error {
	return t.execute(dev, 16, reg, opWrite, p)
}

func (t *Transport) ReadBlock16(dev bus.Addr7, reg uint16, p []byte) error {
	return t.execute(dev, 16, reg, opRead, p)
}

// execute runs one gateway transaction: stage data (writes), issue the
// command block, poll for completion, fetch data (reads).
func (t *Transport) execute(dev bus.Addr7, width uint8, reg uint16, op uint16, p []byte) error {
	if op == opWrite {
		if _, err := t.cli.WriteMultipleRegisters(regDataBase, regCount(len(p)), packBytes(p)); err != nil {
			return fmt.Errorf("modbusgw: stage data: %w", err)
		}
	}

	cmd := packRegs([]uint16{uint16(dev), uint16(width), reg, uint16(len(p)), op})
	if _, err := t.cli.WriteMultipleRegisters(regDevAddr, 5, cmd); err != nil {
		return fmt.Errorf("modbusgw: command block: %w", err)
	}

	if err := t.waitIdle(); err != nil {
		return err
	}

	if op == opRead {
		raw, err := t.cli.ReadHoldingRegisters(regDataBase, regCount(len(p)))
		if err != nil {
			return fmt.Errorf("modbusgw: fetch data: %w", err)
		}
		if len(raw) < len(p) {
			return fmt.Errorf("modbusgw: short data window: got %d bytes, want %d", len(raw), len(p))
		}
		copy(p, raw[:len(p)])
	}

	return nil
}

func (t *Transport) waitIdle() error {
	deadline := time.Now().Add(t.timeout)
	for {
		raw, err := t.cli.ReadHoldingRegisters(regStatus, 1)
		if err != nil {
			return fmt.Errorf("modbusgw: status poll: %w", err)
		}
		if len(raw) < 2 {
			return errors.New("modbusgw: short status response")
		}

		switch status := uint16(raw[0])<<8 | uint16(raw[1]); status {
		case statusIdle:
			return nil
		case statusBusy:
			// keep polling
		case statusNoAck:
			return errors.New("modbusgw: no ack from addressed device")
		case statusBad:
			return errors.New("modbusgw: gateway rejected command")
		default:
			return fmt.Errorf("modbusgw: unknown gateway status %d", status)
		}

		if time.Now().After(deadline) {
			return errors.New("modbusgw: transfer timed out")
		}
		time.Sleep(2 * time.Millisecond)
	}
}

// ---- helpers (pure geometry) ----

func regCount(n int) uint16 {
	return uint16((n + 1) / 2)
}

// packBytes pads the byte stream to a whole number of registers.
func packBytes(p []byte) []byte {
	out := make([]byte, 2*regCount(len(p)))
	copy(out, p)
	return out
}

func packRegs(regs []uint16) []byte {
	out := make([]byte, 2*len(regs))
	for i, r := range regs {
		out[2*i] = byte(r >> 8)
		out[2*i+1] = byte(r)
	}
	return out
}
