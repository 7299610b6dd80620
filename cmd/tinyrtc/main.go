// cmd/tinyrtc/main.go
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/tamzrod/tinyrtc/internal/bus"
	"github.com/tamzrod/tinyrtc/internal/bus/i2cdev"
	"github.com/tamzrod/tinyrtc/internal/bus/modbusgw"
	"github.com/tamzrod/tinyrtc/internal/bus/sim"
	"github.com/tamzrod/tinyrtc/internal/config"
	"github.com/tamzrod/tinyrtc/internal/diag"
	"github.com/tamzrod/tinyrtc/internal/eeprom"
	"github.com/tamzrod/tinyrtc/internal/heartbeat"
	"github.com/tamzrod/tinyrtc/internal/rtc"
	"github.com/tamzrod/tinyrtc/internal/seq"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("usage: tinyrtc <config.yaml>")
	}

	cfgPath := os.Args[1]

	// --------------------
	// Load + validate config
	// --------------------

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}
	if err := config.Validate(cfg); err != nil {
		log.Fatalf("config validation failed: %v", err)
	}
	config.Normalize(cfg)

	tc := cfg.TinyRTC

	// --------------------
	// Bus-Init: build the transport
	// --------------------

	tr, closeTr, err := buildTransport(tc)
	if err != nil {
		log.Fatalf("transport build failed (kind=%s): %v", tc.Transport.Kind, err)
	}
	defer func() {
		if err := closeTr(); err != nil {
			log.Printf("transport close failed: %v", err)
		}
	}()

	// --------------------
	// Outputs
	// --------------------

	sink, closeSink, err := buildSink(tc.Diag)
	if err != nil {
		log.Fatalf("diag sink build failed (kind=%s): %v", tc.Diag.Kind, err)
	}
	if closeSink != nil {
		defer closeSink.Close()
	}

	hb, err := buildHeartbeat(tc.Heartbeat)
	if err != nil {
		log.Fatalf("heartbeat build failed (kind=%s): %v", tc.Heartbeat.Kind, err)
	}

	// --------------------
	// Drivers + sequencer
	// --------------------

	clock := rtc.New(tr, bus.Addr7(tc.Devices.RTCAddr))
	store := eeprom.New(tr, bus.Addr7(tc.Devices.EEPROMAddr))

	s, err := seq.New(seq.Config{
		SettleDelay:  time.Duration(tc.SettleMs) * time.Millisecond,
		PollInterval: time.Duration(tc.Poll.IntervalMs) * time.Millisecond,
		SelfTest:     *tc.SelfTest,
		RTCAddr:      bus.Addr7(tc.Devices.RTCAddr),
		EEPROMAddr:   bus.Addr7(tc.Devices.EEPROMAddr),
	}, clock, store, hb, sink)
	if err != nil {
		log.Fatalf("sequencer build failed: %v", err)
	}

	// Terminal state: runs until the process dies.
	if err := s.Run(context.Background()); err != nil {
		log.Fatalf("sequencer stopped: %v", err)
	}
}

// buildTransport dispatches on the configured transport kind. The sim
// kind attaches fresh device models at the configured addresses so the
// whole loop can run on a bench with no hardware at all.
func buildTransport(tc config.TinyRTCConfig) (bus.Transport, func() error, error) {
	switch tc.Transport.Kind {
	case "i2c":
		t, err := i2cdev.New(tc.Transport.I2C.Bus)
		if err != nil {
			return nil, nil, err
		}
		return t, t.Close, nil

	case "modbus-gateway":
		gw := tc.Transport.ModbusGateway
		t, err := modbusgw.New(modbusgw.Config{
			Mode:     gw.Mode,
			Endpoint: gw.Endpoint,
			Device:   gw.Device,
			BaudRate: gw.BaudRate,
			UnitID:   gw.UnitID,
			Timeout:  time.Duration(gw.TimeoutMs) * time.Millisecond,
		})
		if err != nil {
			return nil, nil, err
		}
		return t, t.Close, nil

	case "sim":
		b := sim.NewBus()
		b.Attach(bus.Addr7(tc.Devices.RTCAddr), sim.NewClock())
		b.Attach(bus.Addr7(tc.Devices.EEPROMAddr), sim.NewMemory24(eeprom.Size, eeprom.PageSize))
		return b, func() error { return nil }, nil

	default:
		// Unreachable after config validation.
		return nil, nil, fmt.Errorf("unknown transport kind %q", tc.Transport.Kind)
	}
}

func buildSink(dc config.DiagConfig) (diag.Sink, io.Closer, error) {
	if dc.Kind == "serial" {
		return diag.NewSerial(dc.Serial.Device, dc.Serial.BaudRate)
	}
	return diag.NewStdout(), nil, nil
}

func buildHeartbeat(hc config.HeartbeatConfig) (heartbeat.Output, error) {
	if hc.Kind == "gpio" {
		return heartbeat.NewGPIO(hc.Pin)
	}
	return heartbeat.NewNoop(), nil
}
