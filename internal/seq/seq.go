// internal/seq/seq.go

// Package seq is the application sequencer: it drives the fixed
// startup sequence (settle, clock init, self-test) and the terminal
// poll loop.
package seq

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/tamzrod/tinyrtc/internal/bus"
	"github.com/tamzrod/tinyrtc/internal/diag"
	"github.com/tamzrod/tinyrtc/internal/rtc"
)

// Clock is the clock-driver surface the sequencer drives.
type Clock interface {
	Init() error
	WriteRAM(p []byte) error
	ReadRAM(n int) ([]byte, error)
	Time() (rtc.TimeVar, error)
}

// Store is the non-volatile memory surface.
type Store interface {
	Write(off uint16, p []byte) error
	Read(off uint16, n int) ([]byte, error)
}

// Heartbeat is the binary indicator toggled once per poll cycle.
type Heartbeat interface {
	Toggle() error
}

// Diagnostic probe payloads written during self-test.
const (
	ramProbe = "RTC_RAM_Dummy_data"
	memProbe = "EEPROM_Dummy_data"
)

type health int

const (
	healthUnknown health = iota
	healthOK
	healthError
)

// Config is the immutable runtime config of the sequencer.
type Config struct {
	SettleDelay  time.Duration
	PollInterval time.Duration
	SelfTest     bool

	// Reported during self-test.
	RTCAddr    bus.Addr7
	EEPROMAddr bus.Addr7
}

// Sequencer owns no device state; every cycle is a fresh round trip.
type Sequencer struct {
	cfg   Config
	clock Clock
	store Store
	hb    Heartbeat
	sink  diag.Sink

	health health
}

// New creates a sequencer with immutable config.
func New(cfg Config, clock Clock, store Store, hb Heartbeat, sink diag.Sink) (*Sequencer, error) {
	if cfg.PollInterval <= 0 {
		return nil, errors.New("seq: poll interval must be > 0")
	}
	if clock == nil || store == nil || hb == nil || sink == nil {
		return nil, errors.New("seq: all collaborators required")
	}
	return &Sequencer{
		cfg:   cfg,
		clock: clock,
		store: store,
		hb:    hb,
		sink:  sink,
	}, nil
}

// Run walks the startup states and enters the poll loop, which only
// returns when ctx is cancelled. Startup errors are reported, never
// escalated: diagnostic failures must not halt the board.
func (s *Sequencer) Run(ctx context.Context) error {
	// Bus-Init settling: the transport is built by the caller; give
	// the devices a window to come up before the first transfer.
	if err := sleepCtx(ctx, s.cfg.SettleDelay); err != nil {
		return err
	}

	// Clock-Init.
	if err := s.clock.Init(); err != nil {
		log.Printf("seq: clock init failed: %v", err)
	}

	// Self-Test-Write / Self-Test-Read-Verify.
	if s.cfg.SelfTest {
		s.selfTestWrite()
		if err := sleepCtx(ctx, s.cfg.SettleDelay); err != nil {
			return err
		}
		s.selfTestVerify()
	}

	// Poll-Loop (terminal).
	return s.pollLoop(ctx)
}

func (s *Sequencer) selfTestWrite() {
	if err := s.clock.WriteRAM([]byte(ramProbe)); err != nil {
		s.sink.Printf("RTC RAM self-test write failed: %v\n", err)
	}
	if err := s.store.Write(0x0000, []byte(memProbe)); err != nil {
		s.sink.Printf("EEPROM self-test write failed: %v\n", err)
	}

	s.sink.Printf("RTC DS1307 addr:0x%x\n", uint8(s.cfg.RTCAddr))
	s.sink.Printf("EEPROM AT24C32 addr:0x%x\n\n", uint8(s.cfg.EEPROMAddr))
}

func (s *Sequencer) selfTestVerify() {
	got, err := s.clock.ReadRAM(len(ramProbe))
	switch {
	case err != nil:
		s.sink.Printf("RTC RAM read failed: %v\n", err)
	case string(got) != ramProbe:
		s.sink.Printf("RTC RAM self-test mismatch: %q\n", got)
	default:
		s.sink.Printf("RTC RAM read result:%s\n", got)
	}

	got, err = s.store.Read(0x0000, len(memProbe))
	switch {
	case err != nil:
		s.sink.Printf("EEPROM read failed: %v\n", err)
	case string(got) != memProbe:
		s.sink.Printf("EEPROM self-test mismatch: %q\n", got)
	default:
		s.sink.Printf("EEPROM read result:%s\n\n", got)
	}
}

// pollOnce performs exactly one poll cycle: heartbeat toggle, time
// read, report. A failed read is reported once per health transition
// and the loop carries on with no backoff.
func (s *Sequencer) pollOnce() {
	if err := s.hb.Toggle(); err != nil {
		log.Printf("seq: heartbeat toggle failed: %v", err)
	}

	tv, err := s.clock.Time()
	if err != nil {
		s.setHealth(healthError, err)
		return
	}
	s.setHealth(healthOK, nil)

	s.sink.Printf("Elapsed RTC time - min:%d%d sec:%d%d\n",
		tv.MinTens, tv.MinOnes, tv.SecTens, tv.SecOnes)
}

func (s *Sequencer) setHealth(h health, cause error) {
	if h == s.health {
		return
	}
	s.health = h

	switch h {
	case healthOK:
		log.Printf("seq: clock healthy")
	case healthError:
		log.Printf("seq: clock read failed: %v", cause)
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
