// internal/diag/diag.go

// Package diag provides the line-oriented diagnostic sink. Output is
// free-form human-readable text, not a machine-parsed protocol.
package diag

import (
	"fmt"
	"io"
	"os"

	"github.com/goburrow/serial"
)

// Sink receives diagnostic lines. It delivers and never interprets.
type Sink interface {
	Printf(format string, args ...any)
}

type writerSink struct {
	w io.Writer
}

// NewWriter returns a Sink printing to w.
func NewWriter(w io.Writer) Sink {
	return &writerSink{w: w}
}

// NewStdout returns a Sink printing to standard output.
func NewStdout() Sink {
	return NewWriter(os.Stdout)
}

func (s *writerSink) Printf(format string, args ...any) {
	fmt.Fprintf(s.w, format, args...)
}

// NewSerial opens a serial port and returns a Sink printing to it, the
// way the original board reported over its UART. Write failures are
// swallowed: a broken diagnostic line must never take the loop down.
func NewSerial(device string, baudRate int) (Sink, io.Closer, error) {
	port, err := serial.Open(&serial.Config{
		Address:  device,
		BaudRate: baudRate,
		DataBits: 8,
		StopBits: 1,
		Parity:   "N",
	})
	if err != nil {
		return nil, nil, fmt.Errorf("diag: open serial %s: %w", device, err)
	}
	return NewWriter(port), port, nil
}
