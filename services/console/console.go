// Package console implements the serial JSON command interface: a line
// accumulator over a polled serial port, a router keyed on the action
// field, five handlers, and a single-line JSON response emitter.
//
// The service is strictly single-threaded: one goroutine owns the port,
// the peripherals and the runtime threshold, and exactly one command is in
// flight at a time.
package console

import (
	"context"
	"time"

	"ledctrl-go/hal"
)

// Port is the byte-level serial transport. machine.Serial-style UARTs,
// uartx ports and host fakes all satisfy it.
type Port interface {
	Buffered() int
	ReadByte() (byte, error)
	Write(p []byte) (int, error)
}

// Settle delays after strip frame pushes, and the post-command pause that
// lets the response drain before the next read.
const (
	settleSingle = 5 * time.Millisecond
	settleRange  = 10 * time.Millisecond
	settleAll    = 15 * time.Millisecond
	settleClear  = 10 * time.Millisecond

	postCommand = 10 * time.Millisecond

	defaultPoll = time.Millisecond
)

// Options tunes the service. Zero values take defaults.
type Options struct {
	// LBThreshold is the boot value for the paper-sensor digital
	// threshold (0-1023).
	LBThreshold int
	// PollInterval is the idle sleep between port polls.
	PollInterval time.Duration
}

// Service is the command dispatcher. Create with New, drive with Run.
type Service struct {
	port Port
	hal  *hal.HAL

	// lbThreshold is written only by the config handler and read by the
	// read handler. It resets on boot.
	lbThreshold int

	poll time.Duration
	line []byte
}

// New builds the dispatcher around an initialised HAL.
func New(port Port, h *hal.HAL, opts Options) *Service {
	poll := opts.PollInterval
	if poll <= 0 {
		poll = defaultPoll
	}
	return &Service{
		port:        port,
		hal:         h,
		lbThreshold: opts.LBThreshold,
		poll:        poll,
		line:        make([]byte, 0, 200),
	}
}

// Run prints the boot banner and serves commands until ctx is cancelled.
func (s *Service) Run(ctx context.Context) {
	s.banner()

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		if s.port.Buffered() == 0 {
			if !sleep(ctx, s.poll) {
				return
			}
			continue
		}

		complete := false
		for s.port.Buffered() > 0 {
			b, err := s.port.ReadByte()
			if err != nil {
				break
			}
			if s.feed(b) {
				complete = true
				break
			}
		}
		if !complete {
			continue
		}

		// Discard bytes still pending in this tick so a rapid
		// back-to-back send cannot bleed into the next command.
		for s.port.Buffered() > 0 {
			if _, err := s.port.ReadByte(); err != nil {
				break
			}
		}

		line := string(s.line)
		s.line = s.line[:0]
		s.processLine(line)

		if !sleep(ctx, postCommand) {
			return
		}
	}
}

// feed consumes one byte and reports whether the line is complete.
// Printable ASCII accumulates; CR/LF terminates; everything else drops.
func (s *Service) feed(b byte) bool {
	switch {
	case b == '\n' || b == '\r':
		return true
	case b >= 0x20 && b <= 0x7E:
		s.line = append(s.line, b)
	}
	return false
}

func (s *Service) banner() {
	s.writeLine("")
	s.writeLine("=== LED Controller API v1.0 ===")
	s.writeLine("Type 'help' for available commands")
	s.writeLine("Ready for JSON commands...")
	if s.hal.Temp != nil && s.hal.Temp.Connected() {
		s.writeLine("LM75 detected at 0x48")
	} else {
		s.writeLine("LM75 not detected (optional sensor)")
	}
}

func (s *Service) writeLine(line string) {
	_, _ = s.port.Write([]byte(line + "\r\n"))
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
