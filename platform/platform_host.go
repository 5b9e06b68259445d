//go:build !rp2040 && !rp2350

package platform

import (
	"errors"
	"image/color"
	"sync"

	"ledctrl-go/config"
	"ledctrl-go/hal"
	"ledctrl-go/services/console"
)

// Host build: every peripheral is an in-memory fake so the firmware and the
// self-test harness run on a development machine.

// ----------------------------- GPIO (host) -----------------------------------

// FakePin implements hal.GPIOPin with a settable level for tests.
type FakePin struct {
	mu      sync.RWMutex
	number  int
	level   bool
	modeOut bool
}

func (p *FakePin) ConfigureInput(_ hal.Pull) error {
	p.mu.Lock()
	p.modeOut = false
	p.mu.Unlock()
	return nil
}

func (p *FakePin) ConfigureOutput(initial bool) error {
	p.mu.Lock()
	p.modeOut = true
	p.level = initial
	p.mu.Unlock()
	return nil
}

func (p *FakePin) Set(level bool) {
	p.mu.Lock()
	p.level = level
	p.mu.Unlock()
}

func (p *FakePin) Get() bool {
	p.mu.RLock()
	v := p.level
	p.mu.RUnlock()
	return v
}

func (p *FakePin) Number() int { return p.number }

// ----------------------------- ADC (host) ------------------------------------

// FakeADC implements hal.ADCPin. Samples follow the machine.ADC convention
// (16-bit left-aligned); Set10Bit scripts them in the protocol's range.
type FakeADC struct {
	mu sync.RWMutex
	v  uint16
}

func (a *FakeADC) Get() uint16 {
	a.mu.RLock()
	v := a.v
	a.mu.RUnlock()
	return v
}

func (a *FakeADC) Set10Bit(raw int) {
	a.mu.Lock()
	a.v = uint16(raw) << 6
	a.mu.Unlock()
}

// ----------------------------- LED (host) ------------------------------------

// FakeLED records the last digital or analog drive.
type FakeLED struct {
	mu      sync.RWMutex
	Digital bool
	On      bool
	Level   uint8
}

func (l *FakeLED) Configure() error {
	l.mu.Lock()
	l.Digital, l.On, l.Level = true, false, 0
	l.mu.Unlock()
	return nil
}

func (l *FakeLED) SetDigital(on bool) {
	l.mu.Lock()
	l.Digital, l.On = true, on
	l.mu.Unlock()
}

func (l *FakeLED) SetAnalog(level uint8) {
	l.mu.Lock()
	l.Digital, l.Level = false, level
	l.On = level > 0
	l.mu.Unlock()
}

// ----------------------------- Strips (host) ---------------------------------

// FrameRecorder captures every frame pushed to a strip.
type FrameRecorder struct {
	mu     sync.Mutex
	Frames [][]color.RGBA
}

func (f *FrameRecorder) WriteColors(buf []color.RGBA) error {
	f.mu.Lock()
	f.Frames = append(f.Frames, append([]color.RGBA(nil), buf...))
	f.mu.Unlock()
	return nil
}

func (f *FrameRecorder) Last() []color.RGBA {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.Frames) == 0 {
		return nil
	}
	return f.Frames[len(f.Frames)-1]
}

// ----------------------------- I2C (host) ------------------------------------

// LM75Sim emulates an LM75 behind drivers.I2C: probes ack while Present and
// temperature reads return Milli rounded to the sensor's 0.5 °C step.
type LM75Sim struct {
	mu       sync.RWMutex
	Present  bool
	FailRead bool
	Milli    int32 // milli-degrees Celsius
}

var errNak = errors.New("i2c: no ack")

func (s *LM75Sim) Tx(addr uint16, w, r []byte) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.Present {
		return errNak
	}
	if len(r) == 0 {
		return nil
	}
	if s.FailRead {
		return errNak
	}
	reg := uint16(int16(s.Milli/500) << 7)
	r[0] = byte(reg >> 8)
	r[1] = byte(reg)
	return nil
}

// ----------------------------- Serial (host) ---------------------------------

// LoopPort is an in-memory serial port: Feed scripts the RX side, Output
// collects everything the firmware wrote.
type LoopPort struct {
	mu  sync.Mutex
	in  []byte
	out []byte
}

func (p *LoopPort) Buffered() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.in)
}

func (p *LoopPort) ReadByte() (byte, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.in) == 0 {
		return 0, errors.New("no data")
	}
	b := p.in[0]
	p.in = p.in[1:]
	return b, nil
}

func (p *LoopPort) Write(b []byte) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.out = append(p.out, b...)
	return len(b), nil
}

func (p *LoopPort) Feed(s string) {
	p.mu.Lock()
	p.in = append(p.in, s...)
	p.mu.Unlock()
}

func (p *LoopPort) Output() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return string(p.out)
}

// ----------------------------- Board -----------------------------------------

// HostBoard bundles the fakes so a harness can both hand the firmware its
// resources and poke the peripherals from the outside.
type HostBoard struct {
	Strip1, Strip2 *FrameRecorder
	LED            *FakeLED
	Relay1, Relay2 *FakePin
	Barrier        *FakePin
	Paper          *FakeADC
	Temp           *LM75Sim
	Port           *LoopPort

	strip1Len, strip2Len int
}

func NewHostBoard(cfg config.Config) *HostBoard {
	return &HostBoard{
		Strip1:    &FrameRecorder{},
		Strip2:    &FrameRecorder{},
		LED:       &FakeLED{},
		Relay1:    &FakePin{number: cfg.Board.Relay1Pin},
		Relay2:    &FakePin{number: cfg.Board.Relay2Pin},
		Barrier:   &FakePin{number: cfg.Board.BarrierPin},
		Paper:     &FakeADC{},
		Temp:      &LM75Sim{Present: true, Milli: 22_500},
		Port:      &LoopPort{},
		strip1Len: cfg.Strips.Strip1Len,
		strip2Len: cfg.Strips.Strip2Len,
	}
}

func (b *HostBoard) Resources() hal.Resources {
	return hal.Resources{
		Strip1: b.Strip1, Strip2: b.Strip2,
		Strip1Len: b.strip1Len, Strip2Len: b.strip2Len,
		LED:     b.LED,
		Relay1:  b.Relay1,
		Relay2:  b.Relay2,
		Barrier: b.Barrier,
		Paper:   b.Paper,
		I2C:     b.Temp,
	}
}

// Default builds the host board for a plain firmware run.
func Default(cfg config.Config) (hal.Resources, console.Port) {
	b := NewHostBoard(cfg)
	return b.Resources(), b.Port
}
