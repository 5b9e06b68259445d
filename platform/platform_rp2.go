//go:build rp2040 || rp2350

package platform

import (
	"machine"

	uartx "github.com/jangala-dev/tinygo-uartx/uartx"
	"tinygo.org/x/drivers"
	"tinygo.org/x/drivers/ws2812"

	"ledctrl-go/config"
	"ledctrl-go/hal"
	"ledctrl-go/services/console"
	"ledctrl-go/x/timex"
)

// -----------------------------------------------------------------------------
// GPIO
// -----------------------------------------------------------------------------

type rp2Pin struct {
	p machine.Pin
	n int
}

func (r *rp2Pin) Number() int { return r.n }

func (r *rp2Pin) ConfigureInput(pull hal.Pull) error {
	var mode machine.PinMode
	switch pull {
	case hal.PullUp:
		mode = machine.PinInputPullup
	case hal.PullDown:
		mode = machine.PinInputPulldown
	default:
		mode = machine.PinInput
	}
	r.p.Configure(machine.PinConfig{Mode: mode})
	return nil
}

func (r *rp2Pin) ConfigureOutput(initial bool) error {
	r.p.Configure(machine.PinConfig{Mode: machine.PinOutput})
	r.p.Set(initial)
	return nil
}

func (r *rp2Pin) Set(b bool) { r.p.Set(b) }
func (r *rp2Pin) Get() bool  { return r.p.Get() }

// -----------------------------------------------------------------------------
// ADC
// -----------------------------------------------------------------------------

type rp2ADC struct {
	adc machine.ADC
}

func (a *rp2ADC) Get() uint16 { return a.adc.Get() }

// -----------------------------------------------------------------------------
// PWM LED
// -----------------------------------------------------------------------------

// Local interface to avoid depending on an unexported concrete type in machine.
type pwmCtrl interface {
	Configure(cfg machine.PWMConfig) error
	Top() uint32
	Set(channel uint8, value uint32)
}

// Select controller handle for a given slice number (0..7).
func pwmGroupBySlice(slice uint8) pwmCtrl {
	switch slice {
	case 0:
		return machine.PWM0
	case 1:
		return machine.PWM1
	case 2:
		return machine.PWM2
	case 3:
		return machine.PWM3
	case 4:
		return machine.PWM4
	case 5:
		return machine.PWM5
	case 6:
		return machine.PWM6
	default:
		return machine.PWM7
	}
}

const ledPWMHz = 1000

// rp2LED drives the status LED pin, flipping the pin function between plain
// output and PWM as the command mode demands.
type rp2LED struct {
	pin    machine.Pin
	ctrl   pwmCtrl
	chIdx  uint8 // even pin => A(0), odd pin => B(1)
	analog bool
}

func newRP2LED(n int) *rp2LED {
	pin := machine.Pin(n)
	slice, err := machine.PWMPeripheral(pin)
	if err != nil {
		// Every RP2 GPIO maps to a PWM slice; a failure means a bad pin
		// number in the config. Degrade to digital-only.
		println("Error: LED pin has no PWM slice:", n)
		return &rp2LED{pin: pin}
	}
	return &rp2LED{
		pin:   pin,
		ctrl:  pwmGroupBySlice(slice),
		chIdx: uint8(n & 1),
	}
}

func (l *rp2LED) Configure() error {
	l.pin.Configure(machine.PinConfig{Mode: machine.PinOutput})
	l.pin.Low()
	l.analog = false
	return nil
}

func (l *rp2LED) SetDigital(on bool) {
	if l.analog {
		l.pin.Configure(machine.PinConfig{Mode: machine.PinOutput})
		l.analog = false
	}
	l.pin.Set(on)
}

func (l *rp2LED) SetAnalog(level uint8) {
	if l.ctrl == nil {
		l.pin.Set(level > 127)
		return
	}
	if !l.analog {
		_ = l.ctrl.Configure(machine.PWMConfig{Period: timex.PeriodFromHz(ledPWMHz)})
		l.pin.Configure(machine.PinConfig{Mode: machine.PinPWM})
		l.analog = true
	}
	top := l.ctrl.Top()
	l.ctrl.Set(l.chIdx, uint32(level)*top/255)
}

// -----------------------------------------------------------------------------
// Board wiring
// -----------------------------------------------------------------------------

// Default configures the RP2 peripherals from the board section of the
// configuration and returns them with the console UART.
func Default(cfg config.Config) (hal.Resources, console.Port) {
	b := cfg.Board

	s1pin := machine.Pin(b.Strip1Pin)
	s1pin.Configure(machine.PinConfig{Mode: machine.PinOutput})
	s1 := ws2812.New(s1pin)

	s2pin := machine.Pin(b.Strip2Pin)
	s2pin.Configure(machine.PinConfig{Mode: machine.PinOutput})
	s2 := ws2812.New(s2pin)

	machine.InitADC()
	paper := machine.ADC{Pin: machine.Pin(b.PaperADC)}
	paper.Configure(machine.ADCConfig{})

	led := newRP2LED(b.LEDPin)

	// The LM75 is optional; leave the bus nil if configuration fails so the
	// read handler reports it as absent.
	var i2c drivers.I2C
	sda := machine.Pin(b.I2CSDA)
	scl := machine.Pin(b.I2CSCL)
	if cfgErr := machine.I2C0.Configure(machine.I2CConfig{
		SDA:       sda,
		SCL:       scl,
		Frequency: 100_000,
	}); cfgErr == nil {
		i2c = machine.I2C0
	} else {
		println("Error: i2c0 configure failed")
	}

	uart := uartx.UART0
	_ = uart.Configure(uartx.UARTConfig{
		BaudRate: cfg.Console.Baud,
		TX:       machine.Pin(b.UARTTx),
		RX:       machine.Pin(b.UARTRx),
	})

	res := hal.Resources{
		Strip1: &s1, Strip2: &s2,
		Strip1Len: cfg.Strips.Strip1Len,
		Strip2Len: cfg.Strips.Strip2Len,
		LED:       led,
		Relay1:    &rp2Pin{p: machine.Pin(b.Relay1Pin), n: b.Relay1Pin},
		Relay2:    &rp2Pin{p: machine.Pin(b.Relay2Pin), n: b.Relay2Pin},
		Barrier:   &rp2Pin{p: machine.Pin(b.BarrierPin), n: b.BarrierPin},
		Paper:     &rp2ADC{adc: paper},
		I2C:       i2c,
	}
	return res, uart
}
