// Package hal owns the board peripherals behind small interfaces so the
// same firmware runs on RP2 hardware and on host fakes.
package hal

import (
	"image/color"

	"tinygo.org/x/drivers"
)

// ---- GPIO abstractions ----

type Pull uint8

const (
	PullNone Pull = iota
	PullUp
	PullDown
)

type GPIOPin interface {
	ConfigureInput(pull Pull) error
	ConfigureOutput(initial bool) error
	Set(level bool)
	Get() bool
	Number() int
}

// ---- Analog input ----

// ADCPin reads a 16-bit left-aligned sample (the TinyGo machine.ADC
// convention). Callers scale to the protocol's 10-bit range.
type ADCPin interface {
	Get() uint16
}

// ---- Single LED output ----

// LEDOutput drives one pin either digitally or with an 8-bit PWM duty.
// Switching between the two modes is the implementation's concern.
type LEDOutput interface {
	Configure() error // output, low
	SetDigital(on bool)
	SetAnalog(level uint8)
}

// ---- Addressable strips ----

// ColorWriter pushes a prepared frame to an addressable LED chain. It is
// the contract of tinygo.org/x/drivers/ws2812: nothing reaches the LEDs
// until the whole buffer is written in one call.
type ColorWriter interface {
	WriteColors(buf []color.RGBA) error
}

// ---- Board resources ----

// Resources is the set of configured peripherals the platform layer hands
// to the HAL. The I2C bus carries the optional LM75.
type Resources struct {
	Strip1, Strip2       ColorWriter
	Strip1Len, Strip2Len int

	LED            LEDOutput
	Relay1, Relay2 GPIOPin
	Barrier        GPIOPin
	Paper          ADCPin

	I2C drivers.I2C
}
