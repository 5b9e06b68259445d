// Package lm75 provides a driver for the LM75A temperature sensor.
//
// The device exposes a 9-bit two's-complement temperature with a 0.5 °C
// step in its 16-bit temperature register. Reads select the register with a
// pointer-byte write followed by a repeated-start read of two bytes.
//
// NOTE: I2C.Tx MUST perform a write followed by a repeated-start read when
// both w and r are provided, without releasing the bus.
//
// The driver avoids floating-point: ReadTemperature returns milli-degrees
// Celsius (always a multiple of 500).
package lm75

import (
	"errors"

	"tinygo.org/x/drivers"
)

// Address is the LM75A base address with A0/A1/A2 tied low.
const Address = 0x48

// Register pointer values.
const (
	regTemperature = 0x00
)

// ErrRead is returned when the bus transaction fails. There are no retries;
// the caller decides how to surface the failure.
var ErrRead = errors.New("lm75: read error")

// Device wraps an I2C connection to an LM75A device.
type Device struct {
	bus     drivers.I2C
	Address uint16
	buf     [2]byte // reuse buffer to avoid allocations
}

// New creates a new LM75A connection. The I2C bus must already be
// configured. This function only creates the Device object; it does not
// touch the device.
func New(bus drivers.I2C) Device {
	return Device{
		bus:     bus,
		Address: Address,
	}
}

// Connected probes the bus address and reports whether the device responds.
func (d *Device) Connected() bool {
	return d.bus.Tx(d.Address, []byte{regTemperature}, nil) == nil
}

// ReadTemperature returns the temperature in milli-degrees Celsius.
// Any bus failure is a hard read error.
func (d *Device) ReadTemperature() (int32, error) {
	if err := d.bus.Tx(d.Address, []byte{regTemperature}, d.buf[:]); err != nil {
		return 0, ErrRead
	}
	// 16-bit big-endian container; arithmetic shift recovers the 9-bit
	// two's-complement quantity. LSB = 0.5 °C.
	raw := int16(uint16(d.buf[0])<<8|uint16(d.buf[1])) >> 7
	return int32(raw) * 500, nil
}
