// Package errcode defines the error messages of the serial command protocol.
package errcode

import "fmt"

// Code is a stable, protocol-facing error message.
// It is a string newtype, comparable, allocation-free, and implements error.
// The wording is part of the wire contract; clients match on it.
type Code string

func (c Code) Error() string { return string(c) }

// Canonical messages (exact wire strings).
const (
	InvalidJSON      Code = "Invalid JSON format"
	InvalidStrip     Code = "Invalid strip number. Use 1 or 2"
	InvalidRange     Code = "Invalid pixel range"
	InvalidRGBMode   Code = "Invalid mode. Use: single, range, all, clear"
	InvalidLEDMode   Code = "Invalid LED mode. Use: digital, analog"
	InvalidAnalog    Code = "Invalid analog value. Range: 0-255"
	InvalidRelay     Code = "Invalid relay number. Use 1 or 2"
	InvalidLBMode    Code = "Invalid LB mode. Use: analog, digital"
	InvalidSensor    Code = "Invalid sensor. Use: lb, rs" // temp is handled but undocumented; kept verbatim
	InvalidThreshold Code = "Invalid threshold value. Range: 0-1023"
	InvalidSetting   Code = "Invalid setting. Available: lb_threshold"

	TempNotResponding Code = "LM75 not responding at 0x48"
	TempReadError     Code = "LM75 read error"
)

// UnknownAction builds the error for an unrecognised action field.
func UnknownAction(action string) error {
	return fmt.Errorf("Unknown action: %s", action)
}

// InvalidPixel builds the error for an out-of-range pixel index.
func InvalidPixel(maxIndex int) error {
	return fmt.Errorf("Invalid pixel number. Range: 0-%d", maxIndex)
}
