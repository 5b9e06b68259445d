// Package config carries the boot configuration: board pin map, strip
// geometry, console settings and sensor defaults. The defaults are embedded
// as JSON (flash, not RAM) and published to retained config/<section>
// topics at boot so services can pick up their own section.
package config

import (
	"encoding/json"

	"ledctrl-go/bus"
)

type Config struct {
	Console   ConsoleConfig   `json:"console"`
	Board     BoardConfig     `json:"board"`
	Strips    StripsConfig    `json:"strips"`
	Sensors   SensorsConfig   `json:"sensors"`
	Heartbeat HeartbeatConfig `json:"heartbeat"`
}

type ConsoleConfig struct {
	Baud   uint32 `json:"baud"`
	PollMs int    `json:"poll_ms"` // idle sleep between port polls
}

// BoardConfig maps logical peripherals to RP2 GP numbers. ADC channels use
// the GP numbering of the analog-capable pins (GP26..GP29).
type BoardConfig struct {
	Strip1Pin  int `json:"strip1_pin"`
	Strip2Pin  int `json:"strip2_pin"`
	LEDPin     int `json:"led_pin"`
	Relay1Pin  int `json:"relay1_pin"`
	Relay2Pin  int `json:"relay2_pin"`
	BarrierPin int `json:"barrier_pin"`
	PaperADC   int `json:"paper_adc"`
	I2CSDA     int `json:"i2c_sda"`
	I2CSCL     int `json:"i2c_scl"`
	UARTTx     int `json:"uart_tx"`
	UARTRx     int `json:"uart_rx"`
}

type StripsConfig struct {
	Strip1Len int `json:"strip1_len"`
	Strip2Len int `json:"strip2_len"`
}

type SensorsConfig struct {
	LBThreshold int `json:"lb_threshold"` // boot default; runtime value lives in the console service
	LM75Addr    int `json:"lm75_addr"`
}

type HeartbeatConfig struct {
	IntervalS int `json:"interval_s"`
}

// Embedded defaults. Strip lengths and the LB threshold mirror the
// deployed controller (78-pixel rings, threshold mid-scale).
const defaultJSON = `{
  "console":   {"baud": 115200, "poll_ms": 1},
  "board": {
    "strip1_pin": 2,
    "strip2_pin": 3,
    "led_pin": 15,
    "relay1_pin": 16,
    "relay2_pin": 17,
    "barrier_pin": 18,
    "paper_adc": 26,
    "i2c_sda": 4,
    "i2c_scl": 5,
    "uart_tx": 0,
    "uart_rx": 1
  },
  "strips":    {"strip1_len": 78, "strip2_len": 78},
  "sensors":   {"lb_threshold": 512, "lm75_addr": 72},
  "heartbeat": {"interval_s": 2}
}`

// Load decodes a JSON configuration blob.
func Load(raw []byte) (Config, error) {
	var c Config
	if err := json.Unmarshal(raw, &c); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Default returns the embedded configuration. The literal is fixed at
// build time, so a decode failure is a programming error.
func Default() Config {
	c, err := Load([]byte(defaultJSON))
	if err != nil {
		panic("config: bad embedded defaults: " + err.Error())
	}
	return c
}

// Publish posts each section retained under config/<section>.
func Publish(conn *bus.Connection, c Config) {
	for key, payload := range map[string]any{
		"console":   c.Console,
		"board":     c.Board,
		"strips":    c.Strips,
		"sensors":   c.Sensors,
		"heartbeat": c.Heartbeat,
	} {
		conn.Publish(conn.NewMessage(bus.T("config", key), payload, true))
	}
}
