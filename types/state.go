package types

// Retained device-state payloads published on the internal bus after each
// hardware mutation. They are the device shadow, not part of the serial
// protocol.

type RelayState struct {
	On   bool  `json:"on"`
	TSms int64 `json:"ts_ms"`
}

type LEDState struct {
	Mode  LEDMode `json:"mode"`
	On    bool    `json:"on"`
	Level uint8   `json:"level"` // PWM duty in analog mode
	TSms  int64   `json:"ts_ms"`
}

type StripState struct {
	Pixels int   `json:"pixels"`
	Lit    int   `json:"lit"` // pixels not currently black
	TSms   int64 `json:"ts_ms"`
}

type Heartbeat struct {
	UptimeS int64 `json:"uptime_s"`
	TSms    int64 `json:"ts_ms"`
}
