// Package types holds the wire-level command and response payloads of the
// serial JSON protocol, plus the retained state payloads published on the
// internal bus.
package types

// ------------------------
// Closed enums (decoded at the JSON boundary)
// ------------------------

type Action string

const (
	ActionRGB    Action = "rgb"
	ActionLED    Action = "led"
	ActionRelay  Action = "relay"
	ActionRead   Action = "read"
	ActionConfig Action = "config"
)

type RGBMode string

const (
	RGBSingle RGBMode = "single"
	RGBRange  RGBMode = "range"
	RGBAll    RGBMode = "all"
	RGBClear  RGBMode = "clear"
)

type LEDMode string

const (
	LEDDigital LEDMode = "digital"
	LEDAnalog  LEDMode = "analog"
)

type SensorName string

const (
	SensorTemp SensorName = "temp"
	SensorLB   SensorName = "lb"
	SensorRS   SensorName = "rs"
)

type LBMode string

const (
	LBAnalog  LBMode = "analog"
	LBDigital LBMode = "digital"
)

type Setting string

const SettingLBThreshold Setting = "lb_threshold"

// ------------------------
// Response status
// ------------------------

type Status string

const (
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)
