package types

// Commands are decoded per action from the full request line. Optional
// fields are pointers; each schema applies its defaults in one place so the
// default table is enumerated once, not per access.

// Envelope carries only the routing field.
type Envelope struct {
	Action Action `json:"action"`
}

// ------------------------
// rgb
// ------------------------

type RGBCommand struct {
	Strip int     `json:"strip"`
	Mode  RGBMode `json:"mode,omitempty"`
	Pixel *int    `json:"pixel,omitempty"`
	Start *int    `json:"start,omitempty"`
	End   *int    `json:"end,omitempty"`
	R     *int    `json:"r,omitempty"`
	G     *int    `json:"g,omitempty"`
	B     *int    `json:"b,omitempty"`
}

// ApplyDefaults fills the schema defaults. stripLen is the pixel count of
// the addressed strip; the range end defaults to the last pixel index.
func (c *RGBCommand) ApplyDefaults(stripLen int) {
	if c.Mode == "" {
		c.Mode = RGBSingle
	}
	c.Pixel = orInt(c.Pixel, 0)
	c.Start = orInt(c.Start, 0)
	c.End = orInt(c.End, stripLen-1)
	c.R = orInt(c.R, 0)
	c.G = orInt(c.G, 0)
	c.B = orInt(c.B, 0)
}

// ------------------------
// led
// ------------------------

type LEDCommand struct {
	Mode  LEDMode `json:"mode,omitempty"`
	State *bool   `json:"state,omitempty"`
	Value *int    `json:"value,omitempty"`
}

func (c *LEDCommand) ApplyDefaults() {
	if c.Mode == "" {
		c.Mode = LEDDigital
	}
	c.State = orBool(c.State, false)
	c.Value = orInt(c.Value, 0)
}

// ------------------------
// relay
// ------------------------

type RelayCommand struct {
	Relay int   `json:"relay"`
	State *bool `json:"state,omitempty"`
}

func (c *RelayCommand) ApplyDefaults() {
	c.State = orBool(c.State, false)
}

// ------------------------
// read
// ------------------------

type ReadCommand struct {
	Sensor SensorName `json:"sensor,omitempty"`
	Mode   LBMode     `json:"mode,omitempty"`
}

func (c *ReadCommand) ApplyDefaults() {
	if c.Mode == "" {
		c.Mode = LBAnalog
	}
}

// ------------------------
// config
// ------------------------

type ConfigCommand struct {
	Setting Setting `json:"setting,omitempty"`
	Value   *int    `json:"value,omitempty"`
}

// ApplyDefaults takes the current threshold: a config command without a
// value re-applies the present setting.
func (c *ConfigCommand) ApplyDefaults(current int) {
	c.Value = orInt(c.Value, current)
}

// ------------------------
// Defaulting helpers
// ------------------------

func orInt(p *int, def int) *int {
	if p == nil {
		p = &def
	}
	return p
}

func orBool(p *bool, def bool) *bool {
	if p == nil {
		p = &def
	}
	return p
}
