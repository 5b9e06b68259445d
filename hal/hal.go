package hal

import (
	"strconv"

	"ledctrl-go/bus"
	"ledctrl-go/drivers/lm75"
	"ledctrl-go/types"
	"ledctrl-go/x/timex"
)

// HAL owns every peripheral on the board. Exactly one instance exists and
// exactly one goroutine (the console service) mutates it; no locking.
// After each output mutation the new state is published retained on the
// bus as the device shadow.
type HAL struct {
	Strip1, Strip2 *Strip
	LED            LEDOutput
	Relay1, Relay2 GPIOPin
	Barrier        GPIOPin
	Paper          ADCPin

	// Temp is nil when no I2C bus was provided; the sensor is optional.
	Temp *lm75.Device

	conn *bus.Connection
}

// New wires the HAL from platform resources. conn may be nil (no shadow
// publishing, e.g. in driver-level tests).
func New(res Resources, conn *bus.Connection) *HAL {
	h := &HAL{
		Strip1:  NewStrip(1, res.Strip1Len, res.Strip1),
		Strip2:  NewStrip(2, res.Strip2Len, res.Strip2),
		LED:     res.LED,
		Relay1:  res.Relay1,
		Relay2:  res.Relay2,
		Barrier: res.Barrier,
		Paper:   res.Paper,
		conn:    conn,
	}
	if res.I2C != nil {
		d := lm75.New(res.I2C)
		h.Temp = &d
	}
	return h
}

// Init drives every output to its boot default: strips dark, LED and
// relays off, barrier input ready.
func (h *HAL) Init() error {
	h.Strip1.Clear()
	if err := h.Strip1.Show(); err != nil {
		return err
	}
	h.Strip2.Clear()
	if err := h.Strip2.Show(); err != nil {
		return err
	}
	if err := h.LED.Configure(); err != nil {
		return err
	}
	if err := h.Relay1.ConfigureOutput(false); err != nil {
		return err
	}
	if err := h.Relay2.ConfigureOutput(false); err != nil {
		return err
	}
	if err := h.Barrier.ConfigureInput(PullNone); err != nil {
		return err
	}
	h.publishStrip(h.Strip1)
	h.publishStrip(h.Strip2)
	h.publishRelay(1, false)
	h.publishRelay(2, false)
	h.publishLED(types.LEDState{Mode: types.LEDDigital})
	return nil
}

// StripByID maps a 1-based strip number to its buffer.
func (h *HAL) StripByID(id int) (*Strip, bool) {
	switch id {
	case 1:
		return h.Strip1, true
	case 2:
		return h.Strip2, true
	default:
		return nil, false
	}
}

// ShowStrip pushes a strip's prepared frame and refreshes its shadow.
func (h *HAL) ShowStrip(s *Strip) error {
	err := s.Show()
	h.publishStrip(s)
	return err
}

// SetRelay latches one relay output. The caller validates the id.
func (h *HAL) SetRelay(id int, on bool) {
	switch id {
	case 1:
		h.Relay1.Set(on)
	case 2:
		h.Relay2.Set(on)
	default:
		return
	}
	h.publishRelay(id, on)
}

// SetLEDDigital drives the single LED high or low.
func (h *HAL) SetLEDDigital(on bool) {
	h.LED.SetDigital(on)
	h.publishLED(types.LEDState{Mode: types.LEDDigital, On: on})
}

// SetLEDAnalog drives the single LED with an 8-bit PWM duty.
func (h *HAL) SetLEDAnalog(level uint8) {
	h.LED.SetAnalog(level)
	h.publishLED(types.LEDState{Mode: types.LEDAnalog, On: level > 0, Level: level})
}

// ReadPaperRaw samples the paper-level sensor in the protocol's 10-bit
// range (0-1023).
func (h *HAL) ReadPaperRaw() int {
	return int(h.Paper.Get() >> 6)
}

// ReadBarrier samples the ticket-barrier input.
func (h *HAL) ReadBarrier() bool {
	return h.Barrier.Get()
}

// ---- Device shadow ----

func (h *HAL) publishStrip(s *Strip) {
	if h.conn == nil {
		return
	}
	h.publish(bus.T("hal", "strip", strconv.Itoa(s.ID()), "state"), types.StripState{
		Pixels: s.NumPixels(),
		Lit:    s.Lit(),
		TSms:   timex.NowMs(),
	})
}

func (h *HAL) publishRelay(id int, on bool) {
	if h.conn == nil {
		return
	}
	h.publish(bus.T("hal", "relay", strconv.Itoa(id), "state"), types.RelayState{
		On:   on,
		TSms: timex.NowMs(),
	})
}

func (h *HAL) publishLED(st types.LEDState) {
	if h.conn == nil {
		return
	}
	st.TSms = timex.NowMs()
	h.publish(bus.T("hal", "led", "state"), st)
}

func (h *HAL) publish(topic bus.Topic, payload any) {
	h.conn.Publish(h.conn.NewMessage(topic, payload, true))
}
