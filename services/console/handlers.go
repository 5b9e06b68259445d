package console

import (
	"encoding/json"
	"fmt"
	"image/color"
	"time"

	"ledctrl-go/errcode"
	"ledctrl-go/hal"
	"ledctrl-go/types"
	"ledctrl-go/x/mathx"
)

// ------------------------
// rgb
// ------------------------

func (s *Service) handleRGB(raw []byte) {
	var cmd types.RGBCommand
	if err := json.Unmarshal(raw, &cmd); err != nil {
		s.respondErr(errcode.InvalidJSON)
		return
	}

	strip, ok := s.hal.StripByID(cmd.Strip)
	if !ok {
		s.respondErr(errcode.InvalidStrip)
		return
	}
	cmd.ApplyDefaults(strip.NumPixels())

	// Color components deliberately pass through unclamped; the uint8
	// conversion truncates exactly like the strip driver would.
	col := color.RGBA{R: uint8(*cmd.R), G: uint8(*cmd.G), B: uint8(*cmd.B)}

	switch cmd.Mode {
	case types.RGBSingle:
		pixel := *cmd.Pixel
		if pixel < 0 || pixel >= strip.NumPixels() {
			s.respondErr(errcode.InvalidPixel(strip.NumPixels() - 1))
			return
		}
		strip.SetPixelColor(pixel, col)
		s.show(strip, settleSingle)
		s.respond(types.Success(fmt.Sprintf(
			"Pixel %d on strip %d set to RGB(%d,%d,%d)",
			pixel, cmd.Strip, *cmd.R, *cmd.G, *cmd.B)))

	case types.RGBRange:
		start, end := *cmd.Start, *cmd.End
		if start < 0 || end >= strip.NumPixels() || start > end {
			s.respondErr(errcode.InvalidRange)
			return
		}
		strip.Fill(start, end, col)
		s.show(strip, settleRange)
		s.respond(types.Success(fmt.Sprintf(
			"Pixels %d-%d on strip %d set to RGB(%d,%d,%d)",
			start, end, cmd.Strip, *cmd.R, *cmd.G, *cmd.B)))

	case types.RGBAll:
		strip.Fill(0, strip.NumPixels()-1, col)
		s.show(strip, settleAll)
		s.respond(types.Success(fmt.Sprintf(
			"All pixels on strip %d set to RGB(%d,%d,%d)",
			cmd.Strip, *cmd.R, *cmd.G, *cmd.B)))

	case types.RGBClear:
		strip.Clear()
		s.show(strip, settleClear)
		s.respond(types.Success(fmt.Sprintf("Strip %d cleared", cmd.Strip)))

	default:
		s.respondErr(errcode.InvalidRGBMode)
	}
}

// show pushes the prepared frame and waits for the strip to settle.
func (s *Service) show(strip *hal.Strip, settle time.Duration) {
	_ = s.hal.ShowStrip(strip)
	time.Sleep(settle)
}

// ------------------------
// led
// ------------------------

func (s *Service) handleLED(raw []byte) {
	var cmd types.LEDCommand
	if err := json.Unmarshal(raw, &cmd); err != nil {
		s.respondErr(errcode.InvalidJSON)
		return
	}
	cmd.ApplyDefaults()

	switch cmd.Mode {
	case types.LEDDigital:
		on := *cmd.State
		s.hal.SetLEDDigital(on)
		s.respond(types.Success("LED set to " + onOff(on)))

	case types.LEDAnalog:
		value := *cmd.Value
		if !mathx.Between(value, 0, 255) {
			s.respondErr(errcode.InvalidAnalog)
			return
		}
		s.hal.SetLEDAnalog(uint8(value))
		s.respond(types.Success(fmt.Sprintf("LED analog value set to %d", value)))

	default:
		s.respondErr(errcode.InvalidLEDMode)
	}
}

// ------------------------
// relay
// ------------------------

func (s *Service) handleRelay(raw []byte) {
	var cmd types.RelayCommand
	if err := json.Unmarshal(raw, &cmd); err != nil {
		s.respondErr(errcode.InvalidJSON)
		return
	}
	if cmd.Relay != 1 && cmd.Relay != 2 {
		s.respondErr(errcode.InvalidRelay)
		return
	}
	cmd.ApplyDefaults()

	on := *cmd.State
	s.hal.SetRelay(cmd.Relay, on)
	s.respond(types.Success(fmt.Sprintf("Relay %d set to %s", cmd.Relay, onOff(on))))
}

// ------------------------
// read
// ------------------------

func (s *Service) handleRead(raw []byte) {
	var cmd types.ReadCommand
	if err := json.Unmarshal(raw, &cmd); err != nil {
		s.respondErr(errcode.InvalidJSON)
		return
	}

	switch cmd.Sensor {
	case types.SensorTemp:
		if s.hal.Temp == nil || !s.hal.Temp.Connected() {
			s.respondErr(errcode.TempNotResponding)
			return
		}
		milli, err := s.hal.Temp.ReadTemperature()
		if err != nil {
			s.respondErr(errcode.TempReadError)
			return
		}
		s.respond(types.TempReading{
			Status:     types.StatusSuccess,
			Sensor:     types.SensorTemp,
			Celsius:    float64(milli) / 1000,
			Resolution: "0.5",
			Address:    "0x48",
		})

	case types.SensorLB:
		cmd.ApplyDefaults()
		switch cmd.Mode {
		case types.LBAnalog:
			s.respond(types.LBAnalogReading{
				Status: types.StatusSuccess,
				Sensor: types.SensorLB,
				Mode:   types.LBAnalog,
				Value:  s.hal.ReadPaperRaw(),
				Range:  "0-1023",
			})
		case types.LBDigital:
			raw := s.hal.ReadPaperRaw()
			value := 0
			if raw > s.lbThreshold {
				value = 1
			}
			s.respond(types.LBDigitalReading{
				Status:    types.StatusSuccess,
				Sensor:    types.SensorLB,
				Mode:      types.LBDigital,
				Value:     value,
				Threshold: s.lbThreshold,
				RawValue:  raw,
			})
		default:
			s.respondErr(errcode.InvalidLBMode)
		}

	case types.SensorRS:
		value := 0
		if s.hal.ReadBarrier() {
			value = 1
		}
		s.respond(types.BarrierReading{
			Status: types.StatusSuccess,
			Sensor: types.SensorRS,
			Value:  value,
		})

	default:
		s.respondErr(errcode.InvalidSensor)
	}
}

// ------------------------
// config
// ------------------------

func (s *Service) handleConfig(raw []byte) {
	var cmd types.ConfigCommand
	if err := json.Unmarshal(raw, &cmd); err != nil {
		s.respondErr(errcode.InvalidJSON)
		return
	}

	switch cmd.Setting {
	case types.SettingLBThreshold:
		cmd.ApplyDefaults(s.lbThreshold)
		value := *cmd.Value
		if !mathx.Between(value, 0, 1023) {
			s.respondErr(errcode.InvalidThreshold)
			return
		}
		s.lbThreshold = value
		s.respond(types.Success(fmt.Sprintf("LB threshold set to %d", value)))

	default:
		s.respondErr(errcode.InvalidSetting)
	}
}

func onOff(on bool) string {
	if on {
		return "ON"
	}
	return "OFF"
}
