package console

import (
	"encoding/json"
	"strings"

	"ledctrl-go/errcode"
	"ledctrl-go/types"
)

// processLine routes one accumulated command line. The literal "help"
// (case-insensitive) gets the plain-text documentation; everything else
// must be a JSON object with an action field.
func (s *Service) processLine(line string) {
	line = strings.TrimSpace(line)

	if strings.EqualFold(line, "help") {
		s.writeHelp()
		return
	}

	raw := []byte(line)
	var env types.Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		s.respondErr(errcode.InvalidJSON)
		return
	}

	switch env.Action {
	case types.ActionRGB:
		s.handleRGB(raw)
	case types.ActionLED:
		s.handleLED(raw)
	case types.ActionRelay:
		s.handleRelay(raw)
	case types.ActionRead:
		s.handleRead(raw)
	case types.ActionConfig:
		s.handleConfig(raw)
	default:
		s.respondErr(errcode.UnknownAction(string(env.Action)))
	}
}

// respond serialises one response as a single JSON line.
func (s *Service) respond(v any) {
	b, err := json.Marshal(v)
	if err != nil {
		// Responses are fixed structs; this cannot happen in practice.
		s.respondErr(errcode.Code("Internal error"))
		return
	}
	_, _ = s.port.Write(append(b, '\r', '\n'))
}

func (s *Service) respondErr(err error) {
	s.respond(types.Error(err.Error()))
}
