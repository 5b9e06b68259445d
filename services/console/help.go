package console

import "fmt"

// writeHelp prints the plain-text API documentation. This is the one
// response that is not JSON.
func (s *Service) writeHelp() {
	last := s.hal.Strip1.NumPixels() - 1
	count := s.hal.Strip1.NumPixels()

	lines := []string{
		"",
		"=== LED Controller API Documentation ===",
		"",
		"All commands use JSON format. Examples:",
		"",
		"1. RGB STRIP CONTROL:",
		`   Single pixel: {"action":"rgb","strip":1,"mode":"single","pixel":0,"r":255,"g":0,"b":0}`,
		`   Range:        {"action":"rgb","strip":1,"mode":"range","start":0,"end":9,"r":0,"g":255,"b":0}`,
		`   All pixels:   {"action":"rgb","strip":2,"mode":"all","r":0,"g":0,"b":255}`,
		`   Clear strip:  {"action":"rgb","strip":1,"mode":"clear"}`,
		"",
		"2. LED CONTROL:",
		`   Digital:      {"action":"led","mode":"digital","state":true}`,
		`   Analog:       {"action":"led","mode":"analog","value":128}`,
		"",
		"3. RELAY CONTROL:",
		`   Relay 1 ON:   {"action":"relay","relay":1,"state":true}`,
		`   Relay 2 OFF:  {"action":"relay","relay":2,"state":false}`,
		"",
		"4. SENSOR READING:",
		`   LB analog:    {"action":"read","sensor":"lb","mode":"analog"}`,
		`   LB digital:   {"action":"read","sensor":"lb","mode":"digital"}`,
		`   RS state:     {"action":"read","sensor":"rs"}`,
		`   Temp LM75:    {"action":"read","sensor":"temp"}`,
		"",
		"5. CONFIGURATION:",
		`   Set threshold: {"action":"config","setting":"lb_threshold","value":600}`,
		"",
		"PARAMETERS:",
		"- strip: 1 (Ring-Top) or 2 (Door)",
		fmt.Sprintf("- pixel: 0-%d (%d LEDs total per strip)", last, count),
		"- r,g,b: 0-255 (RGB color values)",
		"- value: 0-255 (analog LED brightness)",
		"- state: true/false",
		"- lb_threshold: 0-1023 (analog threshold for digital mode)",
		"",
		"All responses are in JSON format with 'status' field.",
		"Ready for commands...",
		"",
	}
	for _, l := range lines {
		s.writeLine(l)
	}
}
