package console

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"image/color"
	"strings"
	"sync"
	"testing"
	"time"

	"ledctrl-go/hal"
)

// ---- Fakes ----

type frameRec struct {
	frames [][]color.RGBA
}

func (f *frameRec) WriteColors(buf []color.RGBA) error {
	f.frames = append(f.frames, append([]color.RGBA(nil), buf...))
	return nil
}

func (f *frameRec) reset() { f.frames = nil }

func (f *frameRec) last() []color.RGBA {
	if len(f.frames) == 0 {
		return nil
	}
	return f.frames[len(f.frames)-1]
}

type fakePin struct {
	level   bool
	isOut   bool
	changes int
}

func (p *fakePin) ConfigureInput(hal.Pull) error { p.isOut = false; return nil }
func (p *fakePin) ConfigureOutput(initial bool) error {
	p.isOut = true
	p.level = initial
	return nil
}
func (p *fakePin) Set(level bool) { p.level = level; p.changes++ }
func (p *fakePin) Get() bool      { return p.level }
func (p *fakePin) Number() int    { return 0 }

type fakeADC struct{ v uint16 }

func (a *fakeADC) Get() uint16 { return a.v }

func (a *fakeADC) set10bit(raw int) { a.v = uint16(raw) << 6 }

type fakeLED struct {
	digital bool
	on      bool
	level   uint8
	writes  int
}

func (l *fakeLED) Configure() error    { l.digital = true; l.on = false; return nil }
func (l *fakeLED) SetDigital(on bool)  { l.digital = true; l.on = on; l.writes++ }
func (l *fakeLED) SetAnalog(lvl uint8) { l.digital = false; l.level = lvl; l.writes++ }

// fakeI2C emulates the LM75: probe transactions (no read buffer) and
// two-byte temperature reads are scripted independently.
type fakeI2C struct {
	probeErr error
	readErr  error
	msb, lsb byte
}

func (f *fakeI2C) Tx(addr uint16, w, r []byte) error {
	if len(r) == 0 {
		return f.probeErr
	}
	if f.readErr != nil {
		return f.readErr
	}
	r[0] = f.msb
	r[1] = f.lsb
	return nil
}

type fakePort struct {
	mu  sync.Mutex
	in  []byte
	out bytes.Buffer
}

func (p *fakePort) Buffered() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.in)
}

func (p *fakePort) ReadByte() (byte, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.in) == 0 {
		return 0, errors.New("empty")
	}
	b := p.in[0]
	p.in = p.in[1:]
	return b, nil
}

func (p *fakePort) Write(b []byte) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.out.Write(b)
}

func (p *fakePort) feed(s string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.in = append(p.in, s...)
}

func (p *fakePort) output() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.out.String()
}

func (p *fakePort) resetOutput() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.out.Reset()
}

// ---- Fixture ----

type fixture struct {
	s    *Service
	port *fakePort

	rec1, rec2 *frameRec
	led        *fakeLED
	r1, r2     *fakePin
	barrier    *fakePin
	adc        *fakeADC
	i2c        *fakeI2C
	h          *hal.HAL
}

func newFixture(t *testing.T, withTemp bool) *fixture {
	t.Helper()
	fx := &fixture{
		port:    &fakePort{},
		rec1:    &frameRec{},
		rec2:    &frameRec{},
		led:     &fakeLED{},
		r1:      &fakePin{},
		r2:      &fakePin{},
		barrier: &fakePin{},
		adc:     &fakeADC{},
		i2c:     &fakeI2C{},
	}
	res := hal.Resources{
		Strip1: fx.rec1, Strip2: fx.rec2,
		Strip1Len: 78, Strip2Len: 78,
		LED:    fx.led,
		Relay1: fx.r1, Relay2: fx.r2,
		Barrier: fx.barrier,
		Paper:   fx.adc,
	}
	if withTemp {
		res.I2C = fx.i2c
	}
	fx.h = hal.New(res, nil)
	if err := fx.h.Init(); err != nil {
		t.Fatal(err)
	}
	fx.rec1.reset()
	fx.rec2.reset()
	fx.s = New(fx.port, fx.h, Options{LBThreshold: 512})
	return fx
}

// exec runs one command line through the dispatcher and returns the
// response lines written to the port.
func (fx *fixture) exec(line string) []string {
	fx.port.resetOutput()
	fx.s.processLine(line)
	out := strings.TrimRight(fx.port.output(), "\r\n")
	if out == "" {
		return nil
	}
	return strings.Split(out, "\r\n")
}

// one runs a command expecting exactly one response line.
func (fx *fixture) one(t *testing.T, line string) string {
	t.Helper()
	got := fx.exec(line)
	if len(got) != 1 {
		t.Fatalf("command %q: %d response lines: %q", line, len(got), got)
	}
	return got[0]
}

func errLine(message string) string {
	return `{"status":"error","message":"` + message + `"}`
}

func successLine(message string) string {
	return `{"status":"success","message":"` + message + `"}`
}

// ---- Router ----

func TestMalformedJSON(t *testing.T) {
	fx := newFixture(t, false)
	for _, line := range []string{
		`{"action":"rgb"`,
		`not json`,
		`[1,2,3]`,
		`"rgb"`,
		``,
	} {
		if got := fx.one(t, line); got != errLine("Invalid JSON format") {
			t.Errorf("line %q: got %s", line, got)
		}
	}
}

func TestUnknownAction(t *testing.T) {
	fx := newFixture(t, false)
	if got := fx.one(t, `{"action":"dance"}`); got != errLine("Unknown action: dance") {
		t.Errorf("got %s", got)
	}
	if got := fx.one(t, `{"strip":1}`); got != errLine("Unknown action: ") {
		t.Errorf("missing action: got %s", got)
	}
}

func TestHelpIsCaseInsensitivePlainText(t *testing.T) {
	fx := newFixture(t, false)
	for _, cmd := range []string{"help", "HELP", "Help", "  help  "} {
		lines := fx.exec(cmd)
		if len(lines) < 10 {
			t.Fatalf("%q: help too short (%d lines)", cmd, len(lines))
		}
		joined := strings.Join(lines, "\n")
		if !strings.Contains(joined, "=== LED Controller API Documentation ===") {
			t.Errorf("%q: no documentation header", cmd)
		}
		if strings.Contains(joined, `"status"`) {
			// help is the single non-JSON response
			t.Errorf("%q: help should not be JSON", cmd)
		}
		if !strings.Contains(joined, "- pixel: 0-77 (78 LEDs total per strip)") {
			t.Errorf("%q: pixel range line missing", cmd)
		}
	}
}

// ---- rgb ----

func TestRGBSingleSetsExactlyOnePixel(t *testing.T) {
	fx := newFixture(t, false)
	got := fx.one(t, `{"action":"rgb","strip":1,"mode":"single","pixel":7,"r":10,"g":20,"b":30}`)
	if got != successLine("Pixel 7 on strip 1 set to RGB(10,20,30)") {
		t.Fatalf("got %s", got)
	}
	if len(fx.rec1.frames) != 1 {
		t.Fatalf("%d frames pushed, want 1", len(fx.rec1.frames))
	}
	for i, c := range fx.rec1.last() {
		want := color.RGBA{}
		if i == 7 {
			want = color.RGBA{R: 10, G: 20, B: 30}
		}
		if c != want {
			t.Errorf("pixel %d = %v, want %v", i, c, want)
		}
	}
	if len(fx.rec2.frames) != 0 {
		t.Error("strip 2 must be untouched")
	}
}

func TestRGBSingleDefaultsPixelZero(t *testing.T) {
	fx := newFixture(t, false)
	got := fx.one(t, `{"action":"rgb","strip":2,"r":1}`)
	if got != successLine("Pixel 0 on strip 2 set to RGB(1,0,0)") {
		t.Fatalf("got %s", got)
	}
	if fx.rec2.last()[0] != (color.RGBA{R: 1}) {
		t.Error("pixel 0 on strip 2 not set")
	}
}

func TestRGBSinglePixelOutOfRange(t *testing.T) {
	fx := newFixture(t, false)
	for _, pixel := range []string{"78", "-1", "1000"} {
		got := fx.one(t, `{"action":"rgb","strip":1,"mode":"single","pixel":`+pixel+`}`)
		if got != errLine("Invalid pixel number. Range: 0-77") {
			t.Errorf("pixel %s: got %s", pixel, got)
		}
	}
	if len(fx.rec1.frames) != 0 {
		t.Error("no frame may be pushed on validation failure")
	}
}

func TestRGBInvalidStrip(t *testing.T) {
	fx := newFixture(t, false)
	for _, strip := range []string{"0", "3", "-1"} {
		got := fx.one(t, `{"action":"rgb","strip":`+strip+`,"mode":"all","r":255}`)
		if got != errLine("Invalid strip number. Use 1 or 2") {
			t.Errorf("strip %s: got %s", strip, got)
		}
	}
	if len(fx.rec1.frames)+len(fx.rec2.frames) != 0 {
		t.Error("no hardware write on invalid strip")
	}
}

func TestRGBRange(t *testing.T) {
	fx := newFixture(t, false)
	got := fx.one(t, `{"action":"rgb","strip":1,"mode":"range","start":10,"end":20,"r":0,"g":255,"b":0}`)
	if got != successLine("Pixels 10-20 on strip 1 set to RGB(0,255,0)") {
		t.Fatalf("got %s", got)
	}
	if len(fx.rec1.frames) != 1 {
		t.Fatalf("%d frames pushed, want a single batched push", len(fx.rec1.frames))
	}
	for i, c := range fx.rec1.last() {
		want := color.RGBA{}
		if i >= 10 && i <= 20 {
			want = color.RGBA{G: 255}
		}
		if c != want {
			t.Errorf("pixel %d = %v, want %v", i, c, want)
		}
	}
}

func TestRGBRangeDefaultsToWholeStrip(t *testing.T) {
	fx := newFixture(t, false)
	got := fx.one(t, `{"action":"rgb","strip":1,"mode":"range","b":5}`)
	if got != successLine("Pixels 0-77 on strip 1 set to RGB(0,0,5)") {
		t.Fatalf("got %s", got)
	}
}

func TestRGBRangeInvalid(t *testing.T) {
	fx := newFixture(t, false)
	for _, body := range []string{
		`"start":-1,"end":5`,
		`"start":0,"end":78`,
		`"start":10,"end":9`,
	} {
		got := fx.one(t, `{"action":"rgb","strip":1,"mode":"range",`+body+`,"r":1}`)
		if got != errLine("Invalid pixel range") {
			t.Errorf("%s: got %s", body, got)
		}
	}
	if len(fx.rec1.frames) != 0 {
		t.Error("no frame on invalid range")
	}
}

func TestRGBAllAndClear(t *testing.T) {
	fx := newFixture(t, false)
	got := fx.one(t, `{"action":"rgb","strip":2,"mode":"all","r":1,"g":2,"b":3}`)
	if got != successLine("All pixels on strip 2 set to RGB(1,2,3)") {
		t.Fatalf("got %s", got)
	}
	for i, c := range fx.rec2.last() {
		if c != (color.RGBA{R: 1, G: 2, B: 3}) {
			t.Fatalf("pixel %d = %v after all", i, c)
		}
	}

	got = fx.one(t, `{"action":"rgb","strip":2,"mode":"clear"}`)
	if got != successLine("Strip 2 cleared") {
		t.Fatalf("got %s", got)
	}
	for i, c := range fx.rec2.last() {
		if c != (color.RGBA{}) {
			t.Fatalf("pixel %d = %v after clear", i, c)
		}
	}
}

func TestRGBInvalidMode(t *testing.T) {
	fx := newFixture(t, false)
	got := fx.one(t, `{"action":"rgb","strip":1,"mode":"blink"}`)
	if got != errLine("Invalid mode. Use: single, range, all, clear") {
		t.Errorf("got %s", got)
	}
}

func TestRGBColorTruncation(t *testing.T) {
	// Components are not clamped; they truncate like the driver's uint8.
	fx := newFixture(t, false)
	got := fx.one(t, `{"action":"rgb","strip":1,"mode":"single","pixel":0,"r":256,"g":300,"b":-1}`)
	if got != successLine("Pixel 0 on strip 1 set to RGB(256,300,-1)") {
		t.Fatalf("got %s", got)
	}
	if c := fx.rec1.last()[0]; c != (color.RGBA{R: 0, G: 44, B: 255}) {
		t.Errorf("truncated color = %v", c)
	}
}

// ---- led ----

func TestLEDDigital(t *testing.T) {
	fx := newFixture(t, false)
	if got := fx.one(t, `{"action":"led","mode":"digital","state":true}`); got != successLine("LED set to ON") {
		t.Fatalf("got %s", got)
	}
	if !fx.led.on || !fx.led.digital {
		t.Error("LED not driven high")
	}
	if got := fx.one(t, `{"action":"led","state":false}`); got != successLine("LED set to OFF") {
		t.Fatalf("default digital mode: got %s", got)
	}
	if fx.led.on {
		t.Error("LED not driven low")
	}
	// state defaults to false
	fx.led.on = true
	if got := fx.one(t, `{"action":"led"}`); got != successLine("LED set to OFF") {
		t.Fatalf("got %s", got)
	}
}

func TestLEDAnalogBounds(t *testing.T) {
	fx := newFixture(t, false)
	for _, v := range []string{"0", "255", "128"} {
		got := fx.one(t, `{"action":"led","mode":"analog","value":`+v+`}`)
		if got != successLine("LED analog value set to "+v) {
			t.Errorf("value %s: got %s", v, got)
		}
	}
	if fx.led.level != 128 {
		t.Errorf("duty = %d, want 128", fx.led.level)
	}

	writes := fx.led.writes
	for _, v := range []string{"-1", "256", "1000"} {
		got := fx.one(t, `{"action":"led","mode":"analog","value":`+v+`}`)
		if got != errLine("Invalid analog value. Range: 0-255") {
			t.Errorf("value %s: got %s", v, got)
		}
	}
	if fx.led.writes != writes {
		t.Error("no PWM write on rejected value")
	}
}

func TestLEDInvalidMode(t *testing.T) {
	fx := newFixture(t, false)
	if got := fx.one(t, `{"action":"led","mode":"strobe"}`); got != errLine("Invalid LED mode. Use: digital, analog") {
		t.Errorf("got %s", got)
	}
}

// ---- relay ----

func TestRelaySetAndIndependence(t *testing.T) {
	fx := newFixture(t, false)
	if got := fx.one(t, `{"action":"relay","relay":1,"state":true}`); got != successLine("Relay 1 set to ON") {
		t.Fatalf("got %s", got)
	}
	if !fx.r1.level || fx.r2.level {
		t.Error("relay 1 on, relay 2 untouched expected")
	}
	if got := fx.one(t, `{"action":"relay","relay":2,"state":true}`); got != successLine("Relay 2 set to ON") {
		t.Fatalf("got %s", got)
	}
	if got := fx.one(t, `{"action":"relay","relay":1,"state":false}`); got != successLine("Relay 1 set to OFF") {
		t.Fatalf("got %s", got)
	}
	if !fx.r2.level {
		t.Error("relay 2 must stay latched")
	}
}

func TestRelayInvalidNumber(t *testing.T) {
	fx := newFixture(t, false)
	c1, c2 := fx.r1.changes, fx.r2.changes
	for _, relay := range []string{"0", "3", "-1"} {
		got := fx.one(t, `{"action":"relay","relay":`+relay+`,"state":true}`)
		if got != errLine("Invalid relay number. Use 1 or 2") {
			t.Errorf("relay %s: got %s", relay, got)
		}
	}
	if fx.r1.changes != c1 || fx.r2.changes != c2 {
		t.Error("no output may toggle on invalid relay id")
	}
}

// ---- read ----

func TestReadLBAnalog(t *testing.T) {
	fx := newFixture(t, false)
	fx.adc.set10bit(731)
	got := fx.one(t, `{"action":"read","sensor":"lb"}`)
	want := `{"status":"success","sensor":"lb","mode":"analog","value":731,"range":"0-1023"}`
	if got != want {
		t.Errorf("got %s\nwant %s", got, want)
	}
}

func TestReadLBDigitalThreshold(t *testing.T) {
	fx := newFixture(t, false)

	cases := []struct {
		raw, threshold, want int
	}{
		{513, 512, 1},
		{512, 512, 0}, // raw == threshold classifies as 0
		{511, 512, 0},
		{1023, 1000, 1},
		{0, 0, 0},
	}
	for _, c := range cases {
		fx.s.lbThreshold = c.threshold
		fx.adc.set10bit(c.raw)
		got := fx.one(t, `{"action":"read","sensor":"lb","mode":"digital"}`)
		var r struct {
			Status    string `json:"status"`
			Value     int    `json:"value"`
			Threshold int    `json:"threshold"`
			RawValue  int    `json:"raw_value"`
		}
		if err := json.Unmarshal([]byte(got), &r); err != nil {
			t.Fatalf("bad response %s: %v", got, err)
		}
		if r.Status != "success" || r.Value != c.want || r.Threshold != c.threshold || r.RawValue != c.raw {
			t.Errorf("raw %d threshold %d: got %s", c.raw, c.threshold, got)
		}
	}
}

func TestReadLBInvalidMode(t *testing.T) {
	fx := newFixture(t, false)
	if got := fx.one(t, `{"action":"read","sensor":"lb","mode":"fuzzy"}`); got != errLine("Invalid LB mode. Use: analog, digital") {
		t.Errorf("got %s", got)
	}
}

func TestReadRS(t *testing.T) {
	fx := newFixture(t, false)
	fx.barrier.level = true
	if got := fx.one(t, `{"action":"read","sensor":"rs"}`); got != `{"status":"success","sensor":"rs","value":1}` {
		t.Errorf("got %s", got)
	}
	fx.barrier.level = false
	if got := fx.one(t, `{"action":"read","sensor":"rs"}`); got != `{"status":"success","sensor":"rs","value":0}` {
		t.Errorf("got %s", got)
	}
}

func TestReadInvalidSensor(t *testing.T) {
	fx := newFixture(t, false)
	// The message intentionally omits temp even though temp is handled.
	if got := fx.one(t, `{"action":"read","sensor":"xyz"}`); got != errLine("Invalid sensor. Use: lb, rs") {
		t.Errorf("got %s", got)
	}
	if got := fx.one(t, `{"action":"read"}`); got != errLine("Invalid sensor. Use: lb, rs") {
		t.Errorf("empty sensor: got %s", got)
	}
}

func TestReadTemp(t *testing.T) {
	fx := newFixture(t, true)
	fx.i2c.msb, fx.i2c.lsb = 0x01, 0x90 // 1.5 °C
	got := fx.one(t, `{"action":"read","sensor":"temp"}`)
	want := `{"status":"success","sensor":"temp","celsius":1.5,"resolution":"0.5","address":"0x48"}`
	if got != want {
		t.Errorf("got %s\nwant %s", got, want)
	}

	fx.i2c.msb, fx.i2c.lsb = 0xE7, 0x00 // -25 °C
	got = fx.one(t, `{"action":"read","sensor":"temp"}`)
	if !strings.Contains(got, `"celsius":-25`) {
		t.Errorf("negative decode: got %s", got)
	}
}

func TestReadTempNotResponding(t *testing.T) {
	fx := newFixture(t, true)
	fx.i2c.probeErr = errors.New("nak")
	if got := fx.one(t, `{"action":"read","sensor":"temp"}`); got != errLine("LM75 not responding at 0x48") {
		t.Errorf("got %s", got)
	}

	// Without any I2C bus the sensor is simply absent.
	fx = newFixture(t, false)
	if got := fx.one(t, `{"action":"read","sensor":"temp"}`); got != errLine("LM75 not responding at 0x48") {
		t.Errorf("got %s", got)
	}
}

func TestReadTempReadError(t *testing.T) {
	fx := newFixture(t, true)
	fx.i2c.readErr = errors.New("short read")
	if got := fx.one(t, `{"action":"read","sensor":"temp"}`); got != errLine("LM75 read error") {
		t.Errorf("got %s", got)
	}
}

// ---- config ----

func TestConfigThresholdPersistsAndClassifies(t *testing.T) {
	fx := newFixture(t, false)
	if got := fx.one(t, `{"action":"config","setting":"lb_threshold","value":600}`); got != successLine("LB threshold set to 600") {
		t.Fatalf("got %s", got)
	}

	fx.adc.set10bit(601)
	got := fx.one(t, `{"action":"read","sensor":"lb","mode":"digital"}`)
	if !strings.Contains(got, `"value":1`) || !strings.Contains(got, `"threshold":600`) {
		t.Errorf("601 vs 600: got %s", got)
	}
	fx.adc.set10bit(600)
	got = fx.one(t, `{"action":"read","sensor":"lb","mode":"digital"}`)
	if !strings.Contains(got, `"value":0`) {
		t.Errorf("raw == threshold must classify 0: got %s", got)
	}
}

func TestConfigThresholdBounds(t *testing.T) {
	fx := newFixture(t, false)
	for _, v := range []string{"0", "1023"} {
		if got := fx.one(t, `{"action":"config","setting":"lb_threshold","value":`+v+`}`); got != successLine("LB threshold set to "+v) {
			t.Errorf("value %s: got %s", v, got)
		}
	}
	for _, v := range []string{"-1", "1024"} {
		if got := fx.one(t, `{"action":"config","setting":"lb_threshold","value":`+v+`}`); got != errLine("Invalid threshold value. Range: 0-1023") {
			t.Errorf("value %s: got %s", v, got)
		}
	}
	// rejected values must not stick
	fx.adc.set10bit(1023)
	got := fx.one(t, `{"action":"read","sensor":"lb","mode":"digital"}`)
	if !strings.Contains(got, `"threshold":1023`) {
		t.Errorf("threshold should still be 1023: got %s", got)
	}
}

func TestConfigValueDefaultsToCurrent(t *testing.T) {
	fx := newFixture(t, false)
	if got := fx.one(t, `{"action":"config","setting":"lb_threshold"}`); got != successLine("LB threshold set to 512") {
		t.Errorf("got %s", got)
	}
}

func TestConfigUnknownSetting(t *testing.T) {
	fx := newFixture(t, false)
	if got := fx.one(t, `{"action":"config","setting":"brightness","value":1}`); got != errLine("Invalid setting. Available: lb_threshold") {
		t.Errorf("got %s", got)
	}
}

// ---- end-to-end scenario ----

func TestEndToEndBlueStrip(t *testing.T) {
	fx := newFixture(t, false)
	got := fx.one(t, `{"action":"rgb","strip":1,"mode":"all","r":0,"g":0,"b":255}`)
	if got != successLine("All pixels on strip 1 set to RGB(0,0,255)") {
		t.Fatalf("got %s", got)
	}
	frame := fx.rec1.last()
	if len(frame) != 78 {
		t.Fatalf("frame length %d", len(frame))
	}
	for i, c := range frame {
		if c != (color.RGBA{B: 255}) {
			t.Fatalf("pixel %d = %v, want blue", i, c)
		}
	}
}

// ---- byte pipeline (Run loop) ----

func runFixture(t *testing.T) (*fixture, context.CancelFunc) {
	t.Helper()
	fx := newFixture(t, false)
	ctx, cancel := context.WithCancel(context.Background())
	go fx.s.Run(ctx)
	// The LM75 probe line is the last banner line.
	waitFor(t, func() bool {
		return strings.Contains(fx.port.output(), "LM75 not detected (optional sensor)")
	})
	fx.port.resetOutput()
	return fx, cancel
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatal("condition not reached")
}

func TestRunProcessesLine(t *testing.T) {
	fx, cancel := runFixture(t)
	defer cancel()

	fx.port.feed(`{"action":"relay","relay":1,"state":true}` + "\n")
	waitFor(t, func() bool {
		return strings.Contains(fx.port.output(), successLine("Relay 1 set to ON"))
	})
	if !fx.r1.level {
		t.Error("relay output not latched")
	}
}

func TestRunDropsNonPrintableBytes(t *testing.T) {
	fx, cancel := runFixture(t)
	defer cancel()

	// Interleave control and high bytes; they must vanish silently.
	fx.port.feed("\x01{\"action\"\x7f:\"relay\",\"relay\"\x02:2,\"state\":true}\x1b\n")
	waitFor(t, func() bool {
		return strings.Contains(fx.port.output(), successLine("Relay 2 set to ON"))
	})
}

func TestRunDiscardsPendingAfterComplete(t *testing.T) {
	fx, cancel := runFixture(t)
	defer cancel()

	// Both lines land in one tick; the second is flushed, not executed.
	fx.port.feed(`{"action":"relay","relay":1,"state":true}` + "\n" +
		`{"action":"relay","relay":2,"state":true}` + "\n")
	waitFor(t, func() bool {
		return strings.Contains(fx.port.output(), successLine("Relay 1 set to ON"))
	})
	time.Sleep(50 * time.Millisecond)
	if fx.r2.level {
		t.Error("second command in the same tick must be discarded")
	}

	// A command arriving later is served normally.
	fx.port.feed(`{"action":"relay","relay":2,"state":true}` + "\r")
	waitFor(t, func() bool { return fx.r2.level })
}

func TestRunEmptyLineIsInvalidJSON(t *testing.T) {
	fx, cancel := runFixture(t)
	defer cancel()

	fx.port.feed("\n")
	waitFor(t, func() bool {
		return strings.Contains(fx.port.output(), errLine("Invalid JSON format"))
	})
}
