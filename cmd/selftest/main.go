//go:build !rp2040 && !rp2350

// Command selftest drives the full firmware stack on host fakes: real bus,
// real HAL, real console dispatcher, scripted peripherals. It walks every
// action family through the byte pipeline and prints a PASS/FAIL summary.
package main

import (
	"context"
	"os"
	"strings"
	"time"

	"ledctrl-go/bus"
	"ledctrl-go/config"
	"ledctrl-go/hal"
	"ledctrl-go/platform"
	"ledctrl-go/services/console"
)

type harness struct {
	board *platform.HostBoard
	pass  int
	fail  int
}

// send feeds one line and waits for the first new complete response line.
func (h *harness) send(cmd string) string {
	before := h.board.Port.Output()
	h.board.Port.Feed(cmd + "\n")

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		out := h.board.Port.Output()
		if extra := out[len(before):]; strings.Contains(extra, "\r\n") {
			line := extra[:strings.Index(extra, "\r\n")]
			return line
		}
		time.Sleep(2 * time.Millisecond)
	}
	return ""
}

func (h *harness) expect(name, cmd, want string) {
	got := h.send(cmd)
	if strings.Contains(got, want) {
		h.pass++
		println("[selftest] PASS:", name)
		return
	}
	h.fail++
	println("[selftest] FAIL:", name)
	println("[selftest]   sent:", cmd)
	println("[selftest]   want:", want)
	println("[selftest]   got: ", got)
}

func main() {
	cfg := config.Default()
	b := bus.NewBus(8)
	config.Publish(b.NewConnection("config"), cfg)

	board := platform.NewHostBoard(cfg)
	h := hal.New(board.Resources(), b.NewConnection("hal"))
	if err := h.Init(); err != nil {
		println("[selftest] hal init error:", err.Error())
		os.Exit(1)
	}

	svc := console.New(board.Port, h, console.Options{
		LBThreshold: cfg.Sensors.LBThreshold,
	})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go svc.Run(ctx)

	// Wait for the full banner (the LM75 probe line is last) before talking.
	deadline := time.Now().Add(2 * time.Second)
	for !strings.Contains(board.Port.Output(), "LM75 detected at 0x48") {
		if time.Now().After(deadline) {
			println("[selftest] FAIL: no boot banner")
			os.Exit(1)
		}
		time.Sleep(2 * time.Millisecond)
	}

	ht := &harness{board: board}

	// RGB strips
	ht.expect("rgb single",
		`{"action":"rgb","strip":1,"mode":"single","pixel":0,"r":255,"g":0,"b":0}`,
		"Pixel 0 on strip 1 set to RGB(255,0,0)")
	ht.expect("rgb range",
		`{"action":"rgb","strip":1,"mode":"range","start":0,"end":9,"r":0,"g":255,"b":0}`,
		"Pixels 0-9 on strip 1 set to RGB(0,255,0)")
	ht.expect("rgb all",
		`{"action":"rgb","strip":2,"mode":"all","r":0,"g":0,"b":255}`,
		"All pixels on strip 2 set to RGB(0,0,255)")
	ht.expect("rgb clear",
		`{"action":"rgb","strip":1,"mode":"clear"}`,
		"Strip 1 cleared")
	ht.expect("rgb bad strip",
		`{"action":"rgb","strip":3,"mode":"all"}`,
		"Invalid strip number. Use 1 or 2")
	ht.expect("rgb bad pixel",
		`{"action":"rgb","strip":1,"mode":"single","pixel":999}`,
		"Invalid pixel number. Range: 0-77")
	ht.expect("rgb bad range",
		`{"action":"rgb","strip":1,"mode":"range","start":9,"end":3}`,
		"Invalid pixel range")
	ht.expect("rgb bad mode",
		`{"action":"rgb","strip":1,"mode":"wave"}`,
		"Invalid mode. Use: single, range, all, clear")

	// Framebuffer check after "all" on strip 2.
	blue := true
	for _, c := range board.Strip2.Last() {
		if c.B != 255 || c.R != 0 || c.G != 0 {
			blue = false
			break
		}
	}
	if blue {
		ht.pass++
		println("[selftest] PASS: strip 2 frame is all blue")
	} else {
		ht.fail++
		println("[selftest] FAIL: strip 2 frame is all blue")
	}

	// Single LED
	ht.expect("led on", `{"action":"led","mode":"digital","state":true}`, "LED set to ON")
	ht.expect("led off", `{"action":"led","state":false}`, "LED set to OFF")
	ht.expect("led pwm", `{"action":"led","mode":"analog","value":128}`, "LED analog value set to 128")
	ht.expect("led pwm oob", `{"action":"led","mode":"analog","value":300}`, "Invalid analog value. Range: 0-255")
	ht.expect("led bad mode", `{"action":"led","mode":"blink"}`, "Invalid LED mode. Use: digital, analog")

	// Relays
	ht.expect("relay 1 on", `{"action":"relay","relay":1,"state":true}`, "Relay 1 set to ON")
	ht.expect("relay 2 off", `{"action":"relay","relay":2,"state":false}`, "Relay 2 set to OFF")
	ht.expect("relay bad id", `{"action":"relay","relay":5,"state":true}`, "Invalid relay number. Use 1 or 2")
	if board.Relay1.Get() && !board.Relay2.Get() {
		ht.pass++
		println("[selftest] PASS: relay outputs latched")
	} else {
		ht.fail++
		println("[selftest] FAIL: relay outputs latched")
	}

	// Sensors
	board.Paper.Set10Bit(731)
	ht.expect("lb analog", `{"action":"read","sensor":"lb","mode":"analog"}`, `"value":731`)
	ht.expect("lb digital hi", `{"action":"read","sensor":"lb","mode":"digital"}`, `"value":1`)
	board.Paper.Set10Bit(100)
	ht.expect("lb digital lo", `{"action":"read","sensor":"lb","mode":"digital"}`, `"value":0`)
	board.Barrier.Set(true)
	ht.expect("rs high", `{"action":"read","sensor":"rs"}`, `"value":1`)
	board.Barrier.Set(false)
	ht.expect("rs low", `{"action":"read","sensor":"rs"}`, `"value":0`)
	ht.expect("bad sensor", `{"action":"read","sensor":"xyz"}`, "Invalid sensor. Use: lb, rs")

	// Temperature
	board.Temp.Milli = 25_000
	ht.expect("temp read", `{"action":"read","sensor":"temp"}`, `"celsius":25`)
	board.Temp.FailRead = true
	ht.expect("temp read error", `{"action":"read","sensor":"temp"}`, "LM75 read error")
	board.Temp.FailRead = false
	board.Temp.Present = false
	ht.expect("temp absent", `{"action":"read","sensor":"temp"}`, "LM75 not responding at 0x48")
	board.Temp.Present = true

	// Configuration
	ht.expect("set threshold", `{"action":"config","setting":"lb_threshold","value":600}`, "LB threshold set to 600")
	board.Paper.Set10Bit(600)
	ht.expect("threshold boundary", `{"action":"read","sensor":"lb","mode":"digital"}`, `"value":0`)
	ht.expect("threshold oob", `{"action":"config","setting":"lb_threshold","value":2000}`, "Invalid threshold value. Range: 0-1023")
	ht.expect("bad setting", `{"action":"config","setting":"volume"}`, "Invalid setting. Available: lb_threshold")

	// Protocol edges
	ht.expect("garbage", `{{{{`, "Invalid JSON format")
	ht.expect("unknown action", `{"action":"fly"}`, "Unknown action: fly")

	// help is multi-line, so watch the raw output instead of one line.
	before := board.Port.Output()
	board.Port.Feed("help\n")
	deadline = time.Now().Add(2 * time.Second)
	for !strings.Contains(board.Port.Output()[len(before):], "=== LED Controller API Documentation ===") {
		if time.Now().After(deadline) {
			break
		}
		time.Sleep(2 * time.Millisecond)
	}
	if strings.Contains(board.Port.Output()[len(before):], "Ready for commands...") {
		ht.pass++
		println("[selftest] PASS: help")
	} else {
		ht.fail++
		println("[selftest] FAIL: help")
	}

	println("[selftest] done:", ht.pass, "passed,", ht.fail, "failed")
	if ht.fail > 0 {
		os.Exit(1)
	}
}
