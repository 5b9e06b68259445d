package main

import (
	"context"
	"time"

	"ledctrl-go/bus"
	"ledctrl-go/config"
	"ledctrl-go/hal"
	"ledctrl-go/platform"
	"ledctrl-go/services/console"
	"ledctrl-go/services/heartbeat"
)

func main() {
	// Let the serial link come up before the banner.
	time.Sleep(2 * time.Second)
	println("[main] boot")

	ctx := context.Background()
	cfg := config.Default()

	b := bus.NewBus(8)
	config.Publish(b.NewConnection("config"), cfg)

	res, port := platform.Default(cfg)
	h := hal.New(res, b.NewConnection("hal"))
	if err := h.Init(); err != nil {
		println("[main] hal init error:", err.Error())
	}

	hb := &heartbeat.Service{}
	_ = hb.Start(ctx, b.NewConnection("heartbeat"))

	svc := console.New(port, h, console.Options{
		LBThreshold:  cfg.Sensors.LBThreshold,
		PollInterval: time.Duration(cfg.Console.PollMs) * time.Millisecond,
	})
	svc.Run(ctx)
}
