// Package heartbeat emits a periodic liveness beat: a console println and a
// retained status/heartbeat message other services (or a debugger attached to
// the bus) can observe. The interval follows the retained config/heartbeat
// section.
package heartbeat

import (
	"context"
	"time"

	"ledctrl-go/bus"
	"ledctrl-go/config"
	"ledctrl-go/types"
	"ledctrl-go/x/timex"
)

var (
	topicConfig = bus.T("config", "heartbeat")
	topicStatus = bus.T("status", "heartbeat")
)

type Service struct{}

func (s *Service) serviceLoop(ctx context.Context, conn *bus.Connection) {
	cfgSub := conn.Subscribe(topicConfig)
	defer conn.Unsubscribe(cfgSub)

	start := time.Now()
	tick := time.NewTicker(2 * time.Second)
	defer tick.Stop()

	for {
		select {
		case <-ctx.Done():
			println("Info: heartbeat service stopping")
			return
		case <-tick.C:
			uptime := int64(time.Since(start) / time.Second)
			println("Info: heartbeat, uptime", uptime, "s")
			conn.Publish(conn.NewMessage(topicStatus, types.Heartbeat{
				UptimeS: uptime,
				TSms:    timex.NowMs(),
			}, true))
		case msg := <-cfgSub.Channel():
			if cfg, ok := msg.Payload.(config.HeartbeatConfig); ok && cfg.IntervalS > 0 {
				tick.Reset(time.Duration(cfg.IntervalS) * time.Second)
				println("Info: heartbeat interval set to", cfg.IntervalS, "s")
			}
		}
	}
}

// Start launches the heartbeat loop in its own goroutine.
func (s *Service) Start(ctx context.Context, conn *bus.Connection) error {
	go s.serviceLoop(ctx, conn)
	return nil
}
