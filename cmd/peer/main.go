// Command peer is a demo MCAD-side process: it connects to a Host,
// pulls the initial Board over REQPCB, then periodically drives a sync
// cycle over REQDIF (spec.md §2, §4.9). The geometry back-end is a
// purely in-memory stub (internal/demoadapter); no real CAD tool is
// involved.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/tebeka/atexit"
	"go.uber.org/zap"

	"github.com/boardbridge/sync/config"
	"github.com/boardbridge/sync/internal/demoadapter"
	"github.com/boardbridge/sync/protocol"
	"github.com/boardbridge/sync/session"
	"github.com/boardbridge/sync/synccontroller"
	"github.com/boardbridge/sync/transport"
)

func main() {
	configPath := flag.String("config", "", "path to the TOML configuration file (optional)")
	syncInterval := flag.Duration("sync-interval", 5*time.Second, "how often to trigger a sync cycle")
	flag.Parse()

	log, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintln(os.Stderr, "peer: logger init:", err)
		os.Exit(1)
	}
	defer log.Sync()

	builder := config.Builder{}.
		WithHost("127.0.0.1").
		WithPort(5050).
		WithHeader(protocol.DefaultHeaderLen).
		WithFormat("json").
		WithMaxPortSearchRange(10)
	if *configPath != "" {
		f, err := config.Load(*configPath)
		if err != nil {
			log.Fatal("peer: load config", zap.Error(err))
		}
		builder = f.Builder()
	}
	net := builder.BuildNetwork()

	connector := transport.NewConnector(log, net.Host)
	atexit.Register(connector.Abort)

	conn, port, err := connector.Connect(net.Port, net.MaxPortSearchRange)
	if err != nil {
		log.Fatal("peer: connect", zap.Error(err))
	}
	log.Info("peer: connected", zap.Int("port", port))

	codec := protocol.NewCodec(net.Header)
	sess := session.New(conn, codec, log)
	atexit.Register(func() { sess.Close() })

	adapter := demoadapter.New(nil)
	controller := synccontroller.New(sess, adapter, adapter, builder.BuildFreeCAD().Tolerances(), "1.0", log)

	done := make(chan error, 1)
	go func() { done <- sess.Run(controller) }()

	if err := controller.SendVersion(); err != nil {
		log.Warn("peer: send version", zap.Error(err))
	}
	if err := controller.RequestInitialBoard(); err != nil {
		log.Fatal("peer: request initial board", zap.Error(err))
	}

	go driveSyncLoop(log, controller, *syncInterval, done)

	if err := <-done; err != nil {
		log.Warn("peer: session ended", zap.Error(err))
	}
	atexit.Exit(0)
}

// driveSyncLoop triggers a sync cycle on a fixed interval once the Peer
// has a model, matching spec.md §4.9's "user 'sync'" transition without
// an actual UI driving it.
func driveSyncLoop(log *zap.Logger, c *synccontroller.Controller, interval time.Duration, done <-chan error) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			if c.State() != synccontroller.StateHasModel {
				continue
			}
			if err := c.TriggerSync(); err != nil {
				log.Debug("peer: trigger sync", zap.Error(err))
				continue
			}
			log.Info("peer: sync triggered", zap.String("hash", c.Model().HashBoard()))
		}
	}
}
