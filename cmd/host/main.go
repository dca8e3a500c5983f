// Command host is a demo ECAD-side process: it listens for a Peer
// connection, holds a seeded Board, and answers REQPCB/REQDIF/DIF over
// the wire protocol (spec.md §2, §4.9). The geometry back-end is a
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

	"github.com/boardbridge/sync/board"
	"github.com/boardbridge/sync/config"
	"github.com/boardbridge/sync/internal/demoadapter"
	"github.com/boardbridge/sync/protocol"
	"github.com/boardbridge/sync/session"
	"github.com/boardbridge/sync/synccontroller"
	"github.com/boardbridge/sync/transport"
)

func main() {
	configPath := flag.String("config", "", "path to the TOML configuration file (optional)")
	flag.Parse()

	log, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintln(os.Stderr, "host: logger init:", err)
		os.Exit(1)
	}
	defer log.Sync()

	builder := config.Builder{}.
		WithHost("127.0.0.1").
		WithPort(5050).
		WithHeader(protocol.DefaultHeaderLen).
		WithFormat("json")
	if *configPath != "" {
		f, err := config.Load(*configPath)
		if err != nil {
			log.Fatal("host: load config", zap.Error(err))
		}
		builder = f.Builder()
	}
	net := builder.BuildNetwork()

	listener, err := transport.Bind(log, net.Host, net.Port)
	if err != nil {
		log.Fatal("host: bind", zap.Error(err))
	}
	atexit.Register(func() { listener.Close() })
	log.Info("host: listening", zap.String("addr", listener.Addr()))

	result, err := listener.Accept()
	if err != nil {
		log.Fatal("host: accept", zap.Error(err))
	}
	if result.Status != transport.Accepted {
		log.Fatal("host: accept returned non-accepted status", zap.Stringer("status", result.Status))
	}

	codec := protocol.NewCodec(net.Header)
	sess := session.New(result.Conn, codec, log)
	atexit.Register(func() { sess.Close() })

	adapter := demoadapter.New(seedBoard())
	controller := synccontroller.New(sess, adapter, adapter, builder.BuildFreeCAD().Tolerances(), "1.0", log)

	go reportState(log, controller)

	if err := sess.Run(controller); err != nil {
		log.Warn("host: session ended", zap.Error(err))
	}
	atexit.Exit(0)
}

// seedBoard gives the demo Host something to serve on the first REQPCB:
// one circle, matching scenario S1 of spec.md §8.
func seedBoard() *board.Board {
	b := board.NewBoard()
	c := &board.Drawing{Shape: board.CircleShape{Center: board.Point{X: 10000, Y: 20000}, Radius: 500}}
	c.KIID = "k1"
	board.Rehash(c)
	b.Drawings.Upsert(c)
	return b
}

func reportState(log *zap.Logger, c *synccontroller.Controller) {
	last := synccontroller.State(-1)
	for range time.Tick(time.Second) {
		if s := c.State(); s != last {
			log.Info("host: state", zap.Stringer("state", s))
			last = s
		}
	}
}
