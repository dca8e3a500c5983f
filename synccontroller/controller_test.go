package synccontroller_test

import (
	"io"
	"net"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"

	"github.com/boardbridge/sync/board"
	"github.com/boardbridge/sync/diff"
	"github.com/boardbridge/sync/protocol"
	"github.com/boardbridge/sync/session"
	"github.com/boardbridge/sync/synccontroller"
)

func newCircle(kiid string, id int, center board.Point, radius int) *board.Drawing {
	d := &board.Drawing{Shape: board.CircleShape{Center: center, Radius: radius}}
	d.KIID = kiid
	d.ID = id
	board.Rehash(d)
	return d
}

// wireUp connects two Controllers over a net.Pipe, each driven by its own
// Session.Run loop in a background goroutine, and returns both plus a
// teardown func.
func wireUp(hostAdapter, peerAdapter *fakeAdapter) (host, peer *synccontroller.Controller, stop func()) {
	codec := protocol.NewCodec(0)
	log := zap.NewNop()

	hostConn, peerConn := net.Pipe()

	hostSess := session.New(hostConn, codec, log)
	peerSess := session.New(peerConn, codec, log)

	host = synccontroller.New(hostSess, hostAdapter, hostAdapter, diff.Tolerances{}, "1.0", log)
	peer = synccontroller.New(peerSess, peerAdapter, peerAdapter, diff.Tolerances{}, "1.0", log)

	go hostSess.Run(host)
	go peerSess.Run(peer)

	return host, peer, func() {
		hostSess.Close()
		peerSess.Close()
	}
}

var _ = Describe("Controller end-to-end cycles", func() {
	var (
		hostAdapter, peerAdapter *fakeAdapter
		host, peer               *synccontroller.Controller
		stop                     func()
	)

	BeforeEach(func() {
		hostBoard := board.NewBoard()
		hostBoard.Drawings.Upsert(newCircle("k1", 1, board.Point{X: 10000, Y: 20000}, 500))

		hostAdapter = &fakeAdapter{scanBoard: hostBoard}
		peerAdapter = &fakeAdapter{}

		host, peer, stop = wireUp(hostAdapter, peerAdapter)
	})

	AfterEach(func() {
		stop()
	})

	It("S1: cold sync gives the Peer a model matching the Host's hash", func() {
		Expect(peer.RequestInitialBoard()).To(Succeed())

		Eventually(peer.State).Should(Equal(synccontroller.StateHasModel))
		Eventually(host.State).Should(Equal(synccontroller.StateHasModel))

		Expect(peer.Model()).NotTo(BeNil())
		Expect(peer.Model().HashBoard()).To(Equal(host.Model().HashBoard()))

		stored, ok := peer.Model().Drawings.Lookup("k1")
		Expect(ok).To(BeTrue())
		shape := stored.Shape.(board.CircleShape)
		Expect(shape.Center).To(Equal(board.Point{X: 10000, Y: 20000}))
	})

	It("S2: a Host-side move propagates to the Peer and hashes converge (P6)", func() {
		Expect(peer.RequestInitialBoard()).To(Succeed())
		Eventually(peer.State).Should(Equal(synccontroller.StateHasModel))

		moved := newCircle("k1", 1, board.Point{X: 12000, Y: 20000}, 500)
		hostAdapter.scanDeltaFunc = func(prior *board.Board) diff.ScanResult {
			return diff.ScanResult{Drawings: []*board.Drawing{moved}}
		}

		Expect(peer.TriggerSync()).To(Succeed())

		Eventually(peer.State).Should(Equal(synccontroller.StateHasModel))
		Eventually(host.State).Should(Equal(synccontroller.StateHasModel))

		Expect(peer.Model().HashBoard()).To(Equal(host.Model().HashBoard()))
		stored, ok := peer.Model().Drawings.Lookup("k1")
		Expect(ok).To(BeTrue())
		shape := stored.Shape.(board.CircleShape)
		Expect(shape.Center).To(Equal(board.Point{X: 12000, Y: 20000}))
	})

	It("S3: a Peer-side add with a provisional kiid is repaired to a permanent one (P8)", func() {
		Expect(peer.RequestInitialBoard()).To(Succeed())
		Eventually(peer.State).Should(Equal(synccontroller.StateHasModel))

		newLine := &board.Drawing{Shape: board.LineShape{Start: board.Point{X: 0, Y: 0}, End: board.Point{X: 1000, Y: 1000}}}
		newLine.KIID = board.ProvisionalPrefix + "abc"
		peerAdapter.scanDeltaFunc = func(prior *board.Board) diff.ScanResult {
			r := emptyScanFrom(prior)
			r.Drawings = append(r.Drawings, newLine)
			return r
		}

		Expect(peer.TriggerSync()).To(Succeed())

		Eventually(peer.State).Should(Equal(synccontroller.StateHasModel))
		Eventually(host.State).Should(Equal(synccontroller.StateHasModel))

		Expect(peer.Model().HashBoard()).To(Equal(host.Model().HashBoard()))

		for _, d := range peer.Model().Drawings.All() {
			Expect(board.IsProvisional(d.Kiid())).To(BeFalse())
		}
		for _, d := range host.Model().Drawings.All() {
			Expect(board.IsProvisional(d.Kiid())).To(BeFalse())
		}
		Expect(peer.Model().Drawings.Len()).To(Equal(2))
		Expect(host.Model().Drawings.Len()).To(Equal(2))
	})

	It("S5: a Peer-side deletion propagates to the Host", func() {
		Expect(peer.RequestInitialBoard()).To(Succeed())
		Eventually(peer.State).Should(Equal(synccontroller.StateHasModel))

		peerAdapter.scanDeltaFunc = func(prior *board.Board) diff.ScanResult {
			r := emptyScanFrom(prior)
			kept := r.Drawings[:0]
			for _, d := range r.Drawings {
				if d.Kiid() != "k1" {
					kept = append(kept, d)
				}
			}
			r.Drawings = kept
			return r
		}

		Expect(peer.TriggerSync()).To(Succeed())

		Eventually(peer.State).Should(Equal(synccontroller.StateHasModel))
		Eventually(host.State).Should(Equal(synccontroller.StateHasModel))

		Expect(peer.Model().HashBoard()).To(Equal(host.Model().HashBoard()))
		_, ok := peer.Model().Drawings.Lookup("k1")
		Expect(ok).To(BeFalse())
		_, ok = host.Model().Drawings.Lookup("k1")
		Expect(ok).To(BeFalse())
	})
})

var _ = Describe("Controller state guards", func() {
	It("rejects TriggerSync before a model exists", func() {
		hostConn, _ := net.Pipe()
		sess := session.New(hostConn, protocol.NewCodec(0), zap.NewNop())
		c := synccontroller.New(sess, &fakeAdapter{}, &fakeAdapter{}, diff.Tolerances{}, "1.0", zap.NewNop())

		Expect(c.TriggerSync()).To(HaveOccurred())
		Expect(c.State()).To(Equal(synccontroller.StateConnected))
	})

	It("rejects RequestInitialBoard when not Connected", func() {
		hostConn, otherConn := net.Pipe()
		defer otherConn.Close()
		go io.Copy(io.Discard, otherConn)

		sess := session.New(hostConn, protocol.NewCodec(0), zap.NewNop())
		c := synccontroller.New(sess, &fakeAdapter{}, &fakeAdapter{}, diff.Tolerances{}, "1.0", zap.NewNop())

		Expect(c.RequestInitialBoard()).To(Succeed())
		Expect(c.RequestInitialBoard()).To(HaveOccurred())
	})
})

var _ = Describe("Controller hash mismatch (S6)", func() {
	It("sends !DIS and transitions to Disconnected when the reply hash disagrees", func() {
		serverConn, clientConn := net.Pipe()
		defer clientConn.Close()

		codec := protocol.NewCodec(0)
		log := zap.NewNop()
		sess := session.New(serverConn, codec, log)
		adapter := &fakeAdapter{}
		c := synccontroller.New(sess, adapter, adapter, diff.Tolerances{}, "1.0", log)

		m := board.NewBoard()
		m.Drawings.Upsert(newCircle("k1", 1, board.Point{X: 0, Y: 0}, 1))
		adapter.scanBoard = m

		disReceived := make(chan struct{})

		// A scripted counterpart: answers REQPCB with PCB, then answers
		// REQDIF with a REP carrying a hash that can never agree with
		// the local model, then watches for the resulting !DIS.
		go func() {
			msg, err := codec.ReadMessage(clientConn)
			if err != nil || msg.Type != protocol.TypeReqPCB {
				return
			}
			payload, _ := m.MarshalJSON()
			if codec.WriteMessage(clientConn, protocol.TypePCB, payload) != nil {
				return
			}

			msg, err = codec.ReadMessage(clientConn)
			if err != nil || msg.Type != protocol.TypeReqDIF {
				return
			}
			reply := protocol.EncodeReply([]byte(`{}`), "not-the-real-hash")
			if codec.WriteMessage(clientConn, protocol.TypeREP, reply) != nil {
				return
			}

			msg, err = codec.ReadMessage(clientConn)
			if err == nil && msg.Type == protocol.TypeDIS {
				close(disReceived)
			}
		}()

		go func() { _ = sess.Run(c) }()

		Expect(c.RequestInitialBoard()).To(Succeed())
		Eventually(c.State).Should(Equal(synccontroller.StateHasModel))

		Expect(c.TriggerSync()).To(Succeed())

		Eventually(disReceived).Should(BeClosed())
		Eventually(c.State).Should(Equal(synccontroller.StateDisconnected))
	})
})
