package transport_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"

	"github.com/boardbridge/sync/transport"
)

var _ = Describe("Connector", func() {
	var log *zap.Logger

	BeforeEach(func() {
		log = zap.NewNop()
	})

	It("connects on the first port when a listener is already up", func() {
		l, err := transport.Bind(log, "127.0.0.1", 0)
		Expect(err).NotTo(HaveOccurred())
		defer l.Close()
		port := portOf(l.Addr())

		go func() {
			res, _ := l.Accept()
			if res.Conn != nil {
				defer res.Conn.Close()
			}
		}()

		c := transport.NewConnector(log, "127.0.0.1")
		conn, gotPort, err := c.Connect(port, 0)
		Expect(err).NotTo(HaveOccurred())
		Expect(gotPort).To(Equal(port))
		Expect(conn).NotTo(BeNil())
		conn.Close()
	})

	It("finds a listener at a higher port within the search range", func() {
		l, err := transport.Bind(log, "127.0.0.1", 0)
		Expect(err).NotTo(HaveOccurred())
		defer l.Close()
		realPort := portOf(l.Addr())

		go func() {
			res, _ := l.Accept()
			if res.Conn != nil {
				defer res.Conn.Close()
			}
		}()

		c := transport.NewConnector(log, "127.0.0.1")
		// basePort is below the real listening port; the search range must
		// cover the gap for Connect to find it.
		basePort := realPort - 3
		if basePort < 1 {
			Skip("ephemeral port too low to probe below it")
		}
		conn, gotPort, err := c.Connect(basePort, 5)
		Expect(err).NotTo(HaveOccurred())
		Expect(gotPort).To(Equal(realPort))
		conn.Close()
	})

	It("returns ErrConnectExhausted when nothing listens in the range", func() {
		c := transport.NewConnector(log, "127.0.0.1")
		// Port 1 is privileged/unlikely to be bound in test environments;
		// use a narrow range to keep the test fast.
		_, _, err := c.Connect(1, 2)
		Expect(err).To(MatchError(transport.ErrConnectExhausted))
	})

	It("returns ErrConnectAborted when Abort is called before Connect starts", func() {
		c := transport.NewConnector(log, "127.0.0.1")
		c.Abort()

		_, _, err := c.Connect(1, 2)
		Expect(err).To(MatchError(transport.ErrConnectAborted))
	})

	It("is safe to Abort more than once", func() {
		c := transport.NewConnector(log, "127.0.0.1")
		c.Abort()
		Expect(func() { c.Abort() }).NotTo(Panic())
	})

	It("stops mid-search once Abort is called from another goroutine", func() {
		c := transport.NewConnector(log, "127.0.0.1")

		go func() {
			time.Sleep(5 * time.Millisecond)
			c.Abort()
		}()

		_, _, err := c.Connect(1, 60000)
		Expect(err).To(Or(MatchError(transport.ErrConnectAborted), MatchError(transport.ErrConnectExhausted)))
	})
})
