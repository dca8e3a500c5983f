package transport_test

import (
	"net"
	"strconv"
	"strings"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"

	"github.com/boardbridge/sync/transport"
)

func portOf(addr string) int {
	idx := strings.LastIndex(addr, ":")
	p, err := strconv.Atoi(addr[idx+1:])
	Expect(err).NotTo(HaveOccurred())
	return p
}

var _ = Describe("Listener", func() {
	var log *zap.Logger

	BeforeEach(func() {
		log = zap.NewNop()
	})

	It("accepts a real client connection", func() {
		l, err := transport.Bind(log, "127.0.0.1", 0)
		Expect(err).NotTo(HaveOccurred())
		defer l.Close()

		port := portOf(l.Addr())
		resultCh := make(chan transport.Result, 1)
		go func() {
			res, _ := l.Accept()
			resultCh <- res
		}()

		client, err := net.Dial("tcp", "127.0.0.1:"+strconv.Itoa(port))
		Expect(err).NotTo(HaveOccurred())
		defer client.Close()

		var res transport.Result
		Eventually(resultCh).Should(Receive(&res))
		Expect(res.Status).To(Equal(transport.Accepted))
		Expect(res.Conn).NotTo(BeNil())
		res.Conn.Close()
	})

	It("returns Aborted when Abort unblocks a pending Accept, discarding the sacrificial connection", func() {
		l, err := transport.Bind(log, "127.0.0.1", 0)
		Expect(err).NotTo(HaveOccurred())
		defer l.Close()

		resultCh := make(chan transport.Result, 1)
		go func() {
			res, _ := l.Accept()
			resultCh <- res
		}()

		time.Sleep(20 * time.Millisecond) // let Accept block
		l.Abort()

		var res transport.Result
		Eventually(resultCh, time.Second).Should(Receive(&res))
		Expect(res.Status).To(Equal(transport.Aborted))
		Expect(res.Conn).To(BeNil())
	})

	It("fails to bind an invalid address", func() {
		_, err := transport.Bind(log, "not-a-host", 99999)
		Expect(err).To(MatchError(transport.ErrBindFailed))
	})
})
