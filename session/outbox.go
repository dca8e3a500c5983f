package session

import "sync"

// outbox gives Session.Send exclusive write access to the connection, so
// a header/payload pair never interleaves with another goroutine's call
// to Send (spec.md §4.3, §5). It is the mutex-guarded single-writer
// queue shape of the teacher's core/port.go, adapted from a buffered
// message queue to a bare critical section since the wire codec already
// frames one message per Write call.
type outbox struct {
	mu sync.Mutex
}

// locked runs fn with the outbox held, serializing it against every
// other Send on the same Session.
func (o *outbox) locked(fn func() error) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	return fn()
}
