package transport

import "sync"

// Pool bounds the number of idle connections held open between calls.
// Capacity is a soft ceiling on idle connections only: connections checked
// out by in-flight calls are not counted, so the total number of open
// connections can transiently exceed capacity under concurrency.
//
// Reuse order is last-in-first-out, which keeps the working set warm and
// lets surplus connections age out at the daemon's end.
type Pool struct {
	mu       sync.Mutex
	idle     []Conn
	capacity int
	closed   bool

	metrics ConnMetrics
}

// NewPool creates a pool holding at most capacity idle connections.
// Capacity is coerced to at least 1.
func NewPool(capacity int, metrics ConnMetrics) *Pool {
	if capacity < 1 {
		capacity = 1
	}
	return &Pool{
		idle:     make([]Conn, 0, capacity),
		capacity: capacity,
		metrics:  metrics,
	}
}

// Get pops an idle connection, or returns nil when the pool is empty or
// closed.
func (p *Pool) Get() Conn {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed || len(p.idle) == 0 {
		return nil
	}

	conn := p.idle[len(p.idle)-1]
	p.idle = p.idle[:len(p.idle)-1]
	p.recordIdleLocked()
	return conn
}

// Put returns a connection to the idle set. It reports false when the pool
// is full or closed; the caller then owns closing the connection.
func (p *Pool) Put(conn Conn) bool {
	if conn == nil {
		return false
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed || len(p.idle) >= p.capacity {
		return false
	}

	p.idle = append(p.idle, conn)
	p.recordIdleLocked()
	return true
}

// Len returns the current number of idle connections.
func (p *Pool) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.idle)
}

// Close drains the idle set atomically and closes every drained
// connection. Further Get calls return nil and Put calls report false.
func (p *Pool) Close() error {
	p.mu.Lock()
	drained := p.idle
	p.idle = nil
	p.closed = true
	p.recordIdleLocked()
	p.mu.Unlock()

	var firstErr error
	for _, conn := range drained {
		if err := conn.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		if p.metrics != nil {
			p.metrics.ConnClosed()
		}
	}
	return firstErr
}

func (p *Pool) recordIdleLocked() {
	if p.metrics != nil {
		p.metrics.SetIdleConns(len(p.idle))
	}
}
