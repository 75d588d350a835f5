// Package dispatch provides the single run loop that all network
// completions and shared-state mutations are delivered on. Serializing
// everything onto one goroutine turns the concurrent transport layer into
// a single-writer model, so the services above it need no locks.
package dispatch

import "sync"

// Loop runs posted tasks in FIFO order on one dedicated goroutine.
type Loop struct {
	mu     sync.Mutex
	cond   *sync.Cond
	queue  []func()
	closed bool
	done   chan struct{}
}

// NewLoop starts the loop goroutine.
func NewLoop() *Loop {
	l := &Loop{done: make(chan struct{})}
	l.cond = sync.NewCond(&l.mu)
	go l.run()
	return l
}

func (l *Loop) run() {
	defer close(l.done)
	for {
		l.mu.Lock()
		for len(l.queue) == 0 && !l.closed {
			l.cond.Wait()
		}
		if len(l.queue) == 0 && l.closed {
			l.mu.Unlock()
			return
		}
		fn := l.queue[0]
		l.queue = l.queue[1:]
		l.mu.Unlock()
		fn()
	}
}

// Post enqueues fn. It never blocks, so tasks may safely post follow-up
// work from inside the loop. Posting after Close drops the task.
func (l *Loop) Post(fn func()) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return
	}
	l.queue = append(l.queue, fn)
	l.cond.Signal()
}

// Do posts fn and waits for it to finish. It must not be called from a
// task already running on the loop.
func (l *Loop) Do(fn func()) {
	ran := make(chan struct{})
	l.Post(func() {
		defer close(ran)
		fn()
	})
	select {
	case <-ran:
	case <-l.done:
	}
}

// Flush blocks until every task posted before it has run.
func (l *Loop) Flush() {
	l.Do(func() {})
}

// Close stops the loop after draining already-posted tasks and waits for
// the goroutine to exit.
func (l *Loop) Close() {
	l.mu.Lock()
	l.closed = true
	l.cond.Signal()
	l.mu.Unlock()
	<-l.done
}
