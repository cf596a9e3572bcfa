package download

import "sync"

// ActionQueue runs submitted actions one at a time, in submission order, on
// a single worker goroutine. Submit never blocks the caller.
type ActionQueue struct {
	mu      sync.Mutex
	cond    *sync.Cond
	pending []func()
	active  bool
	running bool
	wg      sync.WaitGroup
}

// NewActionQueue creates a stopped queue; call Start before submitting
func NewActionQueue() *ActionQueue {
	q := &ActionQueue{}
	q.cond = sync.NewCond(&q.mu)
	return q
}

// Start launches the worker. Calling it on a running queue does nothing.
func (q *ActionQueue) Start() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.running {
		return
	}
	q.running = true
	q.wg.Add(1)
	go q.worker()
}

// Stop rejects new actions, lets the queued ones finish and waits for the worker to exit
func (q *ActionQueue) Stop() {
	q.mu.Lock()
	if !q.running {
		q.mu.Unlock()
		return
	}
	q.running = false
	q.cond.Broadcast()
	q.mu.Unlock()

	q.wg.Wait()
}

// Submit appends action to the queue. It returns false if the queue is not running.
func (q *ActionQueue) Submit(action func()) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	if !q.running {
		return false
	}
	q.pending = append(q.pending, action)
	q.cond.Broadcast()
	return true
}

// Wait blocks until every action submitted so far has run
func (q *ActionQueue) Wait() {
	q.mu.Lock()
	defer q.mu.Unlock()

	for len(q.pending) > 0 || q.active {
		q.cond.Wait()
	}
}

func (q *ActionQueue) worker() {
	defer q.wg.Done()

	for {
		q.mu.Lock()
		for len(q.pending) == 0 && q.running {
			q.cond.Wait()
		}
		if len(q.pending) == 0 {
			// stopped and drained
			q.mu.Unlock()
			return
		}
		action := q.pending[0]
		q.pending[0] = nil
		q.pending = q.pending[1:]
		q.active = true
		q.mu.Unlock()

		action()

		q.mu.Lock()
		q.active = false
		q.cond.Broadcast()
		q.mu.Unlock()
	}
}
