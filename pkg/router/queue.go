package router

import (
	"bytes"
	"runtime"
	"strconv"
	"sync"
)

// reconcileQueue serializes reconciliation work: at most one job is in
// flight, and jobs arriving while one runs are drained strictly in arrival
// order afterwards. Jobs run on the goroutine that found the queue idle, so
// the common case (no pass in flight) executes synchronously at the trigger
// site.
type reconcileQueue struct {
	mu       sync.Mutex
	busy     bool
	drainGID uint64
	pending  []queuedJob

	// onError receives errors from fire-and-forget jobs.
	onError func(error)
}

type queuedJob struct {
	fn   func() error
	done chan error // nil for fire-and-forget jobs
}

// post enqueues a fire-and-forget job. Errors go to onError.
func (q *reconcileQueue) post(fn func() error) {
	q.mu.Lock()
	q.pending = append(q.pending, queuedJob{fn: fn})
	if q.busy {
		q.mu.Unlock()
		return
	}
	q.busy = true
	q.drainGID = goroutineID()
	q.mu.Unlock()
	q.drain()
}

// run enqueues a job and blocks until it completed, returning its error.
//
// Called from inside a job on the draining goroutine, blocking would
// deadlock the drain loop earlier in the call stack; such re-entrant calls
// degrade to fire-and-forget, with the job's error going to onError.
func (q *reconcileQueue) run(fn func() error) error {
	q.mu.Lock()
	if q.busy && q.drainGID == goroutineID() {
		q.pending = append(q.pending, queuedJob{fn: fn})
		q.mu.Unlock()
		return nil
	}
	done := make(chan error, 1)
	q.pending = append(q.pending, queuedJob{fn: fn, done: done})
	if q.busy {
		q.mu.Unlock()
		return <-done
	}
	q.busy = true
	q.drainGID = goroutineID()
	q.mu.Unlock()
	q.drain()
	return <-done
}

func (q *reconcileQueue) drain() {
	for {
		q.mu.Lock()
		if len(q.pending) == 0 {
			q.busy = false
			q.drainGID = 0
			q.mu.Unlock()
			return
		}
		j := q.pending[0]
		q.pending = q.pending[1:]
		q.mu.Unlock()

		err := j.fn()
		if j.done != nil {
			j.done <- err
		} else if err != nil && q.onError != nil {
			q.onError(err)
		}
	}
}

// goroutineID parses the current goroutine's id out of its stack header
// ("goroutine N [running]:"). The runtime exposes no cheaper handle.
func goroutineID() uint64 {
	buf := make([]byte, 64)
	buf = buf[:runtime.Stack(buf, false)]
	buf = buf[len("goroutine "):]
	i := bytes.IndexByte(buf, ' ')
	if i < 0 {
		return 0
	}
	id, err := strconv.ParseUint(string(buf[:i]), 10, 64)
	if err != nil {
		return 0
	}
	return id
}
