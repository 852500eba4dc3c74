package interactor

import "context"

// Queue serializes work onto the goroutine that drives a surface. Its
// Schedule method is meant to be passed to WithScheduler so that load
// completions run between raw events instead of alongside them.
type Queue struct {
	ch chan func()
}

// NewQueue creates a queue holding up to size pending functions.
func NewQueue(size int) *Queue {
	if size < 1 {
		size = 1
	}
	return &Queue{ch: make(chan func(), size)}
}

// Schedule enqueues fn. It blocks while the queue is full.
// Safe to call from any goroutine.
func (q *Queue) Schedule(fn func()) {
	q.ch <- fn
}

// C exposes the queue for select loops. Each received function must be run.
func (q *Queue) C() <-chan func() {
	return q.ch
}

// Drain runs every function queued so far without blocking and returns how
// many ran.
func (q *Queue) Drain() int {
	n := 0
	for {
		select {
		case fn := <-q.ch:
			fn()
			n++
		default:
			return n
		}
	}
}

// RunOne blocks until a function is queued or ctx is done. It reports
// whether a function ran.
func (q *Queue) RunOne(ctx context.Context) bool {
	select {
	case fn := <-q.ch:
		fn()
		return true
	case <-ctx.Done():
		return false
	}
}
