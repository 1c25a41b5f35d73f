package meshclip

import (
	"runtime"
	"sync/atomic"
)

type forkTask[T any] struct {
	Claimed atomic.Bool
	F       func() T
	Result  chan T
}

// A forkQueue runs a tree of recursive tasks on a fixed number of
// Goroutines.
//
// The root task is started with Run(). Inside a task, Fork() runs two
// sub-tasks, one of which may be picked up by an idle worker.
type forkQueue[T any] struct {
	queue chan *forkTask[T]
}

func newForkQueue[T any](numWorkers int) *forkQueue[T] {
	if numWorkers == 0 {
		numWorkers = runtime.GOMAXPROCS(0)
	}
	res := &forkQueue[T]{
		queue: make(chan *forkTask[T], numWorkers*64),
	}
	for i := 0; i < numWorkers; i++ {
		go res.worker()
	}
	return res
}

// Run executes the root task and shuts down the workers once it returns.
func (f *forkQueue[T]) Run(fn func() T) T {
	defer close(f.queue)
	task := newForkTask(fn)
	f.queue <- task
	return <-task.Result
}

// Fork runs fn1 on the calling Goroutine while offering fn2 to the workers.
func (f *forkQueue[T]) Fork(fn1, fn2 func() T) (T, T) {
	task := newForkTask(fn2)
	select {
	case f.queue <- task:
	default:
		// The queue is full, so the caller runs both tasks itself.
	}
	result1 := fn1()
	if task.Claimed.CompareAndSwap(false, true) {
		return result1, fn2()
	}
	return result1, <-task.Result
}

func (f *forkQueue[T]) worker() {
	for task := range f.queue {
		if task.Claimed.CompareAndSwap(false, true) {
			task.Result <- task.F()
		}
	}
}

func newForkTask[T any](fn func() T) *forkTask[T] {
	return &forkTask[T]{F: fn, Result: make(chan T, 1)}
}
