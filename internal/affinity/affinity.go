// Package affinity runs work on a designated OS thread.
//
// Some platform APIs (macOS keyboard layout lookup, event synthesis,
// display enumeration) crash when called off the main thread. Every OS-facing
// call in the bridge goes through an Executor; on hosts without such a
// requirement the Executor is Direct and runs work inline with the same
// panic-capture contract.
//
// The process has a single designated thread and it lives for the lifetime
// of the process, so the main Loop is a package-level singleton with no
// teardown beyond process exit.
package affinity

import (
	"errors"
	"fmt"
	"runtime"
	"runtime/debug"
	"sync"
	"sync/atomic"

	bridgeerrors "github.com/mj1618/desktop-bridge/internal/errors"
)

// Executor runs fn synchronously on its designated thread. fn runs exactly
// once; a panic inside fn is returned as a *PanicError.
type Executor interface {
	Run(fn func() error) error
}

// ErrUnavailable means the designated thread is gone. It is a fatal
// configuration error and is raised as a panic, not returned.
var ErrUnavailable = errors.New("affinity thread unavailable")

// PanicError is a panic captured while running work.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic on affinity thread: %v", e.Value)
}

// Unwrap lets errors.Is(err, bridgeerrors.PanicCaptured) match.
func (e *PanicError) Unwrap() error {
	return bridgeerrors.PanicCaptured
}

func protect(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{Value: r, Stack: debug.Stack()}
		}
	}()
	return fn()
}

// Call runs fn on ex and returns its value.
func Call[T any](ex Executor, fn func() (T, error)) (T, error) {
	var out T
	err := ex.Run(func() error {
		v, err := fn()
		out = v
		return err
	})
	return out, err
}

// Direct runs work inline on the calling goroutine.
type Direct struct{}

func (Direct) Run(fn func() error) error {
	return protect(fn)
}

type job struct {
	fn   func() error
	done chan error
}

// Loop owns one OS thread and runs submitted work on it, one job at a time.
type Loop struct {
	jobs     chan job
	quit     chan struct{}
	owner    atomic.Int64
	serving  atomic.Bool
	stopOnce sync.Once
}

// NewLoop creates a loop. Call Serve or Start before submitting work;
// Run on a loop that was never started panics with ErrUnavailable.
func NewLoop() *Loop {
	return &Loop{
		jobs: make(chan job),
		quit: make(chan struct{}),
	}
}

// Serve locks the calling goroutine to its OS thread and processes work
// until Stop is called.
func (l *Loop) Serve() {
	l.serve(nil)
}

// Start runs the loop on a new goroutine and returns once it is serving.
func (l *Loop) Start() {
	ready := make(chan struct{})
	go l.serve(ready)
	<-ready
}

func (l *Loop) serve(ready chan struct{}) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	if tid, ok := threadID(); ok {
		l.owner.Store(tid)
		defer l.owner.Store(0)
	}
	l.serving.Store(true)
	if ready != nil {
		close(ready)
	}
	for {
		select {
		case j := <-l.jobs:
			j.done <- protect(j.fn)
		case <-l.quit:
			return
		}
	}
}

// Stop terminates the loop. Work submitted afterwards panics with ErrUnavailable.
// A stopped loop cannot be restarted.
func (l *Loop) Stop() {
	l.stopOnce.Do(func() { close(l.quit) })
}

// Run executes fn on the loop's thread and blocks until it finishes.
// Calls made from the loop's own thread run inline.
func (l *Loop) Run(fn func() error) error {
	if l.onLoopThread() {
		return protect(fn)
	}
	if !l.serving.Load() {
		panic(ErrUnavailable)
	}
	select {
	case <-l.quit:
		panic(ErrUnavailable)
	default:
	}

	done := make(chan error, 1)
	select {
	case l.jobs <- job{fn: fn, done: done}:
	case <-l.quit:
		panic(ErrUnavailable)
	}
	return <-done
}

func (l *Loop) onLoopThread() bool {
	owner := l.owner.Load()
	if owner == 0 {
		return false
	}
	tid, ok := threadID()
	return ok && tid == owner
}

var (
	mainLoop    = NewLoop()
	defaultOnce sync.Once
	defaultExec Executor
)

// MainLoop is the loop bound to the process main thread. It only serves
// work while Main is running.
func MainLoop() *Loop {
	return mainLoop
}

// Default returns the process-wide executor: the main loop where the
// platform requires main-thread calls, Direct elsewhere.
func Default() Executor {
	defaultOnce.Do(func() {
		if RequiresMainThread {
			defaultExec = mainLoop
		} else {
			defaultExec = Direct{}
		}
	})
	return defaultExec
}

// Main runs fn while the calling goroutine (which must be the main
// goroutine, locked to the main thread in package main's init) serves the
// main loop. Where no main thread is required it simply calls fn.
func Main(fn func() error) error {
	if !RequiresMainThread {
		return fn()
	}
	// fn may submit work before Serve reaches its receive; the unbuffered
	// jobs channel holds it until then.
	mainLoop.serving.Store(true)
	errc := make(chan error, 1)
	go func() {
		defer mainLoop.Stop()
		errc <- fn()
	}()
	mainLoop.Serve()
	return <-errc
}
