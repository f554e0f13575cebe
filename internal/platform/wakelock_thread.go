package platform

import (
	"runtime"
	"sync"
)

// threadWakeLock applies execution-state flags from a single goroutine
// locked to one OS thread. The state is per thread, so acquire and
// release must run on the same one.
type threadWakeLock struct {
	mu           sync.Mutex
	held         bool
	set          func(flags uintptr) error
	acquireFlags uintptr
	releaseFlags uintptr
	start        sync.Once
	requests     chan threadRequest
}

type threadRequest struct {
	flags uintptr
	done  chan<- error
}

func newThreadWakeLock(set func(flags uintptr) error, acquireFlags, releaseFlags uintptr) *threadWakeLock {
	return &threadWakeLock{
		set:          set,
		acquireFlags: acquireFlags,
		releaseFlags: releaseFlags,
		requests:     make(chan threadRequest),
	}
}

func (lock *threadWakeLock) Acquire() error {
	lock.mu.Lock()
	defer lock.mu.Unlock()
	if lock.held {
		return nil
	}
	if err := lock.apply(lock.acquireFlags); err != nil {
		return err
	}
	lock.held = true
	return nil
}

func (lock *threadWakeLock) Release() error {
	lock.mu.Lock()
	defer lock.mu.Unlock()
	if !lock.held {
		return nil
	}
	lock.held = false
	return lock.apply(lock.releaseFlags)
}

func (lock *threadWakeLock) apply(flags uintptr) error {
	lock.start.Do(func() {
		go lock.serve()
	})
	done := make(chan error, 1)
	lock.requests <- threadRequest{flags: flags, done: done}
	return <-done
}

// serve owns the locked thread for the life of the process.
func (lock *threadWakeLock) serve() {
	runtime.LockOSThread()
	for request := range lock.requests {
		request.done <- lock.set(request.flags)
	}
}
