package main

import (
	"errors"
	"log"
	"sync"

	"tabata/internal/core/session"
	"tabata/internal/platform"
)

// awakeGuard holds a wake lock while a workout is running.
type awakeGuard struct {
	mu      sync.Mutex
	lock    platform.WakeLock
	enabled bool
	held    bool
}

func newAwakeGuard(lock platform.WakeLock, enabled bool) *awakeGuard {
	return &awakeGuard{lock: lock, enabled: enabled}
}

// SetEnabled turns the guard on or off. Disabling releases a held lock.
func (guard *awakeGuard) SetEnabled(enabled bool) {
	guard.mu.Lock()
	defer guard.mu.Unlock()
	guard.enabled = enabled
	if !enabled {
		guard.releaseLocked()
	}
}

// Handle acquires on start and resume and releases when the workout stops.
func (guard *awakeGuard) Handle(event session.Event) {
	guard.mu.Lock()
	defer guard.mu.Unlock()

	switch event.Type {
	case session.EventStarted, session.EventResumed:
		if !guard.enabled || guard.held {
			return
		}
		if err := guard.lock.Acquire(); err != nil {
			if !errors.Is(err, platform.ErrWakeLockUnsupported) {
				log.Printf("wake lock: %v", err)
			}
			return
		}
		guard.held = true
	case session.EventPaused, session.EventReset, session.EventCompleted:
		guard.releaseLocked()
	}
}

// Release drops the lock if held.
func (guard *awakeGuard) Release() {
	guard.mu.Lock()
	defer guard.mu.Unlock()
	guard.releaseLocked()
}

func (guard *awakeGuard) releaseLocked() {
	if !guard.held {
		return
	}
	guard.held = false
	if err := guard.lock.Release(); err != nil {
		log.Printf("wake lock: %v", err)
	}
}
