package platform

import "errors"

// ErrWakeLockUnsupported indicates the screen cannot be kept awake on this system.
var ErrWakeLockUnsupported = errors.New("wake lock unsupported")

// WakeLock keeps the display from sleeping while held.
// Acquire and Release are idempotent.
type WakeLock interface {
	Acquire() error
	Release() error
}

// NewWakeLock returns a platform-specific wake lock.
func NewWakeLock(appName string) WakeLock {
	return newWakeLock(appName)
}

type unsupportedWakeLock struct{}

func (unsupportedWakeLock) Acquire() error {
	return ErrWakeLockUnsupported
}

func (unsupportedWakeLock) Release() error {
	return nil
}
