//go:build linux || darwin

package platform

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"sync"
)

// processWakeLock holds the lock for as long as a helper process lives.
type processWakeLock struct {
	mu   sync.Mutex
	path string
	args []string
	cmd  *exec.Cmd
}

func newProcessWakeLock(helper string, args ...string) WakeLock {
	path, err := exec.LookPath(helper)
	if err != nil {
		return unsupportedWakeLock{}
	}
	return &processWakeLock{path: path, args: args}
}

func (lock *processWakeLock) Acquire() error {
	lock.mu.Lock()
	defer lock.mu.Unlock()
	if lock.cmd != nil {
		return nil
	}

	cmd := exec.Command(lock.path, lock.args...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start %s: %w", lock.path, err)
	}
	lock.cmd = cmd
	return nil
}

func (lock *processWakeLock) Release() error {
	lock.mu.Lock()
	defer lock.mu.Unlock()
	if lock.cmd == nil {
		return nil
	}

	cmd := lock.cmd
	lock.cmd = nil
	if err := cmd.Process.Kill(); err != nil && !errors.Is(err, os.ErrProcessDone) {
		return fmt.Errorf("stop %s: %w", lock.path, err)
	}
	_ = cmd.Wait()
	return nil
}
