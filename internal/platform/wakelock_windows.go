package platform

import (
	"fmt"
	"syscall"
)

const (
	esContinuous      = 0x80000000
	esSystemRequired  = 0x00000001
	esDisplayRequired = 0x00000002
)

var procSetThreadExecutionState = syscall.NewLazyDLL("kernel32.dll").NewProc("SetThreadExecutionState")

func newWakeLock(appName string) WakeLock {
	if err := procSetThreadExecutionState.Find(); err != nil {
		return unsupportedWakeLock{}
	}
	return newThreadWakeLock(setExecutionState,
		esContinuous|esSystemRequired|esDisplayRequired,
		esContinuous,
	)
}

func setExecutionState(flags uintptr) error {
	result, _, err := procSetThreadExecutionState.Call(flags)
	if result == 0 {
		if err != nil {
			return fmt.Errorf("set thread execution state: %w", err)
		}
		return fmt.Errorf("set thread execution state: unknown error")
	}
	return nil
}
