//go:build !linux && !darwin && !windows

package platform

func newWakeLock(appName string) WakeLock {
	return unsupportedWakeLock{}
}
