package platform

func newWakeLock(appName string) WakeLock {
	// -d prevents display sleep, -i prevents idle system sleep.
	return newProcessWakeLock("caffeinate", "-d", "-i")
}
