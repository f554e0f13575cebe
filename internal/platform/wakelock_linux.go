package platform

import (
	"os"
	"strings"
)

func newWakeLock(appName string) WakeLock {
	if strings.TrimSpace(os.Getenv("DISPLAY")) == "" && strings.TrimSpace(os.Getenv("WAYLAND_DISPLAY")) == "" {
		return unsupportedWakeLock{}
	}
	return newProcessWakeLock("systemd-inhibit",
		"--what=idle",
		"--who="+appName,
		"--why=Workout in progress",
		"--mode=block",
		"sleep", "infinity",
	)
}
