//go:build linux

package affinity

import "golang.org/x/sys/unix"

// RequiresMainThread reports whether platform calls must run on the main thread.
const RequiresMainThread = false

func threadID() (int64, bool) {
	return int64(unix.Gettid()), true
}
