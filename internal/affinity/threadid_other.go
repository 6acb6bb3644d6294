//go:build !linux && !(darwin && cgo)

package affinity

// RequiresMainThread reports whether platform calls must run on the main thread.
const RequiresMainThread = false

// threadID is unavailable here; Loop then cannot detect reentrant calls
// from its own thread, and such calls deadlock.
func threadID() (int64, bool) {
	return 0, false
}
