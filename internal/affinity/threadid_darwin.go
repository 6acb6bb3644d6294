//go:build darwin && cgo

package affinity

/*
#include <pthread.h>
#include <stdint.h>

static uint64_t current_thread_id() {
    uint64_t tid = 0;
    pthread_threadid_np(NULL, &tid);
    return tid;
}
*/
import "C"

// RequiresMainThread reports whether platform calls must run on the main thread.
// AppKit, HIToolbox and the keyboard layout APIs used for text synthesis
// abort when called from a background thread.
const RequiresMainThread = true

func threadID() (int64, bool) {
	return int64(C.current_thread_id()), true
}
