package main

import (
	"runtime"

	"github.com/mj1618/desktop-bridge/cmd"
	_ "github.com/mj1618/desktop-bridge/internal/platform/darwin"
)

// The main goroutine must stay on the main thread: macOS event and display
// APIs only work there.
func init() {
	runtime.LockOSThread()
}

func main() {
	cmd.Execute()
}
