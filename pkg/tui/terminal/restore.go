// ABOUTME: Panic recovery helpers that restore the cursor and cooked mode before reporting
// ABOUTME: RestoreOnPanic exits the process; RecoverGoroutine hands the panic back as an error

package terminal

import (
	"fmt"
	"os"
	"runtime/debug"
)

const showCursor = "\x1b[?25h"

// RestoreOnPanic should be deferred at the top of main. On panic it shows
// the cursor, leaves raw mode, prints the panic and stack, and exits 1.
func RestoreOnPanic(t Terminal) {
	r := recover()
	if r == nil {
		return
	}

	_, _ = t.Write([]byte(showCursor))
	_ = t.ExitRawMode()

	fmt.Fprintf(os.Stderr, "\npanic: %v\n\n%s\n", r, debug.Stack())
	os.Exit(1)
}

// RecoverGoroutine should be deferred in goroutines that run while the
// terminal is raw. A recovered panic is reported to onPanic as an error so
// the owner can shut down cleanly; the process keeps running.
func RecoverGoroutine(onPanic func(error)) {
	r := recover()
	if r == nil {
		return
	}
	if onPanic != nil {
		onPanic(fmt.Errorf("goroutine panic: %v\n%s", r, debug.Stack()))
	}
}
