package crashlight

import (
	"io"
	"os"
	"runtime"
	"strings"
	"sync/atomic"

	"github.com/mattn/go-isatty"

	"github.com/crashlight/go-crashlight/crashlight/writers"
)

// active is the process-wide registration slot. Written by Install /
// InstallHandler, read only by Recover. Meant to be set once, early.
var active atomic.Pointer[Handler]

// exit is swappable so the boundary is testable.
var exit = os.Exit

// Install registers a stderr-bound Handler as the process crash
// handler. Goroutines that should be diagnosed defer Recover at their
// top; panics before Install keep the runtime's default behavior.
func Install() {
	h := New(writers.GetColorStderr())
	if isatty.IsTerminal(os.Stderr.Fd()) {
		// The colorable wrapper is not an *os.File, so New cannot see
		// the terminal through it.
		h.EnableColor()
	}
	InstallHandler(h)
}

// InstallHandler registers h as the process crash handler, replacing
// whatever handler was active.
func InstallHandler(h *Handler) {
	active.Store(h)
}

// Recover is the fault boundary. Defer it at the top of any goroutine
// whose panics should produce a crash report:
//
//	defer crashlight.Recover()
//
// When a handler is installed it renders the report and terminates the
// process with status 2, mirroring the runtime's panic exit. A failure
// while rendering is discarded: the crash handler must not crash.
// With no handler installed the panic is re-raised untouched.
func Recover() {
	v := recover()
	if v == nil {
		return
	}
	h := active.Load()
	if h == nil {
		panic(v)
	}

	info := PanicInfo{Value: v}
	info.Path, info.Line = panicLocation()
	_ = h.Handle(info)
	// Release the sink: a closable writer (e.g. a report forwarder)
	// delivers on Close. Plain files like os.Stderr are left alone.
	if c, ok := h.out.(io.Closer); ok {
		if _, file := h.out.(*os.File); !file {
			_ = c.Close()
		}
	}
	exit(2)
}

// panicLocation finds the failing statement: the innermost frame above
// the panic machinery. This is a bounded scan to build the fault
// context, separate from the report's own stack capture.
func panicLocation() (string, int) {
	pc := make([]uintptr, 16)
	// +3 skips runtime.Callers, panicLocation and Recover.
	n := runtime.Callers(3, pc)
	if n == 0 {
		return "", 0
	}
	frames := runtime.CallersFrames(pc[:n])
	for {
		fr, more := frames.Next()
		if fr.Function != "" && !strings.HasPrefix(fr.Function, "runtime.") {
			return fr.File, fr.Line
		}
		if !more {
			return "", 0
		}
	}
}
