package crashlight

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// A Handler renders colorized crash reports for panics to a single
// output writer. It is cheap and stateless between faults: each fault
// gets its own session with a freshly resolved verbosity.
type Handler struct {
	out      io.Writer
	unwinder Unwinder
	color    bool
}

// New creates a Handler bound to an output writer. Color is enabled
// only when the writer is a terminal file; use EnableColor to force it
// for writers that render ANSI themselves.
func New(out io.Writer) *Handler {
	h := &Handler{
		out:      out,
		unwinder: callersUnwinder{maxDepth: defaultMaxDepth},
	}
	if f, ok := out.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		h.color = true
	}
	return h
}

// EnableColor forces ANSI color output.
func (h *Handler) EnableColor() {
	h.color = true
}

// DisableColor forces plain text output.
func (h *Handler) DisableColor() {
	h.color = false
}

// Writer returns the current output writer.
func (h *Handler) Writer() io.Writer {
	return h.out
}

// Handle renders one crash report for info. The first I/O failure
// aborts the report and is returned; nothing is retried.
func (h *Handler) Handle(info PanicInfo) error {
	s := &session{
		v:        ResolveVerbosity(),
		info:     info,
		out:      h.out,
		unwinder: h.unwinder,
		pal:      newPalette(h.color),
	}
	return s.run()
}

// session is the live state of one report: resolved verbosity, fault
// context, palette and sink. Created per fault, discarded after.
type session struct {
	v        Verbosity
	info     PanicInfo
	out      io.Writer
	unwinder Unwinder
	pal      palette
}

func (s *session) run() error {
	if err := s.printPanicInfo(); err != nil {
		return err
	}
	// At Minimal the stack is not captured at all, not merely unprinted.
	if s.v >= Medium {
		return s.printBacktrace()
	}
	return nil
}

func (s *session) printPanicInfo() error {
	if _, err := fmt.Fprintf(s.out, "\n%s\n\n", s.pal.banner("Oh noez! Panic! 💥")); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(s.out, "Message:  %s\n", s.pal.message(s.info.Message())); err != nil {
		return err
	}

	if _, err := fmt.Fprint(s.out, "Location: "); err != nil {
		return err
	}
	if s.info.HasLocation() {
		loc := s.pal.location(s.info.Path) + s.pal.sep(":") + s.pal.location(strconv.Itoa(s.info.Line))
		if _, err := fmt.Fprintf(s.out, "%s\n", loc); err != nil {
			return err
		}
	} else {
		if _, err := fmt.Fprintln(s.out, "<unknown>"); err != nil {
			return err
		}
	}

	// A source excerpt for the top-level location is deliberately not
	// printed at any verbosity; the frames carry the excerpts.
	return nil
}

func (s *session) printBacktrace() error {
	if _, err := fmt.Fprintf(s.out, "\n%s\n\n", center("[ BACKTRACE ]", 80, '-')); err != nil {
		return err
	}

	it := s.unwinder.Unwind(1)
	for i := 0; ; i++ {
		fr, ok := it.Next()
		if !ok {
			return nil
		}
		if err := s.printFrame(i, fr); err != nil {
			return err
		}
	}
}

// center pads s with c on both sides up to width, extra padding going
// right.
func center(s string, width int, c byte) string {
	gap := width - len(s)
	if gap <= 0 {
		return s
	}
	left := gap / 2
	return strings.Repeat(string(c), left) + s + strings.Repeat(string(c), gap-left)
}

// palette holds the per-session color functions. Every function wraps
// its text with set and reset codes in one string, so a colored run
// reaches the writer as a single write and a failed write can never
// leave the terminal with dangling color state.
type palette struct {
	banner   func(a ...interface{}) string
	message  func(a ...interface{}) string
	location func(a ...interface{}) string
	sep      func(a ...interface{}) string
	builtin  func(a ...interface{}) string
	app      func(a ...interface{}) string
	marked   func(a ...interface{}) string
}

func newPalette(enabled bool) palette {
	paint := func(attrs ...color.Attribute) func(a ...interface{}) string {
		c := color.New(attrs...)
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		return c.SprintFunc()
	}

	return palette{
		banner:   paint(color.FgRed),
		message:  paint(color.FgCyan),
		location: paint(color.FgMagenta),
		sep:      paint(color.FgWhite),
		builtin:  paint(color.FgGreen),
		app:      paint(color.FgHiRed),
		marked:   paint(color.FgHiWhite),
	}
}
