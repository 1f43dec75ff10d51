package crashlight

import (
	"fmt"
	"strconv"
	"strings"
)

// Classification says whether a frame belongs to runtime/reporting
// machinery or to application code. Derived per frame, never stored.
type Classification uint8

const (
	Application Classification = iota
	Builtin
)

// builtinPrefixes lists the function-name prefixes treated as
// infrastructure: the Go runtime's entry and panic-propagation
// internals, the testing harness, and this module's own frames so the
// reporter never highlights itself as application code.
var builtinPrefixes = []string{
	"runtime.",
	"runtime/debug.",
	"testing.",
	"github.com/crashlight/go-crashlight/crashlight.",
}

// Classify decides Builtin vs Application by prefix match. An empty
// (unresolved) name is never Builtin: absence of information is not
// evidence of being infrastructure.
func Classify(fn string) Classification {
	if fn == "" {
		return Application
	}
	for _, p := range builtinPrefixes {
		if strings.HasPrefix(fn, p) {
			return Builtin
		}
	}
	return Application
}

// printFrame writes one stack frame: index, colored symbol name, source
// location, and at Full verbosity the surrounding source lines.
func (s *session) printFrame(i int, fr Frame) error {
	name := fr.Func
	if name == "" {
		name = "<unknown>"
	}
	paint := s.pal.app
	if Classify(fr.Func) == Builtin {
		paint = s.pal.builtin
	}
	if _, err := fmt.Fprintf(s.out, "%2d: %s\n", i, paint(name)); err != nil {
		return err
	}

	if fr.Path != "" {
		line := "<unknown line>"
		if fr.Line > 0 {
			line = strconv.Itoa(fr.Line)
		}
		if _, err := fmt.Fprintf(s.out, "    %s:%s\n", fr.Path, line); err != nil {
			return err
		}
	} else {
		if _, err := fmt.Fprintln(s.out, "    <unknown source file>"); err != nil {
			return err
		}
	}

	if s.v >= Full && fr.Path != "" && fr.Line > 0 {
		return s.printSourceIfAvail(fr.Path, fr.Line)
	}
	return nil
}
