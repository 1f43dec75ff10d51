package crashlight

import "os"

// EnvVerbosity is the environment key controlling report detail.
const EnvVerbosity = "CRASHLIGHT_BACKTRACE"

type Verbosity uint8

const (
	// Minimal prints the panic summary only; the stack is not captured.
	Minimal Verbosity = iota
	// Medium adds the backtrace without source excerpts.
	Medium
	// Full adds a source excerpt under every frame with a known location.
	Full
)

// ResolveVerbosity reads EnvVerbosity and maps it to a level. Resolved
// fresh on every fault, since the environment may not have been read
// before the first panic. Absent or empty values are "not configured",
// never an error.
func ResolveVerbosity() Verbosity {
	v, ok := os.LookupEnv(EnvVerbosity)
	switch {
	case !ok || v == "":
		return Minimal
	case v == "full":
		return Full
	default:
		return Medium
	}
}

func (v Verbosity) String() string {
	switch v {
	case Minimal:
		return "minimal"
	case Medium:
		return "medium"
	case Full:
		return "full"
	}
	return "-"
}
