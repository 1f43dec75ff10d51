package writers

import (
	"io"
	"os"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
)

// GetColorStderr returns stderr prepared for ANSI color output. When
// stderr is not a terminal the plain stream is returned, so reports
// piped to a file stay uncolored.
func GetColorStderr() io.Writer {
	if !isatty.IsTerminal(os.Stderr.Fd()) {
		return os.Stderr
	}
	return colorable.NewColorableStderr()
}

// GetDefaultStderr returns the raw error stream.
func GetDefaultStderr() io.Writer {
	return os.Stderr
}
