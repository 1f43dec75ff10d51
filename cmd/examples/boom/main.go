package main

import (
	"github.com/crashlight/go-crashlight/crashlight"
)

// Run with CRASHLIGHT_BACKTRACE=full to see the annotated backtrace.
func main() {
	crashlight.Install()
	defer crashlight.Recover()

	outer()
}

func outer() {
	inner(41)
}

func inner(n int) {
	if n+1 == 42 {
		panic("boom")
	}
}
