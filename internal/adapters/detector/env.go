// Package detector decides how toolchain output is presented.
package detector

import (
	"os"

	"golang.org/x/term"
)

// OutputMode is how child processes are attached and how progress is rendered.
type OutputMode int

const (
	// ModePlain runs children on pipes and prints prefixed, line-buffered output.
	ModePlain OutputMode = iota
	// ModeInteractive runs children in a pseudo terminal.
	ModeInteractive
)

// DetectEnvironment returns ModeInteractive when stdout is a terminal and CI is not set.
func DetectEnvironment() OutputMode {
	return detect(term.IsTerminal(int(os.Stdout.Fd())), os.Getenv("CI"))
}

func detect(isTTY bool, ci string) OutputMode {
	if !isTTY || ci == "true" || ci == "1" {
		return ModePlain
	}
	return ModeInteractive
}
