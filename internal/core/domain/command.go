package domain

import "strings"

// Command is an external process invocation.
type Command struct {
	Name string
	Args []string
	Dir  string
	Env  []string
}

// String renders the command line for logs and error metadata.
func (c Command) String() string {
	if len(c.Args) == 0 {
		return c.Name
	}
	return c.Name + " " + strings.Join(c.Args, " ")
}

// Verbosity controls how chatty the tool and the spawned cargo processes are.
type Verbosity int

const (
	// VerbosityNormal is the default output level.
	VerbosityNormal Verbosity = iota
	// VerbosityQuiet suppresses informational output.
	VerbosityQuiet
	// VerbosityVerbose enables debug output.
	VerbosityVerbose
)

// CargoFlags returns the flags forwarded to cargo for v.
func (v Verbosity) CargoFlags() []string {
	switch v {
	case VerbosityQuiet:
		return []string{"--quiet"}
	case VerbosityVerbose:
		return []string{"--verbose"}
	default:
		return nil
	}
}
