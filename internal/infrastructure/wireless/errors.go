package wireless

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrCommandNotFound reports that a diagnostic executable is not
	// installed or not on PATH.
	ErrCommandNotFound = errors.New("command not found")

	// ErrNoInterface reports that no wireless interface could be resolved.
	ErrNoInterface = errors.New("no Wi-Fi interface found")
)

// CommandError reports a diagnostic command that ran but exited non-zero.
type CommandError struct {
	Argv     []string
	ExitCode int
	Stderr   string
}

func (e *CommandError) Error() string {
	msg := fmt.Sprintf("command failed: %s (exit %d)", strings.Join(e.Argv, " "), e.ExitCode)
	if e.Stderr != "" {
		msg += ": " + e.Stderr
	}
	return msg
}
