package wireless

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"wifi-agent/internal/application/port/output"
)

// DefaultCommandTimeout bounds a single diagnostic command. A full iwlist
// scan on a busy adapter can take several seconds; anything past this is
// treated as a hung command.
const DefaultCommandTimeout = 15 * time.Second

var _ output.CommandRunner = (*ExecRunner)(nil)

// ExecRunner runs diagnostic commands as subprocesses, each bounded by the
// configured timeout.
type ExecRunner struct {
	timeout time.Duration
	logger  output.LoggerPort
}

func NewExecRunner(timeout time.Duration, logger output.LoggerPort) *ExecRunner {
	if timeout <= 0 {
		timeout = DefaultCommandTimeout
	}
	return &ExecRunner{timeout: timeout, logger: logger}
}

func (r *ExecRunner) Run(ctx context.Context, argv ...string) (string, error) {
	if len(argv) == 0 {
		return "", errors.New("empty command")
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	if r.logger != nil {
		r.logger.Debug("command finished",
			"argv", strings.Join(argv, " "),
			"duration_ms", time.Since(start).Milliseconds(),
			"ok", err == nil)
	}
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return "", fmt.Errorf("%w: %s", ErrCommandNotFound, argv[0])
		}
		if ctx.Err() != nil {
			return "", fmt.Errorf("command timed out: %s: %w", argv[0], ctx.Err())
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return "", &CommandError{
				Argv:     argv,
				ExitCode: exitErr.ExitCode(),
				Stderr:   strings.TrimSpace(stderr.String()),
			}
		}
		return "", fmt.Errorf("run %s: %w", argv[0], err)
	}

	return stdout.String(), nil
}
