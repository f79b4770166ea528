package wireless

import (
	"context"
	"strings"

	"wifi-agent/internal/application/port/output"
)

// wirelessMarker is printed by iwconfig on the header line of every
// 802.11-capable interface.
const wirelessMarker = "IEEE 802.11"

// fallbackInterfaces are probed in order when auto-detection finds nothing.
var fallbackInterfaces = []string{"wlan0", "wlp2s0", "wifi0"}

var _ output.InterfaceResolver = (*Resolver)(nil)

// Resolver picks the wireless interface to operate on. Probe failures are
// swallowed; only the aggregate "nothing worked" is surfaced.
type Resolver struct {
	runner output.CommandRunner
	logger output.LoggerPort
}

func NewResolver(runner output.CommandRunner, logger output.LoggerPort) *Resolver {
	return &Resolver{runner: runner, logger: logger}
}

func (r *Resolver) Resolve(ctx context.Context, explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}

	if out, err := r.runner.Run(ctx, "iwconfig"); err == nil {
		for _, line := range strings.Split(out, "\n") {
			if !strings.Contains(line, wirelessMarker) {
				continue
			}
			if fields := strings.Fields(line); len(fields) > 0 {
				if r.logger != nil {
					r.logger.Debug("auto-detected wireless interface", "interface", fields[0])
				}
				return fields[0], nil
			}
		}
	}

	for _, name := range fallbackInterfaces {
		if _, err := r.runner.Run(ctx, "iwconfig", name); err == nil {
			if r.logger != nil {
				r.logger.Debug("probed wireless interface", "interface", name)
			}
			return name, nil
		}
	}

	return "", ErrNoInterface
}
