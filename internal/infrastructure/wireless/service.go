package wireless

import (
	"context"
	"strings"
	"time"

	"wifi-agent/internal/application/port/output"
	"wifi-agent/internal/domain/entity"
)

var _ output.WirelessPort = (*Service)(nil)

// Service implements the wireless introspection operations on top of the
// OS diagnostic commands. It holds no per-request state; every call
// rebuilds its result from fresh command output.
type Service struct {
	runner   output.CommandRunner
	resolver output.InterfaceResolver
	stats    output.StatsSource
	logger   output.LoggerPort

	now func() time.Time
}

func NewService(runner output.CommandRunner, resolver output.InterfaceResolver, stats output.StatsSource, logger output.LoggerPort) *Service {
	return &Service{
		runner:   runner,
		resolver: resolver,
		stats:    stats,
		logger:   logger,
		now:      time.Now,
	}
}

// Scan resolves an interface and scans it, preferring iw and falling back
// to iwlist when the iw invocation fails. Each dialect's output goes only
// through its own parser.
func (s *Service) Scan(ctx context.Context, iface string) (*entity.ScanResult, error) {
	name, err := s.resolver.Resolve(ctx, iface)
	if err != nil {
		return nil, err
	}

	var networks []entity.Network
	out, err := s.runner.Run(ctx, "iw", "dev", name, "scan")
	if err == nil {
		networks = parseIWScan(out)
	} else {
		s.logger.Debug("iw scan failed, falling back to iwlist", "interface", name, "error", err)
		out, err = s.runner.Run(ctx, "iwlist", name, "scan")
		if err != nil {
			return nil, err
		}
		networks = parseIWListScan(out)
	}

	return &entity.ScanResult{
		Interface: name,
		Networks:  networks,
		ScanTime:  float64(s.now().UnixNano()) / float64(time.Second),
	}, nil
}

// Status resolves an interface and parses its iwconfig output. A failing
// status command degrades to a payload carrying the error text, so the
// caller still learns which interface was queried.
func (s *Service) Status(ctx context.Context, iface string) (*entity.ConnectionStatus, error) {
	name, err := s.resolver.Resolve(ctx, iface)
	if err != nil {
		return nil, err
	}

	out, err := s.runner.Run(ctx, "iwconfig", name)
	if err != nil {
		return &entity.ConnectionStatus{Interface: name, Error: err.Error()}, nil
	}

	return parseStatus(out, name), nil
}

// SignalStrength is Status augmented with kernel wireless statistics.
// A missing or unreadable statistics source is silently skipped.
func (s *Service) SignalStrength(ctx context.Context, iface string) (*entity.ConnectionStatus, error) {
	status, err := s.Status(ctx, iface)
	if err != nil {
		return nil, err
	}

	if s.stats != nil {
		if stats, ok := s.stats.Stats(status.Interface); ok {
			status.WirelessStats = stats
		}
	}

	return status, nil
}

// Interfaces lists every link known to the system, tagging each one with
// its admin state and whether an iwconfig probe recognizes it as wireless.
func (s *Service) Interfaces(ctx context.Context) (*entity.InterfaceList, error) {
	out, err := s.runner.Run(ctx, "ip", "link", "show")
	if err != nil {
		return nil, err
	}

	list := &entity.InterfaceList{Interfaces: []entity.Interface{}}
	for _, line := range strings.Split(out, "\n") {
		// Header lines look like "2: wlan0: <BROADCAST,...,UP> mtu 1500".
		// Attribute continuation lines are indented and skipped.
		if strings.HasPrefix(line, " ") || !strings.Contains(line, ": ") {
			continue
		}
		parts := strings.Split(line, ": ")
		if len(parts) < 2 {
			continue
		}
		name := strings.Split(parts[1], "@")[0]

		_, probeErr := s.runner.Run(ctx, "iwconfig", name)

		status := "DOWN"
		if strings.Contains(line, "UP") {
			status = "UP"
		}

		list.Interfaces = append(list.Interfaces, entity.Interface{
			Name:       name,
			IsWireless: probeErr == nil,
			Status:     status,
		})
	}

	return list, nil
}
