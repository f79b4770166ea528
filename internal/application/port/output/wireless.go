package output

import (
	"context"

	"wifi-agent/internal/domain/entity"
)

// CommandRunner executes an external diagnostic program and returns its
// captured standard output.
type CommandRunner interface {
	Run(ctx context.Context, argv ...string) (string, error)
}

// InterfaceResolver determines which wireless interface name to operate on.
// An explicit non-empty name is returned unchecked.
type InterfaceResolver interface {
	Resolve(ctx context.Context, explicit string) (string, error)
}

// StatsSource reads the kernel wireless-statistics table for one interface.
// The second return is false when the source is unavailable or the
// interface has no row; callers treat that as a silent no-op.
type StatsSource interface {
	Stats(name string) (*entity.WirelessStats, bool)
}

// WirelessPort is the high-level wireless introspection surface the tools
// are built on.
type WirelessPort interface {
	Scan(ctx context.Context, iface string) (*entity.ScanResult, error)
	Status(ctx context.Context, iface string) (*entity.ConnectionStatus, error)
	SignalStrength(ctx context.Context, iface string) (*entity.ConnectionStatus, error)
	Interfaces(ctx context.Context) (*entity.InterfaceList, error)
}
