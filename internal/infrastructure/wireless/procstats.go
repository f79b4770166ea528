package wireless

import (
	"os"
	"strings"

	"wifi-agent/internal/application/port/output"
	"wifi-agent/internal/domain/entity"
)

// DefaultProcWirelessPath is the kernel wireless-statistics table.
const DefaultProcWirelessPath = "/proc/net/wireless"

var _ output.StatsSource = (*ProcStatsSource)(nil)

// ProcStatsSource reads per-interface signal statistics from the kernel's
// wireless table. The table is best-effort: it may be missing entirely or
// unreadable, and either case is reported as "no stats", never as an error.
type ProcStatsSource struct {
	Path string
}

func NewProcStatsSource() *ProcStatsSource {
	return &ProcStatsSource{Path: DefaultProcWirelessPath}
}

func (p *ProcStatsSource) Stats(name string) (*entity.WirelessStats, bool) {
	data, err := os.ReadFile(p.Path)
	if err != nil {
		return nil, false
	}

	for _, line := range strings.Split(string(data), "\n") {
		if !strings.Contains(line, name) {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 4 {
			return nil, false
		}
		stats := &entity.WirelessStats{
			Status:    fields[1],
			Quality:   fields[2],
			SignalDBM: fields[3],
		}
		if len(fields) > 4 {
			noise := fields[4]
			stats.NoiseDBM = &noise
		}
		return stats, true
	}

	return nil, false
}
