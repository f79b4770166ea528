package wireless

import (
	"regexp"
	"strconv"
	"strings"

	"wifi-agent/internal/domain/entity"
)

var (
	essidRe       = regexp.MustCompile(`ESSID:"([^"]*)"`)
	accessPointRe = regexp.MustCompile(`Access Point: ([A-Fa-f0-9:]{17})`)
	bitRateRe     = regexp.MustCompile(`Bit Rate=([0-9.]+)`)
	linkQualityRe = regexp.MustCompile(`Link Quality=(\d+)/(\d+)`)
	signalLevelRe = regexp.MustCompile(`Signal level=([-\d]+)`)
)

// parseStatus performs a single pass over iwconfig output for one
// interface. Matches are independent per line; any subset of fields may be
// absent and absent fields stay unset.
func parseStatus(out, iface string) *entity.ConnectionStatus {
	status := &entity.ConnectionStatus{Interface: iface}

	for _, line := range strings.Split(out, "\n") {
		switch {
		case strings.Contains(line, "ESSID:"):
			if m := essidRe.FindStringSubmatch(line); m != nil {
				ssid := m[1]
				status.ConnectedSSID = &ssid
			}
		case strings.Contains(line, "Access Point:"):
			if m := accessPointRe.FindStringSubmatch(line); m != nil {
				ap := m[1]
				status.AccessPoint = &ap
			}
		case strings.Contains(line, "Bit Rate="):
			if m := bitRateRe.FindStringSubmatch(line); m != nil {
				if v, err := strconv.ParseFloat(m[1], 64); err == nil {
					status.BitRate = &v
				}
			}
		case strings.Contains(line, "Link Quality="):
			// iwconfig prints quality and signal level on one line.
			if m := linkQualityRe.FindStringSubmatch(line); m != nil {
				cur, err1 := strconv.Atoi(m[1])
				max, err2 := strconv.Atoi(m[2])
				if err1 == nil && err2 == nil {
					status.LinkQuality = &entity.LinkQuality{Current: cur, Max: max}
				}
			}
			if m := signalLevelRe.FindStringSubmatch(line); m != nil {
				if v, err := strconv.Atoi(m[1]); err == nil {
					status.SignalLevel = &v
				}
			}
		}
	}

	return status
}
