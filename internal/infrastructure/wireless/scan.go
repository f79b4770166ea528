package wireless

import (
	"regexp"
	"strconv"
	"strings"

	"wifi-agent/internal/domain/entity"
)

// Scan output comes in two dialects. iw emits blocks headed by a
// "BSS <mac>" line with annotated "signal:" and "freq:" lines; iwlist emits
// "Cell NN - Address: <mac>" blocks with ESSID/Signal level/Frequency lines
// and frequencies in GHz. A dialect's parser is only ever applied to that
// dialect's command output; the two are never blended.

var (
	iwSignalRe = regexp.MustCompile(`signal: ([-\d.]+)`)
	iwFreqRe   = regexp.MustCompile(`freq: (\d+)`)

	iwlistSignalRe = regexp.MustCompile(`Signal level=([-\d]+)`)
	iwlistFreqRe   = regexp.MustCompile(`Frequency:([\d.]+)`)
)

// networkBuilder accumulates the optional fields of one scan record between
// delimiter lines. build finalizes it into an immutable entity.Network.
type networkBuilder struct {
	bssid     string
	ssid      *string
	signal    *float64
	frequency *float64
}

func newNetworkBuilder(bssid string) *networkBuilder {
	return &networkBuilder{bssid: bssid}
}

func (b *networkBuilder) setSSID(s string)       { b.ssid = &s }
func (b *networkBuilder) setSignal(v float64)    { b.signal = &v }
func (b *networkBuilder) setFrequency(v float64) { b.frequency = &v }

func (b *networkBuilder) build() entity.Network {
	return entity.Network{
		BSSID:     b.bssid,
		SSID:      b.ssid,
		Signal:    b.signal,
		Frequency: b.frequency,
	}
}

// parseIWScan parses `iw dev <if> scan` output. Records begin at "BSS "
// lines; field lines seen before the first delimiter are discarded.
func parseIWScan(out string) []entity.Network {
	var networks []entity.Network
	var current *networkBuilder

	flush := func() {
		if current != nil {
			networks = append(networks, current.build())
			current = nil
		}
	}

	for _, raw := range strings.Split(out, "\n") {
		line := strings.TrimSpace(raw)

		switch {
		case strings.HasPrefix(line, "BSS "):
			flush()
			fields := strings.Fields(line)
			if len(fields) > 1 {
				// iw glues flags onto the address: "BSS <mac>(on wlan0)".
				bssid := strings.TrimRight(fields[1], ":")
				if i := strings.IndexByte(bssid, '('); i >= 0 {
					bssid = bssid[:i]
				}
				current = newNetworkBuilder(bssid)
			}
		case current == nil:
			// Nothing to attach fields to yet.
		case strings.Contains(line, "SSID:"):
			if parts := strings.SplitN(line, "SSID: ", 2); len(parts) == 2 {
				current.setSSID(parts[1])
			}
		case strings.Contains(line, "signal:"):
			if m := iwSignalRe.FindStringSubmatch(line); m != nil {
				if v, err := strconv.ParseFloat(m[1], 64); err == nil {
					current.setSignal(v)
				}
			}
		case strings.Contains(line, "freq:"):
			if m := iwFreqRe.FindStringSubmatch(line); m != nil {
				if v, err := strconv.Atoi(m[1]); err == nil {
					current.setFrequency(float64(v))
				}
			}
		}
	}
	flush()

	return networks
}

// parseIWListScan parses `iwlist <if> scan` output. Frequency lines carry
// GHz values and are converted to MHz.
func parseIWListScan(out string) []entity.Network {
	var networks []entity.Network
	var current *networkBuilder

	flush := func() {
		if current != nil {
			networks = append(networks, current.build())
			current = nil
		}
	}

	for _, raw := range strings.Split(out, "\n") {
		line := strings.TrimSpace(raw)

		switch {
		case strings.Contains(line, "Cell") && strings.Contains(line, "Address:"):
			flush()
			if parts := strings.SplitN(line, "Address: ", 2); len(parts) == 2 {
				current = newNetworkBuilder(parts[1])
			}
		case current == nil:
		case strings.Contains(line, "ESSID:"):
			if parts := strings.SplitN(line, "ESSID:", 2); len(parts) == 2 {
				current.setSSID(strings.Trim(strings.TrimSpace(parts[1]), `"`))
			}
		case strings.Contains(line, "Signal level="):
			if m := iwlistSignalRe.FindStringSubmatch(line); m != nil {
				if v, err := strconv.Atoi(m[1]); err == nil {
					current.setSignal(float64(v))
				}
			}
		case strings.Contains(line, "Frequency:"):
			if m := iwlistFreqRe.FindStringSubmatch(line); m != nil {
				if v, err := strconv.ParseFloat(m[1], 64); err == nil {
					current.setFrequency(v * 1000)
				}
			}
		}
	}
	flush()

	return networks
}
