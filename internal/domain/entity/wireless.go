package entity

// Network is a single access point observed during a scan. Optional fields
// are pointers so that "not reported by the driver" stays distinguishable
// from a reported zero.
type Network struct {
	BSSID     string   `json:"bssid"`
	SSID      *string  `json:"ssid,omitempty"`
	Signal    *float64 `json:"signal,omitempty"`
	Frequency *float64 `json:"frequency,omitempty"`
}

// ScanResult is the payload of the scan_wifi tool.
type ScanResult struct {
	Interface string    `json:"interface"`
	Networks  []Network `json:"networks"`
	ScanTime  float64   `json:"scan_time"`
}

// LinkQuality is the vendor-reported current/max quality ratio.
type LinkQuality struct {
	Current int `json:"current"`
	Max     int `json:"max"`
}

// WirelessStats carries the coarse figures from the kernel wireless table.
// Values are kept as raw strings (the table prints them with trailing dots).
type WirelessStats struct {
	Status    string  `json:"status"`
	Quality   string  `json:"quality"`
	SignalDBM string  `json:"signal_dbm"`
	NoiseDBM  *string `json:"noise_dbm"`
}

// ConnectionStatus is the payload of get_wifi_status and, with the
// WirelessStats augmentation, get_signal_strength. Error is populated
// instead of the other fields when the status command itself failed.
type ConnectionStatus struct {
	Interface     string         `json:"interface"`
	ConnectedSSID *string        `json:"connected_ssid,omitempty"`
	AccessPoint   *string        `json:"access_point,omitempty"`
	BitRate       *float64       `json:"bit_rate,omitempty"`
	LinkQuality   *LinkQuality   `json:"link_quality,omitempty"`
	SignalLevel   *int           `json:"signal_level,omitempty"`
	WirelessStats *WirelessStats `json:"wireless_stats,omitempty"`
	Error         string         `json:"error,omitempty"`
}

// Interface is one entry in the list_interfaces payload.
type Interface struct {
	Name       string `json:"name"`
	IsWireless bool   `json:"is_wireless"`
	Status     string `json:"status"`
}

// InterfaceList is the payload of the list_interfaces tool.
type InterfaceList struct {
	Interfaces []Interface `json:"interfaces"`
}
