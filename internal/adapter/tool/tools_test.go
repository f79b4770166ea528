package tool

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"wifi-agent/internal/domain/entity"
	"wifi-agent/internal/infrastructure/logger"
)

type fakeWireless struct {
	scanResult *entity.ScanResult
	status     *entity.ConnectionStatus
	signal     *entity.ConnectionStatus
	interfaces *entity.InterfaceList
	err        error

	lastInterface string
}

func (f *fakeWireless) Scan(_ context.Context, iface string) (*entity.ScanResult, error) {
	f.lastInterface = iface
	return f.scanResult, f.err
}

func (f *fakeWireless) Status(_ context.Context, iface string) (*entity.ConnectionStatus, error) {
	f.lastInterface = iface
	return f.status, f.err
}

func (f *fakeWireless) SignalStrength(_ context.Context, iface string) (*entity.ConnectionStatus, error) {
	f.lastInterface = iface
	return f.signal, f.err
}

func (f *fakeWireless) Interfaces(_ context.Context) (*entity.InterfaceList, error) {
	return f.interfaces, f.err
}

func TestScanTool_Execute(t *testing.T) {
	ssid := "HomeNet"
	wifi := &fakeWireless{scanResult: &entity.ScanResult{
		Interface: "wlan0",
		Networks:  []entity.Network{{BSSID: "11:22:33:44:55:66", SSID: &ssid}},
		ScanTime:  1700000000.5,
	}}
	scan := NewScanTool(wifi, logger.NewNop())

	payload, err := scan.Execute(context.Background(), `{"interface":"wlan0"}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if wifi.lastInterface != "wlan0" {
		t.Errorf("expected interface argument forwarded, got %q", wifi.lastInterface)
	}

	var decoded entity.ScanResult
	if err := json.Unmarshal([]byte(payload), &decoded); err != nil {
		t.Fatalf("payload is not valid JSON: %v", err)
	}
	if len(decoded.Networks) != 1 || decoded.Networks[0].BSSID != "11:22:33:44:55:66" {
		t.Errorf("unexpected payload %s", payload)
	}
}

func TestScanTool_EmptyArguments(t *testing.T) {
	wifi := &fakeWireless{scanResult: &entity.ScanResult{Interface: "wlan0"}}
	scan := NewScanTool(wifi, logger.NewNop())

	if _, err := scan.Execute(context.Background(), ""); err != nil {
		t.Fatalf("empty arguments must mean auto-detect: %v", err)
	}
	if wifi.lastInterface != "" {
		t.Errorf("expected empty interface, got %q", wifi.lastInterface)
	}
}

func TestScanTool_MalformedArguments(t *testing.T) {
	scan := NewScanTool(&fakeWireless{}, logger.NewNop())

	if _, err := scan.Execute(context.Background(), `{"interface":`); err == nil {
		t.Fatal("expected error for malformed JSON arguments")
	}
}

func TestScanTool_ErrorPropagates(t *testing.T) {
	wifi := &fakeWireless{err: errors.New("no Wi-Fi interface found")}
	scan := NewScanTool(wifi, logger.NewNop())

	if _, err := scan.Execute(context.Background(), `{}`); err == nil {
		t.Fatal("expected wireless error to propagate")
	}
}

func TestStatusTool_OmitsUnreportedFields(t *testing.T) {
	wifi := &fakeWireless{status: &entity.ConnectionStatus{Interface: "wlan0"}}
	status := NewStatusTool(wifi, logger.NewNop())

	payload, err := status.Execute(context.Background(), `{}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal([]byte(payload), &decoded); err != nil {
		t.Fatalf("payload is not valid JSON: %v", err)
	}
	if _, present := decoded["connected_ssid"]; present {
		t.Errorf("unreported ssid must be omitted, payload %s", payload)
	}
	if decoded["interface"] != "wlan0" {
		t.Errorf("expected interface in payload, got %s", payload)
	}
}

func TestSignalTool_CarriesWirelessStats(t *testing.T) {
	wifi := &fakeWireless{signal: &entity.ConnectionStatus{
		Interface:     "wlan0",
		WirelessStats: &entity.WirelessStats{Status: "0000", Quality: "60.", SignalDBM: "-45."},
	}}
	signal := NewSignalTool(wifi, logger.NewNop())

	payload, err := signal.Execute(context.Background(), `{"interface":"wlan0"}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var decoded entity.ConnectionStatus
	if err := json.Unmarshal([]byte(payload), &decoded); err != nil {
		t.Fatalf("payload is not valid JSON: %v", err)
	}
	if decoded.WirelessStats == nil || decoded.WirelessStats.Quality != "60." {
		t.Errorf("expected wireless stats in payload %s", payload)
	}
}

func TestInterfacesTool_IgnoresArguments(t *testing.T) {
	wifi := &fakeWireless{interfaces: &entity.InterfaceList{Interfaces: []entity.Interface{
		{Name: "wlan0", IsWireless: true, Status: "UP"},
	}}}
	interfaces := NewInterfacesTool(wifi, logger.NewNop())

	payload, err := interfaces.Execute(context.Background(), `{"anything":"goes"}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var decoded entity.InterfaceList
	if err := json.Unmarshal([]byte(payload), &decoded); err != nil {
		t.Fatalf("payload is not valid JSON: %v", err)
	}
	if len(decoded.Interfaces) != 1 || !decoded.Interfaces[0].IsWireless {
		t.Errorf("unexpected payload %s", payload)
	}
}

func TestToolMetadata(t *testing.T) {
	wifi := &fakeWireless{}
	log := logger.NewNop()

	tools := map[entity.ToolName]interface {
		Parameters() map[string]interface{}
	}{
		NewScanTool(wifi, log).Name():       NewScanTool(wifi, log),
		NewStatusTool(wifi, log).Name():     NewStatusTool(wifi, log),
		NewSignalTool(wifi, log).Name():     NewSignalTool(wifi, log),
		NewInterfacesTool(wifi, log).Name(): NewInterfacesTool(wifi, log),
	}

	for name, tool := range tools {
		params := tool.Parameters()
		if params["type"] != "object" {
			t.Errorf("%s: parameters must be an object schema", name)
		}
		if _, ok := params["properties"]; !ok {
			t.Errorf("%s: parameters missing properties", name)
		}
	}
}
