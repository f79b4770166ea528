package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wifi-agent/internal/adapter/tool"
	"wifi-agent/internal/application/service"
	"wifi-agent/internal/application/usecase"
	"wifi-agent/internal/domain/entity"
	"wifi-agent/internal/infrastructure/logger"
	"wifi-agent/internal/infrastructure/wireless"
	"wifi-agent/internal/observability"
	"wifi-agent/internal/transport/httpapi"
	"wifi-agent/internal/transport/stdio"
)

// scriptedRunner plays back canned command output keyed by the full argv.
type scriptedRunner struct {
	outputs map[string]string
}

func (r *scriptedRunner) Run(_ context.Context, argv ...string) (string, error) {
	key := strings.Join(argv, " ")
	if out, ok := r.outputs[key]; ok {
		return out, nil
	}
	return "", &wireless.CommandError{Argv: argv, ExitCode: 1, Stderr: "scripted failure"}
}

type emptyStats struct{}

func (emptyStats) Stats(string) (*entity.WirelessStats, bool) { return nil, false }

const scanOutput = `BSS 11:22:33:44:55:66(on wlan0) -- associated
	freq: 2412
	signal: -45.00 dBm
	SSID: HomeNet
BSS aa:bb:cc:dd:ee:ff(on wlan0)
	freq: 5180
	signal: -67.50 dBm
	SSID: CoffeeShop
`

const statusOutput = `wlan0     IEEE 802.11  ESSID:"HomeNet"
          Mode:Managed  Frequency:2.412 GHz  Access Point: AA:BB:CC:DD:EE:FF
          Bit Rate=72.2 Mb/s   Tx-Power=20 dBm
          Link Quality=60/70  Signal level=-45 dBm
`

const linkOutput = `1: lo: <LOOPBACK,UP,LOWER_UP> mtu 65536 qdisc noqueue state UNKNOWN
2: wlan0: <BROADCAST,MULTICAST,UP,LOWER_UP> mtu 1500 qdisc noqueue state UP
`

func newDispatcher(t *testing.T) (*usecase.Dispatcher, *observability.Collector) {
	t.Helper()

	runner := &scriptedRunner{outputs: map[string]string{
		"iwconfig":          statusOutput,
		"iwconfig wlan0":    statusOutput,
		"iw dev wlan0 scan": scanOutput,
		"ip link show":      linkOutput,
	}}

	log := logger.NewNop()
	wifi := wireless.NewService(runner, wireless.NewResolver(runner, log), emptyStats{}, log)

	registry := service.NewToolRegistry()
	registry.Register(tool.NewScanTool(wifi, log))
	registry.Register(tool.NewStatusTool(wifi, log))
	registry.Register(tool.NewSignalTool(wifi, log))
	registry.Register(tool.NewInterfacesTool(wifi, log))

	metrics := observability.NewCollector()
	return usecase.NewDispatcher(registry, log, metrics), metrics
}

func TestStdioSession(t *testing.T) {
	dispatcher, _ := newDispatcher(t)

	lines := []string{
		`{"jsonrpc":"2.0","id":1,"method":"initialize","params":{}}`,
		`{"jsonrpc":"2.0","method":"notifications/initialized"}`,
		`{"jsonrpc":"2.0","id":2,"method":"tools/list"}`,
		`{"jsonrpc":"2.0","id":3,"method":"tools/call","params":{"name":"scan_wifi","arguments":{"interface":"wlan0"}}}`,
		`{"jsonrpc":"2.0","id":4,"method":"tools/call","params":{"name":"get_wifi_status","arguments":{}}}`,
	}

	in := strings.NewReader(strings.Join(lines, "\n") + "\n")
	var out bytes.Buffer
	server := stdio.NewServer(dispatcher, logger.NewNop(), in, &out)
	require.NoError(t, server.Run(context.Background()))

	responses := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, responses, 4, "notification must not produce a response")

	var initResp struct {
		Result struct {
			ProtocolVersion string `json:"protocolVersion"`
		} `json:"result"`
	}
	require.NoError(t, json.Unmarshal([]byte(responses[0]), &initResp))
	assert.Equal(t, "2024-11-05", initResp.Result.ProtocolVersion)

	var listResp struct {
		Result struct {
			Tools []struct {
				Name string `json:"name"`
			} `json:"tools"`
		} `json:"result"`
	}
	require.NoError(t, json.Unmarshal([]byte(responses[1]), &listResp))
	require.Len(t, listResp.Result.Tools, 4)
	assert.Equal(t, "scan_wifi", listResp.Result.Tools[0].Name)

	var scanResp struct {
		Result struct {
			Content []struct {
				Text string `json:"text"`
			} `json:"content"`
			IsError bool `json:"isError"`
		} `json:"result"`
	}
	require.NoError(t, json.Unmarshal([]byte(responses[2]), &scanResp))
	assert.False(t, scanResp.Result.IsError)
	require.Len(t, scanResp.Result.Content, 1)

	var scan entity.ScanResult
	require.NoError(t, json.Unmarshal([]byte(scanResp.Result.Content[0].Text), &scan))
	assert.Equal(t, "wlan0", scan.Interface)
	require.Len(t, scan.Networks, 2)
	assert.Equal(t, "11:22:33:44:55:66", scan.Networks[0].BSSID)

	var statusResp struct {
		Result struct {
			Content []struct {
				Text string `json:"text"`
			} `json:"content"`
		} `json:"result"`
	}
	require.NoError(t, json.Unmarshal([]byte(responses[3]), &statusResp))

	var status entity.ConnectionStatus
	require.NoError(t, json.Unmarshal([]byte(statusResp.Result.Content[0].Text), &status))
	require.NotNil(t, status.ConnectedSSID)
	assert.Equal(t, "HomeNet", *status.ConnectedSSID)
	require.NotNil(t, status.SignalLevel)
	assert.Equal(t, -45, *status.SignalLevel)
}

func TestHTTPSession(t *testing.T) {
	dispatcher, metrics := newDispatcher(t)
	server := httptest.NewServer(httpapi.NewServer(dispatcher, logger.NewNop(), metrics.Handler()).Router())
	defer server.Close()

	post := func(path, body string) (int, []byte) {
		resp, err := http.Post(server.URL+path, "application/json", strings.NewReader(body))
		require.NoError(t, err)
		defer resp.Body.Close()
		var buf bytes.Buffer
		_, err = buf.ReadFrom(resp.Body)
		require.NoError(t, err)
		return resp.StatusCode, buf.Bytes()
	}

	code, body := post("/list_tools", "{}")
	require.Equal(t, http.StatusOK, code)
	var list struct {
		Tools []entity.ToolDefinition `json:"tools"`
	}
	require.NoError(t, json.Unmarshal(body, &list))
	assert.Len(t, list.Tools, 4)

	code, body = post("/execute", `{"tool_name":"list_interfaces","tool_args":{}}`)
	require.Equal(t, http.StatusOK, code)
	var interfaces entity.InterfaceList
	require.NoError(t, json.Unmarshal(body, &interfaces))
	require.Len(t, interfaces.Interfaces, 2)
	assert.Equal(t, "lo", interfaces.Interfaces[0].Name)
	assert.True(t, interfaces.Interfaces[1].IsWireless)

	code, body = post("/call_tool", `{"name":"get_signal_strength","arguments":{"interface":"wlan0"}}`)
	require.Equal(t, http.StatusOK, code)
	var signal entity.ConnectionStatus
	require.NoError(t, json.Unmarshal(body, &signal))
	require.NotNil(t, signal.LinkQuality)
	assert.Equal(t, 60, signal.LinkQuality.Current)
	assert.Equal(t, 70, signal.LinkQuality.Max)

	code, body = post("/call_tool", `{"name":"no_such_tool"}`)
	require.Equal(t, http.StatusOK, code)
	var failure struct {
		Error *entity.ToolError `json:"error"`
	}
	require.NoError(t, json.Unmarshal(body, &failure))
	require.NotNil(t, failure.Error)
	assert.Contains(t, failure.Error.Message, "unknown tool")

	resp, err := http.Get(server.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	var buf bytes.Buffer
	_, err = buf.ReadFrom(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `wifi_tool_invocations_total{outcome="success",tool="list_interfaces"}`)
}

func TestScanFallsBackAcrossTransports(t *testing.T) {
	// iw is absent here; the service must fall back to iwlist output.
	runner := &scriptedRunner{outputs: map[string]string{
		"iwconfig wlan0": statusOutput,
		"iwlist wlan0 scan": `wlan0     Scan completed :
          Cell 01 - Address: 11:22:33:44:55:66
                    Frequency:2.412 GHz (Channel 1)
                    Quality=60/70  Signal level=-45 dBm
                    ESSID:"HomeNet"
`,
	}}
	log := logger.NewNop()
	wifi := wireless.NewService(runner, wireless.NewResolver(runner, log), emptyStats{}, log)

	registry := service.NewToolRegistry()
	registry.Register(tool.NewScanTool(wifi, log))
	dispatcher := usecase.NewDispatcher(registry, log, nil)

	result := dispatcher.Dispatch(context.Background(), "scan_wifi", map[string]any{"interface": "wlan0"})
	require.False(t, result.IsError(), fmt.Sprintf("%+v", result.Err))

	var scan entity.ScanResult
	require.NoError(t, json.Unmarshal(result.Data, &scan))
	require.Len(t, scan.Networks, 1)
	require.NotNil(t, scan.Networks[0].Frequency)
	assert.InDelta(t, 2412.0, *scan.Networks[0].Frequency, 0.001)
}
