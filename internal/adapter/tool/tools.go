package tool

import (
	"context"
	"encoding/json"

	"wifi-agent/internal/application/port/output"
	"wifi-agent/internal/domain/entity"
)

var (
	_ output.ToolPort = (*ScanTool)(nil)
	_ output.ToolPort = (*StatusTool)(nil)
	_ output.ToolPort = (*SignalTool)(nil)
	_ output.ToolPort = (*InterfacesTool)(nil)
)

// interfaceArgs is the shared argument shape of the interface-scoped tools.
type interfaceArgs struct {
	Interface string `json:"interface"`
}

func parseInterfaceArgs(arguments string) (interfaceArgs, error) {
	var args interfaceArgs
	if arguments == "" {
		return args, nil
	}
	if err := json.Unmarshal([]byte(arguments), &args); err != nil {
		return args, err
	}
	return args, nil
}

func interfaceParameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"interface": map[string]interface{}{
				"type":        "string",
				"description": "Wi-Fi interface name (optional, defaults to auto-detect)",
			},
		},
	}
}

func marshalPayload(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

type ScanTool struct {
	wifi   output.WirelessPort
	logger output.LoggerPort
}

func NewScanTool(wifi output.WirelessPort, logger output.LoggerPort) *ScanTool {
	return &ScanTool{wifi: wifi, logger: logger}
}

func (t *ScanTool) Name() entity.ToolName { return entity.ToolScanWifi }
func (t *ScanTool) Description() string {
	return "Scan for available Wi-Fi networks"
}
func (t *ScanTool) Parameters() map[string]interface{} { return interfaceParameters() }

func (t *ScanTool) Execute(ctx context.Context, arguments string) (string, error) {
	args, err := parseInterfaceArgs(arguments)
	if err != nil {
		return "", err
	}
	result, err := t.wifi.Scan(ctx, args.Interface)
	if err != nil {
		return "", err
	}
	t.logger.Debug("scan finished", "interface", result.Interface, "networks", len(result.Networks))
	return marshalPayload(result)
}

type StatusTool struct {
	wifi   output.WirelessPort
	logger output.LoggerPort
}

func NewStatusTool(wifi output.WirelessPort, logger output.LoggerPort) *StatusTool {
	return &StatusTool{wifi: wifi, logger: logger}
}

func (t *StatusTool) Name() entity.ToolName { return entity.ToolGetWifiStatus }
func (t *StatusTool) Description() string {
	return "Get current Wi-Fi connection status"
}
func (t *StatusTool) Parameters() map[string]interface{} { return interfaceParameters() }

func (t *StatusTool) Execute(ctx context.Context, arguments string) (string, error) {
	args, err := parseInterfaceArgs(arguments)
	if err != nil {
		return "", err
	}
	status, err := t.wifi.Status(ctx, args.Interface)
	if err != nil {
		return "", err
	}
	return marshalPayload(status)
}

type SignalTool struct {
	wifi   output.WirelessPort
	logger output.LoggerPort
}

func NewSignalTool(wifi output.WirelessPort, logger output.LoggerPort) *SignalTool {
	return &SignalTool{wifi: wifi, logger: logger}
}

func (t *SignalTool) Name() entity.ToolName { return entity.ToolGetSignalStrength }
func (t *SignalTool) Description() string {
	return "Get signal strength and quality metrics"
}
func (t *SignalTool) Parameters() map[string]interface{} { return interfaceParameters() }

func (t *SignalTool) Execute(ctx context.Context, arguments string) (string, error) {
	args, err := parseInterfaceArgs(arguments)
	if err != nil {
		return "", err
	}
	status, err := t.wifi.SignalStrength(ctx, args.Interface)
	if err != nil {
		return "", err
	}
	return marshalPayload(status)
}

type InterfacesTool struct {
	wifi   output.WirelessPort
	logger output.LoggerPort
}

func NewInterfacesTool(wifi output.WirelessPort, logger output.LoggerPort) *InterfacesTool {
	return &InterfacesTool{wifi: wifi, logger: logger}
}

func (t *InterfacesTool) Name() entity.ToolName { return entity.ToolListInterfaces }
func (t *InterfacesTool) Description() string {
	return "List all available network interfaces"
}

func (t *InterfacesTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type":       "object",
		"properties": map[string]interface{}{},
	}
}

func (t *InterfacesTool) Execute(ctx context.Context, arguments string) (string, error) {
	list, err := t.wifi.Interfaces(ctx)
	if err != nil {
		return "", err
	}
	t.logger.Debug("listed interfaces", "count", len(list.Interfaces))
	return marshalPayload(list)
}
