package entity

import "encoding/json"

type ToolName string

const (
	ToolScanWifi          ToolName = "scan_wifi"
	ToolGetWifiStatus     ToolName = "get_wifi_status"
	ToolGetSignalStrength ToolName = "get_signal_strength"
	ToolListInterfaces    ToolName = "list_interfaces"
)

func (t ToolName) String() string {
	return string(t)
}

type ToolDefinition struct {
	Name        ToolName               `json:"name"`
	Description string                 `json:"description"`
	Parameters  map[string]interface{} `json:"input_schema"`
}

// ToolError is the uniform error descriptor carried by a failed tool call.
type ToolError struct {
	Message string `json:"message"`
}

// ToolResult is the terminal outcome of a dispatched tool call: either a
// structured JSON payload or a ToolError, never both.
type ToolResult struct {
	Data json.RawMessage
	Err  *ToolError
}

func (r ToolResult) IsError() bool {
	return r.Err != nil
}
