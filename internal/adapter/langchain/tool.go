package langchain

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/tmc/langchaingo/tools"

	"wifi-agent/internal/application/port/output"
)

var _ tools.Tool = (*ToolAdapter)(nil)

// ToolAdapter exposes one wifi tool as a langchaingo tools.Tool, so the
// tool set plugs into langchaingo agents unchanged. Input may be a JSON
// argument object or a bare interface name.
type ToolAdapter struct {
	tool output.ToolPort
}

func NewToolAdapter(tool output.ToolPort) *ToolAdapter {
	return &ToolAdapter{tool: tool}
}

func (a *ToolAdapter) Name() string {
	return a.tool.Name().String()
}

func (a *ToolAdapter) Description() string {
	return a.tool.Description()
}

func (a *ToolAdapter) Call(ctx context.Context, input string) (string, error) {
	return a.tool.Execute(ctx, normalizeInput(input))
}

// normalizeInput accepts the loose inputs langchaingo agents produce:
// empty text, a JSON object, or a bare interface name like "wlan0".
func normalizeInput(input string) string {
	input = strings.TrimSpace(input)
	if input == "" || input == "null" {
		return "{}"
	}
	if strings.HasPrefix(input, "{") {
		return input
	}
	args, _ := json.Marshal(map[string]string{"interface": input})
	return string(args)
}

// WrapRegistry adapts every registered tool.
func WrapRegistry(registry output.ToolRegistry) []tools.Tool {
	all := registry.All()
	result := make([]tools.Tool, 0, len(all))
	for _, t := range all {
		result = append(result, NewToolAdapter(t))
	}
	return result
}
