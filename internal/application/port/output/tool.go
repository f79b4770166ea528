package output

import (
	"context"

	"wifi-agent/internal/domain/entity"
)

// ToolPort is a single remotely invocable operation. Arguments arrive as a
// JSON object string; the returned string is the JSON-encoded payload.
type ToolPort interface {
	Name() entity.ToolName
	Description() string
	Parameters() map[string]interface{}
	Execute(ctx context.Context, arguments string) (string, error)
}

type ToolRegistry interface {
	Register(tool ToolPort)
	Get(name entity.ToolName) (ToolPort, bool)
	All() []ToolPort
	Definitions() []entity.ToolDefinition
}
