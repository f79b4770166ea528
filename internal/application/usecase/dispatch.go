package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"wifi-agent/internal/application/port/output"
	"wifi-agent/internal/domain/entity"
)

// MetricsRecorder receives one observation per dispatched tool call.
// Outcome is "success", "error", or "unknown_tool".
type MetricsRecorder interface {
	ObserveTool(tool, outcome string, elapsed time.Duration)
}

// Dispatcher routes a tool name and argument bag to the registered tool and
// normalizes every outcome into an entity.ToolResult. It is the sole error
// boundary: no failure below it reaches a transport as a raw error, and a
// failed call never poisons the next one.
type Dispatcher struct {
	tools   output.ToolRegistry
	logger  output.LoggerPort
	metrics MetricsRecorder
}

func NewDispatcher(tools output.ToolRegistry, logger output.LoggerPort, metrics MetricsRecorder) *Dispatcher {
	return &Dispatcher{tools: tools, logger: logger, metrics: metrics}
}

// Definitions exposes the registered tool set for the transports' listing
// endpoints.
func (d *Dispatcher) Definitions() []entity.ToolDefinition {
	return d.tools.Definitions()
}

func (d *Dispatcher) Dispatch(ctx context.Context, name string, args map[string]any) entity.ToolResult {
	start := time.Now()

	tool, ok := d.tools.Get(entity.ToolName(name))
	if !ok {
		d.logger.Warn("unknown tool requested", "tool", name)
		d.observe(name, "unknown_tool", start)
		return errorResult(fmt.Sprintf("unknown tool: %s", name))
	}

	arguments, err := json.Marshal(args)
	if err != nil {
		d.observe(name, "error", start)
		return errorResult(fmt.Sprintf("invalid arguments: %v", err))
	}

	d.logger.Info("dispatching tool", "tool", name, "args", string(arguments))

	payload, err := tool.Execute(ctx, string(arguments))
	if err != nil {
		d.logger.Error("tool failed", "tool", name, "error", err)
		d.observe(name, "error", start)
		return errorResult(err.Error())
	}

	d.logger.Debug("tool completed", "tool", name, "payload_bytes", len(payload))
	d.observe(name, "success", start)
	return entity.ToolResult{Data: json.RawMessage(payload)}
}

func (d *Dispatcher) observe(tool, outcome string, start time.Time) {
	if d.metrics != nil {
		d.metrics.ObserveTool(tool, outcome, time.Since(start))
	}
}

func errorResult(message string) entity.ToolResult {
	return entity.ToolResult{Err: &entity.ToolError{Message: message}}
}
