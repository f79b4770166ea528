package stdio

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"wifi-agent/internal/application/port/output"
	"wifi-agent/internal/domain/entity"
)

const protocolVersion = "2024-11-05"

// Dispatcher is the slice of the tool layer the stdio binding needs.
type Dispatcher interface {
	Definitions() []entity.ToolDefinition
	Dispatch(ctx context.Context, name string, args map[string]any) entity.ToolResult
}

type request struct {
	Jsonrpc string           `json:"jsonrpc"`
	ID      *json.RawMessage `json:"id,omitempty"`
	Method  string           `json:"method"`
	Params  json.RawMessage  `json:"params,omitempty"`
}

type response struct {
	Jsonrpc string           `json:"jsonrpc"`
	ID      *json.RawMessage `json:"id,omitempty"`
	Result  interface{}      `json:"result,omitempty"`
	Error   *rpcError        `json:"error,omitempty"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type toolInfo struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

type callParams struct {
	Name      string         `json:"name"`
	Arguments map[string]any `json:"arguments"`
}

type content struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type callResult struct {
	Content []content `json:"content"`
	IsError bool      `json:"isError,omitempty"`
}

// Server is the newline-delimited JSON-RPC binding. Requests are processed
// strictly one at a time; each yields exactly one response line.
type Server struct {
	dispatcher Dispatcher
	logger     output.LoggerPort
	in         io.Reader
	out        io.Writer
	name       string
	version    string
}

func NewServer(dispatcher Dispatcher, logger output.LoggerPort, in io.Reader, out io.Writer) *Server {
	return &Server{
		dispatcher: dispatcher,
		logger:     logger,
		in:         in,
		out:        out,
		name:       "wifi-agent",
		version:    "1.0.0",
	}
}

func (s *Server) Run(ctx context.Context) error {
	scanner := bufio.NewScanner(s.in)
	scanner.Buffer(make([]byte, 1024*1024), 1024*1024)

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var req request
		if err := json.Unmarshal([]byte(line), &req); err != nil {
			s.logger.Warn("dropping malformed request line", "error", err)
			continue
		}

		// Notifications expect no reply.
		if req.ID == nil && strings.HasPrefix(req.Method, "notifications/") {
			continue
		}

		resp := s.handle(ctx, &req)
		if err := s.write(resp); err != nil {
			return fmt.Errorf("write response: %w", err)
		}
	}

	return scanner.Err()
}

func (s *Server) handle(ctx context.Context, req *request) *response {
	resp := &response{Jsonrpc: "2.0", ID: req.ID}

	switch req.Method {
	case "initialize":
		resp.Result = map[string]interface{}{
			"protocolVersion": protocolVersion,
			"capabilities": map[string]interface{}{
				"tools": map[string]interface{}{},
			},
			"serverInfo": map[string]interface{}{
				"name":    s.name,
				"version": s.version,
			},
		}

	case "tools/list":
		defs := s.dispatcher.Definitions()
		tools := make([]toolInfo, 0, len(defs))
		for _, def := range defs {
			tools = append(tools, toolInfo{
				Name:        def.Name.String(),
				Description: def.Description,
				InputSchema: def.Parameters,
			})
		}
		resp.Result = map[string]interface{}{"tools": tools}

	case "tools/call":
		var params callParams
		if err := json.Unmarshal(req.Params, &params); err != nil {
			resp.Error = &rpcError{Code: -32602, Message: "invalid params: " + err.Error()}
			break
		}
		if params.Name == "" {
			resp.Error = &rpcError{Code: -32602, Message: "missing tool name"}
			break
		}
		resp.Result = toCallResult(s.dispatcher.Dispatch(ctx, params.Name, params.Arguments))

	default:
		resp.Error = &rpcError{Code: -32601, Message: "method not found: " + req.Method}
	}

	return resp
}

// toCallResult renders a dispatch outcome as MCP text content. Payloads are
// re-indented for readability; errors become a single "Error: ..." line.
func toCallResult(result entity.ToolResult) callResult {
	if result.IsError() {
		return callResult{
			Content: []content{{Type: "text", Text: "Error: " + result.Err.Message}},
			IsError: true,
		}
	}

	text := string(result.Data)
	var buf map[string]interface{}
	if err := json.Unmarshal(result.Data, &buf); err == nil {
		if pretty, err := json.MarshalIndent(buf, "", "  "); err == nil {
			text = string(pretty)
		}
	}

	return callResult{Content: []content{{Type: "text", Text: text}}}
}

func (s *Server) write(resp *response) error {
	data, err := json.Marshal(resp)
	if err != nil {
		return err
	}
	if _, err := s.out.Write(append(data, '\n')); err != nil {
		return err
	}
	return nil
}
