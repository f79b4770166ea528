package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"wifi-agent/internal/application/port/output"
	"wifi-agent/internal/domain/entity"
)

var (
	_ output.ToolRegistry = (*Registry)(nil)
	_ output.ToolPort     = (*Tool)(nil)
)

// Registry is a ToolRegistry backed by a running wifi-agent HTTP server.
// Definitions are fetched once from /list_tools; executions go through
// /execute, the same endpoint the original agent protocol uses.
type Registry struct {
	tools map[entity.ToolName]output.ToolPort
	order []entity.ToolName
}

// Client wraps the HTTP access shared by all remote tools.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	baseURL = strings.TrimRight(baseURL, "/")
	if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		baseURL = "http://" + baseURL
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 60 * time.Second},
	}
}

// NewRegistry fetches the server's tool definitions and builds a remote
// proxy tool for each.
func NewRegistry(ctx context.Context, client *Client) (*Registry, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, client.baseURL+"/list_tools", strings.NewReader("{}"))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("list tools: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("list tools: unexpected status %d", resp.StatusCode)
	}

	var payload struct {
		Tools []entity.ToolDefinition `json:"tools"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode tool list: %w", err)
	}

	registry := &Registry{tools: make(map[entity.ToolName]output.ToolPort)}
	for _, def := range payload.Tools {
		registry.Register(&Tool{client: client, def: def})
	}
	return registry, nil
}

func (r *Registry) Register(tool output.ToolPort) {
	if _, exists := r.tools[tool.Name()]; !exists {
		r.order = append(r.order, tool.Name())
	}
	r.tools[tool.Name()] = tool
}

func (r *Registry) Get(name entity.ToolName) (output.ToolPort, bool) {
	tool, ok := r.tools[name]
	return tool, ok
}

func (r *Registry) All() []output.ToolPort {
	result := make([]output.ToolPort, 0, len(r.tools))
	for _, name := range r.order {
		result = append(result, r.tools[name])
	}
	return result
}

func (r *Registry) Definitions() []entity.ToolDefinition {
	result := make([]entity.ToolDefinition, 0, len(r.tools))
	for _, tool := range r.All() {
		result = append(result, entity.ToolDefinition{
			Name:        tool.Name(),
			Description: tool.Description(),
			Parameters:  tool.Parameters(),
		})
	}
	return result
}

// Tool proxies one tool call to the server's /execute endpoint.
type Tool struct {
	client *Client
	def    entity.ToolDefinition
}

func (t *Tool) Name() entity.ToolName              { return t.def.Name }
func (t *Tool) Description() string                { return t.def.Description }
func (t *Tool) Parameters() map[string]interface{} { return t.def.Parameters }

func (t *Tool) Execute(ctx context.Context, arguments string) (string, error) {
	var args map[string]any
	if strings.TrimSpace(arguments) != "" {
		if err := json.Unmarshal([]byte(arguments), &args); err != nil {
			return "", fmt.Errorf("invalid arguments: %w", err)
		}
	}

	body, err := json.Marshal(map[string]any{
		"tool_name": t.def.Name,
		"tool_args": args,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.client.baseURL+"/execute", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("call %s: %w", t.def.Name, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("call %s: status %d: %s", t.def.Name, resp.StatusCode, strings.TrimSpace(string(data)))
	}

	// Tool-level errors come back embedded with status 200.
	var envelope struct {
		Error *entity.ToolError `json:"error"`
	}
	if err := json.Unmarshal(data, &envelope); err == nil && envelope.Error != nil {
		return "", fmt.Errorf("%s", envelope.Error.Message)
	}

	return string(data), nil
}
