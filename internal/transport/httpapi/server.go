package httpapi

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httplog"

	"wifi-agent/internal/application/port/output"
	"wifi-agent/internal/domain/entity"
)

// Dispatcher is the slice of the tool layer the HTTP binding needs.
type Dispatcher interface {
	Definitions() []entity.ToolDefinition
	Dispatch(ctx context.Context, name string, args map[string]any) entity.ToolResult
}

// Server exposes the tool set over HTTP. Dispatcher-level tool errors are
// reported with status 200 and an embedded error object; only malformed
// requests get 4xx and only unhandled faults get 5xx.
type Server struct {
	dispatcher Dispatcher
	logger     output.LoggerPort
	metrics    http.Handler
}

func NewServer(dispatcher Dispatcher, logger output.LoggerPort, metrics http.Handler) *Server {
	return &Server{dispatcher: dispatcher, logger: logger, metrics: metrics}
}

func (s *Server) Router() chi.Router {
	r := chi.NewRouter()

	requestLogger := httplog.NewLogger("wifi-agent", httplog.Options{
		JSON:    true,
		Concise: true,
	})
	r.Use(httplog.RequestLogger(requestLogger))
	r.Use(middleware.Recoverer)

	r.Post("/mcp", s.handleMCP)
	r.Post("/list_tools", s.handleListTools)
	r.Post("/call_tool", s.handleCallTool)
	r.Post("/execute", s.handleCallTool)

	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics)
	}

	return r
}

// callRequest accepts both argument spellings: the MCP-style
// {name, arguments} and the legacy agent-style {tool_name, tool_args}.
type callRequest struct {
	ToolName  string         `json:"tool_name"`
	Name      string         `json:"name"`
	ToolArgs  map[string]any `json:"tool_args"`
	Arguments map[string]any `json:"arguments"`
}

func (r *callRequest) toolName() string {
	if r.ToolName != "" {
		return r.ToolName
	}
	return r.Name
}

func (r *callRequest) args() map[string]any {
	if r.ToolArgs != nil {
		return r.ToolArgs
	}
	return r.Arguments
}

type mcpRequest struct {
	Method string          `json:"method"`
	Params json.RawMessage `json:"params"`
}

func (s *Server) handleMCP(w http.ResponseWriter, r *http.Request) {
	var req mcpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	switch req.Method {
	case "list_tools":
		s.writeToolList(w)
	case "call_tool":
		var call callRequest
		if len(req.Params) > 0 {
			if err := json.Unmarshal(req.Params, &call); err != nil {
				writeError(w, http.StatusBadRequest, "invalid params: "+err.Error())
				return
			}
		}
		s.dispatch(w, r, &call)
	default:
		writeError(w, http.StatusBadRequest, "unknown method: "+req.Method)
	}
}

func (s *Server) handleListTools(w http.ResponseWriter, _ *http.Request) {
	s.writeToolList(w)
}

func (s *Server) handleCallTool(w http.ResponseWriter, r *http.Request) {
	var call callRequest
	if err := json.NewDecoder(r.Body).Decode(&call); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	s.dispatch(w, r, &call)
}

func (s *Server) dispatch(w http.ResponseWriter, r *http.Request, call *callRequest) {
	name := call.toolName()
	if name == "" {
		writeError(w, http.StatusBadRequest, "missing tool name")
		return
	}

	result := s.dispatcher.Dispatch(r.Context(), name, call.args())
	if result.IsError() {
		writeJSON(w, http.StatusOK, map[string]any{"error": result.Err})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(result.Data)
}

func (s *Server) writeToolList(w http.ResponseWriter) {
	writeJSON(w, http.StatusOK, map[string]any{"tools": s.dispatcher.Definitions()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"error": message})
}
