package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/enigma"
	"github.com/aretw0/enigma/internal/presentation/graph"
	"github.com/aretw0/enigma/pkg/config"
	"github.com/aretw0/enigma/pkg/domain"
	"github.com/aretw0/enigma/pkg/observability"
	"github.com/aretw0/enigma/pkg/runner"
	"github.com/aretw0/enigma/pkg/session"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// EncodeResponse provides a unified structure across adapters.
type EncodeResponse struct {
	SessionID string `json:"session_id,omitempty" jsonschema_description:"Session the text was encoded in, if any"`
	Output    string `json:"output" jsonschema_description:"Encoded text"`
	Positions []int  `json:"positions" jsonschema_description:"Rotor positions after encoding, rotor 0 first"`
	Window    string `json:"window" jsonschema_description:"Letters visible in the rotor window, leftmost rotor first"`
}

// TraceResponse is the signal path of one letter.
type TraceResponse struct {
	Trace   enigma.Trace `json:"trace" jsonschema_description:"Every stage the letter went through"`
	Path    string       `json:"path" jsonschema_description:"The letters of the path joined by >"`
	Mermaid string       `json:"mermaid" jsonschema_description:"Mermaid flowchart of the signal path"`
}

// Server exposes the machine as an MCP Server.
type Server struct {
	sessions  *session.Manager
	metrics   *observability.Metrics
	mcpServer *server.MCPServer
}

// Option configures the Server.
type Option func(*Server)

// WithMetrics feeds machine counters and counts messages under the "mcp" adapter.
func WithMetrics(m *observability.Metrics) Option {
	return func(s *Server) {
		s.metrics = m
	}
}

// NewServer creates a new MCP Server instance.
func NewServer(sessions *session.Manager, opts ...Option) *Server {
	s := &Server{
		sessions:  sessions,
		mcpServer: server.NewMCPServer("enigma-mcp", strings.TrimSpace(enigma.Version)),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer returns the underlying server, e.g. for in-process clients.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)
	go func() {
		slog.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	// TOOL: encode
	encodeTool := mcp.NewTool("encode",
		mcp.WithDescription("Encode or decode text with a fresh machine. The machine is reciprocal: encoding the ciphertext from the same positions gives back the plaintext."),
		mcp.WithString("text", mcp.Required(), mcp.Description("Text to encode. Letters are uppercased; other characters pass through.")),
		mcp.WithString("positions", mcp.Description("Start positions, rotor 0 first, as numbers or letters (e.g. \"24,3,21\"). Defaults to the configured ones.")),
		mcp.WithOutputSchema[EncodeResponse](),
	)
	s.mcpServer.AddTool(encodeTool, mcp.NewStructuredToolHandler(s.handleEncode))

	// TOOL: session_encode
	sessionTool := mcp.NewTool("session_encode",
		mcp.WithDescription("Encode text in a named session. Rotor positions persist between calls."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session ID")),
		mcp.WithString("text", mcp.Required(), mcp.Description("Text to encode")),
		mcp.WithOutputSchema[EncodeResponse](),
	)
	s.mcpServer.AddTool(sessionTool, mcp.NewStructuredToolHandler(s.handleSessionEncode))

	// TOOL: session_reset
	s.mcpServer.AddTool(mcp.NewTool("session_reset",
		mcp.WithDescription("Put a session back at the configured start positions."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session ID")),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("session_id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		snap, err := s.sessions.Reset(ctx, id)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("reset failed: %v", err)), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("session %s reset to %s", id, domain.Window(snap.Positions))), nil
	})

	// TOOL: trace_letter
	traceTool := mcp.NewTool("trace_letter",
		mcp.WithDescription("Show the signal path of one letter through plugboard, rotors and reflector."),
		mcp.WithString("letter", mcp.Required(), mcp.Description("A single letter A-Z")),
		mcp.WithString("positions", mcp.Description("Positions before stepping, rotor 0 first")),
		mcp.WithOutputSchema[TraceResponse](),
	)
	s.mcpServer.AddTool(traceTool, mcp.NewStructuredToolHandler(s.handleTrace))
}

// Handler methods for structured tools

func (s *Server) handleEncode(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (EncodeResponse, error) {
	text, _ := args["text"].(string)
	clean, err := runner.SanitizeInput(text)
	if err != nil {
		slog.Warn("MCP Encode: Input rejected", "error", err, "size", len(text))
		return EncodeResponse{}, fmt.Errorf("input rejected: %w", err)
	}

	m, err := s.machine(args)
	if err != nil {
		return EncodeResponse{}, err
	}

	out := m.EncodeMessageContext(ctx, clean)
	s.recordMessage()
	return EncodeResponse{
		Output:    out,
		Positions: m.Positions(),
		Window:    m.Window(),
	}, nil
}

func (s *Server) handleSessionEncode(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (EncodeResponse, error) {
	id, _ := args["session_id"].(string)
	text, _ := args["text"].(string)
	if id == "" {
		return EncodeResponse{}, fmt.Errorf("session_id is required")
	}

	clean, err := runner.SanitizeInput(text)
	if err != nil {
		slog.Warn("MCP SessionEncode: Input rejected", "error", err, "size", len(text))
		return EncodeResponse{}, fmt.Errorf("input rejected: %w", err)
	}

	out, snap, err := s.sessions.Encode(ctx, id, clean)
	if err != nil {
		return EncodeResponse{}, fmt.Errorf("session encode failed: %w", err)
	}
	s.recordMessage()
	return EncodeResponse{
		SessionID: id,
		Output:    out,
		Positions: snap.Positions,
		Window:    domain.Window(snap.Positions),
	}, nil
}

func (s *Server) handleTrace(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (TraceResponse, error) {
	letter, _ := args["letter"].(string)
	r := []rune(strings.ToUpper(strings.TrimSpace(letter)))
	if len(r) != 1 || !domain.IsLetter(r[0]) {
		return TraceResponse{}, fmt.Errorf("letter must be a single letter A-Z, got %q", letter)
	}

	m, err := s.machine(args)
	if err != nil {
		return TraceResponse{}, err
	}

	tr, _ := m.Trace(r[0])
	return TraceResponse{
		Trace:   tr,
		Path:    tr.Path(),
		Mermaid: graph.GenerateMermaid(tr),
	}, nil
}

// machine builds a stateless machine, optionally at the positions given in args.
func (s *Server) machine(args map[string]interface{}) (*enigma.Machine, error) {
	raw, _ := args["positions"].(string)
	positions, err := config.ParsePositions(raw)
	if err != nil {
		return nil, err
	}

	var opts []enigma.Option
	if positions != nil {
		opts = append(opts, enigma.WithPositions(positions))
	}
	if s.metrics != nil {
		opts = append(opts, enigma.WithLifecycleHooks(s.metrics.Hooks()))
	}
	return enigma.New(s.sessions.Config(), opts...)
}

func (s *Server) recordMessage() {
	if s.metrics != nil {
		s.metrics.RecordMessage("mcp")
	}
}

func (s *Server) registerResources() {
	// EXPOSE: enigma://config
	s.mcpServer.AddResource(mcp.NewResource("enigma://config", "Machine Configuration",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		jsonBytes, err := json.Marshal(s.sessions.Config())
		if err != nil {
			return nil, fmt.Errorf("failed to marshal config: %w", err)
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "enigma://config",
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})

	// EXPOSE: enigma://describe
	s.mcpServer.AddResource(mcp.NewResource("enigma://describe", "Machine Description",
		mcp.WithMIMEType("text/markdown"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		m, err := enigma.New(s.sessions.Config())
		if err != nil {
			return nil, err
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "enigma://describe",
				MIMEType: "text/markdown",
				Text:     m.Describe(),
			},
		}, nil
	})
}
