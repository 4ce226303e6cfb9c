package lsp

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/grindlemire/iconforge/internal/config"
	"github.com/grindlemire/iconforge/internal/extension"
	"github.com/grindlemire/iconforge/internal/log"
)

// Server is the IconForge language server.
type Server struct {
	// Input/output for JSON-RPC communication
	reader *bufio.Reader
	writer io.Writer
	mu     sync.Mutex // protects writer

	docs     *DocumentManager
	registry *Registry
	router   *Router
	events   *events

	// overrides is applied last when building the configuration, after
	// env, workspace file and initialization options.
	overrides func(*config.Config)
	cfg       config.Config
	ext       *extension.Extension

	// Server state
	initialized bool
	shutdown    bool
	rootURI     string
}

// NewServer creates a new LSP server that communicates over the given reader/writer.
func NewServer(reader io.Reader, writer io.Writer) *Server {
	s := &Server{
		reader:   bufio.NewReader(reader),
		writer:   writer,
		docs:     NewDocumentManager(),
		registry: NewRegistry(),
		events:   newEvents(),
	}
	s.router = NewRouter(s, s.registry)
	return s
}

// SetOverrides registers a function that adjusts the configuration after
// every other source was applied. The CLI uses it for flags.
func (s *Server) SetOverrides(fn func(*config.Config)) {
	s.overrides = fn
}

// Config returns the configuration resolved during initialize.
func (s *Server) Config() config.Config {
	return s.cfg
}

// Run starts the LSP server main loop.
func (s *Server) Run(ctx context.Context) error {
	log.Server("server starting")
	defer s.teardown()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		msg, err := s.readMessage()
		if err != nil {
			if errors.Is(err, io.EOF) {
				log.Server("connection closed")
				return nil
			}
			log.Error("server", "read message", "error", err)
			return fmt.Errorf("reading message: %w", err)
		}

		log.Server("received", "bytes", len(msg))

		response, err := s.handleMessage(msg)
		if err != nil {
			log.Error("server", "handle message", "error", err)
			continue
		}

		if response != nil {
			if err := s.writeMessage(response); err != nil {
				log.Error("server", "write response", "error", err)
				return fmt.Errorf("writing response: %w", err)
			}
		}

		if s.shutdown {
			log.Server("shutdown requested")
			return nil
		}
	}
}

// teardown stops pending scans and clears outstanding markers.
func (s *Server) teardown() {
	if s.ext != nil {
		s.ext.Deactivate()
		s.ext = nil
	}
}

// readMessage reads a JSON-RPC message from the input.
// Messages are formatted as HTTP-like headers followed by content:
// Content-Length: <length>\r\n
// \r\n
// <content>
func (s *Server) readMessage() ([]byte, error) {
	var contentLength int
	for {
		line, err := s.reader.ReadString('\n')
		if err != nil {
			return nil, err
		}
		line = strings.TrimSpace(line)
		if line == "" {
			break
		}
		if strings.HasPrefix(line, "Content-Length:") {
			lenStr := strings.TrimSpace(strings.TrimPrefix(line, "Content-Length:"))
			contentLength, err = strconv.Atoi(lenStr)
			if err != nil {
				return nil, fmt.Errorf("invalid Content-Length: %w", err)
			}
		}
	}

	if contentLength == 0 {
		return nil, fmt.Errorf("missing Content-Length header")
	}

	content := make([]byte, contentLength)
	if _, err := io.ReadFull(s.reader, content); err != nil {
		return nil, fmt.Errorf("reading content: %w", err)
	}
	return content, nil
}

// writeMessage writes a JSON-RPC message to the output.
func (s *Server) writeMessage(msg []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	header := fmt.Sprintf("Content-Length: %d\r\n\r\n", len(msg))
	if _, err := s.writer.Write([]byte(header)); err != nil {
		return err
	}
	if _, err := s.writer.Write(msg); err != nil {
		return err
	}
	return nil
}

// sendNotification sends a notification (no response expected).
func (s *Server) sendNotification(method string, params any) error {
	msg := map[string]any{
		"jsonrpc": "2.0",
		"method":  method,
		"params":  params,
	}
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return s.writeMessage(data)
}

// Request represents a JSON-RPC request.
type Request struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      any             `json:"id,omitempty"` // can be number or string
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// Response represents a JSON-RPC response.
type Response struct {
	JSONRPC string `json:"jsonrpc"`
	ID      any    `json:"id,omitempty"`
	Result  any    `json:"result"`
	Error   *Error `json:"error,omitempty"`
}

// Error represents a JSON-RPC error.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// JSON-RPC error codes
const (
	CodeParseError     = -32700
	CodeInvalidRequest = -32600
	CodeMethodNotFound = -32601
	CodeInvalidParams  = -32602
	CodeInternalError  = -32603

	// CodeServerNotInitialized is returned for requests sent before initialize.
	CodeServerNotInitialized = -32002
)

// handleMessage processes a single JSON-RPC message.
func (s *Server) handleMessage(msg []byte) ([]byte, error) {
	var req Request
	if err := json.Unmarshal(msg, &req); err != nil {
		return s.errorResponse(nil, CodeParseError, "Parse error")
	}

	log.Server("handling", "method", req.Method)

	result, rpcErr := s.router.Route(req)

	// Notifications don't get responses
	if req.ID == nil {
		return nil, nil
	}

	if rpcErr != nil {
		return s.errorResponse(req.ID, rpcErr.Code, rpcErr.Message)
	}

	resp := Response{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result:  result,
	}
	return json.Marshal(resp)
}

// errorResponse creates an error response.
func (s *Server) errorResponse(id any, code int, message string) ([]byte, error) {
	resp := Response{
		JSONRPC: "2.0",
		ID:      id,
		Error: &Error{
			Code:    code,
			Message: message,
		},
	}
	return json.Marshal(resp)
}
