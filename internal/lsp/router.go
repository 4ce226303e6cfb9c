package lsp

import (
	"encoding/json"

	"github.com/grindlemire/iconforge/internal/log"
)

// Router dispatches LSP method requests to the appropriate handler.
// Language features go to the providers the extension registered; lifecycle
// and document sync methods are handled directly by the Server.
type Router struct {
	server   *Server
	registry *Registry
}

// NewRouter creates a new Router with the given server and provider registry.
func NewRouter(server *Server, registry *Registry) *Router {
	return &Router{
		server:   server,
		registry: registry,
	}
}

// Route dispatches a request to the appropriate handler.
func (r *Router) Route(req Request) (any, *Error) {
	switch req.Method {
	// Lifecycle
	case "initialize":
		return r.server.handleInitialize(req.Params)
	case "initialized":
		return r.server.handleInitialized()
	case "shutdown":
		return r.server.handleShutdown()
	case "exit":
		r.server.handleExit()
		return nil, nil
	}

	switch req.Method {
	// Document synchronization
	case "textDocument/didOpen":
		return r.server.handleDidOpen(req.Params)
	case "textDocument/didChange":
		return r.server.handleDidChange(req.Params)
	case "textDocument/didClose":
		return r.server.handleDidClose(req.Params)
	case "textDocument/didSave":
		return r.server.handleDidSave(req.Params)
	case "iconforge/didChangeActiveEditor":
		return r.server.handleDidChangeActiveEditor(req.Params)

	// Language features
	case "textDocument/completion":
		return r.handleCompletion(req.Params)
	case "textDocument/hover":
		return r.handleHover(req.Params)
	case "textDocument/documentColor":
		return r.handleDocumentColor(req.Params)
	case "textDocument/colorPresentation":
		return r.handleColorPresentation(req.Params)

	case "$/cancelRequest", "$/setTrace", "workspace/didChangeConfiguration":
		return nil, nil

	default:
		log.Server("unknown method", "method", req.Method)
		if req.ID == nil {
			return nil, nil
		}
		return nil, &Error{Code: CodeMethodNotFound, Message: "Method not found: " + req.Method}
	}
}

func (r *Router) handleCompletion(params json.RawMessage) (any, *Error) {
	var p CompletionParams
	if err := json.Unmarshal(params, &p); err != nil {
		return nil, &Error{Code: CodeInvalidParams, Message: err.Error()}
	}
	doc := r.server.docs.Get(p.TextDocument.URI)
	if doc == nil {
		return nil, nil
	}
	provider, ok := r.registry.Completion(doc.LanguageID)
	if !ok {
		return nil, nil
	}
	c, ok := provider.Complete(doc, p.Position)
	if !ok {
		return nil, nil
	}
	log.Server("completion", "uri", doc.URI, "items", len(c.Items))
	return toCompletionList(c), nil
}

func (r *Router) handleHover(params json.RawMessage) (any, *Error) {
	var p HoverParams
	if err := json.Unmarshal(params, &p); err != nil {
		return nil, &Error{Code: CodeInvalidParams, Message: err.Error()}
	}
	doc := r.server.docs.Get(p.TextDocument.URI)
	if doc == nil {
		return nil, nil
	}
	provider, ok := r.registry.Hover(doc.LanguageID)
	if !ok {
		return nil, nil
	}
	h, ok := provider.Hover(doc, p.Position)
	if !ok {
		return nil, nil
	}
	return toHover(h), nil
}

func (r *Router) handleDocumentColor(params json.RawMessage) (any, *Error) {
	var p DocumentColorParams
	if err := json.Unmarshal(params, &p); err != nil {
		return nil, &Error{Code: CodeInvalidParams, Message: err.Error()}
	}
	doc := r.server.docs.Get(p.TextDocument.URI)
	if doc == nil {
		return []ColorInformation{}, nil
	}
	provider, ok := r.registry.Color(doc.LanguageID)
	if !ok {
		return []ColorInformation{}, nil
	}
	return toColorInformation(provider.Colors(doc)), nil
}

func (r *Router) handleColorPresentation(params json.RawMessage) (any, *Error) {
	var p ColorPresentationParams
	if err := json.Unmarshal(params, &p); err != nil {
		return nil, &Error{Code: CodeInvalidParams, Message: err.Error()}
	}
	doc := r.server.docs.Get(p.TextDocument.URI)
	if doc == nil {
		return []ColorPresentation{}, nil
	}
	provider, ok := r.registry.Color(doc.LanguageID)
	if !ok {
		return []ColorPresentation{}, nil
	}
	return toPresentations(provider.Presentations(fromColor(p.Color))), nil
}
