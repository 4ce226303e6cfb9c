package lsp

import (
	"encoding/json"
	"path/filepath"

	"github.com/grindlemire/iconforge/internal/config"
	"github.com/grindlemire/iconforge/internal/extension"
	"github.com/grindlemire/iconforge/internal/log"
)

// InitializeParams represents the parameters for the initialize request.
type InitializeParams struct {
	ProcessID             *int               `json:"processId"`
	RootURI               string             `json:"rootUri"`
	RootPath              string             `json:"rootPath"`
	Capabilities          ClientCapabilities `json:"capabilities"`
	InitializationOptions json.RawMessage    `json:"initializationOptions,omitempty"`
}

// ClientCapabilities represents client capabilities.
type ClientCapabilities struct {
	TextDocument TextDocumentClientCapabilities `json:"textDocument,omitempty"`
}

// TextDocumentClientCapabilities represents text document capabilities.
type TextDocumentClientCapabilities struct {
	Synchronization    *SynchronizationCapabilities `json:"synchronization,omitempty"`
	Completion         *CompletionCapabilities      `json:"completion,omitempty"`
	Hover              *HoverCapabilities           `json:"hover,omitempty"`
	PublishDiagnostics *PublishDiagnostics          `json:"publishDiagnostics,omitempty"`
}

// SynchronizationCapabilities represents synchronization capabilities.
type SynchronizationCapabilities struct {
	DynamicRegistration bool `json:"dynamicRegistration,omitempty"`
	WillSave            bool `json:"willSave,omitempty"`
	WillSaveWaitUntil   bool `json:"willSaveWaitUntil,omitempty"`
	DidSave             bool `json:"didSave,omitempty"`
}

// CompletionCapabilities represents completion capabilities.
type CompletionCapabilities struct {
	DynamicRegistration bool `json:"dynamicRegistration,omitempty"`
}

// HoverCapabilities represents hover capabilities.
type HoverCapabilities struct {
	DynamicRegistration bool     `json:"dynamicRegistration,omitempty"`
	ContentFormat       []string `json:"contentFormat,omitempty"`
}

// PublishDiagnostics represents publish diagnostics capabilities.
type PublishDiagnostics struct {
	RelatedInformation bool `json:"relatedInformation,omitempty"`
}

// InitializeResult represents the result of the initialize request.
type InitializeResult struct {
	Capabilities ServerCapabilities `json:"capabilities"`
	ServerInfo   *ServerInfo        `json:"serverInfo,omitempty"`
}

// ServerInfo names the server.
type ServerInfo struct {
	Name    string `json:"name"`
	Version string `json:"version,omitempty"`
}

// ServerCapabilities represents server capabilities.
type ServerCapabilities struct {
	TextDocumentSync   *TextDocumentSyncOptions `json:"textDocumentSync,omitempty"`
	CompletionProvider *CompletionOptions       `json:"completionProvider,omitempty"`
	HoverProvider      bool                     `json:"hoverProvider,omitempty"`
	ColorProvider      bool                     `json:"colorProvider,omitempty"`
}

// TextDocumentSyncOptions represents text document sync options.
type TextDocumentSyncOptions struct {
	OpenClose bool                 `json:"openClose"`
	Change    TextDocumentSyncKind `json:"change"`
	Save      *SaveOptions         `json:"save,omitempty"`
}

// TextDocumentSyncKind represents how documents are synced.
type TextDocumentSyncKind int

const (
	// TextDocumentSyncKindNone means documents should not be synced.
	TextDocumentSyncKindNone TextDocumentSyncKind = 0
	// TextDocumentSyncKindFull means full documents are synced.
	TextDocumentSyncKindFull TextDocumentSyncKind = 1
	// TextDocumentSyncKindIncremental means incremental updates are sent.
	TextDocumentSyncKindIncremental TextDocumentSyncKind = 2
)

// SaveOptions represents save options.
type SaveOptions struct {
	IncludeText bool `json:"includeText,omitempty"`
}

// CompletionOptions represents completion options.
type CompletionOptions struct {
	TriggerCharacters []string `json:"triggerCharacters,omitempty"`
	ResolveProvider   bool     `json:"resolveProvider,omitempty"`
}

// TriggerCharacters open or refine completion inside a class attribute.
var TriggerCharacters = []string{`"`, `'`, "`", " ", "-"}

// Version is reported in serverInfo. The CLI sets it at startup.
var Version = "dev"

// handleInitialize handles the initialize request.
func (s *Server) handleInitialize(params json.RawMessage) (any, *Error) {
	var p InitializeParams
	if err := json.Unmarshal(params, &p); err != nil {
		return nil, &Error{Code: CodeInvalidParams, Message: err.Error()}
	}

	s.rootURI = p.RootURI
	root := uriToPath(p.RootURI)
	if root == "" {
		root = p.RootPath
	}
	log.Server("initialize", "root", root)

	s.cfg = s.loadConfig(root, p.InitializationOptions)

	result := InitializeResult{
		Capabilities: ServerCapabilities{
			TextDocumentSync: &TextDocumentSyncOptions{
				OpenClose: true,
				Change:    TextDocumentSyncKindFull,
				Save: &SaveOptions{
					IncludeText: true,
				},
			},
			CompletionProvider: &CompletionOptions{
				TriggerCharacters: TriggerCharacters,
			},
			HoverProvider: true,
			ColorProvider: true,
		},
		ServerInfo: &ServerInfo{Name: "iconforge", Version: Version},
	}
	return result, nil
}

// loadConfig overlays env, the workspace file, initialization options and
// the CLI overrides. Invalid sources are reported and skipped.
func (s *Server) loadConfig(root string, initOptions json.RawMessage) config.Config {
	cfg, err := config.FromEnv()
	if err != nil {
		s.reportConfigError(err)
	}
	if root != "" {
		if err := cfg.MergeFile(filepath.Join(root, config.FileName)); err != nil {
			s.reportConfigError(err)
		}
	}
	if err := cfg.MergeJSON(initOptions); err != nil {
		s.reportConfigError(err)
	}
	if s.overrides != nil {
		s.overrides(&cfg)
	}
	cfg.ResolveDataPath(root)
	return cfg
}

func (s *Server) reportConfigError(err error) {
	log.Warn("server", "configuration", "error", err)
	s.showMessage(MessageTypeWarning, "IconForge configuration: "+err.Error())
}

// handleInitialized activates the extension. A catalog that fails to load
// leaves the server running with no providers.
func (s *Server) handleInitialized() (any, *Error) {
	s.initialized = true
	log.Server("initialized")

	ext, err := extension.Activate(s, s.cfg)
	if err != nil {
		log.Error("server", "activation failed", "error", err)
		return nil, nil
	}
	s.ext = ext

	// Documents opened before activation get their first scan now.
	for _, doc := range s.docs.All() {
		s.events.fire(s.events.onActive, doc.URI)
	}
	return nil, nil
}

// handleShutdown handles the shutdown request.
func (s *Server) handleShutdown() (any, *Error) {
	log.Server("shutdown requested")
	s.shutdown = true
	s.teardown()
	return nil, nil
}

// handleExit handles the exit notification.
func (s *Server) handleExit() {
	log.Server("exit requested")
	s.shutdown = true
}

// DidOpenParams represents textDocument/didOpen parameters.
type DidOpenParams struct {
	TextDocument TextDocumentItem `json:"textDocument"`
}

// TextDocumentItem represents an item passed in didOpen.
type TextDocumentItem struct {
	URI        string `json:"uri"`
	LanguageID string `json:"languageId"`
	Version    int    `json:"version"`
	Text       string `json:"text"`
}

// handleDidOpen records the document and treats it as focused.
func (s *Server) handleDidOpen(params json.RawMessage) (any, *Error) {
	var p DidOpenParams
	if err := json.Unmarshal(params, &p); err != nil {
		return nil, &Error{Code: CodeInvalidParams, Message: err.Error()}
	}

	log.Server("document opened", "uri", p.TextDocument.URI, "language", p.TextDocument.LanguageID)
	s.docs.Open(p.TextDocument.URI, p.TextDocument.LanguageID, p.TextDocument.Text, p.TextDocument.Version)
	s.events.fire(s.events.onActive, p.TextDocument.URI)
	return nil, nil
}

// DidChangeParams represents textDocument/didChange parameters.
type DidChangeParams struct {
	TextDocument   VersionedTextDocumentIdentifier  `json:"textDocument"`
	ContentChanges []TextDocumentContentChangeEvent `json:"contentChanges"`
}

// VersionedTextDocumentIdentifier represents a versioned document ID.
type VersionedTextDocumentIdentifier struct {
	URI     string `json:"uri"`
	Version int    `json:"version"`
}

// TextDocumentContentChangeEvent represents a content change.
type TextDocumentContentChangeEvent struct {
	// Full text sync: Text contains the whole document
	Text string `json:"text"`
}

// handleDidChange handles textDocument/didChange.
func (s *Server) handleDidChange(params json.RawMessage) (any, *Error) {
	var p DidChangeParams
	if err := json.Unmarshal(params, &p); err != nil {
		return nil, &Error{Code: CodeInvalidParams, Message: err.Error()}
	}

	log.Server("document changed", "uri", p.TextDocument.URI, "version", p.TextDocument.Version)

	if len(p.ContentChanges) == 0 {
		return nil, nil
	}

	// We use full document sync, so take the last change
	newContent := p.ContentChanges[len(p.ContentChanges)-1].Text
	s.docs.Update(p.TextDocument.URI, newContent, p.TextDocument.Version)
	s.events.fire(s.events.onChange, p.TextDocument.URI)
	return nil, nil
}

// DidCloseParams represents textDocument/didClose parameters.
type DidCloseParams struct {
	TextDocument TextDocumentIdentifier `json:"textDocument"`
}

// TextDocumentIdentifier represents a document identifier.
type TextDocumentIdentifier struct {
	URI string `json:"uri"`
}

// handleDidClose forgets the document and clears what was drawn for it.
func (s *Server) handleDidClose(params json.RawMessage) (any, *Error) {
	var p DidCloseParams
	if err := json.Unmarshal(params, &p); err != nil {
		return nil, &Error{Code: CodeInvalidParams, Message: err.Error()}
	}

	log.Server("document closed", "uri", p.TextDocument.URI)
	s.docs.Close(p.TextDocument.URI)

	s.sendDecorations(p.TextDocument.URI, []Decoration{})
	if err := s.sendNotification("textDocument/publishDiagnostics", PublishDiagnosticsParams{
		URI:         p.TextDocument.URI,
		Diagnostics: []Diagnostic{},
	}); err != nil {
		log.Error("server", "clear diagnostics", "error", err)
	}
	return nil, nil
}

// DidSaveParams represents textDocument/didSave parameters.
type DidSaveParams struct {
	TextDocument TextDocumentIdentifier `json:"textDocument"`
	Text         *string                `json:"text,omitempty"`
}

// handleDidSave handles textDocument/didSave.
func (s *Server) handleDidSave(params json.RawMessage) (any, *Error) {
	var p DidSaveParams
	if err := json.Unmarshal(params, &p); err != nil {
		return nil, &Error{Code: CodeInvalidParams, Message: err.Error()}
	}

	log.Server("document saved", "uri", p.TextDocument.URI)

	if p.Text != nil {
		doc := s.docs.Get(p.TextDocument.URI)
		if doc != nil && doc.Text != *p.Text {
			s.docs.Update(p.TextDocument.URI, *p.Text, doc.Version+1)
			s.events.fire(s.events.onChange, p.TextDocument.URI)
		}
	}
	return nil, nil
}

// ActiveEditorParams is the payload of iconforge/didChangeActiveEditor.
type ActiveEditorParams struct {
	URI string `json:"uri"`
}

// handleDidChangeActiveEditor rescans the newly focused document.
func (s *Server) handleDidChangeActiveEditor(params json.RawMessage) (any, *Error) {
	var p ActiveEditorParams
	if err := json.Unmarshal(params, &p); err != nil {
		return nil, &Error{Code: CodeInvalidParams, Message: err.Error()}
	}
	log.Server("active editor changed", "uri", p.URI)
	if s.docs.Get(p.URI) != nil {
		s.events.fire(s.events.onActive, p.URI)
	}
	return nil, nil
}
