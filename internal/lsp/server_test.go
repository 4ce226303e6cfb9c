package lsp

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/grindlemire/iconforge/internal/decorate"
	"github.com/grindlemire/iconforge/internal/lint"
	"github.com/grindlemire/iconforge/internal/textdoc"
)

// mockReadWriter provides a mock for testing LSP communication.
type mockReadWriter struct {
	input  *bytes.Buffer
	output *bytes.Buffer
}

func newMockReadWriter() *mockReadWriter {
	return &mockReadWriter{
		input:  new(bytes.Buffer),
		output: new(bytes.Buffer),
	}
}

// writeRequest writes a JSON-RPC request to the mock input.
func (m *mockReadWriter) writeRequest(id any, method string, params any) error {
	req := map[string]any{
		"jsonrpc": "2.0",
		"method":  method,
	}
	if id != nil {
		req["id"] = id
	}
	if params != nil {
		req["params"] = params
	}

	content, err := json.Marshal(req)
	if err != nil {
		return err
	}

	header := fmt.Sprintf("Content-Length: %d\r\n\r\n", len(content))
	m.input.WriteString(header)
	m.input.Write(content)
	return nil
}

// message is any JSON-RPC message the server wrote.
type message struct {
	ID     any             `json:"id"`
	Method string          `json:"method"`
	Params json.RawMessage `json:"params"`
	Result json.RawMessage `json:"result"`
	Error  *Error          `json:"error"`
}

// readMessages reads every message the server wrote, in order.
func (m *mockReadWriter) readMessages(t *testing.T) []message {
	t.Helper()
	var msgs []message
	for {
		var contentLength int
		for {
			line, err := m.output.ReadString('\n')
			if err == io.EOF {
				return msgs
			}
			if err != nil {
				t.Fatalf("read header: %v", err)
			}
			line = strings.TrimSpace(line)
			if line == "" {
				break
			}
			if strings.HasPrefix(line, "Content-Length:") {
				lenStr := strings.TrimSpace(strings.TrimPrefix(line, "Content-Length:"))
				if _, err := fmt.Sscanf(lenStr, "%d", &contentLength); err != nil {
					t.Fatalf("bad header %q: %v", line, err)
				}
			}
		}

		content := make([]byte, contentLength)
		if _, err := io.ReadFull(m.output, content); err != nil {
			t.Fatalf("read content: %v", err)
		}
		var msg message
		if err := json.Unmarshal(content, &msg); err != nil {
			t.Fatalf("decode %s: %v", content, err)
		}
		msgs = append(msgs, msg)
	}
}

func response(t *testing.T, msgs []message, id float64) message {
	t.Helper()
	for _, m := range msgs {
		if m.Method == "" && m.ID == id {
			return m
		}
	}
	t.Fatalf("no response with id %v", id)
	return message{}
}

func notifications(msgs []message, method string) []message {
	var out []message
	for _, m := range msgs {
		if m.Method == method {
			out = append(out, m)
		}
	}
	return out
}

const testData = `{"classes": [
  {"name": "if-home", "paths": ["M0 0h10v10H0z"], "viewBox": 1024},
  {"name": "is-red", "color": "#ff0000"},
  {"name": "is-bg-dark", "color": "#111111"},
  {"name": "is-bg-light", "color": "#eeeeee"},
  {"name": "is-size-2", "snippet": ".is-size-2 { font-size: 2em; }"}
]}`

// session runs a full initialize .. exit exchange around the given requests.
func session(t *testing.T, data string, requests func(m *mockReadWriter)) []message {
	t.Helper()
	root := t.TempDir()
	dataPath := filepath.Join(root, "iconforge.data.json")
	if data != "" {
		if err := os.WriteFile(dataPath, []byte(data), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	m := newMockReadWriter()
	must := func(err error) {
		if err != nil {
			t.Fatalf("writeRequest: %v", err)
		}
	}
	must(m.writeRequest(1, "initialize", map[string]any{
		"rootUri": "file://" + root,
		"initializationOptions": map[string]any{
			"dataPath": "iconforge.data.json",
			"debounce": "10ms",
		},
	}))
	must(m.writeRequest(nil, "initialized", map[string]any{}))
	requests(m)
	must(m.writeRequest(99, "shutdown", nil))
	must(m.writeRequest(nil, "exit", nil))

	server := NewServer(m.input, m.output)
	if err := server.Run(t.Context()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	return m.readMessages(t)
}

func openDoc(m *mockReadWriter, uri, lang, text string) {
	_ = m.writeRequest(nil, "textDocument/didOpen", map[string]any{
		"textDocument": map[string]any{
			"uri":        uri,
			"languageId": lang,
			"version":    1,
			"text":       text,
		},
	})
}

func position(uri string, line, char int) map[string]any {
	return map[string]any{
		"textDocument": map[string]any{"uri": uri},
		"position":     map[string]any{"line": line, "character": char},
	}
}

func TestServerInitialize(t *testing.T) {
	msgs := session(t, testData, func(*mockReadWriter) {})

	resp := response(t, msgs, 1)
	if resp.Error != nil {
		t.Fatalf("unexpected error: %v", resp.Error)
	}
	var result InitializeResult
	if err := json.Unmarshal(resp.Result, &result); err != nil {
		t.Fatal(err)
	}
	caps := result.Capabilities
	if caps.TextDocumentSync == nil || caps.TextDocumentSync.Change != TextDocumentSyncKindFull {
		t.Error("expected full text document sync")
	}
	if caps.CompletionProvider == nil || len(caps.CompletionProvider.TriggerCharacters) != len(TriggerCharacters) {
		t.Error("missing completion trigger characters")
	}
	if !caps.HoverProvider || !caps.ColorProvider {
		t.Error("expected hover and color providers")
	}
	if n := len(notifications(msgs, "window/showMessage")); n != 0 {
		t.Errorf("got %d messages on a clean activation", n)
	}
}

func TestCompletionRequest(t *testing.T) {
	uri := "file:///page.html"
	line := `<div class="is-bg-`
	msgs := session(t, testData, func(m *mockReadWriter) {
		openDoc(m, uri, "html", line)
		_ = m.writeRequest(2, "textDocument/completion", position(uri, 0, len(line)))
		_ = m.writeRequest(3, "textDocument/completion", position(uri, 0, 4))
	})

	var list CompletionList
	if err := json.Unmarshal(response(t, msgs, 2).Result, &list); err != nil {
		t.Fatal(err)
	}
	if len(list.Items) != 2 {
		t.Fatalf("got %d items, want the 2 background classes", len(list.Items))
	}
	for _, item := range list.Items {
		if !strings.HasPrefix(item.Label, "is-bg-") {
			t.Errorf("unexpected item %q", item.Label)
		}
		if item.Kind != CompletionItemKindColor {
			t.Errorf("%s kind = %d, want Color", item.Label, item.Kind)
		}
		if item.TextEdit == nil || item.TextEdit.Range.Start.Character != len(`<div class="`) {
			t.Errorf("%s edit = %+v", item.Label, item.TextEdit)
		}
	}

	if got := string(response(t, msgs, 3).Result); got != "null" {
		t.Errorf("completion outside a class attribute = %s, want null", got)
	}
}

func TestHoverRequest(t *testing.T) {
	uri := "file:///page.html"
	msgs := session(t, testData, func(m *mockReadWriter) {
		openDoc(m, uri, "html", `<i class="if-home is-red"></i>`)
		_ = m.writeRequest(2, "textDocument/hover", position(uri, 0, 12))
		_ = m.writeRequest(3, "textDocument/hover", position(uri, 0, 1))
	})

	var hover Hover
	if err := json.Unmarshal(response(t, msgs, 2).Result, &hover); err != nil {
		t.Fatal(err)
	}
	if hover.Contents.Kind != MarkupKindMarkdown {
		t.Errorf("kind = %q", hover.Contents.Kind)
	}
	if !strings.HasPrefix(hover.Contents.Value, "![if-home](data:image/svg+xml;base64,") {
		t.Errorf("hover = %q", hover.Contents.Value)
	}
	if hover.Range == nil || hover.Range.Start.Character != 10 || hover.Range.End.Character != 17 {
		t.Errorf("range = %+v", hover.Range)
	}

	if got := string(response(t, msgs, 3).Result); got != "null" {
		t.Errorf("hover off a class = %s, want null", got)
	}
}

func TestDecorationsAndColors(t *testing.T) {
	uri := "file:///page.html"
	msgs := session(t, testData, func(m *mockReadWriter) {
		openDoc(m, uri, "html", "<i class=\"is-red\"></i>\n<b class=\"is-red is-nope\"></b>")
		_ = m.writeRequest(2, "textDocument/documentColor", map[string]any{
			"textDocument": map[string]any{"uri": uri},
		})
		_ = m.writeRequest(3, "textDocument/colorPresentation", map[string]any{
			"textDocument": map[string]any{"uri": uri},
			"color":        map[string]any{"red": 1, "green": 0, "blue": 0, "alpha": 1},
			"range":        map[string]any{},
		})
	})

	decos := notifications(msgs, "iconforge/decorations")
	if len(decos) == 0 {
		t.Fatal("no decorations sent on open")
	}
	var first DecorationsParams
	if err := json.Unmarshal(decos[0].Params, &first); err != nil {
		t.Fatal(err)
	}
	if len(first.Decorations) != 1 || first.Decorations[0].Color != "#ff0000" || len(first.Decorations[0].Ranges) != 2 {
		t.Errorf("decorations = %+v", first.Decorations)
	}
	if r := first.Decorations[0].Ranges[1]; r.Start.Line != 1 || r.Start.Character != 10 {
		t.Errorf("second range = %+v", r)
	}

	// Shutdown clears the markers it drew.
	var last DecorationsParams
	if err := json.Unmarshal(decos[len(decos)-1].Params, &last); err != nil {
		t.Fatal(err)
	}
	if len(last.Decorations) != 0 {
		t.Errorf("markers not cleared at shutdown: %+v", last.Decorations)
	}

	diags := notifications(msgs, "textDocument/publishDiagnostics")
	if len(diags) != 1 {
		t.Fatalf("got %d diagnostics notifications, want 1", len(diags))
	}
	var pd PublishDiagnosticsParams
	if err := json.Unmarshal(diags[0].Params, &pd); err != nil {
		t.Fatal(err)
	}
	if len(pd.Diagnostics) != 1 || pd.Diagnostics[0].Code != "unknown-class" {
		t.Errorf("diagnostics = %+v", pd.Diagnostics)
	}

	var colors []ColorInformation
	if err := json.Unmarshal(response(t, msgs, 2).Result, &colors); err != nil {
		t.Fatal(err)
	}
	if len(colors) != 2 || colors[0].Color.Red != 1 || colors[0].Color.Green != 0 {
		t.Errorf("colors = %+v", colors)
	}

	var pres []ColorPresentation
	if err := json.Unmarshal(response(t, msgs, 3).Result, &pres); err != nil {
		t.Fatal(err)
	}
	if len(pres) == 0 || pres[0].Label != "#ff0000" {
		t.Errorf("presentations = %+v", pres)
	}
}

func TestMarkersUseScannedSnapshot(t *testing.T) {
	m := newMockReadWriter()
	s := NewServer(m.input, m.output)
	uri := "file:///page.html"

	s.docs.Open(uri, "html", `<i class="is-red"></i>`, 1)
	scanned := s.docs.Get(uri)
	span := textdoc.Span{Start: 10, End: 16}

	// An edit lands between the scan and the notifications carrying its result.
	s.docs.Update(uri, "\n\n<b class=\"x\"></b><i class=\"is-red\"></i>", 2)

	s.SetMarkers(uri, scanned, decorate.Result{{Color: "#ff0000", Spans: []textdoc.Span{span}}})
	s.PublishDiagnostics(scanned, []lint.Finding{{
		Span:     span,
		Severity: lint.SeverityWarning,
		Code:     lint.CodeUnknownClass,
		Message:  "unknown class",
	}})

	msgs := m.readMessages(t)
	want := Range{Start: Position{Line: 0, Character: 10}, End: Position{Line: 0, Character: 16}}

	decos := notifications(msgs, "iconforge/decorations")
	if len(decos) != 1 {
		t.Fatalf("got %d decorations notifications, want 1", len(decos))
	}
	var dp DecorationsParams
	if err := json.Unmarshal(decos[0].Params, &dp); err != nil {
		t.Fatal(err)
	}
	if len(dp.Decorations) != 1 || len(dp.Decorations[0].Ranges) != 1 || dp.Decorations[0].Ranges[0] != want {
		t.Errorf("decorations = %+v, want one range %+v", dp.Decorations, want)
	}

	diags := notifications(msgs, "textDocument/publishDiagnostics")
	if len(diags) != 1 {
		t.Fatalf("got %d diagnostics notifications, want 1", len(diags))
	}
	var pd PublishDiagnosticsParams
	if err := json.Unmarshal(diags[0].Params, &pd); err != nil {
		t.Fatal(err)
	}
	if pd.Version == nil || *pd.Version != 1 {
		t.Errorf("diagnostics version = %v, want 1", pd.Version)
	}
	if len(pd.Diagnostics) != 1 || pd.Diagnostics[0].Range != want {
		t.Errorf("diagnostics = %+v, want range %+v", pd.Diagnostics, want)
	}
}

func TestLanguageOutsideSelector(t *testing.T) {
	uri := "file:///main.go"
	msgs := session(t, testData, func(m *mockReadWriter) {
		openDoc(m, uri, "go", `s := "<i class=\"if-home\">"`)
		_ = m.writeRequest(2, "textDocument/hover", position(uri, 0, 20))
	})
	if got := string(response(t, msgs, 2).Result); got != "null" {
		t.Errorf("hover in an unsupported language = %s, want null", got)
	}
}

func TestMissingDataFile(t *testing.T) {
	uri := "file:///page.html"
	line := `<i class="if-home is-`
	msgs := session(t, "", func(m *mockReadWriter) {
		openDoc(m, uri, "html", line)
		_ = m.writeRequest(2, "textDocument/completion", position(uri, 0, len(line)))
		_ = m.writeRequest(3, "textDocument/hover", position(uri, 0, 12))
	})

	shown := notifications(msgs, "window/showMessage")
	if len(shown) != 1 {
		t.Fatalf("got %d messages, want exactly 1", len(shown))
	}
	var p ShowMessageParams
	if err := json.Unmarshal(shown[0].Params, &p); err != nil {
		t.Fatal(err)
	}
	if p.Type != MessageTypeError || !strings.Contains(p.Message, "not found") {
		t.Errorf("message = %+v", p)
	}

	for _, id := range []float64{2, 3} {
		resp := response(t, msgs, id)
		if resp.Error != nil || string(resp.Result) != "null" {
			t.Errorf("request %v = %s (err %v), want null", id, resp.Result, resp.Error)
		}
	}
	if n := len(notifications(msgs, "iconforge/decorations")); n != 0 {
		t.Errorf("got %d decoration notifications without a catalog", n)
	}
}

func TestMethodNotFound(t *testing.T) {
	msgs := session(t, testData, func(m *mockReadWriter) {
		_ = m.writeRequest(2, "textDocument/definition", position("file:///x.html", 0, 0))
	})
	resp := response(t, msgs, 2)
	if resp.Error == nil || resp.Error.Code != CodeMethodNotFound {
		t.Errorf("error = %+v, want method not found", resp.Error)
	}
}

func TestParseErrorResponse(t *testing.T) {
	m := newMockReadWriter()
	body := "{not json"
	fmt.Fprintf(m.input, "Content-Length: %d\r\n\r\n%s", len(body), body)

	if err := NewServer(m.input, m.output).Run(t.Context()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	msgs := m.readMessages(t)
	if len(msgs) != 1 || msgs[0].Error == nil || msgs[0].Error.Code != CodeParseError {
		t.Errorf("messages = %+v", msgs)
	}
}
