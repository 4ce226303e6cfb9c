package extension

import (
	"errors"
	"fmt"
	"sync"

	"github.com/grindlemire/iconforge/internal/catalog"
	"github.com/grindlemire/iconforge/internal/config"
	"github.com/grindlemire/iconforge/internal/decorate"
	"github.com/grindlemire/iconforge/internal/lint"
	"github.com/grindlemire/iconforge/internal/log"
	"github.com/grindlemire/iconforge/internal/preview"
)

// Extension is an activated session. It owns the registrations made on the
// host, the marker cache and the rescan scheduler.
type Extension struct {
	host     Host
	cat      *catalog.Catalog
	selector Selector
	lint     bool

	markers *decorate.Markers
	sched   *decorate.Scheduler

	mu     sync.Mutex
	active string
	subs   []Disposable
}

// Activate loads the catalog named by cfg and registers every feature with
// host. When the catalog cannot be loaded it shows exactly one error message,
// registers nothing and returns the load error.
func Activate(host Host, cfg config.Config) (*Extension, error) {
	cat, err := catalog.Load(cfg.DataPath)
	if err != nil {
		host.ShowErrorMessage(LoadMessage(err))
		return nil, err
	}
	return New(host, cat, cfg), nil
}

// LoadMessage is the user-facing text for a catalog load failure.
func LoadMessage(err error) string {
	if errors.Is(err, catalog.ErrNotFound) {
		return "IconForge data file not found. Please generate it with your tool."
	}
	return fmt.Sprintf("Error loading or parsing IconForge data file: %v", err)
}

// New registers the features for an already loaded catalog.
func New(host Host, cat *catalog.Catalog, cfg config.Config) *Extension {
	sel := Selector(cfg.Languages)
	if len(sel) == 0 {
		sel = Selector(config.DefaultLanguages)
	}
	x := &Extension{
		host:     host,
		cat:      cat,
		selector: sel,
		lint:     cfg.Diagnostics,
		markers:  decorate.NewMarkers(host),
	}
	x.sched = decorate.NewScheduler(cfg.Debounce, x.scan)

	opts := preview.Options{Size: cfg.PreviewSize, Padding: cfg.PreviewPadding}
	x.subs = append(x.subs,
		host.RegisterCompletionProvider(sel, completer{cat: cat}),
		host.RegisterHoverProvider(sel, hoverer{cat: cat, opts: opts}),
		host.RegisterColorProvider(sel, colorer{cat: cat}),
		host.OnDidChangeActiveEditor(x.focus),
		host.OnDidChangeTextDocument(x.changed),
	)
	log.Server("extension activated", "entries", cat.Len(), "languages", len(sel))
	return x
}

// Catalog returns the loaded catalog.
func (x *Extension) Catalog() *catalog.Catalog {
	return x.cat
}

// Active returns the URI of the focused document.
func (x *Extension) Active() string {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.active
}

// focus makes uri the active document and rescans it immediately.
func (x *Extension) focus(uri string) {
	x.mu.Lock()
	x.active = uri
	x.mu.Unlock()
	x.sched.Now()
}

// changed schedules a debounced rescan when the active document changed.
func (x *Extension) changed(uri string) {
	if uri != x.Active() {
		return
	}
	x.sched.Debounce()
}

// scan reads the active document when it runs, so a debounced scan sees the
// text of the last change. Markers and diagnostics carry that snapshot so the
// host positions them against the scanned text even if an edit lands first.
func (x *Extension) scan() {
	uri := x.Active()
	if uri == "" {
		return
	}
	doc, ok := x.host.Document(uri)
	if !ok || !x.selector.Match(doc.LanguageID) {
		x.markers.Clear(uri)
		return
	}
	res := decorate.Scan(doc.Text, x.cat)
	log.Decor("scan", "uri", uri, "colors", len(res), "ranges", res.Len())
	x.markers.Apply(doc, res)
	if x.lint {
		x.host.PublishDiagnostics(doc, lint.Check(doc.Text, x.cat))
	}
}

// Deactivate stops pending scans, clears every marker and releases the host
// registrations.
func (x *Extension) Deactivate() {
	x.sched.Stop()
	x.markers.Dispose()
	x.mu.Lock()
	subs := x.subs
	x.subs = nil
	x.mu.Unlock()
	for _, d := range subs {
		d.Dispose()
	}
	log.Server("extension deactivated")
}
