package lsp

import (
	"sync"

	"github.com/grindlemire/iconforge/internal/extension"
)

// registration is a provider bound to the languages it serves.
type registration[P any] struct {
	id       int
	selector extension.Selector
	provider P
}

// Registry holds the providers registered by the extension. The router
// dispatches to the first provider whose selector matches the document's
// language.
type Registry struct {
	mu     sync.RWMutex
	nextID int

	completion []registration[extension.CompletionProvider]
	hover      []registration[extension.HoverProvider]
	color      []registration[extension.ColorProvider]
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

func add[P any](r *Registry, list *[]registration[P], sel extension.Selector, p P) extension.Disposable {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	id := r.nextID
	*list = append(*list, registration[P]{id: id, selector: sel, provider: p})

	return extension.DisposeFunc(func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		for i, reg := range *list {
			if reg.id == id {
				*list = append((*list)[:i:i], (*list)[i+1:]...)
				return
			}
		}
	})
}

func lookup[P any](r *Registry, list *[]registration[P], languageID string) (P, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, reg := range *list {
		if reg.selector.Match(languageID) {
			return reg.provider, true
		}
	}
	var zero P
	return zero, false
}

// AddCompletion registers a completion provider.
func (r *Registry) AddCompletion(sel extension.Selector, p extension.CompletionProvider) extension.Disposable {
	return add(r, &r.completion, sel, p)
}

// AddHover registers a hover provider.
func (r *Registry) AddHover(sel extension.Selector, p extension.HoverProvider) extension.Disposable {
	return add(r, &r.hover, sel, p)
}

// AddColor registers a color provider.
func (r *Registry) AddColor(sel extension.Selector, p extension.ColorProvider) extension.Disposable {
	return add(r, &r.color, sel, p)
}

// Completion returns the completion provider for a language.
func (r *Registry) Completion(languageID string) (extension.CompletionProvider, bool) {
	return lookup(r, &r.completion, languageID)
}

// Hover returns the hover provider for a language.
func (r *Registry) Hover(languageID string) (extension.HoverProvider, bool) {
	return lookup(r, &r.hover, languageID)
}

// Color returns the color provider for a language.
func (r *Registry) Color(languageID string) (extension.ColorProvider, bool) {
	return lookup(r, &r.color, languageID)
}

// empty reports whether no provider is registered.
func (r *Registry) empty() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.completion)+len(r.hover)+len(r.color) == 0
}

// events holds the document event subscribers.
type events struct {
	mu       sync.Mutex
	nextID   int
	onActive map[int]func(string)
	onChange map[int]func(string)
}

func newEvents() *events {
	return &events{
		onActive: make(map[int]func(string)),
		onChange: make(map[int]func(string)),
	}
}

func (e *events) subscribe(set map[int]func(string), fn func(string)) extension.Disposable {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.nextID++
	id := e.nextID
	set[id] = fn
	return extension.DisposeFunc(func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		delete(set, id)
	})
}

func (e *events) fire(set map[int]func(string), uri string) {
	e.mu.Lock()
	fns := make([]func(string), 0, len(set))
	for _, fn := range set {
		fns = append(fns, fn)
	}
	e.mu.Unlock()
	for _, fn := range fns {
		fn(uri)
	}
}
