package lang

import (
	"log/slog"
	"path/filepath"
	"sort"
	"strings"
)

// Registry maps file extensions and language identifiers to handlers. It is
// populated once during construction and read-only afterwards, so lookups
// are safe from any goroutine.
type Registry struct {
	handlers []Handler
	byExt    map[string]Handler
}

// NewRegistry registers the five handlers in fixed order. When two handlers
// claim the same extension the later registration wins.
func NewRegistry(logger *slog.Logger) *Registry {
	r := &Registry{byExt: make(map[string]Handler)}
	for _, h := range []Handler{
		NewTypeScriptHandler(logger),
		NewPythonHandler(logger),
		NewJavaScriptHandler(logger),
		NewCSSHandler(logger),
		NewHTMLHandler(logger),
	} {
		r.register(h)
	}
	return r
}

func (r *Registry) register(h Handler) {
	r.handlers = append(r.handlers, h)
	for _, ext := range h.Descriptor().Extensions {
		r.byExt[strings.ToLower(ext)] = h
	}
}

// HandlerForFile looks a handler up by the path's extension. A false return
// is the normal outcome for unsupported files, not an error.
func (r *Registry) HandlerForFile(path string) (Handler, bool) {
	ext := strings.ToLower(filepath.Ext(path))
	h, ok := r.byExt[ext]
	return h, ok
}

// HandlerForLanguageID scans registered handlers in registration order and
// returns the first with a matching language identifier.
func (r *Registry) HandlerForLanguageID(id string) (Handler, bool) {
	id = strings.ToLower(strings.TrimSpace(id))
	for _, h := range r.handlers {
		if h.Descriptor().LanguageID == id {
			return h, true
		}
	}
	return nil, false
}

func (r *Registry) SupportedExtensions() []string {
	exts := make([]string, 0, len(r.byExt))
	for ext := range r.byExt {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// SupportedLanguageIDs lists language identifiers in registration order,
// deduplicated.
func (r *Registry) SupportedLanguageIDs() []string {
	seen := make(map[string]bool, len(r.handlers))
	ids := make([]string, 0, len(r.handlers))
	for _, h := range r.handlers {
		id := h.Descriptor().LanguageID
		if seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	return ids
}
