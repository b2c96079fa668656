package vii

import (
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"reflect"
	"strings"
)

type App struct {
	routes map[string]map[string]Route // method -> path -> route

	// routes with {param} segments, checked after exact routes and static mounts
	patterns map[string][]patternRoute

	services []Service

	// static mounts (prefix-based) for local/embedded file serving
	static []staticMount

	// embedded dirs registry for non-static assets (templates, docs, etc.)
	embedded map[string]fs.FS

	templates templateSet

	OnErr      func(app *App, route Route, r *http.Request, w http.ResponseWriter, err error)
	OnNotFound func(app *App, r *http.Request, w http.ResponseWriter)
}

func New() *App {
	return &App{
		routes:   make(map[string]map[string]Route),
		patterns: make(map[string][]patternRoute),
		embedded: make(map[string]fs.FS),
		OnNotFound: func(app *App, r *http.Request, w http.ResponseWriter) {
			_ = app
			http.NotFound(w, r)
		},
	}
}

// Mount registers route for method and path. Paths may contain whole-segment
// parameters such as "/{name}"; read them with Param.
func (a *App) Mount(method, path string, route Route) error {
	if route == nil {
		return fmt.Errorf("vii: route for %s %s is nil", method, path)
	}
	if !strings.HasPrefix(path, "/") {
		return fmt.Errorf("vii: route path must start with '/': %q", path)
	}
	if a.routes == nil {
		a.routes = make(map[string]map[string]Route)
	}
	if a.patterns == nil {
		a.patterns = make(map[string][]patternRoute)
	}

	if strings.Contains(path, "{") {
		pr, err := compilePattern(path, route)
		if err != nil {
			return err
		}
		a.patterns[method] = append(a.patterns[method], pr)
	} else {
		if _, ok := a.routes[method]; !ok {
			a.routes[method] = make(map[string]Route)
		}
		a.routes[method][path] = route
	}
	return route.OnMount(a)
}

// ServeEmbeddedFiles mounts an fs.FS at a URL prefix (e.g. "/static").
func (a *App) ServeEmbeddedFiles(prefix string, f fs.FS) error {
	if prefix == "" {
		return fmt.Errorf("vii: static prefix is empty")
	}
	if !strings.HasPrefix(prefix, "/") {
		prefix = "/" + prefix
	}
	// normalize: "/static/" -> "/static"
	if len(prefix) > 1 && strings.HasSuffix(prefix, "/") {
		prefix = strings.TrimSuffix(prefix, "/")
	}
	if f == nil {
		return fmt.Errorf("vii: embedded fs is nil")
	}

	h := http.FileServer(http.FS(f))
	if prefix != "/" {
		h = http.StripPrefix(prefix, h)
	}
	a.addStatic(staticMount{prefix: prefix, handler: h})
	return nil
}

// ServeLocalFiles mounts a directory on disk at a URL prefix.
// Files are read from disk at request time.
func (a *App) ServeLocalFiles(prefix string, dir string) error {
	if dir == "" {
		return fmt.Errorf("vii: local static dir is empty")
	}
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("vii: stat local dir: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("vii: local static path is not a directory: %s", dir)
	}
	return a.ServeEmbeddedFiles(prefix, os.DirFS(dir))
}

// EmbedDir registers an fs.FS under a key for request-time access
// (templates, private assets) rather than direct static serving.
func (a *App) EmbedDir(key string, f fs.FS) error {
	if key == "" {
		return fmt.Errorf("vii: embed key is empty")
	}
	if f == nil {
		return fmt.Errorf("vii: embed fs is nil")
	}
	if a.embedded == nil {
		a.embedded = make(map[string]fs.FS)
	}
	a.embedded[key] = f
	return nil
}

func (a *App) embeddedDir(key string) (fs.FS, bool) {
	if a == nil || a.embedded == nil {
		return nil, false
	}
	f, ok := a.embedded[key]
	return f, ok
}

func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if isWebSocketUpgrade(r) {
		a.serveWebSocket(w, r)
		return
	}

	sw := newStatusWriter(w)

	if route := a.lookupExact(r.Method, r.URL.Path); route != nil {
		_ = compilePipeline(a, route).serve(sw, r)
		return
	}
	if a.tryStatic(sw, r) {
		return
	}
	if route, params := a.lookupPattern(r.Method, r.URL.Path); route != nil {
		r = WithValidated(r, params)
		_ = compilePipeline(a, route).serve(sw, r)
		return
	}

	if a.OnNotFound != nil {
		a.OnNotFound(a, r, sw)
		return
	}
	http.NotFound(sw, r)
}

func (a *App) lookupExact(method, path string) Route {
	if a.routes == nil {
		return nil
	}
	pm := a.routes[method]
	if pm == nil {
		return nil
	}
	return pm[path]
}

// lookup resolves exact routes first, then patterns.
func (a *App) lookup(method, path string) (Route, PathParams) {
	if route := a.lookupExact(method, path); route != nil {
		return route, nil
	}
	return a.lookupPattern(method, path)
}

func (a *App) lookupPattern(method, path string) (Route, PathParams) {
	if a.patterns == nil {
		return nil, nil
	}
	for _, pr := range a.patterns[method] {
		if params, ok := pr.match(path); ok {
			return pr.route, params
		}
	}
	return nil, nil
}

type serviceNode struct {
	svc        Service
	validators []AnyValidator
}

func resolveServices(roots []Service) []serviceNode {
	var out []serviceNode

	serviceID := func(s Service) string {
		if s == nil {
			return ""
		}
		t := reflect.TypeOf(s)
		id := t.String()
		if sk, ok := any(s).(ServiceKeyer); ok {
			id = id + "|" + sk.ServiceKey()
		}
		return id
	}

	visiting := map[string]bool{}
	visited := map[string]bool{}

	var visit func(s Service)
	visit = func(s Service) {
		if s == nil {
			return
		}
		id := serviceID(s)
		if visited[id] {
			return
		}
		if visiting[id] {
			panic(fmt.Sprintf("vii: cyclic service dependency detected at %s", id))
		}
		visiting[id] = true

		if ws, ok := any(s).(WithServices); ok {
			for _, dep := range ws.Services() {
				visit(dep)
			}
		}

		var vals []AnyValidator
		if wv, ok := any(s).(WithValidators); ok {
			vals = wv.Validators()
		}

		out = append(out, serviceNode{svc: s, validators: vals})
		visiting[id] = false
		visited[id] = true
	}

	for _, s := range roots {
		visit(s)
	}

	return out
}
