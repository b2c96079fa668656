package vii

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"os"
	"strings"
	"sync"
)

var ErrTemplateNotFound = errors.New("vii: template not found")

type templateSet struct {
	mu   sync.RWMutex
	byID map[string]*template.Template
}

// Vars builds a vars map from alternating keys and values. Non-string or
// empty keys are skipped.
func Vars(kv ...any) map[string]any {
	if len(kv) == 0 {
		return nil
	}
	out := make(map[string]any, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		k, ok := kv[i].(string)
		if !ok || k == "" {
			continue
		}
		out[k] = kv[i+1]
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func (a *App) TemplateLocalDir(key string, dir string, funcs template.FuncMap, patterns ...string) error {
	if a == nil {
		return fmt.Errorf("vii: app is nil")
	}
	if dir == "" {
		return fmt.Errorf("vii: local template dir is empty")
	}
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("vii: stat local template dir: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("vii: local template path is not a directory: %s", dir)
	}
	return a.RegisterTemplates(key, os.DirFS(dir), funcs, patterns...)
}

// RegisterTemplates parses every file matching patterns in fsys and stores
// the set under key. Templates are addressed by file base name.
func (a *App) RegisterTemplates(key string, fsys fs.FS, funcs template.FuncMap, patterns ...string) error {
	if a == nil {
		return fmt.Errorf("vii: app is nil")
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return fmt.Errorf("vii: templates key is empty")
	}
	if fsys == nil {
		return fmt.Errorf("vii: templates fs is nil")
	}
	if len(patterns) == 0 {
		return fmt.Errorf("vii: templates patterns empty")
	}

	base := template.New(key)
	if funcs != nil {
		base = base.Funcs(funcs)
	}

	tpl, err := base.ParseFS(fsys, patterns...)
	if err != nil {
		return fmt.Errorf("vii: parse templates %q: %w", key, err)
	}

	a.templates.mu.Lock()
	defer a.templates.mu.Unlock()
	if a.templates.byID == nil {
		a.templates.byID = make(map[string]*template.Template)
	}
	a.templates.byID[key] = tpl
	return nil
}

// TemplateDir registers templates from a dir previously added with EmbedDir.
func (a *App) TemplateDir(key string, funcs template.FuncMap, patterns ...string) error {
	if a == nil {
		return fmt.Errorf("vii: app is nil")
	}
	fsys, ok := a.embeddedDir(key)
	if !ok || fsys == nil {
		return fmt.Errorf("vii: embedded dir %q not found (call EmbedDir first)", key)
	}
	return a.RegisterTemplates(key, fsys, funcs, patterns...)
}

func Templates(r *http.Request, key string) (TemplateRenderer, bool) {
	app, ok := AppFrom(r)
	if !ok || app == nil {
		return TemplateRenderer{}, false
	}
	return app.Templates(key)
}

func (a *App) Templates(key string) (TemplateRenderer, bool) {
	if a == nil {
		return TemplateRenderer{}, false
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return TemplateRenderer{}, false
	}

	a.templates.mu.RLock()
	t := a.templates.byID[key]
	a.templates.mu.RUnlock()

	if t == nil {
		return TemplateRenderer{}, false
	}
	return TemplateRenderer{key: key, tpl: t}, true
}

type TemplateRenderer struct {
	key string
	tpl *template.Template
}

// Execute renders name with status 200.
func (tr TemplateRenderer) Execute(w http.ResponseWriter, r *http.Request, name string, data any, vars map[string]any) error {
	return tr.ExecuteStatus(w, r, http.StatusOK, name, data, vars)
}

// ExecuteStatus renders name into a buffer and only then writes status and
// body, so a failing template leaves the response untouched.
//
// The view exposes .Data, .Request and .Vars. When data is a map[string]any
// its keys are also available at the top level.
func (tr TemplateRenderer) ExecuteStatus(w http.ResponseWriter, r *http.Request, status int, name string, data any, vars map[string]any) error {
	if tr.tpl == nil {
		return ErrTemplateNotFound
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("vii: template name empty")
	}
	if tr.tpl.Lookup(name) == nil {
		return fmt.Errorf("%w: %s/%s", ErrTemplateNotFound, tr.key, name)
	}
	if vars == nil {
		vars = map[string]any{}
	}

	view := map[string]any{}
	if m, ok := data.(map[string]any); ok && m != nil {
		for k, v := range m {
			view[k] = v
		}
		view["Data"] = m
	} else if data != nil {
		view["Data"] = data
	}
	view["Request"] = r
	view["Vars"] = vars

	var buf bytes.Buffer
	if err := tr.tpl.ExecuteTemplate(&buf, name, view); err != nil {
		return err
	}

	if w.Header().Get("Content-Type") == "" {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
	}
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}

func Render(r *http.Request, w http.ResponseWriter, key string, name string, data any, vars map[string]any) error {
	tr, ok := Templates(r, key)
	if !ok {
		return ErrTemplateNotFound
	}
	return tr.Execute(w, r, name, data, vars)
}
