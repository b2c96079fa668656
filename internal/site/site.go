// Package site serves the dinosaur list and detail pages on top of vii.
package site

import (
	"html/template"
	"io/fs"
	"net/http"

	"github.com/phillip-england/dinos/internal/dinos"
	"github.com/phillip-england/dinos/vii"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	templatesKey = "pages"

	// LivePath is the websocket endpoint pages listen on for reloads.
	LivePath = "/_live"
)

type Options struct {
	// StrictStatus answers 404/500 for data failures instead of 200.
	StrictStatus bool
	// MarkdownDescriptions renders descriptions as sanitized markdown.
	MarkdownDescriptions bool
	// LiveReload mounts the reload websocket and injects its client script.
	LiveReload bool
}

type Site struct {
	app     *vii.App
	catalog *dinos.Catalog
	logger  *zap.Logger
	opts    Options
	hub     *Hub
}

func New(catalog *dinos.Catalog, logger *zap.Logger, opts Options) (*Site, error) {
	if catalog == nil {
		return nil, errors.New("site: catalog is nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Site{
		app:     vii.New(),
		catalog: catalog,
		logger:  logger,
		opts:    opts,
		hub:     NewHub(),
	}
	s.app.Use(vii.RequestIDService{}, vii.LoggerService{Logger: logger})

	static, err := fs.Sub(assets, "static")
	if err != nil {
		return nil, errors.Wrap(err, "failed to open embedded static dir")
	}
	if err := s.app.ServeEmbeddedFiles("/static", static); err != nil {
		return nil, errors.Wrap(err, "failed to mount static files")
	}

	funcs := vii.TemplateFuncsCommon()
	funcs["markdown"] = func(src string) template.HTML { return renderMarkdown(src) }
	if err := s.app.RegisterTemplates(templatesKey, assets, funcs, "templates/*.html"); err != nil {
		return nil, errors.Wrap(err, "failed to load page templates")
	}

	if err := s.app.Mount(vii.Method.GET, "/", &IndexRoute{site: s}); err != nil {
		return nil, err
	}
	if err := s.app.Mount(vii.Method.GET, "/{name}", &DinoRoute{site: s}); err != nil {
		return nil, err
	}

	if opts.LiveReload {
		live := &liveRoute{hub: s.hub, logger: logger}
		for _, m := range []string{vii.Method.OPEN, vii.Method.MESSAGE, vii.Method.CLOSE} {
			if err := s.app.Mount(m, LivePath, live); err != nil {
				return nil, err
			}
		}
	}

	return s, nil
}

func (s *Site) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.app.ServeHTTP(w, r)
}

// Hub returns the set of connected live-reload clients.
func (s *Site) Hub() *Hub { return s.hub }

func (s *Site) vars() map[string]any {
	return vii.Vars(
		"LiveReload", s.opts.LiveReload,
		"Markdown", s.opts.MarkdownDescriptions,
	)
}

func (s *Site) render(w http.ResponseWriter, r *http.Request, status int, name string, data map[string]any) error {
	tr, ok := vii.Templates(r, templatesKey)
	if !ok {
		return vii.ErrTemplateNotFound
	}
	return tr.ExecuteStatus(w, r, status, name, data, s.vars())
}

// logFailure records a data failure. A lookup miss is routine and logged at
// info; anything else means the data file needs attention.
func (s *Site) logFailure(r *http.Request, err error) {
	kind := dinos.KindOf(err)
	lvl := zapcore.WarnLevel
	if kind == dinos.KindNotFound {
		lvl = zapcore.InfoLevel
	}
	ce := s.logger.Check(lvl, "dinosaur data unavailable")
	if ce == nil {
		return
	}
	fields := []zap.Field{
		zap.String("kind", kind),
		zap.String("path", r.URL.Path),
		zap.Error(err),
	}
	if id, ok := vii.RequestIDFrom(r); ok {
		fields = append(fields, zap.String("request_id", id))
	}
	ce.Write(fields...)
}

func (s *Site) failureStatus(err error) int {
	if err == nil || !s.opts.StrictStatus {
		return http.StatusOK
	}
	if dinos.IsNotFound(err) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

// renderFailed handles an error from the render step itself. Nothing has
// been written yet, since templates render into a buffer first.
func (s *Site) renderFailed(r *http.Request, w http.ResponseWriter, err error) {
	s.logger.Error("render failed", zap.String("path", r.URL.Path), zap.Error(err))
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}
